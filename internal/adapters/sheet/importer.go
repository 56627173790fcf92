package sheet

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/okian/regatta/internal/domain/model"
	"github.com/okian/regatta/internal/domain/regatta"
	"github.com/okian/regatta/pkg/logger"
)

// Importer builds regattas from sheets.
type Importer struct {
	divisions int
	races     int
	listeners []regatta.Listener
	log       logger.Logger
}

// NewImporter creates an importer. Sheets without a grid default to one
// division of one race.
func NewImporter(opts ...Option) *Importer {
	im := &Importer{divisions: 1, races: 1, log: logger.Nop()}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Open reads and imports the sheet at path.
func (im *Importer) Open(ctx context.Context, path string) (*regatta.Regatta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer func() { _ = f.Close() }()
	return im.Import(ctx, f)
}

// Import decodes a sheet from r and builds the regatta.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*regatta.Regatta, error) {
	s, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return im.Build(ctx, s)
}

// Decode reads a sheet document. Unknown keys are rejected.
func Decode(r io.Reader) (*Sheet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Sheet
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &s, nil
}

// Encode writes s as YAML.
func Encode(w io.Writer, s *Sheet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// Build creates a regatta from s. Finishes without a time are spaced one
// second apart in listed order, starting at the regatta start.
func (im *Importer) Build(ctx context.Context, s *Sheet) (*regatta.Regatta, error) {
	g := regatta.New(strings.TrimSpace(s.Name),
		regatta.WithLogger(im.log),
		regatta.WithDetails(regatta.Details{Start: s.Start, Duration: s.Duration, Type: s.Type}))
	for _, l := range im.listeners {
		g.Subscribe(l)
	}

	divs, races := s.Divisions, s.Races
	if divs == 0 {
		divs = im.divisions
	}
	if races == 0 {
		races = im.races
	}
	if err := g.CreateRaces(divs, races); err != nil {
		return nil, err
	}

	for i, row := range s.Teams {
		team, err := model.NewTeam(row.Name, row.Short, row.Affiliation)
		if err != nil {
			return nil, fmt.Errorf("team %d: %w", i+1, err)
		}
		if err := g.AddTeam(team); err != nil {
			return nil, fmt.Errorf("team %d: %w", i+1, err)
		}
	}
	teams := newResolver(g.Teams())

	if err := im.applyRotation(g, teams, s.Rotation); err != nil {
		return nil, err
	}
	if err := im.applyFinishes(g, teams, s.Start, s.Finishes); err != nil {
		return nil, err
	}
	for i, row := range s.Penalties {
		p, err := penalty(teams, row)
		if err != nil {
			return nil, fmt.Errorf("penalty %d: %w", i+1, err)
		}
		if err := g.SetTeamPenalty(p); err != nil {
			return nil, fmt.Errorf("penalty %d: %w", i+1, err)
		}
	}

	im.log.Info(ctx, "sheet imported",
		logger.String("regatta", g.Name()),
		logger.Int("teams", g.FleetSize()),
		logger.Int("races", len(g.Races())),
		logger.Int("scored_races", len(g.ScoredRaces())))
	return g, nil
}

func (im *Importer) applyRotation(g *regatta.Regatta, teams resolver, rot map[string]map[string]string) error {
	for _, key := range sortedRaceKeys(rot) {
		race, err := model.ParseRace(key)
		if err != nil {
			return fmt.Errorf("rotation %s: %w", key, err)
		}
		refs := make([]string, 0, len(rot[key]))
		for ref := range rot[key] {
			refs = append(refs, ref)
		}
		slices.Sort(refs)
		for _, ref := range refs {
			team, err := teams.resolve(ref)
			if err != nil {
				return fmt.Errorf("rotation %s: %w", key, err)
			}
			if err := g.SetSail(race, team, model.ParseSail(rot[key][ref])); err != nil {
				return fmt.Errorf("rotation %s: %w", key, err)
			}
		}
	}
	return nil
}

func (im *Importer) applyFinishes(g *regatta.Regatta, teams resolver, base time.Time, fin map[string][]FinishRow) error {
	for _, key := range sortedRaceKeys(fin) {
		race, err := model.ParseRace(key)
		if err != nil {
			return fmt.Errorf("finishes %s: %w", key, err)
		}
		seen := make(map[model.TeamKey]struct{}, len(fin[key]))
		for i, row := range fin[key] {
			f, err := finish(teams, race, base.Add(time.Duration(i)*time.Second), row)
			if err != nil {
				return fmt.Errorf("finish %s #%d: %w", key, i+1, err)
			}
			if _, dup := seen[f.Team.Key()]; dup {
				return fmt.Errorf("finish %s #%d: %w: %s", key, i+1, ErrDuplicateEntry, f.Team)
			}
			seen[f.Team.Key()] = struct{}{}
			if err := g.SetFinish(f); err != nil {
				return fmt.Errorf("finish %s #%d: %w", key, i+1, err)
			}
		}
	}
	return nil
}

func finish(teams resolver, race model.Race, ts time.Time, row FinishRow) (*model.Finish, error) {
	team, err := teams.resolve(row.Team)
	if err != nil {
		return nil, err
	}
	if !row.Time.IsZero() {
		ts = row.Time
	}
	f := model.NewFinish(race, team, ts)
	switch {
	case row.Penalty != "":
		t, err := model.ParsePenaltyType(row.Penalty)
		if err != nil {
			return nil, err
		}
		p, err := model.NewPenalty(t, row.Comments)
		if err != nil {
			return nil, err
		}
		f.SetPenalty(p)
	case row.Breakdown != "":
		t, err := model.ParseBreakdownType(row.Breakdown)
		if err != nil {
			return nil, err
		}
		b, err := model.NewBreakdown(t, row.Comments, row.Handicap)
		if err != nil {
			return nil, err
		}
		f.SetBreakdown(b)
	}
	return f, nil
}

func penalty(teams resolver, row PenaltyRow) (model.TeamPenalty, error) {
	div, err := model.ParseDivision(row.Division)
	if err != nil {
		return model.TeamPenalty{}, err
	}
	team, err := teams.resolve(row.Team)
	if err != nil {
		return model.TeamPenalty{}, err
	}
	t, err := model.ParseTeamPenaltyType(row.Type)
	if err != nil {
		return model.TeamPenalty{}, err
	}
	return model.TeamPenalty{Division: div, Team: team, Type: t, Comments: row.Comments}, nil
}

// sortedRaceKeys orders race keys by race so events fire in race order.
// Keys that do not parse follow all valid ones, in string order.
func sortedRaceKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareRaceKeys)
	return keys
}

func compareRaceKeys(a, b string) int {
	ra, errA := model.ParseRace(a)
	rb, errB := model.ParseRace(b)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	if c := model.CompareRaces(ra, rb); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// resolver maps sheet team references to teams.
type resolver struct {
	byLong  map[string][]model.Team
	byShort map[string][]model.Team
}

func newResolver(teams []model.Team) resolver {
	r := resolver{
		byLong:  make(map[string][]model.Team),
		byShort: make(map[string][]model.Team),
	}
	for _, t := range teams {
		r.byLong[t.LongName] = append(r.byLong[t.LongName], t)
		if t.ShortName != "" {
			r.byShort[t.ShortName] = append(r.byShort[t.ShortName], t)
		}
	}
	return r
}

func (r resolver) resolve(ref string) (model.Team, error) {
	ref = strings.TrimSpace(ref)
	for _, index := range []map[string][]model.Team{r.byLong, r.byShort} {
		switch found := index[ref]; len(found) {
		case 0:
			continue
		case 1:
			return found[0], nil
		default:
			return model.Team{}, fmt.Errorf("%w: %q", ErrAmbiguousTeam, ref)
		}
	}
	return model.Team{}, fmt.Errorf("%w: %q", ErrUnknownTeam, ref)
}
