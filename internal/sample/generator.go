package sample

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/regatta/internal/adapters/members"
	"github.com/okian/regatta/internal/adapters/sheet"
	"github.com/okian/regatta/internal/domain/model"
	"github.com/okian/regatta/internal/domain/rotation"
	"github.com/okian/regatta/pkg/logger"
)

// sailorNamespace scopes generated sailor IDs so the same seed yields the
// same IDs.
var sailorNamespace = uuid.MustParse("6f1c2a0e-4f3b-5d8a-9c61-2b7e0d4a9f13")

type school struct {
	name string
	code string
}

var schools = []school{
	{"Boston College", "BC"},
	{"Brown", "BRWN"},
	{"Charleston", "CHS"},
	{"Dartmouth", "DART"},
	{"Georgetown", "GTWN"},
	{"Harvard", "HAR"},
	{"MIT", "MIT"},
	{"Navy", "NAVY"},
	{"Stanford", "STAN"},
	{"Tufts", "TUF"},
	{"Yale", "YALE"},
	{"Coast Guard", "USCGA"},
}

var (
	firstNames = []string{"Ada", "Ben", "Cleo", "Dev", "Eli", "Fay", "Gus", "Hana", "Ivo", "Jo", "Kai", "Lia"}
	lastNames  = []string{"Abbot", "Bishop", "Crane", "Dunn", "Ellis", "Frost", "Grey", "Hale", "Irwin", "Joyce"}
)

var (
	penaltyTypes     = []model.PenaltyType{model.PenaltyDSQ, model.PenaltyOCS, model.PenaltyDNF, model.PenaltyDNS}
	teamPenaltyTypes = []model.TeamPenaltyType{model.TeamPenaltyPFD, model.TeamPenaltyLOP, model.TeamPenaltyMRP}
)

// Generator produces one regatta sheet and the members of its schools.
type Generator struct {
	cfg   Config
	rng   *rand.Rand
	teams []model.Team
	log   logger.Logger
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithLogger sets the generator logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// New validates cfg and prepares the team list.
func New(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)), //nolint:gosec // reproducible output
		log: logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	for i := range cfg.Teams {
		s := schools[i%len(schools)]
		name := s.name
		if n := i / len(schools); n > 0 {
			name += " " + strconv.Itoa(n+1)
		}
		t, err := model.NewTeam(name, s.code, s.code)
		if err != nil {
			return nil, err
		}
		g.teams = append(g.teams, t)
	}
	slices.SortFunc(g.teams, model.CompareTeams)
	return g, nil
}

// Sheet builds the regatta document: a standard rotation, a random finish
// order for every race and the occasional penalty.
func (g *Generator) Sheet() (*sheet.Sheet, error) {
	s := &sheet.Sheet{
		Name:      g.cfg.Name,
		Divisions: g.cfg.Divisions,
		Races:     g.cfg.Races,
		Rotation:  make(map[string]map[string]string),
		Finishes:  make(map[string][]sheet.FinishRow),
	}
	for _, t := range g.teams {
		s.Teams = append(s.Teams, sheet.TeamRow{Name: t.LongName, Short: t.ShortName, Affiliation: t.Affiliation})
	}

	divs, err := model.Divisions(g.cfg.Divisions)
	if err != nil {
		return nil, err
	}
	rot, err := g.rotation(divs)
	if err != nil {
		return nil, err
	}

	for _, div := range divs {
		for n := 1; n <= g.cfg.Races; n++ {
			race := model.Race{Division: div, Number: n}
			cells := make(map[string]string, len(g.teams))
			for _, c := range rot.Sails(race) {
				cells[c.Team.LongName] = c.Sail.String()
			}
			s.Rotation[race.String()] = cells
			s.Finishes[race.String()] = g.finishOrder()
		}
		if t, ok := g.teamPenalty(div); ok {
			s.Penalties = append(s.Penalties, t)
		}
	}
	g.log.Info(context.Background(), "sample sheet generated",
		logger.String("regatta", s.Name),
		logger.Int("teams", len(s.Teams)),
		logger.Int("races", len(s.Finishes)))
	return s, nil
}

// rotation repeats the division A pattern in every division, shifted by the
// fleet size when divisions share a start.
func (g *Generator) rotation(divs []model.Division) (*rotation.Rotation, error) {
	n := len(g.teams)
	sails := make([]model.Sail, n)
	for i := range sails {
		sails[i] = model.ParseSail(strconv.Itoa(i + 1))
	}
	races := make([]model.Race, g.cfg.Races)
	for i := range races {
		races[i] = model.Race{Division: divs[0], Number: i + 1}
	}
	rot, err := rotation.Standard(g.teams, sails, races, 1)
	if err != nil {
		return nil, err
	}
	for _, div := range divs[1:] {
		by := 0
		if g.cfg.Combined {
			by = n * div.Ordinal()
		}
		if err := rot.Offset(divs[0], div, by); err != nil {
			return nil, err
		}
	}
	return rot, nil
}

func (g *Generator) finishOrder() []sheet.FinishRow {
	rows := make([]sheet.FinishRow, len(g.teams))
	for i, j := range g.rng.Perm(len(g.teams)) {
		rows[i] = sheet.FinishRow{Team: g.teams[j].LongName}
		if g.rng.Float64() < g.cfg.PenaltyRate {
			rows[i].Penalty = string(penaltyTypes[g.rng.IntN(len(penaltyTypes))])
		}
	}
	return rows
}

func (g *Generator) teamPenalty(div model.Division) (sheet.PenaltyRow, bool) {
	if g.rng.Float64() >= g.cfg.PenaltyRate {
		return sheet.PenaltyRow{}, false
	}
	t := g.teams[g.rng.IntN(len(g.teams))]
	return sheet.PenaltyRow{
		Division: div.String(),
		Team:     t.LongName,
		Type:     string(teamPenaltyTypes[g.rng.IntN(len(teamPenaltyTypes))]),
	}, true
}

// Members returns SailorsPerTeam members for every team, grouped by
// affiliation. Sailor IDs are name-based UUIDs.
func (g *Generator) Members() map[string][]model.Member {
	out := make(map[string][]model.Member)
	for _, t := range g.teams {
		for range g.cfg.SailorsPerTeam {
			i := len(out[t.Affiliation])
			id := uuid.NewSHA1(sailorNamespace, []byte(fmt.Sprintf("%d/%s/%d", g.cfg.Seed, t.Affiliation, i)))
			out[t.Affiliation] = append(out[t.Affiliation], model.Member{
				Sailor: model.Sailor{
					ID:   id.String(),
					Name: firstNames[g.rng.IntN(len(firstNames))] + " " + lastNames[g.rng.IntN(len(lastNames))],
					Year: 2025 + g.rng.IntN(4),
				},
				IsNew: g.rng.IntN(4) == 0,
			})
		}
	}
	return out
}

// SaveMembers writes the generated members into store, one affiliation at a
// time in code order.
func (g *Generator) SaveMembers(ctx context.Context, store members.Store) (int, error) {
	byAff := g.Members()
	codes := make([]string, 0, len(byAff))
	for code := range byAff {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	total := 0
	for _, code := range codes {
		if err := store.Save(ctx, code, byAff[code]); err != nil {
			return total, fmt.Errorf("save %s: %w", code, err)
		}
		total += len(byAff[code])
	}
	return total, nil
}
