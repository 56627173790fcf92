// Package service ties the regatta model to its collaborators: the sheet
// importer, the scoring policy, the rotation checks and the membership
// store.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/okian/regatta/internal/adapters/members"
	"github.com/okian/regatta/internal/adapters/sheet"
	"github.com/okian/regatta/internal/config"
	"github.com/okian/regatta/internal/domain/model"
	"github.com/okian/regatta/internal/domain/regatta"
	"github.com/okian/regatta/internal/domain/scoring"
	"github.com/okian/regatta/internal/domain/types"
	"github.com/okian/regatta/pkg/logger"
	"github.com/okian/regatta/pkg/metrics"
)

// Rotation check modes.
const (
	ModeSingle   = "single"
	ModeCombined = "combined"
)

// StandingsScorer is a scoring policy that can also report totals.
type StandingsScorer interface {
	scoring.Scorer
	Standings(reg *regatta.Regatta) ([]types.Entry, error)
}

// Service runs scoring and validation over imported regattas. Like the
// regattas it handles, it is meant for a single caller at a time.
type Service struct {
	cfg      *config.Config
	store    members.Store
	scorer   StandingsScorer
	importer *sheet.Importer
	combined bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig applies loaded configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
			s.combined = cfg.Combined
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMembersStore replaces the file-backed membership store.
func WithMembersStore(store members.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithScorer replaces the plain scoring policy.
func WithScorer(scorer StandingsScorer) Option {
	return func(s *Service) {
		if scorer != nil {
			s.scorer = scorer
		}
	}
}

// WithCombined selects combined-division rotation checks.
func WithCombined(combined bool) Option {
	return func(s *Service) {
		s.combined = combined
	}
}

// New constructs a Service. Collaborators not supplied through options are
// built from the configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cfg:    config.New(),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = members.NewFileStore(s.cfg.MembersDir, members.WithLogger(s.logger.Named("members")))
	}
	if s.scorer == nil {
		s.scorer = scoring.NewPlainScorer(
			scoring.WithLogger(s.logger.Named("scoring")),
			scoring.WithMetrics(s.cfg.MetricsEnabled))
	}
	s.importer = sheet.NewImporter(
		sheet.WithLogger(s.logger.Named("sheet")),
		sheet.WithDefaultGrid(s.cfg.DefaultDivisions, s.cfg.DefaultRaces),
		sheet.WithListener(regatta.ListenerFunc(s.observe)))
	return s
}

// observe counts and traces regatta changes.
func (s *Service) observe(e regatta.Event) {
	if s.cfg.MetricsEnabled {
		metrics.RecordRegattaEvent(e.Type.String())
	}
	s.logger.Debug(context.Background(), "regatta changed",
		logger.String("regatta", e.Regatta.Name()),
		logger.Stringer("type", e.Type))
}

// Open imports the regatta sheet at path.
func (s *Service) Open(ctx context.Context, path string) (*regatta.Regatta, error) {
	reg, err := s.importer.Open(ctx, path)
	if err != nil {
		metrics.RecordErrorByComponent("sheet", "import")
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return reg, nil
}

// Score scores every new race of reg and returns the standings.
func (s *Service) Score(ctx context.Context, reg *regatta.Regatta) ([]types.Entry, error) {
	if err := s.scorer.Score(reg); err != nil {
		metrics.RecordErrorByComponent("scoring", "score")
		return nil, err
	}
	entries, err := s.scorer.Standings(reg)
	if err != nil {
		if errors.Is(err, regatta.ErrMissingFinish) {
			metrics.RecordErrorByComponent("scoring", "missing_finish")
		}
		return nil, err
	}
	if len(entries) > 0 {
		s.logger.Info(ctx, "regatta scored",
			logger.String("regatta", reg.Name()),
			logger.Int("races", len(reg.ScoredRaces())),
			logger.Stringer("leader", entries[0].Team),
			logger.Int("leader_total", entries[0].Total))
	}
	return entries, nil
}

// Rules describes the scoring policy in force.
func (s *Service) Rules() string { return s.scorer.Rules() }

// Check validates the sail rotation of reg and returns the offending races.
// Problems are warnings, never errors.
func (s *Service) Check(ctx context.Context, reg *regatta.Regatta) []model.Race {
	rot := reg.Rotation()
	if rot == nil {
		s.logger.Info(ctx, "regatta has no rotation", logger.String("regatta", reg.Name()))
		return nil
	}

	mode, bad := ModeSingle, []model.Race(nil)
	if s.combined {
		mode, bad = ModeCombined, rot.NormalizeCombined(reg.Divisions())
	} else {
		bad = rot.Normalize()
	}
	if s.cfg.MetricsEnabled {
		metrics.RecordRotationCheck(mode, len(bad))
	}
	for _, race := range bad {
		s.logger.Warn(ctx, "inconsistent rotation",
			logger.String("regatta", reg.Name()),
			logger.String("mode", mode),
			logger.Stringer("race", race))
	}
	return bad
}

// Roster loads the members of every team affiliation into the regatta's
// roster and returns how many sailors were loaded. Affiliations without a
// membership file are skipped with a warning.
func (s *Service) Roster(ctx context.Context, reg *regatta.Regatta) (int, error) {
	var affs []string
	for _, t := range reg.Teams() {
		if t.Affiliation != "" && !slices.Contains(affs, t.Affiliation) {
			affs = append(affs, t.Affiliation)
		}
	}
	slices.Sort(affs)

	var sailors []model.Sailor
	for _, aff := range affs {
		list, err := s.store.Load(ctx, aff)
		if errors.Is(err, members.ErrNotFound) {
			s.logger.Warn(ctx, "no membership file", logger.String("affiliation", aff))
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("roster: %w", err)
		}
		for _, m := range list {
			sailors = append(sailors, m.Sailor)
		}
	}
	reg.SetRoster(sailors)
	return len(sailors), nil
}

// Affiliations lists the affiliations in the membership store.
func (s *Service) Affiliations(ctx context.Context) ([]string, error) {
	return s.store.Affiliations(ctx)
}

// Members returns the member list of one affiliation.
func (s *Service) Members(ctx context.Context, affiliation string) ([]model.Member, error) {
	return s.store.Load(ctx, affiliation)
}

// AddMember adds m to an affiliation's member list, replacing any member
// with the same ID. The affiliation file is created if needed.
func (s *Service) AddMember(ctx context.Context, affiliation string, m model.Member) error {
	list, err := s.store.Load(ctx, affiliation)
	if err != nil && !errors.Is(err, members.ErrNotFound) {
		return err
	}
	i := slices.IndexFunc(list, func(x model.Member) bool { return x.ID == m.ID })
	if i >= 0 {
		list[i] = m
	} else {
		list = append(list, m)
	}
	return s.store.Save(ctx, affiliation, list)
}
