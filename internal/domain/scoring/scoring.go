// Package scoring turns a regatta's finish order into race scores and a team
// ranking.
package scoring

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/okian/regatta/internal/domain/model"
	"github.com/okian/regatta/internal/domain/regatta"
	"github.com/okian/regatta/internal/domain/types"
	"github.com/okian/regatta/pkg/logger"
	"github.com/okian/regatta/pkg/metrics"
)

const plainRules = "Low-point scoring: finishers score their place in order of finish; " +
	"penalized finishes score fleet size plus one and do not take a place; " +
	"teams rank by ascending total over all scored races."

// Scorer is a scoring policy. Regatta and Rotation do not depend on which
// policy is in force.
type Scorer interface {
	// Score assigns scores to the finishes of every race not yet scored.
	Score(reg *regatta.Regatta) error
	// Rank orders all teams by their overall result.
	Rank(reg *regatta.Regatta) ([]model.Team, error)
	// RankDivision orders the teams within one division.
	RankDivision(reg *regatta.Regatta, div model.Division) ([]model.Team, error)
	// Rules describes the policy.
	Rules() string
	// RankExplanations justifies the last ranking per team.
	RankExplanations() map[model.TeamKey]string
}

// PlainScorer is the reference low-point policy. It remembers which races it
// has scored and never rescores them unless told to Forget or the race's
// finishes are discarded. Breakdowns are scored as ordinary finishes.
type PlainScorer struct {
	// scored maps a race to its finish generation when scored.
	scored  map[model.Race]int
	log     logger.Logger
	metrics bool
}

var _ Scorer = (*PlainScorer)(nil)

// NewPlainScorer creates a scorer with an empty scored set.
func NewPlainScorer(opts ...Option) *PlainScorer {
	s := &PlainScorer{
		scored:  make(map[model.Race]int),
		log:     logger.Nop(),
		metrics: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score scores every race of reg that has finishes and has not been scored
// by this scorer.
func (s *PlainScorer) Score(reg *regatta.Regatta) error {
	if reg == nil {
		return ErrNilRegatta
	}
	s.prune(reg)
	fleet := reg.FleetSize()
	for _, race := range reg.ScoredRaces() {
		if _, done := s.scored[race]; done {
			continue
		}
		finishes := reg.Finishes(race)
		slices.SortStableFunc(finishes, model.CompareByPlace)

		scores := make(map[model.TeamKey]int, len(finishes))
		place, penalized := 1, 0
		for _, f := range finishes {
			if _, ok := f.Penalty(); ok {
				scores[f.Team.Key()] = fleet + 1
				penalized++
				continue
			}
			scores[f.Team.Key()] = place
			place++
		}
		if err := reg.ApplyScores(race, scores); err != nil {
			return fmt.Errorf("score race %s: %w", race, err)
		}
		s.scored[race] = reg.FinishGeneration(race)

		if s.metrics {
			metrics.RecordRaceScored(len(finishes), penalized)
		}
		s.log.Debug(context.Background(), "race scored",
			logger.String("race", race.String()),
			logger.Int("finishes", len(finishes)),
			logger.Int("penalized", penalized))
	}
	return nil
}

// Rank orders teams by ascending total over the scored races. Equal totals
// keep the regatta's team order. Every team must have a finish in every
// scored race.
func (s *PlainScorer) Rank(reg *regatta.Regatta) ([]model.Team, error) {
	entries, err := s.Standings(reg)
	if err != nil {
		return nil, err
	}
	teams := make([]model.Team, len(entries))
	for i, e := range entries {
		teams[i] = e.Team
	}
	return teams, nil
}

// Standings is Rank with each team's total and 1-based position. Teams on
// equal totals share a rank.
func (s *PlainScorer) Standings(reg *regatta.Regatta) ([]types.Entry, error) {
	if reg == nil {
		return nil, ErrNilRegatta
	}
	start := time.Now()

	races := s.scoredRaces(reg)
	teams := reg.Teams()
	entries := make([]types.Entry, len(teams))
	for i, team := range teams {
		total := 0
		for _, race := range races {
			f, ok := reg.Finish(race, team)
			if !ok {
				if s.metrics {
					metrics.RecordRankingError()
				}
				return nil, fmt.Errorf("rank %s in %s: %w", team, race, regatta.ErrMissingFinish)
			}
			total += f.Score
		}
		entries[i] = types.Entry{Team: team, Total: total}
	}

	slices.SortStableFunc(entries, func(a, b types.Entry) int { return a.Total - b.Total })
	for i := range entries {
		if i > 0 && entries[i].Total == entries[i-1].Total {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}

	if s.metrics {
		metrics.RecordRanking(len(entries), float64(time.Since(start).Microseconds())/1000)
		for _, e := range entries {
			metrics.UpdateTeamTotal(e.Team.String(), e.Total)
		}
	}
	return entries, nil
}

// RankDivision returns the regatta's teams in their natural order; this
// policy does not rank divisions separately.
func (s *PlainScorer) RankDivision(reg *regatta.Regatta, _ model.Division) ([]model.Team, error) {
	if reg == nil {
		return nil, ErrNilRegatta
	}
	return reg.Teams(), nil
}

// Rules describes the low-point policy.
func (s *PlainScorer) Rules() string { return plainRules }

// RankExplanations returns an empty map.
func (s *PlainScorer) RankExplanations() map[model.TeamKey]string {
	return map[model.TeamKey]string{}
}

// Forget drops race from the scored set so the next Score rescores it.
func (s *PlainScorer) Forget(race model.Race) {
	delete(s.scored, race)
}

// Scored reports whether race has been scored by s.
func (s *PlainScorer) Scored(race model.Race) bool {
	_, ok := s.scored[race]
	return ok
}

// current reports whether race was scored and its finishes have not been
// discarded since.
func (s *PlainScorer) current(reg *regatta.Regatta, race model.Race) bool {
	gen, ok := s.scored[race]
	return ok && gen == reg.FinishGeneration(race)
}

// prune forgets races whose finishes were discarded after scoring, so a race
// entered again is scored afresh.
func (s *PlainScorer) prune(reg *regatta.Regatta) {
	for race := range s.scored {
		if !s.current(reg, race) {
			delete(s.scored, race)
		}
	}
}

// scoredRaces lists the scored races of reg that still hold the finishes
// they were scored from, in race order.
func (s *PlainScorer) scoredRaces(reg *regatta.Regatta) []model.Race {
	var out []model.Race
	for _, race := range reg.ScoredRaces() {
		if s.current(reg, race) {
			out = append(out, race)
		}
	}
	return out
}
