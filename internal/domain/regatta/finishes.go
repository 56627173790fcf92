package regatta

import (
	"fmt"
	"maps"
	"slices"

	"github.com/okian/regatta/internal/domain/model"
)

// SetFinish records f, replacing any finish the same team has in that race.
func (g *Regatta) SetFinish(f *model.Finish) error {
	if !g.HasRace(f.Race) {
		return fmt.Errorf("%w: %s", ErrUnknownRace, f.Race)
	}
	if !g.HasTeam(f.Team) {
		return fmt.Errorf("%w: %s", ErrUnknownTeam, f.Team)
	}
	col, ok := g.finishes[f.Race]
	if !ok {
		col = make(map[model.TeamKey]*model.Finish)
		g.finishes[f.Race] = col
	}
	col[f.Team.Key()] = f
	g.fire(EventFinish, f)
	return nil
}

// Finish returns the finish of team in race.
func (g *Regatta) Finish(race model.Race, team model.Team) (*model.Finish, bool) {
	f, ok := g.finishes[race][team.Key()]
	return f, ok
}

// Finishes returns the finishes of race in team order.
func (g *Regatta) Finishes(race model.Race) []*model.Finish {
	return slices.SortedFunc(maps.Values(g.finishes[race]), model.CompareFinishes)
}

// HasFinishes reports whether any finish is recorded for race.
func (g *Regatta) HasFinishes(race model.Race) bool {
	return len(g.finishes[race]) > 0
}

// RemoveFinishes drops every finish of race.
func (g *Regatta) RemoveFinishes(race model.Race) {
	if !g.HasFinishes(race) {
		return
	}
	g.dropFinishes(race)
	g.fire(EventFinish, race)
}

// FinishGeneration counts how many times the finishes of race have been
// discarded as a whole, by RemoveFinishes, truncation or removing the last
// team with a finish. A race re-entered after that is a new race to scorers.
func (g *Regatta) FinishGeneration(race model.Race) int {
	return g.generations[race]
}

func (g *Regatta) dropFinishes(race model.Race) {
	delete(g.finishes, race)
	g.generations[race]++
}

// ScoredRaces returns the races that hold finishes, in race order.
func (g *Regatta) ScoredRaces() []model.Race {
	var out []model.Race
	for _, r := range g.races {
		if g.HasFinishes(r) {
			out = append(out, r)
		}
	}
	return out
}

// ApplyScores writes scores to the finishes of race. Every key must name a
// team with a finish in race; otherwise nothing is written.
func (g *Regatta) ApplyScores(race model.Race, scores map[model.TeamKey]int) error {
	if !g.HasRace(race) {
		return fmt.Errorf("%w: %s", ErrUnknownRace, race)
	}
	col := g.finishes[race]
	for key := range scores {
		if _, ok := col[key]; !ok {
			return fmt.Errorf("%w: %s %s in %s", ErrMissingFinish, key.LongName, key.ShortName, race)
		}
	}
	for key, score := range scores {
		col[key].Score = score
	}
	g.fire(EventScore, race)
	return nil
}
