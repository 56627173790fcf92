package regatta

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/okian/regatta/internal/domain/model"
	"github.com/okian/regatta/pkg/logger"
)

// AddTeam adds team to the regatta.
func (g *Regatta) AddTeam(team model.Team) error {
	i, found := slices.BinarySearchFunc(g.teams, team, model.CompareTeams)
	if found {
		return fmt.Errorf("%w: %s", ErrDuplicateTeam, team)
	}
	g.teams = slices.Insert(g.teams, i, team)
	if g.rotation != nil {
		g.rotation.AddTeam(team)
	}
	g.fire(EventTeam, team)
	return nil
}

// RemoveTeam drops team from the regatta together with its rotation
// column, finishes, team penalties and RP records.
func (g *Regatta) RemoveTeam(team model.Team) error {
	i, found := slices.BinarySearchFunc(g.teams, team, model.CompareTeams)
	if !found {
		return fmt.Errorf("%w: %s", ErrUnknownTeam, team)
	}
	removed := g.teams[i]
	g.teams = slices.Delete(g.teams, i, i+1)

	key := team.Key()
	if g.rotation != nil {
		g.rotation.RemoveTeam(team)
	}
	for race, col := range g.finishes {
		delete(col, key)
		if len(col) == 0 {
			g.dropFinishes(race)
		}
	}
	for _, byTeam := range g.penalties {
		delete(byTeam, key)
	}
	for k := range g.rp {
		if k.team == key {
			delete(g.rp, k)
		}
	}
	g.log.Debug(context.Background(), "team removed",
		logger.String("regatta", g.name),
		logger.Stringer("team", removed),
	)
	g.fire(EventTeam, removed)
	return nil
}

// Teams returns the teams in team order.
func (g *Regatta) Teams() []model.Team { return slices.Clone(g.teams) }

// Team looks a team up by identity.
func (g *Regatta) Team(key model.TeamKey) (model.Team, bool) {
	i, found := slices.BinarySearchFunc(g.teams, key, func(t model.Team, k model.TeamKey) int {
		return model.CompareTeamKeys(t.Key(), k)
	})
	if !found {
		return model.Team{}, false
	}
	return g.teams[i], true
}

// HasTeam reports whether team takes part in the regatta.
func (g *Regatta) HasTeam(team model.Team) bool {
	_, ok := g.Team(team.Key())
	return ok
}

// FleetSize is the total number of teams.
func (g *Regatta) FleetSize() int { return len(g.teams) }

// SetTeamPenalty records p, replacing any penalty for the same division and
// team.
func (g *Regatta) SetTeamPenalty(p model.TeamPenalty) error {
	if !g.hasDivision(p.Division) {
		return fmt.Errorf("%w: %s", ErrUnknownDivision, p.Division)
	}
	if !g.HasTeam(p.Team) {
		return fmt.Errorf("%w: %s", ErrUnknownTeam, p.Team)
	}
	byTeam, ok := g.penalties[p.Division]
	if !ok {
		byTeam = make(map[model.TeamKey]model.TeamPenalty)
		g.penalties[p.Division] = byTeam
	}
	byTeam[p.Team.Key()] = p
	g.fire(EventScore, p)
	return nil
}

// TeamPenalty returns the penalty for team in div.
func (g *Regatta) TeamPenalty(div model.Division, team model.Team) (model.TeamPenalty, bool) {
	p, ok := g.penalties[div][team.Key()]
	return p, ok
}

// RemoveTeamPenalty drops the penalty for team in div and reports whether
// one existed.
func (g *Regatta) RemoveTeamPenalty(div model.Division, team model.Team) bool {
	p, ok := g.penalties[div][team.Key()]
	if !ok {
		return false
	}
	delete(g.penalties[div], team.Key())
	g.fire(EventScore, p)
	return true
}

// TeamPenalties lists the penalties of a division in team order.
func (g *Regatta) TeamPenalties(div model.Division) []model.TeamPenalty {
	return slices.SortedFunc(maps.Values(g.penalties[div]), func(a, b model.TeamPenalty) int {
		return model.CompareTeams(a.Team, b.Team)
	})
}
