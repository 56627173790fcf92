// Package rotation keeps the race-by-team assignment of sail numbers and
// checks it for consistency.
//
// The matrix is always rectangular: every race known to the rotation holds
// a cell for every team known to the rotation, possibly unset.
package rotation

import (
	"maps"
	"slices"

	"github.com/okian/regatta/internal/domain/model"
)

// Cell is one (race, team) entry of the rotation.
type Cell struct {
	Team model.Team
	Sail model.Sail
	// Set is false when no sail has been assigned yet.
	Set bool
}

// Rotation maps race -> team -> sail. It is not safe for concurrent use.
type Rotation struct {
	sails map[model.Race]map[model.TeamKey]*model.Sail
	teams map[model.TeamKey]model.Team
}

// New returns an empty rotation.
func New() *Rotation {
	return &Rotation{
		sails: make(map[model.Race]map[model.TeamKey]*model.Sail),
		teams: make(map[model.TeamKey]model.Team),
	}
}

// SetSail assigns sail to team in race, introducing either one if needed.
func (r *Rotation) SetSail(race model.Race, team model.Team, sail model.Sail) {
	r.AddRace(race)
	r.AddTeam(team)
	s := sail
	r.sails[race][team.Key()] = &s
}

// Clear unsets the cell for team in race. Unknown cells are ignored.
func (r *Rotation) Clear(race model.Race, team model.Team) {
	col, ok := r.sails[race]
	if !ok {
		return
	}
	if _, ok := col[team.Key()]; ok {
		col[team.Key()] = nil
	}
}

// Sail returns the sail assigned to team in race.
func (r *Rotation) Sail(race model.Race, team model.Team) (model.Sail, bool) {
	s := r.sails[race][team.Key()]
	if s == nil {
		return model.Sail{}, false
	}
	return *s, true
}

// Sails returns one cell per known team for race, sorted by team. It returns
// nil when the race is unknown.
func (r *Rotation) Sails(race model.Race) []Cell {
	col, ok := r.sails[race]
	if !ok {
		return nil
	}
	out := make([]Cell, 0, len(col))
	for key, s := range col {
		c := Cell{Team: r.teams[key]}
		if s != nil {
			c.Sail, c.Set = *s, true
		}
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Cell) int { return model.CompareTeams(a.Team, b.Team) })
	return out
}

// AddTeam makes team known, adding an unset cell to every race.
func (r *Rotation) AddTeam(team model.Team) {
	key := team.Key()
	if _, ok := r.teams[key]; ok {
		return
	}
	r.teams[key] = team
	for _, col := range r.sails {
		col[key] = nil
	}
}

// AddRace makes race known with an unset cell for every team.
func (r *Rotation) AddRace(race model.Race) {
	if _, ok := r.sails[race]; ok {
		return
	}
	col := make(map[model.TeamKey]*model.Sail, len(r.teams))
	for key := range r.teams {
		col[key] = nil
	}
	r.sails[race] = col
}

// RemoveTeam drops the team's cell from every race.
func (r *Rotation) RemoveTeam(team model.Team) {
	key := team.Key()
	delete(r.teams, key)
	for _, col := range r.sails {
		delete(col, key)
	}
}

// RemoveRace drops every cell of race.
func (r *Rotation) RemoveRace(race model.Race) {
	delete(r.sails, race)
}

// HasRace reports whether race is part of the rotation.
func (r *Rotation) HasRace(race model.Race) bool {
	_, ok := r.sails[race]
	return ok
}

// Races returns the known races in race order.
func (r *Rotation) Races() []model.Race {
	return slices.SortedFunc(maps.Keys(r.sails), model.CompareRaces)
}

// Teams returns the known teams in team order.
func (r *Rotation) Teams() []model.Team {
	return slices.SortedFunc(maps.Values(r.teams), model.CompareTeams)
}

// IsEmpty reports whether no race has been introduced.
func (r *Rotation) IsEmpty() bool { return len(r.sails) == 0 }
