package regatta

import (
	"fmt"
	"slices"

	"github.com/okian/regatta/internal/domain/model"
)

type rpKey struct {
	race model.Race
	team model.TeamKey
	role model.Role
}

// SetRP records which sailors sailed for team in race in the given role. An
// empty list clears the record.
func (g *Regatta) SetRP(race model.Race, team model.Team, role model.Role, sailors []model.Sailor) error {
	if !g.HasRace(race) {
		return fmt.Errorf("%w: %s", ErrUnknownRace, race)
	}
	if !g.HasTeam(team) {
		return fmt.Errorf("%w: %s", ErrUnknownTeam, team)
	}
	k := rpKey{race: race, team: team.Key(), role: role}
	if len(sailors) == 0 {
		delete(g.rp, k)
	} else {
		g.rp[k] = slices.Clone(sailors)
	}
	g.fire(EventRP, race)
	return nil
}

// RP returns the sailors recorded for team in race in role.
func (g *Regatta) RP(race model.Race, team model.Team, role model.Role) []model.Sailor {
	return slices.Clone(g.rp[rpKey{race: race, team: team.Key(), role: role}])
}

// SetRoster replaces the sailors available for RP entry.
func (g *Regatta) SetRoster(sailors []model.Sailor) {
	g.roster = slices.Clone(sailors)
	g.fire(EventRPData, len(g.roster))
}

// Roster returns the sailors available for RP entry.
func (g *Regatta) Roster() []model.Sailor { return slices.Clone(g.roster) }
