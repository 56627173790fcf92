package rotation

import (
	"fmt"
	"slices"

	"github.com/okian/regatta/internal/domain/model"
)

// Standard builds the classic rotation: teams sorted by name take the sails
// in order for race 1, and every following race shifts the list by step.
// The same pattern is used in every division, keyed by race number.
func Standard(teams []model.Team, sails []model.Sail, races []model.Race, step int) (*Rotation, error) {
	if len(teams) == 0 {
		return nil, ErrNoTeams
	}
	if len(sails) < len(teams) {
		return nil, fmt.Errorf("%w: %d sails for %d teams", ErrNotEnoughSails, len(sails), len(teams))
	}
	sorted := slices.Clone(teams)
	slices.SortFunc(sorted, model.CompareTeams)

	r := New()
	for _, t := range sorted {
		r.AddTeam(t)
	}
	n := len(sails)
	for _, race := range races {
		shift := ((race.Number - 1) * step) % n
		if shift < 0 {
			shift += n
		}
		for i, t := range sorted {
			r.SetSail(race, t, sails[(i+shift)%n])
		}
	}
	return r, nil
}

// Offset copies the rotation of division from onto division to, adding by
// to every sail number. Nothing is written unless every set sail in from is
// numeric.
func (r *Rotation) Offset(from, to model.Division, by int) error {
	type assignment struct {
		race model.Race
		team model.Team
		sail model.Sail
	}
	var pending []assignment
	for _, race := range r.Races() {
		if race.Division != from {
			continue
		}
		target := model.Race{Division: to, Number: race.Number}
		for _, c := range r.Sails(race) {
			if !c.Set {
				continue
			}
			s, err := c.Sail.Plus(by)
			if err != nil {
				return fmt.Errorf("offset race %s team %s: %w", race, c.Team, err)
			}
			pending = append(pending, assignment{race: target, team: c.Team, sail: s})
		}
	}
	for _, a := range pending {
		r.SetSail(a.race, a.team, a.sail)
	}
	return nil
}
