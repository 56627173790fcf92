package rotation

import (
	"maps"
	"slices"

	"github.com/okian/regatta/internal/domain/model"
)

// Normalize returns the races whose sails are inconsistent when every
// division starts on its own: a race is bad if any cell is unset or two
// teams share a sail. The rotation is not modified.
func (r *Rotation) Normalize() []model.Race {
	var bad []model.Race
	for race, col := range r.sails {
		if !columnValid(col, make(map[string]struct{}, len(col))) {
			bad = append(bad, race)
		}
	}
	slices.SortFunc(bad, model.CompareRaces)
	return bad
}

// NormalizeCombined checks divisions that start together. For every race
// number in the rotation, in any division, the number is bad in all listed
// divisions when one of them lacks the race, when a cell is unset, or when
// a sail is issued twice across the combined start. The result is sorted
// and free of duplicates; it may name races the rotation does not hold.
func (r *Rotation) NormalizeCombined(divisions []model.Division) []model.Race {
	divs := uniqueDivisions(divisions)
	if len(divs) == 0 {
		return nil
	}
	listed := make(map[model.Division]struct{}, len(divs))
	for _, d := range divs {
		listed[d] = struct{}{}
	}

	// present counts the listed divisions holding each race number.
	present := make(map[int]int)
	for race := range r.sails {
		if _, ok := listed[race.Division]; ok {
			present[race.Number]++
		} else if _, ok := present[race.Number]; !ok {
			present[race.Number] = 0
		}
	}

	bad := make(map[model.Race]struct{})
	for number, count := range present {
		if count == len(divs) && r.combinedValid(divs, number) {
			continue
		}
		for _, d := range divs {
			bad[model.Race{Division: d, Number: number}] = struct{}{}
		}
	}
	return slices.SortedFunc(maps.Keys(bad), model.CompareRaces)
}

func (r *Rotation) combinedValid(divs []model.Division, number int) bool {
	seen := make(map[string]struct{})
	for _, d := range divs {
		if !columnValid(r.sails[model.Race{Division: d, Number: number}], seen) {
			return false
		}
	}
	return true
}

// columnValid records every sail of col in seen and fails on the first unset
// cell or repeated sail.
func columnValid(col map[model.TeamKey]*model.Sail, seen map[string]struct{}) bool {
	for _, s := range col {
		if s == nil {
			return false
		}
		key := s.String()
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
	}
	return true
}

func uniqueDivisions(in []model.Division) []model.Division {
	out := slices.Clone(in)
	slices.Sort(out)
	return slices.Compact(out)
}
