// Package sheet imports a regatta described in a YAML document.
//
// A sheet lists the teams, the race grid, the sail rotation, the order in
// which teams finished each race, and any division-wide team penalties:
//
//	name: Fall Open
//	divisions: 2
//	races: 3
//	teams:
//	  - {name: MIT 1, short: MIT, affiliation: MIT}
//	rotation:
//	  1A: {MIT 1: "101"}
//	finishes:
//	  1A: [MIT 1, {team: Tufts, penalty: DSQ}]
//	penalties:
//	  - {division: A, team: MIT 1, type: PFD}
//
// Teams are referenced by long name, or by short name where that is unique.
package sheet

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Sheet is the document form of a regatta.
type Sheet struct {
	Name      string    `yaml:"name"`
	Start     time.Time `yaml:"start,omitempty"`
	Duration  int       `yaml:"duration,omitempty"`
	Type      string    `yaml:"type,omitempty"`
	Divisions int       `yaml:"divisions,omitempty"`
	Races     int       `yaml:"races,omitempty"`

	Teams []TeamRow `yaml:"teams"`

	// Rotation maps race -> team -> sail.
	Rotation map[string]map[string]string `yaml:"rotation,omitempty"`
	// Finishes maps race -> teams in order of finish.
	Finishes  map[string][]FinishRow `yaml:"finishes,omitempty"`
	Penalties []PenaltyRow           `yaml:"penalties,omitempty"`
}

// TeamRow describes one team.
type TeamRow struct {
	Name        string `yaml:"name"`
	Short       string `yaml:"short,omitempty"`
	Affiliation string `yaml:"affiliation,omitempty"`
}

// FinishRow is one team's finish. A bare scalar is shorthand for a row with
// only the team set.
type FinishRow struct {
	Team      string    `yaml:"team"`
	Time      time.Time `yaml:"time,omitempty"`
	Penalty   string    `yaml:"penalty,omitempty"`
	Breakdown string    `yaml:"breakdown,omitempty"`
	Handicap  int       `yaml:"handicap,omitempty"`
	Comments  string    `yaml:"comments,omitempty"`
}

// UnmarshalYAML accepts either a team reference or a full mapping.
func (f *FinishRow) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*f = FinishRow{Team: value.Value}
		return nil
	}
	type plain FinishRow
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*f = FinishRow(p)
	return nil
}

// MarshalYAML writes rows that carry only a team as a bare scalar.
func (f FinishRow) MarshalYAML() (any, error) {
	if f == (FinishRow{Team: f.Team}) {
		return f.Team, nil
	}
	type plain FinishRow
	return plain(f), nil
}

// PenaltyRow is a division-wide team penalty.
type PenaltyRow struct {
	Division string `yaml:"division"`
	Team     string `yaml:"team"`
	Type     string `yaml:"type"`
	Comments string `yaml:"comments,omitempty"`
}
