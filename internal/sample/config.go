// Package sample generates random but valid regattas and membership lists
// for demos and load testing.
package sample

import (
	"fmt"

	"github.com/okian/regatta/internal/domain/model"
)

// Config holds generator settings.
type Config struct {
	Name           string  // Regatta name
	Divisions      int     // Number of divisions
	Races          int     // Races per division
	Teams          int     // Number of teams
	SailorsPerTeam int     // Members generated per team
	PenaltyRate    float64 // Chance in [0, 1] that a finish is penalized
	Combined       bool    // Divisions start together and need distinct sails
	Seed           uint64  // Seed for reproducible output
}

// DefaultConfig returns a two-division, eighteen-race regatta.
func DefaultConfig() Config {
	return Config{
		Name:           "Sample Regatta",
		Divisions:      2,
		Races:          18,
		Teams:          12,
		SailorsPerTeam: 4,
		PenaltyRate:    0.03,
		Seed:           1,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Divisions < 1 || c.Divisions > model.MaxDivisions:
		return fmt.Errorf("%w: divisions %d", ErrInvalidConfig, c.Divisions)
	case c.Races < 1:
		return fmt.Errorf("%w: races %d", ErrInvalidConfig, c.Races)
	case c.Teams < 1:
		return fmt.Errorf("%w: teams %d", ErrInvalidConfig, c.Teams)
	case c.SailorsPerTeam < 0:
		return fmt.Errorf("%w: sailors per team %d", ErrInvalidConfig, c.SailorsPerTeam)
	case c.PenaltyRate < 0 || c.PenaltyRate > 1:
		return fmt.Errorf("%w: penalty rate %v", ErrInvalidConfig, c.PenaltyRate)
	}
	return nil
}
