// Package config defines the configuration of the regatta tools and how it
// is loaded.
package config

import (
	"fmt"
	"slices"
	"strings"
)

// Division and race bounds mirrored from the domain model.
const (
	maxDivisions = 26
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MembersDir is the directory of the membership store, one file per
	// affiliation code.
	MembersDir string `koanf:"members_dir"`

	// MetricsFile, when set, receives a Prometheus textfile export after
	// every command.
	MetricsFile string `koanf:"metrics_file"`

	// MetricsEnabled toggles metric recording by the scorer.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// Combined selects combined-division rotation checks, used when all
	// divisions start together.
	Combined bool `koanf:"combined"`

	// DefaultDivisions and DefaultRaces size a sheet that does not state
	// its own race grid.
	DefaultDivisions int `koanf:"default_divisions"`
	DefaultRaces     int `koanf:"default_races"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		MembersDir:       "members",
		MetricsEnabled:   true,
		Combined:         false,
		DefaultDivisions: 2,
		DefaultRaces:     18,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.MembersDir == "" {
		return fmt.Errorf("%w: members_dir must not be empty", ErrInvalidConfig)
	}
	if c.DefaultDivisions < 1 || c.DefaultDivisions > maxDivisions {
		return fmt.Errorf("%w: default_divisions %d", ErrInvalidConfig, c.DefaultDivisions)
	}
	if c.DefaultRaces < 1 {
		return fmt.Errorf("%w: default_races %d", ErrInvalidConfig, c.DefaultRaces)
	}
	return nil
}
