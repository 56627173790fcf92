package sheet

import (
	"github.com/okian/regatta/internal/domain/regatta"
	"github.com/okian/regatta/pkg/logger"
)

// Option applies a configuration option to the Importer.
type Option func(*Importer)

// WithLogger sets the logger for the importer and the regattas it builds.
func WithLogger(l logger.Logger) Option {
	return func(im *Importer) {
		if l != nil {
			im.log = l
		}
	}
}

// WithDefaultGrid sizes sheets that omit divisions or races.
func WithDefaultGrid(divisions, races int) Option {
	return func(im *Importer) {
		if divisions > 0 {
			im.divisions = divisions
		}
		if races > 0 {
			im.races = races
		}
	}
}

// WithListener subscribes l to every regatta the importer builds, before any
// data is applied.
func WithListener(l regatta.Listener) Option {
	return func(im *Importer) {
		if l != nil {
			im.listeners = append(im.listeners, l)
		}
	}
}
