package scoring

import "github.com/okian/regatta/pkg/logger"

// Option applies a configuration option to the PlainScorer.
type Option func(*PlainScorer)

// WithLogger sets the logger used to report scoring passes.
func WithLogger(l logger.Logger) Option {
	return func(s *PlainScorer) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics enables or disables Prometheus recording.
func WithMetrics(enabled bool) Option {
	return func(s *PlainScorer) {
		s.metrics = enabled
	}
}
