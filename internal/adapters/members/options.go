package members

import "github.com/okian/regatta/pkg/logger"

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithLogger sets the logger for store operations.
func WithLogger(l logger.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithCRLF forces CRLF line endings on write. The default follows the
// operating system.
func WithCRLF(crlf bool) Option {
	return func(s *FileStore) {
		s.crlf = crlf
	}
}
