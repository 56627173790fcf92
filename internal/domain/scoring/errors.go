package scoring

import "errors"

// Sentinel error kinds for this package.
var (
	ErrNilRegatta = errors.New("regatta is nil")
)
