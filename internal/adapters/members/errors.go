package members

import "errors"

// Sentinel kinds for membership store errors.
var (
	ErrNotFound           = errors.New("affiliation not found")
	ErrMalformed          = errors.New("malformed member record")
	ErrInvalidAffiliation = errors.New("invalid affiliation code")
)
