package sheet

import "errors"

// Sentinel kinds for sheet import errors.
var (
	ErrUnknownTeam    = errors.New("unknown team")
	ErrAmbiguousTeam  = errors.New("ambiguous team reference")
	ErrDuplicateEntry = errors.New("team listed twice")
	ErrDecode         = errors.New("decode sheet")
)
