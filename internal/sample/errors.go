package sample

import "errors"

// Sentinel kinds for generator errors.
var (
	ErrInvalidConfig = errors.New("invalid sample config")
)
