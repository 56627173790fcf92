package rotation

import "errors"

// Sentinel kinds for rotation building errors.
var (
	ErrNoTeams        = errors.New("rotation needs at least one team")
	ErrNotEnoughSails = errors.New("not enough sails for teams")
)
