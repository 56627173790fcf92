package model

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidDivision      = errors.New("invalid division")
	ErrInvalidDivisionCount = errors.New("invalid division count")
	ErrInvalidRace          = errors.New("invalid race")
	ErrEmptyTeamName        = errors.New("team name must not be empty")
	ErrNonNumericSail       = errors.New("sail has no numeric component")
	ErrNegativeSail         = errors.New("sail number must not be negative")
	ErrSailOverflow         = errors.New("sail number out of range")
	ErrInvalidPenalty       = errors.New("invalid penalty type")
	ErrInvalidBreakdown     = errors.New("invalid breakdown type")
	ErrNegativeHandicap     = errors.New("breakdown handicap must not be negative")
	ErrInvalidRole          = errors.New("invalid role")
)
