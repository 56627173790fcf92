package regatta

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidDivisionCount = errors.New("division count must be between 1 and 26")
	ErrInvalidRaceCount     = errors.New("race count must be at least 1")
	ErrNoRaces              = errors.New("regatta has no races")
	ErrRacesExist           = errors.New("races already created")
	ErrUnknownRace          = errors.New("race not in regatta")
	ErrUnknownDivision      = errors.New("division not in regatta")
	ErrUnknownTeam          = errors.New("team not in regatta")
	ErrDuplicateTeam        = errors.New("team already in regatta")
	ErrMissingFinish        = errors.New("team has no finish in race")
)
