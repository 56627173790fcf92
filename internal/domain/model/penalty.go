package model

import (
	"fmt"
	"strings"
)

// TeamPenaltyType is the reason code of a penalty applied to a team for a
// whole division rather than a single race.
type TeamPenaltyType string

// Team penalty codes.
const (
	TeamPenaltyPFD TeamPenaltyType = "PFD" // illegal lifejacket
	TeamPenaltyLOP TeamPenaltyType = "LOP" // missing pinnie
	TeamPenaltyMRP TeamPenaltyType = "MRP" // missing RP information
	TeamPenaltyGDQ TeamPenaltyType = "GDQ" // general disqualification
)

var teamPenaltyTypes = map[TeamPenaltyType]struct{}{
	TeamPenaltyPFD: {},
	TeamPenaltyLOP: {},
	TeamPenaltyMRP: {},
	TeamPenaltyGDQ: {},
}

// ParseTeamPenaltyType accepts a case-insensitive team penalty code.
func ParseTeamPenaltyType(s string) (TeamPenaltyType, error) {
	t := TeamPenaltyType(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := teamPenaltyTypes[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPenalty, s)
	}
	return t, nil
}

// TeamPenalty is keyed by (division, team); a regatta holds at most one per key.
type TeamPenalty struct {
	Division Division
	Team     Team
	Type     TeamPenaltyType
	Comments string
}
