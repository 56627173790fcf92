package model

import (
	"fmt"
	"strings"
)

// PenaltyType is the reason code of a finish penalty.
type PenaltyType string

// Finish penalty codes.
const (
	PenaltyDSQ PenaltyType = "DSQ" // disqualified
	PenaltyOCS PenaltyType = "OCS" // on course side at start
	PenaltyDNF PenaltyType = "DNF" // did not finish
	PenaltyDNS PenaltyType = "DNS" // did not start
	PenaltyRAF PenaltyType = "RAF" // retired after finishing
)

// BreakdownType is the reason code of a breakdown or redress.
type BreakdownType string

// Breakdown codes.
const (
	BreakdownBKD BreakdownType = "BKD" // breakdown
	BreakdownRDG BreakdownType = "RDG" // redress given
	BreakdownBYE BreakdownType = "BYE" // team is awarded average
)

var penaltyTypes = map[PenaltyType]string{
	PenaltyDSQ: "Disqualification",
	PenaltyOCS: "On course side after start",
	PenaltyDNF: "Did not finish",
	PenaltyDNS: "Did not start",
	PenaltyRAF: "Retired after finishing",
}

var breakdownTypes = map[BreakdownType]string{
	BreakdownBKD: "Breakdown",
	BreakdownRDG: "Yacht given redress",
	BreakdownBYE: "Team is awarded average",
}

// ParsePenaltyType accepts a case-insensitive penalty code.
func ParsePenaltyType(s string) (PenaltyType, error) {
	t := PenaltyType(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := penaltyTypes[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPenalty, s)
	}
	return t, nil
}

// ParseBreakdownType accepts a case-insensitive breakdown code.
func ParseBreakdownType(s string) (BreakdownType, error) {
	t := BreakdownType(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := breakdownTypes[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidBreakdown, s)
	}
	return t, nil
}

// Adjustment overrides the normal score of a finish. It is either a Penalty
// or a Breakdown; no other implementations exist.
type Adjustment interface {
	// Code is the reason code, e.g. "DSQ".
	Code() string
	// Comments are free-form notes entered with the adjustment.
	Comments() string
	// Description is the text shown in place of the score.
	Description() string

	adjustment()
}

// Penalty is an adjustment that scores the finish as last plus one.
type Penalty struct {
	Type  PenaltyType
	Notes string
}

// NewPenalty validates the penalty code.
func NewPenalty(t PenaltyType, comments string) (Penalty, error) {
	if _, ok := penaltyTypes[t]; !ok {
		return Penalty{}, fmt.Errorf("%w: %q", ErrInvalidPenalty, string(t))
	}
	return Penalty{Type: t, Notes: comments}, nil
}

func (p Penalty) Code() string        { return string(p.Type) }
func (p Penalty) Comments() string    { return p.Notes }
func (p Penalty) Description() string { return string(p.Type) }
func (Penalty) adjustment()           {}

// Breakdown is an adjustment that may award the finish a handicapped score.
type Breakdown struct {
	Type     BreakdownType
	Notes    string
	Handicap int
}

// NewBreakdown validates the breakdown code and handicap.
func NewBreakdown(t BreakdownType, comments string, handicap int) (Breakdown, error) {
	if _, ok := breakdownTypes[t]; !ok {
		return Breakdown{}, fmt.Errorf("%w: %q", ErrInvalidBreakdown, string(t))
	}
	if handicap < 0 {
		return Breakdown{}, fmt.Errorf("%w: %d", ErrNegativeHandicap, handicap)
	}
	return Breakdown{Type: t, Notes: comments, Handicap: handicap}, nil
}

func (b Breakdown) Code() string        { return string(b.Type) }
func (b Breakdown) Comments() string    { return b.Notes }
func (b Breakdown) Description() string { return string(b.Type) }
func (Breakdown) adjustment()           {}

// PenaltyTypeDescription returns the long description of a penalty code.
func PenaltyTypeDescription(t PenaltyType) string { return penaltyTypes[t] }

// BreakdownTypeDescription returns the long description of a breakdown code.
func BreakdownTypeDescription(t BreakdownType) string { return breakdownTypes[t] }
