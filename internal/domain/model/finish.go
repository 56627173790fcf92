package model

import (
	"strconv"
	"time"
)

// Finish is one team's result in one race. Two finishes with the same race
// and team are the same finish regardless of timestamp or score.
type Finish struct {
	Race      Race
	Team      Team
	Timestamp time.Time
	Score     int

	adjustment Adjustment
}

// NewFinish builds an unscored finish.
func NewFinish(race Race, team Team, ts time.Time) *Finish {
	return &Finish{Race: race, Team: team, Timestamp: ts}
}

// SetPenalty replaces any prior adjustment with p.
func (f *Finish) SetPenalty(p Penalty) { f.adjustment = p }

// SetBreakdown replaces any prior adjustment with b.
func (f *Finish) SetBreakdown(b Breakdown) { f.adjustment = b }

// ClearAdjustment removes the penalty or breakdown, if any.
func (f *Finish) ClearAdjustment() { f.adjustment = nil }

// Adjustment returns the current adjustment, or nil.
func (f *Finish) Adjustment() Adjustment { return f.adjustment }

// Penalty returns the adjustment when it is a penalty.
func (f *Finish) Penalty() (Penalty, bool) {
	p, ok := f.adjustment.(Penalty)
	return p, ok
}

// Breakdown returns the adjustment when it is a breakdown.
func (f *Finish) Breakdown() (Breakdown, bool) {
	b, ok := f.adjustment.(Breakdown)
	return b, ok
}

// Text is what a score sheet shows for the finish.
func (f *Finish) Text() string {
	switch {
	case f.adjustment != nil:
		return f.adjustment.Description()
	case f.Score > 0:
		return strconv.Itoa(f.Score)
	default:
		return ""
	}
}

// Clone returns an independent copy of f.
func (f *Finish) Clone() *Finish {
	c := *f
	return &c
}

// CompareFinishes orders finishes by race, then team. This is the identity
// order.
func CompareFinishes(a, b *Finish) int {
	if c := CompareRaces(a.Race, b.Race); c != 0 {
		return c
	}
	return CompareTeams(a.Team, b.Team)
}

// CompareByPlace orders finishes by race, then timestamp.
func CompareByPlace(a, b *Finish) int {
	if c := CompareRaces(a.Race, b.Race); c != 0 {
		return c
	}
	return a.Timestamp.Compare(b.Timestamp)
}
