// Package model contains the value types shared by the regatta domain:
// divisions, races, teams, sails, finishes and their adjustments.
package model

import (
	"fmt"
	"strings"
)

// MaxDivisions is the number of divisions a regatta can hold (A through Z).
const MaxDivisions = 26

// Division is one of the parallel race series of a regatta. The zero value is
// division A; the ordinal is used for race index arithmetic.
type Division int

// Named divisions used across the code base and tests.
const (
	DivisionA Division = iota
	DivisionB
	DivisionC
	DivisionD
)

// Valid reports whether d is one of the 26 known divisions.
func (d Division) Valid() bool {
	return d >= 0 && d < MaxDivisions
}

// Ordinal returns the zero-based position of d.
func (d Division) Ordinal() int { return int(d) }

func (d Division) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Division(%d)", int(d))
	}
	return string(rune('A' + d))
}

// ParseDivision maps "A".."Z" (case-insensitive) to a Division.
func ParseDivision(s string) (Division, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 1 || s[0] < 'A' || s[0] > 'Z' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDivision, s)
	}
	return Division(s[0] - 'A'), nil
}

// Divisions returns the first n divisions in order.
func Divisions(n int) ([]Division, error) {
	if n < 1 || n > MaxDivisions {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDivisionCount, n)
	}
	out := make([]Division, n)
	for i := range out {
		out[i] = Division(i)
	}
	return out, nil
}
