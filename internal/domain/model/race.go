package model

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Race is a single numbered start within a division.
type Race struct {
	Division Division
	Number   int
}

// NewRace validates and builds a race.
func NewRace(div Division, number int) (Race, error) {
	if !div.Valid() {
		return Race{}, fmt.Errorf("%w: %s", ErrInvalidDivision, div)
	}
	if number < 1 {
		return Race{}, fmt.Errorf("%w: number %d must be at least 1", ErrInvalidRace, number)
	}
	return Race{Division: div, Number: number}, nil
}

// String renders the race as number followed by division, e.g. "3B".
func (r Race) String() string {
	return strconv.Itoa(r.Number) + r.Division.String()
}

// ParseRace reads the "<number><division>" form produced by String.
func ParseRace(s string) (Race, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Race{}, fmt.Errorf("%w: %q", ErrInvalidRace, s)
	}
	div, err := ParseDivision(s[len(s)-1:])
	if err != nil {
		return Race{}, fmt.Errorf("%w: %q", ErrInvalidRace, s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return Race{}, fmt.Errorf("%w: %q", ErrInvalidRace, s)
	}
	return NewRace(div, n)
}

// CompareRaces orders races by division, then by number.
func CompareRaces(a, b Race) int {
	if c := cmp.Compare(a.Division, b.Division); c != 0 {
		return c
	}
	return cmp.Compare(a.Number, b.Number)
}
