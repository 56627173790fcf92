package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sail is a boat sail number such as "A12", "205" or "12-b". It is parsed
// into a prefix, an optional zero-padded number and a suffix so that sails
// can be incremented when building rotations.
type Sail struct {
	prefix  string
	number  int
	width   int
	suffix  string
	numeric bool
}

// ParseSail splits s around its rightmost run of digits. Characters right of
// the run form the suffix and everything left of it, digits included, forms
// the prefix: "4b21" is ("4b", 21, ""). Without digits, or when the run does
// not fit an int, the whole string is the suffix and the sail is
// non-numerical.
func ParseSail(s string) Sail {
	end := len(s)
	for end > 0 && !isDigit(s[end-1]) {
		end--
	}
	if end == 0 {
		return Sail{suffix: s}
	}
	start := end
	for start > 0 && isDigit(s[start-1]) {
		start--
	}
	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		return Sail{suffix: s}
	}
	return Sail{
		prefix:  s[:start],
		number:  n,
		width:   end - start,
		suffix:  s[end:],
		numeric: true,
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Numeric reports whether the sail carries a number.
func (s Sail) Numeric() bool { return s.numeric }

// Number returns the numeric component and whether it is present.
func (s Sail) Number() (int, bool) { return s.number, s.numeric }

// Prefix returns the text before the number.
func (s Sail) Prefix() string { return s.prefix }

// Suffix returns the text after the number, or the whole sail when
// non-numerical.
func (s Sail) Suffix() string { return s.suffix }

// Width is the zero-padding width of the number.
func (s Sail) Width() int { return s.width }

// String returns the canonical form.
func (s Sail) String() string {
	if !s.numeric {
		return s.suffix
	}
	var b strings.Builder
	b.WriteString(s.prefix)
	fmt.Fprintf(&b, "%0*d", s.width, s.number)
	b.WriteString(s.suffix)
	return b.String()
}

// Add increments the numeric component by n. The sail is left unchanged on
// error.
func (s *Sail) Add(n int) error {
	if !s.numeric {
		return fmt.Errorf("%w: %q", ErrNonNumericSail, s.String())
	}
	if n > 0 && n > math.MaxInt-s.number {
		return fmt.Errorf("%w: %q%+d", ErrSailOverflow, s.String(), n)
	}
	if s.number+n < 0 {
		return fmt.Errorf("%w: %q%+d", ErrNegativeSail, s.String(), n)
	}
	s.number += n
	return nil
}

// Plus returns a copy of s incremented by n.
func (s Sail) Plus(n int) (Sail, error) {
	err := s.Add(n)
	return s, err
}

// Equal reports whether both sails have the same canonical form.
func (s Sail) Equal(o Sail) bool { return s.String() == o.String() }

// CompareSails orders sails lexicographically by canonical form.
func CompareSails(a, b Sail) int {
	return strings.Compare(a.String(), b.String())
}
