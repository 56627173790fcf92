package model

import (
	"fmt"
	"strings"
)

// Sailor is the identity triple provided by the membership store.
type Sailor struct {
	ID   string
	Name string
	Year int
}

// Member is a sailor record as kept per affiliation.
type Member struct {
	Sailor
	IsNew bool
}

// Role is the position a sailor holds on a boat.
type Role int

// Boat roles.
const (
	Skipper Role = iota
	Crew
)

func (r Role) String() string {
	switch r {
	case Skipper:
		return "skipper"
	case Crew:
		return "crew"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ParseRole accepts "skip", "skipper" and "crew" in any case.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skip", "skipper":
		return Skipper, nil
	case "crew":
		return Crew, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}
