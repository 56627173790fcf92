package model

import (
	"cmp"
	"strings"
)

// TeamKey is the identity of a team. Two teams with the same long and short
// name are the same team regardless of affiliation.
type TeamKey struct {
	LongName  string
	ShortName string
}

// Team is a competing team.
type Team struct {
	LongName    string
	ShortName   string
	Affiliation string
}

// NewTeam trims the long name and rejects it when empty.
func NewTeam(longName, shortName, affiliation string) (Team, error) {
	longName = strings.TrimSpace(longName)
	if longName == "" {
		return Team{}, ErrEmptyTeamName
	}
	return Team{
		LongName:    longName,
		ShortName:   strings.TrimSpace(shortName),
		Affiliation: strings.TrimSpace(affiliation),
	}, nil
}

// Key returns the identity of t.
func (t Team) Key() TeamKey {
	return TeamKey{LongName: t.LongName, ShortName: t.ShortName}
}

func (t Team) String() string {
	if t.ShortName == "" {
		return t.LongName
	}
	return t.LongName + " " + t.ShortName
}

// CompareTeams orders teams by long name, then short name.
func CompareTeams(a, b Team) int {
	return CompareTeamKeys(a.Key(), b.Key())
}

// CompareTeamKeys orders team identities by long name, then short name.
func CompareTeamKeys(a, b TeamKey) int {
	if c := cmp.Compare(a.LongName, b.LongName); c != 0 {
		return c
	}
	return cmp.Compare(a.ShortName, b.ShortName)
}
