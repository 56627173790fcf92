// Package regatta holds the aggregate root of the scoring model: the race
// list, the teams, their finishes, the sail rotation, team penalties and
// race participation records.
//
// A Regatta is not safe for concurrent use. Every mutating method notifies
// subscribed listeners synchronously, in subscription order, after the
// change has been applied; a call that fails changes nothing and notifies
// no one.
package regatta

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/okian/regatta/internal/domain/model"
	"github.com/okian/regatta/internal/domain/rotation"
	"github.com/okian/regatta/pkg/logger"
)

// Details are descriptive attributes of the event.
type Details struct {
	Start time.Time
	// Days the regatta spans.
	Duration int
	// Type is free text such as "conference" or "intersectional".
	Type string
}

// Regatta is the aggregate root.
type Regatta struct {
	name    string
	details Details

	races     []model.Race
	divCount  int
	raceCount int

	teams     []model.Team
	finishes  map[model.Race]map[model.TeamKey]*model.Finish
	rotation  *rotation.Rotation
	penalties map[model.Division]map[model.TeamKey]model.TeamPenalty
	rp        map[rpKey][]model.Sailor
	roster    []model.Sailor

	// generations counts wholesale finish removals per race.
	generations map[model.Race]int

	subs registry
	log  logger.Logger
}

// Option applies a configuration option to the Regatta.
type Option func(*Regatta)

// WithLogger sets the logger used for structural changes.
func WithLogger(l logger.Logger) Option {
	return func(g *Regatta) {
		if l != nil {
			g.log = l
		}
	}
}

// WithDetails sets the initial details without firing an event.
func WithDetails(d Details) Option {
	return func(g *Regatta) {
		g.details = d
	}
}

// New creates an empty regatta. Races are added with CreateRaces.
func New(name string, opts ...Option) *Regatta {
	g := &Regatta{
		name:        name,
		finishes:    make(map[model.Race]map[model.TeamKey]*model.Finish),
		penalties:   make(map[model.Division]map[model.TeamKey]model.TeamPenalty),
		rp:          make(map[rpKey][]model.Sailor),
		generations: make(map[model.Race]int),
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the regatta name.
func (g *Regatta) Name() string { return g.name }

// SetName renames the regatta.
func (g *Regatta) SetName(name string) {
	g.name = name
	g.fire(EventName, name)
}

// Details returns the descriptive attributes.
func (g *Regatta) Details() Details { return g.details }

// SetDetails replaces the descriptive attributes.
func (g *Regatta) SetDetails(d Details) {
	g.details = d
	g.fire(EventDetails, d)
}

// CreateRaces populates divCount divisions of raceCount races each. It may
// only be called once; use UpdateDivisions and UpdateRaces afterwards.
func (g *Regatta) CreateRaces(divCount, raceCount int) error {
	if len(g.races) > 0 {
		return ErrRacesExist
	}
	if divCount < 1 || divCount > model.MaxDivisions {
		return fmt.Errorf("%w: got %d", ErrInvalidDivisionCount, divCount)
	}
	if raceCount < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidRaceCount, raceCount)
	}
	g.divCount, g.raceCount = divCount, raceCount
	g.races = buildRaces(divCount, raceCount)
	g.log.Debug(context.Background(), "races created",
		logger.String("regatta", g.name),
		logger.Int("divisions", divCount),
		logger.Int("races", raceCount),
	)
	g.fire(EventRace, g.Races())
	return nil
}

// UpdateDivisions grows or shrinks the number of divisions. New divisions get
// the current race count; removed divisions take their finishes, rotation
// entries, RP records and team penalties with them.
func (g *Regatta) UpdateDivisions(n int) error {
	if len(g.races) == 0 {
		return ErrNoRaces
	}
	if n < 1 || n > model.MaxDivisions {
		return fmt.Errorf("%w: got %d", ErrInvalidDivisionCount, n)
	}
	if n == g.divCount {
		return nil
	}
	if n < g.divCount {
		for d := n; d < g.divCount; d++ {
			delete(g.penalties, model.Division(d))
		}
		g.truncate(func(r model.Race) bool { return r.Division.Ordinal() >= n })
	}
	g.divCount = n
	g.races = buildRaces(g.divCount, g.raceCount)
	g.log.Debug(context.Background(), "divisions updated",
		logger.String("regatta", g.name),
		logger.Int("divisions", n),
	)
	g.fire(EventRace, g.Races())
	return nil
}

// UpdateRaces grows or shrinks the number of races in every division.
func (g *Regatta) UpdateRaces(n int) error {
	if len(g.races) == 0 {
		return ErrNoRaces
	}
	if n < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidRaceCount, n)
	}
	if n == g.raceCount {
		return nil
	}
	if n < g.raceCount {
		g.truncate(func(r model.Race) bool { return r.Number > n })
	}
	g.raceCount = n
	g.races = buildRaces(g.divCount, g.raceCount)
	g.log.Debug(context.Background(), "races updated",
		logger.String("regatta", g.name),
		logger.Int("races", n),
	)
	g.fire(EventRace, g.Races())
	return nil
}

// truncate discards every piece of data tied to races matching drop.
func (g *Regatta) truncate(drop func(model.Race) bool) {
	for r := range g.finishes {
		if drop(r) {
			g.dropFinishes(r)
		}
	}
	if g.rotation != nil {
		for _, r := range g.rotation.Races() {
			if drop(r) {
				g.rotation.RemoveRace(r)
			}
		}
	}
	for k := range g.rp {
		if drop(k.race) {
			delete(g.rp, k)
		}
	}
}

func buildRaces(divCount, raceCount int) []model.Race {
	races := make([]model.Race, 0, divCount*raceCount)
	for d := 0; d < divCount; d++ {
		for n := 1; n <= raceCount; n++ {
			races = append(races, model.Race{Division: model.Division(d), Number: n})
		}
	}
	return races
}

// Races returns every race ordered by division, then number.
func (g *Regatta) Races() []model.Race { return slices.Clone(g.races) }

// RacesIn returns the races of one division in number order.
func (g *Regatta) RacesIn(div model.Division) []model.Race {
	var out []model.Race
	for _, r := range g.races {
		if r.Division == div {
			out = append(out, r)
		}
	}
	return out
}

// Divisions returns the divisions in use.
func (g *Regatta) Divisions() []model.Division {
	out := make([]model.Division, g.divCount)
	for i := range out {
		out[i] = model.Division(i)
	}
	return out
}

// DivisionCount is the number of divisions in use.
func (g *Regatta) DivisionCount() int { return g.divCount }

// RaceCount is the number of races per division.
func (g *Regatta) RaceCount() int { return g.raceCount }

// HasRace reports whether race is part of the regatta.
func (g *Regatta) HasRace(race model.Race) bool {
	return race.Division.Ordinal() >= 0 && race.Division.Ordinal() < g.divCount &&
		race.Number >= 1 && race.Number <= g.raceCount
}

func (g *Regatta) hasDivision(d model.Division) bool {
	return d.Ordinal() >= 0 && d.Ordinal() < g.divCount
}

// Rotation returns the sail rotation, or nil when none has been set.
func (g *Regatta) Rotation() *rotation.Rotation { return g.rotation }

// SetRotation replaces the sail rotation.
func (g *Regatta) SetRotation(r *rotation.Rotation) {
	g.rotation = r
	g.fire(EventRotation, r)
}

// SetSail assigns a sail in the rotation. A rotation created here starts
// with every team of the regatta, so teams without a sail show as unset.
func (g *Regatta) SetSail(race model.Race, team model.Team, sail model.Sail) error {
	if !g.HasRace(race) {
		return fmt.Errorf("%w: %s", ErrUnknownRace, race)
	}
	if !g.HasTeam(team) {
		return fmt.Errorf("%w: %s", ErrUnknownTeam, team)
	}
	if g.rotation == nil {
		g.rotation = rotation.New()
		for _, t := range g.teams {
			g.rotation.AddTeam(t)
		}
	}
	g.rotation.SetSail(race, team, sail)
	g.fire(EventRotation, g.rotation)
	return nil
}
