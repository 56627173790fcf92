package regatta

import (
	"fmt"
	"slices"
)

// EventType tells listeners which part of the regatta changed.
type EventType int

// Change kinds.
const (
	EventDetails EventType = iota
	EventName
	EventTeam
	EventRace
	EventRotation
	EventFinish
	EventScore
	EventRP
	EventRPData
)

var eventNames = [...]string{
	EventDetails:  "DETAILS",
	EventName:     "NAME",
	EventTeam:     "TEAM",
	EventRace:     "RACE",
	EventRotation: "ROTATION",
	EventFinish:   "FINISH",
	EventScore:    "SCORE",
	EventRP:       "RP",
	EventRPData:   "RP_DATA",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return fmt.Sprintf("EventType(%d)", int(t))
	}
	return eventNames[t]
}

// EventTypes lists every change kind in declaration order.
func EventTypes() []EventType {
	out := make([]EventType, len(eventNames))
	for i := range out {
		out[i] = EventType(i)
	}
	return out
}

// Event is delivered to listeners after a mutation has been applied.
// Source is the value that changed: a team, a finish, the race list, etc.
type Event struct {
	Regatta *Regatta
	Type    EventType
	Source  any
}

// Listener receives change notifications.
type Listener interface {
	RegattaChanged(e Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e Event)

// RegattaChanged calls f(e).
func (f ListenerFunc) RegattaChanged(e Event) { f(e) }

// Subscription identifies a registered listener.
type Subscription uint64

type subscriber struct {
	id       Subscription
	listener Listener
}

// registry dispatches synchronously, in subscription order.
type registry struct {
	next    Subscription
	entries []subscriber
}

func (r *registry) add(l Listener) Subscription {
	r.next++
	r.entries = append(r.entries, subscriber{id: r.next, listener: l})
	return r.next
}

func (r *registry) remove(id Subscription) bool {
	i := slices.IndexFunc(r.entries, func(s subscriber) bool { return s.id == id })
	if i < 0 {
		return false
	}
	r.entries = slices.Delete(r.entries, i, i+1)
	return true
}

func (r *registry) dispatch(e Event) {
	// Listeners may unsubscribe while being notified.
	for _, s := range slices.Clone(r.entries) {
		s.listener.RegattaChanged(e)
	}
}

// Subscribe registers l for every change and returns a handle for
// Unsubscribe.
func (g *Regatta) Subscribe(l Listener) Subscription {
	return g.subs.add(l)
}

// Unsubscribe removes a listener. It reports whether the subscription was
// active.
func (g *Regatta) Unsubscribe(id Subscription) bool {
	return g.subs.remove(id)
}

func (g *Regatta) fire(t EventType, source any) {
	g.subs.dispatch(Event{Regatta: g, Type: t, Source: source})
}
