// Package fsm implements the interaction state machine that decides
// whether the ball is idle, held by the pointer, or in free flight.
// The machine is the single source of truth for which path is allowed
// to mutate the body on any given tick.
package fsm

import (
	"fmt"

	"go.uber.org/zap"
)

// State is the current interaction mode.
type State int

const (
	Idle State = iota
	Held
	Thrown
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Held:
		return "held"
	case Thrown:
		return "thrown"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Trigger is a named event that may cause a transition.
type Trigger int

const (
	Grab Trigger = iota
	Release
	RestReached
	Reset
)

func (t Trigger) String() string {
	switch t {
	case Grab:
		return "grab"
	case Release:
		return "release"
	case RestReached:
		return "rest_reached"
	case Reset:
		return "reset"
	default:
		return fmt.Sprintf("trigger(%d)", int(t))
	}
}

type transition struct {
	from State
	trig Trigger
}

// The full legal transition set. Reset is valid from every state.
var transitions = map[transition]State{
	{Idle, Grab}:          Held,
	{Held, Release}:       Thrown,
	{Thrown, RestReached}: Idle,
	{Idle, Reset}:         Idle,
	{Held, Reset}:         Idle,
	{Thrown, Reset}:       Idle,
}

// Observer receives committed transitions. Observers run synchronously
// inside Fire, in subscription order.
type Observer func(prev, next State, trig Trigger)

type subscription struct {
	id int
	fn Observer
}

// Machine validates triggers against the transition table and notifies
// subscribers on every committed transition. Not safe for concurrent
// use: all calls must come from the host event loop.
type Machine struct {
	state  State
	subs   []subscription
	nextID int
	log    *zap.Logger
}

// New returns a machine starting in Idle.
func New(log *zap.Logger) *Machine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Machine{state: Idle, log: log}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// CanFire reports whether trig is valid for the current state. Always
// safe to call, never mutates.
func (m *Machine) CanFire(trig Trigger) bool {
	_, ok := transitions[transition{m.state, trig}]
	return ok
}

// Fire applies trig if the (state, trigger) pair is in the table. On an
// invalid pair it returns a TransitionError and leaves the state
// untouched. On success every subscriber is notified, in order, before
// Fire returns; a panicking subscriber is recovered and logged without
// aborting the remaining notifications or rolling back the transition.
func (m *Machine) Fire(trig Trigger) error {
	next, ok := transitions[transition{m.state, trig}]
	if !ok {
		return &TransitionError{From: m.state, Trigger: trig}
	}
	prev := m.state
	m.state = next
	for _, sub := range m.subs {
		m.notify(sub, prev, next, trig)
	}
	return nil
}

func (m *Machine) notify(sub subscription, prev, next State, trig Trigger) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("state observer panicked",
				zap.Int("subscription", sub.id),
				zap.Stringer("from", prev),
				zap.Stringer("to", next),
				zap.Stringer("trigger", trig),
				zap.Any("panic", r))
		}
	}()
	sub.fn(prev, next, trig)
}

// Subscribe registers obs and returns an id usable with Unsubscribe.
func (m *Machine) Subscribe(obs Observer) int {
	id := m.nextID
	m.nextID++
	m.subs = append(m.subs, subscription{id: id, fn: obs})
	return id
}

// Unsubscribe removes the subscription with the given id. Unknown ids
// are ignored.
func (m *Machine) Unsubscribe(id int) {
	for i, sub := range m.subs {
		if sub.id == id {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			return
		}
	}
}
