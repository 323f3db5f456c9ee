package fsm

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition indicates a trigger was fired in a state that has
// no table entry for it.
var ErrInvalidTransition = errors.New("fsm: invalid transition")

// TransitionError carries the rejected (state, trigger) pair.
type TransitionError struct {
	From    State
	Trigger Trigger
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("fsm: invalid transition: %s + %s", e.From, e.Trigger)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
