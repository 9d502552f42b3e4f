// Package readingstate defines the reading lifecycle of a book and the
// allowed transitions between its states.
package readingstate

import (
	"github.com/andersbekkevard/librarium-app-sub001/pkg/errcodes"
)

// State is a book's position in the reading lifecycle.
type State string

const (
	NotStarted State = "not_started"
	InProgress State = "in_progress"
	Finished   State = "finished"
)

// transitions is the directed table of allowed state changes. No self-loops:
// setting a book to its current state is not a transition.
//
//	not_started -> in_progress  (start reading)
//	in_progress -> finished     (finish)
//	in_progress -> not_started  (reset)
//	finished    -> in_progress  (re-read)
var transitions = map[State][]State{
	NotStarted: {InProgress},
	InProgress: {Finished, NotStarted},
	Finished:   {InProgress},
}

// All returns every known state, in lifecycle order.
func All() []State {
	return []State{NotStarted, InProgress, Finished}
}

// IsValid reports whether s is a known state.
func IsValid(s State) bool {
	switch s {
	case NotStarted, InProgress, Finished:
		return true
	}
	return false
}

// CanTransition reports whether moving from current to next is allowed by the
// transition table.
func CanTransition(current, next State) bool {
	for _, s := range transitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// Validate returns a validation error naming the offending pair when the
// transition is not allowed. Manual data-correction updates intentionally
// skip this check.
func Validate(current, next State) error {
	if !IsValid(next) {
		return errcodes.ValidationError("Unknown reading state " + string(next) + ".")
	}
	if !CanTransition(current, next) {
		return errcodes.InvalidStateTransition(string(current), string(next))
	}
	return nil
}
