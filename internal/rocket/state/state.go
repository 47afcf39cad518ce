// Package state is the scene's phase machine: the single source of truth for
// whether the rocket may be launched or interacted with.
package state

import (
	"errors"
	"fmt"
)

// State is a scene phase.
type State int

const (
	Idle State = iota
	Preparing
	Launching
	Resetting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Preparing:
		return "preparing"
	case Launching:
		return "launching"
	case Resetting:
		return "resetting"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrInvalidTransition is returned by Next for edges outside the table.
var ErrInvalidTransition = errors.New("invalid state transition")

// edges lists the allowed next states.
var edges = map[State][]State{
	Idle:      {Preparing},
	Preparing: {Launching, Idle},
	Launching: {Resetting},
	Resetting: {Idle},
}

// Allowed reports whether from -> to is a legal edge.
func Allowed(from, to State) bool {
	for _, s := range edges[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Next validates from -> to. It returns to on success, from and a wrapped
// ErrInvalidTransition otherwise.
func Next(from, to State) (State, error) {
	if !Allowed(from, to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return to, nil
}
