// SPDX-License-Identifier: MPL-2.0

package serverbase

import (
	"errors"
	"fmt"
)

const (
	// StateCreated is the initial state; Start has not been called.
	StateCreated State = iota
	// StateStarting means Start was called and the listener is being set up.
	StateStarting
	// StateRunning means the server accepts connections.
	StateRunning
	// StateStopping means graceful shutdown is in progress.
	StateStopping
	// StateStopped is terminal.
	StateStopped
	// StateFailed is terminal; Lifecycle.Cause holds the reason.
	StateFailed
)

var (
	// ErrInvalidState is returned when a State value is not a defined lifecycle state.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidTransition is returned when a lifecycle step is attempted from the wrong state.
	ErrInvalidTransition = errors.New("invalid state transition")
)

type (
	// State is the lifecycle state of a server.
	State int32

	// InvalidStateError is returned when a State value is not recognized.
	// It wraps ErrInvalidState for errors.Is() compatibility.
	InvalidStateError struct {
		Value State
	}

	// TransitionError reports a rejected transition, e.g. starting a server twice.
	// It wraps ErrInvalidTransition for errors.Is() compatibility.
	TransitionError struct {
		From State
		To   State
	}
)

var stateNames = [...]string{
	StateCreated:  "created",
	StateStarting: "starting",
	StateRunning:  "running",
	StateStopping: "stopping",
	StateStopped:  "stopped",
	StateFailed:   "failed",
}

// String returns the lowercase state name, or "unknown".
func (s State) String() string {
	if s.Validate() != nil {
		return "unknown"
	}
	return stateNames[s]
}

// Validate returns nil if s is one of the defined lifecycle states.
func (s State) Validate() error {
	if s < StateCreated || s > StateFailed {
		return &InvalidStateError{Value: s}
	}
	return nil
}

// IsTerminal reports whether s is Stopped or Failed.
func (s State) IsTerminal() bool {
	return s == StateStopped || s == StateFailed
}

// Error implements the error interface.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state %d", int32(e.Value))
}

// Unwrap returns ErrInvalidState for errors.Is() compatibility.
func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// Error implements the error interface.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move server from %s to %s", e.From, e.To)
}

// Unwrap returns ErrInvalidTransition for errors.Is() compatibility.
func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
