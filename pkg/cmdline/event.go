// SPDX-License-Identifier: MPL-2.0

package cmdline

import (
	"errors"
	"fmt"
)

const (
	// EventCommand sets the command name.
	EventCommand EventKind = iota + 1
	// EventArgument appends a positional argument.
	EventArgument
	// EventOption appends an option occurrence.
	EventOption
)

// ErrInvalidEventKind is returned when an EventKind value is not recognized.
var ErrInvalidEventKind = errors.New("invalid event kind")

type (
	// EventKind is the kind of write a classified token produces.
	EventKind int

	// InvalidEventKindError is returned when an EventKind value is not recognized.
	// It wraps ErrInvalidEventKind for errors.Is() compatibility.
	InvalidEventKindError struct {
		Value EventKind
	}

	// Event is one classified write, in input order.
	//
	// For EventCommand and EventArgument only Value is set. For EventOption, Name holds
	// the option name and HasValue reports whether Value is meaningful: short options
	// never carry a value.
	Event struct {
		Kind     EventKind
		Name     string
		Value    string
		HasValue bool
	}

	// Sink receives the classified parts of a request line.
	// Parsers only ever write to a Sink; they never read back from it.
	Sink interface {
		// SetCommandName is called at most once, with the first positional token.
		SetCommandName(name string)
		// AddArgument appends a positional argument.
		AddArgument(value string)
		// AddOption appends one option occurrence. Repeated names are appended, not replaced.
		AddOption(name, value string, hasValue bool)
	}
)

// String returns the lowercase name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventCommand:
		return "command"
	case EventArgument:
		return "argument"
	case EventOption:
		return "option"
	default:
		return "unknown"
	}
}

// Validate returns nil if the EventKind is one of the defined kinds.
func (k EventKind) Validate() error {
	switch k {
	case EventCommand, EventArgument, EventOption:
		return nil
	default:
		return &InvalidEventKindError{Value: k}
	}
}

// Error implements the error interface for InvalidEventKindError.
func (e *InvalidEventKindError) Error() string {
	return fmt.Sprintf("invalid event kind %d (valid: 1=command, 2=argument, 3=option)", e.Value)
}

// Unwrap returns ErrInvalidEventKind for errors.Is() compatibility.
func (e *InvalidEventKindError) Unwrap() error {
	return ErrInvalidEventKind
}

// String renders the event for diagnostics, e.g. `option foo=bar` or `option a`.
func (e Event) String() string {
	switch e.Kind {
	case EventOption:
		if e.HasValue {
			return fmt.Sprintf("%s %s=%s", e.Kind, e.Name, e.Value)
		}
		return fmt.Sprintf("%s %s", e.Kind, e.Name)
	default:
		return fmt.Sprintf("%s %s", e.Kind, e.Value)
	}
}

// Apply replays events into sink in order. Events with an unknown kind are skipped.
func Apply(events []Event, sink Sink) {
	for _, ev := range events {
		switch ev.Kind {
		case EventCommand:
			sink.SetCommandName(ev.Value)
		case EventArgument:
			sink.AddArgument(ev.Value)
		case EventOption:
			sink.AddOption(ev.Name, ev.Value, ev.HasValue)
		}
	}
}
