// SPDX-License-Identifier: MPL-2.0

package request

import (
	"encoding/json"
	"slices"

	"github.com/reqline/reqline/pkg/cmdline"
)

var _ cmdline.Sink = (*Request)(nil)

type (
	// Option is one option occurrence. HasValue is false for flag-style options such
	// as the members of a short option cluster.
	Option struct {
		Name     string
		Value    string
		HasValue bool
	}

	// Request is a parsed console request.
	// The zero value is an empty request ready to be filled by a parser.
	Request struct {
		commandName string
		arguments   []string
		options     []Option
		events      []cmdline.Event
	}

	// Snapshot is the serializable view of a Request.
	Snapshot struct {
		Command   string           `json:"command" toml:"command"`
		Arguments []string         `json:"arguments" toml:"arguments"`
		Options   []OptionSnapshot `json:"options" toml:"options"`
	}

	// OptionSnapshot is the serializable view of an Option.
	// Value is nil when the option carries no value.
	OptionSnapshot struct {
		Name  string  `json:"name" toml:"name"`
		Value *string `json:"value" toml:"value,omitempty"`
	}
)

// New parses line into a fresh Request.
func New(line string) (*Request, error) {
	req := &Request{}
	if err := cmdline.Parse(line, req); err != nil {
		return nil, err
	}
	return req, nil
}

// FromArgs classifies pre-split arguments, such as os.Args[1:], into a fresh Request.
func FromArgs(args []string) (*Request, error) {
	req := &Request{}
	if err := cmdline.ParseTokens(args, req); err != nil {
		return nil, err
	}
	return req, nil
}

// SetCommandName sets the command name.
func (r *Request) SetCommandName(name string) {
	r.commandName = name
	r.events = append(r.events, cmdline.Event{Kind: cmdline.EventCommand, Value: name})
}

// AddArgument appends a positional argument.
func (r *Request) AddArgument(value string) {
	r.arguments = append(r.arguments, value)
	r.events = append(r.events, cmdline.Event{Kind: cmdline.EventArgument, Value: value})
}

// AddOption appends an option occurrence.
func (r *Request) AddOption(name, value string, hasValue bool) {
	r.options = append(r.options, Option{Name: name, Value: value, HasValue: hasValue})
	r.events = append(r.events, cmdline.Event{Kind: cmdline.EventOption, Name: name, Value: value, HasValue: hasValue})
}

// CommandName returns the command name, or "" if none was given.
func (r *Request) CommandName() string {
	return r.commandName
}

// Arguments returns a copy of the positional arguments in order.
func (r *Request) Arguments() []string {
	return slices.Clone(r.arguments)
}

// Argument returns the argument at index i.
func (r *Request) Argument(i int) (string, bool) {
	if i < 0 || i >= len(r.arguments) {
		return "", false
	}
	return r.arguments[i], true
}

// Options returns a copy of all option occurrences in order.
func (r *Request) Options() []Option {
	return slices.Clone(r.options)
}

// OptionValues returns every occurrence of the named option in order.
func (r *Request) OptionValues(name string) []Option {
	var out []Option
	for _, opt := range r.options {
		if opt.Name == name {
			out = append(out, opt)
		}
	}
	return out
}

// Option returns the first occurrence of the named option.
func (r *Request) Option(name string) (Option, bool) {
	idx := slices.IndexFunc(r.options, func(o Option) bool { return o.Name == name })
	if idx < 0 {
		return Option{}, false
	}
	return r.options[idx], true
}

// HasOption reports whether the named option was given at least once.
func (r *Request) HasOption(name string) bool {
	_, ok := r.Option(name)
	return ok
}

// Events returns the ordered log of writes the request received.
func (r *Request) Events() []cmdline.Event {
	return slices.Clone(r.events)
}

// IsEmpty reports whether the request received no writes at all.
func (r *Request) IsEmpty() bool {
	return len(r.events) == 0
}

// Snapshot returns the serializable view of the request.
// Arguments and Options are never nil so encoders emit empty lists.
func (r *Request) Snapshot() Snapshot {
	s := Snapshot{
		Command:   r.commandName,
		Arguments: make([]string, 0, len(r.arguments)),
		Options:   make([]OptionSnapshot, 0, len(r.options)),
	}
	s.Arguments = append(s.Arguments, r.arguments...)
	for _, opt := range r.options {
		entry := OptionSnapshot{Name: opt.Name}
		if opt.HasValue {
			v := opt.Value
			entry.Value = &v
		}
		s.Options = append(s.Options, entry)
	}
	return s
}

// MarshalJSON encodes the request as its Snapshot.
func (r *Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Snapshot())
}

// String returns "name" for flag options and "name=value" otherwise.
func (o Option) String() string {
	if !o.HasValue {
		return o.Name
	}
	return o.Name + "=" + o.Value
}
