// SPDX-License-Identifier: MPL-2.0

package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/reqline/reqline/pkg/request"
)

var (
	// ErrExit is returned by a command to end the console loop.
	ErrExit = errors.New("exit console")
	// ErrDuplicateCommand is returned when a command name is registered twice.
	ErrDuplicateCommand = errors.New("duplicate command")
	// ErrInvalidCommandName is returned for empty names or names containing spaces.
	ErrInvalidCommandName = errors.New("invalid command name")
)

type (
	// Command is a console command dispatched by name.
	Command interface {
		Name() string
		Description() string
		Run(ctx context.Context, req *request.Request, out io.Writer) error
	}

	// CommandFunc adapts a function to the Command interface.
	CommandFunc struct {
		CommandName string
		Summary     string
		Fn          func(ctx context.Context, req *request.Request, out io.Writer) error
	}

	// Registry holds the commands a Console can dispatch to. It is safe for concurrent
	// use, so one Registry can back many SSH sessions.
	Registry struct {
		mu       sync.RWMutex
		commands map[string]Command
	}

	// DuplicateCommandError is returned by Register when the name is taken.
	// It wraps ErrDuplicateCommand for errors.Is() compatibility.
	DuplicateCommandError struct {
		Name string
	}

	// InvalidCommandNameError is returned by Register for unusable names.
	// It wraps ErrInvalidCommandName for errors.Is() compatibility.
	InvalidCommandNameError struct {
		Name string
	}
)

// Name implements Command.
func (c CommandFunc) Name() string { return c.CommandName }

// Description implements Command.
func (c CommandFunc) Description() string { return c.Summary }

// Run implements Command.
func (c CommandFunc) Run(ctx context.Context, req *request.Request, out io.Writer) error {
	return c.Fn(ctx, req, out)
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// DefaultRegistry returns a registry holding the built-in commands.
func DefaultRegistry(version string) *Registry {
	r := NewRegistry()
	r.MustRegister(
		&helpCommand{registry: r},
		&versionCommand{version: version},
		&exitCommand{name: "exit"},
		&exitCommand{name: "quit"},
	)
	return r
}

// Register adds commands. It stops at the first invalid or duplicate name.
func (r *Registry) Register(cmds ...Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cmd := range cmds {
		name := cmd.Name()
		if name == "" || strings.ContainsRune(name, ' ') {
			return &InvalidCommandNameError{Name: name}
		}
		if _, exists := r.commands[name]; exists {
			return &DuplicateCommandError{Name: name}
		}
		r.commands[name] = cmd
	}
	return nil
}

// MustRegister is Register that panics on error. Use for static command sets.
func (r *Registry) MustRegister(cmds ...Command) {
	if err := r.Register(cmds...); err != nil {
		panic(err)
	}
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Commands returns the registered commands sorted by name.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	slices.SortFunc(out, func(a, b Command) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return out
}

// Error implements the error interface.
func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("command %q is already registered", e.Name)
}

// Unwrap returns ErrDuplicateCommand for errors.Is() compatibility.
func (e *DuplicateCommandError) Unwrap() error { return ErrDuplicateCommand }

// Error implements the error interface.
func (e *InvalidCommandNameError) Error() string {
	return fmt.Sprintf("invalid command name %q", e.Name)
}

// Unwrap returns ErrInvalidCommandName for errors.Is() compatibility.
func (e *InvalidCommandNameError) Unwrap() error { return ErrInvalidCommandName }
