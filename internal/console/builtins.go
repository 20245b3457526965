// SPDX-License-Identifier: MPL-2.0

package console

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/reqline/reqline/pkg/request"
)

var (
	helpNameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	helpDimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

type (
	helpCommand struct {
		registry *Registry
	}

	versionCommand struct {
		version string
	}

	exitCommand struct {
		name string
	}
)

func (c *helpCommand) Name() string        { return "help" }
func (c *helpCommand) Description() string { return "Lists the available commands" }

// Run lists every registered command, or describes the one named by the first argument.
func (c *helpCommand) Run(_ context.Context, req *request.Request, out io.Writer) error {
	if name, ok := req.Argument(0); ok {
		cmd, found := c.registry.Lookup(name)
		if !found {
			return fmt.Errorf("no help for unknown command %q", name)
		}
		_, err := fmt.Fprintf(out, "%s  %s\n", helpNameStyle.Render(cmd.Name()), cmd.Description())
		return err
	}

	cmds := c.registry.Commands()
	width := 0
	for _, cmd := range cmds {
		width = max(width, len(cmd.Name()))
	}

	if _, err := fmt.Fprintln(out, "Available commands:"); err != nil {
		return err
	}
	for _, cmd := range cmds {
		name := helpNameStyle.Width(width).Render(cmd.Name())
		if _, err := fmt.Fprintf(out, "  %s  %s\n", name, cmd.Description()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(out, helpDimStyle.Render("Any other line is parsed and echoed back."))
	return err
}

func (c *versionCommand) Name() string        { return "version" }
func (c *versionCommand) Description() string { return "Displays the application version" }

func (c *versionCommand) Run(_ context.Context, _ *request.Request, out io.Writer) error {
	_, err := fmt.Fprintln(out, c.version)
	return err
}

func (c *exitCommand) Name() string        { return c.name }
func (c *exitCommand) Description() string { return "Leaves the console" }

func (c *exitCommand) Run(context.Context, *request.Request, io.Writer) error {
	return ErrExit
}
