// SPDX-License-Identifier: MPL-2.0

package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/reqline/reqline/internal/issue"
	"github.com/reqline/reqline/internal/render"
	"github.com/reqline/reqline/pkg/request"
)

// DefaultPrompt is printed before each line when Options.Prompt is empty.
const DefaultPrompt = "reqline> "

type (
	// Options configures a Console. Zero values select defaults: the process standard
	// streams, DefaultPrompt, text format, DefaultRegistry and a logger on ErrOut.
	Options struct {
		In       io.Reader
		Out      io.Writer
		ErrOut   io.Writer
		Prompt   string
		Format   render.Format
		Registry *Registry
		Logger   *log.Logger
		// Version is reported by the built-in version command.
		Version string
		// Verbose prints the full error chain for failures.
		Verbose bool
	}

	// Console reads request lines and dispatches them.
	Console struct {
		opts Options
	}

	// lineResult carries one read from the input goroutine.
	lineResult struct {
		line string
		err  error
	}
)

// New validates opts and fills in defaults.
func New(opts Options) (*Console, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	if opts.Format == "" {
		opts.Format = render.FormatText
	}
	if err := opts.Format.Validate(); err != nil {
		return nil, err
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Registry == nil {
		opts.Registry = DefaultRegistry(opts.Version)
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(opts.ErrOut, log.Options{Prefix: "console"})
	}
	return &Console{opts: opts}, nil
}

// Registry returns the registry commands are dispatched from.
func (c *Console) Registry() *Registry {
	return c.opts.Registry
}

// Execute parses one line and dispatches it. Blank lines are ignored. Parse failures are
// returned as *issue.ActionableError; ErrExit is returned when an exit command ran.
func (c *Console) Execute(ctx context.Context, line string) error {
	req, err := request.New(line)
	if err != nil {
		return issue.ParseError(line, err)
	}
	return c.Dispatch(ctx, req)
}

// Dispatch runs the command named by req, or echoes req in the configured format when no
// such command is registered. An empty request is a no-op.
func (c *Console) Dispatch(ctx context.Context, req *request.Request) error {
	if req.IsEmpty() {
		return nil
	}

	cmd, ok := c.opts.Registry.Lookup(req.CommandName())
	if !ok {
		c.opts.Logger.Debug("echoing unregistered command", "command", req.CommandName(), "format", c.opts.Format)
		return render.Render(c.opts.Out, req, c.opts.Format)
	}

	c.opts.Logger.Debug("dispatching", "command", cmd.Name(), "arguments", len(req.Arguments()), "options", len(req.Options()))
	return cmd.Run(ctx, req, c.opts.Out)
}

// Run is the read-eval-print loop. It returns nil on end of input or an exit command and
// ctx.Err() when ctx is canceled. Failures of individual lines are reported on ErrOut and
// do not end the loop.
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan lineResult, 1)
	next := make(chan struct{})
	defer close(next)

	go c.readLines(lines, next)

	for {
		if _, err := fmt.Fprint(c.opts.Out, c.opts.Prompt); err != nil {
			return err
		}

		var res lineResult
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res = <-lines:
		}

		if res.err != nil {
			if errors.Is(res.err, io.EOF) {
				_, _ = fmt.Fprintln(c.opts.Out)
				return nil
			}
			return fmt.Errorf("read console input: %w", res.err)
		}

		if strings.TrimSpace(res.line) != "" {
			err := c.Execute(ctx, res.line)
			if errors.Is(err, ErrExit) {
				return nil
			}
			if err != nil {
				c.report(err)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case next <- struct{}{}:
		}
	}
}

// readLines sends one line per request on next, so no input is consumed after Run returns.
func (c *Console) readLines(lines chan<- lineResult, next <-chan struct{}) {
	reader := NewLineReader(c.opts.In)

	for {
		var res lineResult
		res.line, res.err = reader.Next()

		lines <- res
		if res.err != nil {
			return
		}
		if _, ok := <-next; !ok {
			return
		}
	}
}

func (c *Console) report(err error) {
	c.opts.Logger.Debug("line failed", "error", err)

	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		_, _ = fmt.Fprintln(c.opts.ErrOut, ae.Format(c.opts.Verbose))
		return
	}
	_, _ = fmt.Fprintf(c.opts.ErrOut, "error: %v\n", err)
}
