// SPDX-License-Identifier: MPL-2.0

package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/reqline/reqline/internal/issue"
	"github.com/reqline/reqline/internal/render"
	"github.com/reqline/reqline/pkg/cmdline"
	"github.com/reqline/reqline/pkg/request"
)

type testConsole struct {
	*Console
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newTestConsole(t *testing.T, input string, mutate func(*Options)) testConsole {
	t.Helper()

	var out, errOut bytes.Buffer
	opts := Options{
		In:      strings.NewReader(input),
		Out:     &out,
		ErrOut:  &errOut,
		Prompt:  "> ",
		Format:  render.FormatEvents,
		Version: "v1.2.3",
		Logger:  log.New(io.Discard),
	}
	if mutate != nil {
		mutate(&opts)
	}

	c, err := New(opts)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	return testConsole{Console: c, out: &out, errOut: &errOut}
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	c, err := New(Options{Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if c.opts.Prompt != DefaultPrompt {
		t.Errorf("Prompt = %q, want %q", c.opts.Prompt, DefaultPrompt)
	}
	if c.opts.Format != render.FormatText {
		t.Errorf("Format = %q, want text", c.opts.Format)
	}
	for _, name := range []string{"help", "version", "exit", "quit"} {
		if _, ok := c.Registry().Lookup(name); !ok {
			t.Errorf("built-in %q is not registered", name)
		}
	}
}

func TestNew_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Format: "yaml"})
	if !errors.Is(err, render.ErrUnknownFormat) {
		t.Errorf("New() error = %v, want ErrUnknownFormat", err)
	}
}

func TestExecute_EchoesUnregisteredCommand(t *testing.T) {
	t.Parallel()

	tc := newTestConsole(t, "", nil)
	if err := tc.Execute(context.Background(), `deploy --env=prod -v "app one"`); err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	want := "command deploy\noption env=prod\noption v\nargument app one\n"
	if got := tc.out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestExecute_BlankLine(t *testing.T) {
	t.Parallel()

	tc := newTestConsole(t, "", nil)
	if err := tc.Execute(context.Background(), "   "); err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}
	if tc.out.Len() != 0 {
		t.Errorf("blank line produced output %q", tc.out.String())
	}
}

func TestExecute_ParseError(t *testing.T) {
	t.Parallel()

	tc := newTestConsole(t, "", nil)

	tests := []struct {
		line     string
		sentinel error
	}{
		{line: `say "hello`, sentinel: cmdline.ErrMalformedInput},
		{line: `build --target`, sentinel: cmdline.ErrMalformedOption},
	}

	for _, tt := range tests {
		err := tc.Execute(context.Background(), tt.line)
		var ae *issue.ActionableError
		if !errors.As(err, &ae) {
			t.Fatalf("Execute(%q) = %v, want *issue.ActionableError", tt.line, err)
		}
		if !errors.Is(err, tt.sentinel) {
			t.Errorf("Execute(%q) should wrap %v", tt.line, tt.sentinel)
		}
		if ae.Resource != tt.line {
			t.Errorf("Resource = %q, want the input line", ae.Resource)
		}
	}
}

func TestExecute_DispatchesRegisteredCommand(t *testing.T) {
	t.Parallel()

	var got *request.Request
	tc := newTestConsole(t, "", nil)
	tc.Registry().MustRegister(CommandFunc{
		CommandName: "greet",
		Summary:     "Says hello",
		Fn: func(_ context.Context, req *request.Request, out io.Writer) error {
			got = req
			name := "world"
			if opt, ok := req.Option("name"); ok {
				name = opt.Value
			}
			_, err := io.WriteString(out, "hello "+name+"\n")
			return err
		},
	})

	if err := tc.Execute(context.Background(), `greet --name="Ada Lovelace"`); err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}
	if tc.out.String() != "hello Ada Lovelace\n" {
		t.Errorf("output = %q", tc.out.String())
	}
	if got == nil || got.CommandName() != "greet" {
		t.Errorf("command received request %v", got)
	}
}

func TestBuiltins(t *testing.T) {
	t.Parallel()

	t.Run("version", func(t *testing.T) {
		t.Parallel()
		tc := newTestConsole(t, "", nil)
		if err := tc.Execute(context.Background(), "version"); err != nil {
			t.Fatalf("Execute() returned error: %v", err)
		}
		if tc.out.String() != "v1.2.3\n" {
			t.Errorf("output = %q", tc.out.String())
		}
	})

	t.Run("help lists commands", func(t *testing.T) {
		t.Parallel()
		tc := newTestConsole(t, "", nil)
		if err := tc.Execute(context.Background(), "help"); err != nil {
			t.Fatalf("Execute() returned error: %v", err)
		}
		for _, want := range []string{"help", "version", "Displays the application version", "exit", "quit"} {
			if !strings.Contains(tc.out.String(), want) {
				t.Errorf("help output missing %q:\n%s", want, tc.out.String())
			}
		}
	})

	t.Run("help for one command", func(t *testing.T) {
		t.Parallel()
		tc := newTestConsole(t, "", nil)
		if err := tc.Execute(context.Background(), "help version"); err != nil {
			t.Fatalf("Execute() returned error: %v", err)
		}
		if !strings.Contains(tc.out.String(), "Displays the application version") {
			t.Errorf("output = %q", tc.out.String())
		}
		if err := tc.Execute(context.Background(), "help nope"); err == nil {
			t.Error("help for an unknown command should fail")
		}
	})

	t.Run("exit and quit", func(t *testing.T) {
		t.Parallel()
		tc := newTestConsole(t, "", nil)
		for _, line := range []string{"exit", "quit"} {
			if err := tc.Execute(context.Background(), line); !errors.Is(err, ErrExit) {
				t.Errorf("Execute(%q) = %v, want ErrExit", line, err)
			}
		}
	})
}

func TestRun_ProcessesLinesUntilEOF(t *testing.T) {
	t.Parallel()

	tc := newTestConsole(t, "run a\n\n   \nrun b\n", nil)
	if err := tc.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	want := "> command run\nargument a\n> > > command run\nargument b\n> \n"
	if got := tc.out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRun_ContinuesAfterParseError(t *testing.T) {
	t.Parallel()

	tc := newTestConsole(t, "say 'oops\nsay ok\n", nil)
	if err := tc.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	if !strings.Contains(tc.errOut.String(), "unclosed single quote") {
		t.Errorf("stderr = %q, want the parse error", tc.errOut.String())
	}
	if !strings.Contains(tc.errOut.String(), "Close the single quote") {
		t.Errorf("stderr = %q, want a suggestion", tc.errOut.String())
	}
	if !strings.Contains(tc.out.String(), "argument ok") {
		t.Errorf("line after the error was not processed: %q", tc.out.String())
	}
}

func TestRun_ExitStopsReading(t *testing.T) {
	t.Parallel()

	tc := newTestConsole(t, "first\nexit\nsecond\n", nil)
	if err := tc.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if strings.Contains(tc.out.String(), "second") {
		t.Errorf("input after exit was processed: %q", tc.out.String())
	}
}

func TestRun_ContextCanceled(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	tc := newTestConsole(t, "", func(o *Options) { o.In = pr })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tc.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}

func TestRun_CommandErrorIsReported(t *testing.T) {
	t.Parallel()

	tc := newTestConsole(t, "fail\n", nil)
	tc.Registry().MustRegister(CommandFunc{
		CommandName: "fail",
		Fn: func(context.Context, *request.Request, io.Writer) error {
			return errors.New("kaput")
		},
	})

	if err := tc.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if tc.errOut.String() != "error: kaput\n" {
		t.Errorf("stderr = %q", tc.errOut.String())
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	noop := func(context.Context, *request.Request, io.Writer) error { return nil }

	if err := r.Register(CommandFunc{CommandName: "b", Fn: noop}, CommandFunc{CommandName: "a", Fn: noop}); err != nil {
		t.Fatalf("Register() returned error: %v", err)
	}

	err := r.Register(CommandFunc{CommandName: "a", Fn: noop})
	var dup *DuplicateCommandError
	if !errors.As(err, &dup) || dup.Name != "a" {
		t.Errorf("Register(duplicate) = %v", err)
	}

	for _, name := range []string{"", "two words"} {
		if err := r.Register(CommandFunc{CommandName: name, Fn: noop}); !errors.Is(err, ErrInvalidCommandName) {
			t.Errorf("Register(%q) = %v, want ErrInvalidCommandName", name, err)
		}
	}

	cmds := r.Commands()
	if len(cmds) != 2 || cmds[0].Name() != "a" || cmds[1].Name() != "b" {
		t.Errorf("Commands() not sorted by name: %v", cmds)
	}
}

func TestLineReader(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("y", 200*1024)
	r := NewLineReader(strings.NewReader("one\r\ntwo\n" + long + "\nlast"))

	var got []string
	for {
		line, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next() returned error: %v", err)
		}
		got = append(got, line)
	}

	want := []string{"one", "two", long, "last"}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q (len %d), want len %d", i, got[i][:min(len(got[i]), 20)], len(got[i]), len(want[i]))
		}
	}
}
