// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reqline/reqline/internal/config"
	"github.com/reqline/reqline/internal/console"
	"github.com/reqline/reqline/internal/issue"
	"github.com/reqline/reqline/internal/render"
	"github.com/reqline/reqline/pkg/request"
)

// errNoInput is returned when parse is given neither --line, --stdin nor arguments.
var errNoInput = errors.New("nothing to parse: use --line, --stdin, or pass words after --")

type parseOptions struct {
	line     string
	stdin    bool
	format   string
	dispatch bool
}

func newParseCommand(app *App) *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [--line LINE | --stdin | -- WORD...]",
		Short: "Parse a command line into a request",
		Long: `Parse a command line into a request and print it.

The input is one of:
  --line LINE   a raw line, tokenized with quote handling
  --stdin       every line read from standard input, each parsed on its own
  -- WORD...    words already split by your shell`,
		Example: `  reqline parse --line 'deploy --env=prod -f "my app"'
  reqline parse --format json -- deploy --env prod
  printf 'a -x\nb --k=v\n' | reqline parse --stdin --format events`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, app, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.line, "line", "l", "", "raw command line to parse")
	cmd.Flags().BoolVar(&opts.stdin, "stdin", false, "parse each line of standard input")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", fmt.Sprintf("output format %v (default from config)", render.Formats()))
	cmd.Flags().BoolVar(&opts.dispatch, "dispatch", false, "run built-in console commands instead of only printing the request")
	cmd.MarkFlagsMutuallyExclusive("line", "stdin")

	return cmd
}

func runParse(cmd *cobra.Command, app *App, opts *parseOptions, args []string) error {
	cfg, err := app.loadConfig(cmd)
	if err != nil {
		return app.fail(cmd, nil, err)
	}

	format, err := resolveFormat(opts.format, cfg)
	if err != nil {
		return app.fail(cmd, cfg, err)
	}

	c, err := console.New(console.Options{
		In:      cmd.InOrStdin(),
		Out:     cmd.OutOrStdout(),
		ErrOut:  cmd.ErrOrStderr(),
		Format:  format,
		Version: getVersionString(),
		Verbose: cfg.UI.Verbose,
		Logger:  newLogger(cmd.ErrOrStderr(), "console", cfg.UI.Verbose),
	})
	if err != nil {
		return app.fail(cmd, cfg, err)
	}

	hasLine := cmd.Flags().Changed("line")
	switch {
	case hasLine && len(args) > 0:
		return app.fail(cmd, cfg, errors.New("--line and positional words are mutually exclusive"))
	case hasLine:
		err = parseLine(cmd, c, opts, format, opts.line)
	case opts.stdin:
		err = parseStdin(cmd, c, opts, format)
	case len(args) > 0:
		err = parseArgs(cmd, c, opts, format, args)
	default:
		err = errNoInput
	}
	if err != nil && !errors.Is(err, console.ErrExit) {
		return app.fail(cmd, cfg, err)
	}
	return nil
}

func parseLine(cmd *cobra.Command, c *console.Console, opts *parseOptions, format render.Format, line string) error {
	if opts.dispatch {
		return c.Execute(cmd.Context(), line)
	}
	req, err := request.New(line)
	if err != nil {
		return issue.ParseError(line, err)
	}
	return render.Render(cmd.OutOrStdout(), req, format)
}

// parseStdin parses every non-blank line and stops at the first failure.
func parseStdin(cmd *cobra.Command, c *console.Console, opts *parseOptions, format render.Format) error {
	reader := console.NewLineReader(cmd.InOrStdin())
	for {
		line, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read standard input: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := parseLine(cmd, c, opts, format, line); err != nil {
			return err
		}
	}
}

func parseArgs(cmd *cobra.Command, c *console.Console, opts *parseOptions, format render.Format, args []string) error {
	req, err := request.FromArgs(args)
	if err != nil {
		return issue.ParseError(strings.Join(args, " "), err)
	}
	if opts.dispatch {
		return c.Dispatch(cmd.Context(), req)
	}
	return render.Render(cmd.OutOrStdout(), req, format)
}

// resolveFormat prefers the flag over output.format from the config.
func resolveFormat(flag string, cfg *config.Config) (render.Format, error) {
	format := cfg.Output.Format
	if flag != "" {
		format = render.Format(flag)
	}
	if err := format.Validate(); err != nil {
		return "", err
	}
	return format, nil
}
