// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the reqline command-line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the full command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reqline",
		Short: "Parse console command lines into structured requests",
		Long: TitleStyle.Render("reqline") + SubtitleStyle.Render(" - parse console command lines into structured requests") + `

reqline splits a raw command line into a command name, ordered arguments and
ordered options, honoring single and double quotes. Long options take values
with '=' or from the next word; short options cluster ('-abc').

` + SubtitleStyle.Render("Examples:") + `
  reqline parse --line 'deploy --env=prod -f "my app"'
  reqline parse --format json -- deploy --env prod
  reqline tokenize 'say "hello world"'
  reqline console                 Interactive parser console
  reqline serve --port 2323       Serve the console over SSH`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/reqline/config.cue)")

	rootCmd.AddCommand(
		newParseCommand(app),
		newTokenizeCommand(app),
		newConsoleCommand(app),
		newServeCommand(app),
		newConfigCommand(app),
		newVersionCommand(),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process with the resulting status.
func Execute() {
	os.Exit(Run(context.Background()))
}

// Run executes the root command with os.Args and returns the exit status.
func Run(ctx context.Context) int {
	rootCmd := NewRootCommand(NewApp(Dependencies{}))

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// errorHandler leaves errors the commands already reported to them.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the reqline version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "reqline "+getVersionString())
			return err
		},
	}
}
