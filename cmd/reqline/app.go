// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/reqline/reqline/internal/config"
	"github.com/reqline/reqline/internal/issue"
)

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// App is the composition root of the CLI: every command handler receives it and
	// reads shared flags and services from it.
	App struct {
		Config ConfigProvider

		verbose bool
		cfgFile string
	}

	// Dependencies are the injection points for NewApp; nil fields get production
	// defaults.
	Dependencies struct {
		Config ConfigProvider
	}
)

// NewApp builds an App from deps.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	return &App{Config: deps.Config}
}

// loadConfig loads the configuration for cmd, honoring --config and letting --verbose
// win over ui.verbose.
func (a *App) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := a.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: a.cfgFile})
	if err != nil {
		return nil, newServiceError(err, issue.ConfigLoadFailedId, "")
	}
	if a.verbose {
		cfg.UI.Verbose = true
	}
	return cfg, nil
}

// fail reports err on cmd's stderr and silences cobra's own error output.
func (a *App) fail(cmd *cobra.Command, cfg *config.Config, err error) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	verbose, style := a.verbose, config.ColorSchemeAuto.GlamourStyle()
	if cfg != nil {
		verbose = cfg.UI.Verbose
		style = cfg.UI.ColorScheme.GlamourStyle()
	}
	return reportError(cmd.ErrOrStderr(), err, verbose, style)
}

// newLogger returns a component logger at Debug level when verbose.
func newLogger(w io.Writer, prefix string, verbose bool) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{Prefix: prefix, Level: level})
}
