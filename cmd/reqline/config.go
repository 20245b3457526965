// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/reqline/reqline/internal/config"
	"github.com/reqline/reqline/internal/issue"
)

// newConfigCommand creates the `reqline config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage reqline configuration",
		Long: `Manage reqline configuration.

Configuration is stored in:
  - Linux: ~/.config/reqline/config.cue
  - macOS: ~/Library/Application Support/reqline/config.cue
  - Windows: %APPDATA%\reqline\config.cue

A config.cue in the current directory is used when the file above is missing.
Every key can be overridden with a REQLINE_ environment variable, for example
REQLINE_OUTPUT_FORMAT=json or REQLINE_SERVER_PORT=2400.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var asCUE bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd, app, asCUE)
		},
	}
	showCmd.Flags().BoolVar(&asCUE, "cue", false, "print the configuration as CUE")

	cfgCmd.AddCommand(
		showCmd,
		&cobra.Command{
			Use:   "init",
			Short: "Create the default configuration file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return initConfig(cmd, app)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Show the configuration file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return showConfigPath(cmd, app)
			},
		},
	)

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App, asCUE bool) error {
	loaded, err := config.LoadWithPath(cmd.Context(), config.LoadOptions{ConfigFilePath: app.cfgFile})
	if err != nil {
		return app.fail(cmd, nil, newServiceError(err, issue.ConfigLoadFailedId, ""))
	}
	cfg := loaded.Config
	out := cmd.OutOrStdout()

	if asCUE {
		_, err := fmt.Fprint(out, config.GenerateCUE(cfg))
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)
	if loaded.Path != "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), loaded.Path)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	section := func(name string, pairs ...string) {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s:\n", keyStyle.Render(name))
		for i := 0; i+1 < len(pairs); i += 2 {
			fmt.Fprintf(out, "  %s: %s\n", pairs[i], valueStyle.Render(pairs[i+1]))
		}
	}

	password := "(not set)"
	if cfg.Server.Password != "" {
		password = "(set)"
	}
	hostKey := cfg.Server.HostKeyPath
	if hostKey == "" {
		hostKey = "(ephemeral)"
	}

	section("output", "format", cfg.Output.Format.String())
	section("console", "prompt", fmt.Sprintf("%q", cfg.Console.Prompt))
	section("server",
		"host", cfg.Server.Host,
		"port", fmt.Sprint(cfg.Server.Port),
		"host_key_path", hostKey,
		"password", password,
		"shutdown_timeout", cfg.Server.ShutdownTimeout.String(),
	)
	section("ui",
		"verbose", fmt.Sprint(cfg.UI.Verbose),
		"color_scheme", string(cfg.UI.ColorScheme),
	)
	return nil
}

func initConfig(cmd *cobra.Command, app *App) error {
	path, created, err := config.CreateDefaultConfig("")
	if err != nil {
		return app.fail(cmd, nil, err)
	}

	out := cmd.OutOrStdout()
	if !created {
		fmt.Fprintf(out, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(out, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(cmd *cobra.Command, app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return app.fail(cmd, nil, err)
	}
	cfgPath, err := config.FilePath("")
	if err != nil {
		return app.fail(cmd, nil, err)
	}

	out := cmd.OutOrStdout()
	printPath(out, "Config directory", cfgDir)
	printPath(out, "Config file", cfgPath)
	if app.cfgFile != "" {
		printPath(out, "Override (--config)", app.cfgFile)
	}
	return nil
}

func printPath(w io.Writer, label, path string) {
	fmt.Fprintf(w, "%s: %s\n", label, path)
}
