// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/reqline/reqline/internal/console"
)

func newConsoleCommand(app *App) *cobra.Command {
	var (
		prompt string
		format string
	)

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Start the interactive request console",
		Long: `Start the interactive request console.

Each line is parsed on its own. Built-in commands (help, version, exit, quit)
run; any other line is echoed back as a parsed request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig(cmd)
			if err != nil {
				return app.fail(cmd, nil, err)
			}

			f, err := resolveFormat(format, cfg)
			if err != nil {
				return app.fail(cmd, cfg, err)
			}
			if prompt == "" {
				prompt = cfg.Console.Prompt
			}

			c, err := console.New(console.Options{
				In:      cmd.InOrStdin(),
				Out:     cmd.OutOrStdout(),
				ErrOut:  cmd.ErrOrStderr(),
				Prompt:  prompt,
				Format:  f,
				Version: getVersionString(),
				Verbose: cfg.UI.Verbose,
				Logger:  newLogger(cmd.ErrOrStderr(), "console", cfg.UI.Verbose),
			})
			if err != nil {
				return app.fail(cmd, cfg, err)
			}

			// Interrupt cancels the context; leaving that way is not a failure.
			if err := c.Run(cmd.Context()); err != nil && cmd.Context().Err() == nil {
				return app.fail(cmd, cfg, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "", "prompt printed before each line (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "echo format for unregistered commands (default from config)")

	return cmd
}
