// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reqline/reqline/internal/config"
	"github.com/reqline/reqline/internal/consoleserver"
	"github.com/reqline/reqline/internal/issue"
)

type serveOptions struct {
	host        string
	port        int
	hostKeyPath string
}

func newServeCommand(app *App) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the request console over SSH",
		Long: `Serve the request console over SSH until interrupted.

'ssh -p PORT HOST' opens an interactive console; 'ssh -p PORT HOST LINE'
parses LINE once and exits with status 1 if it does not parse. Set
server.password (or REQLINE_SERVER_PASSWORD) to require a password.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig(cmd)
			if err != nil {
				return app.fail(cmd, nil, err)
			}
			applyServeFlags(cmd, opts, cfg)
			if err := cfg.Server.Validate(); err != nil {
				return app.fail(cmd, cfg, err)
			}
			return runServe(cmd, app, cfg)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "", "bind address (default from config)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "listen port (default from config)")
	cmd.Flags().StringVar(&opts.hostKeyPath, "host-key", "", "PEM host key path, created when missing")

	return cmd
}

// applyServeFlags overrides server settings with flags the user actually set.
func applyServeFlags(cmd *cobra.Command, opts *serveOptions, cfg *config.Config) {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = opts.host
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = opts.port
	}
	if cmd.Flags().Changed("host-key") {
		cfg.Server.HostKeyPath = opts.hostKeyPath
	}
}

func runServe(cmd *cobra.Command, app *App, cfg *config.Config) error {
	srv := consoleserver.New(consoleserver.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		HostKeyPath:     cfg.Server.HostKeyPath,
		Password:        cfg.Server.Password,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Prompt:          cfg.Console.Prompt,
		Format:          cfg.Output.Format,
		Version:         getVersionString(),
		Logger:          newLogger(cmd.ErrOrStderr(), "console-server", cfg.UI.Verbose),
	})

	if err := srv.Start(cmd.Context()); err != nil {
		startErr := issue.NewErrorContext().
			WithOperation("start console server").
			WithIssue(issue.ServerStartFailedId).
			WithResource(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)).
			WithSuggestion("Choose a free port with --port").
			WithSuggestion("Check that --host is an address of this machine").
			Wrap(err).
			Build()
		return app.fail(cmd, cfg, newServiceError(startErr, issue.ServerStartFailedId, ""))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Console listening on %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(srv.Address()))

	var runErr error
	select {
	case <-cmd.Context().Done():
	case err, ok := <-srv.Err():
		if ok {
			runErr = err
		}
	}

	if err := srv.Stop(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return app.fail(cmd, cfg, runErr)
	}
	return nil
}
