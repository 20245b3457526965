// SPDX-License-Identifier: MPL-2.0

package consoleserver

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/logging"

	"github.com/reqline/reqline/internal/console"
	"github.com/reqline/reqline/internal/core/serverbase"
	"github.com/reqline/reqline/internal/render"
)

type (
	// Config holds the immutable server configuration.
	Config struct {
		// Host is the bind address (default 127.0.0.1).
		Host string
		// Port is the listen port; 0 picks a free one.
		Port int
		// HostKeyPath is a PEM host key, created on first start when missing. Empty means
		// an ephemeral key per process.
		HostKeyPath string
		// Password enables password authentication when non-empty.
		Password        string
		ShutdownTimeout time.Duration
		StartupTimeout  time.Duration

		// Prompt, Format and Version configure each session's console.
		Prompt  string
		Format  render.Format
		Version string
		// Registry is shared by all sessions; nil means console.DefaultRegistry.
		Registry *console.Registry
		Logger   *log.Logger
	}

	// Server serves the console over SSH. A Server is single-use: once stopped or
	// failed, create a new one.
	Server struct {
		*serverbase.Lifecycle

		cfg    Config
		logger *log.Logger

		mu       sync.Mutex
		srv      *ssh.Server
		listener net.Listener
		addr     string
	}
)

// DefaultConfig returns a loopback configuration with a random port.
func DefaultConfig() Config {
	return Config{
		Host:            "127.0.0.1",
		ShutdownTimeout: 10 * time.Second,
		StartupTimeout:  5 * time.Second,
		Format:          render.FormatText,
	}
}

// New creates a server; call Start to begin accepting connections.
func New(cfg Config) *Server {
	defaults := DefaultConfig()
	if cfg.Host == "" {
		cfg.Host = defaults.Host
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if cfg.StartupTimeout == 0 {
		cfg.StartupTimeout = defaults.StartupTimeout
	}
	if cfg.Format == "" {
		cfg.Format = defaults.Format
	}
	if cfg.Registry == nil {
		cfg.Registry = console.DefaultRegistry(cfg.Version)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "console-server"})
	}

	return &Server{
		Lifecycle: serverbase.New(),
		cfg:       cfg,
		logger:    logger,
	}
}

// Start binds the listener and blocks until the server is ready, fails, the startup
// timeout elapses or ctx is canceled. After a nil return, watch Err for runtime failures.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Begin(ctx); err != nil {
		return err
	}

	startupCtx, cancel := context.WithTimeout(ctx, s.cfg.StartupTimeout)
	defer cancel()

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	var lc net.ListenConfig
	listener, err := lc.Listen(startupCtx, "tcp", addr)
	if err != nil {
		return s.Fail(fmt.Errorf("failed to listen on %s: %w", addr, err))
	}

	srv, err := wish.NewServer(s.serverOptions(addr)...)
	if err != nil {
		_ = listener.Close()
		return s.Fail(fmt.Errorf("failed to create SSH server: %w", err))
	}

	s.mu.Lock()
	s.listener = listener
	s.addr = listener.Addr().String()
	s.srv = srv
	s.mu.Unlock()

	s.Go(s.serve)

	select {
	case <-s.Ready():
		s.logger.Info("console server started", "address", s.addr)
		return nil
	case err := <-s.Errors():
		return s.Fail(err)
	case <-startupCtx.Done():
		_ = listener.Close()
		return s.Fail(fmt.Errorf("startup timeout: %w", startupCtx.Err()))
	}
}

func (s *Server) serverOptions(addr string) []ssh.Option {
	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			s.sessionMiddleware(),
			logging.MiddlewareWithLogger(s.logger),
		),
	}
	if s.cfg.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(s.cfg.HostKeyPath))
	}
	if s.cfg.Password != "" {
		opts = append(opts, wish.WithPasswordAuth(s.passwordHandler))
	}
	return opts
}

// Stop shuts the server down gracefully, bounded by ShutdownTimeout.
// Safe to call more than once.
func (s *Server) Stop() error {
	if !s.BeginStop() {
		s.Wait()
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	var shutdownErr error
	s.mu.Lock()
	if s.srv != nil {
		if err := s.srv.Shutdown(shutdownCtx); err != nil && !isClosedError(err) {
			s.logger.Error("shutdown error", "error", err)
			shutdownErr = err
		}
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.mu.Unlock()

	s.Finish()
	s.logger.Info("console server stopped")
	return shutdownErr
}

// Err returns the channel receiving runtime errors. It is closed once the server stops.
func (s *Server) Err() <-chan error {
	return s.Errors()
}

// Wait blocks until the serve loop has exited and returns the failure cause, if any.
func (s *Server) Wait() error {
	s.Lifecycle.Wait()
	if s.State() == serverbase.StateFailed {
		return s.Cause()
	}
	return nil
}

// Address returns the bound host:port, or "" when the server is not (or no longer) up.
func (s *Server) Address() string {
	ctx := s.Context()
	if ctx == nil {
		return ""
	}
	select {
	case <-s.Ready():
	case <-ctx.Done():
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Port returns the bound port, or 0.
func (s *Server) Port() int {
	_, portStr, err := net.SplitHostPort(s.Address())
	if err != nil {
		return 0
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0
	}
	return port
}

// Host returns the configured bind host.
func (s *Server) Host() string {
	return s.cfg.Host
}

func (s *Server) serve(context.Context) {
	s.mu.Lock()
	srv, listener := s.srv, s.listener
	s.mu.Unlock()

	s.MarkRunning()

	if err := srv.Serve(listener); err != nil && !isClosedError(err) {
		s.Report(fmt.Errorf("serve error: %w", err))
	}
}

func (s *Server) passwordHandler(ctx ssh.Context, password string) bool {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1 {
		return true
	}
	s.logger.Warn("rejected password", "user", ctx.User(), "remote", ctx.RemoteAddr())
	return false
}

func isClosedError(err error) bool {
	return errors.Is(err, ssh.ErrServerClosed) || errors.Is(err, net.ErrClosed)
}
