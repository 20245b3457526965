// SPDX-License-Identifier: MPL-2.0

package consoleserver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"

	"github.com/reqline/reqline/internal/console"
	"github.com/reqline/reqline/internal/issue"
)

// sessionMiddleware runs one console per session, in exec or interactive mode.
func (s *Server) sessionMiddleware() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			opts := console.Options{
				In:       sess,
				Out:      sess,
				ErrOut:   sess.Stderr(),
				Prompt:   s.cfg.Prompt,
				Format:   s.cfg.Format,
				Registry: s.cfg.Registry,
				Version:  s.cfg.Version,
				Logger:   s.logger.WithPrefix("console"),
			}

			line := sess.RawCommand()
			if _, _, isPty := sess.Pty(); isPty && strings.TrimSpace(line) == "" {
				opts.In = newLineDiscipline(sess, sess)
				opts.Out = crlfWriter{w: sess}
				opts.ErrOut = crlfWriter{w: sess.Stderr()}
			}

			c, err := console.New(opts)
			if err != nil {
				wish.Fatalln(sess, err)
				return
			}

			if strings.TrimSpace(line) != "" {
				_ = sess.Exit(s.execLine(sess, c, line))
			} else {
				_ = sess.Exit(s.interactive(sess, c))
			}
			next(sess)
		}
	}
}

// execLine handles `ssh host <line>` and returns the exit status.
func (s *Server) execLine(sess ssh.Session, c *console.Console, line string) int {
	err := c.Execute(sess.Context(), line)
	switch {
	case err == nil, errors.Is(err, console.ErrExit):
		return 0
	default:
		s.logger.Debug("exec session failed", "user", sess.User(), "error", err)
		var ae *issue.ActionableError
		if errors.As(err, &ae) {
			_, _ = fmt.Fprintln(sess.Stderr(), ae.Format(false))
		} else {
			_, _ = fmt.Fprintf(sess.Stderr(), "error: %v\n", err)
		}
		return 1
	}
}

func (s *Server) interactive(sess ssh.Session, c *console.Console) int {
	s.logger.Debug("interactive session", "user", sess.User())
	if err := c.Run(sess.Context()); err != nil && sess.Context().Err() == nil {
		_, _ = fmt.Fprintf(sess.Stderr(), "error: %v\n", err)
		return 1
	}
	return 0
}
