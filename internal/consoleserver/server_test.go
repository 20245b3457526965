// SPDX-License-Identifier: MPL-2.0

package consoleserver

import (
	"context"
	"errors"
	"io"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	gossh "golang.org/x/crypto/ssh"

	"github.com/reqline/reqline/internal/core/serverbase"
	"github.com/reqline/reqline/internal/render"
)

func testConfig(t *testing.T) Config {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Port = 0
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_ed25519")
	cfg.Format = render.FormatEvents
	cfg.Version = "v0.0.0-test"
	cfg.Logger = log.New(io.Discard)
	return cfg
}

func startServer(t *testing.T, cfg Config) *Server {
	t.Helper()

	srv := New(cfg)
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start() returned error: %v", err)
	}
	t.Cleanup(func() { _ = srv.Stop() })
	return srv
}

func dial(t *testing.T, srv *Server, auth ...gossh.AuthMethod) (*gossh.Client, error) {
	t.Helper()

	return gossh.Dial("tcp", srv.Address(), &gossh.ClientConfig{
		User:            "tester",
		Auth:            auth,
		HostKeyCallback: gossh.InsecureIgnoreHostKey(), //nolint:gosec // test server with throwaway key
		Timeout:         5 * time.Second,
	})
}

func runExec(t *testing.T, client *gossh.Client, line string) (stdout, stderr string, err error) {
	t.Helper()

	sess, err := client.NewSession()
	if err != nil {
		t.Fatalf("NewSession() returned error: %v", err)
	}
	defer sess.Close()

	var outBuf, errBuf strings.Builder
	sess.Stdout = &outBuf
	sess.Stderr = &errBuf
	err = sess.Run(line)
	return outBuf.String(), errBuf.String(), err
}

func TestServer_Lifecycle(t *testing.T) {
	t.Parallel()

	srv := New(testConfig(t))
	if srv.State() != serverbase.StateCreated {
		t.Errorf("initial state = %s", srv.State())
	}
	if srv.Address() != "" {
		t.Error("Address() should be empty before Start")
	}

	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start() returned error: %v", err)
	}
	if !srv.IsRunning() {
		t.Errorf("state after Start = %s, want running", srv.State())
	}
	if srv.Port() == 0 {
		t.Error("Port() = 0 for a running server")
	}
	if srv.Host() != "127.0.0.1" {
		t.Errorf("Host() = %q", srv.Host())
	}

	if err := srv.Stop(); err != nil {
		t.Errorf("Stop() returned error: %v", err)
	}
	if srv.State() != serverbase.StateStopped {
		t.Errorf("state after Stop = %s, want stopped", srv.State())
	}
	if err := srv.Stop(); err != nil {
		t.Errorf("second Stop() returned error: %v", err)
	}
	if err := srv.Wait(); err != nil {
		t.Errorf("Wait() = %v, want nil after a clean stop", err)
	}
	if _, ok := <-srv.Err(); ok {
		t.Error("Err() should be closed after Stop")
	}
}

func TestServer_StartTwice(t *testing.T) {
	t.Parallel()

	srv := startServer(t, testConfig(t))
	if err := srv.Start(context.Background()); !errors.Is(err, serverbase.ErrInvalidTransition) {
		t.Errorf("second Start() = %v, want ErrInvalidTransition", err)
	}
}

func TestServer_StartCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := New(testConfig(t))
	if err := srv.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Start() = %v, want context.Canceled", err)
	}
	if srv.State() != serverbase.StateFailed {
		t.Errorf("state = %s, want failed", srv.State())
	}
	if err := srv.Wait(); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() = %v, want the failure cause", err)
	}
}

func TestServer_PortInUse(t *testing.T) {
	t.Parallel()

	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve a port: %v", err)
	}
	t.Cleanup(func() { _ = occupied.Close() })

	cfg := testConfig(t)
	cfg.Port = occupied.Addr().(*net.TCPAddr).Port

	srv := New(cfg)
	if err := srv.Start(context.Background()); err == nil {
		_ = srv.Stop()
		t.Fatal("Start() on a busy port should fail")
	}
	if srv.State() != serverbase.StateFailed {
		t.Errorf("state = %s, want failed", srv.State())
	}
}

func TestServer_StopBeforeStart(t *testing.T) {
	t.Parallel()

	srv := New(testConfig(t))
	if err := srv.Stop(); err != nil {
		t.Errorf("Stop() = %v", err)
	}
	if srv.State() != serverbase.StateStopped {
		t.Errorf("state = %s, want stopped", srv.State())
	}
}

func TestServer_ExecSession(t *testing.T) {
	t.Parallel()

	srv := startServer(t, testConfig(t))
	client, err := dial(t, srv)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer client.Close()

	t.Run("echoes a parsed line", func(t *testing.T) {
		stdout, _, err := runExec(t, client, `deploy --env=prod -f "my app"`)
		if err != nil {
			t.Fatalf("Run() returned error: %v", err)
		}
		want := "command deploy\noption env=prod\noption f\nargument my app\n"
		if stdout != want {
			t.Errorf("stdout = %q, want %q", stdout, want)
		}
	})

	t.Run("dispatches built-ins", func(t *testing.T) {
		stdout, _, err := runExec(t, client, "version")
		if err != nil {
			t.Fatalf("Run() returned error: %v", err)
		}
		if stdout != "v0.0.0-test\n" {
			t.Errorf("stdout = %q", stdout)
		}
	})

	t.Run("parse error exits 1", func(t *testing.T) {
		_, stderr, err := runExec(t, client, `say "unfinished`)
		var exitErr *gossh.ExitError
		if !errors.As(err, &exitErr) || exitErr.ExitStatus() != 1 {
			t.Fatalf("Run() = %v, want exit status 1", err)
		}
		if !strings.Contains(stderr, "unclosed double quote") {
			t.Errorf("stderr = %q", stderr)
		}
	})
}

func TestServer_InteractiveSession(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Prompt = "$ "
	srv := startServer(t, cfg)

	client, err := dial(t, srv)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer client.Close()

	sess, err := client.NewSession()
	if err != nil {
		t.Fatalf("NewSession() returned error: %v", err)
	}
	defer sess.Close()

	sess.Stdin = strings.NewReader("run fast\nexit\n")
	var out strings.Builder
	sess.Stdout = &out

	if err := sess.Shell(); err != nil {
		t.Fatalf("Shell() returned error: %v", err)
	}
	if err := sess.Wait(); err != nil {
		t.Fatalf("Wait() returned error: %v", err)
	}

	if want := "$ command run\nargument fast\n$ "; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestServer_PasswordAuth(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Password = "s3cret"
	srv := startServer(t, cfg)

	if _, err := dial(t, srv, gossh.Password("wrong")); err == nil {
		t.Error("dial with a wrong password should fail")
	}

	client, err := dial(t, srv, gossh.Password("s3cret"))
	if err != nil {
		t.Fatalf("dial with the right password failed: %v", err)
	}
	defer client.Close()

	if _, _, err := runExec(t, client, "noop"); err != nil {
		t.Errorf("Run() returned error: %v", err)
	}
}
