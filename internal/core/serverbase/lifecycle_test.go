// SPDX-License-Identifier: MPL-2.0

package serverbase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestLifecycle_HappyPath(t *testing.T) {
	t.Parallel()

	l := New()
	if l.State() != StateCreated {
		t.Fatalf("initial state = %s, want created", l.State())
	}
	if l.Context() != nil {
		t.Error("Context() should be nil before Begin")
	}

	if err := l.Begin(context.Background()); err != nil {
		t.Fatalf("Begin() returned error: %v", err)
	}
	if l.State() != StateStarting {
		t.Errorf("state = %s, want starting", l.State())
	}

	if !l.MarkRunning() {
		t.Fatal("MarkRunning() = false")
	}
	select {
	case <-l.Ready():
	default:
		t.Error("Ready() should be closed once running")
	}
	if !l.IsRunning() {
		t.Error("IsRunning() = false")
	}

	ctx := l.Context()
	if !l.BeginStop() {
		t.Fatal("BeginStop() = false for a running server")
	}
	if ctx.Err() == nil {
		t.Error("BeginStop() should cancel the lifecycle context")
	}

	l.Finish()
	if l.State() != StateStopped {
		t.Errorf("state = %s, want stopped", l.State())
	}
	if _, ok := <-l.Errors(); ok {
		t.Error("Errors() should be closed after Finish")
	}
}

func TestLifecycle_BeginTwice(t *testing.T) {
	t.Parallel()

	l := New()
	if err := l.Begin(context.Background()); err != nil {
		t.Fatalf("first Begin() returned error: %v", err)
	}

	err := l.Begin(context.Background())
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("second Begin() = %v, want *TransitionError", err)
	}
	if te.From != StateStarting || te.To != StateStarting {
		t.Errorf("TransitionError = %+v", te)
	}
	if !errors.Is(err, ErrInvalidTransition) {
		t.Error("errors.Is(err, ErrInvalidTransition) = false")
	}
}

func TestLifecycle_BeginCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New()
	err := l.Begin(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Begin() = %v, want context.Canceled", err)
	}
	if l.State() != StateFailed {
		t.Errorf("state = %s, want failed", l.State())
	}
	if !errors.Is(l.Cause(), context.Canceled) {
		t.Errorf("Cause() = %v", l.Cause())
	}
}

func TestLifecycle_Fail(t *testing.T) {
	t.Parallel()

	l := New()
	if err := l.Begin(context.Background()); err != nil {
		t.Fatalf("Begin() returned error: %v", err)
	}

	boom := errors.New("boom")
	if got := l.Fail(boom); got != boom {
		t.Errorf("Fail() returned %v, want its argument", got)
	}
	if l.State() != StateFailed || !l.State().IsTerminal() {
		t.Errorf("state = %s, want failed", l.State())
	}
	if l.MarkRunning() {
		t.Error("MarkRunning() should not leave the failed state")
	}
	if l.BeginStop() {
		t.Error("BeginStop() should be a no-op after failure")
	}

	select {
	case err := <-l.Errors():
		if !errors.Is(err, boom) {
			t.Errorf("Errors() delivered %v", err)
		}
	default:
		t.Error("Fail() should publish the error")
	}

	l.Finish()
	l.Report(errors.New("late"))
	l.Finish()
}

func TestLifecycle_StopBeforeStart(t *testing.T) {
	t.Parallel()

	l := New()
	if l.BeginStop() {
		t.Error("BeginStop() = true for a server that never started")
	}
	if l.State() != StateStopped {
		t.Errorf("state = %s, want stopped", l.State())
	}
	if err := l.Begin(context.Background()); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Begin() after stop = %v, want ErrInvalidTransition", err)
	}
}

func TestLifecycle_GoTracksGoroutines(t *testing.T) {
	t.Parallel()

	l := New()
	if err := l.Begin(context.Background()); err != nil {
		t.Fatalf("Begin() returned error: %v", err)
	}
	l.MarkRunning()

	var exited sync.WaitGroup
	exited.Add(3)
	for range 3 {
		l.Go(func(ctx context.Context) {
			defer exited.Done()
			<-ctx.Done()
		})
	}

	l.BeginStop()
	done := make(chan struct{})
	go func() {
		l.Finish()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Finish() did not return after the context was canceled")
	}
	exited.Wait()
}

func TestLifecycle_ConcurrentStop(t *testing.T) {
	t.Parallel()

	l := New()
	if err := l.Begin(context.Background()); err != nil {
		t.Fatalf("Begin() returned error: %v", err)
	}
	l.MarkRunning()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	for range 10 {
		wg.Go(func() {
			if l.BeginStop() {
				mu.Lock()
				winners++
				mu.Unlock()
			}
			_ = l.State()
		})
	}
	wg.Wait()

	if winners != 1 {
		t.Errorf("BeginStop() succeeded %d times, want exactly once", winners)
	}
}

func TestLifecycle_ErrorBuffer(t *testing.T) {
	t.Parallel()

	l := New(WithErrorBuffer(2))
	l.Report(errors.New("one"))
	l.Report(errors.New("two"))
	l.Report(errors.New("dropped"))

	if got := len(l.Errors()); got != 2 {
		t.Errorf("buffered errors = %d, want 2", got)
	}
}

func TestLifecycle_WaitReady(t *testing.T) {
	t.Parallel()

	l := New()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := l.WaitReady(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("WaitReady() = %v, want deadline exceeded", err)
	}

	_ = l.Begin(context.Background())
	l.MarkRunning()
	if err := l.WaitReady(context.Background()); err != nil {
		t.Errorf("WaitReady() after MarkRunning = %v", err)
	}
}

func TestState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state    State
		name     string
		terminal bool
		valid    bool
	}{
		{StateCreated, "created", false, true},
		{StateStarting, "starting", false, true},
		{StateRunning, "running", false, true},
		{StateStopping, "stopping", false, true},
		{StateStopped, "stopped", true, true},
		{StateFailed, "failed", true, true},
		{State(42), "unknown", false, false},
		{State(-1), "unknown", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.state.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.state.IsTerminal(); got != tt.terminal {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.terminal)
			}
			err := tt.state.Validate()
			if (err == nil) != tt.valid {
				t.Errorf("Validate() = %v, valid = %v", err, tt.valid)
			}
			if err != nil && !errors.Is(err, ErrInvalidState) {
				t.Errorf("Validate() error should wrap ErrInvalidState")
			}
		})
	}
}
