// SPDX-License-Identifier: MPL-2.0

package serverbase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Lifecycle tracks one server run from Created to a terminal state.
//
//	Created -> Starting -> Running -> Stopping -> Stopped
//	Starting/Running -> Failed
//	Created -> Stopped (stopped before start)
type Lifecycle struct {
	state atomic.Int32

	mu    sync.Mutex
	cause error

	ctx    context.Context
	cancel context.CancelFunc

	wg      sync.WaitGroup
	readyCh chan struct{}
	errCh   chan error
	closed  bool
}

// New returns a Lifecycle in StateCreated.
func New(opts ...Option) *Lifecycle {
	l := &Lifecycle{
		readyCh: make(chan struct{}),
		errCh:   make(chan error, 1),
	}
	l.state.Store(int32(StateCreated))
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current state without locking.
func (l *Lifecycle) State() State {
	return State(l.state.Load())
}

// IsRunning reports whether the server is in StateRunning.
func (l *Lifecycle) IsRunning() bool {
	return l.State() == StateRunning
}

// Cause returns the error that moved the lifecycle to StateFailed, or nil.
func (l *Lifecycle) Cause() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cause
}

// Errors returns the channel receiving asynchronous runtime errors.
// It is closed by Finish.
func (l *Lifecycle) Errors() <-chan error {
	return l.errCh
}

// Ready is closed once the server reaches StateRunning.
func (l *Lifecycle) Ready() <-chan struct{} {
	return l.readyCh
}

// Context is canceled when the server stops or fails. It is nil before Begin.
func (l *Lifecycle) Context() context.Context {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ctx
}

// Begin moves Created -> Starting. A caller context that is already done fails the
// lifecycle before any resources are acquired.
func (l *Lifecycle) Begin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		err = fmt.Errorf("context canceled before start: %w", err)
		if l.state.CompareAndSwap(int32(StateCreated), int32(StateFailed)) {
			l.setCause(err)
		}
		return err
	}

	if !l.state.CompareAndSwap(int32(StateCreated), int32(StateStarting)) {
		return &TransitionError{From: l.State(), To: StateStarting}
	}

	l.mu.Lock()
	l.ctx, l.cancel = context.WithCancel(context.Background())
	l.mu.Unlock()
	return nil
}

// MarkRunning moves Starting -> Running and closes Ready. It reports whether the
// transition happened.
func (l *Lifecycle) MarkRunning() bool {
	if !l.state.CompareAndSwap(int32(StateStarting), int32(StateRunning)) {
		return false
	}
	close(l.readyCh)
	return true
}

// Fail moves the lifecycle to StateFailed, records err, cancels Context and publishes
// err on Errors without blocking. It returns err for convenient tail calls.
func (l *Lifecycle) Fail(err error) error {
	l.setCause(err)
	l.state.Store(int32(StateFailed))
	l.cancelContext()
	l.Report(err)
	return err
}

// Report publishes a runtime error without changing state. It never blocks and never
// panics after Finish.
func (l *Lifecycle) Report(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	select {
	case l.errCh <- err:
	default:
	}
}

// BeginStop moves Starting/Running -> Stopping and cancels Context. It returns false
// when there is nothing to shut down: the server never started (it is marked Stopped),
// is already stopping, or is terminal.
func (l *Lifecycle) BeginStop() bool {
	for {
		current := l.State()
		switch current {
		case StateCreated:
			if l.state.CompareAndSwap(int32(StateCreated), int32(StateStopped)) {
				return false
			}
		case StateStarting, StateRunning:
			if l.state.CompareAndSwap(int32(current), int32(StateStopping)) {
				l.cancelContext()
				return true
			}
		default:
			return false
		}
	}
}

// Finish waits for tracked goroutines, moves Stopping -> Stopped and closes Errors.
// Calling it more than once is safe.
func (l *Lifecycle) Finish() {
	l.wg.Wait()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.CompareAndSwap(int32(StateStopping), int32(StateStopped))
	if !l.closed {
		l.closed = true
		close(l.errCh)
	}
}

// Go runs fn on a tracked goroutine with the lifecycle context.
func (l *Lifecycle) Go(fn func(ctx context.Context)) {
	ctx := l.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		fn(ctx)
	}()
}

// Wait blocks until every tracked goroutine has returned.
func (l *Lifecycle) Wait() {
	l.wg.Wait()
}

// WaitReady blocks until Running, failure, or ctx is done.
func (l *Lifecycle) WaitReady(ctx context.Context) error {
	select {
	case <-l.readyCh:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for server ready: %w", ctx.Err())
	}
}

func (l *Lifecycle) setCause(err error) {
	l.mu.Lock()
	l.cause = err
	l.mu.Unlock()
}

func (l *Lifecycle) cancelContext() {
	l.mu.Lock()
	cancel := l.cancel
	l.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
