// SPDX-License-Identifier: MPL-2.0

package serverbase

// Option configures a Lifecycle.
type Option func(*Lifecycle)

// WithErrorBuffer sets the capacity of the asynchronous error channel (default 1).
// Errors sent while the buffer is full are dropped.
func WithErrorBuffer(size int) Option {
	return func(l *Lifecycle) {
		if size < 1 {
			size = 1
		}
		l.errCh = make(chan error, size)
	}
}
