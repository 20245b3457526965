// SPDX-License-Identifier: MPL-2.0

// Package serverbase is the lifecycle state machine shared by long-running servers:
// atomic state reads, compare-and-swap transitions, tracked goroutines, a readiness
// signal, and an asynchronous error channel.
//
// The console server embeds Lifecycle; each instance is single-use.
package serverbase
