// SPDX-License-Identifier: MPL-2.0

// Package console is the interactive request console: it reads one line at a time,
// parses each line into a request.Request on its own, and dispatches it to a registered
// Command. Lines naming no registered command are echoed back in the configured render
// format, so the console doubles as a parser playground.
package console
