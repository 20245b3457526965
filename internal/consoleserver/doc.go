// SPDX-License-Identifier: MPL-2.0

// Package consoleserver serves the request console over SSH.
//
// A session started with a command (ssh host 'deploy --env=prod') parses that line once,
// writes the result and exits; a session without a command gets the interactive console.
package consoleserver
