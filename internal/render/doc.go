// SPDX-License-Identifier: MPL-2.0

// Package render writes a parsed request in one of several output formats: a styled text
// view, JSON, TOML, a canonical shell command line, or the raw ordered event log.
package render
