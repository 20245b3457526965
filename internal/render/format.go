// SPDX-License-Identifier: MPL-2.0

package render

import (
	"errors"
	"fmt"
)

const (
	// FormatText is the styled, human-readable view.
	FormatText Format = "text"
	// FormatJSON is indented JSON of the request snapshot.
	FormatJSON Format = "json"
	// FormatTOML is TOML of the request snapshot.
	FormatTOML Format = "toml"
	// FormatShell is a canonical command line that parses back to the same request.
	FormatShell Format = "shell"
	// FormatEvents is the ordered event log, one event per line.
	FormatEvents Format = "events"
)

// ErrUnknownFormat is returned when a Format value is not recognized.
var ErrUnknownFormat = errors.New("unknown output format")

type (
	// Format selects how a request is rendered.
	Format string

	// UnknownFormatError is returned when a Format value is not recognized.
	// It wraps ErrUnknownFormat for errors.Is() compatibility.
	UnknownFormatError struct {
		Value Format
	}
)

// Formats returns every supported format in display order.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatTOML, FormatShell, FormatEvents}
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Validate returns nil if the Format is supported.
func (f Format) Validate() error {
	switch f {
	case FormatText, FormatJSON, FormatTOML, FormatShell, FormatEvents:
		return nil
	default:
		return &UnknownFormatError{Value: f}
	}
}

// Error implements the error interface.
func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown output format %q (valid: text, json, toml, shell, events)", e.Value)
}

// Unwrap returns ErrUnknownFormat for errors.Is() compatibility.
func (e *UnknownFormatError) Unwrap() error {
	return ErrUnknownFormat
}
