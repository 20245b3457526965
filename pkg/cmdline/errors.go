// SPDX-License-Identifier: MPL-2.0

package cmdline

import (
	"errors"
	"fmt"
)

const (
	// QuoteDouble identifies a double-quoted region.
	QuoteDouble QuoteKind = '"'
	// QuoteSingle identifies a single-quoted region.
	QuoteSingle QuoteKind = '\''
)

var (
	// ErrMalformedInput is returned when a line ends inside a quoted region.
	ErrMalformedInput = errors.New("malformed input")
	// ErrMalformedOption is returned when a long option has no value and no token follows it.
	ErrMalformedOption = errors.New("malformed option")
	// ErrInvalidQuoteKind is returned when a QuoteKind value is not a recognized quote.
	ErrInvalidQuoteKind = errors.New("invalid quote kind")
)

type (
	// QuoteKind is the quote character that opened a quoted region.
	QuoteKind rune

	// InvalidQuoteKindError is returned when a QuoteKind value is not recognized.
	// It wraps ErrInvalidQuoteKind for errors.Is() compatibility.
	InvalidQuoteKindError struct {
		Value QuoteKind
	}

	// MalformedInputError reports an unterminated quote.
	// It wraps ErrMalformedInput for errors.Is() compatibility.
	MalformedInputError struct {
		// Quote is the kind of quote left open at the end of the line.
		Quote QuoteKind
		// Offset is the byte offset of the opening quote in the line as given.
		Offset int
	}

	// MalformedOptionError reports a long option that could not be split into a name and value.
	// It wraps ErrMalformedOption for errors.Is() compatibility.
	MalformedOptionError struct {
		// Token is the offending option token, including its leading dashes.
		Token string
	}
)

// String returns the human-readable name of the quote kind.
func (q QuoteKind) String() string {
	switch q {
	case QuoteDouble:
		return "double"
	case QuoteSingle:
		return "single"
	default:
		return "unknown"
	}
}

// Validate returns nil if the QuoteKind is a single or double quote.
func (q QuoteKind) Validate() error {
	switch q {
	case QuoteDouble, QuoteSingle:
		return nil
	default:
		return &InvalidQuoteKindError{Value: q}
	}
}

// Error implements the error interface for InvalidQuoteKindError.
func (e *InvalidQuoteKindError) Error() string {
	return fmt.Sprintf("invalid quote kind %q (valid: '\"', '\\'')", rune(e.Value))
}

// Unwrap returns ErrInvalidQuoteKind for errors.Is() compatibility.
func (e *InvalidQuoteKindError) Unwrap() error {
	return ErrInvalidQuoteKind
}

// Error implements the error interface.
func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("unclosed %s quote", e.Quote)
}

// Unwrap returns ErrMalformedInput for errors.Is() compatibility.
func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}

// Error implements the error interface.
func (e *MalformedOptionError) Error() string {
	return fmt.Sprintf("option %q has no value", e.Token)
}

// Unwrap returns ErrMalformedOption for errors.Is() compatibility.
func (e *MalformedOptionError) Unwrap() error {
	return ErrMalformedOption
}
