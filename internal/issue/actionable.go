// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/reqline/reqline/pkg/cmdline"
)

type (
	// ActionableError is a user-facing error with context: what was being done, what input
	// or file was involved, and how the user might fix it.
	//
	// Use the ErrorContext builder for construction:
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("parse request line").
	//		WrapParse(line, parseErr).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "parse request line" or "load configuration".
		Operation string

		// Resource identifies the input line, file, or address involved (optional).
		Resource string

		// Suggestions are hints for fixing the problem (optional).
		Suggestions []string

		// Cause is the underlying error (optional).
		Cause error

		// Issue is the catalog entry explaining the failure, or 0.
		Issue Id

		// Input is a single request line to show under the message with a caret at
		// Offset, a byte offset into Input (optional).
		Input  string
		Offset int
	}

	// ErrorContext is a fluent builder for ActionableError.
	// A context can be reused with different causes.
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		cause       error
		issue       Id
		input       string
		offset      int
	}
)

// NewActionableError creates an ActionableError for the given operation.
func NewActionableError(operation string) *ActionableError {
	return &ActionableError{Operation: operation}
}

// NewErrorContext creates an empty ErrorContext builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithOperation wraps err with an operation. Returns nil when err is nil.
func WrapWithOperation(err error, operation string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Cause: err}
}

// WrapWithContext wraps err with an operation and resource. Returns nil when err is nil.
func WrapWithContext(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Resource: resource, Cause: err}
}

// Error returns "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	var msg strings.Builder

	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)

	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}

	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}

	return msg.String()
}

// Unwrap returns the cause for errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format returns the error message followed by bulleted suggestions. In verbose mode the
// full unwrap chain of the cause is appended as a numbered list.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder

	msg.WriteString(e.Error())

	if marker := e.marker(); marker != "" {
		msg.WriteString("\n\n")
		msg.WriteString(marker)
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, suggestion := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(suggestion)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			depth++
		}
	}

	return msg.String()
}

// marker renders Input with a caret under Offset. Tabs are shown as spaces so the caret
// lines up; multi-line input gets no marker.
func (e *ActionableError) marker() string {
	if e.Input == "" || e.Offset < 0 || e.Offset > len(e.Input) || strings.Contains(e.Input, "\n") {
		return ""
	}
	line := strings.ReplaceAll(e.Input, "\t", " ")
	pad := utf8.RuneCountInString(line[:e.Offset])
	return "  " + line + "\n  " + strings.Repeat(" ", pad) + "^"
}

// HasSuggestions reports whether the error carries any suggestions.
func (e *ActionableError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// WithOperation sets the operation being performed.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the input, file, or address involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion appends one suggestion.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

// WithSuggestions appends several suggestions.
func (c *ErrorContext) WithSuggestions(sugs ...string) *ErrorContext {
	c.suggestions = append(c.suggestions, sugs...)
	return c
}

// WithIssue links the error to a catalog entry.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.issue = id
	return c
}

// WrapParse sets a failure to parse line as the cause. The line becomes the resource,
// the catalog issue is inferred from err, and request syntax errors add suggestions and
// a caret marking where the problem starts.
func (c *ErrorContext) WrapParse(line string, err error) *ErrorContext {
	c.resource = line
	c.cause = err
	c.issue = IdFor(err)

	var mie *cmdline.MalformedInputError
	var moe *cmdline.MalformedOptionError
	switch {
	case errors.As(err, &mie):
		c.markAt(line, mie.Offset)
		c.suggestions = append(c.suggestions,
			"Close the "+mie.Quote.String()+" quote opened at column "+strconv.Itoa(column(line, mie.Offset)))
		if mie.Quote == cmdline.QuoteSingle {
			c.suggestions = append(c.suggestions, `Wrap text containing an apostrophe in double quotes, e.g. "it's"`)
		}
	case errors.As(err, &moe):
		if i := strings.LastIndex(line, moe.Token); i >= 0 {
			c.markAt(line, i)
		}
		c.suggestions = append(c.suggestions,
			"Give "+moe.Token+" a value with '=' or as the next word",
			"Use a short option (e.g. -v) for a switch without a value",
		)
	}
	return c
}

func (c *ErrorContext) markAt(line string, offset int) {
	c.input = line
	c.offset = offset
}

// column returns the 1-based character column of a byte offset in line.
func column(line string, offset int) int {
	if offset < 0 || offset > len(line) {
		return 0
	}
	return utf8.RuneCountInString(line[:offset]) + 1
}

// Wrap sets the underlying cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build creates the ActionableError. Returns nil when no operation was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}

	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: append([]string(nil), c.suggestions...),
		Cause:       c.cause,
		Issue:       c.issue,
		Input:       c.input,
		Offset:      c.offset,
	}
}

// BuildError is Build returning the error interface, so a missing operation yields a
// true nil error rather than a typed nil.
func (c *ErrorContext) BuildError() error {
	ae := c.Build()
	if ae == nil {
		return nil
	}
	return ae
}
