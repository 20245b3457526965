// SPDX-License-Identifier: MPL-2.0

package render

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"mvdan.cc/sh/v3/syntax"

	"github.com/reqline/reqline/pkg/request"
)

// ErrUnrepresentableOption is returned when an option cannot be written as a command line.
var ErrUnrepresentableOption = errors.New("option cannot be represented on a command line")

// UnrepresentableOptionError names a valueless option whose name is not a single character.
// Only short options can be flags, so such an option has no command-line form.
// It wraps ErrUnrepresentableOption for errors.Is() compatibility.
type UnrepresentableOptionError struct {
	Name string
}

// Error implements the error interface.
func (e *UnrepresentableOptionError) Error() string {
	return fmt.Sprintf("valueless option %q is not a single character", e.Name)
}

// Unwrap returns ErrUnrepresentableOption for errors.Is() compatibility.
func (e *UnrepresentableOptionError) Unwrap() error {
	return ErrUnrepresentableOption
}

// ShellLine rebuilds a canonical command line for req: the command name as given, then
// the options in order (consecutive flags merged into one cluster, valued options as
// --name=value), then the arguments. Values and arguments are quoted where bash needs it, using only
// quote pairs that Tokenize and TrimQuotes undo.
func ShellLine(req *request.Request) (string, error) {
	var parts []string
	if name := req.CommandName(); name != "" {
		parts = append(parts, name)
	}

	var cluster strings.Builder
	flush := func() {
		if cluster.Len() > 0 {
			parts = append(parts, "-"+cluster.String())
			cluster.Reset()
		}
	}

	for _, opt := range req.Options() {
		if !opt.HasValue {
			if utf8.RuneCountInString(opt.Name) != 1 {
				return "", &UnrepresentableOptionError{Name: opt.Name}
			}
			cluster.WriteString(opt.Name)
			continue
		}
		flush()
		value, err := quoteWord(opt.Value)
		if err != nil {
			return "", err
		}
		parts = append(parts, "--"+opt.Name+"="+value)
	}
	flush()

	for _, arg := range req.Arguments() {
		quoted, err := quoteWord(arg)
		if err != nil {
			return "", err
		}
		parts = append(parts, quoted)
	}

	return strings.Join(parts, " "), nil
}

// quoteWord quotes s when bash would need it. The quoting is always a plain '...' or
// "..." pair, never bash's $'...' escapes, since the request grammar has no escape
// processing and must read the word back unchanged. Words that would otherwise read as
// options are always quoted.
func quoteWord(s string) (string, error) {
	quoted, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("failed to quote %q: %w", s, err)
	}
	if quoted == s && !strings.HasPrefix(s, "-") {
		return s, nil
	}
	switch {
	case !strings.Contains(s, "'"):
		return "'" + s + "'", nil
	case !strings.Contains(s, `"`):
		return `"` + s + `"`, nil
	default:
		return quoted, nil
	}
}
