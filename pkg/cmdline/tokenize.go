// SPDX-License-Identifier: MPL-2.0

package cmdline

import "strings"

const (
	tokenDelimiter = ' '

	// edgeSpace is the set trimmed from both ends of a line before tokenizing.
	edgeSpace = " \t\n\r\x00\x0b"
)

// Tokenize splits a raw request line into tokens on unquoted spaces.
//
// The line is scanned byte by byte, so every token is a contiguous slice of the trimmed
// input and bytes that are not valid UTF-8 pass through unchanged. Quote characters toggle
// their own quote mode unless the other mode is active, and are always kept in the token
// text. Only the space character delimits tokens; runs of spaces never produce empty
// tokens. A line that ends inside a quoted region fails with a *MalformedInputError.
func Tokenize(input string) ([]string, error) {
	lead := len(input) - len(strings.TrimLeft(input, edgeSpace))
	input = strings.Trim(input, edgeSpace)

	var (
		inDouble bool
		inSingle bool
		openedAt int
		previous byte
		buf      strings.Builder
		tokens   []string
	)

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch c {
		case byte(QuoteDouble):
			if !inSingle {
				inDouble = !inDouble
				openedAt = i
			}
			buf.WriteByte(c)
		case byte(QuoteSingle):
			if !inDouble {
				inSingle = !inSingle
				openedAt = i
			}
			buf.WriteByte(c)
		default:
			switch {
			case inDouble || inSingle || c != tokenDelimiter:
				buf.WriteByte(c)
			case previous != tokenDelimiter && buf.Len() > 0:
				tokens = append(tokens, buf.String())
				buf.Reset()
			}
		}

		previous = c
	}

	if buf.Len() > 0 {
		tokens = append(tokens, buf.String())
	}

	switch {
	case inDouble:
		return nil, &MalformedInputError{Quote: QuoteDouble, Offset: lead + openedAt}
	case inSingle:
		return nil, &MalformedInputError{Quote: QuoteSingle, Offset: lead + openedAt}
	}

	return tokens, nil
}
