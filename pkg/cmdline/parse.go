// SPDX-License-Identifier: MPL-2.0

package cmdline

import (
	"strings"
	"unicode/utf8"
)

const (
	longOptionPrefix  = "--"
	shortOptionPrefix = "-"
	optionValueSep    = "="
)

// cursor walks a token sequence without mutating it.
type cursor struct {
	tokens []string
	pos    int
}

// peek returns the current token without consuming it.
func (c *cursor) peek() (string, bool) {
	if c.pos >= len(c.tokens) {
		return "", false
	}
	return c.tokens[c.pos], true
}

// advance consumes and returns the current token.
func (c *cursor) advance() (string, bool) {
	tok, ok := c.peek()
	if ok {
		c.pos++
	}
	return tok, ok
}

// Parse tokenizes and classifies a raw request line, then writes the result into sink.
// Nothing is written to sink unless the whole line parses.
func Parse(input string, sink Sink) error {
	tokens, err := Tokenize(input)
	if err != nil {
		return err
	}
	return ParseTokens(tokens, sink)
}

// ParseTokens classifies already-split tokens, e.g. os.Args[1:], and writes the result
// into sink. Tokens keep whatever quote characters they contain.
func ParseTokens(tokens []string, sink Sink) error {
	events, err := Classify(tokens)
	if err != nil {
		return err
	}
	Apply(events, sink)
	return nil
}

// Classify turns tokens into the ordered events they describe.
//
// A long option without "=" consumes the following token as its value, whatever that
// token looks like. The first positional token is the command name and is not
// quote-trimmed; later positional tokens are.
func Classify(tokens []string) ([]Event, error) {
	events := make([]Event, 0, len(tokens))
	cur := &cursor{tokens: tokens}
	positional := 0

	for {
		tok, ok := cur.advance()
		if !ok {
			break
		}

		switch {
		case strings.HasPrefix(tok, longOptionPrefix):
			if !strings.Contains(tok, optionValueSep) {
				next, ok := cur.advance()
				if !ok {
					return nil, &MalformedOptionError{Token: tok}
				}
				tok += optionValueSep + next
			}
			ev, err := parseLongOption(tok)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
		case strings.HasPrefix(tok, shortOptionPrefix):
			events = append(events, parseShortOptions(tok[len(shortOptionPrefix):])...)
		case positional == 0:
			events = append(events, Event{Kind: EventCommand, Value: tok})
			positional++
		default:
			events = append(events, Event{Kind: EventArgument, Value: TrimQuotes(tok)})
			positional++
		}
	}

	return events, nil
}

// parseLongOption splits a "--name=value" token on its first "=".
func parseLongOption(tok string) (Event, error) {
	name, value, found := strings.Cut(tok[len(longOptionPrefix):], optionValueSep)
	if !found {
		return Event{}, &MalformedOptionError{Token: tok}
	}
	return Event{Kind: EventOption, Name: name, Value: TrimQuotes(value), HasValue: true}, nil
}

// parseShortOptions expands a cluster such as "abc" into one valueless option per character.
// A valid UTF-8 cluster is split by rune; anything else is split by byte so no input byte
// is replaced.
func parseShortOptions(cluster string) []Event {
	events := make([]Event, 0, len(cluster))
	if utf8.ValidString(cluster) {
		for _, c := range cluster {
			events = append(events, Event{Kind: EventOption, Name: string(c)})
		}
		return events
	}
	for i := 0; i < len(cluster); i++ {
		events = append(events, Event{Kind: EventOption, Name: cluster[i : i+1]})
	}
	return events
}
