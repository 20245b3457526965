// SPDX-License-Identifier: MPL-2.0

// Package cmdline parses a raw console request line into a structured command invocation.
//
// Parsing happens in three stages:
//
//   - Tokenize splits the line on unquoted spaces. Quote characters are kept in the
//     tokens; single and double quote regions are tracked independently.
//   - Classify walks the tokens with a cursor and turns them into an ordered list of
//     events: the command name, positional arguments, and options. Long options
//     (--name=value or --name value) always carry a value; short option clusters (-abc)
//     produce one valueless option per character.
//   - Apply replays the events into a Sink, the write-only builder interface implemented
//     by request.Request.
//
// Parse and ParseTokens run all three stages and are all-or-nothing: the sink is only
// written to when the whole line parses.
//
// The first positional token becomes the command name as-is, while every following
// positional token has its outer quotes trimmed. That asymmetry is intentional and kept
// for compatibility with existing consoles.
package cmdline
