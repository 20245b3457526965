// SPDX-License-Identifier: MPL-2.0

package console

import (
	"bufio"
	"io"
	"strings"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// LineReader reads request lines. Lines may be up to 1 MiB and a trailing "\r" is
// dropped, so CRLF input parses like LF input.
type LineReader struct {
	scanner *bufio.Scanner
}

// NewLineReader returns a LineReader over r.
func NewLineReader(r io.Reader) *LineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &LineReader{scanner: scanner}
}

// Next returns the next line, or io.EOF once the input is exhausted.
func (r *LineReader) Next() (string, error) {
	if r.scanner.Scan() {
		return strings.TrimSuffix(r.scanner.Text(), "\r"), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
