// SPDX-License-Identifier: MPL-2.0

package consoleserver

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func readAllLines(t *testing.T, input string) ([]string, string) {
	t.Helper()

	var echo bytes.Buffer
	scanner := bufio.NewScanner(newLineDiscipline(strings.NewReader(input), &echo))
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	return lines, echo.String()
}

func TestLineDiscipline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
		echo  string
	}{
		{name: "carriage return ends a line", input: "ab\rcd\r", want: []string{"ab", "cd"}, echo: "ab\r\ncd\r\n"},
		{name: "backspace edits", input: "abx\x7f\r", want: []string{"ab"}, echo: "abx\b \b\r\n"},
		{name: "backspace on empty line", input: "\x7fa\r", want: []string{"a"}, echo: "a\r\n"},
		{name: "ctrl-c discards", input: "oops\x03ok\r", want: []string{"", "ok"}, echo: "oops^C\r\nok\r\n"},
		{name: "ctrl-d on empty line ends input", input: "a\r\x04b\r", want: []string{"a"}, echo: "a\r\n"},
		{name: "trailing text flushed at EOF", input: "tail", want: []string{"tail"}, echo: "tail"},
		{name: "multibyte backspace", input: "é\x7f\r", want: []string{""}, echo: "é\b \b\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines, echo := readAllLines(t, tt.input)
			if diff := cmp.Diff(tt.want, lines); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
			if echo != tt.echo {
				t.Errorf("echo = %q, want %q", echo, tt.echo)
			}
		})
	}
}

func TestCRLFWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := crlfWriter{w: &buf}.Write([]byte("a\nb\n"))
	if err != nil {
		t.Fatalf("Write() returned error: %v", err)
	}
	if n != 4 {
		t.Errorf("Write() = %d, want the input length", n)
	}
	if buf.String() != "a\r\nb\r\n" {
		t.Errorf("output = %q", buf.String())
	}
}
