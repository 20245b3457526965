// SPDX-License-Identifier: MPL-2.0

package consoleserver

import (
	"bytes"
	"io"
	"unicode/utf8"
)

const (
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyBackspace = 0x08
	keyDelete    = 0x7f
)

type (
	// lineDiscipline gives a raw PTY channel cooked-mode behavior: typed characters are
	// echoed, backspace edits the pending line, Enter completes it, Ctrl-C discards it and
	// Ctrl-D on an empty line ends the input.
	lineDiscipline struct {
		src  io.Reader
		echo io.Writer

		pending []byte
		ready   bytes.Buffer
		eof     bool
		buf     [256]byte
	}

	// crlfWriter translates "\n" to "\r\n" for terminals in raw mode.
	crlfWriter struct {
		w io.Writer
	}
)

func newLineDiscipline(src io.Reader, echo io.Writer) *lineDiscipline {
	return &lineDiscipline{src: src, echo: echo}
}

func (l *lineDiscipline) Read(p []byte) (int, error) {
	for l.ready.Len() == 0 {
		if l.eof {
			return 0, io.EOF
		}
		n, err := l.src.Read(l.buf[:])
		l.consume(l.buf[:n])
		if err != nil {
			if len(l.pending) > 0 {
				l.completeLine()
			}
			l.eof = true
		}
	}
	return l.ready.Read(p)
}

func (l *lineDiscipline) consume(data []byte) {
	for _, b := range data {
		switch b {
		case '\r', '\n':
			_, _ = io.WriteString(l.echo, "\r\n")
			l.completeLine()
		case keyBackspace, keyDelete:
			if len(l.pending) == 0 {
				continue
			}
			_, size := utf8.DecodeLastRune(l.pending)
			l.pending = l.pending[:len(l.pending)-size]
			_, _ = io.WriteString(l.echo, "\b \b")
		case keyCtrlC:
			l.pending = l.pending[:0]
			_, _ = io.WriteString(l.echo, "^C\r\n")
			l.ready.WriteByte('\n')
		case keyCtrlD:
			if len(l.pending) == 0 {
				l.eof = true
				return
			}
		default:
			l.pending = append(l.pending, b)
			_, _ = l.echo.Write([]byte{b})
		}
	}
}

func (l *lineDiscipline) completeLine() {
	l.ready.Write(l.pending)
	l.ready.WriteByte('\n')
	l.pending = l.pending[:0]
}

func (w crlfWriter) Write(p []byte) (int, error) {
	if _, err := w.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
