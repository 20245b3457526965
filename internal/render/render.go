// SPDX-License-Identifier: MPL-2.0

package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/reqline/reqline/pkg/request"
)

// Render writes req to w in the given format.
func Render(w io.Writer, req *request.Request, format Format) error {
	out, err := String(req, format)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// String renders req in the given format. The result always ends with a newline.
func String(req *request.Request, format Format) (string, error) {
	if err := format.Validate(); err != nil {
		return "", err
	}

	switch format {
	case FormatJSON:
		return renderJSON(req)
	case FormatTOML:
		return renderTOML(req)
	case FormatShell:
		line, err := ShellLine(req)
		if err != nil {
			return "", err
		}
		return line + "\n", nil
	case FormatEvents:
		return renderEvents(req), nil
	default:
		return renderText(req), nil
	}
}

func renderJSON(req *request.Request) (string, error) {
	data, err := json.MarshalIndent(req.Snapshot(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode request as JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func renderTOML(req *request.Request) (string, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(req.Snapshot()); err != nil {
		return "", fmt.Errorf("failed to encode request as TOML: %w", err)
	}
	return buf.String(), nil
}

func renderEvents(req *request.Request) string {
	var sb strings.Builder
	for _, ev := range req.Events() {
		sb.WriteString(ev.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
