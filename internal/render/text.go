// SPDX-License-Identifier: MPL-2.0

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/reqline/reqline/pkg/request"
)

const (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorMuted     = lipgloss.Color("#6B7280")
	colorHighlight = lipgloss.Color("#3B82F6")
	colorValue     = lipgloss.Color("#10B981")

	labelWidth = 11
)

var (
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Width(labelWidth)
	commandStyle = lipgloss.NewStyle().Bold(true).Foreground(colorHighlight)
	nameStyle    = lipgloss.NewStyle().Foreground(colorHighlight)
	valueStyle   = lipgloss.NewStyle().Foreground(colorValue)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
)

// renderText produces the styled view:
//
//	Command    deploy
//	Arguments  1. prod
//	Options    --region = eu-west
//	           -f (flag)
func renderText(req *request.Request) string {
	var sb strings.Builder
	indent := strings.Repeat(" ", labelWidth)

	cmd := mutedStyle.Render("(none)")
	if name := req.CommandName(); name != "" {
		cmd = commandStyle.Render(name)
	}
	sb.WriteString(labelStyle.Render("Command") + cmd + "\n")

	args := req.Arguments()
	if len(args) == 0 {
		sb.WriteString(labelStyle.Render("Arguments") + mutedStyle.Render("(none)") + "\n")
	}
	for i, arg := range args {
		prefix := indent
		if i == 0 {
			prefix = labelStyle.Render("Arguments")
		}
		fmt.Fprintf(&sb, "%s%d. %s\n", prefix, i+1, valueStyle.Render(arg))
	}

	opts := req.Options()
	if len(opts) == 0 {
		sb.WriteString(labelStyle.Render("Options") + mutedStyle.Render("(none)") + "\n")
	}
	for i, opt := range opts {
		prefix := indent
		if i == 0 {
			prefix = labelStyle.Render("Options")
		}
		if opt.HasValue {
			fmt.Fprintf(&sb, "%s%s = %s\n", prefix, nameStyle.Render("--"+opt.Name), valueStyle.Render(opt.Value))
		} else {
			fmt.Fprintf(&sb, "%s%s %s\n", prefix, nameStyle.Render("-"+opt.Name), mutedStyle.Render("(flag)"))
		}
	}

	return sb.String()
}
