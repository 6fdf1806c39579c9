package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Control is an operator trigger shown in the footer.
type Control struct {
	Key   string
	Label string
}

// RenderFooter renders the operator controls and a status line below them.
func RenderFooter(width int, controls []Control, status string) string {
	var sb strings.Builder
	for i, c := range controls {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(StyleControlKey.Render("[" + c.Key + "]"))
		sb.WriteString(StyleControlLabel.Render(c.Label))
	}

	bar := StyleFooter.Width(width).MaxWidth(width)
	return lipgloss.JoinVertical(lipgloss.Left,
		bar.Render(sb.String()),
		bar.Render(status),
	)
}

// StatusLine joins status fields with a separator.
func StatusLine(fields ...string) string {
	return strings.Join(fields, StyleHelp.Render("  |  "))
}
