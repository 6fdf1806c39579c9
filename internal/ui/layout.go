package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ComposeLayout stacks header, tab bar, page body and footer.
func ComposeLayout(header, tabs, body, footer string) string {
	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, body, footer)
}

// ClampLines pads or cuts s to exactly height lines.
// lipgloss Height() only sets a minimum; it won't truncate overflow.
func ClampLines(s string, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
