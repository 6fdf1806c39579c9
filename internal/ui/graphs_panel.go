package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const graphCols = 3

// ChartCellSize returns the drawable size of one chart in a grid of n
// charts filling width×height, accounting for panel borders.
func ChartCellSize(n, width, height int) (int, int) {
	rows := (n + graphCols - 1) / graphCols
	if rows < 1 {
		rows = 1
	}
	w := width/graphCols - 2
	h := height/rows - 2
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// RenderGraphGrid lays charts out three per row, each in its own panel.
// Charts larger than a cell are truncated to it.
func RenderGraphGrid(charts []string, width, height int) string {
	if len(charts) == 0 {
		return ClampLines("", height)
	}
	cw, ch := ChartCellSize(len(charts), width, height)

	var rows []string
	for i := 0; i < len(charts); i += graphCols {
		var cells []string
		for j := i; j < i+graphCols && j < len(charts); j++ {
			// Cut lines wider than the cell; Width would wrap them.
			body := lipgloss.NewStyle().MaxWidth(cw).Render(ClampLines(charts[j], ch))
			cells = append(cells, StylePanelBorder.Width(cw).Height(ch).MaxHeight(ch+2).Render(body))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return ClampLines(strings.Join(rows, "\n"), height)
}
