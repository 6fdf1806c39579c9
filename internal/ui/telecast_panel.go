package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// VideoAreaSize returns the cell area left for video inside the telecast
// panel of width×height.
func VideoAreaSize(width, height int) (int, int) {
	w := width - 4
	h := height - 5 // border, title, rule, stream info
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// RenderTelecastPanel frames the rendered video with the stream address
// and connection details.
func RenderTelecastPanel(video, addr, state string, frames, reconnects uint64, width, height int) string {
	innerW, videoH := VideoAreaSize(width, height)

	title := StylePanelTitle.Render("LIVE TELECAST")
	hint := StyleHelp.Render("[r] Refresh Stream")
	gap := innerW - lipgloss.Width(title) - lipgloss.Width(hint)
	if gap < 1 {
		gap = 1
	}

	stateSty := StyleStatusOK
	if state != "CONNECTED" {
		stateSty = StyleStatusWarn
	}
	info := StyleReadingLabel.Render(addr+"  ") + stateSty.Render(state) +
		StyleHelp.Render(fmt.Sprintf("  frames %d  reconnects %d", frames, reconnects))

	lines := []string{
		title + strings.Repeat(" ", gap) + hint,
		StyleRule.Render(strings.Repeat("-", innerW)),
		StyleVideo.Render(ClampLines(video, videoH)),
		info,
	}
	content := ClampLines(strings.Join(lines, "\n"), height-2)
	return StylePanelActive.Width(width - 2).Height(height - 2).Render(content)
}
