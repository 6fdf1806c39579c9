package ui

import (
	"fmt"
	"strings"
	"time"

	"cansat-dashboard.klederson.com/internal/config"
	"github.com/charmbracelet/lipgloss"
)

// RenderHeader renders the top bar: software state, team, clock and
// packet count.
func RenderHeader(width int, now time.Time, packets int) string {
	left := StyleHeaderLabel.Render("SOFTWARE STATE ") + StyleLaunchPad.Render("LAUNCH PAD")
	center := StyleTeam.Render(config.TeamName)
	right := StyleHeaderLabel.Render("TIME ") + StyleClock.Render(FormatClock(now)) +
		StyleHeaderLabel.Render("  PACKET COUNT ") + StylePacket.Render(fmt.Sprintf("%d", packets))

	inner := width - 2 // StyleHeader padding
	used := lipgloss.Width(left) + lipgloss.Width(center) + lipgloss.Width(right)
	gap := inner - used
	if gap < 2 {
		// Too narrow for the team name
		center = ""
		gap = inner - lipgloss.Width(left) - lipgloss.Width(right)
	}
	if gap < 0 {
		gap = 0
	}
	lpad := gap / 2
	rpad := gap - lpad

	fill := StyleHeader.UnsetPadding()
	return StyleHeader.Width(width).MaxWidth(width).Render(
		left + fill.Render(strings.Repeat(" ", lpad)) + center + fill.Render(strings.Repeat(" ", rpad)) + right)
}

// FormatClock formats the header clock; a zero time shows 00:00:00.
func FormatClock(t time.Time) string {
	if t.IsZero() {
		return "00:00:00"
	}
	return t.Format("15:04:05")
}
