package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tab identifies a dashboard page.
type Tab int

const (
	TabTelemetry Tab = iota
	TabGraphs
	TabTelecast
	tabCount
)

// TabCount is the number of pages.
const TabCount = int(tabCount)

func (t Tab) String() string {
	switch t {
	case TabGraphs:
		return "Graphs"
	case TabTelecast:
		return "Live Telecast"
	default:
		return "Telemetry Data"
	}
}

// Next returns the following tab, wrapping around.
func (t Tab) Next() Tab { return Tab((int(t) + 1) % TabCount) }

// Prev returns the preceding tab, wrapping around.
func (t Tab) Prev() Tab { return Tab((int(t) + TabCount - 1) % TabCount) }

// RenderTabs renders the tab bar with the active tab highlighted.
func RenderTabs(width int, active Tab) string {
	parts := make([]string, 0, TabCount)
	for i := 0; i < TabCount; i++ {
		t := Tab(i)
		label := string(rune('1'+i)) + " " + t.String()
		if t == active {
			parts = append(parts, StyleTabActive.Render(label))
		} else {
			parts = append(parts, StyleTabInactive.Render(label))
		}
	}
	bar := strings.Join(parts, " ")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, bar)
}
