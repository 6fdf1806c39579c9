// Package theme is the ground-station palette shared by the dashboard
// chrome and the terminal charts.
package theme

import "github.com/charmbracelet/lipgloss"

var (
	MatrixGreen  = lipgloss.Color("#00FF41")
	Green        = lipgloss.Color("#00CC33")
	MidGreen     = lipgloss.Color("#008F11")
	DimGreen     = lipgloss.Color("#004A0A")
	Navy         = lipgloss.Color("#2F265F")
	Sky          = lipgloss.Color("#3CC2FF")
	Launch       = lipgloss.Color("#FF4136")
	Clock        = lipgloss.Color("#1E90FF")
	Packet       = lipgloss.Color("#32CD32")
	BorderBright = lipgloss.Color("#00FF41")
	BorderNorm   = lipgloss.Color("#00AA22")
	Error        = lipgloss.Color("#FF3300")
	Warning      = lipgloss.Color("#FFAA00")
	White        = lipgloss.Color("#FFFFFF")
)
