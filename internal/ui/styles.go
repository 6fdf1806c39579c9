package ui

import (
	"cansat-dashboard.klederson.com/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

// Ground-station palette
var (
	ColorMatrixGreen  = theme.MatrixGreen
	ColorGreen        = theme.Green
	ColorMidGreen     = theme.MidGreen
	ColorDimGreen     = theme.DimGreen
	ColorNavy         = theme.Navy
	ColorSky          = theme.Sky
	ColorLaunch       = theme.Launch
	ColorClock        = theme.Clock
	ColorPacket       = theme.Packet
	ColorBorderBright = theme.BorderBright
	ColorBorderNorm   = theme.BorderNorm
	ColorError        = theme.Error
	ColorWarning      = theme.Warning
	ColorWhite        = theme.White
)

// Pre-built styles
var (
	StyleHeader = lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorWhite).
			Bold(true).
			Padding(0, 1)

	StyleHeaderLabel = lipgloss.NewStyle().
				Background(ColorNavy).
				Foreground(ColorSky).
				Bold(true)

	StyleTeam = lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorWhite).
			Bold(true)

	StyleLaunchPad = lipgloss.NewStyle().
			Background(ColorLaunch).
			Foreground(ColorWhite).
			Bold(true).
			Padding(0, 1)

	StyleClock = lipgloss.NewStyle().
			Background(ColorClock).
			Foreground(ColorWhite).
			Bold(true).
			Padding(0, 1)

	StylePacket = lipgloss.NewStyle().
			Background(ColorPacket).
			Foreground(ColorWhite).
			Bold(true).
			Padding(0, 1)

	StyleTabActive = lipgloss.NewStyle().
			Background(lipgloss.Color("#007C92")).
			Foreground(ColorWhite).
			Bold(true).
			Padding(0, 2)

	StyleTabInactive = lipgloss.NewStyle().
				Background(lipgloss.Color("#E7F6F8")).
				Foreground(lipgloss.Color("#004466")).
				Padding(0, 2)

	StyleFooter = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorGreen).
			Padding(0, 1)

	StyleControlKey = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleControlLabel = lipgloss.NewStyle().
				Foreground(ColorGreen)

	StyleStatusOK = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleStatusWarn = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	StyleStatusError = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderNorm)

	StylePanelActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderBright)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true).
			Padding(0, 1)

	StyleReadingLabel = lipgloss.NewStyle().
				Foreground(ColorMidGreen)

	StyleReadingValue = lipgloss.NewStyle().
				Foreground(ColorMatrixGreen).
				Bold(true)

	StyleSparkline = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleRule = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDimGreen)

	StyleVideo = lipgloss.NewStyle().
			Background(lipgloss.Color("#000000"))
)
