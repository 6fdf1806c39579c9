package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Reading is the latest value of one channel with its recent trend.
type Reading struct {
	Title    string
	Unit     string
	Value    float64
	HasValue bool
	Trend    []float64
}

// RenderTelemetryPanel renders the latest sample of every channel with a
// sparkline of its recent history.
func RenderTelemetryPanel(readings []Reading, played, total, skipped int, phase string, width, height int) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}
	innerH := height - 2
	if innerH < 3 {
		innerH = 3
	}

	title := StylePanelTitle.Render("TELEMETRY DATA")
	progress := StyleHelp.Render(fmt.Sprintf("row %d/%d  skipped %d  %s", played, total, skipped, phase))
	gap := innerW - lipgloss.Width(title) - lipgloss.Width(progress)
	if gap < 1 {
		gap = 1
	}
	lines := []string{
		title + strings.Repeat(" ", gap) + progress,
		StyleRule.Render(strings.Repeat("-", innerW)),
		"",
	}

	if total == 0 {
		lines = append(lines, StyleHelp.Render("  No telemetry loaded"))
		lines = append(lines, StyleHelp.Render("  Waiting for data source"))
	}

	sparkW := innerW - 36
	if sparkW < 5 {
		sparkW = 5
	}
	for _, r := range readings {
		label := StyleReadingLabel.Render(fmt.Sprintf("  %-14s", r.Title))
		value := "--"
		if r.HasValue {
			value = fmt.Sprintf("%.2f %s", r.Value, r.Unit)
		}
		val := StyleReadingValue.Render(fmt.Sprintf("%-18s", value))
		spark := StyleSparkline.Render(renderSparkline(r.Trend, sparkW))
		lines = append(lines, label+val+spark)
	}

	content := ClampLines(strings.Join(lines, "\n"), innerH)
	return StylePanelBorder.Width(width - 2).Height(innerH).Render(content)
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	// Take last `width` values
	start := 0
	if len(values) > width {
		start = len(values) - width
	}
	values = values[start:]

	// Find min/max for scaling
	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	rng := maxV - minV

	var sb strings.Builder
	for _, v := range values {
		idx := len(chars) / 2
		if rng > 0 {
			idx = int((v - minV) / rng * float64(len(chars)-1))
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}
