// Package chart draws a channel history as a terminal line chart and as a
// PNG snapshot. Both are full redraws of the supplied series; the surface
// keeps no data between calls.
package chart

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"cansat-dashboard.klederson.com/internal/theme"
	"github.com/charmbracelet/lipgloss"
	plot "github.com/chriskim06/drawille-go"
)

const (
	gutterW   = 9 // y tick labels
	gridEvery = 8 // columns between vertical grid marks
	gridRune  = '·'
	blankDot  = '⠀' // empty braille cell
)

var (
	styleTitle  = lipgloss.NewStyle().Foreground(theme.MatrixGreen).Bold(true)
	styleLegend = lipgloss.NewStyle().Foreground(theme.Green)
	styleAxis   = lipgloss.NewStyle().Foreground(theme.MidGreen)
	styleGrid   = lipgloss.NewStyle().Foreground(theme.DimGreen)
)

// Surface renders into a fixed cell area.
type Surface struct {
	Width  int
	Height int
	Color  plot.Color
}

// New creates a surface of w×h terminal cells.
func New(w, h int) *Surface {
	return &Surface{Width: w, Height: h, Color: plot.Red}
}

// Resize changes the drawing area; the next Render fits the new bounds.
func (s *Surface) Resize(w, h int) {
	s.Width, s.Height = w, h
}

// Render draws ys against xs with a title/legend line, a y label, tick
// labels, gridlines and an x axis. Empty series yield an empty framed plot.
func (s *Surface) Render(xs, ys []float64, title, xLabel, yLabel string) string {
	w, h := s.Width, s.Height
	if w < gutterW+6 {
		w = gutterW + 6
	}
	if h < 5 {
		h = 5
	}
	n := len(ys)
	if len(xs) < n {
		n = len(xs)
	}
	xs, ys = finite(xs[:n], ys[:n])
	n = len(ys)

	bodyW := w - gutterW - 1
	bodyH := h - 4 // title, y label, x axis, x labels

	lines := make([]string, 0, h)
	lines = append(lines, titleLine(title, n > 0, w))
	lines = append(lines, styleAxis.Render(yLabel))

	body := s.body(ys, bodyW, bodyH)
	lo, hi := bounds(ys)
	for r := 0; r < bodyH; r++ {
		lines = append(lines, yTick(r, bodyH, lo, hi, n > 0)+body[r])
	}

	lines = append(lines, xAxis(bodyW))
	lines = append(lines, xLabels(xs, xLabel, bodyW))

	clamp := lipgloss.NewStyle().MaxWidth(w)
	for i := range lines {
		lines[i] = clamp.Render(lines[i])
	}
	return strings.Join(lines, "\n")
}

// body returns exactly bodyH plot rows of bodyW visible cells.
func (s *Surface) body(ys []float64, bodyW, bodyH int) []string {
	var raw []string
	if len(ys) > 0 {
		raw = s.draw(downsample(ys, bodyW*2), bodyW, bodyH)
	}

	rows := make([]string, bodyH)
	for r := range rows {
		line := ""
		if r < len(raw) {
			line = raw[r]
		}
		rows[r] = overlayGrid(line, bodyW, r, bodyH)
	}
	return rows
}

// draw plots ys on a braille canvas. A flat series has no vertical range
// for the canvas to scale, so it is drawn as a centred rule instead.
func (s *Surface) draw(ys []float64, bodyW, bodyH int) (out []string) {
	lo, hi := bounds(ys)
	if hi-lo == 0 || len(ys) < 2 {
		return flatLine(bodyW, bodyH)
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Warn("chart canvas failed, drawing flat line",
				"points", len(ys), "width", bodyW, "height", bodyH, "panic", r)
			out = flatLine(bodyW, bodyH)
		}
	}()

	c := plot.NewCanvas(bodyW, bodyH)
	c.NumDataPoints = len(ys)
	c.ShowAxis = false
	c.LineColors = []plot.Color{s.Color}
	c.Fill([][]float64{ys})
	return strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
}

func flatLine(w, h int) []string {
	rows := make([]string, h)
	rows[h/2] = strings.Repeat("⠒", w)
	return rows
}

// overlayGrid pads line to w cells and paints grid dots into blank cells.
// ANSI sequences from the canvas are copied through untouched.
func overlayGrid(line string, w, row, h int) string {
	gridRow := h > 2 && (row == h/4 || row == h/2 || row == 3*h/4)

	var sb strings.Builder
	col := 0
	inEsc := false
	for _, r := range line {
		if inEsc {
			sb.WriteRune(r)
			if r == 'm' {
				inEsc = false
			}
			continue
		}
		if r == '\x1b' {
			inEsc = true
			sb.WriteRune(r)
			continue
		}
		if col >= w {
			continue
		}
		sb.WriteString(cell(r, col, gridRow))
		col++
	}
	for ; col < w; col++ {
		sb.WriteString(cell(' ', col, gridRow))
	}
	return sb.String()
}

func cell(r rune, col int, gridRow bool) string {
	if r != ' ' && r != blankDot {
		return string(r)
	}
	if gridRow || (col > 0 && col%gridEvery == 0) {
		return styleGrid.Render(string(gridRune))
	}
	return " "
}

func titleLine(title string, hasData bool, w int) string {
	legend := "── " + title
	if !hasData {
		legend = "no data"
	}
	left := styleTitle.Render(title + " vs Time")
	right := styleLegend.Render(legend)
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func yTick(row, h int, lo, hi float64, hasData bool) string {
	label := ""
	mark := "│"
	if row == 0 || row == h/2 || row == h-1 {
		mark = "┤"
		if hasData {
			v := hi - (hi-lo)*float64(row)/float64(max(1, h-1))
			label = formatTick(v)
		}
	}
	return styleAxis.Render(fmt.Sprintf("%*s", gutterW-1, label) + " " + mark)
}

func xAxis(bodyW int) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", gutterW))
	sb.WriteString("└")
	for c := 1; c < bodyW; c++ {
		if c%gridEvery == 0 {
			sb.WriteString("┬")
		} else {
			sb.WriteString("─")
		}
	}
	return styleAxis.Render(sb.String())
}

func xLabels(xs []float64, xLabel string, bodyW int) string {
	left, right := "", ""
	if len(xs) > 0 {
		left = formatTick(xs[0])
		right = formatTick(xs[len(xs)-1])
	}
	mid := bodyW/2 - len(xLabel)/2 - len(left)
	if mid < 1 {
		mid = 1
	}
	line := left + strings.Repeat(" ", mid) + xLabel
	gap := bodyW - len(line) - len(right)
	if gap < 1 {
		gap = 1
	}
	line += strings.Repeat(" ", gap) + right
	return styleAxis.Render(strings.Repeat(" ", gutterW+1) + line)
}

func formatTick(v float64) string {
	s := fmt.Sprintf("%.4g", v)
	if len(s) > gutterW-1 {
		s = fmt.Sprintf("%.2e", v)
	}
	return s
}

// finite drops points whose x or y is NaN or infinite. The inputs are
// returned unchanged when every point is finite.
func finite(xs, ys []float64) ([]float64, []float64) {
	ok := true
	for i := range ys {
		if !isFinite(xs[i]) || !isFinite(ys[i]) {
			ok = false
			break
		}
	}
	if ok {
		return xs, ys
	}
	fx := make([]float64, 0, len(xs))
	fy := make([]float64, 0, len(ys))
	for i := range ys {
		if isFinite(xs[i]) && isFinite(ys[i]) {
			fx = append(fx, xs[i])
			fy = append(fy, ys[i])
		}
	}
	return fx, fy
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func bounds(ys []float64) (lo, hi float64) {
	if len(ys) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range ys {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// downsample keeps at most n evenly spaced points, always including the
// newest one.
func downsample(ys []float64, n int) []float64 {
	if n < 2 || len(ys) <= n {
		return ys
	}
	out := make([]float64, n)
	step := float64(len(ys)-1) / float64(n-1)
	for i := range out {
		out[i] = ys[int(math.Round(float64(i)*step))]
	}
	return out
}
