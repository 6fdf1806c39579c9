package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Export writes the series as a PNG named after the title into dir and
// returns the file path. Like Render it always draws the whole series.
func Export(dir, prefix string, xs, ys []float64, title, xLabel, yLabel string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	p := plot.New()
	p.Title.Text = title + " vs Time"
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	n := min(len(xs), len(ys))
	if n > 0 {
		pts := make(plotter.XYs, n)
		for i := 0; i < n; i++ {
			pts[i].X = xs[i]
			pts[i].Y = ys[i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return "", fmt.Errorf("build line for %s: %w", title, err)
		}
		p.Add(line)
		p.Legend.Add(title, line)
	}

	path := filepath.Join(dir, fileName(prefix, title, FormatPNG))
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

// Format selects the export file type.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts "png" or "svg"; empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// ExportAs writes the series in the given format.
func ExportAs(f Format, dir, prefix string, xs, ys []float64, title, xLabel, yLabel string) (string, error) {
	if f == FormatSVG {
		return ExportSVG(dir, prefix, xs, ys, title, xLabel, yLabel)
	}
	return Export(dir, prefix, xs, ys, title, xLabel, yLabel)
}

func fileName(prefix, title string, f Format) string {
	name := strings.ToLower(strings.ReplaceAll(title, " ", "_"))
	if prefix != "" {
		name = prefix + "_" + name
	}
	return name + "." + string(f)
}
