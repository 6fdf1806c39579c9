package chart

import (
	"fmt"
	"os"
	"path/filepath"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	svgLine = drawing.ColorFromHex("D62728")
	svgGrid = drawing.ColorFromHex("DDDDDD")
)

// ExportSVG writes the series as an SVG line chart. go-chart rejects
// zero-width ranges, so short or flat series get padded ranges and an empty
// series is drawn as a flat "no data" line.
func ExportSVG(dir, prefix string, xs, ys []float64, title, xLabel, yLabel string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	n := min(len(xs), len(ys))
	xs, ys = xs[:n], ys[:n]
	name := title
	switch n {
	case 0:
		xs, ys = []float64{0, 1}, []float64{0, 0}
		name = "no data"
	case 1:
		// A single point still needs a segment to span the axis.
		xs = []float64{xs[0], xs[0] + 1}
		ys = []float64{ys[0], ys[0]}
	}

	xlo, xhi := padRange(bounds(xs))
	ylo, yhi := padRange(bounds(ys))
	grid := gochart.Style{StrokeColor: svgGrid, StrokeWidth: 1}

	ch := gochart.Chart{
		Title:      title + " vs Time",
		Width:      960,
		Height:     480,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:           xLabel,
			Range:          &gochart.ContinuousRange{Min: xlo, Max: xhi},
			GridMajorStyle: grid,
		},
		YAxis: gochart.YAxis{
			Name:           yLabel,
			Range:          &gochart.ContinuousRange{Min: ylo, Max: yhi},
			GridMajorStyle: grid,
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    name,
				XValues: xs,
				YValues: ys,
				Style:   gochart.Style{StrokeColor: svgLine, StrokeWidth: 2},
			},
		},
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	path := filepath.Join(dir, fileName(prefix, title, FormatSVG))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := ch.Render(gochart.SVG, f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func padRange(lo, hi float64) (float64, float64) {
	if hi > lo {
		return lo, hi
	}
	return lo - 1, hi + 1
}
