package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestExportWritesPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := Export(dir, "s1", []float64{0, 1, 2}, []float64{100, 140, 200}, "GNSS Altitude", "Time", "GNSS Altitude")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filepath.Base(path) != "s1_gnss_altitude.png" {
		t.Errorf("file name = %s", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Error("not a PNG")
	}
}

func TestExportEmptySeries(t *testing.T) {
	path, err := Export(t.TempDir(), "", nil, nil, "Voltage", "Time", "Voltage")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filepath.Base(path) != "voltage.png" {
		t.Errorf("file name = %s", filepath.Base(path))
	}
}

func TestExportSVG(t *testing.T) {
	tests := []struct {
		name   string
		xs, ys []float64
	}{
		{"series", []float64{0, 1, 2, 3}, []float64{1010, 1002, 990, 985}},
		{"single point", []float64{4}, []float64{7.4}},
		{"flat", []float64{0, 1, 2}, []float64{3.3, 3.3, 3.3}},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := ExportSVG(t.TempDir(), "s1", tt.xs, tt.ys, "Pressure", "Time", "Pressure (hPa)")
			if err != nil {
				t.Fatalf("ExportSVG: %v", err)
			}
			if filepath.Base(path) != "s1_pressure.svg" {
				t.Errorf("file name = %s", filepath.Base(path))
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Contains(data, []byte("<svg")) {
				t.Error("not an SVG document")
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatPNG, false},
		{"png", FormatPNG, false},
		{"SVG", FormatSVG, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestExportAsDispatches(t *testing.T) {
	dir := t.TempDir()
	path, err := ExportAs(FormatSVG, dir, "", []float64{0, 1}, []float64{1, 2}, "ACC_R", "Time", "ACC_R")
	if err != nil {
		t.Fatalf("ExportAs: %v", err)
	}
	if filepath.Ext(path) != ".svg" {
		t.Errorf("path = %s", path)
	}
}
