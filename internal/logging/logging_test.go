package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cansat-dashboard.klederson.com/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseLevel(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewTagsSession(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, "abc-123")
	logger.Debug("hidden")
	logger.Info("telemetry loaded", "rows", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %q", out)
	}
	if !strings.Contains(out, "session=abc-123") || !strings.Contains(out, "rows=3") {
		t.Errorf("unexpected log output: %q", out)
	}
}

func TestSetupWritesFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "gs.log")
	logger, closer, err := Setup(config.LogSettings{File: path, Level: "info"}, "s1")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	logger.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "msg=hello") {
		t.Errorf("log file missing record: %q", data)
	}
}

func TestSetupRejectsBadLevel(t *testing.T) {
	if _, _, err := Setup(config.LogSettings{File: "x.log", Level: "shout"}, "s"); err == nil {
		t.Fatal("expected error")
	}
}
