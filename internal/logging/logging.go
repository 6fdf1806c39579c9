// Package logging wires slog to a rotating file. The terminal belongs to
// the dashboard, so nothing is written to stdout or stderr once the UI runs.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"cansat-dashboard.klederson.com/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ParseLevel maps a config level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// New builds a text logger on w tagged with the session id.
func New(w io.Writer, level slog.Level, session string) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("session", session)
}

// Setup opens the rotating log file and installs the logger as the slog
// default. The returned closer flushes and closes the file.
func Setup(s config.LogSettings, session string) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(s.Level)
	if err != nil {
		return nil, nil, err
	}

	rotator := &lumberjack.Logger{
		Filename:   s.File,
		MaxSize:    config.LogMaxSizeMB,
		MaxBackups: config.LogMaxBackups,
		MaxAge:     config.LogMaxAgeDays,
	}

	logger := New(rotator, level, session)
	slog.SetDefault(logger)
	return logger, rotator, nil
}
