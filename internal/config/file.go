package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the runtime configuration. Zero values are filled from the
// package defaults, then overridden by an optional YAML file and CLI flags.
type Settings struct {
	Telemetry TelemetrySettings `yaml:"telemetry"`
	Video     VideoSettings     `yaml:"video"`
	Log       LogSettings       `yaml:"log"`
	Archive   ArchiveSettings   `yaml:"archive"`
	Export    ExportSettings    `yaml:"export"`
	Demo      bool              `yaml:"demo"`
}

// TelemetrySettings controls the playback source and pace.
type TelemetrySettings struct {
	Path string        `yaml:"path"`
	Tick time.Duration `yaml:"tick"`
}

// VideoSettings controls the camera stream.
type VideoSettings struct {
	URL         string          `yaml:"url"`
	FrameTick   time.Duration   `yaml:"frame_tick"`
	DialTimeout time.Duration   `yaml:"dial_timeout"`
	Backoff     BackoffSettings `yaml:"backoff"`
}

// BackoffSettings caps reconnect attempts. A zero Initial keeps the
// retry-every-tick behaviour.
type BackoffSettings struct {
	Initial time.Duration `yaml:"initial"`
	Max     time.Duration `yaml:"max"`
}

// LogSettings controls the rotating log file.
type LogSettings struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// ArchiveSettings enables SQLite recording of played samples.
type ArchiveSettings struct {
	Path string `yaml:"path"` // empty = disabled
}

// ExportSettings controls chart snapshots.
type ExportSettings struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // png or svg
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Telemetry: TelemetrySettings{
			Path: DefaultDataPath,
			Tick: PlaybackTick,
		},
		Video: VideoSettings{
			URL:         DefaultStreamURL,
			FrameTick:   FrameTick,
			DialTimeout: StreamDialTimeout,
		},
		Log: LogSettings{
			File:  DefaultLogFile,
			Level: DefaultLogLevel,
		},
		Export: ExportSettings{
			Dir:    DefaultExportDir,
			Format: DefaultExportFormat,
		},
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	return s, nil
}

// Validate rejects settings the timers and loaders cannot run with.
func (s Settings) Validate() error {
	var errs []error
	if s.Telemetry.Path == "" && !s.Demo {
		errs = append(errs, errors.New("telemetry.path must be set (or enable demo)"))
	}
	if s.Telemetry.Tick <= 0 {
		errs = append(errs, fmt.Errorf("telemetry.tick must be positive, got %s", s.Telemetry.Tick))
	}
	if s.Video.FrameTick <= 0 {
		errs = append(errs, fmt.Errorf("video.frame_tick must be positive, got %s", s.Video.FrameTick))
	}
	if s.Video.DialTimeout < 0 {
		errs = append(errs, fmt.Errorf("video.dial_timeout must not be negative, got %s", s.Video.DialTimeout))
	}
	if s.Video.Backoff.Initial < 0 || s.Video.Backoff.Max < 0 {
		errs = append(errs, errors.New("video.backoff durations must not be negative"))
	}
	if s.Video.Backoff.Initial > 0 && s.Video.Backoff.Max > 0 && s.Video.Backoff.Max < s.Video.Backoff.Initial {
		errs = append(errs, errors.New("video.backoff.max must be >= video.backoff.initial"))
	}
	switch strings.ToLower(s.Export.Format) {
	case "png", "svg":
	default:
		errs = append(errs, fmt.Errorf("export.format %q is not png or svg", s.Export.Format))
	}
	if s.Export.Dir == "" {
		errs = append(errs, errors.New("export.dir must be set"))
	}
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", s.Log.Level))
	}
	return errors.Join(errs...)
}
