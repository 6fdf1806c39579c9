package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"cansat-dashboard.klederson.com/internal/app"
	"cansat-dashboard.klederson.com/internal/archive"
	"cansat-dashboard.klederson.com/internal/config"
	"cansat-dashboard.klederson.com/internal/logging"
	"cansat-dashboard.klederson.com/internal/playback"
	"cansat-dashboard.klederson.com/internal/telemetry"
	"cansat-dashboard.klederson.com/internal/video"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	flagConfig    string
	flagData      string
	flagStream    string
	flagDemo      bool
	flagRecord    string
	flagExportDir string
	flagExportFmt string
	flagLogFile   string
	flagLogLevel  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "cansat-dashboard",
		Short:   "CanSat ground station - terminal telemetry and live telecast dashboard",
		Version: config.AppVersion,
		Long: `CanSat ground station replays flight telemetry from a CSV file one row
per second, drawing altitude, pressure, voltage, gyro, acceleration and GNSS
altitude charts, and shows the payload camera's MJPEG stream.

Use --demo to replay a synthetic flight without a CSV file.
Use --record to archive every played sample to SQLite.`,
		SilenceUsage: true,
		RunE:         run,
	}

	f := rootCmd.Flags()
	f.StringVar(&flagConfig, "config", "", "YAML settings file")
	f.StringVar(&flagData, "data", "", "telemetry CSV (default "+config.DefaultDataPath+")")
	f.StringVar(&flagStream, "stream", "", "MJPEG stream URL (default "+config.DefaultStreamURL+")")
	f.BoolVar(&flagDemo, "demo", false, "Replay a synthetic flight instead of the CSV")
	f.StringVar(&flagRecord, "record", "", "SQLite file to archive played samples into")
	f.StringVar(&flagExportDir, "export-dir", "", "Directory for chart exports (default "+config.DefaultExportDir+")")
	f.StringVar(&flagExportFmt, "export-format", "", "Chart export format: png or svg")
	f.StringVar(&flagLogFile, "log-file", "", "Log file (default "+config.DefaultLogFile+")")
	f.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newSessionsCmd(), newExportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// settings layers flags over the config file over the defaults.
func settings(cmd *cobra.Command) (config.Settings, error) {
	s, err := config.Load(flagConfig)
	if err != nil {
		return s, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		s.Telemetry.Path = flagData
	}
	if flags.Changed("stream") {
		s.Video.URL = flagStream
	}
	if flags.Changed("demo") {
		s.Demo = flagDemo
	}
	if flags.Changed("record") {
		s.Archive.Path = flagRecord
	}
	if flags.Changed("export-dir") {
		s.Export.Dir = flagExportDir
	}
	if flags.Changed("export-format") {
		s.Export.Format = flagExportFmt
	}
	if flags.Changed("log-file") {
		s.Log.File = flagLogFile
	}
	if flags.Changed("log-level") {
		s.Log.Level = flagLogLevel
	}
	return s, s.Validate()
}

func run(cmd *cobra.Command, args []string) error {
	s, err := settings(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	session := uuid.NewString()
	logger, logCloser, err := logging.Setup(s.Log, session)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	logger.Info("ground station starting", "version", config.AppVersion, "demo", s.Demo)

	table := loadTable(s, logger)

	var sink playback.Sink
	if s.Archive.Path != "" {
		db, err := archive.Open(s.Archive.Path, session)
		if err != nil {
			// Playback still runs without the archive.
			logger.Error("archive disabled", "path", s.Archive.Path, "error", err)
		} else {
			defer db.Close()
			sink = db
			logger.Info("archiving samples", "path", s.Archive.Path)
		}
	}

	model := app.New(app.Options{
		Table:    table,
		Sink:     sink,
		Opener:   video.MJPEGOpener{Client: &http.Client{}},
		Settings: s,
		Session:  session,
		Logger:   logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(30),
	)

	final, err := p.Run()
	if m, ok := final.(app.AppModel); ok {
		m.Close()
	}
	logger.Info("ground station stopped")
	return err
}

// loadTable returns the demo flight or the CSV table. Load failures are
// logged and leave an empty table; the dashboard still starts.
func loadTable(s config.Settings, logger *slog.Logger) *telemetry.Table {
	if s.Demo {
		return telemetry.Demo(config.DemoRows, config.DemoSeed)
	}

	table, err := telemetry.Load(s.Telemetry.Path)
	var perr *telemetry.ParseError
	switch {
	case err == nil:
		logger.Info("telemetry loaded", "path", s.Telemetry.Path, "rows", table.Len(), "columns", len(table.Columns()))
	case errors.Is(err, telemetry.ErrSourceMissing):
		logger.Warn("telemetry source missing", "path", s.Telemetry.Path, "error", err)
	case errors.As(err, &perr):
		logger.Error("telemetry unreadable", "path", perr.Path, "line", perr.Line, "error", err)
	default:
		logger.Error("telemetry load failed", "path", s.Telemetry.Path, "error", err)
	}
	return table
}
