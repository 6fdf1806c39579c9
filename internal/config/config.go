package config

import "time"

const (
	// Telemetry playback
	DefaultDataPath = "data.csv"
	PlaybackTick    = time.Second // One row per tick
	ClockTick       = time.Second

	// Video
	DefaultStreamURL  = "http://192.168.29.142:8080/video"
	FrameTick         = 33 * time.Millisecond // ~30 fps frame pull
	StreamDialTimeout = 3 * time.Second

	// Chart display; surfaces start at the initial size until the first resize
	ChartInitialWidth  = 20
	ChartInitialHeight = 6
	SparklineWidth     = 40

	// Chart export
	DefaultExportDir    = "exports"
	DefaultExportFormat = "png"

	// Demo mode
	DemoRows = 180 // Three minutes of flight at one row per second
	DemoSeed = 2024

	// Logging
	DefaultLogFile  = "cansat-dashboard.log"
	DefaultLogLevel = "info"
	LogMaxSizeMB    = 10
	LogMaxBackups   = 3
	LogMaxAgeDays   = 28

	// App
	AppName    = "CANSAT-GS"
	AppVersion = "1.0"
	TeamName   = "TEAM KALPANA : 2024-CANSAT-ASI-023"
)
