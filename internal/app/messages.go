package app

import (
	"time"

	"cansat-dashboard.klederson.com/internal/video"
)

// timerMsg is delivered when a registered periodic fires. gen guards
// against ticks scheduled before the timer was re-armed or stopped.
type timerMsg struct {
	id  timerID
	gen uint64
	at  time.Time
}

// connectResultMsg carries the outcome of a stream dial run off the UI loop.
type connectResultMsg struct {
	stream video.Stream
	err    error
}

// ExportDoneMsg reports a finished chart export.
type ExportDoneMsg struct {
	Paths []string
	Err   error
}
