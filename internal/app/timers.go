package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type timerID int

const (
	clockTimer timerID = iota
	playbackTimer
	frameTimer
	retryTimer
	numTimers
)

func (id timerID) String() string {
	switch id {
	case clockTimer:
		return "clock"
	case playbackTimer:
		return "playback"
	case frameTimer:
		return "frame"
	case retryTimer:
		return "retry"
	}
	return "unknown"
}

// periodic is one registered timer. Bubble Tea ticks fire once, so a
// periodic re-arms itself from Update after each delivery.
type periodic struct {
	every time.Duration
	gen   uint64
	armed bool
}

// timers is the registry of every periodic the dashboard runs.
type timers struct {
	entries [numTimers]periodic
}

// register sets the period of id without arming it.
func (t *timers) register(id timerID, every time.Duration) {
	t.entries[id].every = every
}

// arm schedules the next firing of id and invalidates any tick already in
// flight for it.
func (t *timers) arm(id timerID) tea.Cmd {
	return t.armAfter(id, t.entries[id].every)
}

// armAfter is arm with a one-off delay.
func (t *timers) armAfter(id timerID, d time.Duration) tea.Cmd {
	p := &t.entries[id]
	p.gen++
	p.armed = true
	gen := p.gen
	return tea.Tick(d, func(at time.Time) tea.Msg {
		return timerMsg{id: id, gen: gen, at: at}
	})
}

// stop disarms id. Ticks already scheduled are dropped on delivery.
func (t *timers) stop(id timerID) {
	p := &t.entries[id]
	p.gen++
	p.armed = false
}

// fire reports whether msg is the current tick of an armed timer. A
// current tick disarms the timer until it is armed again.
func (t *timers) fire(msg timerMsg) bool {
	p := &t.entries[msg.id]
	if !p.armed || p.gen != msg.gen {
		return false
	}
	p.armed = false
	return true
}

// armed reports whether id has a tick pending.
func (t *timers) armed(id timerID) bool {
	return t.entries[id].armed
}
