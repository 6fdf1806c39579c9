package playback

import "cansat-dashboard.klederson.com/internal/telemetry"

// Phase is the driver state.
type Phase int

const (
	// Advancing means rows remain to be played.
	Advancing Phase = iota
	// Idle is terminal: the cursor reached the end of the table.
	Idle
)

func (p Phase) String() string {
	if p == Idle {
		return "IDLE"
	}
	return "ADVANCING"
}

// State holds everything the playback loop owns: the table, the cursor
// and one history per channel. It is mutated only by Driver.Tick and read
// by the chart views.
type State struct {
	Table   *telemetry.Table
	Cursor  int
	Skipped int
	History [telemetry.NumChannels]Series
}

// NewState wraps a loaded table. A nil table behaves like an empty one.
func NewState(t *telemetry.Table) *State {
	if t == nil {
		t = telemetry.Empty()
	}
	return &State{Table: t}
}

// Phase reports whether rows remain.
func (s *State) Phase() Phase {
	if s.Cursor >= s.Table.Len() {
		return Idle
	}
	return Advancing
}

// Series returns the history of ch.
func (s *State) Series(ch telemetry.Channel) *Series {
	return &s.History[ch.Index()]
}

// Remaining returns the number of rows not yet played.
func (s *State) Remaining() int {
	return s.Table.Len() - s.Cursor
}
