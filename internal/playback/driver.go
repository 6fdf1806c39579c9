package playback

import (
	"fmt"

	"cansat-dashboard.klederson.com/internal/telemetry"
)

// Outcome describes what a tick did.
type Outcome int

const (
	// TickIdle did nothing; the table is exhausted.
	TickIdle Outcome = iota
	// TickAppended appended one point to every channel.
	TickAppended
	// TickSkipped appended nothing because the row was incomplete.
	TickSkipped
)

func (o Outcome) String() string {
	switch o {
	case TickAppended:
		return "appended"
	case TickSkipped:
		return "skipped"
	default:
		return "idle"
	}
}

// Sink receives every sample the driver appends.
type Sink interface {
	Record(tick int, sample [telemetry.NumChannels]float64) error
}

// Driver advances a State by one row per tick.
type Driver struct {
	state *State
	sink  Sink
}

// NewDriver creates a driver over state. sink may be nil.
func NewDriver(state *State, sink Sink) *Driver {
	return &Driver{state: state, sink: sink}
}

// State returns the driven state.
func (d *Driver) State() *State {
	return d.state
}

// Tick plays the row under the cursor. Either all six histories grow by
// one point or none do; the cursor advances in both cases. The returned
// error is informational (a missing channel or a sink failure) and never
// stops playback.
func (d *Driver) Tick() (Outcome, error) {
	s := d.state
	if s.Phase() == Idle {
		return TickIdle, nil
	}

	row := s.Cursor
	s.Cursor++

	sample, err := s.Table.Sample(row)
	if err != nil {
		s.Skipped++
		return TickSkipped, err
	}

	x := float64(row)
	for i := range sample {
		s.History[i].Append(x, sample[i])
	}

	if d.sink != nil {
		if err := d.sink.Record(row, sample); err != nil {
			return TickAppended, fmt.Errorf("record tick %d: %w", row, err)
		}
	}
	return TickAppended, nil
}
