package playback

import (
	"errors"
	"strings"
	"testing"

	"cansat-dashboard.klederson.com/internal/telemetry"
)

func fullRow(alt float64) telemetry.Row {
	return telemetry.Row{
		telemetry.Altitude:     alt,
		telemetry.Pressure:     1000,
		telemetry.Voltage:      5,
		telemetry.GyroR:        0.1,
		telemetry.AccR:         9.8,
		telemetry.GNSSAltitude: alt - 2,
	}
}

func table(rows ...telemetry.Row) *telemetry.Table {
	return telemetry.NewTable(telemetry.Channels[:], rows)
}

func TestSingleRowExample(t *testing.T) {
	row := telemetry.Row{
		telemetry.Altitude:     100,
		telemetry.Pressure:     1000,
		telemetry.Voltage:      5,
		telemetry.GyroR:        0.1,
		telemetry.AccR:         9.8,
		telemetry.GNSSAltitude: 98,
	}
	st := NewState(table(row))
	d := NewDriver(st, nil)

	out, err := d.Tick()
	if err != nil || out != TickAppended {
		t.Fatalf("Tick() = %v, %v", out, err)
	}

	alt := st.Series(telemetry.Altitude)
	if alt.Len() != 1 || alt.XS()[0] != 0 || alt.YS()[0] != 100 {
		t.Errorf("altitude history = %v/%v, want [(0,100)]", alt.XS(), alt.YS())
	}
	if st.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", st.Cursor)
	}
	if st.Phase() != Idle {
		t.Errorf("phase = %v, want Idle", st.Phase())
	}
}

func TestNTicksReachIdleWithNEntries(t *testing.T) {
	const n = 25
	rows := make([]telemetry.Row, n)
	for i := range rows {
		rows[i] = fullRow(float64(i * 10))
	}
	st := NewState(table(rows...))
	d := NewDriver(st, nil)

	for i := 0; i < n; i++ {
		if st.Phase() != Advancing {
			t.Fatalf("tick %d: phase = %v before end of table", i, st.Phase())
		}
		if _, err := d.Tick(); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}

	if st.Phase() != Idle {
		t.Fatalf("phase = %v after %d ticks", st.Phase(), n)
	}
	for _, ch := range telemetry.Channels {
		s := st.Series(ch)
		if s.Len() != n || s.Len() != st.Cursor {
			t.Fatalf("%s: len = %d, cursor = %d, want %d", ch, s.Len(), st.Cursor, n)
		}
		for i, x := range s.XS() {
			if x != float64(i) {
				t.Fatalf("%s: x[%d] = %v, want cursor order", ch, i, x)
			}
		}
	}
	if got := st.Series(telemetry.Altitude).YS()[n-1]; got != float64((n-1)*10) {
		t.Errorf("last altitude = %v", got)
	}
}

func TestIdleIsTerminal(t *testing.T) {
	st := NewState(table(fullRow(1)))
	d := NewDriver(st, nil)
	d.Tick()

	for i := 0; i < 5; i++ {
		out, err := d.Tick()
		if out != TickIdle || err != nil {
			t.Fatalf("Tick() after end = %v, %v", out, err)
		}
	}
	if st.Cursor != 1 {
		t.Errorf("cursor = %d, must not pass row count", st.Cursor)
	}
	if st.Series(telemetry.Voltage).Len() != 1 {
		t.Errorf("history grew after Idle")
	}
}

func TestEmptyTableIsIdleImmediately(t *testing.T) {
	for _, tbl := range []*telemetry.Table{nil, telemetry.Empty()} {
		st := NewState(tbl)
		d := NewDriver(st, nil)
		if st.Phase() != Idle {
			t.Fatalf("phase = %v, want Idle", st.Phase())
		}
		for i := 0; i < 3; i++ {
			if out, _ := d.Tick(); out != TickIdle {
				t.Fatalf("Tick() = %v", out)
			}
		}
		for _, ch := range telemetry.Channels {
			if st.Series(ch).Len() != 0 {
				t.Fatalf("%s history not empty", ch)
			}
		}
	}
}

func TestMissingChannelSkipsWholeTick(t *testing.T) {
	broken := fullRow(20)
	delete(broken, telemetry.AccR)
	st := NewState(table(fullRow(10), broken, fullRow(30)))
	d := NewDriver(st, nil)

	d.Tick()
	out, err := d.Tick()
	if out != TickSkipped {
		t.Fatalf("outcome = %v, want skipped", out)
	}
	var cm *telemetry.ChannelMissingError
	if !errors.As(err, &cm) || cm.Channel != telemetry.AccR || cm.Row != 1 {
		t.Fatalf("err = %v, want missing ACC_R at row 1", err)
	}
	if st.Cursor != 2 {
		t.Errorf("cursor = %d, want 2 (advances past bad row)", st.Cursor)
	}
	for _, ch := range telemetry.Channels {
		if st.Series(ch).Len() != 1 {
			t.Fatalf("%s: len = %d, want 1 (no partial append)", ch, st.Series(ch).Len())
		}
	}

	d.Tick()
	for _, ch := range telemetry.Channels {
		s := st.Series(ch)
		if s.Len() != 2 {
			t.Fatalf("%s: len = %d, want 2", ch, s.Len())
		}
		if s.XS()[1] != 2 {
			t.Errorf("%s: x = %v, want row index 2", ch, s.XS()[1])
		}
	}
	if st.Skipped != 1 || st.Phase() != Idle {
		t.Errorf("skipped = %d, phase = %v", st.Skipped, st.Phase())
	}
}

type recordingSink struct {
	ticks []int
	fail  error
}

func (r *recordingSink) Record(tick int, _ [telemetry.NumChannels]float64) error {
	r.ticks = append(r.ticks, tick)
	return r.fail
}

func TestSinkSeesOnlyAppendedTicks(t *testing.T) {
	broken := fullRow(2)
	delete(broken, telemetry.Pressure)
	sink := &recordingSink{}
	d := NewDriver(NewState(table(fullRow(1), broken, fullRow(3))), sink)
	for i := 0; i < 3; i++ {
		d.Tick()
	}
	if len(sink.ticks) != 2 || sink.ticks[0] != 0 || sink.ticks[1] != 2 {
		t.Fatalf("sink ticks = %v, want [0 2]", sink.ticks)
	}
}

func TestSinkFailureDoesNotStopPlayback(t *testing.T) {
	sink := &recordingSink{fail: errors.New("disk full")}
	st := NewState(table(fullRow(1), fullRow(2)))
	d := NewDriver(st, sink)

	out, err := d.Tick()
	if out != TickAppended || err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("Tick() = %v, %v", out, err)
	}
	d.Tick()
	if st.Series(telemetry.Altitude).Len() != 2 {
		t.Fatal("sink failure must not block history")
	}
}

func TestSeriesTail(t *testing.T) {
	var s Series
	if s.Tail(3) != nil {
		t.Error("empty tail should be nil")
	}
	if _, ok := s.Last(); ok {
		t.Error("empty Last should report !ok")
	}
	for i := 0; i < 5; i++ {
		s.Append(float64(i), float64(i*i))
	}
	tail := s.Tail(3)
	if len(tail) != 3 || tail[0] != 4 || tail[2] != 16 {
		t.Errorf("tail = %v", tail)
	}
	if len(s.Tail(10)) != 5 {
		t.Errorf("tail longer than series")
	}
	if v, ok := s.Last(); !ok || v != 16 {
		t.Errorf("Last = %v, %v", v, ok)
	}
}
