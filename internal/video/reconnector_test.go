package video

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"testing"
	"time"
)

type fakeStream struct {
	id     int
	frames []image.Image
	err    error
	closed int
}

func (s *fakeStream) Read() (image.Image, bool, error) {
	if len(s.frames) > 0 {
		f := s.frames[0]
		s.frames = s.frames[1:]
		return f, true, nil
	}
	if s.err != nil {
		return nil, false, s.err
	}
	return nil, false, nil
}

func (s *fakeStream) Close() error {
	s.closed++
	return nil
}

// fakeOpener hands out scripted results in order.
type fakeOpener struct {
	results []error
	opened  []*fakeStream
	calls   int
	next    func(*fakeStream)
}

func (o *fakeOpener) Open(_ context.Context, _ string) (Stream, error) {
	o.calls++
	if len(o.results) > 0 {
		err := o.results[0]
		o.results = o.results[1:]
		if err != nil {
			return nil, err
		}
	}
	s := &fakeStream{id: o.calls}
	if o.next != nil {
		o.next(s)
	}
	o.opened = append(o.opened, s)
	return s, nil
}

type fakeDisplay struct {
	statuses []string
	painted  []*image.RGBA
}

func (d *fakeDisplay) SetStatus(msg string) { d.statuses = append(d.statuses, msg) }
func (d *fakeDisplay) Paint(f *image.RGBA)  { d.painted = append(d.painted, f) }
func (d *fakeDisplay) last() string {
	if len(d.statuses) == 0 {
		return ""
	}
	return d.statuses[len(d.statuses)-1]
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestReconnector(o Opener, d Display) *Reconnector {
	return NewReconnector(o, "http://cam/video", d, Options{
		FrameTick: 33 * time.Millisecond,
		Logger:    quietLogger(),
	})
}

func TestFailedConnectLeavesNoHandle(t *testing.T) {
	o := &fakeOpener{results: []error{errors.New("refused")}}
	d := &fakeDisplay{}
	r := newTestReconnector(o, d)

	err := r.Connect()
	if !errors.Is(err, ErrStreamOpen) {
		t.Fatalf("err = %v, want ErrStreamOpen", err)
	}
	if r.State() != Disconnected || r.Armed() {
		t.Fatalf("state = %v armed = %v after failed connect", r.State(), r.Armed())
	}
	if d.last() != StatusFailed {
		t.Fatalf("status = %q, want %q", d.last(), StatusFailed)
	}

	if err := r.Connect(); err != nil {
		t.Fatalf("second connect: %v", err)
	}
	if r.State() != Connected || !r.Armed() {
		t.Fatal("successful connect should open and arm")
	}
	if d.last() != "" {
		t.Fatalf("status = %q, want cleared", d.last())
	}
	if r.Failures() != 0 {
		t.Errorf("failures = %d, want reset", r.Failures())
	}
}

func TestConnectIsIdempotent(t *testing.T) {
	o := &fakeOpener{}
	r := newTestReconnector(o, &fakeDisplay{})

	r.Connect()
	r.Connect()
	if len(o.opened) != 2 {
		t.Fatalf("opened = %d", len(o.opened))
	}
	if o.opened[0].closed != 1 || o.opened[1].closed != 0 {
		t.Fatalf("first handle closed %d times, second %d", o.opened[0].closed, o.opened[1].closed)
	}

	r.Close()
	r.Close()
	if o.opened[1].closed != 1 {
		t.Fatalf("second handle closed %d times", o.opened[1].closed)
	}
	if r.Armed() || r.State() != Disconnected {
		t.Fatal("Close should disarm")
	}
}

func TestTickPaintsFrames(t *testing.T) {
	frame := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	frame.Set(0, 0, color.NRGBA{R: 255, A: 255})
	o := &fakeOpener{next: func(s *fakeStream) { s.frames = []image.Image{frame} }}
	d := &fakeDisplay{}
	r := newTestReconnector(o, d)
	r.Connect()

	if err := r.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(d.painted) != 1 {
		t.Fatalf("painted = %d", len(d.painted))
	}
	got := d.painted[0]
	if got.Bounds().Dx() != 4 || got.RGBAAt(0, 0).R != 255 {
		t.Errorf("frame not converted: %v %v", got.Bounds(), got.RGBAAt(0, 0))
	}

	// No new frame: nothing painted, no reconnect.
	if err := r.Tick(); err != nil {
		t.Fatalf("idle Tick: %v", err)
	}
	if len(d.painted) != 1 || o.calls != 1 {
		t.Errorf("idle tick painted=%d opens=%d", len(d.painted), o.calls)
	}
	if r.Frames() != 1 {
		t.Errorf("frames = %d", r.Frames())
	}
}

func TestReadFailureReconnectsOnce(t *testing.T) {
	o := &fakeOpener{}
	d := &fakeDisplay{}
	r := newTestReconnector(o, d)
	r.Connect()
	o.opened[0].err = io.ErrUnexpectedEOF

	err := r.Tick()
	if !errors.Is(err, ErrStreamRead) {
		t.Fatalf("err = %v, want ErrStreamRead", err)
	}
	if o.opened[0].closed != 1 {
		t.Errorf("broken handle closed %d times, want 1", o.opened[0].closed)
	}
	if o.calls != 2 {
		t.Errorf("opens = %d, want 2 (one reconnect)", o.calls)
	}
	if r.State() != Connected {
		t.Errorf("state = %v, want reconnected", r.State())
	}

	// The interrupted message is shown before the reconnect clears it.
	seen := false
	for _, s := range d.statuses {
		if s == StatusInterrupted {
			seen = true
		}
	}
	if !seen {
		t.Errorf("statuses = %q, want %q", d.statuses, StatusInterrupted)
	}
	if r.Reconnects() != 1 {
		t.Errorf("reconnects = %d", r.Reconnects())
	}
}

func TestReadFailureThenConnectFailure(t *testing.T) {
	o := &fakeOpener{results: []error{nil, errors.New("host down")}}
	d := &fakeDisplay{}
	r := newTestReconnector(o, d)
	r.Connect()
	o.opened[0].err = io.ErrUnexpectedEOF

	if err := r.Tick(); !errors.Is(err, ErrStreamOpen) {
		t.Fatalf("err = %v, want ErrStreamOpen", err)
	}
	if r.Armed() || r.State() != Disconnected {
		t.Fatal("failed reconnect must leave no handle and disarm")
	}
	if d.last() != StatusFailed {
		t.Errorf("status = %q", d.last())
	}
	if o.opened[0].closed != 1 {
		t.Errorf("closed = %d", o.opened[0].closed)
	}
}

func TestTickWithoutHandleReconnects(t *testing.T) {
	o := &fakeOpener{}
	d := &fakeDisplay{}
	r := newTestReconnector(o, d)

	r.Tick()
	if o.calls != 1 || r.State() != Connected {
		t.Fatalf("opens = %d state = %v", o.calls, r.State())
	}
	if d.statuses[len(d.statuses)-2] != StatusDisconnected {
		t.Errorf("statuses = %q", d.statuses)
	}
}

func TestRetryDelay(t *testing.T) {
	o := &fakeOpener{results: []error{errors.New("x"), errors.New("x"), errors.New("x")}}
	r := newTestReconnector(o, &fakeDisplay{})
	r.Connect()
	if got := r.RetryDelay(); got != 33*time.Millisecond {
		t.Errorf("without backoff RetryDelay = %s, want frame tick", got)
	}

	r.backoff = Backoff{Initial: time.Second, Max: 3 * time.Second}
	if got := r.RetryDelay(); got != time.Second {
		t.Errorf("after 1 failure = %s", got)
	}
	r.Connect()
	if got := r.RetryDelay(); got != 2*time.Second {
		t.Errorf("after 2 failures = %s", got)
	}
	r.Connect()
	if got := r.RetryDelay(); got != 3*time.Second {
		t.Errorf("after 3 failures = %s, want capped", got)
	}
}

func TestBackoffDelay(t *testing.T) {
	b := Backoff{Initial: time.Second, Max: 30 * time.Second}
	want := []time.Duration{0, time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second, 30 * time.Second}
	for failures, w := range want {
		if got := b.Delay(failures); got != w {
			t.Errorf("Delay(%d) = %s, want %s", failures, got, w)
		}
	}
	if got := b.Delay(100); got != 30*time.Second {
		t.Errorf("Delay(100) = %s", got)
	}
	if (Backoff{}).Delay(5) != 0 {
		t.Error("zero backoff should be disabled")
	}
}

func TestStartConnectSplitsDial(t *testing.T) {
	o := &fakeOpener{}
	d := &fakeDisplay{}
	r := newTestReconnector(o, d)
	r.Connect()
	first := o.opened[0]

	dial, ok := r.StartConnect()
	if !ok {
		t.Fatal("StartConnect refused with no dial outstanding")
	}
	if first.closed != 1 || r.State() != Disconnected || r.Armed() {
		t.Fatal("StartConnect should release the old handle and disarm")
	}
	if _, again := r.StartConnect(); again {
		t.Fatal("second StartConnect while dialing should be refused")
	}
	if o.calls != 1 {
		t.Fatalf("opens before dial = %d, want 1", o.calls)
	}

	if err := r.FinishConnect(dial()); err != nil {
		t.Fatalf("FinishConnect: %v", err)
	}
	if r.State() != Connected || !r.Armed() || r.Dialing() {
		t.Fatal("FinishConnect should install the handle")
	}
}

func TestFinishConnectAfterCloseDiscardsHandle(t *testing.T) {
	o := &fakeOpener{}
	r := newTestReconnector(o, &fakeDisplay{})

	dial, _ := r.StartConnect()
	r.Close()
	s, err := dial()
	if err := r.FinishConnect(s, err); err != nil {
		t.Fatalf("FinishConnect: %v", err)
	}
	if r.State() != Disconnected {
		t.Fatal("stale dial result must not be installed")
	}
	if o.opened[0].closed != 1 {
		t.Errorf("stale handle closed %d times, want 1", o.opened[0].closed)
	}
}

func TestPullReportsReconnect(t *testing.T) {
	o := &fakeOpener{}
	d := &fakeDisplay{}
	r := newTestReconnector(o, d)

	reconnect, err := r.Pull()
	if !reconnect || err != nil {
		t.Fatalf("Pull without handle = %v, %v", reconnect, err)
	}
	if d.last() != StatusDisconnected || o.calls != 0 {
		t.Errorf("status = %q opens = %d", d.last(), o.calls)
	}
}
