package video

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"golang.org/x/image/draw"
)

// State is the connection state.
type State int

const (
	Disconnected State = iota
	Connected
)

func (s State) String() string {
	if s == Connected {
		return "CONNECTED"
	}
	return "DISCONNECTED"
}

// Reconnector owns the single stream handle. All methods must be called
// from the UI loop.
type Reconnector struct {
	opener  Opener
	addr    string
	display Display
	logger  *slog.Logger

	dialTimeout time.Duration
	frameTick   time.Duration
	backoff     Backoff

	stream   Stream
	armed    bool
	dialing  bool
	failures int

	frames     uint64
	reconnects uint64
}

// Options configures a Reconnector.
type Options struct {
	DialTimeout time.Duration
	FrameTick   time.Duration
	Backoff     Backoff
	Logger      *slog.Logger
}

// NewReconnector creates a disconnected reconnector. Call Connect to open
// the first handle.
func NewReconnector(opener Opener, addr string, display Display, opts Options) *Reconnector {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	display.SetStatus(StatusLoading)
	return &Reconnector{
		opener:      opener,
		addr:        addr,
		display:     display,
		logger:      logger.With("component", "video", "addr", addr),
		dialTimeout: opts.DialTimeout,
		frameTick:   opts.FrameTick,
		backoff:     opts.Backoff,
	}
}

// Connect closes any open handle and opens a new one. On failure no handle
// is left open, the display shows StatusFailed and the frame timer is
// disarmed.
func (r *Reconnector) Connect() error {
	dial, ok := r.StartConnect()
	if !ok {
		return nil
	}
	return r.FinishConnect(dial())
}

// StartConnect closes any open handle and returns the dial to run. The
// dial touches no Reconnector state, so the UI loop may run it elsewhere
// and hand the result to FinishConnect. ok is false while a previous dial
// is still outstanding.
func (r *Reconnector) StartConnect() (dial func() (Stream, error), ok bool) {
	if r.dialing {
		return nil, false
	}
	r.release()
	r.armed = false
	r.dialing = true

	opener, addr, timeout := r.opener, r.addr, r.dialTimeout
	return func() (Stream, error) {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return opener.Open(ctx, addr)
	}, true
}

// FinishConnect installs the result of a dial started by StartConnect.
func (r *Reconnector) FinishConnect(s Stream, err error) error {
	if !r.dialing {
		// Closed while dialing
		if s != nil {
			_ = s.Close()
		}
		return nil
	}
	r.dialing = false

	if err != nil {
		r.failures++
		r.display.SetStatus(StatusFailed)
		r.logger.Warn("stream connect failed", "error", err, "failures", r.failures)
		return fmt.Errorf("%w: %s: %w", ErrStreamOpen, r.addr, err)
	}

	r.stream = s
	r.armed = true
	r.failures = 0
	r.display.SetStatus("")
	r.logger.Info("stream connected")
	return nil
}

// Tick pulls one frame. A broken or missing handle triggers an immediate
// reconnect. The returned error is for logging only.
func (r *Reconnector) Tick() error {
	reconnect, err := r.Pull()
	if !reconnect {
		return err
	}
	if cerr := r.Connect(); cerr != nil {
		return cerr
	}
	return err
}

// Pull reads and paints one frame. It reports reconnect when the handle is
// missing or broken; the display already shows why.
func (r *Reconnector) Pull() (reconnect bool, err error) {
	if r.stream == nil {
		r.display.SetStatus(StatusDisconnected)
		r.reconnects++
		return true, nil
	}

	img, ok, err := r.stream.Read()
	if err != nil {
		r.logger.Warn("stream read failed", "error", err)
		r.display.SetStatus(StatusInterrupted)
		r.reconnects++
		return true, fmt.Errorf("%w: %w", ErrStreamRead, err)
	}
	if !ok {
		return false, nil
	}

	r.display.Paint(ToRGBA(img))
	r.frames++
	return false, nil
}

// Close releases the handle and disarms the frame timer. A dial still in
// flight is discarded when it completes.
func (r *Reconnector) Close() {
	r.release()
	r.armed = false
	r.dialing = false
}

func (r *Reconnector) release() {
	if r.stream == nil {
		return
	}
	if err := r.stream.Close(); err != nil {
		r.logger.Debug("stream close", "error", err)
	}
	if dc, ok := r.stream.(dropCounter); ok {
		r.logger.Debug("stream released", "dropped_frames", dc.Dropped())
	}
	r.stream = nil
}

// dropCounter is implemented by streams that overwrite unread frames.
type dropCounter interface {
	Dropped() uint64
}

// Dialing reports whether a connect is outstanding.
func (r *Reconnector) Dialing() bool { return r.dialing }

// Armed reports whether the frame timer should keep running.
func (r *Reconnector) Armed() bool { return r.armed }

// State reports whether a handle is open.
func (r *Reconnector) State() State {
	if r.stream != nil {
		return Connected
	}
	return Disconnected
}

// RetryDelay is how long to wait before the next Connect while disarmed.
// Without backoff this is one frame tick.
func (r *Reconnector) RetryDelay() time.Duration {
	if d := r.backoff.Delay(r.failures); d > 0 {
		return d
	}
	return r.frameTick
}

// Failures returns consecutive failed connects.
func (r *Reconnector) Failures() int { return r.failures }

// Frames returns the number of frames painted.
func (r *Reconnector) Frames() uint64 { return r.frames }

// Reconnects returns the number of automatic reconnects.
func (r *Reconnector) Reconnects() uint64 { return r.reconnects }

// Addr returns the stream address.
func (r *Reconnector) Addr() string { return r.addr }

// ToRGBA converts any decoded frame to packed RGBA, the order the terminal
// painter reads pixels in.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
