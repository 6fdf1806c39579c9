package video

import "time"

// Backoff spaces out reconnect attempts after consecutive open failures.
// The zero value disables it and retries on every frame tick.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration
}

// Enabled reports whether attempts are spaced out.
func (b Backoff) Enabled() bool {
	return b.Initial > 0
}

// Delay returns the wait before attempt number failures+1:
// Initial * 2^(failures-1), capped at Max.
func (b Backoff) Delay(failures int) time.Duration {
	if !b.Enabled() || failures <= 0 {
		return 0
	}
	shift := failures - 1
	if shift > 30 {
		shift = 30
	}
	d := b.Initial * time.Duration(1<<uint(shift))
	if b.Max > 0 && (d > b.Max || d <= 0) {
		d = b.Max
	}
	return d
}
