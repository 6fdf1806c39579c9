package playback

// Series is an append-only (tick, value) history for one channel.
type Series struct {
	xs []float64
	ys []float64
}

// Append adds one point.
func (s *Series) Append(x, y float64) {
	s.xs = append(s.xs, x)
	s.ys = append(s.ys, y)
}

// XS returns the x coordinates. Callers must not modify the slice.
func (s *Series) XS() []float64 { return s.xs }

// YS returns the values. Callers must not modify the slice.
func (s *Series) YS() []float64 { return s.ys }

// Last returns the most recent value. ok is false when the series is empty.
func (s *Series) Last() (v float64, ok bool) {
	if len(s.ys) == 0 {
		return 0, false
	}
	return s.ys[len(s.ys)-1], true
}

// Tail returns up to n of the most recent values in chronological order.
func (s *Series) Tail(n int) []float64 {
	if n <= 0 || len(s.ys) == 0 {
		return nil
	}
	start := 0
	if len(s.ys) > n {
		start = len(s.ys) - n
	}
	return s.ys[start:]
}

// Len returns the number of stored points.
func (s *Series) Len() int {
	return len(s.ys)
}
