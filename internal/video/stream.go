// Package video pulls frames from a network camera and keeps exactly one
// connection open, reopening it whenever a read fails.
package video

import (
	"context"
	"errors"
	"image"
)

var (
	// ErrStreamOpen reports a failed connection attempt.
	ErrStreamOpen = errors.New("stream open failed")
	// ErrStreamRead reports a broken stream.
	ErrStreamRead = errors.New("stream read failed")
)

// Display messages shown in place of video.
const (
	StatusLoading      = "Loading Stream..."
	StatusFailed       = "Failed to connect to stream."
	StatusInterrupted  = "Stream interrupted. Reconnecting..."
	StatusDisconnected = "Stream disconnected. Reconnecting..."
)

// Stream is an open video source.
type Stream interface {
	// Read returns the newest frame. ok is false with a nil error when no
	// new frame has arrived since the last call.
	Read() (img image.Image, ok bool, err error)
	Close() error
}

// Opener connects to a stream address.
type Opener interface {
	Open(ctx context.Context, addr string) (Stream, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, addr string) (Stream, error)

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, addr string) (Stream, error) {
	return f(ctx, addr)
}

// Display is where frames and connection messages go.
type Display interface {
	SetStatus(msg string)
	Paint(frame *image.RGBA)
}
