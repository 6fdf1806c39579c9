package telemetry

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceMissing reports an absent telemetry file. The table is empty
	// and startup continues.
	ErrSourceMissing = errors.New("telemetry source missing")

	// ErrParse reports a telemetry file that exists but cannot be read as a
	// table. The table is empty and startup continues.
	ErrParse = errors.New("telemetry parse failure")

	// ErrChannelMissing reports a row without a usable value for a tracked
	// channel.
	ErrChannelMissing = errors.New("telemetry channel missing")
)

// ParseError carries the location of a load failure.
type ParseError struct {
	Path string
	Line int // 0 when the failure is not tied to a line
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// ChannelMissingError names the row and channel that could not be read.
type ChannelMissingError struct {
	Row     int
	Channel Channel
}

func (e *ChannelMissingError) Error() string {
	return fmt.Sprintf("row %d: missing channel %s", e.Row, e.Channel)
}

func (e *ChannelMissingError) Is(target error) bool { return target == ErrChannelMissing }
