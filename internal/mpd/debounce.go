package mpd

import (
	"fmt"
	"time"
)

// Debounce windows per input category.
const (
	PadBuffer       = 100 * time.Millisecond
	TransportBuffer = 2 * time.Second
)

// Gate suppresses presses that follow the last accepted press of the same
// category too closely. There is one timestamp per category, not per input.
type Gate struct {
	buffers map[InputType]time.Duration
	last    map[InputType]time.Time
}

// NewGate returns a gate guarding pads and transport buttons
func NewGate() *Gate {
	return &Gate{
		buffers: map[InputType]time.Duration{
			Pad:       PadBuffer,
			Transport: TransportBuffer,
		},
		last: make(map[InputType]time.Time),
	}
}

// Buffer returns the window for an input type
func (g *Gate) Buffer(t InputType) (time.Duration, bool) {
	d, ok := g.buffers[t]
	return d, ok
}

// Accept reports whether a press of in at time at passes the gate and, if
// so, records at as the category's last accepted press. The first press of
// a category is always accepted.
func (g *Gate) Accept(in *Input, at time.Time) (bool, error) {
	buf, ok := g.buffers[in.Type]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrNoBuffer, in.Type)
	}
	if last, seen := g.last[in.Type]; seen && at.Sub(last) <= buf {
		return false, nil
	}
	g.last[in.Type] = at
	return true, nil
}

// Last returns the last accepted press time for a category
func (g *Gate) Last(t InputType) (time.Time, bool) {
	at, ok := g.last[t]
	return at, ok
}
