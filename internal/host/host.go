// Package host models the environment a controller session runs against:
// the hint bar, mixer, window focus and transport clock.
package host

import (
	"sync"
	"time"

	"github.com/PixPMusic/gopher-mpd/internal/mpd"
)

// Services is everything handlers may ask of the host.
type Services interface {
	mpd.Host

	SetTrackVolume(track int, volume float64)
	CurrentTrackIndex() int
	FocusWindow(index int)
	NavigateNext()
	NavigatePrevious()
	BeatIndicator(value int)
}

// Clock supplies monotonic timestamps
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now, which carries a monotonic reading
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only moves when told to
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a clock stopped at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Set moves the clock to t
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}
