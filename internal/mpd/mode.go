package mpd

import (
	"fmt"
	"strings"
)

// Mode selects how user handlers interpret input
type Mode int

const (
	ModeDefault Mode = iota
	ModeUI
	ModeTransport

	numModes
)

var modeNames = [...]string{
	ModeDefault:   "default",
	ModeUI:        "ui",
	ModeTransport: "transport",
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Valid reports whether m is a declared mode
func (m Mode) Valid() bool { return m >= 0 && m < numModes }

// Shift moves d steps through the mode cycle, wrapping in both directions.
func (m Mode) Shift(d int) Mode {
	n := int(numModes)
	return Mode(((int(m)+d)%n + n) % n)
}

func (m Mode) Next() Mode { return m.Shift(1) }
func (m Mode) Prev() Mode { return m.Shift(-1) }

// Hint is the text shown in the host's hint bar when the mode is entered
func (m Mode) Hint() string {
	return strings.ToUpper(m.String()) + " MODE"
}

// ParseMode converts a mode name into a Mode
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// Modes lists every mode in cycle order
func Modes() []Mode {
	out := make([]Mode, numModes)
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

// Remap chord defaults for the MPD226.
var (
	DefaultLockPads = []int{13, 16}
	DefaultNextPad  = 4
	DefaultPrevPad  = 1
)

// ModeMachine tracks the active mode and whether remapping is unlocked.
//
// Remapping is unlocked exactly while every slider has reported a value
// and all of them hold the same value. While unlocked, holding every lock
// pad and pressing the next or previous pad moves through the modes.
type ModeMachine struct {
	mode     Mode
	unlocked bool

	LockPads []int
	NextPad  int
	PrevPad  int
}

// NewModeMachine starts in ModeDefault, locked
func NewModeMachine() *ModeMachine {
	return &ModeMachine{
		mode:     ModeDefault,
		LockPads: DefaultLockPads,
		NextPad:  DefaultNextPad,
		PrevPad:  DefaultPrevPad,
	}
}

func (mm *ModeMachine) Mode() Mode     { return mm.mode }
func (mm *ModeMachine) Unlocked() bool { return mm.unlocked }

// SetMode switches directly to m
func (mm *ModeMachine) SetMode(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: mode %d", ErrTypeContract, int(m))
	}
	mm.mode = m
	return nil
}

// SlidersAligned reports whether every slider has reported and all share one value.
func SlidersAligned(sliders []*Input) bool {
	if len(sliders) == 0 {
		return false
	}
	for _, s := range sliders {
		if !s.HasValue || s.Value != sliders[0].Value {
			return false
		}
	}
	return true
}

// Recompute derives the unlock flag from slider state and reports whether it changed.
func (mm *ModeMachine) Recompute(sliders []*Input) bool {
	was := mm.unlocked
	mm.unlocked = SlidersAligned(sliders)
	return was != mm.unlocked
}

// Remap applies the mode chord for a freshly pressed pad. It returns the
// previous and new mode and whether a transition happened.
func (mm *ModeMachine) Remap(reg *Registry, pressed *Input) (from, to Mode, changed bool) {
	from = mm.mode
	if !mm.unlocked || pressed == nil || pressed.Type != Pad {
		return from, from, false
	}

	var step int
	switch pressed.Number {
	case mm.NextPad:
		step = 1
	case mm.PrevPad:
		step = -1
	default:
		return from, from, false
	}

	for _, n := range mm.LockPads {
		pad, err := reg.Pad(n)
		if err != nil || !pad.Pressed {
			return from, from, false
		}
	}

	mm.mode = from.Shift(step)
	return from, mm.mode, true
}
