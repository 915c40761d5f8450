package mpd

import (
	"fmt"
	"time"
)

// Slot names a point handlers can attach to. Exactly one slot fires for
// each resolved input event.
type Slot int

const (
	SlotPadPress Slot = iota
	SlotPadRelease
	SlotPadPressure
	SlotKnobChange
	SlotSliderChange
	SlotSwitchPress
	SlotStopPress
	SlotPlayPress
	SlotRecPress
	SlotBeat

	numSlots
)

var slotNames = [...]string{
	SlotPadPress:     "pad-press",
	SlotPadRelease:   "pad-release",
	SlotPadPressure:  "pad-pressure",
	SlotKnobChange:   "knob-change",
	SlotSliderChange: "slider-change",
	SlotSwitchPress:  "switch-press",
	SlotStopPress:    "stop-press",
	SlotPlayPress:    "play-press",
	SlotRecPress:     "rec-press",
	SlotBeat:         "beat",
}

func (s Slot) String() string {
	if s < 0 || s >= numSlots {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return slotNames[s]
}

// ParseSlot converts a slot name such as "pad-press" into a Slot
func ParseSlot(name string) (Slot, error) {
	for i, n := range slotNames {
		if n == name {
			return Slot(i), nil
		}
	}
	return 0, fmt.Errorf("unknown event %q", name)
}

// Slots lists every slot
func Slots() []Slot {
	out := make([]Slot, numSlots)
	for i := range out {
		out[i] = Slot(i)
	}
	return out
}

// InputType returns the input type a slot carries, false for the beat slot.
func (s Slot) InputType() (InputType, bool) {
	switch s {
	case SlotPadPress, SlotPadRelease, SlotPadPressure:
		return Pad, true
	case SlotKnobChange:
		return Knob, true
	case SlotSliderChange:
		return Slider, true
	case SlotSwitchPress:
		return Switch, true
	case SlotStopPress, SlotPlayPress, SlotRecPress:
		return Transport, true
	}
	return 0, false
}

func transportSlot(number int) (Slot, bool) {
	switch number {
	case TransportStop:
		return SlotStopPress, true
	case TransportPlay:
		return SlotPlayPress, true
	case TransportRec:
		return SlotRecPress, true
	}
	return 0, false
}

// Event is what a handler receives. Message is nil for beat events.
type Event struct {
	Slot    Slot
	Message *Message
	Input   *Input
	Value   int
	Mode    Mode
	Time    time.Time
	Session *Session

	pass bool
}

// PassThrough leaves the originating message unhandled so the host may
// interpret it as well.
func (ev *Event) PassThrough() { ev.pass = true }

// HandlerFunc reacts to one event. Handlers run synchronously on the
// session's goroutine and must not call Session.Handle.
type HandlerFunc func(ev *Event)

type dispatcher struct {
	calls [numSlots][]HandlerFunc
}

func (d *dispatcher) add(slot Slot, fn HandlerFunc) error {
	if slot < 0 || slot >= numSlots {
		return fmt.Errorf("register handler: invalid slot %d", int(slot))
	}
	if fn == nil {
		return fmt.Errorf("register handler for %s: nil func", slot)
	}
	d.calls[slot] = append(d.calls[slot], fn)
	return nil
}

func (d *dispatcher) dispatch(ev *Event) int {
	calls := d.calls[ev.Slot]
	for _, fn := range calls {
		fn(ev)
	}
	return len(calls)
}
