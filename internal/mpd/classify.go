package mpd

import "fmt"

// Category is the kind of MIDI message after status decoding
type Category int

const (
	CategoryUnknown Category = iota
	CategoryNoteOn
	CategoryNoteOff
	CategoryControlChange
	CategoryPolyAftertouch
	CategoryChannelAftertouch
)

func (c Category) String() string {
	switch c {
	case CategoryNoteOn:
		return "note-on"
	case CategoryNoteOff:
		return "note-off"
	case CategoryControlChange:
		return "control-change"
	case CategoryPolyAftertouch:
		return "poly-aftertouch"
	case CategoryChannelAftertouch:
		return "channel-aftertouch"
	}
	return "unknown"
}

// statusTable accepts the channel 1 encoding and the channel 10 encoding
// the MPD226 preset sends.
var statusTable = map[byte]Category{
	0x90: CategoryNoteOn,
	0x99: CategoryNoteOn,
	0x80: CategoryNoteOff,
	0x89: CategoryNoteOff,
	0xB0: CategoryControlChange,
	0xB9: CategoryControlChange,
	0xA0: CategoryPolyAftertouch,
	0xA9: CategoryPolyAftertouch,
	0xD0: CategoryChannelAftertouch,
	0xD9: CategoryChannelAftertouch,
}

// ClassifyStatus maps a status byte to its category
func ClassifyStatus(status byte) Category {
	return statusTable[status]
}

// ccPrecedence is the order control change numbers are resolved in.
var ccPrecedence = []InputType{Knob, Slider, Switch, Transport}

// Classification is the result of resolving one message against the registry.
// Input is nil whenever Err is set.
type Classification struct {
	Category Category
	Input    *Input
	Value    int
	Err      error
}

// PressureRoute picks the pad that receives channel aftertouch, given the
// last pad pressed (nil if none yet).
type PressureRoute func(last *Input) (*Input, error)

// RouteLastPad attributes channel pressure to the most recently pressed pad.
func RouteLastPad(last *Input) (*Input, error) {
	if last == nil {
		return nil, fmt.Errorf("%w: no pad pressed yet", ErrAmbiguousPressure)
	}
	return last, nil
}

// RouteDrop discards channel pressure
func RouteDrop(*Input) (*Input, error) {
	return nil, ErrAmbiguousPressure
}

// Pressure routing names as they appear in configuration
const (
	RouteNameLastPad = "last-pad"
	RouteNameDrop    = "drop"
)

// ParsePressureRoute resolves a configured routing strategy name.
// The empty string selects RouteLastPad.
func ParsePressureRoute(name string) (PressureRoute, error) {
	switch name {
	case "", RouteNameLastPad:
		return RouteLastPad, nil
	case RouteNameDrop:
		return RouteDrop, nil
	}
	return nil, fmt.Errorf("unknown pressure routing %q", name)
}

// Classifier resolves raw messages to inputs without touching their state
type Classifier struct {
	reg   *Registry
	route PressureRoute
}

// NewClassifier creates a classifier over reg. A nil route selects RouteLastPad.
func NewClassifier(reg *Registry, route PressureRoute) *Classifier {
	if route == nil {
		route = RouteLastPad
	}
	return &Classifier{reg: reg, route: route}
}

// Classify decodes the status byte and resolves the input the message refers to.
func (c *Classifier) Classify(m *Message, lastPad *Input) Classification {
	cat := ClassifyStatus(m.Status)
	switch cat {
	case CategoryNoteOn:
		if m.Velocity() == 0 {
			cat = CategoryNoteOff
		}
		return c.pad(cat, m.Note(), m.Velocity())

	case CategoryNoteOff:
		return c.pad(cat, m.Note(), m.Velocity())

	case CategoryPolyAftertouch:
		return c.pad(cat, m.Note(), m.Pressure())

	case CategoryChannelAftertouch:
		pad, err := c.route(lastPad)
		if err != nil {
			return Classification{Category: cat, Value: m.Pressure(), Err: err}
		}
		return Classification{Category: cat, Input: pad, Value: m.Pressure()}

	case CategoryControlChange:
		for _, t := range ccPrecedence {
			if in, err := c.reg.ID(t, m.ControlNum()); err == nil {
				return Classification{Category: cat, Input: in, Value: m.ControlVal()}
			}
		}
		return Classification{
			Category: cat,
			Value:    m.ControlVal(),
			Err:      fmt.Errorf("%w: cc %d", ErrUnresolvedControl, m.ControlNum()),
		}
	}

	return Classification{
		Category: CategoryUnknown,
		Err:      fmt.Errorf("%w: %d", ErrUnknownStatus, m.Status),
	}
}

func (c *Classifier) pad(cat Category, note, value int) Classification {
	in, err := c.reg.ID(Pad, note)
	if err != nil {
		return Classification{Category: cat, Value: value, Err: err}
	}
	return Classification{Category: cat, Input: in, Value: value}
}
