package mpd

import "fmt"

// InputType discriminates the kinds of physical input on the controller
type InputType int

const (
	Pad InputType = iota
	Knob
	Slider
	Switch
	Transport

	numInputTypes
)

// InputTypes lists every input type in lookup order
var InputTypes = []InputType{Pad, Knob, Slider, Switch, Transport}

var inputTypeNames = [...]string{
	Pad:       "pad",
	Knob:      "knob",
	Slider:    "slider",
	Switch:    "switch",
	Transport: "transport",
}

func (t InputType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("InputType(%d)", int(t))
	}
	return inputTypeNames[t]
}

// Valid reports whether t is one of the declared input types
func (t InputType) Valid() bool {
	return t >= Pad && t < numInputTypes
}

// IsButton reports whether inputs of this type carry pressed/toggle/on state
func (t InputType) IsButton() bool {
	return t == Pad || t == Switch || t == Transport
}

// IsControl reports whether inputs of this type carry a continuous value
func (t InputType) IsControl() bool {
	return t == Knob || t == Slider
}

// ParseInputType converts a name such as "pad" or "slider" into an InputType
func ParseInputType(s string) (InputType, error) {
	for i, name := range inputTypeNames {
		if name == s {
			return InputType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown input type %q", s)
}

// MaxValue is the largest 7-bit MIDI data value
const MaxValue = 127

// Input is one physical control on the device together with its live state.
//
// Pads, switches and transport buttons use Pressed, Toggle and On.
// Knobs and sliders use Value and HasValue; their Toggle is derived from
// Value and is true unless the control sits at its maximum.
type Input struct {
	ID     int
	Number int
	Name   string
	Type   InputType

	Pressed  bool
	Toggle   bool
	On       bool
	Value    int
	Pressure int
	Bank     int
	HasValue bool
}

func newInput(def InputDef) *Input {
	return &Input{
		ID:     def.ID,
		Number: def.Number,
		Name:   def.Name,
		Type:   def.Type,
		Bank:   1,
	}
}

func (in *Input) String() string {
	return fmt.Sprintf("%s %d", in.Type, in.Number)
}

func (in *Input) contract(field string, want func(InputType) bool) error {
	if !want(in.Type) {
		return fmt.Errorf("%w: %s has no %s", ErrTypeContract, in, field)
	}
	return nil
}

func checkRange(field string, v int) error {
	if v < 0 || v > MaxValue {
		return fmt.Errorf("%w: %s %d outside 0..%d", ErrTypeContract, field, v, MaxValue)
	}
	return nil
}

// SetPressed records the physical press state of a button input
func (in *Input) SetPressed(pressed bool) error {
	if err := in.contract("pressed state", InputType.IsButton); err != nil {
		return err
	}
	in.Pressed = pressed
	return nil
}

// Press marks a button as held and flips its latched state.
func (in *Input) Press() error {
	if err := in.SetPressed(true); err != nil {
		return err
	}
	in.Toggle = !in.Toggle
	if in.Type != Pad {
		in.On = !in.On
	}
	return nil
}

// SetOn sets the secondary latched state of a switch or transport button
func (in *Input) SetOn(on bool) error {
	if in.Type == Pad {
		return fmt.Errorf("%w: %s has no on state", ErrTypeContract, in)
	}
	if err := in.contract("on state", InputType.IsButton); err != nil {
		return err
	}
	in.On = on
	return nil
}

// SetValue stores a knob or slider position and derives the latch from it.
func (in *Input) SetValue(v int) error {
	if err := in.contract("value", InputType.IsControl); err != nil {
		return err
	}
	if err := checkRange("value", v); err != nil {
		return err
	}
	in.Value = v
	in.Toggle = v != MaxValue
	in.HasValue = true
	return nil
}

// SetPressure stores the aftertouch amount of a pad
func (in *Input) SetPressure(p int) error {
	if in.Type != Pad {
		return fmt.Errorf("%w: %s has no pressure", ErrTypeContract, in)
	}
	if err := checkRange("pressure", p); err != nil {
		return err
	}
	in.Pressure = p
	return nil
}

// SetBank selects the pad or control bank the input currently belongs to
func (in *Input) SetBank(bank int) error {
	if bank < 1 {
		return fmt.Errorf("%w: bank %d", ErrTypeContract, bank)
	}
	in.Bank = bank
	return nil
}

// Normalized maps the 7-bit value onto [0, 1].
func (in *Input) Normalized() float64 {
	return float64(in.Value) / MaxValue
}
