package config

import (
	"fmt"

	"github.com/PixPMusic/gopher-mpd/internal/mpd"
)

// Trigger is a binding resolved against the controller's enumerations.
type Trigger struct {
	Slot     mpd.Slot
	Type     mpd.InputType
	Number   int // 0 matches any input
	Mode     mpd.Mode
	AnyMode  bool
	ActionID string
}

// Compile parses the binding's names into a Trigger.
func (b Binding) Compile() (Trigger, error) {
	slot, err := mpd.ParseSlot(b.Event)
	if err != nil {
		return Trigger{}, fmt.Errorf("binding %q: %w", b.Name, err)
	}
	tr := Trigger{Slot: slot, Number: b.Input.Number, AnyMode: b.Mode == "", ActionID: b.ActionID}

	if want, ok := slot.InputType(); ok {
		typ, err := mpd.ParseInputType(b.Input.Type)
		if err != nil {
			return Trigger{}, fmt.Errorf("binding %q: %w", b.Name, err)
		}
		if typ != want {
			return Trigger{}, fmt.Errorf("binding %q: event %s does not fire for %s inputs", b.Name, slot, typ)
		}
		tr.Type = typ
	}
	if b.Input.Number < 0 {
		return Trigger{}, fmt.Errorf("binding %q: negative input number", b.Name)
	}

	if !tr.AnyMode {
		mode, err := mpd.ParseMode(b.Mode)
		if err != nil {
			return Trigger{}, fmt.Errorf("binding %q: %w", b.Name, err)
		}
		tr.Mode = mode
	}
	if b.ActionID == "" {
		return Trigger{}, fmt.Errorf("binding %q: no action", b.Name)
	}
	return tr, nil
}

// Matches reports whether ev should fire this trigger
func (tr Trigger) Matches(ev *mpd.Event) bool {
	if ev.Slot != tr.Slot {
		return false
	}
	if !tr.AnyMode && ev.Mode != tr.Mode {
		return false
	}
	if tr.Number != 0 && (ev.Input == nil || ev.Input.Number != tr.Number) {
		return false
	}
	return true
}
