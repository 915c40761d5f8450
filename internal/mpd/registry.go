package mpd

import "fmt"

// Key addresses an input either by its raw MIDI id or by its 1-based number.
type Key struct {
	byNumber bool
	v        int
}

// ByID builds a key matching the raw id carried in MIDI data
func ByID(id int) Key { return Key{v: id} }

// ByNumber builds a key matching the printed 1-based input number
func ByNumber(n int) Key { return Key{byNumber: true, v: n} }

func (k Key) String() string {
	if k.byNumber {
		return fmt.Sprintf("number %d", k.v)
	}
	return fmt.Sprintf("id %d", k.v)
}

// Registry is the fixed set of inputs of one controller.
// Lookups never mutate input state.
type Registry struct {
	model    string
	byID     [numInputTypes]map[int]*Input
	byNumber [numInputTypes][]*Input
}

// NewRegistry builds a registry from a layout, rejecting duplicate ids or
// numbers within a type and gaps in the numbering.
func NewRegistry(layout Layout) (*Registry, error) {
	r := &Registry{model: layout.Model}
	for t := range r.byID {
		r.byID[t] = make(map[int]*Input)
	}

	for _, def := range layout.Inputs {
		if !def.Type.Valid() {
			return nil, fmt.Errorf("layout %s: invalid input type %d", layout.Model, def.Type)
		}
		if _, dup := r.byID[def.Type][def.ID]; dup {
			return nil, fmt.Errorf("layout %s: duplicate %s id %d", layout.Model, def.Type, def.ID)
		}
		list := r.byNumber[def.Type]
		if def.Number != len(list)+1 {
			return nil, fmt.Errorf("layout %s: %s number %d out of sequence", layout.Model, def.Type, def.Number)
		}
		in := newInput(def)
		r.byID[def.Type][def.ID] = in
		r.byNumber[def.Type] = append(list, in)
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on an invalid layout.
func MustRegistry(layout Layout) *Registry {
	r, err := NewRegistry(layout)
	if err != nil {
		panic(err)
	}
	return r
}

// Model returns the controller model name
func (r *Registry) Model() string { return r.model }

// Lookup resolves a key within one input type.
func (r *Registry) Lookup(t InputType, k Key) (*Input, error) {
	if k.byNumber {
		return r.Number(t, k.v)
	}
	return r.ID(t, k.v)
}

// ID finds the input of type t carrying the raw MIDI id
func (r *Registry) ID(t InputType, id int) (*Input, error) {
	if t.Valid() {
		if in, ok := r.byID[t][id]; ok {
			return in, nil
		}
	}
	return nil, fmt.Errorf("%w: %s id %d", ErrNotFound, t, id)
}

// Number finds the input of type t with the 1-based number n
func (r *Registry) Number(t InputType, n int) (*Input, error) {
	if t.Valid() && n >= 1 && n <= len(r.byNumber[t]) {
		return r.byNumber[t][n-1], nil
	}
	return nil, fmt.Errorf("%w: %s number %d", ErrNotFound, t, n)
}

func (r *Registry) Pad(n int) (*Input, error)       { return r.Number(Pad, n) }
func (r *Registry) Knob(n int) (*Input, error)      { return r.Number(Knob, n) }
func (r *Registry) Slider(n int) (*Input, error)    { return r.Number(Slider, n) }
func (r *Registry) Switch(n int) (*Input, error)    { return r.Number(Switch, n) }
func (r *Registry) Transport(n int) (*Input, error) { return r.Number(Transport, n) }

// All returns the inputs of one type ordered by number.
// The slice is shared; callers must not modify it.
func (r *Registry) All(t InputType) []*Input {
	if !t.Valid() {
		return nil
	}
	return r.byNumber[t]
}

// Count returns how many inputs of type t exist
func (r *Registry) Count(t InputType) int {
	return len(r.All(t))
}
