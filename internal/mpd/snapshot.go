package mpd

import "time"

// Snapshot is a copy of session state that may be read from other goroutines.
type Snapshot struct {
	Model    string
	Port     int
	Mode     Mode
	Unlocked bool
	Target   *Input
	LastPad  int
	Taken    time.Time
	Inputs   map[InputType][]Input
}

// Snapshot copies the current state
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Model:    s.reg.Model(),
		Port:     s.port,
		Mode:     s.modes.Mode(),
		Unlocked: s.modes.Unlocked(),
		Taken:    s.host.Now(),
		Inputs:   make(map[InputType][]Input, len(InputTypes)),
	}
	if s.target != nil {
		t := *s.target
		snap.Target = &t
	}
	if s.lastPad != nil {
		snap.LastPad = s.lastPad.Number
	}
	for _, t := range InputTypes {
		all := s.reg.All(t)
		copies := make([]Input, len(all))
		for i, in := range all {
			copies[i] = *in
		}
		snap.Inputs[t] = copies
	}
	return snap
}

// Input returns the copied state of input number n of type t
func (snap Snapshot) Input(t InputType, n int) (Input, bool) {
	list := snap.Inputs[t]
	if n < 1 || n > len(list) {
		return Input{}, false
	}
	return list[n-1], true
}
