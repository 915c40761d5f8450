package mpd

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Host is the part of the host environment the session itself needs.
type Host interface {
	PortNumber() int
	Now() time.Time
	SetHintMessage(text string)
}

// Option configures a Session
type Option func(*sessionOptions)

type sessionOptions struct {
	logger *slog.Logger
	layout Layout
	route  PressureRoute
}

// WithLogger sets the structured logger, slog.Default otherwise
func WithLogger(l *slog.Logger) Option {
	return func(o *sessionOptions) { o.logger = l }
}

// WithLayout replaces the MPD226 layout
func WithLayout(layout Layout) Option {
	return func(o *sessionOptions) { o.layout = layout }
}

// WithPressureRoute selects how channel aftertouch is attributed to a pad
func WithPressureRoute(route PressureRoute) Option {
	return func(o *sessionOptions) { o.route = route }
}

// Session is the live state of one controller connected to one host. It is
// not safe for concurrent use; all calls must come from one goroutine.
type Session struct {
	host Host
	log  *slog.Logger

	reg   *Registry
	cls   *Classifier
	gate  *Gate
	modes *ModeMachine
	disp  dispatcher

	port     int
	initTime time.Time
	target   *Input
	lastPad  *Input
	handling bool
}

// NewSession builds a session for host. Call Init once the host is ready.
func NewSession(host Host, opts ...Option) (*Session, error) {
	o := sessionOptions{layout: MPD226Layout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	reg, err := NewRegistry(o.layout)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}

	return &Session{
		host:  host,
		log:   o.logger.With("model", reg.Model()),
		reg:   reg,
		cls:   NewClassifier(reg, o.route),
		gate:  NewGate(),
		modes: NewModeMachine(),
	}, nil
}

// Init records the host port and the initialisation time.
func (s *Session) Init() {
	s.port = s.host.PortNumber()
	s.initTime = s.host.Now()
	s.log.Info("initialized", "port", s.port)
}

// SetPressureRoute changes how channel pressure is attributed to pads
func (s *Session) SetPressureRoute(route PressureRoute) {
	s.cls = NewClassifier(s.reg, route)
}

// On registers fn for slot. Handlers for a slot run in registration order.
func (s *Session) On(slot Slot, fn HandlerFunc) error {
	return s.disp.add(slot, fn)
}

func (s *Session) Registry() *Registry { return s.reg }
func (s *Session) Mode() Mode          { return s.modes.Mode() }
func (s *Session) Unlocked() bool      { return s.modes.Unlocked() }
func (s *Session) Port() int           { return s.port }
func (s *Session) InitTime() time.Time { return s.initTime }

// Target is the input resolved from the message being handled, nil when
// the message did not resolve.
func (s *Session) Target() *Input { return s.target }

// TargetType is the type of Target
func (s *Session) TargetType() (InputType, bool) {
	if s.target == nil {
		return 0, false
	}
	return s.target.Type, true
}

// LastPadPressed returns the most recent pad accepted by the gate
func (s *Session) LastPadPressed() *Input { return s.lastPad }

// LastPadPressTime returns when LastPadPressed was pressed
func (s *Session) LastPadPressTime() (time.Time, bool) { return s.gate.Last(Pad) }

// LastStopPressTime returns when a transport button was last accepted
func (s *Session) LastStopPressTime() (time.Time, bool) { return s.gate.Last(Transport) }

// SetLastPadPressed overrides the pad channel pressure is routed to.
func (s *Session) SetLastPadPressed(in *Input) error {
	if in == nil || in.Type != Pad {
		err := fmt.Errorf("%w: last pad must be a pad, got %v", ErrTypeContract, in)
		s.log.Error("rejected last pad", "err", err)
		return err
	}
	s.lastPad = in
	return nil
}

// SetMode switches mode directly, announcing it like a remap chord.
func (s *Session) SetMode(m Mode) error {
	from := s.modes.Mode()
	if err := s.modes.SetMode(m); err != nil {
		s.log.Error("rejected mode", "err", err)
		return err
	}
	if from != m {
		s.modeChanged(from, m)
	}
	return nil
}

// Handle runs one inbound message through classification, debouncing,
// state update, the mode machine and dispatch.
func (s *Session) Handle(m *Message) {
	if s.handling {
		s.log.Error("dropped message", "msg", m, "err", ErrReentrant)
		return
	}
	s.handling = true
	defer func() { s.handling = false }()

	s.target = nil
	at := m.Time
	if at.IsZero() {
		at = s.host.Now()
	}

	c := s.cls.Classify(m, s.lastPad)
	if c.Err != nil {
		s.unresolved(m, c)
		return
	}
	s.target = c.Input

	switch c.Category {
	case CategoryNoteOn:
		s.padPress(m, c.Input, c.Value, at)
	case CategoryNoteOff:
		s.padRelease(m, c.Input, c.Value, at)
	case CategoryPolyAftertouch, CategoryChannelAftertouch:
		s.padPressure(m, c.Input, c.Value, at)
	case CategoryControlChange:
		switch c.Input.Type {
		case Knob, Slider:
			s.control(m, c.Input, c.Value, at)
		case Switch:
			s.switchChange(m, c.Input, c.Value, at)
		case Transport:
			s.transport(m, c.Input, c.Value, at)
		}
	}
}

// HandleBeat forwards the host's beat indicator: 0 off, 1 bar, 2 beat.
func (s *Session) HandleBeat(value int) {
	if value < 0 || value > 2 {
		s.log.Error("rejected beat", "err", fmt.Errorf("%w: beat value %d", ErrTypeContract, value))
		return
	}
	s.dispatch(SlotBeat, nil, nil, value, s.host.Now())
}

func (s *Session) unresolved(m *Message, c Classification) {
	m.Handled = true
	switch {
	case errors.Is(c.Err, ErrUnknownStatus):
		s.log.Warn("unrecognized message", "msg", m, "err", c.Err)
	case errors.Is(c.Err, ErrAmbiguousPressure):
		s.log.Debug("dropped pressure", "value", c.Value, "err", c.Err)
	default:
		s.log.Info("unmapped input", "category", c.Category, "msg", m, "err", c.Err)
	}
}

func (s *Session) padPress(m *Message, pad *Input, velocity int, at time.Time) {
	if !s.accept(m, pad, at) {
		return
	}
	_ = pad.Press()
	s.lastPad = pad

	if from, to, changed := s.modes.Remap(s.reg, pad); changed {
		s.modeChanged(from, to)
		m.Handled = true
		return
	}
	s.dispatch(SlotPadPress, m, pad, velocity, at)
}

func (s *Session) padRelease(m *Message, pad *Input, velocity int, at time.Time) {
	_ = pad.SetPressed(false)
	_ = pad.SetPressure(0)
	s.dispatch(SlotPadRelease, m, pad, velocity, at)
}

func (s *Session) padPressure(m *Message, pad *Input, pressure int, at time.Time) {
	if err := pad.SetPressure(pressure); err != nil {
		s.log.Error("rejected pressure", "input", pad, "err", err)
		m.Handled = true
		return
	}
	s.dispatch(SlotPadPressure, m, pad, pressure, at)
}

func (s *Session) control(m *Message, in *Input, value int, at time.Time) {
	if err := in.SetValue(value); err != nil {
		s.log.Error("rejected value", "input", in, "err", err)
		m.Handled = true
		return
	}
	if in.Type == Knob {
		s.dispatch(SlotKnobChange, m, in, value, at)
		return
	}

	if s.modes.Recompute(s.reg.All(Slider)) {
		if s.modes.Unlocked() {
			s.host.SetHintMessage("REMAP UNLOCKED")
			s.log.Info("remapping unlocked", "value", value)
		} else {
			s.host.SetHintMessage("REMAP LOCKED")
			s.log.Info("remapping locked")
		}
	}
	s.dispatch(SlotSliderChange, m, in, value, at)
}

func (s *Session) switchChange(m *Message, sw *Input, value int, at time.Time) {
	if value == 0 {
		_ = sw.SetPressed(false)
		m.Handled = true
		return
	}
	_ = sw.Press()
	s.dispatch(SlotSwitchPress, m, sw, value, at)
}

func (s *Session) transport(m *Message, btn *Input, value int, at time.Time) {
	if value == 0 {
		_ = btn.SetPressed(false)
		m.Handled = true
		return
	}
	if !s.accept(m, btn, at) {
		return
	}
	_ = btn.Press()

	slot, ok := transportSlot(btn.Number)
	if !ok {
		s.log.Warn("transport button without slot", "input", btn)
		m.Handled = true
		return
	}
	s.dispatch(slot, m, btn, value, at)
}

func (s *Session) accept(m *Message, in *Input, at time.Time) bool {
	ok, err := s.gate.Accept(in, at)
	if err != nil {
		s.log.Error("debounce", "input", in, "err", err)
	}
	if !ok {
		if err == nil {
			s.log.Debug("debounced", "input", in)
		}
		m.Handled = true
	}
	return ok
}

func (s *Session) modeChanged(from, to Mode) {
	s.host.SetHintMessage(to.Hint())
	s.log.Info("mode changed", "from", from, "to", to)
}

func (s *Session) dispatch(slot Slot, m *Message, in *Input, value int, at time.Time) {
	ev := &Event{
		Slot:    slot,
		Message: m,
		Input:   in,
		Value:   value,
		Mode:    s.modes.Mode(),
		Time:    at,
		Session: s,
	}
	if n := s.disp.dispatch(ev); n == 0 {
		s.log.Debug("no handler", "slot", slot, "input", in)
	}
	if m != nil && !ev.pass {
		m.Handled = true
	}
}
