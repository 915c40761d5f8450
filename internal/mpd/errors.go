package mpd

import "errors"

var (
	// ErrNotFound is returned when an id or number does not name an input of the requested type.
	ErrNotFound = errors.New("input not found")

	// ErrUnknownStatus is returned for status bytes outside the recognised table.
	ErrUnknownStatus = errors.New("unknown status")

	// ErrUnresolvedControl is returned when a control change matches no knob, slider, switch or transport.
	ErrUnresolvedControl = errors.New("unresolved control")

	// ErrAmbiguousPressure is returned when channel pressure cannot be attributed to a pad.
	ErrAmbiguousPressure = errors.New("pressure not attributable to a pad")

	// ErrNoBuffer is returned when the debounce gate has no buffer for an input type.
	ErrNoBuffer = errors.New("no debounce buffer for input type")

	// ErrTypeContract is returned when a value is written that the input type cannot hold.
	ErrTypeContract = errors.New("type contract violation")

	// ErrReentrant is returned when a handler tries to feed a message back into the session.
	ErrReentrant = errors.New("handle called from inside a handler")
)
