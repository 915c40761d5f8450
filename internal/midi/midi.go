package midi

import (
	"fmt"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver

	"github.com/PixPMusic/gopher-mpd/internal/mpd"
)

// Manager handles MIDI port discovery, listening and sending
type Manager struct {
	mu sync.Mutex
}

// NewManager creates a new MIDI manager
func NewManager() *Manager {
	return &Manager{}
}

// Close cleans up the MIDI driver
func (m *Manager) Close() {
	midi.CloseDriver()
}

// ListInPorts returns the names of available MIDI input ports
func (m *Manager) ListInPorts() []string {
	return portNames(midi.GetInPorts())
}

// ListOutPorts returns the names of available MIDI output ports
func (m *Manager) ListOutPorts() []string {
	return portNames(midi.GetOutPorts())
}

func portNames[P fmt.Stringer](ports []P) []string {
	names := make([]string, 0, len(ports))
	for _, p := range ports {
		names = append(names, p.String())
	}
	return names
}

// GetInPort returns an input port by name
func (m *Manager) GetInPort(name string) (drivers.In, error) {
	for _, in := range midi.GetInPorts() {
		if in.String() == name {
			return in, nil
		}
	}
	return nil, fmt.Errorf("input port not found: %s", name)
}

// GetOutPort returns an output port by name
func (m *Manager) GetOutPort(name string) (drivers.Out, error) {
	for _, out := range midi.GetOutPorts() {
		if out.String() == name {
			return out, nil
		}
	}
	return nil, fmt.Errorf("output port not found: %s", name)
}

// PortNumber returns the driver's index of the named input port, -1 if absent
func (m *Manager) PortNumber(name string) int {
	for _, in := range midi.GetInPorts() {
		if in.String() == name {
			return in.Number()
		}
	}
	return -1
}

// Send writes msg to the named output port
func (m *Manager) Send(port string, msg midi.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	out, err := m.GetOutPort(port)
	if err != nil {
		return err
	}
	send, err := midi.SendTo(out)
	if err != nil {
		return fmt.Errorf("failed to create sender: %w", err)
	}
	return send(msg)
}

// Listener receives converted input from a port
type Listener struct {
	// OnMessage is called for channel voice messages
	OnMessage func(mpd.Message)

	// OnRealtime is called for clock, start, continue and stop. Setting
	// it enables timing messages on the port.
	OnRealtime func(status byte)
}

// StartListening begins listening on the named input port and returns a
// function that stops it.
func (m *Manager) StartListening(inPortName string, l Listener) (func(), error) {
	if inPortName == "" {
		return nil, fmt.Errorf("no input port configured")
	}
	inPort, err := m.GetInPort(inPortName)
	if err != nil {
		return nil, err
	}

	var opts []midi.ListenOption
	if l.OnRealtime != nil {
		opts = append(opts, midi.UseTimeCode())
	}

	stop, err := midi.ListenTo(inPort, func(msg midi.Message, timestampms int32) {
		kind, out := Convert(msg)
		switch kind {
		case KindChannel:
			if l.OnMessage != nil {
				l.OnMessage(out)
			}
		case KindRealtime:
			if l.OnRealtime != nil {
				l.OnRealtime(out.Status)
			}
		}
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start listening: %w", err)
	}
	return stop, nil
}
