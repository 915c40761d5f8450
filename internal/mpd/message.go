package mpd

import (
	"fmt"
	"time"
)

// Message is one inbound short MIDI message as delivered by the host.
// Handled is the only field written back; it tells the host not to
// interpret the message any further.
type Message struct {
	Status  byte
	Data1   byte
	Data2   byte
	Time    time.Time
	Handled bool
}

// ControlNum is the controller number of a control change
func (m *Message) ControlNum() int { return int(m.Data1) }

// ControlVal is the value of a control change
func (m *Message) ControlVal() int { return int(m.Data2) }

// Note is the key number of a note or poly aftertouch message
func (m *Message) Note() int { return int(m.Data1) }

// Velocity is the velocity of a note message
func (m *Message) Velocity() int { return int(m.Data2) }

// Pressure returns the aftertouch amount. Channel pressure is a two byte
// message so its amount sits in Data1.
func (m *Message) Pressure() int {
	if m.Status&0xF0 == 0xD0 {
		return int(m.Data1)
	}
	return int(m.Data2)
}

func (m *Message) String() string {
	return fmt.Sprintf("[%02X %02X %02X]", m.Status, m.Data1, m.Data2)
}
