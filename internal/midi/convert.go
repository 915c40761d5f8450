package midi

import (
	"gitlab.com/gomidi/midi/v2"

	"github.com/PixPMusic/gopher-mpd/internal/mpd"
)

// Kind classifies raw MIDI bytes for routing
type Kind int

const (
	KindIgnored Kind = iota
	KindChannel
	KindRealtime
)

// Convert turns a raw gomidi message into a session message. Channel voice
// messages keep their status byte so the session sees the controller's own
// channel. Channel pressure is two bytes long and leaves Data2 at zero.
func Convert(msg midi.Message) (Kind, mpd.Message) {
	if len(msg) == 0 {
		return KindIgnored, mpd.Message{}
	}
	status := msg[0]

	switch {
	case status == 0xF8, status == 0xFA, status == 0xFB, status == 0xFC:
		return KindRealtime, mpd.Message{Status: status}
	case status >= 0xF0:
		return KindIgnored, mpd.Message{}
	case status < 0x80:
		return KindIgnored, mpd.Message{}
	}

	out := mpd.Message{Status: status}
	if len(msg) > 1 {
		out.Data1 = msg[1]
	}
	if len(msg) > 2 {
		out.Data2 = msg[2]
	}
	return KindChannel, out
}
