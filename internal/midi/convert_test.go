package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2"

	"github.com/PixPMusic/gopher-mpd/internal/mpd"
)

func TestConvertChannelMessages(t *testing.T) {
	cases := []struct {
		in   midi.Message
		want mpd.Message
	}{
		{midi.NoteOn(9, 37, 100), mpd.Message{Status: 153, Data1: 37, Data2: 100}},
		{midi.NoteOff(9, 37), mpd.Message{Status: 137, Data1: 37}},
		{midi.ControlChange(0, 20, 64), mpd.Message{Status: 176, Data1: 20, Data2: 64}},
		{midi.PolyAfterTouch(9, 53, 30), mpd.Message{Status: 169, Data1: 53, Data2: 30}},
		{midi.AfterTouch(9, 70), mpd.Message{Status: 217, Data1: 70}},
	}
	for _, tc := range cases {
		kind, got := Convert(tc.in)
		assert.Equal(t, KindChannel, kind, tc.in.String())
		assert.Equal(t, tc.want, got, tc.in.String())
	}
}

func TestConvertRealtimeAndIgnored(t *testing.T) {
	for _, status := range []byte{0xF8, 0xFA, 0xFB, 0xFC} {
		kind, got := Convert(midi.Message{status})
		assert.Equal(t, KindRealtime, kind)
		assert.Equal(t, status, got.Status)
	}

	for _, raw := range []midi.Message{
		nil,
		{0xFE},
		{0x40, 0x01},
		midi.SysEx([]byte{0x01, 0x02}),
	} {
		kind, _ := Convert(raw)
		assert.Equal(t, KindIgnored, kind, "% X", []byte(raw))
	}
}
