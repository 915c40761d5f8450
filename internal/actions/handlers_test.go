package actions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

type sent struct {
	port string
	msg  midi.Message
}

type fakeSender struct {
	sent []sent
	err  error
}

func (f *fakeSender) Send(port string, msg midi.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{port, msg})
	return nil
}

func TestMidiHandlerMessages(t *testing.T) {
	sender := &fakeSender{}
	h := NewMidiHandler(sender)

	cases := []struct {
		code string
		want []byte
	}{
		{`{"port":"out","msg_type":"note_on","channel":1,"number":60,"value":100}`, []byte{0x90, 60, 100}},
		{`{"port":"out","msg_type":"note_off","channel":10,"number":37}`, []byte{0x89, 37, 0}},
		{`{"port":"out","msg_type":"cc","channel":2,"number":7,"value":127}`, []byte{0xB1, 7, 127}},
		{`{"port":"out","msg_type":"pc","channel":1,"program":5}`, []byte{0xC0, 5}},
		{`{"port":"out","msg_type":"sysex","sysex":"F0 00 20 29 F7"}`, []byte{0xF0, 0x00, 0x20, 0x29, 0xF7}},
	}
	for _, tc := range cases {
		_, err := h.Execute(context.Background(), tc.code)
		require.NoError(t, err, tc.code)
	}

	require.Len(t, sender.sent, len(cases))
	for i, tc := range cases {
		assert.Equal(t, "out", sender.sent[i].port)
		assert.Equal(t, tc.want, []byte(sender.sent[i].msg), cases[i].code)
	}
}

func TestMidiHandlerRejectsBadCode(t *testing.T) {
	h := NewMidiHandler(&fakeSender{})

	for _, code := range []string{
		`not json`,
		`{"msg_type":"note_on"}`,
		`{"port":"out","msg_type":"bend"}`,
		`{"port":"out","msg_type":"cc","number":200}`,
		`{"port":"out","msg_type":"sysex","sysex":"F0 F7"}`,
		`{"port":"out","msg_type":"sysex","sysex":"zz"}`,
		`{"port":"out","msg_type":"sysex","sysex":"F0 80 F7"}`,
	} {
		assert.Error(t, h.Validate(code), code)
	}

	failing := NewMidiHandler(&fakeSender{err: errors.New("port gone")})
	_, err := failing.Execute(context.Background(), `{"port":"out","msg_type":"pc"}`)
	assert.ErrorContains(t, err, "port gone")

	assert.False(t, NewMidiHandler(nil).IsSupported())
}

func TestMidiHandlerDefaultPort(t *testing.T) {
	sender := &fakeSender{}
	h := NewMidiHandler(sender)
	h.DefaultPort = "MPD226 Port A"

	_, err := h.Execute(context.Background(), `{"msg_type":"cc","channel":1,"number":7,"value":64}`)
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "MPD226 Port A", sender.sent[0].port)
}

type fakeSwitcher struct {
	scenes []string
	closed bool
}

func (f *fakeSwitcher) SetScene(name string) error {
	f.scenes = append(f.scenes, name)
	return nil
}

func (f *fakeSwitcher) Close() error {
	f.closed = true
	return nil
}

func TestOBSHandler(t *testing.T) {
	sw := &fakeSwitcher{}
	var dialed string
	h := &OBSHandler{
		Addr: " ws://127.0.0.1:4455 ",
		Dial: func(addr, password string) (SceneSwitcher, error) {
			dialed = addr
			return sw, nil
		},
	}

	out, err := h.Execute(context.Background(), " Live ")
	require.NoError(t, err)
	assert.Equal(t, "Switched to scene Live", out)
	assert.Equal(t, "127.0.0.1:4455", dialed)
	assert.Equal(t, []string{"Live"}, sw.scenes)
	assert.True(t, sw.closed)

	assert.Error(t, h.Validate("  "))
	assert.False(t, (&OBSHandler{}).IsSupported())

	_, err = (&OBSHandler{Dial: h.Dial}).Execute(context.Background(), "Live")
	assert.Error(t, err, "address required")
}

func TestNormalizeOBSAddr(t *testing.T) {
	cases := map[string]string{
		"127.0.0.1:4455":         "127.0.0.1:4455",
		" ws://127.0.0.1:4455 ":  "127.0.0.1:4455",
		"wss://example.com:4455": "example.com:4455",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeOBSAddr(in), in)
	}
}

func TestSleepHandlerHonoursContext(t *testing.T) {
	h := &SleepHandler{}
	assert.Error(t, h.Validate("-1"))
	assert.Error(t, h.Validate("soon"))
	require.NoError(t, h.Validate("0.25"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	_, err := h.Execute(ctx, "30")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)

	out, err := h.Execute(context.Background(), "0")
	require.NoError(t, err)
	assert.Equal(t, "Slept for 0.00 seconds", out)
}
