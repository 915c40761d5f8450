package controller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/PixPMusic/gopher-mpd/internal/actions"
	"github.com/PixPMusic/gopher-mpd/internal/config"
	"github.com/PixPMusic/gopher-mpd/internal/midi"
	"github.com/PixPMusic/gopher-mpd/internal/mpd"
)

type fakePorts struct {
	mu       sync.Mutex
	listener midi.Listener
	port     string
	stops    int
	sent     []gomidi.Message
	sentTo   []string
	failOpen bool
}

func (f *fakePorts) PortNumber(name string) int {
	if name == "" {
		return -1
	}
	return 4
}

func (f *fakePorts) StartListening(name string, l midi.Listener) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOpen {
		return nil, errors.New("no such port")
	}
	f.port = name
	f.listener = l
	return func() {
		f.mu.Lock()
		f.stops++
		f.mu.Unlock()
	}, nil
}

func (f *fakePorts) Send(port string, msg gomidi.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	f.sentTo = append(f.sentTo, port)
	return nil
}

func (f *fakePorts) snapshot() (midi.Listener, int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listener, f.stops, len(f.sent)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Device.InPort = "MPD226 Port A"
	cfg.Device.OutPort = "IAC Bus 1"
	action := actions.NewAction("Volume", actions.ActionTypeMidi, `{"msg_type":"cc","channel":1,"number":7,"value":64}`)
	cfg.Actions = append(cfg.Actions, *action)
	cfg.Bindings = append(cfg.Bindings, config.NewBinding(1, action.ID))
	return cfg
}

func start(t *testing.T, cfg *config.Config, ports *fakePorts) *Controller {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	c, err := New(ctx, cfg, ports, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	go func() { _ = c.Engine.Run(ctx) }()
	t.Cleanup(c.Close)
	return c
}

func TestNewRejectsBadPressureRouting(t *testing.T) {
	cfg := testConfig()
	cfg.PressureRouting = "sideways"
	_, err := New(context.Background(), cfg, &fakePorts{}, nil, nil)
	assert.Error(t, err)
}

func TestBoundPadSendsMidi(t *testing.T) {
	ports := &fakePorts{}
	c := start(t, testConfig(), ports)
	assert.Equal(t, 4, c.Session.Port())

	require.NoError(t, c.Connect())
	l, _, _ := ports.snapshot()
	require.NotNil(t, l.OnMessage)
	assert.Nil(t, l.OnRealtime, "clock is off by default")

	l.OnMessage(mpd.Message{Status: 0x99, Data1: 37, Data2: 100}) // pad 1

	require.Eventually(t, func() bool {
		_, _, n := ports.snapshot()
		return n == 1
	}, time.Second, 5*time.Millisecond)
	c.Runner.Wait()

	ports.mu.Lock()
	defer ports.mu.Unlock()
	assert.Equal(t, "IAC Bus 1", ports.sentTo[0])
	assert.Equal(t, []byte{0xB0, 7, 64}, []byte(ports.sent[0]))
}

func TestReloadReconnectsWithClock(t *testing.T) {
	ports := &fakePorts{}
	cfg := testConfig()
	c := start(t, cfg, ports)
	require.NoError(t, c.Connect())

	cfg.Device.UseClock = true
	cfg.Bindings = nil
	require.NoError(t, c.Reload())

	l, stops, _ := ports.snapshot()
	assert.Equal(t, 1, stops)
	assert.NotNil(t, l.OnRealtime)

	l.OnMessage(mpd.Message{Status: 0x99, Data1: 37, Data2: 100})
	l.OnRealtime(0xFA)
	require.Eventually(t, func() bool {
		return c.Panel.State().Beat == 1
	}, time.Second, 5*time.Millisecond)

	_, _, sent := ports.snapshot()
	assert.Zero(t, sent, "binding was removed")
}

func TestConnectFailure(t *testing.T) {
	ports := &fakePorts{failOpen: true}
	c := start(t, testConfig(), ports)
	assert.ErrorContains(t, c.Connect(), "MPD226 Port A")
}

func TestCycleMode(t *testing.T) {
	c := start(t, testConfig(), &fakePorts{})
	c.CycleMode()
	require.Eventually(t, func() bool {
		return c.Panel.State().Hint == mpd.ModeUI.Hint()
	}, time.Second, 5*time.Millisecond)
}

func TestExecutorDelegation(t *testing.T) {
	c := start(t, testConfig(), &fakePorts{})
	assert.True(t, c.Supported(actions.ActionTypeMidi))
	assert.False(t, c.Supported(actions.ActionTypeOBSScene), "no obs address configured")
	assert.NoError(t, c.Validate(&actions.Action{Type: actions.ActionTypeSleep, Code: "0.5"}))

	out, err := c.Execute(context.Background(), &actions.Action{Type: actions.ActionTypeSleep, Code: "0"})
	assert.NoError(t, err)
	assert.Contains(t, out, "Slept")
}
