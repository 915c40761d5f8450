package host

import (
	"log/slog"
	"sync"
	"time"
)

// Host window indices, in focus cycling order.
const (
	WindowMixer = iota
	WindowChannelRack
	WindowPlaylist
	WindowPianoRoll
	WindowBrowser

	NumWindows
)

// WindowNames labels the focusable windows
var WindowNames = [NumWindows]string{
	WindowMixer:       "Mixer",
	WindowChannelRack: "Channel rack",
	WindowPlaylist:    "Playlist",
	WindowPianoRoll:   "Piano roll",
	WindowBrowser:     "Browser",
}

// DefaultTracks is the number of mixer tracks a Panel starts with
const DefaultTracks = 8

// UnityVolume is the mixer volume at 0 dB
const UnityVolume = 0.8

// PanelState is a copy of the panel for renderers
type PanelState struct {
	Port         int
	Hint         string
	HintAt       time.Time
	Volumes      []float64
	CurrentTrack int
	Focused      int
	Cursor       int
	Beat         int
}

// FocusedName returns the name of the focused window
func (s PanelState) FocusedName() string {
	if s.Focused < 0 || s.Focused >= NumWindows {
		return ""
	}
	return WindowNames[s.Focused]
}

// Panel is an in-memory host. It implements Services and notifies
// subscribers after every change. Safe for concurrent use.
type Panel struct {
	clock Clock
	log   *slog.Logger

	mu     sync.Mutex
	state  PanelState
	notify []func(PanelState)
}

// NewPanel creates a panel on port with DefaultTracks tracks at unity gain.
func NewPanel(port int, clock Clock, logger *slog.Logger) *Panel {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	volumes := make([]float64, DefaultTracks)
	for i := range volumes {
		volumes[i] = UnityVolume
	}
	return &Panel{
		clock: clock,
		log:   logger,
		state: PanelState{Port: port, Volumes: volumes},
	}
}

// Subscribe registers fn to receive the panel state after each change.
func (p *Panel) Subscribe(fn func(PanelState)) {
	p.mu.Lock()
	p.notify = append(p.notify, fn)
	p.mu.Unlock()
}

// State returns a copy of the current state
func (p *Panel) State() PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.copyLocked()
}

func (p *Panel) copyLocked() PanelState {
	s := p.state
	s.Volumes = append([]float64(nil), p.state.Volumes...)
	return s
}

func (p *Panel) update(fn func(s *PanelState)) {
	p.mu.Lock()
	fn(&p.state)
	snap := p.copyLocked()
	subs := append([]func(PanelState){}, p.notify...)
	p.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

func (p *Panel) PortNumber() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Port
}

// SetPort records the port the controller is now connected on
func (p *Panel) SetPort(port int) {
	p.update(func(s *PanelState) { s.Port = port })
}

func (p *Panel) Now() time.Time { return p.clock.Now() }

func (p *Panel) SetHintMessage(text string) {
	at := p.clock.Now()
	p.update(func(s *PanelState) {
		s.Hint = text
		s.HintAt = at
	})
}

// SetTrackVolume clamps volume to [0, 1]. Unknown tracks are ignored.
func (p *Panel) SetTrackVolume(track int, volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	p.update(func(s *PanelState) {
		if track < 0 || track >= len(s.Volumes) {
			p.log.Warn("volume for unknown track", "track", track)
			return
		}
		s.Volumes[track] = volume
	})
}

func (p *Panel) CurrentTrackIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.CurrentTrack
}

// SelectTrack makes track the current mixer track
func (p *Panel) SelectTrack(track int) {
	p.update(func(s *PanelState) {
		if track >= 0 && track < len(s.Volumes) {
			s.CurrentTrack = track
		}
	})
}

func (p *Panel) FocusWindow(index int) {
	p.update(func(s *PanelState) {
		if index >= 0 && index < NumWindows {
			s.Focused = index
		}
	})
}

// FocusedWindow returns the index of the focused window
func (p *Panel) FocusedWindow() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Focused
}

// NavigateNext moves the selection cursor of the focused window forward.
// On the mixer this selects the next track.
func (p *Panel) NavigateNext() { p.navigate(1) }

// NavigatePrevious moves the selection cursor back
func (p *Panel) NavigatePrevious() { p.navigate(-1) }

func (p *Panel) navigate(step int) {
	p.update(func(s *PanelState) {
		s.Cursor += step
		if s.Focused == WindowMixer && len(s.Volumes) > 0 {
			n := len(s.Volumes)
			s.CurrentTrack = ((s.CurrentTrack+step)%n + n) % n
		}
	})
}

func (p *Panel) BeatIndicator(value int) {
	p.update(func(s *PanelState) { s.Beat = value })
}
