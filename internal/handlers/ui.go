package handlers

import (
	"log/slog"
	"time"

	"github.com/PixPMusic/gopher-mpd/internal/host"
	"github.com/PixPMusic/gopher-mpd/internal/mpd"
)

// Pads and sliders used in ui mode.
const (
	PadFocusNext    = 16
	PadFocusPrev    = 15
	PadNavNext      = 12
	PadNavPrev      = 11
	SliderTrackGain = 1
)

// RepeatDelay is how long a pad must be held under pressure before
// navigation starts repeating.
const RepeatDelay = mpd.PadBuffer * 5 / 2

// UI drives host navigation while the session is in ui mode.
type UI struct {
	host host.Services
	log  *slog.Logger

	focused    int
	lastRepeat time.Time
}

// NewUI creates ui-mode handlers acting on h
func NewUI(h host.Services, logger *slog.Logger) *UI {
	if logger == nil {
		logger = slog.Default()
	}
	return &UI{host: h, log: logger}
}

// Register attaches the handlers to s
func (u *UI) Register(s *mpd.Session) error {
	if err := s.On(mpd.SlotPadPress, u.padPress); err != nil {
		return err
	}
	if err := s.On(mpd.SlotPadPressure, u.padPressure); err != nil {
		return err
	}
	return s.On(mpd.SlotSliderChange, u.sliderChange)
}

func (u *UI) padPress(ev *mpd.Event) {
	if ev.Mode != mpd.ModeUI {
		return
	}
	switch ev.Input.Number {
	case PadFocusNext:
		u.cycleFocus(1)
	case PadFocusPrev:
		u.cycleFocus(-1)
	case PadNavNext:
		u.host.NavigateNext()
	case PadNavPrev:
		u.host.NavigatePrevious()
	}
}

func (u *UI) cycleFocus(step int) {
	u.focused = ((u.focused+step)%host.NumWindows + host.NumWindows) % host.NumWindows
	u.host.FocusWindow(u.focused)
	u.log.Info("focus window", "window", host.WindowNames[u.focused])
}

// padPressure repeats navigation while the last pressed nav pad is held,
// once RepeatDelay has passed, at most once per pad buffer.
func (u *UI) padPressure(ev *mpd.Event) {
	if ev.Mode != mpd.ModeUI || ev.Value == 0 {
		return
	}
	if ev.Input != ev.Session.LastPadPressed() {
		return
	}
	pressed, ok := ev.Session.LastPadPressTime()
	if !ok || ev.Time.Sub(pressed) <= RepeatDelay {
		return
	}
	if ev.Time.Sub(u.lastRepeat) <= mpd.PadBuffer {
		return
	}

	switch ev.Input.Number {
	case PadNavNext:
		u.host.NavigateNext()
	case PadNavPrev:
		u.host.NavigatePrevious()
	default:
		return
	}
	u.lastRepeat = ev.Time
}

// sliderChange sets the current track volume, scaling the slider's full
// travel onto 0..unity gain.
func (u *UI) sliderChange(ev *mpd.Event) {
	if ev.Mode != mpd.ModeUI || ev.Input.Number != SliderTrackGain {
		return
	}
	track := u.host.CurrentTrackIndex()
	volume := ev.Input.Normalized() * host.UnityVolume
	u.host.SetTrackVolume(track, volume)
	u.log.Debug("track volume", "track", track, "volume", volume)
}
