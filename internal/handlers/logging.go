// Package handlers holds the reactions attached to session events.
package handlers

import (
	"context"
	"log/slog"

	"github.com/PixPMusic/gopher-mpd/internal/mpd"
)

var verbs = map[mpd.Slot]string{
	mpd.SlotPadPress:     "pressed",
	mpd.SlotPadRelease:   "released",
	mpd.SlotPadPressure:  "pressure",
	mpd.SlotKnobChange:   "changed",
	mpd.SlotSliderChange: "changed",
	mpd.SlotSwitchPress:  "pressed",
	mpd.SlotStopPress:    "pressed",
	mpd.SlotPlayPress:    "pressed",
	mpd.SlotRecPress:     "pressed",
	mpd.SlotBeat:         "beat",
}

// RegisterLogging logs every dispatched event. Pressure and beat events
// are logged at debug level.
func RegisterLogging(s *mpd.Session, logger *slog.Logger) error {
	for _, slot := range mpd.Slots() {
		level := slog.LevelInfo
		if slot == mpd.SlotPadPressure || slot == mpd.SlotBeat {
			level = slog.LevelDebug
		}
		verb := verbs[slot]
		err := s.On(slot, func(ev *mpd.Event) {
			attrs := []any{"value", ev.Value, "mode", ev.Mode}
			if ev.Input != nil {
				attrs = append(attrs, "input", ev.Input.Name)
			}
			logger.Log(context.Background(), level, verb, attrs...)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
