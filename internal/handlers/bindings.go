package handlers

import (
	"log/slog"

	"github.com/PixPMusic/gopher-mpd/internal/config"
	"github.com/PixPMusic/gopher-mpd/internal/mpd"
)

// ActionRunner starts an action or group by id without blocking
type ActionRunner interface {
	Run(id string) error
}

// Bindings fires configured actions for matching events.
type Bindings struct {
	runner   ActionRunner
	log      *slog.Logger
	triggers map[mpd.Slot][]config.Trigger
}

// NewBindings compiles bindings, skipping and logging invalid ones.
func NewBindings(bindings []config.Binding, runner ActionRunner, logger *slog.Logger) *Bindings {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bindings{runner: runner, log: logger}
	b.Set(bindings)
	return b
}

// Set replaces the compiled bindings. Call it from the goroutine that
// handles input.
func (b *Bindings) Set(bindings []config.Binding) {
	triggers := make(map[mpd.Slot][]config.Trigger)
	for _, binding := range bindings {
		tr, err := binding.Compile()
		if err != nil {
			b.log.Warn("skipping binding", "err", err)
			continue
		}
		triggers[tr.Slot] = append(triggers[tr.Slot], tr)
	}
	b.triggers = triggers
}

// Count returns how many bindings compiled
func (b *Bindings) Count() int {
	n := 0
	for _, list := range b.triggers {
		n += len(list)
	}
	return n
}

// Register attaches a handler to every slot so later Set calls take effect
func (b *Bindings) Register(s *mpd.Session) error {
	for _, slot := range mpd.Slots() {
		if err := s.On(slot, b.fire); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bindings) fire(ev *mpd.Event) {
	for _, tr := range b.triggers[ev.Slot] {
		if !tr.Matches(ev) {
			continue
		}
		if err := b.runner.Run(tr.ActionID); err != nil {
			b.log.Error("binding failed", "slot", ev.Slot, "action", tr.ActionID, "err", err)
		}
	}
}

// RegisterBeat forwards the beat indicator to the host
func RegisterBeat(s *mpd.Session, h interface{ BeatIndicator(int) }) error {
	return s.On(mpd.SlotBeat, func(ev *mpd.Event) { h.BeatIndicator(ev.Value) })
}
