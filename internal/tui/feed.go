package tui

import (
	"github.com/PixPMusic/gopher-mpd/internal/host"
	"github.com/PixPMusic/gopher-mpd/internal/mpd"
)

// Feed carries state from the engine and panel goroutines to the model.
// Each channel holds only the newest value; older unread values are replaced.
type Feed struct {
	Snapshots chan mpd.Snapshot
	Panels    chan host.PanelState
}

// NewFeed creates a feed with single-slot channels
func NewFeed() *Feed {
	return &Feed{
		Snapshots: make(chan mpd.Snapshot, 1),
		Panels:    make(chan host.PanelState, 1),
	}
}

// PushSnapshot never blocks. It suits engine.Observe.
func (f *Feed) PushSnapshot(s mpd.Snapshot) { replace(f.Snapshots, s) }

// PushPanel never blocks. It suits host.Panel.Subscribe.
func (f *Feed) PushPanel(s host.PanelState) { replace(f.Panels, s) }

func replace[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
