package host

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPanelDefaults(t *testing.T) {
	p := NewPanel(2, NewManualClock(time.Unix(100, 0)), quietLogger())
	s := p.State()

	assert.Equal(t, 2, p.PortNumber())
	assert.Len(t, s.Volumes, DefaultTracks)
	for _, v := range s.Volumes {
		assert.Equal(t, UnityVolume, v)
	}
	assert.Equal(t, "Mixer", s.FocusedName())
	assert.Equal(t, time.Unix(100, 0), p.Now())
}

func TestPanelNotifiesSubscribers(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	p := NewPanel(0, clock, quietLogger())

	var got []PanelState
	p.Subscribe(func(s PanelState) { got = append(got, s) })

	clock.Advance(time.Second)
	p.SetHintMessage("UI MODE")
	p.FocusWindow(WindowPlaylist)
	p.SetTrackVolume(3, 0.5)

	require.Len(t, got, 3)
	assert.Equal(t, "UI MODE", got[0].Hint)
	assert.Equal(t, time.Unix(1, 0), got[0].HintAt)
	assert.Equal(t, "Playlist", got[1].FocusedName())
	assert.Equal(t, 0.5, got[2].Volumes[3])

	got[2].Volumes[3] = 0
	assert.Equal(t, 0.5, p.State().Volumes[3], "subscribers get copies")
}

func TestPanelVolumeClampAndBounds(t *testing.T) {
	p := NewPanel(0, nil, quietLogger())

	p.SetTrackVolume(0, 1.7)
	p.SetTrackVolume(1, -0.2)
	p.SetTrackVolume(99, 0.3)

	s := p.State()
	assert.Equal(t, 1.0, s.Volumes[0])
	assert.Equal(t, 0.0, s.Volumes[1])
	assert.Len(t, s.Volumes, DefaultTracks)
}

func TestPanelNavigation(t *testing.T) {
	p := NewPanel(0, nil, quietLogger())

	p.NavigatePrevious()
	assert.Equal(t, DefaultTracks-1, p.CurrentTrackIndex(), "mixer wraps")
	p.NavigateNext()
	assert.Equal(t, 0, p.CurrentTrackIndex())

	p.FocusWindow(WindowBrowser)
	p.NavigateNext()
	p.NavigateNext()
	assert.Equal(t, 0, p.CurrentTrackIndex(), "only the mixer moves tracks")
	assert.Equal(t, 2, p.State().Cursor)

	p.FocusWindow(NumWindows)
	assert.Equal(t, WindowBrowser, p.FocusedWindow(), "invalid index ignored")

	p.SelectTrack(5)
	assert.Equal(t, 5, p.CurrentTrackIndex())
}

func TestPanelConcurrentUse(t *testing.T) {
	p := NewPanel(0, nil, quietLogger())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p.SetTrackVolume(i, float64(i)/10)
			p.BeatIndicator(i % 3)
			_ = p.State()
		}(i)
	}
	wg.Wait()
	assert.InDelta(t, 0.7, p.State().Volumes[7], 1e-9)
}
