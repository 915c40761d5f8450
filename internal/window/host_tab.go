package window

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/gopher-mpd/internal/host"
)

// ============ HOST TAB ============

func (mw *MainWindow) createHostTab() fyne.CanvasObject {
	header := boldLabel("Host")
	subtitle := widget.NewLabel("What the controller is driving in ui mode")

	mw.focusLabel = widget.NewLabel("")
	mw.trackLabel = widget.NewLabel("")

	tracks := 0
	if mw.deps.Panel != nil {
		tracks = len(mw.deps.Panel.State().Volumes)
	}
	mixer := container.NewVBox(boldLabel("Mixer"))
	for i := range tracks {
		bar := widget.NewProgressBar()
		bar.Max = 1
		mw.volumeBars = append(mw.volumeBars, bar)

		track := i
		selectBtn := widget.NewButton(fmt.Sprintf("Track %d", i+1), func() {
			mw.deps.Panel.SelectTrack(track)
		})
		mixer.Add(container.NewBorder(nil, nil, selectBtn, nil, bar))
	}

	return container.NewBorder(
		container.NewVBox(header, subtitle, widget.NewSeparator(),
			container.NewHBox(mw.focusLabel, mw.trackLabel)),
		nil, nil, nil,
		container.NewVScroll(mixer),
	)
}

func (mw *MainWindow) applyPanel(state host.PanelState) {
	for i, v := range state.Volumes {
		if i < len(mw.volumeBars) {
			mw.volumeBars[i].SetValue(v)
		}
	}
	mw.focusLabel.SetText(fmt.Sprintf("Focused: %s  cursor %d", state.FocusedName(), state.Cursor))
	mw.trackLabel.SetText(fmt.Sprintf("Track: %d", state.CurrentTrack+1))
	mw.hintLabel.SetText(state.Hint)

	mw.beatLight.FillColor = beatColor(state.Beat)
	mw.beatLight.Refresh()
}
