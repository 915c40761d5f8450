package window

import (
	"fmt"
	"image/color"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/gopher-mpd/internal/engine"
	"github.com/PixPMusic/gopher-mpd/internal/mpd"
)

// tapVelocity is the velocity of pad presses made with the mouse
const tapVelocity = 100

// ============ SESSION TAB ============

func (mw *MainWindow) createSessionTab() fyne.CanvasObject {
	header := boldLabel("Controller")
	mw.modeLabel = widget.NewLabel("Mode: " + mpd.ModeDefault.String())
	mw.lockLabel = widget.NewLabel("Remap locked")
	mw.targetText = widget.NewLabel("No input yet")
	mw.hintLabel = widget.NewLabelWithStyle("", fyne.TextAlignTrailing, fyne.TextStyle{Italic: true})
	mw.beatLight = canvas.NewCircle(beatOff)
	beat := container.NewGridWrap(fyne.NewSize(18, 18), mw.beatLight)

	status := container.NewBorder(nil, nil,
		container.NewHBox(header, beat, mw.modeLabel, mw.lockLabel),
		mw.hintLabel,
	)

	grid := container.NewGridWithColumns(4)
	for _, row := range mpd.MPD226PadGrid {
		for _, n := range row {
			grid.Add(mw.createPad(n))
		}
	}

	mw.knobBars = make([]*widget.ProgressBar, 4)
	mw.sliderBars = make([]*widget.ProgressBar, 4)
	knobs := container.NewVBox(boldLabel("Knobs"))
	sliders := container.NewVBox(boldLabel("Sliders"))
	for i := range 4 {
		mw.knobBars[i] = newValueBar()
		knobs.Add(container.NewBorder(nil, nil, mw.verticalLabel(fmt.Sprintf("K%d", i+1)), nil, mw.knobBars[i]))
		mw.sliderBars[i] = newValueBar()
		sliders.Add(container.NewBorder(nil, nil, mw.verticalLabel(fmt.Sprintf("S%d", i+1)), nil, mw.sliderBars[i]))
	}

	switches := container.NewHBox(boldLabel("Switches"))
	for range 4 {
		lbl := widget.NewLabel("")
		mw.switchText = append(mw.switchText, lbl)
		switches.Add(lbl)
	}
	transport := container.NewHBox(boldLabel("Transport"))
	for range 3 {
		lbl := widget.NewLabel("")
		mw.transText = append(mw.transText, lbl)
		transport.Add(lbl)
	}

	controls := container.NewVBox(knobs, widget.NewSeparator(), sliders)
	split := container.NewHSplit(grid, container.NewVScroll(controls))
	split.Offset = 0.55

	return container.NewBorder(
		container.NewVBox(status, widget.NewSeparator()),
		container.NewVBox(widget.NewSeparator(), switches, transport, mw.targetText),
		nil, nil,
		split,
	)
}

func newValueBar() *widget.ProgressBar {
	bar := widget.NewProgressBar()
	bar.Min = 0
	bar.Max = 1
	bar.TextFormatter = func() string { return fmt.Sprintf("%d", int(bar.Value*mpd.MaxValue+0.5)) }
	return bar
}

func (mw *MainWindow) createPad(n int) fyne.CanvasObject {
	rect := canvas.NewRectangle(padIdle)
	rect.CornerRadius = 6
	rect.SetMinSize(fyne.NewSize(72, 72))

	tap := newTappableRect(rect, func() { mw.tapPad(n) })
	label := widget.NewLabelWithStyle(fmt.Sprintf("%d", n), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	mw.padRects[n] = tap
	mw.padLabels[n] = label
	return container.NewStack(tap, container.NewCenter(label))
}

// tapPad plays a press and release of pad n through the engine
func (mw *MainWindow) tapPad(n int) {
	if mw.deps.Engine == nil {
		return
	}
	pad, ok := mw.lastSnap.Input(mpd.Pad, n)
	if !ok {
		return
	}
	for _, m := range padTapMessages(pad) {
		mw.deps.Engine.Submit(m)
	}
}

// padTapMessages is the note on and note off a tap on pad produces
func padTapMessages(pad mpd.Input) []mpd.Message {
	id := byte(pad.ID)
	return []mpd.Message{
		{Status: 0x99, Data1: id, Data2: tapVelocity},
		{Status: 0x89, Data1: id, Data2: 0},
	}
}

func (mw *MainWindow) verticalLabel(text string) fyne.CanvasObject {
	if mw.labels == nil {
		return widget.NewLabel(text)
	}
	img, err := mw.labels.Vertical(text, float64(theme.TextSize()), theme.Color(theme.ColorNameForeground))
	if err != nil {
		mw.log.Warn("failed to render label", "text", text, "err", err)
		return widget.NewLabel(text)
	}
	out := canvas.NewImageFromImage(img)
	out.SetMinSize(fyne.NewSize(float32(img.Bounds().Dx()), float32(img.Bounds().Dy())))
	out.FillMode = canvas.ImageFillOriginal
	return out
}

func (mw *MainWindow) applySnapshot(snap mpd.Snapshot) {
	mw.lastSnap = snap
	lockPads := mpd.DefaultLockPads

	for _, pad := range snap.Inputs[mpd.Pad] {
		rect, ok := mw.padRects[pad.Number]
		if !ok {
			continue
		}
		rect.rect.FillColor = padColor(pad, snap, lockPads)
		rect.rect.Refresh()
		mw.padLabels[pad.Number].SetText(padText(pad))
	}
	for i, in := range snap.Inputs[mpd.Knob] {
		if i < len(mw.knobBars) {
			mw.knobBars[i].SetValue(in.Normalized())
		}
	}
	for i, in := range snap.Inputs[mpd.Slider] {
		if i < len(mw.sliderBars) {
			mw.sliderBars[i].SetValue(in.Normalized())
		}
	}
	for i, in := range snap.Inputs[mpd.Switch] {
		if i < len(mw.switchText) {
			mw.switchText[i].SetText(onOffText(in))
		}
	}
	for i, in := range snap.Inputs[mpd.Transport] {
		if i < len(mw.transText) {
			mw.transText[i].SetText(onOffText(in))
		}
	}

	mw.modeLabel.SetText("Mode: " + snap.Mode.String())
	if snap.Unlocked {
		mw.lockLabel.SetText("Remap unlocked")
	} else {
		mw.lockLabel.SetText("Remap locked")
	}
	mw.targetText.SetText(targetText(snap))
}

// padColor shades a pad by whether it is held, was the last pressed or
// is part of the remap chord while remapping is unlocked.
func padColor(pad mpd.Input, snap mpd.Snapshot, lockPads []int) color.Color {
	switch {
	case pad.Pressed:
		return padHeld
	case snap.Unlocked && slices.Contains(lockPads, pad.Number):
		return padLock
	case pad.Number == snap.LastPad:
		return padLast
	}
	return padIdle
}

func padText(pad mpd.Input) string {
	if pad.Pressed && pad.Pressure > 0 {
		return fmt.Sprintf("%d\n%d", pad.Number, pad.Pressure)
	}
	return fmt.Sprintf("%d", pad.Number)
}

func onOffText(in mpd.Input) string {
	if in.On {
		return in.Name + " ●"
	}
	return in.Name + " ○"
}

func targetText(snap mpd.Snapshot) string {
	t := snap.Target
	if t == nil {
		return "No input yet"
	}
	switch t.Type {
	case mpd.Pad:
		return fmt.Sprintf("%s  pressure %d", t.Name, t.Pressure)
	case mpd.Knob, mpd.Slider:
		return fmt.Sprintf("%s = %d", t.Name, t.Value)
	}
	return t.String()
}

func beatColor(v int) color.Color {
	switch v {
	case engine.BeatBar:
		return beatOnBar
	case engine.Beat:
		return beatOnBeat
	}
	return beatOff
}
