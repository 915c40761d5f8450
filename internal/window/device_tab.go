package window

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/gopher-mpd/internal/mpd"
)

var pressureChoices = []string{mpd.RouteNameLastPad, mpd.RouteNameDrop}

// ============ DEVICE TAB ============

func (mw *MainWindow) createDeviceTab() fyne.CanvasObject {
	header := boldLabel("MIDI Device")
	subtitle := widget.NewLabel("Ports the MPD226 is reached through")

	nameEntry := widget.NewEntry()
	nameEntry.SetText(mw.cfg.Device.Name)
	nameEntry.OnChanged = func(s string) { mw.cfg.Device.Name = s }

	mw.inPortSelect = widget.NewSelect(nil, func(s string) { mw.cfg.Device.InPort = s })
	mw.inPortSelect.PlaceHolder = "Select..."
	mw.outPortSelect = widget.NewSelect(nil, func(s string) { mw.cfg.Device.OutPort = s })
	mw.outPortSelect.PlaceHolder = "Select..."
	mw.refreshPorts()

	refreshBtn := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		mw.refreshPorts()
	})

	clockCheck := widget.NewCheck("Drive the beat light from MIDI clock", func(b bool) {
		mw.cfg.Device.UseClock = b
	})
	clockCheck.SetChecked(mw.cfg.Device.UseClock)

	routing := widget.NewSelect(pressureChoices, func(s string) { mw.cfg.PressureRouting = s })
	routing.SetSelected(mw.cfg.PressureRouting)

	obsAddr := widget.NewEntry()
	obsAddr.SetPlaceHolder("localhost:4455")
	obsAddr.SetText(mw.cfg.OBS.Addr)
	obsAddr.OnChanged = func(s string) { mw.cfg.OBS.Addr = s }

	obsPassword := widget.NewPasswordEntry()
	obsPassword.SetText(mw.cfg.OBS.Password)
	obsPassword.OnChanged = func(s string) { mw.cfg.OBS.Password = s }

	form := widget.NewForm(
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("Input Port", container.NewBorder(nil, nil, nil, refreshBtn, mw.inPortSelect)),
		widget.NewFormItem("Output Port", mw.outPortSelect),
		widget.NewFormItem("Clock", clockCheck),
		widget.NewFormItem("Channel Pressure", routing),
		widget.NewFormItem("OBS Address", obsAddr),
		widget.NewFormItem("OBS Password", obsPassword),
	)

	saveBtn := widget.NewButtonWithIcon("Save & Reconnect", theme.DocumentSaveIcon(), func() {
		mw.saveAndActivate()
	})
	saveBtn.Importance = widget.HighImportance

	return container.NewBorder(
		container.NewVBox(header, subtitle, widget.NewSeparator()),
		container.NewVBox(widget.NewSeparator(), container.NewHBox(saveBtn)),
		nil, nil,
		container.NewVScroll(form),
	)
}

func (mw *MainWindow) refreshPorts() {
	if mw.deps.Ports == nil {
		return
	}
	mw.inPortSelect.Options = withCurrent(mw.deps.Ports.ListInPorts(), mw.cfg.Device.InPort)
	mw.inPortSelect.SetSelected(mw.cfg.Device.InPort)
	mw.outPortSelect.Options = withCurrent(mw.deps.Ports.ListOutPorts(), mw.cfg.Device.OutPort)
	mw.outPortSelect.SetSelected(mw.cfg.Device.OutPort)
}

// withCurrent keeps a configured port selectable while it is unplugged
func withCurrent(ports []string, current string) []string {
	if current == "" {
		return ports
	}
	for _, p := range ports {
		if p == current {
			return ports
		}
	}
	return append(ports, current)
}

func (mw *MainWindow) saveAndActivate() {
	if _, err := mw.cfg.PressureRoute(); err != nil {
		dialog.ShowError(err, mw.window)
		return
	}
	if mw.save("device") {
		dialog.ShowInformation("Saved", "Device settings saved. Reconnected to "+mw.cfg.Device.InPort+".", mw.window)
	}
}
