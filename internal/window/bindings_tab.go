package window

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/gopher-mpd/internal/actions"
	"github.com/PixPMusic/gopher-mpd/internal/config"
	"github.com/PixPMusic/gopher-mpd/internal/mpd"
)

const (
	noneChoice    = "(None)"
	anyModeChoice = "Any mode"
)

// ============ BINDINGS TAB ============

func (mw *MainWindow) createBindingsTab() fyne.CanvasObject {
	header := boldLabel("Bindings")
	subtitle := widget.NewLabel("Run an action when a control fires. Input 0 matches every input of the event.")

	addBtn := widget.NewButtonWithIcon("Add Binding", theme.ContentAddIcon(), func() {
		mw.addBinding()
	})
	listToolbar := container.NewHBox(addBtn)

	columnHeaders := container.NewGridWithColumns(6,
		boldLabel("Name"), boldLabel("Event"), boldLabel("Input"),
		boldLabel("Mode"), boldLabel("Action"), widget.NewLabel(""),
	)

	mw.bindingList = widget.NewList(
		func() int { return len(mw.cfg.Bindings) },
		func() fyne.CanvasObject { return mw.createBindingRow() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { mw.updateBindingRow(id, obj) },
	)

	saveBtn := widget.NewButtonWithIcon("Save Bindings", theme.DocumentSaveIcon(), func() {
		mw.saveBindings()
	})
	saveBtn.Importance = widget.HighImportance

	return container.NewBorder(
		container.NewVBox(header, subtitle, widget.NewSeparator(), listToolbar, columnHeaders),
		container.NewVBox(widget.NewSeparator(), container.NewHBox(saveBtn)),
		nil, nil,
		mw.bindingList,
	)
}

func (mw *MainWindow) createBindingRow() fyne.CanvasObject {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Binding name")

	eventSelect := widget.NewSelect(slotNames(), nil)
	eventSelect.PlaceHolder = "Event"

	numberEntry := widget.NewEntry()
	numberEntry.SetPlaceHolder("0 = any")

	modeSelect := widget.NewSelect(modeChoices(), nil)

	actionSelect := widget.NewSelect([]string{noneChoice}, nil)
	actionSelect.PlaceHolder = "Action"

	deleteBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)

	return container.NewGridWithColumns(6, nameEntry, eventSelect, numberEntry, modeSelect, actionSelect, deleteBtn)
}

func (mw *MainWindow) updateBindingRow(id widget.ListItemID, obj fyne.CanvasObject) {
	if id >= len(mw.cfg.Bindings) {
		return
	}

	binding := &mw.cfg.Bindings[id]
	row := obj.(*fyne.Container)

	nameEntry := row.Objects[0].(*widget.Entry)
	eventSelect := row.Objects[1].(*widget.Select)
	numberEntry := row.Objects[2].(*widget.Entry)
	modeSelect := row.Objects[3].(*widget.Select)
	actionSelect := row.Objects[4].(*widget.Select)
	deleteBtn := row.Objects[5].(*widget.Button)

	// Handlers are cleared first so populating the row does not write back
	nameEntry.OnChanged = nil
	eventSelect.OnChanged = nil
	numberEntry.OnChanged = nil
	modeSelect.OnChanged = nil
	actionSelect.OnChanged = nil

	bindingID := binding.ID
	deleteBtn.OnTapped = func() {
		mw.deleteBinding(bindingID)
	}

	nameEntry.SetText(binding.Name)
	eventSelect.SetSelected(binding.Event)
	numberEntry.SetText(strconv.Itoa(binding.Input.Number))
	if binding.Mode == "" {
		modeSelect.SetSelected(anyModeChoice)
	} else {
		modeSelect.SetSelected(binding.Mode)
	}

	names, ids := actionChoices(mw.actionStore)
	actionSelect.Options = names
	actionSelect.SetSelected(choiceFor(names, ids, binding.ActionID))

	nameEntry.OnChanged = func(s string) {
		binding.Name = s
	}
	eventSelect.OnChanged = func(s string) {
		setBindingEvent(binding, s)
	}
	numberEntry.OnChanged = func(s string) {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			binding.Input.Number = n
		}
	}
	modeSelect.OnChanged = func(s string) {
		if s == anyModeChoice {
			binding.Mode = ""
		} else {
			binding.Mode = s
		}
	}
	actionSelect.OnChanged = func(s string) {
		binding.ActionID = ""
		for i, n := range names {
			if n == s {
				binding.ActionID = ids[i]
				break
			}
		}
	}
}

// setBindingEvent changes the event and keeps the input type consistent with it
func setBindingEvent(b *config.Binding, event string) {
	b.Event = event
	slot, err := mpd.ParseSlot(event)
	if err != nil {
		return
	}
	if t, ok := slot.InputType(); ok {
		b.Input.Type = t.String()
	} else {
		b.Input = config.InputRef{}
	}
}

func slotNames() []string {
	slots := mpd.Slots()
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func modeChoices() []string {
	out := []string{anyModeChoice}
	for _, m := range mpd.Modes() {
		out = append(out, m.String())
	}
	return out
}

// actionChoices lists groups then actions, with the ids at matching positions.
// The first entry is the empty choice.
func actionChoices(store *actions.Store) (names, ids []string) {
	names = []string{noneChoice}
	ids = []string{""}
	for _, g := range store.Groups {
		names = append(names, "▸ "+g.Name)
		ids = append(ids, g.ID)
	}
	for _, a := range store.Actions {
		names = append(names, a.Name)
		ids = append(ids, a.ID)
	}
	return names, ids
}

func choiceFor(names, ids []string, id string) string {
	for i := range ids {
		if ids[i] == id {
			return names[i]
		}
	}
	return noneChoice
}

func (mw *MainWindow) addBinding() {
	mw.cfg.Bindings = append(mw.cfg.Bindings, config.NewBinding(len(mw.cfg.Bindings)%16+1, ""))
	mw.bindingList.Refresh()
}

func (mw *MainWindow) deleteBinding(id string) {
	for _, b := range mw.cfg.Bindings {
		if b.ID != id {
			continue
		}
		dialog.ShowConfirm("Delete Binding", "Are you sure you want to delete '"+b.Name+"'?",
			func(confirm bool) {
				if confirm {
					mw.cfg.RemoveBinding(id)
					mw.bindingList.Refresh()
				}
			}, mw.window)
		return
	}
}

func (mw *MainWindow) saveBindings() {
	mw.cfg.SyncActionStore(mw.actionStore)
	if err := mw.cfg.Validate(); err != nil {
		dialog.ShowError(fmt.Errorf("bindings not saved: %w", err), mw.window)
		return
	}
	if mw.save("bindings") {
		dialog.ShowInformation("Saved", "Bindings saved successfully.", mw.window)
	}
}
