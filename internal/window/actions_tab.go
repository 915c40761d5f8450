package window

import (
	"context"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/gopher-mpd/internal/actions"
)

// testTimeout bounds a single Test run from the editor
const testTimeout = 30 * time.Second

var actionTypes = []actions.ActionType{
	actions.ActionTypeShellCommand,
	actions.ActionTypeAppleScript,
	actions.ActionTypeSleep,
	actions.ActionTypeMidi,
	actions.ActionTypeOBSScene,
}

var actionTypeLabels = map[actions.ActionType]string{
	actions.ActionTypeShellCommand: "Shell",
	actions.ActionTypeAppleScript:  "AppleScript",
	actions.ActionTypeSleep:        "Sleep",
	actions.ActionTypeMidi:         "MIDI",
	actions.ActionTypeOBSScene:     "OBS Scene",
}

// treeItem is one row of the action tree
type treeItem struct {
	Depth  int
	Action *actions.Action
	Group  *actions.ActionGroup
}

func (t treeItem) id() string {
	if t.Group != nil {
		return t.Group.ID
	}
	return t.Action.ID
}

// flatTree walks the store depth first in execution order
func flatTree(store *actions.Store) []treeItem {
	var out []treeItem
	var walk func(parent string, depth int)
	walk = func(parent string, depth int) {
		for _, step := range store.Steps(parent) {
			if step.Group != nil {
				out = append(out, treeItem{Depth: depth, Group: step.Group})
				walk(step.Group.ID, depth+1)
			} else {
				out = append(out, treeItem{Depth: depth, Action: step.Action})
			}
		}
	}
	walk("", 0)
	return out
}

// ============ ACTIONS TAB ============

func (mw *MainWindow) createActionsTab() fyne.CanvasObject {
	header := boldLabel("Actions")
	subtitle := widget.NewLabel("Create and manage what bindings run")

	mw.actionList = widget.NewList(
		func() int { return len(flatTree(mw.actionStore)) },
		func() fyne.CanvasObject { return mw.createActionListItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { mw.updateActionListItem(id, obj) },
	)
	mw.actionList.OnSelected = func(id widget.ListItemID) {
		items := flatTree(mw.actionStore)
		if id < len(items) {
			mw.selectedID = items[id].id()
			mw.updateActionEditor()
		}
	}

	addGroupBtn := widget.NewButtonWithIcon("Add Group", theme.FolderNewIcon(), func() {
		mw.addActionGroup()
	})
	addActionBtn := widget.NewButtonWithIcon("Add Action", theme.ContentAddIcon(), func() {
		mw.addAction()
	})
	deleteBtn := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		mw.deleteSelectedActionItem()
	})
	listToolbar := container.NewHBox(addGroupBtn, addActionBtn, layout.NewSpacer(), deleteBtn)

	listPanel := container.NewBorder(listToolbar, nil, nil, nil, mw.actionList)

	split := container.NewHSplit(listPanel, container.NewVScroll(mw.createActionEditorPanel()))
	split.Offset = 0.35

	saveBtn := widget.NewButtonWithIcon("Save Actions", theme.DocumentSaveIcon(), func() {
		mw.saveActions()
	})
	saveBtn.Importance = widget.HighImportance

	return container.NewBorder(
		container.NewVBox(header, subtitle, widget.NewSeparator()),
		container.NewVBox(widget.NewSeparator(), container.NewHBox(saveBtn)),
		nil, nil,
		split,
	)
}

func (mw *MainWindow) createActionListItem() fyne.CanvasObject {
	icon := widget.NewIcon(theme.DocumentIcon())
	name := widget.NewLabel("Action Name")
	typeLabel := widget.NewLabel("")
	typeLabel.TextStyle = fyne.TextStyle{Italic: true}

	return container.NewHBox(icon, name, typeLabel)
}

func (mw *MainWindow) updateActionListItem(id widget.ListItemID, obj fyne.CanvasObject) {
	items := flatTree(mw.actionStore)
	if id >= len(items) {
		return
	}

	item := items[id]
	row := obj.(*fyne.Container)
	icon := row.Objects[0].(*widget.Icon)
	name := row.Objects[1].(*widget.Label)
	typeLabel := row.Objects[2].(*widget.Label)

	indent := strings.Repeat("  ", item.Depth)
	if item.Group != nil {
		icon.SetResource(theme.FolderIcon())
		name.SetText(indent + item.Group.Name)
		typeLabel.SetText("")
		return
	}
	icon.SetResource(theme.DocumentIcon())
	name.SetText(indent + item.Action.Name)
	typeLabel.SetText("(" + actionTypeLabels[item.Action.Type] + ")")
}

func (mw *MainWindow) createActionEditorPanel() *fyne.Container {
	mw.actionName = widget.NewEntry()
	mw.actionName.OnChanged = func(s string) {
		if a := mw.selectedAction(); a != nil {
			a.Name = s
		} else if g := mw.actionStore.Group(mw.selectedID); g != nil {
			g.Name = s
		}
		mw.actionList.Refresh()
	}

	labels := make([]string, len(actionTypes))
	for i, t := range actionTypes {
		labels[i] = actionTypeLabels[t]
	}
	mw.actionType = widget.NewSelect(labels, func(s string) {
		a := mw.selectedAction()
		if a == nil {
			return
		}
		for t, l := range actionTypeLabels {
			if l == s {
				a.Type = t
			}
		}
		mw.updateCodePreview()
		mw.actionList.Refresh()
	})

	mw.actionCode = widget.NewMultiLineEntry()
	mw.actionCode.SetMinRowsVisible(6)
	mw.actionCode.OnChanged = func(s string) {
		if a := mw.selectedAction(); a != nil {
			a.Code = s
			mw.updateCodePreview()
		}
	}

	mw.actionWait = widget.NewCheck("Wait for completion", func(b bool) {
		if a := mw.selectedAction(); a != nil {
			a.WaitForCompletion = b
		}
	})

	mw.actionPreview = container.NewStack()
	mw.actionFeedback = widget.NewLabel("")
	mw.actionFeedback.Wrapping = fyne.TextWrapWord

	testBtn := widget.NewButtonWithIcon("Test", theme.MediaPlayIcon(), func() { mw.testAction() })
	validateBtn := widget.NewButtonWithIcon("Validate", theme.ConfirmIcon(), func() { mw.validateAction() })

	form := widget.NewForm(
		widget.NewFormItem("Name", mw.actionName),
		widget.NewFormItem("Type", mw.actionType),
		widget.NewFormItem("Code", mw.actionCode),
		widget.NewFormItem("", mw.actionWait),
	)

	mw.updateActionEditor()
	return container.NewVBox(
		form,
		boldLabel("Preview"),
		mw.actionPreview,
		container.NewHBox(testBtn, validateBtn),
		mw.actionFeedback,
	)
}

func (mw *MainWindow) selectedAction() *actions.Action {
	if mw.selectedID == "" {
		return nil
	}
	return mw.actionStore.Action(mw.selectedID)
}

func (mw *MainWindow) updateActionEditor() {
	a := mw.selectedAction()
	g := mw.actionStore.Group(mw.selectedID)

	// Detach handlers while loading the selection
	onName, onCode, onWait, onType := mw.actionName.OnChanged, mw.actionCode.OnChanged, mw.actionWait.OnChanged, mw.actionType.OnChanged
	mw.actionName.OnChanged, mw.actionCode.OnChanged, mw.actionWait.OnChanged, mw.actionType.OnChanged = nil, nil, nil, nil
	defer func() {
		mw.actionName.OnChanged, mw.actionCode.OnChanged, mw.actionWait.OnChanged, mw.actionType.OnChanged = onName, onCode, onWait, onType
	}()

	mw.actionFeedback.SetText("")
	switch {
	case a != nil:
		mw.actionName.SetText(a.Name)
		mw.actionName.Enable()
		mw.actionType.SetSelected(actionTypeLabels[a.Type])
		mw.actionType.Enable()
		mw.actionCode.SetText(a.Code)
		mw.actionCode.Enable()
		mw.actionWait.SetChecked(a.WaitForCompletion)
		mw.actionWait.Enable()
	case g != nil:
		mw.actionName.SetText(g.Name)
		mw.actionName.Enable()
		mw.actionType.ClearSelected()
		mw.actionType.Disable()
		mw.actionCode.SetText("")
		mw.actionCode.Disable()
		mw.actionWait.SetChecked(false)
		mw.actionWait.Disable()
	default:
		mw.actionName.SetText("")
		mw.actionName.Disable()
		mw.actionType.Disable()
		mw.actionCode.SetText("")
		mw.actionCode.Disable()
		mw.actionWait.Disable()
	}
	mw.updateCodePreview()
}

func (mw *MainWindow) updateCodePreview() {
	a := mw.selectedAction()
	if a == nil {
		mw.actionPreview.Objects = nil
	} else {
		mw.actionPreview.Objects = []fyne.CanvasObject{mw.highlighter.HighlightCode(a.Code, a.Type)}
	}
	mw.actionPreview.Refresh()
}

// selectedParent is the group new items are created in
func (mw *MainWindow) selectedParent() string {
	if g := mw.actionStore.Group(mw.selectedID); g != nil {
		return g.ID
	}
	if a := mw.selectedAction(); a != nil {
		return a.ParentGroupID
	}
	return ""
}

func (mw *MainWindow) promptName(title, placeholder string, create func(name string)) {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder)
	entry.SetText(placeholder)

	dialog.ShowCustomConfirm(title, "Create", "Cancel",
		container.NewVBox(widget.NewLabel("Enter a name:"), entry),
		func(confirm bool) {
			if confirm && entry.Text != "" {
				create(entry.Text)
				mw.actionList.Refresh()
			}
		}, mw.window)
}

func (mw *MainWindow) addActionGroup() {
	mw.promptName("Create Action Group", "New Group", func(name string) {
		group := actions.NewActionGroup(name)
		group.ParentGroupID = mw.selectedParent()
		mw.actionStore.AddGroup(group)
	})
}

func (mw *MainWindow) addAction() {
	mw.promptName("Create Action", "New Action", func(name string) {
		action := actions.NewAction(name, actions.ActionTypeShellCommand, "")
		action.WaitForCompletion = true
		action.ParentGroupID = mw.selectedParent()
		mw.actionStore.AddAction(action)
	})
}

func (mw *MainWindow) deleteSelectedActionItem() {
	id := mw.selectedID
	var name string
	switch {
	case mw.selectedAction() != nil:
		name = "'" + mw.selectedAction().Name + "'"
	case mw.actionStore.Group(id) != nil:
		name = "'" + mw.actionStore.Group(id).Name + "' and all its contents"
	default:
		return
	}
	dialog.ShowConfirm("Delete", "Are you sure you want to delete "+name+"?",
		func(confirm bool) {
			if confirm {
				mw.actionStore.Remove(id)
				mw.selectedID = ""
				mw.actionList.UnselectAll()
				mw.actionList.Refresh()
				mw.updateActionEditor()
			}
		}, mw.window)
}

func (mw *MainWindow) testAction() {
	if mw.selectedID == "" {
		mw.actionFeedback.SetText("Nothing selected")
		return
	}

	// Groups go through the runner so ordering matches a bound press
	if mw.selectedAction() == nil {
		if mw.deps.Runner == nil {
			return
		}
		if err := mw.deps.Runner.Run(mw.selectedID); err != nil {
			mw.actionFeedback.SetText("Error: " + err.Error())
		} else {
			mw.actionFeedback.SetText("Group started")
		}
		return
	}

	if mw.deps.Executor == nil {
		return
	}
	action := *mw.selectedAction()
	mw.actionFeedback.SetText("Running...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		output, err := mw.deps.Executor.Execute(ctx, &action)

		var text string
		switch {
		case err != nil:
			text = "Error: " + err.Error()
		case output != "":
			text = "Output: " + output
		default:
			text = "Success (no output)"
		}
		fyne.Do(func() { mw.actionFeedback.SetText(text) })
	}()
}

func (mw *MainWindow) validateAction() {
	a := mw.selectedAction()
	if a == nil || mw.deps.Executor == nil {
		mw.actionFeedback.SetText("No action selected")
		return
	}
	if err := mw.deps.Executor.Validate(a); err != nil {
		mw.actionFeedback.SetText("Validation error: " + err.Error())
		return
	}
	if !mw.deps.Executor.Supported(a.Type) {
		mw.actionFeedback.SetText("Valid, but " + actionTypeLabels[a.Type] + " actions cannot run here")
		return
	}
	mw.actionFeedback.SetText("✓ Valid")
}

func (mw *MainWindow) saveActions() {
	mw.cfg.SyncActionStore(mw.actionStore)
	if mw.save("actions") {
		mw.bindingList.Refresh()
		dialog.ShowInformation("Saved", "Actions saved successfully.", mw.window)
	}
}
