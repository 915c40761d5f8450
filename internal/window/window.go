package window

import (
	"context"
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/gopher-mpd/internal/actions"
	"github.com/PixPMusic/gopher-mpd/internal/config"
	"github.com/PixPMusic/gopher-mpd/internal/glyph"
	"github.com/PixPMusic/gopher-mpd/internal/host"
	"github.com/PixPMusic/gopher-mpd/internal/mpd"
)

// Engine is the part of the input engine the window drives.
// Observe is called from NewMainWindow, so the engine must not be running yet.
type Engine interface {
	Observe(fn func(mpd.Snapshot))
	Submit(m mpd.Message)
}

// Ports lists the MIDI ports offered on the Device tab
type Ports interface {
	ListInPorts() []string
	ListOutPorts() []string
}

// Executor runs and checks single actions from the editor
type Executor interface {
	Execute(ctx context.Context, a *actions.Action) (string, error)
	Validate(a *actions.Action) error
	Supported(t actions.ActionType) bool
}

// Runner starts an action or group by id
type Runner interface {
	Run(id string) error
}

// Deps is everything the window shows or acts on
type Deps struct {
	Engine   Engine
	Panel    *host.Panel
	Ports    Ports
	Executor Executor
	Runner   Runner
	Logger   *slog.Logger

	// OnSave is called after the config has been written to disk
	OnSave func()
}

// MainWindow represents the main application window
type MainWindow struct {
	window fyne.Window
	cfg    *config.Config
	deps   Deps
	log    *slog.Logger
	labels *glyph.Renderer

	// Session tab
	padRects   map[int]*tappableRect
	padLabels  map[int]*widget.Label
	knobBars   []*widget.ProgressBar
	sliderBars []*widget.ProgressBar
	switchText []*widget.Label
	transText  []*widget.Label
	modeLabel  *widget.Label
	lockLabel  *widget.Label
	targetText *widget.Label
	hintLabel  *widget.Label
	beatLight  *canvas.Circle
	lastSnap   mpd.Snapshot

	// Host tab
	volumeBars []*widget.ProgressBar
	focusLabel *widget.Label
	trackLabel *widget.Label

	// Bindings tab
	bindingList *widget.List

	// Actions tab
	actionStore    *actions.Store
	actionList     *widget.List
	selectedID     string
	actionName     *widget.Entry
	actionType     *widget.Select
	actionCode     *widget.Entry
	actionWait     *widget.Check
	actionPreview  *fyne.Container
	actionFeedback *widget.Label
	highlighter    *SyntaxHighlighter

	// Device tab
	inPortSelect  *widget.Select
	outPortSelect *widget.Select
}

// NewMainWindow creates the main window. It subscribes to engine snapshots
// and panel changes; both are applied on the fyne goroutine.
func NewMainWindow(app fyne.App, cfg *config.Config, deps Deps) *MainWindow {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mw := &MainWindow{
		window:      app.NewWindow("GopherMPD"),
		cfg:         cfg,
		deps:        deps,
		log:         logger,
		actionStore: cfg.ActionStore(),
		highlighter: NewSyntaxHighlighter(),
		padRects:    make(map[int]*tappableRect),
		padLabels:   make(map[int]*widget.Label),
	}

	labels, err := glyph.New(theme.DefaultTextFont().Content())
	if err != nil {
		logger.Warn("vertical labels disabled", "err", err)
	}
	mw.labels = labels

	mw.setupUI()

	if deps.Engine != nil {
		deps.Engine.Observe(func(snap mpd.Snapshot) {
			fyne.Do(func() { mw.applySnapshot(snap) })
		})
	}
	if deps.Panel != nil {
		deps.Panel.Subscribe(func(state host.PanelState) {
			fyne.Do(func() { mw.applyPanel(state) })
		})
		mw.applyPanel(deps.Panel.State())
	}
	return mw
}

func (mw *MainWindow) setupUI() {
	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Session", theme.MediaPlayIcon(), mw.createSessionTab()),
		container.NewTabItemWithIcon("Host", theme.ComputerIcon(), mw.createHostTab()),
		container.NewTabItemWithIcon("Bindings", theme.ListIcon(), mw.createBindingsTab()),
		container.NewTabItemWithIcon("Actions", theme.MediaFastForwardIcon(), mw.createActionsTab()),
		container.NewTabItemWithIcon("Device", theme.SettingsIcon(), mw.createDeviceTab()),
	)

	mw.window.SetContent(tabs)
	mw.window.Resize(fyne.NewSize(950, 660))
	mw.window.CenterOnScreen()
	mw.window.SetCloseIntercept(func() {
		mw.window.Hide()
	})
}

// save writes the config and notifies the owner
func (mw *MainWindow) save(what string) bool {
	if err := mw.cfg.Save(); err != nil {
		mw.log.Error("failed to save config", "what", what, "err", err)
		dialog.ShowError(err, mw.window)
		return false
	}
	if mw.deps.OnSave != nil {
		mw.deps.OnSave()
	}
	return true
}

// Show displays the window and brings it to front
func (mw *MainWindow) Show() {
	mw.window.Show()
	mw.window.RequestFocus()
}

// Hide hides the window
func (mw *MainWindow) Hide() {
	mw.window.Hide()
}

// Window returns the underlying fyne window
func (mw *MainWindow) Window() fyne.Window {
	return mw.window
}

func boldLabel(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

var (
	padIdle    = color.NRGBA{R: 0x30, G: 0x30, B: 0x38, A: 0xff}
	padHeld    = color.NRGBA{R: 0xe0, G: 0x6c, B: 0x1a, A: 0xff}
	padLast    = color.NRGBA{R: 0x5a, G: 0x40, B: 0x30, A: 0xff}
	padLock    = color.NRGBA{R: 0x1f, G: 0x6f, B: 0xb4, A: 0xff}
	beatOff    = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	beatOnBar  = color.NRGBA{R: 0xe0, G: 0x30, B: 0x30, A: 0xff}
	beatOnBeat = color.NRGBA{R: 0x30, G: 0xc0, B: 0x40, A: 0xff}
)
