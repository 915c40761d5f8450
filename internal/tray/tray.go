package tray

import (
	"bytes"
	"image/color"
	"image/png"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/PixPMusic/gopher-mpd/internal/config"
	"github.com/PixPMusic/gopher-mpd/internal/glyph"
	"github.com/PixPMusic/gopher-mpd/internal/startup"
)

// Icon geometry in pixels
const (
	iconSide     = 64
	iconTextSize = 30
)

// Callbacks for tray menu actions
type Callbacks struct {
	OnOpen func()
	OnQuit func()
}

// Setup initializes the system tray using Fyne's built-in support
func Setup(app fyne.App, cfg *config.Config, logger *slog.Logger, callbacks Callbacks) {
	desk, ok := app.(desktop.App)
	if !ok {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}

	openItem := fyne.NewMenuItem("Open GopherMPD", func() {
		if callbacks.OnOpen != nil {
			callbacks.OnOpen()
		}
	})

	startupItem := fyne.NewMenuItem("Open at Startup", nil)
	startupItem.Checked = cfg.OpenAtStartup

	quitItem := fyne.NewMenuItem("Quit", func() {
		if callbacks.OnQuit != nil {
			callbacks.OnQuit()
		}
	})

	menu := fyne.NewMenu("GopherMPD",
		openItem,
		fyne.NewMenuItemSeparator(),
		startupItem,
		fyne.NewMenuItemSeparator(),
		quitItem,
	)

	// Set the action after menu is created so we can refresh it
	startupItem.Action = func() {
		enable := !startupItem.Checked
		if err := toggleStartup(enable); err != nil {
			logger.Error("failed to change launch at login", "enable", enable, "err", err)
			return
		}
		startupItem.Checked = enable
		cfg.OpenAtStartup = enable
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", "err", err)
		}
		menu.Refresh()
	}

	desk.SetSystemTrayMenu(menu)

	icon, err := Icon(theme.DefaultTextBoldFont().Content())
	if err != nil {
		logger.Warn("using default tray icon", "err", err)
		return
	}
	desk.SetSystemTrayIcon(icon)
}

func toggleStartup(enable bool) error {
	if enable {
		return startup.Enable()
	}
	return startup.Disable()
}

// Icon renders the tray icon, a white "M" on a dark disc, as a PNG resource.
func Icon(fontData []byte) (fyne.Resource, error) {
	r, err := glyph.New(fontData)
	if err != nil {
		return nil, err
	}
	img, err := r.Badge("M", iconSide, iconTextSize, color.NRGBA{R: 0x22, G: 0x22, B: 0x2a, A: 0xff}, color.White)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return fyne.NewStaticResource("icon.png", buf.Bytes()), nil
}
