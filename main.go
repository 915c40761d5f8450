package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/PixPMusic/gopher-mpd/internal/config"
	"github.com/PixPMusic/gopher-mpd/internal/controller"
	"github.com/PixPMusic/gopher-mpd/internal/midi"
	"github.com/PixPMusic/gopher-mpd/internal/tray"
	"github.com/PixPMusic/gopher-mpd/internal/window"
)

func main() {
	debug := flag.Bool("debug", false, "log every handled message")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("config has problems, invalid bindings are skipped", "err", err)
	}

	// Initialize MIDI manager
	midiManager := midi.NewManager()
	defer midiManager.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl, err := controller.New(ctx, cfg, midiManager, nil, logger)
	if err != nil {
		log.Fatalf("Failed to set up controller: %v", err)
	}
	defer ctrl.Close()

	// Create Fyne app
	fyneApp := app.NewWithID("com.pixpmusic.gophermpd")

	// Create main window; it must observe the engine before it runs
	mainWindow := window.NewMainWindow(fyneApp, cfg, window.Deps{
		Engine:   ctrl.Engine,
		Panel:    ctrl.Panel,
		Ports:    midiManager,
		Executor: ctrl,
		Runner:   ctrl.Runner,
		Logger:   logger,
		OnSave: func() {
			if err := ctrl.Reload(); err != nil {
				logger.Error("failed to apply config", "err", err)
			}
		},
	})

	go func() {
		if err := ctrl.Engine.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("engine stopped", "err", err)
		}
	}()

	if err := ctrl.Connect(); err != nil {
		logger.Warn("controller not connected, pick a port on the Device tab", "err", err)
	}

	// Setup system tray
	tray.Setup(fyneApp, cfg, logger, tray.Callbacks{
		OnOpen: func() {
			mainWindow.Show()
		},
		OnQuit: func() {
			fyneApp.Quit()
		},
	})

	// Show window if first launch, otherwise run in background
	if !cfg.FirstLaunchCompleted {
		cfg.FirstLaunchCompleted = true
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", "err", err)
		}
		mainWindow.Show()
	}

	fyneApp.Lifecycle().SetOnStopped(func() {
		logger.Info("shutting down")
		cancel()
	})

	// Run the Fyne app (this blocks until app.Quit is called)
	fyneApp.Run()
}
