// Command gopher-mpd-mon shows the controller session in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/PixPMusic/gopher-mpd/internal/config"
	"github.com/PixPMusic/gopher-mpd/internal/controller"
	"github.com/PixPMusic/gopher-mpd/internal/midi"
	"github.com/PixPMusic/gopher-mpd/internal/tui"
)

func main() {
	in := flag.String("in", "", "MIDI input port (defaults to the configured port)")
	list := flag.Bool("list", false, "list MIDI ports and exit")
	debug := flag.Bool("debug", false, "write debug logs to gopher-mpd-mon.log")
	flag.Parse()

	midiManager := midi.NewManager()
	defer midiManager.Close()

	if *list {
		fmt.Println("Inputs:")
		for _, p := range midiManager.ListInPorts() {
			fmt.Println("  " + p)
		}
		fmt.Println("Outputs:")
		for _, p := range midiManager.ListOutPorts() {
			fmt.Println("  " + p)
		}
		return
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere
	logger := slog.New(slog.DiscardHandler)
	if *debug {
		f, err := tea.LogToFile("gopher-mpd-mon.log", "")
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *in != "" {
		cfg.Device.InPort = *in
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl, err := controller.New(ctx, cfg, midiManager, nil, logger)
	if err != nil {
		log.Fatalf("Failed to set up controller: %v", err)
	}
	defer ctrl.Close()

	feed := tui.NewFeed()
	ctrl.Engine.Observe(feed.PushSnapshot)
	ctrl.Panel.Subscribe(feed.PushPanel)
	feed.PushPanel(ctrl.Panel.State())

	go func() { _ = ctrl.Engine.Run(ctx) }()

	if err := ctrl.Connect(); err != nil {
		log.Fatalf("Failed to connect: %v (use -list to see ports)", err)
	}

	p := tea.NewProgram(tui.NewModel(feed, ctrl.CycleMode), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
