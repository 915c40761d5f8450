// Package controller assembles the input pipeline for one MPD226 from
// configuration: host panel, session, handlers, action runner, engine and
// the MIDI listener that feeds it.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/PixPMusic/gopher-mpd/internal/actions"
	"github.com/PixPMusic/gopher-mpd/internal/config"
	"github.com/PixPMusic/gopher-mpd/internal/engine"
	"github.com/PixPMusic/gopher-mpd/internal/handlers"
	"github.com/PixPMusic/gopher-mpd/internal/host"
	"github.com/PixPMusic/gopher-mpd/internal/midi"
	"github.com/PixPMusic/gopher-mpd/internal/mpd"
)

// Ports is the MIDI transport the controller listens and sends through
type Ports interface {
	PortNumber(name string) int
	StartListening(name string, l midi.Listener) (func(), error)
	actions.Sender
}

// Controller owns the running pipeline.
type Controller struct {
	Panel   *host.Panel
	Session *mpd.Session
	Engine  *engine.Engine
	Runner  *actions.Runner

	cfg      *config.Config
	ports    Ports
	log      *slog.Logger
	bindings *handlers.Bindings

	mu   sync.Mutex
	exec *actions.Executor
	stop func()
}

// New builds the pipeline. Nothing is read from MIDI until Connect.
func New(ctx context.Context, cfg *config.Config, ports Ports, clock host.Clock, logger *slog.Logger) (*Controller, error) {
	if logger == nil {
		logger = slog.Default()
	}
	route, err := cfg.PressureRoute()
	if err != nil {
		return nil, err
	}

	panel := host.NewPanel(ports.PortNumber(cfg.Device.InPort), clock, logger)
	session, err := mpd.NewSession(panel, mpd.WithLogger(logger), mpd.WithPressureRoute(route))
	if err != nil {
		return nil, err
	}

	c := &Controller{
		Panel:   panel,
		Session: session,
		cfg:     cfg,
		ports:   ports,
		log:     logger,
	}
	c.exec = c.newExecutor()
	c.Runner = actions.NewRunner(ctx, c.exec, c.actionStore(), logger)
	c.bindings = handlers.NewBindings(slices.Clone(cfg.Bindings), c.Runner, logger)

	if err := c.register(); err != nil {
		return nil, err
	}
	session.Init()
	c.Engine = engine.New(session, clock, logger)

	logger.Info("controller ready", "device", cfg.Device.Name, "bindings", c.bindings.Count())
	return c, nil
}

func (c *Controller) register() error {
	if err := handlers.RegisterLogging(c.Session, c.log); err != nil {
		return err
	}
	if err := handlers.NewUI(c.Panel, c.log).Register(c.Session); err != nil {
		return err
	}
	if err := handlers.RegisterBeat(c.Session, c.Panel); err != nil {
		return err
	}
	return c.bindings.Register(c.Session)
}

func (c *Controller) newExecutor() *actions.Executor {
	return actions.NewExecutor(actions.DefaultHandlers(c.ports, c.cfg.Device.OutPort, c.cfg.OBS.Addr, c.cfg.OBS.Password))
}

// actionStore copies the configured actions so later edits do not race the runner
func (c *Controller) actionStore() *actions.Store {
	return actions.NewStore(slices.Clone(c.cfg.Actions), slices.Clone(c.cfg.ActionGroups))
}

// Connect starts listening on the configured input port, replacing any
// previous listener.
func (c *Controller) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stop != nil {
		c.stop()
		c.stop = nil
	}

	in := c.cfg.Device.InPort
	l := midi.Listener{OnMessage: c.Engine.Submit}
	if c.cfg.Device.UseClock {
		l.OnRealtime = c.Engine.Realtime
	}
	stop, err := c.ports.StartListening(in, l)
	if err != nil {
		return fmt.Errorf("failed to connect to %q: %w", in, err)
	}
	c.stop = stop
	c.log.Info("listening", "port", in, "clock", c.cfg.Device.UseClock)
	return nil
}

// Reload applies the current config: pressure routing, bindings, actions,
// action handler settings and the input port.
func (c *Controller) Reload() error {
	route, err := c.cfg.PressureRoute()
	if err != nil {
		return err
	}
	bindings := slices.Clone(c.cfg.Bindings)
	c.Panel.SetPort(c.ports.PortNumber(c.cfg.Device.InPort))
	c.Engine.Do(func(s *mpd.Session) {
		s.SetPressureRoute(route)
		c.bindings.Set(bindings)
		s.Init()
	})

	exec := c.newExecutor()
	c.mu.Lock()
	c.exec = exec
	c.mu.Unlock()
	c.Runner.SetExecutor(exec)
	c.Runner.SetStore(c.actionStore())

	return c.Connect()
}

// Close stops listening. Actions already started keep running.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
}

// CycleMode moves the session to the next mode
func (c *Controller) CycleMode() {
	c.Engine.Do(func(s *mpd.Session) {
		if err := s.SetMode(s.Mode().Next()); err != nil {
			c.log.Error("failed to change mode", "err", err)
		}
	})
}

func (c *Controller) executor() *actions.Executor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exec
}

// Execute runs one action directly with the current handlers
func (c *Controller) Execute(ctx context.Context, a *actions.Action) (string, error) {
	return c.executor().Execute(ctx, a)
}

// Validate checks an action with the current handlers
func (c *Controller) Validate(a *actions.Action) error {
	return c.executor().Validate(a)
}

// Supported reports whether actions of type t can run with the current handlers
func (c *Controller) Supported(t actions.ActionType) bool {
	return c.executor().Supported(t)
}
