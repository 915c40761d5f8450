package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PixPMusic/gopher-mpd/internal/actions"
	"github.com/PixPMusic/gopher-mpd/internal/mpd"
	"github.com/google/uuid"
)

// AppDir is the directory name under the user config dir
const AppDir = "gopher-mpd"

// DeviceConfig selects the ports the controller is reached through
type DeviceConfig struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	InPort   string `json:"in_port"`   // MIDI input port name
	OutPort  string `json:"out_port"`  // MIDI output port for MIDI actions
	UseClock bool   `json:"use_clock"` // Drive the beat indicator from MIDI clock
}

// NewDeviceConfig creates a device config with a generated ID
func NewDeviceConfig() DeviceConfig {
	return DeviceConfig{
		ID:   uuid.New().String(),
		Name: "MPD226",
	}
}

// InputRef names one physical input, e.g. {"pad", 13}
type InputRef struct {
	Type   string `json:"type"`
	Number int    `json:"number"`
}

// Binding runs an action when an input event fires, optionally only in one mode.
type Binding struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Event    string   `json:"event"`          // Slot name, e.g. "pad-press"
	Input    InputRef `json:"input"`          // Zero Number matches any input of the slot
	Mode     string   `json:"mode,omitempty"` // Empty matches every mode
	ActionID string   `json:"action_id"`
}

// NewBinding creates a pad-press binding with a generated ID
func NewBinding(pad int, actionID string) Binding {
	return Binding{
		ID:       uuid.New().String(),
		Name:     fmt.Sprintf("Pad %d", pad),
		Event:    mpd.SlotPadPress.String(),
		Input:    InputRef{Type: mpd.Pad.String(), Number: pad},
		ActionID: actionID,
	}
}

// OBSConfig is the obs-websocket endpoint for scene actions
type OBSConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
}

// Config holds application configuration
type Config struct {
	FirstLaunchCompleted bool                  `json:"first_launch_completed"`
	OpenAtStartup        bool                  `json:"open_at_startup"`
	Device               DeviceConfig          `json:"device"`
	PressureRouting      string                `json:"pressure_routing"` // "last-pad" or "drop"
	Actions              []actions.Action      `json:"actions"`
	ActionGroups         []actions.ActionGroup `json:"action_groups"`
	Bindings             []Binding             `json:"bindings"`
	OBS                  OBSConfig             `json:"obs"`

	path string
}

// Default returns the configuration used before anything is saved
func Default() *Config {
	return &Config{
		Device:          NewDeviceConfig(),
		PressureRouting: mpd.RouteNameLastPad,
		Actions:         []actions.Action{},
		ActionGroups:    []actions.ActionGroup{},
		Bindings:        []Binding{},
	}
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, AppDir, "config.json"), nil
}

// Load reads the config from the user config dir
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path, returning defaults if it does not exist
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		cfg.path = path
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.path = path

	if cfg.Device.ID == "" {
		cfg.Device.ID = uuid.New().String()
	}
	if cfg.Actions == nil {
		cfg.Actions = []actions.Action{}
	}
	if cfg.ActionGroups == nil {
		cfg.ActionGroups = []actions.ActionGroup{}
	}
	if cfg.Bindings == nil {
		cfg.Bindings = []Binding{}
	}
	return cfg, nil
}

// Save writes the config back to where it was loaded from
func (c *Config) Save() error {
	if c.path == "" {
		path, err := ConfigPath()
		if err != nil {
			return err
		}
		c.path = path
	}
	return c.SaveTo(c.path)
}

// SaveTo writes the config to path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Path returns the file the config is saved to, empty before Load or Save
func (c *Config) Path() string { return c.path }

// PressureRoute resolves the configured channel pressure strategy
func (c *Config) PressureRoute() (mpd.PressureRoute, error) {
	return mpd.ParsePressureRoute(c.PressureRouting)
}

// ActionStore returns a store over the configured actions and groups
func (c *Config) ActionStore() *actions.Store {
	return actions.NewStore(c.Actions, c.ActionGroups)
}

// SyncActionStore copies actions and groups back from a store
func (c *Config) SyncActionStore(store *actions.Store) {
	c.Actions = store.Actions
	c.ActionGroups = store.Groups
}

// AddBinding appends a binding after validating it
func (c *Config) AddBinding(b Binding) error {
	if _, err := b.Compile(); err != nil {
		return err
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	c.Bindings = append(c.Bindings, b)
	return nil
}

// RemoveBinding removes a binding by ID
func (c *Config) RemoveBinding(id string) bool {
	for i, b := range c.Bindings {
		if b.ID == id {
			c.Bindings = append(c.Bindings[:i], c.Bindings[i+1:]...)
			return true
		}
	}
	return false
}

// Validate checks the pressure routing and every binding, including that
// bound action ids exist.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.PressureRoute(); err != nil {
		errs = append(errs, err)
	}
	store := c.ActionStore()
	for _, b := range c.Bindings {
		if _, err := b.Compile(); err != nil {
			errs = append(errs, err)
			continue
		}
		if !store.Exists(b.ActionID) {
			errs = append(errs, fmt.Errorf("binding %q: %w: %s", b.Name, actions.ErrUnknownAction, b.ActionID))
		}
	}
	return errors.Join(errs...)
}
