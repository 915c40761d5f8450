package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/andreykaipov/goobs"
	"github.com/andreykaipov/goobs/api/requests/scenes"
)

// SceneSwitcher changes the program scene of a streaming app
type SceneSwitcher interface {
	SetScene(name string) error
	Close() error
}

// DialFunc opens a scene switcher connection
type DialFunc func(addr, password string) (SceneSwitcher, error)

// OBSHandler switches the OBS program scene named by the action code.
// It opens a websocket connection per execution.
type OBSHandler struct {
	Addr     string
	Password string
	Dial     DialFunc
}

// NewOBSHandler connects through obs-websocket with goobs
func NewOBSHandler(addr, password string) *OBSHandler {
	return &OBSHandler{Addr: addr, Password: password, Dial: dialOBS}
}

func (h *OBSHandler) IsSupported() bool { return NormalizeOBSAddr(h.Addr) != "" }

func (h *OBSHandler) Execute(ctx context.Context, code string) (string, error) {
	if err := h.Validate(code); err != nil {
		return "", err
	}
	if !h.IsSupported() {
		return "", fmt.Errorf("OBS address not configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	scene := strings.TrimSpace(code)
	sw, err := h.Dial(NormalizeOBSAddr(h.Addr), h.Password)
	if err != nil {
		return "", fmt.Errorf("failed to connect to OBS: %w", err)
	}
	defer sw.Close()

	if err := sw.SetScene(scene); err != nil {
		return "", fmt.Errorf("failed to switch scene to %q: %w", scene, err)
	}
	return fmt.Sprintf("Switched to scene %s", scene), nil
}

func (h *OBSHandler) Validate(code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("scene name required")
	}
	return nil
}

// NormalizeOBSAddr strips a ws:// or wss:// scheme, which goobs adds itself.
func NormalizeOBSAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	for _, scheme := range []string{"ws://", "wss://"} {
		addr = strings.TrimPrefix(addr, scheme)
	}
	return addr
}

type goobsSwitcher struct {
	client *goobs.Client
}

func dialOBS(addr, password string) (SceneSwitcher, error) {
	var opts []goobs.Option
	if password != "" {
		opts = append(opts, goobs.WithPassword(password))
	}
	client, err := goobs.New(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &goobsSwitcher{client: client}, nil
}

func (s *goobsSwitcher) SetScene(name string) error {
	_, err := s.client.Scenes.SetCurrentProgramScene(&scenes.SetCurrentProgramSceneParams{
		SceneName: &name,
	})
	return err
}

func (s *goobsSwitcher) Close() error {
	return s.client.Disconnect()
}
