package actions

import (
	"context"
	"fmt"
)

// Executor routes actions to the handler for their type
type Executor struct {
	handlers map[ActionType]ActionHandler
}

// NewExecutor creates an executor with the given handlers
func NewExecutor(handlers map[ActionType]ActionHandler) *Executor {
	return &Executor{handlers: handlers}
}

// DefaultHandlers returns the built-in handlers. sender may be nil when no
// MIDI output is open; outPort is where MIDI actions without a port go.
func DefaultHandlers(sender Sender, outPort, obsAddr, obsPassword string) map[ActionType]ActionHandler {
	midiHandler := NewMidiHandler(sender)
	midiHandler.DefaultPort = outPort
	return map[ActionType]ActionHandler{
		ActionTypeAppleScript:  &AppleScriptHandler{},
		ActionTypeShellCommand: &ShellHandler{},
		ActionTypeSleep:        &SleepHandler{},
		ActionTypeMidi:         midiHandler,
		ActionTypeOBSScene:     NewOBSHandler(obsAddr, obsPassword),
	}
}

func (e *Executor) handler(t ActionType) (ActionHandler, error) {
	h, ok := e.handlers[t]
	if !ok {
		return nil, fmt.Errorf("unknown action type: %s", t)
	}
	return h, nil
}

// Execute runs an action and returns its output
func (e *Executor) Execute(ctx context.Context, action *Action) (string, error) {
	if action == nil {
		return "", fmt.Errorf("action is nil")
	}
	h, err := e.handler(action.Type)
	if err != nil {
		return "", err
	}
	return h.Execute(ctx, action.Code)
}

// Validate checks an action's code with its handler
func (e *Executor) Validate(action *Action) error {
	h, err := e.handler(action.Type)
	if err != nil {
		return err
	}
	return h.Validate(action.Code)
}

// Supported reports whether actions of type t can run here
func (e *Executor) Supported(t ActionType) bool {
	h, err := e.handler(t)
	return err == nil && h.IsSupported()
}
