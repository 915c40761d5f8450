package actions

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu   sync.Mutex
	runs []string
}

func (h *recordingHandler) Execute(_ context.Context, code string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.runs = append(h.runs, code)
	return code, nil
}

func (h *recordingHandler) Validate(string) error { return nil }
func (h *recordingHandler) IsSupported() bool     { return true }

func (h *recordingHandler) calls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.runs...)
}

func newTestRunner(t *testing.T, store *Store) (*Runner, *recordingHandler) {
	t.Helper()
	rec := &recordingHandler{}
	exec := NewExecutor(map[ActionType]ActionHandler{ActionTypeShellCommand: rec})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRunner(context.Background(), exec, store, logger), rec
}

func TestRunnerRunsGroupsInOrder(t *testing.T) {
	store := NewStore(nil, nil)
	group := NewActionGroup("scene")
	store.AddGroup(group)
	for _, code := range []string{"a", "b", "c"} {
		a := NewAction(code, ActionTypeShellCommand, code)
		a.ParentGroupID = group.ID
		a.WaitForCompletion = true
		store.AddAction(a)
	}

	r, rec := newTestRunner(t, store)
	require.NoError(t, r.Run(group.ID))
	r.Wait()

	assert.Equal(t, []string{"a", "b", "c"}, rec.calls())
}

func TestRunnerSingleActionAndUnknown(t *testing.T) {
	store := NewStore(nil, nil)
	a := NewAction("one", ActionTypeShellCommand, "one")
	store.AddAction(a)

	r, rec := newTestRunner(t, store)
	require.NoError(t, r.Run(a.ID))
	r.Wait()
	assert.Equal(t, []string{"one"}, rec.calls())

	assert.ErrorIs(t, r.Run("nope"), ErrUnknownAction)

	r.SetStore(nil)
	assert.ErrorIs(t, r.Run(a.ID), ErrUnknownAction)
}

func TestExecutorUnknownType(t *testing.T) {
	exec := NewExecutor(map[ActionType]ActionHandler{})
	_, err := exec.Execute(context.Background(), &Action{Type: "teleport"})
	assert.Error(t, err)
	_, err = exec.Execute(context.Background(), nil)
	assert.Error(t, err)
	assert.False(t, exec.Supported(ActionTypeSleep))

	exec = NewExecutor(DefaultHandlers(nil, "", "", ""))
	assert.True(t, exec.Supported(ActionTypeSleep))
	assert.False(t, exec.Supported(ActionTypeMidi), "no sender")
	assert.False(t, exec.Supported(ActionTypeOBSScene), "no address")
	assert.NoError(t, exec.Validate(&Action{Type: ActionTypeSleep, Code: "1"}))
}

func TestRunnerSetExecutor(t *testing.T) {
	store := NewStore(nil, nil)
	a := NewAction("one", ActionTypeShellCommand, "one")
	store.AddAction(a)

	r, first := newTestRunner(t, store)
	second := &recordingHandler{}
	r.SetExecutor(NewExecutor(map[ActionType]ActionHandler{ActionTypeShellCommand: second}))

	require.NoError(t, r.Run(a.ID))
	r.Wait()
	assert.Empty(t, first.calls())
	assert.Equal(t, []string{"one"}, second.calls())
}
