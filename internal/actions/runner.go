package actions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrUnknownAction is returned when an id names neither an action nor a group
var ErrUnknownAction = errors.New("unknown action")

// Runner executes actions and groups off the caller's goroutine.
type Runner struct {
	ctx context.Context
	log *slog.Logger

	mu    sync.RWMutex
	store *Store
	exec  *Executor

	wg sync.WaitGroup
}

// NewRunner creates a runner whose work is cancelled with ctx
func NewRunner(ctx context.Context, exec *Executor, store *Store, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{ctx: ctx, exec: exec, store: store, log: logger}
}

// SetStore swaps the actions the runner resolves ids against
func (r *Runner) SetStore(store *Store) {
	r.mu.Lock()
	r.store = store
	r.mu.Unlock()
}

// SetExecutor swaps the executor used for actions started from now on
func (r *Runner) SetExecutor(exec *Executor) {
	r.mu.Lock()
	r.exec = exec
	r.mu.Unlock()
}

// Run starts the action or group with id and returns without waiting.
// Group children run in order; a child with WaitForCompletion blocks the
// ones after it, others are started and left running.
func (r *Runner) Run(id string) error {
	r.mu.RLock()
	store, exec := r.store, r.exec
	r.mu.RUnlock()

	if store == nil {
		return fmt.Errorf("%w: %s", ErrUnknownAction, id)
	}
	if action := store.Action(id); action != nil {
		a := *action
		r.goExec(exec, &a)
		return nil
	}
	if group := store.Group(id); group != nil {
		steps := flatten(store, group.ID)
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			for _, a := range steps {
				if r.ctx.Err() != nil {
					return
				}
				if a.WaitForCompletion {
					r.exec1(exec, a)
				} else {
					r.goExec(exec, a)
				}
			}
		}()
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownAction, id)
}

// Wait blocks until every started action has finished
func (r *Runner) Wait() { r.wg.Wait() }

func (r *Runner) goExec(exec *Executor, a *Action) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.exec1(exec, a)
	}()
}

func (r *Runner) exec1(exec *Executor, a *Action) {
	out, err := exec.Execute(r.ctx, a)
	if err != nil {
		r.log.Error("action failed", "action", a.Name, "type", a.Type, "err", err)
		return
	}
	r.log.Debug("action done", "action", a.Name, "output", out)
}

// flatten copies a group's actions in execution order so the goroutine
// does not read the store.
func flatten(store *Store, groupID string) []*Action {
	var out []*Action
	for _, step := range store.Steps(groupID) {
		if step.Group != nil {
			out = append(out, flatten(store, step.Group.ID)...)
			continue
		}
		a := *step.Action
		out = append(out, &a)
	}
	return out
}
