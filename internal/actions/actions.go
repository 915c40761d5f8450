package actions

import (
	"sort"

	"github.com/google/uuid"
)

// ActionType selects the handler that runs an action
type ActionType string

const (
	ActionTypeAppleScript  ActionType = "applescript"
	ActionTypeShellCommand ActionType = "shell"
	ActionTypeSleep        ActionType = "sleep"
	ActionTypeMidi         ActionType = "midi"
	ActionTypeOBSScene     ActionType = "obs_scene"
)

// Action is one executable step bound to controller input
type Action struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Type              ActionType `json:"type"`
	Code              string     `json:"code"`
	ParentGroupID     string     `json:"parent_group_id"`     // Empty if root-level
	Order             int        `json:"order"`               // Position within parent
	WaitForCompletion bool       `json:"wait_for_completion"` // Block the rest of the group until done
}

// ActionGroup is a named sequence of actions and nested groups
type ActionGroup struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ParentGroupID string `json:"parent_group_id"`
	Order         int    `json:"order"`
}

// NewAction creates an action with a generated ID
func NewAction(name string, actionType ActionType, code string) *Action {
	return &Action{
		ID:   uuid.New().String(),
		Name: name,
		Type: actionType,
		Code: code,
	}
}

// NewActionGroup creates a group with a generated ID
func NewActionGroup(name string) *ActionGroup {
	return &ActionGroup{
		ID:   uuid.New().String(),
		Name: name,
	}
}

// Step is one entry of a group's contents in execution order
type Step struct {
	Action *Action
	Group  *ActionGroup
}

// Store holds the configured actions and groups
type Store struct {
	Actions []Action
	Groups  []ActionGroup
}

// NewStore wraps existing slices, which may be nil
func NewStore(actions []Action, groups []ActionGroup) *Store {
	return &Store{Actions: actions, Groups: groups}
}

// AddAction appends action as the last child of its parent
func (s *Store) AddAction(action *Action) {
	action.Order = s.nextOrder(action.ParentGroupID)
	s.Actions = append(s.Actions, *action)
}

// AddGroup appends group as the last child of its parent
func (s *Store) AddGroup(group *ActionGroup) {
	group.Order = s.nextOrder(group.ParentGroupID)
	s.Groups = append(s.Groups, *group)
}

func (s *Store) nextOrder(parentID string) int {
	next := 0
	for _, a := range s.Actions {
		if a.ParentGroupID == parentID && a.Order >= next {
			next = a.Order + 1
		}
	}
	for _, g := range s.Groups {
		if g.ParentGroupID == parentID && g.Order >= next {
			next = g.Order + 1
		}
	}
	return next
}

// Action returns the action with id, or nil
func (s *Store) Action(id string) *Action {
	for i := range s.Actions {
		if s.Actions[i].ID == id {
			return &s.Actions[i]
		}
	}
	return nil
}

// Group returns the group with id, or nil
func (s *Store) Group(id string) *ActionGroup {
	for i := range s.Groups {
		if s.Groups[i].ID == id {
			return &s.Groups[i]
		}
	}
	return nil
}

// Exists reports whether id names an action or a group
func (s *Store) Exists(id string) bool {
	return s.Action(id) != nil || s.Group(id) != nil
}

// Remove deletes an action, or a group together with everything inside it.
func (s *Store) Remove(id string) bool {
	if s.Action(id) != nil {
		s.Actions = filter(s.Actions, func(a Action) bool { return a.ID != id })
		return true
	}
	if s.Group(id) == nil {
		return false
	}

	doomed := map[string]bool{id: true}
	for grew := true; grew; {
		grew = false
		for _, g := range s.Groups {
			if doomed[g.ParentGroupID] && !doomed[g.ID] {
				doomed[g.ID] = true
				grew = true
			}
		}
	}
	s.Groups = filter(s.Groups, func(g ActionGroup) bool { return !doomed[g.ID] })
	s.Actions = filter(s.Actions, func(a Action) bool { return !doomed[a.ParentGroupID] })
	return true
}

// Steps returns the direct children of a group, groups first, each sorted by Order.
func (s *Store) Steps(groupID string) []Step {
	var groups []*ActionGroup
	for i := range s.Groups {
		if s.Groups[i].ParentGroupID == groupID {
			groups = append(groups, &s.Groups[i])
		}
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Order < groups[j].Order })

	var acts []*Action
	for i := range s.Actions {
		if s.Actions[i].ParentGroupID == groupID {
			acts = append(acts, &s.Actions[i])
		}
	}
	sort.SliceStable(acts, func(i, j int) bool { return acts[i].Order < acts[j].Order })

	steps := make([]Step, 0, len(groups)+len(acts))
	for _, g := range groups {
		steps = append(steps, Step{Group: g})
	}
	for _, a := range acts {
		steps = append(steps, Step{Action: a})
	}
	return steps
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := in[:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
