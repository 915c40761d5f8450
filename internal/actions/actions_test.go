package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreOrderingAndSteps(t *testing.T) {
	s := NewStore(nil, nil)

	group := NewActionGroup("Intro")
	s.AddGroup(group)
	first := NewAction("first", ActionTypeSleep, "0")
	first.ParentGroupID = group.ID
	s.AddAction(first)
	second := NewAction("second", ActionTypeSleep, "0")
	second.ParentGroupID = group.ID
	s.AddAction(second)
	root := NewAction("root", ActionTypeShellCommand, "true")
	s.AddAction(root)

	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)
	assert.Equal(t, 1, root.Order, "orders are per parent")

	steps := s.Steps("")
	require.Len(t, steps, 2)
	assert.Equal(t, group.ID, steps[0].Group.ID, "groups come first")
	assert.Equal(t, root.ID, steps[1].Action.ID)

	inner := s.Steps(group.ID)
	require.Len(t, inner, 2)
	assert.Equal(t, "first", inner[0].Action.Name)
	assert.Equal(t, "second", inner[1].Action.Name)

	assert.True(t, s.Exists(group.ID))
	assert.True(t, s.Exists(root.ID))
	assert.False(t, s.Exists("missing"))
}

func TestStoreRemoveGroupCascades(t *testing.T) {
	s := NewStore(nil, nil)
	outer := NewActionGroup("outer")
	s.AddGroup(outer)
	inner := NewActionGroup("inner")
	inner.ParentGroupID = outer.ID
	s.AddGroup(inner)
	deep := NewAction("deep", ActionTypeSleep, "0")
	deep.ParentGroupID = inner.ID
	s.AddAction(deep)
	keep := NewAction("keep", ActionTypeSleep, "0")
	s.AddAction(keep)

	assert.True(t, s.Remove(outer.ID))
	assert.Nil(t, s.Group(inner.ID))
	assert.Nil(t, s.Action(deep.ID))
	assert.NotNil(t, s.Action(keep.ID))

	assert.True(t, s.Remove(keep.ID))
	assert.False(t, s.Remove(keep.ID))
	assert.Empty(t, s.Actions)
}
