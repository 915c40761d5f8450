package window

import (
	"testing"

	"github.com/PixPMusic/gopher-mpd/internal/actions"
	"github.com/PixPMusic/gopher-mpd/internal/config"
	"github.com/PixPMusic/gopher-mpd/internal/engine"
	"github.com/PixPMusic/gopher-mpd/internal/mpd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadTapMessagesResolveToThePad(t *testing.T) {
	reg := mpd.MustRegistry(mpd.MPD226Layout)
	pad, err := reg.Pad(7)
	require.NoError(t, err)

	msgs := padTapMessages(*pad)
	require.Len(t, msgs, 2)

	c := mpd.NewClassifier(reg, nil)
	press := c.Classify(&msgs[0], nil)
	require.NoError(t, press.Err)
	assert.Equal(t, mpd.CategoryNoteOn, press.Category)
	assert.Equal(t, 7, press.Input.Number)

	release := c.Classify(&msgs[1], nil)
	require.NoError(t, release.Err)
	assert.Equal(t, mpd.CategoryNoteOff, release.Category)
}

func TestPadColor(t *testing.T) {
	snap := mpd.Snapshot{LastPad: 5}

	assert.Equal(t, padHeld, padColor(mpd.Input{Number: 2, Pressed: true}, snap, mpd.DefaultLockPads))
	assert.Equal(t, padLast, padColor(mpd.Input{Number: 5}, snap, mpd.DefaultLockPads))
	assert.Equal(t, padIdle, padColor(mpd.Input{Number: 13}, snap, mpd.DefaultLockPads))

	snap.Unlocked = true
	assert.Equal(t, padLock, padColor(mpd.Input{Number: 13}, snap, mpd.DefaultLockPads))
	assert.Equal(t, padHeld, padColor(mpd.Input{Number: 13, Pressed: true}, snap, mpd.DefaultLockPads))
}

func TestTargetText(t *testing.T) {
	assert.Equal(t, "No input yet", targetText(mpd.Snapshot{}))

	knob := mpd.Input{Type: mpd.Knob, Number: 2, Name: "Knob 2", Value: 64}
	assert.Equal(t, "Knob 2 = 64", targetText(mpd.Snapshot{Target: &knob}))

	pad := mpd.Input{Type: mpd.Pad, Number: 3, Name: "Pad 3", Pressure: 40}
	assert.Equal(t, "Pad 3  pressure 40", targetText(mpd.Snapshot{Target: &pad}))
}

func TestBeatColor(t *testing.T) {
	assert.Equal(t, beatOff, beatColor(engine.BeatOff))
	assert.Equal(t, beatOnBar, beatColor(engine.BeatBar))
	assert.Equal(t, beatOnBeat, beatColor(engine.Beat))
}

func TestFlatTree(t *testing.T) {
	store := actions.NewStore(nil, nil)
	group := actions.NewActionGroup("Intro")
	store.AddGroup(group)
	inner := actions.NewAction("Scene", actions.ActionTypeOBSScene, "Intro")
	inner.ParentGroupID = group.ID
	store.AddAction(inner)
	store.AddAction(actions.NewAction("Echo", actions.ActionTypeShellCommand, "echo hi"))

	items := flatTree(store)
	require.Len(t, items, 3)
	assert.Equal(t, group.ID, items[0].id())
	assert.Equal(t, 0, items[0].Depth)
	assert.Equal(t, "Scene", items[1].Action.Name)
	assert.Equal(t, 1, items[1].Depth)
	assert.Equal(t, "Echo", items[2].Action.Name)
	assert.Equal(t, 0, items[2].Depth)
}

func TestActionChoices(t *testing.T) {
	store := actions.NewStore(nil, nil)
	group := actions.NewActionGroup("Both")
	store.AddGroup(group)
	action := actions.NewAction("Echo", actions.ActionTypeShellCommand, "echo hi")
	store.AddAction(action)

	names, ids := actionChoices(store)
	require.Len(t, names, 3)
	require.Len(t, ids, 3)
	assert.Equal(t, noneChoice, names[0])
	assert.Equal(t, "", ids[0])

	assert.Equal(t, "Echo", choiceFor(names, ids, action.ID))
	assert.Equal(t, "▸ Both", choiceFor(names, ids, group.ID))
	assert.Equal(t, noneChoice, choiceFor(names, ids, "missing"))
}

func TestSetBindingEventKeepsInputTypeConsistent(t *testing.T) {
	b := config.NewBinding(3, "a")

	setBindingEvent(&b, mpd.SlotKnobChange.String())
	assert.Equal(t, mpd.Knob.String(), b.Input.Type)
	assert.Equal(t, 3, b.Input.Number)

	setBindingEvent(&b, mpd.SlotBeat.String())
	assert.Equal(t, config.InputRef{}, b.Input)

	_, err := b.Compile()
	assert.NoError(t, err)
}

func TestModeChoices(t *testing.T) {
	choices := modeChoices()
	assert.Equal(t, anyModeChoice, choices[0])
	assert.Len(t, choices, len(mpd.Modes())+1)
}

func TestWithCurrent(t *testing.T) {
	ports := []string{"MPD226 Port A", "IAC Bus 1"}
	assert.Equal(t, ports, withCurrent(ports, ""))
	assert.Equal(t, ports, withCurrent(ports, "IAC Bus 1"))
	assert.Equal(t, []string{"MPD226 Port A", "IAC Bus 1", "Unplugged"}, withCurrent(ports, "Unplugged"))
}
