package mpd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeCycle(t *testing.T) {
	assert.Equal(t, ModeUI, ModeDefault.Next())
	assert.Equal(t, ModeTransport, ModeUI.Next())
	assert.Equal(t, ModeDefault, ModeTransport.Next())
	assert.Equal(t, ModeTransport, ModeDefault.Prev())
	assert.Equal(t, ModeDefault, ModeDefault.Shift(-3))
	assert.Equal(t, ModeUI, ModeDefault.Shift(-5))

	for _, m := range Modes() {
		assert.Equal(t, m, m.Next().Prev())
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	assert.Equal(t, "UI MODE", ModeUI.Hint())
	assert.False(t, Mode(7).Valid())
	_, err := ParseMode("edit")
	assert.Error(t, err)
}

func setSliders(t *testing.T, reg *Registry, values ...int) {
	t.Helper()
	for i, v := range values {
		s, err := reg.Slider(i + 1)
		require.NoError(t, err)
		require.NoError(t, s.SetValue(v))
	}
}

func TestUnlockFollowsSliders(t *testing.T) {
	reg := MustRegistry(MPD226Layout)
	mm := NewModeMachine()

	assert.False(t, mm.Recompute(reg.All(Slider)))
	assert.False(t, mm.Unlocked(), "sliders never moved")

	setSliders(t, reg, 64, 64, 64)
	mm.Recompute(reg.All(Slider))
	assert.False(t, mm.Unlocked(), "one slider has not reported")

	setSliders(t, reg, 64, 64, 64, 64)
	assert.True(t, mm.Recompute(reg.All(Slider)))
	assert.True(t, mm.Unlocked())

	setSliders(t, reg, 64, 64, 64, 65)
	assert.True(t, mm.Recompute(reg.All(Slider)))
	assert.False(t, mm.Unlocked())

	setSliders(t, reg, 0, 0, 0, 0)
	mm.Recompute(reg.All(Slider))
	assert.True(t, mm.Unlocked(), "zero is a valid aligned value")
}

func TestRemapChord(t *testing.T) {
	reg := MustRegistry(MPD226Layout)
	mm := NewModeMachine()
	nav, _ := reg.Pad(4)
	back, _ := reg.Pad(1)
	lockA, _ := reg.Pad(13)
	lockB, _ := reg.Pad(16)

	lockA.Pressed, lockB.Pressed = true, true
	_, _, changed := mm.Remap(reg, nav)
	assert.False(t, changed, "locked")

	setSliders(t, reg, 10, 10, 10, 10)
	mm.Recompute(reg.All(Slider))

	from, to, changed := mm.Remap(reg, nav)
	require.True(t, changed)
	assert.Equal(t, ModeDefault, from)
	assert.Equal(t, ModeUI, to)

	_, to, _ = mm.Remap(reg, back)
	assert.Equal(t, ModeDefault, to)
	_, to, _ = mm.Remap(reg, back)
	assert.Equal(t, ModeTransport, to, "wraps backwards")

	lockB.Pressed = false
	_, _, changed = mm.Remap(reg, nav)
	assert.False(t, changed, "chord needs every lock pad")

	lockB.Pressed = true
	other, _ := reg.Pad(7)
	_, _, changed = mm.Remap(reg, other)
	assert.False(t, changed)

	assert.True(t, mm.Unlocked(), "remapping does not consume the unlock")
}

func TestSetModeValidates(t *testing.T) {
	mm := NewModeMachine()
	assert.ErrorIs(t, mm.SetMode(Mode(-1)), ErrTypeContract)
	assert.Equal(t, ModeDefault, mm.Mode())
	require.NoError(t, mm.SetMode(ModeTransport))
	assert.Equal(t, ModeTransport, mm.Mode())
}
