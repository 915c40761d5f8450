package mpd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolvesEveryLayoutEntry(t *testing.T) {
	reg := MustRegistry(MPD226Layout)

	for _, def := range MPD226Layout.Inputs {
		byID, err := reg.ID(def.Type, def.ID)
		require.NoError(t, err)
		byNumber, err := reg.Number(def.Type, def.Number)
		require.NoError(t, err)

		assert.Same(t, byID, byNumber, "%s %d", def.Type, def.Number)
		assert.Equal(t, def.Name, byID.Name)
	}

	assert.Equal(t, 16, reg.Count(Pad))
	assert.Equal(t, 4, reg.Count(Knob))
	assert.Equal(t, 4, reg.Count(Slider))
	assert.Equal(t, 4, reg.Count(Switch))
	assert.Equal(t, 3, reg.Count(Transport))
}

func TestRegistryPadIDs(t *testing.T) {
	reg := MustRegistry(MPD226Layout)

	pad, err := reg.Lookup(Pad, ByID(37))
	require.NoError(t, err)
	assert.Equal(t, 1, pad.Number)

	pad, err = reg.Lookup(Pad, ByNumber(16))
	require.NoError(t, err)
	assert.Equal(t, 53, pad.ID)

	sw, err := reg.Switch(3)
	require.NoError(t, err)
	assert.Equal(t, "1/16", sw.Name)

	stop, err := reg.Transport(TransportStop)
	require.NoError(t, err)
	assert.Equal(t, 117, stop.ID)
}

func TestPadGridCoversEveryPad(t *testing.T) {
	reg := MustRegistry(MPD226Layout)
	seen := map[int]bool{}
	for _, row := range MPD226PadGrid {
		for _, n := range row {
			_, err := reg.Pad(n)
			require.NoError(t, err)
			seen[n] = true
		}
	}
	assert.Len(t, seen, reg.Count(Pad))
	assert.Equal(t, 13, MPD226PadGrid[0][0])
	assert.Equal(t, 4, MPD226PadGrid[3][3])
}

func TestRegistryMissesAreNotFound(t *testing.T) {
	reg := MustRegistry(MPD226Layout)

	cases := []struct {
		name string
		t    InputType
		key  Key
	}{
		{"unknown pad id", Pad, ByID(99)},
		{"pad number zero", Pad, ByNumber(0)},
		{"pad number past end", Pad, ByNumber(17)},
		{"knob id used as pad", Pad, ByID(3)},
		{"pad id used as knob", Knob, ByID(37)},
		{"slider id used as switch", Switch, ByID(20)},
		{"invalid type", InputType(42), ByNumber(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, err := reg.Lookup(tc.t, tc.key)
			assert.Nil(t, in)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestRegistryLookupDoesNotMutate(t *testing.T) {
	reg := MustRegistry(MPD226Layout)

	first, err := reg.Pad(5)
	require.NoError(t, err)
	before := *first

	for i := 0; i < 3; i++ {
		again, err := reg.ID(Pad, first.ID)
		require.NoError(t, err)
		assert.Same(t, first, again)
	}
	assert.Equal(t, before, *first)
}

func TestNewRegistryRejectsBadLayouts(t *testing.T) {
	_, err := NewRegistry(Layout{Model: "dup", Inputs: []InputDef{
		{Type: Pad, Number: 1, ID: 10},
		{Type: Pad, Number: 2, ID: 10},
	}})
	assert.Error(t, err)

	_, err = NewRegistry(Layout{Model: "gap", Inputs: []InputDef{
		{Type: Knob, Number: 1, ID: 1},
		{Type: Knob, Number: 3, ID: 2},
	}})
	assert.Error(t, err)

	// The same id may be reused across types.
	_, err = NewRegistry(Layout{Model: "shared", Inputs: []InputDef{
		{Type: Knob, Number: 1, ID: 7},
		{Type: Slider, Number: 1, ID: 7},
	}})
	assert.NoError(t, err)
}

func TestInputTypeContract(t *testing.T) {
	reg := MustRegistry(MPD226Layout)
	knob, _ := reg.Knob(1)
	pad, _ := reg.Pad(1)
	stop, _ := reg.Transport(TransportStop)

	assert.ErrorIs(t, knob.SetPressed(true), ErrTypeContract)
	assert.ErrorIs(t, pad.SetValue(10), ErrTypeContract)
	assert.ErrorIs(t, pad.SetOn(true), ErrTypeContract)
	assert.ErrorIs(t, stop.SetPressure(5), ErrTypeContract)

	require.NoError(t, knob.SetValue(64))
	assert.ErrorIs(t, knob.SetValue(128), ErrTypeContract)
	assert.ErrorIs(t, knob.SetValue(-1), ErrTypeContract)
	assert.Equal(t, 64, knob.Value, "rejected write keeps prior value")
	assert.True(t, knob.Toggle)

	require.NoError(t, knob.SetValue(MaxValue))
	assert.False(t, knob.Toggle)
	assert.InDelta(t, 1.0, knob.Normalized(), 1e-9)
}

func TestParseInputType(t *testing.T) {
	for _, typ := range InputTypes {
		got, err := ParseInputType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
	_, err := ParseInputType("fader")
	assert.Error(t, err)
}
