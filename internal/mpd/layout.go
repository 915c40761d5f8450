package mpd

import "strconv"

// InputDef is one row of a static hardware layout
type InputDef struct {
	Type   InputType
	Number int
	ID     int
	Name   string
}

// Layout is the compiled-in description of a controller's inputs
type Layout struct {
	Model  string
	Inputs []InputDef
}

var mpd226PadIDs = []int{37, 36, 42, 82, 40, 38, 46, 44, 48, 47, 45, 43, 49, 55, 51, 53}

// MPD226Layout is the FL Studio preset of the Akai MPD226.
var MPD226Layout = Layout{
	Model: "MPD226",
	Inputs: concat(
		numbered(Pad, "Pad", mpd226PadIDs...),
		numbered(Knob, "Knob", 3, 9, 14, 15),
		numbered(Slider, "Slider", 20, 21, 22, 23),
		[]InputDef{
			{Type: Switch, Number: 1, ID: 28, Name: "1/4"},
			{Type: Switch, Number: 2, ID: 29, Name: "1/8"},
			{Type: Switch, Number: 3, ID: 30, Name: "1/16"},
			{Type: Switch, Number: 4, ID: 31, Name: "1/32"},
			{Type: Transport, Number: TransportStop, ID: 117, Name: "Stop"},
			{Type: Transport, Number: TransportPlay, ID: 118, Name: "Play"},
			{Type: Transport, Number: TransportRec, ID: 119, Name: "Rec"},
		},
	),
}

// MPD226PadGrid is the pad numbering as seen on the hardware, top row first
var MPD226PadGrid = [4][4]int{
	{13, 14, 15, 16},
	{9, 10, 11, 12},
	{5, 6, 7, 8},
	{1, 2, 3, 4},
}

// Transport button numbers
const (
	TransportStop = 1
	TransportPlay = 2
	TransportRec  = 3
)

func numbered(t InputType, prefix string, ids ...int) []InputDef {
	defs := make([]InputDef, len(ids))
	for i, id := range ids {
		defs[i] = InputDef{
			Type:   t,
			Number: i + 1,
			ID:     id,
			Name:   prefix + " " + strconv.Itoa(i+1),
		}
	}
	return defs
}

func concat(parts ...[]InputDef) []InputDef {
	var out []InputDef
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
