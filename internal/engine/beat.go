package engine

// MIDI realtime status bytes
const (
	StatusClock    byte = 0xF8
	StatusStart    byte = 0xFA
	StatusContinue byte = 0xFB
	StatusStop     byte = 0xFC
)

// Beat indicator values
const (
	BeatOff = 0
	BeatBar = 1
	Beat    = 2
)

const (
	clocksPerBeat = 24
	beatsPerBar   = 4
	lightClocks   = clocksPerBeat / 2
)

// BeatCounter turns MIDI clock into beat indicator changes.
type BeatCounter struct {
	running bool
	clocks  int
}

// Feed consumes one realtime status byte and returns the indicator value
// to show, or -1 when it does not change.
func (b *BeatCounter) Feed(status byte) int {
	switch status {
	case StatusStart:
		b.running = true
		b.clocks = 0
		return BeatBar
	case StatusContinue:
		b.running = true
		return -1
	case StatusStop:
		b.running = false
		return BeatOff
	case StatusClock:
		if !b.running {
			return -1
		}
		b.clocks++
		pos := b.clocks % (clocksPerBeat * beatsPerBar)
		switch {
		case pos == 0:
			return BeatBar
		case pos%clocksPerBeat == 0:
			return Beat
		case pos%clocksPerBeat == lightClocks:
			return BeatOff
		}
	}
	return -1
}
