// Package engine feeds transport input into a session from a single goroutine.
package engine

import (
	"context"
	"log/slog"

	"github.com/PixPMusic/gopher-mpd/internal/host"
	"github.com/PixPMusic/gopher-mpd/internal/mpd"
)

// QueueSize bounds the number of pending inbound items
const QueueSize = 256

type item struct {
	msg      mpd.Message
	realtime byte
	do       func(*mpd.Session)
}

// Engine owns a session and serialises everything that touches it.
type Engine struct {
	session *mpd.Session
	clock   host.Clock
	log     *slog.Logger
	beats   BeatCounter
	queue   chan item

	observers []func(mpd.Snapshot)
}

// New wraps session. Observers must be added before Run.
func New(session *mpd.Session, clock host.Clock, logger *slog.Logger) *Engine {
	if clock == nil {
		clock = host.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		session: session,
		clock:   clock,
		log:     logger,
		queue:   make(chan item, QueueSize),
	}
}

// Observe registers fn to receive a snapshot after every processed item.
// fn runs on the engine goroutine.
func (e *Engine) Observe(fn func(mpd.Snapshot)) {
	e.observers = append(e.observers, fn)
}

// Submit queues an inbound message, stamping its arrival time.
// It never blocks; when the queue is full the message is dropped.
func (e *Engine) Submit(m mpd.Message) {
	if m.Time.IsZero() {
		m.Time = e.clock.Now()
	}
	e.push(item{msg: m})
}

// Realtime queues a MIDI realtime status byte for the beat counter
func (e *Engine) Realtime(status byte) {
	e.push(item{realtime: status})
}

// Do runs fn against the session on the engine goroutine
func (e *Engine) Do(fn func(*mpd.Session)) {
	e.push(item{do: fn})
}

func (e *Engine) push(it item) {
	select {
	case e.queue <- it:
	default:
		e.log.Warn("engine queue full, dropping input")
	}
}

// Run processes queued items until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	e.publish()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case it := <-e.queue:
			e.process(it)
		}
	}
}

func (e *Engine) process(it item) {
	switch {
	case it.do != nil:
		it.do(e.session)
	case it.realtime != 0:
		v := e.beats.Feed(it.realtime)
		if v < 0 {
			return
		}
		e.session.HandleBeat(v)
	default:
		m := it.msg
		e.session.Handle(&m)
		e.log.Debug("handled", "msg", m.String(), "handled", m.Handled)
	}
	e.publish()
}

func (e *Engine) publish() {
	if len(e.observers) == 0 {
		return
	}
	snap := e.session.Snapshot()
	for _, fn := range e.observers {
		fn(snap)
	}
}
