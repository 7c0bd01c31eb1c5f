package clock

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"folio/stage"
)

// ErrSurfaceLost is returned by a tick handler whose drawing surface is gone.
// The loop stops without reporting further.
var ErrSurfaceLost = errors.New("clock: surface lost")

// Frame is the input to one tick.
type Frame struct {
	Seq     uint64
	Elapsed float64 // seconds since Start, never decreasing
}

// TickFunc handles one tick. Returning an error stops the loop.
type TickFunc func(Frame) error

// Loop is a per-scene render loop scheduled on a Refresh.
type Loop struct {
	name    string
	refresh *Refresh
	fn      TickFunc

	running atomic.Bool

	start   time.Time
	elapsed float64
	seq     uint64
}

// NewLoop creates a stopped loop. name is only used for logging.
func NewLoop(r *Refresh, name string, fn TickFunc) *Loop {
	return &Loop{name: name, refresh: r, fn: fn}
}

// Start schedules the loop and records the start instant. Starting a running loop
// is a no-op; restarting a stopped loop resets elapsed time.
func (l *Loop) Start() {
	if l == nil || l.refresh == nil || l.fn == nil {
		return
	}
	if !l.running.CompareAndSwap(false, true) {
		return
	}
	l.elapsed = 0
	l.seq = 0
	l.start = l.refresh.schedule(l)
	stage.Logger().Debug("clock: loop started", "loop", l.name)
}

// Stop cancels the loop. It is idempotent and may be called from the tick handler.
func (l *Loop) Stop() {
	if l == nil || !l.running.CompareAndSwap(true, false) {
		return
	}
	l.refresh.cancel(l)
	stage.Logger().Debug("clock: loop stopped", "loop", l.name, "ticks", l.seq)
}

func (l *Loop) Running() bool { return l != nil && l.running.Load() }

// Elapsed returns the elapsed seconds delivered with the most recent tick.
func (l *Loop) Elapsed() float64 { return l.elapsed }

// Ticks returns the number of ticks delivered since Start.
func (l *Loop) Ticks() uint64 { return l.seq }

func (l *Loop) tick(now time.Time) (ticked bool) {
	if !l.running.Load() {
		return false
	}

	el := now.Sub(l.start).Seconds()
	if el < l.elapsed {
		el = l.elapsed
	}
	l.elapsed = el
	l.seq++

	defer func() {
		if p := recover(); p != nil {
			stage.Logger().Warn("clock: loop stopped after panic", "loop", l.name, "panic", fmt.Sprint(p))
			l.Stop()
		}
	}()

	if err := l.fn(Frame{Seq: l.seq, Elapsed: el}); err != nil {
		if errors.Is(err, ErrSurfaceLost) {
			stage.Logger().Debug("clock: surface lost", "loop", l.name)
		} else {
			stage.Logger().Warn("clock: tick failed", "loop", l.name, "err", err)
		}
		l.Stop()
	}
	return true
}
