// Package clock drives per-scene render loops from the host's display refresh.
//
// The host calls Refresh.Frame once per displayed frame. Each running Loop then
// receives exactly one tick carrying the time elapsed since it started; there is no
// catch-up after a slow frame.
package clock

import (
	"sync"
	"time"
)

// Stats summarises refresh pacing for the debug overlay.
type Stats struct {
	Frames   uint64
	Overruns uint64        // frames that arrived later than 1.5× the budget
	LastGap  time.Duration // time between the two most recent frames
}

// Refresh is the display-refresh scheduler shared by every loop on a page.
type Refresh struct {
	now    func() time.Time
	budget time.Duration

	mu    sync.Mutex
	loops []*Loop

	last  time.Time
	stats Stats
}

// NewRefresh creates a scheduler sampling now once per frame. A nil now uses time.Now.
func NewRefresh(now func() time.Time) *Refresh {
	if now == nil {
		now = time.Now
	}
	return &Refresh{now: now}
}

// SetBudget sets the expected frame interval used to count overruns; 0 disables it.
func (r *Refresh) SetBudget(d time.Duration) {
	r.mu.Lock()
	r.budget = d
	r.mu.Unlock()
}

// Frame issues one tick to every scheduled loop, in scheduling order, and returns the
// number of loops ticked.
func (r *Refresh) Frame() int {
	now := r.now()

	r.mu.Lock()
	if !r.last.IsZero() {
		r.stats.LastGap = now.Sub(r.last)
		if r.budget > 0 && r.stats.LastGap > r.budget*3/2 {
			r.stats.Overruns++
		}
	}
	r.last = now
	r.stats.Frames++
	loops := append([]*Loop(nil), r.loops...)
	r.mu.Unlock()

	n := 0
	for _, l := range loops {
		if l.tick(now) {
			n++
		}
	}
	return n
}

// Scheduled returns the number of running loops.
func (r *Refresh) Scheduled() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.loops)
}

func (r *Refresh) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *Refresh) schedule(l *Loop) time.Time {
	r.mu.Lock()
	r.loops = append(r.loops, l)
	r.mu.Unlock()
	return r.now()
}

func (r *Refresh) cancel(l *Loop) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, x := range r.loops {
		if x == l {
			r.loops = append(r.loops[:i], r.loops[i+1:]...)
			return
		}
	}
}
