// Package gate defers scene construction until a page region first becomes visible.
package gate

import (
	"errors"
	"fmt"
	"sync"

	"folio/stage"
)

// DefaultThreshold is the visible fraction that activates a gate.
const DefaultThreshold = 0.1

// ErrRegionNotFound is returned by an Observer asked to watch an unknown region.
var ErrRegionNotFound = errors.New("gate: region not found")

// Observer reports how much of a region is visible, as a ratio in [0, 1].
type Observer interface {
	Observe(region string, fn func(ratio float64)) (detach func(), err error)
}

// State is the activation state of a gate.
type State uint8

const (
	Dormant State = iota
	Active
)

func (s State) String() string {
	switch s {
	case Dormant:
		return "dormant"
	case Active:
		return "active"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Option configures a Gate.
type Option func(*Gate)

// OnTransition registers a callback run after every state change.
func OnTransition(fn func(State)) Option {
	return func(g *Gate) { g.onChange = fn }
}

// WithRearm lets an active gate fall back to Dormant once its region is fully hidden,
// so the next crossing activates it again.
func WithRearm() Option {
	return func(g *Gate) { g.rearm = true }
}

// Gate tracks the activation state of one region.
type Gate struct {
	region    string
	threshold float64
	rearm     bool
	onChange  func(State)

	mu       sync.Mutex
	state    State
	detach   func()
	attached bool
}

// New creates a dormant gate. A threshold outside (0, 1] falls back to DefaultThreshold.
func New(region string, threshold float64, opts ...Option) *Gate {
	if !(threshold > 0 && threshold <= 1) {
		stage.Logger().Warn("gate: clamped threshold", "region", region, "value", threshold)
		threshold = DefaultThreshold
	}
	g := &Gate{region: region, threshold: threshold}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

func (g *Gate) Region() string { return g.region }

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Attach subscribes the gate to visibility updates. If the observer cannot watch the
// region the gate logs a warning and stays dormant; the error is returned for callers
// that want it.
func (g *Gate) Attach(o Observer) error {
	if o == nil {
		err := fmt.Errorf("gate %q: nil observer: %w", g.region, ErrRegionNotFound)
		stage.Logger().Warn("gate: observer unavailable", "region", g.region, "err", err)
		return err
	}
	g.mu.Lock()
	if g.attached {
		g.mu.Unlock()
		return nil
	}
	g.attached = true
	g.mu.Unlock()

	detach, err := o.Observe(g.region, g.Observe)
	if err != nil {
		g.mu.Lock()
		g.attached = false
		g.mu.Unlock()
		stage.Logger().Warn("gate: observer unavailable", "region", g.region, "err", err)
		return fmt.Errorf("gate %q: %w", g.region, err)
	}

	g.mu.Lock()
	if !g.attached {
		// Detached while Observe was running.
		g.mu.Unlock()
		if detach != nil {
			detach()
		}
		return nil
	}
	g.detach = detach
	g.mu.Unlock()
	return nil
}

// Observe feeds one visibility ratio into the gate.
func (g *Gate) Observe(ratio float64) {
	g.mu.Lock()
	next := g.state
	switch {
	case g.state == Dormant && ratio >= g.threshold:
		next = Active
	case g.state == Active && g.rearm && ratio <= 0:
		next = Dormant
	}
	if next == g.state {
		g.mu.Unlock()
		return
	}
	g.state = next
	fn := g.onChange
	g.mu.Unlock()

	stage.Logger().Info("gate: transition", "region", g.region, "state", next.String(), "ratio", ratio)
	if fn != nil {
		fn(next)
	}
}

// Detach unsubscribes from the observer. It is idempotent.
func (g *Gate) Detach() {
	g.mu.Lock()
	detach := g.detach
	g.detach = nil
	g.attached = false
	g.mu.Unlock()

	if detach != nil {
		detach()
	}
}
