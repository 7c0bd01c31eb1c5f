package app

import (
	"image"
	"math"

	"folio/stage"
	"folio/stage/clock"
	"folio/stage/gate"
	"folio/stage/raster"
	"folio/stage/scene"
)

// surface is one 3D canvas on the page. It owns its scene, loop and render target
// while its mount is active.
type surface struct {
	id    string
	rect  func(Layout) Rect
	build func() *scene.Scene

	sc     *scene.Scene
	loop   *clock.Loop
	target *raster.RGBATarget

	// Device pixels per logical pixel of the target, derived on resize.
	scale float64
	alive bool
}

// Target implements scene.Surface.
func (s *surface) Target() (raster.Target, bool) {
	if !s.alive || s.target == nil {
		return nil, false
	}
	return s.target, true
}

// resize sizes the render target to rect × dpr × renderScale.
func (s *surface) resize(r Rect, dpr, renderScale float64) {
	scale := dpr * renderScale
	w := max(int(math.Round(r.W*scale)), 1)
	h := max(int(math.Round(r.H*scale)), 1)
	s.scale = scale
	if s.target == nil {
		s.target = raster.NewRGBATarget(w, h)
		return
	}
	if cw, ch := s.target.Size(); cw != w || ch != h {
		s.target.Resize(w, h)
		stage.Logger().Debug("surface resized", "surface", s.id, "w", w, "h", h)
	}
}

func (s *surface) image() *image.RGBA {
	if s.target == nil {
		return nil
	}
	return s.target.Img
}

// Mount binds a page region to the surfaces that come alive when it first becomes
// visible.
type Mount struct {
	region   string
	gate     *gate.Gate
	refresh  *clock.Refresh
	surfaces []*surface

	active bool
}

func newMount(region string, threshold float64, rearm bool, refresh *clock.Refresh, surfaces ...*surface) *Mount {
	m := &Mount{region: region, refresh: refresh, surfaces: surfaces}
	opts := []gate.Option{gate.OnTransition(m.transition)}
	if rearm {
		opts = append(opts, gate.WithRearm())
	}
	m.gate = gate.New(region, threshold, opts...)
	return m
}

// Attach subscribes the mount's gate to the observer.
func (m *Mount) Attach(o gate.Observer) error {
	return m.gate.Attach(o)
}

func (m *Mount) Active() bool { return m.active }

func (m *Mount) transition(s gate.State) {
	switch s {
	case gate.Active:
		m.activate()
	case gate.Dormant:
		m.deactivate()
	}
}

func (m *Mount) activate() {
	if m.active {
		return
	}
	m.active = true
	for _, s := range m.surfaces {
		s.sc = s.build()
		s.alive = true
		s.loop = clock.NewLoop(m.refresh, s.id, s.sc.TickFunc(s))
		s.loop.Start()
	}
	stage.Logger().Info("mount: activated", "region", m.region, "surfaces", len(m.surfaces))
}

func (m *Mount) deactivate() {
	if !m.active {
		return
	}
	m.active = false
	for _, s := range m.surfaces {
		s.alive = false
		s.loop.Stop()
		if s.sc != nil {
			s.sc.Release()
		}
		s.sc, s.loop = nil, nil
	}
}

// Unmount stops every loop, releases the scenes and detaches the gate. It is
// idempotent.
func (m *Mount) Unmount() {
	m.deactivate()
	m.gate.Detach()
}
