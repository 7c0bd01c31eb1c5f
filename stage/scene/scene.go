// Package scene owns the entities, lights and camera of one rendered surface and
// advances them once per clock tick.
package scene

import (
	"folio/stage"
	"folio/stage/camera"
	"folio/stage/clock"
	"folio/stage/entity"
	"folio/stage/raster"
)

// Surface is the host-supplied drawing rectangle a scene renders into.
type Surface interface {
	// Target returns the current render target, or false once the surface is gone.
	Target() (raster.Target, bool)
}

// Option configures a Scene.
type Option func(*Scene)

// WithController attaches an interactive orbit camera.
func WithController(c *camera.Controller) Option {
	return func(s *Scene) { s.ctrl = c }
}

// WithCamera sets the static camera used when there is no controller.
func WithCamera(c raster.Camera) Option {
	return func(s *Scene) { s.cam = c }
}

// WithClearColor sets the color the surface is cleared to. The default is transparent.
func WithClearColor(c raster.Color) Option {
	return func(s *Scene) { s.renderer.ClearColor = c }
}

// Scene is a set of entities and fixed lights rendered through one camera.
type Scene struct {
	name string

	entities   []*entity.Entity
	meshIDs    []int
	transforms []entity.Transform

	ctrl *camera.Controller
	cam  raster.Camera

	world    *raster.Scene
	renderer *raster.Renderer

	released bool
}

// New builds a scene. The scene takes ownership of ents.
func New(name string, lights []raster.Light, ents []*entity.Entity, opts ...Option) *Scene {
	s := &Scene{
		name:     name,
		entities: ents,
		cam:      raster.DefaultCamera(),
		world:    raster.CreateScene(len(ents)),
		renderer: raster.NewRenderer(0, 0, true),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if s.ctrl != nil {
		s.cam = s.ctrl.Update(0)
	}
	s.world.Lights = append([]raster.Light(nil), lights...)
	s.world.Camera = s.cam

	s.meshIDs = make([]int, len(ents))
	s.transforms = make([]entity.Transform, len(ents))
	for i, e := range ents {
		m := e.Geometry()
		m.Material = e.Material()
		s.meshIDs[i] = s.world.AddMesh(m)
	}

	stage.Logger().Info("scene: built", "scene", name, "entities", len(ents))
	return s
}

func (s *Scene) Name() string                   { return s.name }
func (s *Scene) Entities() []*entity.Entity     { return s.entities }
func (s *Scene) Controller() *camera.Controller { return s.ctrl }

// Interactive reports whether the scene accepts drag and zoom input.
func (s *Scene) Interactive() bool { return s.ctrl != nil }

// Camera returns the camera used by the most recent tick.
func (s *Scene) Camera() raster.Camera { return s.world.Camera }

// Transforms returns the entity transforms computed by the most recent tick.
func (s *Scene) Transforms() []entity.Transform { return s.transforms }

// Tick advances the camera controller and then every entity with the same elapsed
// time.
func (s *Scene) Tick(elapsed float64) {
	if s.released {
		return
	}
	if s.ctrl != nil {
		s.world.Camera = s.ctrl.Update(elapsed)
	}
	for i, e := range s.entities {
		tr := e.Update(elapsed)
		s.transforms[i] = tr
		s.world.UpdateMeshTransform(s.meshIDs[i], tr.Matrix())
		s.world.UpdateMeshEmissive(s.meshIDs[i], tr.EmissiveIntensity)
	}
}

// Render draws the scene into t. The projection follows the target size.
func (s *Scene) Render(t raster.Target) {
	if s.released || t == nil {
		return
	}
	w, h := t.Size()
	if s.renderer.Resized(w, h) {
		stage.Logger().Debug("scene: projection updated", "scene", s.name, "w", w, "h", h)
	}
	s.renderer.Render(t, s.world)
}

// TickFunc adapts the scene to a clock loop rendering into surf.
func (s *Scene) TickFunc(surf Surface) clock.TickFunc {
	return func(f clock.Frame) error {
		if s.released {
			return clock.ErrSurfaceLost
		}
		t, ok := surf.Target()
		if !ok {
			return clock.ErrSurfaceLost
		}
		s.Tick(f.Elapsed)
		s.Render(t)
		return nil
	}
}

// Pick returns the index of the nearest entity whose projected bounds contain (x, y)
// on a w×h surface, using the state of the last tick.
func (s *Scene) Pick(x, y float32, w, h int) (int, bool) {
	best, bestDist := -1, float32(0)
	for i, e := range s.entities {
		center, radius := e.Bounds(s.transforms[i])
		if radius <= 0 {
			continue
		}
		cx, cy, r, dist, ok := raster.ProjectSphere(s.world.Camera, w, h, center, radius)
		if !ok {
			continue
		}
		dx, dy := x-cx, y-cy
		if dx*dx+dy*dy > r*r {
			continue
		}
		if best < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best, best >= 0
}

// Hover updates hover state from a pointer position; inside=false clears it.
func (s *Scene) Hover(x, y float32, w, h int, inside bool) {
	hit := -1
	if inside {
		hit, _ = s.Pick(x, y, w, h)
	}
	for i, e := range s.entities {
		if e.Hoverable() {
			e.SetHovered(i == hit)
		}
	}
}

// Drag forwards a pointer drag to the camera controller.
func (s *Scene) Drag(dx, dy float32, height int) {
	if s.ctrl != nil {
		s.ctrl.Drag(dx, dy, float32(height))
	}
}

// Zoom forwards a wheel delta to the camera controller.
func (s *Scene) Zoom(delta float32) {
	if s.ctrl != nil {
		s.ctrl.Zoom(delta)
	}
}

// Label is an entity label anchored in surface pixels.
type Label struct {
	Text string
	X, Y float32
}

// Labels projects the labels of every labeled entity onto a w×h surface, anchored
// below each entity's bounds.
func (s *Scene) Labels(w, h int) []Label {
	var out []Label
	for i, e := range s.entities {
		if e.Label() == "" {
			continue
		}
		center, radius := e.Bounds(s.transforms[i])
		cx, cy, r, _, ok := raster.ProjectSphere(s.world.Camera, w, h, center, radius)
		if !ok {
			continue
		}
		out = append(out, Label{Text: e.Label(), X: cx, Y: cy + r})
	}
	return out
}

// Release drops every mesh. The scene must not be used afterwards.
func (s *Scene) Release() {
	if s.released {
		return
	}
	s.released = true
	s.world.Clear()
	stage.Logger().Info("scene: released", "scene", s.name)
}

func (s *Scene) Released() bool { return s.released }
