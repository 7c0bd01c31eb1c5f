// Package surfaces assembles the four page scenes from configuration.
package surfaces

import (
	"errors"
	"fmt"
	"math"

	"folio/internal/config"
	"folio/stage/camera"
	"folio/stage/entity"
	"folio/stage/motion"
	"folio/stage/raster"
	"folio/stage/scene"
)

// Surface names, also used as page region ids.
const (
	Hero     = "hero"
	Skills   = "skills"
	Projects = "projects"
	Contact  = "contact"
)

// ErrUnknown is returned by Build for a name that is not a surface.
var ErrUnknown = errors.New("surfaces: unknown surface")

var (
	white = raster.RGB(0xFF, 0xFF, 0xFF)
	cyan  = raster.RGB(0x06, 0xB6, 0xD4)
)

// Names lists the buildable surfaces in page order.
func Names() []string { return []string{Hero, Skills, Projects, Contact} }

// Build constructs the named scene. index selects the project card and is ignored
// for the other surfaces.
func Build(name string, cfg *config.Config, index int) (*scene.Scene, error) {
	switch name {
	case Hero:
		return NewHero(cfg), nil
	case Skills:
		return NewSkills(cfg), nil
	case Projects:
		if index < 0 || index >= len(cfg.Projects.Titles) {
			return nil, fmt.Errorf("project card %d of %d: %w", index, len(cfg.Projects.Titles), ErrUnknown)
		}
		return NewProject(cfg, index), nil
	case Contact:
		return NewContact(cfg), nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknown)
	}
}

// NewHero builds two floating spheres, a rotating torus and a particle field under an
// auto-rotating camera locked to the horizontal plane.
func NewHero(cfg *config.Config) *scene.Scene {
	h := cfg.Hero
	var ents []*entity.Entity

	for _, s := range h.Spheres {
		c := rgb(s.Color)
		ents = append(ents, entity.New(entity.Spec{
			Kind:     entity.Sphere,
			Position: vec(s.Position),
			Material: raster.Material{
				BaseColor:         c,
				Metalness:         0.7,
				Roughness:         0.2,
				Emissive:          c,
				EmissiveIntensity: 0.1,
			},
			Motion: motion.Combine(
				motion.NewDualAxisRotate(s.Speed, s.Speed, s.Phase),
				motion.NewBob(motion.AxisY, s.Bob, s.Phase),
			),
			Geometry: entity.SphereMesh(float32(s.Radius), 24, 16),
			Radius:   float32(s.Radius),
		}))
	}

	t := h.Torus
	ents = append(ents, entity.New(entity.Spec{
		Kind:     entity.Torus,
		Position: vec(t.Position),
		Material: raster.Material{
			BaseColor: rgb(t.Color),
			Metalness: 0.8,
			Roughness: 0.2,
		},
		Motion:   motion.NewDualAxisRotate(t.SpeedX, t.SpeedY, 0),
		Geometry: entity.TorusMesh(float32(t.Major), float32(t.Minor), 32, 12),
		Radius:   float32(t.Major + t.Minor),
	}))

	p := h.Particles
	ents = append(ents, entity.New(entity.Spec{
		Kind: entity.Particle,
		Material: raster.Material{
			BaseColor: rgb(p.Color),
			Mode:      raster.RenderPoints,
			PointSize: 2,
		},
		Motion:   motion.NewSpin(motion.AxisY, p.Speed, 0),
		Geometry: entity.ParticleMesh(p.Count, float32(p.Spread), p.Seed),
	}))

	lights := []raster.Light{
		raster.AmbientLight(white, 0.5),
		raster.DirectionalLight(raster.V3(10, 10, 5), white, 1),
		raster.PointLight(raster.V3(-10, -10, -5), cyan, 0.5),
	}
	ctrl := camera.New(vec(cfg.Camera.Position), raster.Vec3{},
		camera.WithAutoRotate(float32(h.AutoRotate)),
		camera.WithLockedPolar(math.Pi/2),
		camera.WithFOV(float32(cfg.Camera.FOV)),
	)
	return scene.New(Hero, lights, ents, scene.WithController(ctrl))
}

// NewSkills builds one labeled, hover-reactive cube per configured skill.
func NewSkills(cfg *config.Config) *scene.Scene {
	s := cfg.Skills
	ents := make([]*entity.Entity, 0, len(s.Items))
	for i, sk := range s.Items {
		c := rgb(sk.Color)
		ents = append(ents, entity.New(entity.Spec{
			Kind:     entity.Cube,
			Label:    sk.Label,
			Position: vec(sk.Position),
			Material: raster.Material{
				BaseColor:         c,
				Metalness:         0.8,
				Roughness:         0.2,
				Emissive:          c,
				EmissiveIntensity: 0.2,
			},
			Motion:   motion.NewDualAxisRotate(s.RateX, s.RateY, float64(i)),
			Hover:    &entity.HoverSpec{Scale: s.HoverScale, EmissiveIntensity: 0.5},
			Geometry: entity.BoxMesh(1, 1, 1),
			Radius:   0.75,
		}))
	}

	lights := []raster.Light{
		raster.AmbientLight(white, 0.5),
		raster.DirectionalLight(raster.V3(10, 10, 5), white, 1),
	}
	ctrl := camera.New(vec(cfg.Camera.Position), raster.Vec3{},
		camera.WithAutoRotate(float32(s.AutoRotate)),
		camera.WithZoom(float32(s.MinDistance), float32(s.MaxDistance)),
		camera.WithFOV(float32(cfg.Camera.FOV)),
	)
	return scene.New(Skills, lights, ents, scene.WithController(ctrl))
}

// NewProject builds the spinning panel of project card i.
func NewProject(cfg *config.Config, i int) *scene.Scene {
	p := cfg.Projects
	panel := entity.New(entity.Spec{
		Kind: entity.Panel,
		Material: raster.Material{
			BaseColor:         rgb(p.Color),
			Metalness:         0.9,
			Roughness:         0.1,
			Emissive:          rgb(p.Emissive),
			EmissiveIntensity: 0.3,
		},
		Motion: motion.Combine(
			motion.NewSpin(motion.AxisY, p.SpinBase+p.SpinStep*float64(i), 0),
			motion.NewBob(motion.AxisY, p.Bob, 0),
		),
		Geometry: entity.BoxMesh(1.5, 2, 0.1),
		Radius:   1.25,
	})

	lights := []raster.Light{
		raster.AmbientLight(white, 0.5),
		raster.PointLight(raster.V3(10, 10, 10), white, 1),
	}
	return scene.New(fmt.Sprintf("%s/%d", Projects, i), lights, []*entity.Entity{panel},
		scene.WithCamera(staticCamera(cfg)))
}

// NewContact builds the rotating wireframe sphere.
func NewContact(cfg *config.Config) *scene.Scene {
	c := cfg.Contact
	sphere := entity.New(entity.Spec{
		Kind: entity.Sphere,
		Material: raster.Material{
			BaseColor: rgb(c.Color),
			Metalness: 0.9,
			Roughness: 0.1,
			Mode:      raster.RenderWireframe,
		},
		Motion: motion.Combine(
			motion.NewDualAxisRotate(c.RateX, c.RateY, 0),
			motion.NewBob(motion.AxisY, c.Bob, 0),
		),
		Geometry: entity.SphereMesh(float32(c.Radius), 24, 16),
		Radius:   float32(c.Radius),
	})

	lights := []raster.Light{
		raster.AmbientLight(white, 0.5),
		raster.PointLight(raster.V3(10, 10, 10), white, 1),
		raster.PointLight(raster.V3(-10, -10, -10), cyan, 0.5),
	}
	return scene.New(Contact, lights, []*entity.Entity{sphere}, scene.WithCamera(staticCamera(cfg)))
}

func staticCamera(cfg *config.Config) raster.Camera {
	cam := raster.DefaultCamera()
	cam.Position = vec(cfg.Camera.Position)
	cam.FOVDeg = float32(cfg.Camera.FOV)
	return cam
}

func rgb(c config.Color) raster.Color {
	r, g, b := c.RGB255()
	return raster.RGB(r, g, b)
}

func vec(v config.Vec3) raster.Vec3 {
	return raster.V3(float32(v[0]), float32(v[1]), float32(v[2]))
}
