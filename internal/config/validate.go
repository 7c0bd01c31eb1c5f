package config

import (
	"fmt"
	"math"

	"folio/stage"
)

const minDistance = 0.1

// Validate clamps out-of-range values in place, logging each change at warn.
// It fails only for values that have no sensible replacement.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalid)
	}
	if c.Window.TickRate <= 0 {
		clampf("window.tick_rate", &c.Window.TickRate, 60)
	}
	if !(c.Window.RenderScale > 0 && c.Window.RenderScale <= 4) {
		clamp("window.render_scale", &c.Window.RenderScale, 1)
	}

	if !(c.Activation.Threshold > 0 && c.Activation.Threshold <= 1) {
		clamp("activation.threshold", &c.Activation.Threshold, 0.1)
	}
	if !(c.Camera.FOV > 1 && c.Camera.FOV < 179) {
		clamp("camera.fov", &c.Camera.FOV, 50)
	}

	h := &c.Hero
	nonNegative("hero.auto_rotate", &h.AutoRotate)
	for i := range h.Spheres {
		s := &h.Spheres[i]
		p := fmt.Sprintf("hero.spheres[%d]", i)
		nonNegative(p+".speed", &s.Speed)
		nonNegative(p+".bob", &s.Bob)
		positive(p+".radius", &s.Radius, 1)
	}
	nonNegative("hero.torus.speed_x", &h.Torus.SpeedX)
	nonNegative("hero.torus.speed_y", &h.Torus.SpeedY)
	positive("hero.torus.major", &h.Torus.Major, 1.5)
	positive("hero.torus.minor", &h.Torus.Minor, 0.4)
	if h.Particles.Count < 0 {
		clampf("hero.particles.count", &h.Particles.Count, 0)
	}
	nonNegative("hero.particles.spread", &h.Particles.Spread)
	nonNegative("hero.particles.speed", &h.Particles.Speed)

	s := &c.Skills
	nonNegative("skills.auto_rotate", &s.AutoRotate)
	nonNegative("skills.rate_x", &s.RateX)
	nonNegative("skills.rate_y", &s.RateY)
	positive("skills.hover_scale", &s.HoverScale, 1.2)
	if s.MinDistance > s.MaxDistance {
		stage.Logger().Warn("config: swapped zoom bounds", "min", s.MinDistance, "max", s.MaxDistance)
		s.MinDistance, s.MaxDistance = s.MaxDistance, s.MinDistance
	}
	positive("skills.min_distance", &s.MinDistance, minDistance)
	positive("skills.max_distance", &s.MaxDistance, minDistance)

	p := &c.Projects
	nonNegative("projects.spin_base", &p.SpinBase)
	nonNegative("projects.spin_step", &p.SpinStep)
	nonNegative("projects.bob", &p.Bob)

	ct := &c.Contact
	positive("contact.radius", &ct.Radius, 1.5)
	nonNegative("contact.rate_x", &ct.RateX)
	nonNegative("contact.rate_y", &ct.RateY)
	nonNegative("contact.bob", &ct.Bob)
	return nil
}

func clamp(field string, v *float64, to float64) {
	stage.Logger().Warn("config: clamped value", "field", field, "value", *v, "to", to)
	*v = to
}

func clampf(field string, v *int, to int) {
	stage.Logger().Warn("config: clamped value", "field", field, "value", *v, "to", to)
	*v = to
}

func nonNegative(field string, v *float64) {
	if *v < 0 || math.IsNaN(*v) {
		clamp(field, v, 0)
	}
}

func positive(field string, v *float64, fallback float64) {
	if *v <= 0 || math.IsNaN(*v) {
		clamp(field, v, fallback)
	}
}
