// Package camera implements the orbit camera controller used by interactive scenes.
//
// The controller is a pure function of elapsed time plus accumulated pointer input:
// auto-rotation and drag compose additively, so user input never pauses the orbit.
package camera

import (
	"math"

	"github.com/chewxy/math32"

	"folio/stage"
	"folio/stage/motion"
	"folio/stage/raster"
)

// Minimum orbit distance any configuration is clamped to.
const MinDistance = 0.1

// zoomBase is the per-unit wheel scale factor.
const zoomBase = 0.95

// Option configures a Controller.
type Option func(*Controller)

// WithAutoRotate enables auto-rotation at speed revolutions per minute.
func WithAutoRotate(speed float32) Option {
	return func(c *Controller) {
		c.autoRotate = true
		c.autoSpeed = speed
	}
}

// WithDrag enables or disables pointer drag rotation. Drag is enabled by default.
func WithDrag(on bool) Option {
	return func(c *Controller) { c.drag = on }
}

// WithZoom enables wheel zoom within [min, max] distance.
func WithZoom(min, max float32) Option {
	return func(c *Controller) {
		c.zoom = true
		c.minDist = min
		c.maxDist = max
	}
}

// WithZoomSpeed scales wheel deltas. The default is 1.
func WithZoomSpeed(speed float32) Option {
	return func(c *Controller) { c.zoomSpeed = speed }
}

// WithPolarRange bounds the polar angle measured from +Y, in radians.
func WithPolarRange(min, max float32) Option {
	return func(c *Controller) {
		c.minPolar = min
		c.maxPolar = max
	}
}

// WithLockedPolar pins the polar angle, giving a purely horizontal orbit.
func WithLockedPolar(polar float32) Option {
	return WithPolarRange(polar, polar)
}

// WithFOV sets the vertical field of view in degrees.
func WithFOV(deg float32) Option {
	return func(c *Controller) { c.fov = deg }
}

// Controller orbits a camera around a target.
type Controller struct {
	target   raster.Vec3
	distance float32

	baseAzimuth float32
	basePolar   float32

	autoRotate bool
	autoSpeed  float32

	drag      bool
	dragYaw   float32
	dragPitch float32

	zoom             bool
	zoomSpeed        float32
	minDist, maxDist float32

	minPolar, maxPolar float32

	fov float32
}

// New creates a controller for a camera placed at position looking at target.
// Invalid options are clamped and logged.
func New(position, target raster.Vec3, opts ...Option) *Controller {
	c := &Controller{
		target:    target,
		drag:      true,
		zoomSpeed: 1,
		minPolar:  0,
		maxPolar:  math32.Pi,
		fov:       50,
	}

	off := position.Sub(target)
	c.distance = raster.Len(off)
	if c.distance > 0 {
		c.basePolar = math32.Acos(raster.Clamp(off.Y/c.distance, -1, 1))
		c.baseAzimuth = math32.Atan2(off.X, off.Z)
	} else {
		c.basePolar = math32.Pi / 2
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.sanitize()
	return c
}

func (c *Controller) sanitize() {
	log := stage.Logger()

	if c.autoSpeed < 0 || math32.IsNaN(c.autoSpeed) {
		log.Warn("camera: clamped auto-rotate speed", "value", c.autoSpeed)
		c.autoSpeed = 0
	}
	if c.zoomSpeed < 0 || math32.IsNaN(c.zoomSpeed) {
		log.Warn("camera: clamped zoom speed", "value", c.zoomSpeed)
		c.zoomSpeed = 0
	}
	if c.fov <= 1 || c.fov >= 179 {
		log.Warn("camera: clamped field of view", "value", c.fov)
		c.fov = 50
	}

	if c.minPolar > c.maxPolar {
		c.minPolar, c.maxPolar = c.maxPolar, c.minPolar
	}
	c.minPolar = raster.Clamp(c.minPolar, 0, math32.Pi)
	c.maxPolar = raster.Clamp(c.maxPolar, 0, math32.Pi)

	if c.distance < MinDistance {
		c.distance = MinDistance
	}
	if c.zoom {
		if c.minDist > c.maxDist {
			log.Warn("camera: swapped zoom bounds", "min", c.minDist, "max", c.maxDist)
			c.minDist, c.maxDist = c.maxDist, c.minDist
		}
		if c.minDist <= 0 {
			c.minDist = MinDistance
		}
		if c.maxDist <= 0 {
			c.maxDist = MinDistance
		}
		c.distance = raster.Clamp(c.distance, c.minDist, c.maxDist)
	}
}

// AutoRotateRate returns the auto-rotation rate in radians per second.
// Speed 1 is one revolution per 60 seconds.
func (c *Controller) AutoRotateRate() float32 {
	if !c.autoRotate {
		return 0
	}
	return 2 * math32.Pi / 60 * c.autoSpeed
}

// Azimuth returns the effective azimuth at elapsed seconds, wrapped to [0, 2π).
func (c *Controller) Azimuth(elapsed float64) float32 {
	var rate float64
	if c.autoRotate {
		rate = 2 * math.Pi / 60 * float64(c.autoSpeed)
	}
	// Wrap in float64 before narrowing; elapsed grows without bound.
	a := motion.WrapAngle(float64(c.baseAzimuth) + rate*elapsed)
	a = motion.WrapAngle(a + float64(c.dragYaw))
	if a32 := float32(a); a32 < 2*math32.Pi {
		return a32
	}
	return 0
}

// Polar returns the effective polar angle.
func (c *Controller) Polar() float32 {
	return raster.Clamp(c.basePolar+c.dragPitch, c.minPolar, c.maxPolar)
}

func (c *Controller) Distance() float32 { return c.distance }

// ZoomEnabled reports whether wheel input changes the distance.
func (c *Controller) ZoomEnabled() bool { return c.zoom }

// Update returns the camera for elapsed seconds since the owning loop started.
func (c *Controller) Update(elapsed float64) raster.Camera {
	az := c.Azimuth(elapsed)
	polar := c.Polar()

	sp := math32.Sin(polar)
	off := raster.V3(
		c.distance*sp*math32.Sin(az),
		c.distance*math32.Cos(polar),
		c.distance*sp*math32.Cos(az),
	)

	cam := raster.DefaultCamera()
	cam.Position = c.target.Add(off)
	cam.Target = c.target
	cam.FOVDeg = c.fov
	return cam
}

// Drag applies a pointer drag of (dx, dy) pixels over a surface of the given height.
func (c *Controller) Drag(dx, dy, height float32) {
	if !c.drag || height <= 0 {
		return
	}
	c.dragYaw -= 2 * math32.Pi * dx / height
	c.dragYaw = math32.Mod(c.dragYaw, 2*math32.Pi)

	// Keep the pitch accumulator inside the polar range so reversing direction
	// responds immediately.
	pitch := c.dragPitch - 2*math32.Pi*dy/height
	c.dragPitch = raster.Clamp(c.basePolar+pitch, c.minPolar, c.maxPolar) - c.basePolar
}

// Zoom applies a wheel delta; positive deltas move the camera closer.
func (c *Controller) Zoom(delta float32) {
	if !c.zoom || delta == 0 {
		return
	}
	c.SetDistance(c.distance * math32.Pow(zoomBase, delta*c.zoomSpeed))
}

// SetDistance sets the orbit distance, clamped to the zoom bounds when zoom is enabled.
func (c *Controller) SetDistance(d float32) {
	if math32.IsNaN(d) || d < MinDistance {
		d = MinDistance
	}
	if c.zoom {
		d = raster.Clamp(d, c.minDist, c.maxDist)
	}
	c.distance = d
}

// Reset drops accumulated drag input.
func (c *Controller) Reset() {
	c.dragYaw, c.dragPitch = 0, 0
}
