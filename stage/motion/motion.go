// Package motion holds the deterministic time-to-pose functions that animate entities.
//
// Every profile is a pure function of elapsed seconds. Angles are returned unwrapped
// so they keep growing with time; callers wrap them when building matrices.
package motion

import (
	"math"

	"folio/stage"
)

// Vec is a float64 triple. Time-derived angles stay in float64 until the renderer.
type Vec struct {
	X, Y, Z float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Axis selects a single axis for Spin and Bob.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) vec(v float64) Vec {
	switch a {
	case AxisX:
		return Vec{X: v}
	case AxisZ:
		return Vec{Z: v}
	default:
		return Vec{Y: v}
	}
}

// Pose is the output of a profile: a rotation (radians) and a positional offset.
type Pose struct {
	Rotation Vec
	Offset   Vec
}

// Profile maps elapsed seconds to a pose.
type Profile interface {
	Eval(t float64) Pose
}

// None keeps the entity still.
type None struct{}

func (None) Eval(float64) Pose { return Pose{} }

// DualAxisRotate turns around X and Y at independent rates. Phase is added to both
// axes so siblings with different phases never line up.
type DualAxisRotate struct {
	RateX, RateY float64
	Phase        float64
}

// NewDualAxisRotate clamps negative rates to zero.
func NewDualAxisRotate(rateX, rateY, phase float64) DualAxisRotate {
	return DualAxisRotate{
		RateX: nonNegative("rate_x", rateX),
		RateY: nonNegative("rate_y", rateY),
		Phase: phase,
	}
}

func (p DualAxisRotate) Eval(t float64) Pose {
	return Pose{Rotation: Vec{X: t*p.RateX + p.Phase, Y: t*p.RateY + p.Phase}}
}

// Spin turns around a single axis.
type Spin struct {
	Axis  Axis
	Rate  float64
	Phase float64
}

// NewSpin clamps a negative rate to zero.
func NewSpin(axis Axis, rate, phase float64) Spin {
	return Spin{Axis: axis, Rate: nonNegative("rate", rate), Phase: phase}
}

func (p Spin) Eval(t float64) Pose {
	return Pose{Rotation: p.Axis.vec(t*p.Rate + p.Phase)}
}

// Bob moves along one axis: offset = amplitude·sin(t + phase).
type Bob struct {
	Axis      Axis
	Amplitude float64
	Phase     float64
}

// NewBob clamps a negative amplitude to zero.
func NewBob(axis Axis, amplitude, phase float64) Bob {
	return Bob{Axis: axis, Amplitude: nonNegative("amplitude", amplitude), Phase: phase}
}

func (p Bob) Eval(t float64) Pose {
	return Pose{Offset: p.Axis.vec(p.Amplitude * math.Sin(t+p.Phase))}
}

// Combined sums the rotations and offsets of its parts.
type Combined []Profile

func Combine(ps ...Profile) Combined { return Combined(ps) }

func (c Combined) Eval(t float64) Pose {
	var out Pose
	for _, p := range c {
		if p == nil {
			continue
		}
		pose := p.Eval(t)
		out.Rotation = out.Rotation.Add(pose.Rotation)
		out.Offset = out.Offset.Add(pose.Offset)
	}
	return out
}

// WrapAngle reduces an angle to [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func nonNegative(name string, v float64) float64 {
	if v >= 0 && !math.IsNaN(v) {
		return v
	}
	stage.Logger().Warn("motion: clamped invalid parameter", "param", name, "value", v)
	return 0
}
