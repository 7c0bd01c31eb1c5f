// Package entity defines the animated primitives a scene is made of.
package entity

import (
	"fmt"

	"folio/stage/motion"
	"folio/stage/raster"
)

// Kind is the primitive an entity draws.
type Kind uint8

const (
	Sphere Kind = iota
	Torus
	Cube
	Particle
	Panel
)

func (k Kind) String() string {
	switch k {
	case Sphere:
		return "sphere"
	case Torus:
		return "torus"
	case Cube:
		return "cube"
	case Particle:
		return "particles"
	case Panel:
		return "panel"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// HoverSpec enables pointer-hover reaction.
type HoverSpec struct {
	Scale             float64 // target scale while hovered, e.g. 1.2
	EmissiveIntensity float32 // emissive intensity while hovered
	Smoothing         float64 // per-tick easing factor; 0 means motion.DefaultSmoothing
}

// Spec is the immutable description an entity is built from.
type Spec struct {
	Kind  Kind
	Label string

	Position raster.Vec3
	Scale    raster.Vec3 // zero means unit scale

	Material raster.Material
	Motion   motion.Profile

	Hover *HoverSpec

	// Geometry is the mesh in object space. Radius bounds it for picking.
	Geometry raster.Mesh
	Radius   float32
}

// Transform is the per-tick output of an entity.
type Transform struct {
	Position raster.Vec3
	Rotation raster.Vec3
	Scale    raster.Vec3

	EmissiveIntensity float32
}

// Matrix composes translation, rotation and scale.
func (t Transform) Matrix() raster.Mat4 {
	return raster.Mat4Mul(raster.Mat4Translate(t.Position),
		raster.Mat4Mul(raster.Mat4Euler(t.Rotation), raster.Mat4Scale(t.Scale)))
}

// Entity is one animated object. Only its hover state changes after construction.
type Entity struct {
	spec  Spec
	hover *motion.Hover
}

// New builds an entity from a spec.
func New(s Spec) *Entity {
	if s.Scale == (raster.Vec3{}) {
		s.Scale = raster.Splat(1)
	}
	if s.Motion == nil {
		s.Motion = motion.None{}
	}
	e := &Entity{spec: s}
	if s.Hover != nil {
		e.hover = motion.NewHover(1, s.Hover.Scale, s.Hover.Smoothing)
	}
	return e
}

func (e *Entity) Kind() Kind                { return e.spec.Kind }
func (e *Entity) Label() string             { return e.spec.Label }
func (e *Entity) Material() raster.Material { return e.spec.Material }
func (e *Entity) Geometry() raster.Mesh     { return e.spec.Geometry }

// Hoverable reports whether the entity reacts to pointer hover.
func (e *Entity) Hoverable() bool { return e.hover != nil }

// SetHovered records pointer-over state. Ignored for entities without hover.
func (e *Entity) SetHovered(on bool) { e.hover.Set(on) }

func (e *Entity) Hovered() bool { return e.hover.Hovered() }

// Update evaluates the motion profile at elapsed seconds t and advances hover
// smoothing by one tick.
func (e *Entity) Update(t float64) Transform {
	pose := e.spec.Motion.Eval(t)

	scale := e.spec.Scale
	emissive := e.spec.Material.EmissiveIntensity
	if e.hover != nil {
		scale = scale.Mul(float32(e.hover.Step()))
		if e.hover.Hovered() {
			emissive = e.spec.Hover.EmissiveIntensity
		}
	}

	return Transform{
		Position: e.spec.Position.Add(raster.V3(
			float32(pose.Offset.X), float32(pose.Offset.Y), float32(pose.Offset.Z))),
		Rotation: raster.V3(
			float32(motion.WrapAngle(pose.Rotation.X)),
			float32(motion.WrapAngle(pose.Rotation.Y)),
			float32(motion.WrapAngle(pose.Rotation.Z))),
		Scale:             scale,
		EmissiveIntensity: emissive,
	}
}

// Bounds returns a world-space bounding sphere for a transform.
func (e *Entity) Bounds(t Transform) (center raster.Vec3, radius float32) {
	s := max(t.Scale.X, t.Scale.Y, t.Scale.Z)
	return t.Position, e.spec.Radius * s
}
