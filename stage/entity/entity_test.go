package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/stage/motion"
	"folio/stage/raster"
)

func TestUpdateAppliesMotionAroundBasePosition(t *testing.T) {
	e := New(Spec{
		Kind:     Sphere,
		Position: raster.V3(-3, 0, 0),
		Motion:   motion.Combine(motion.NewDualAxisRotate(0.5, 0.5, 0), motion.NewBob(motion.AxisY, 0.5, 0)),
		Radius:   1,
	})

	tr := e.Update(math.Pi / 2)
	assert.InDelta(t, -3, tr.Position.X, 1e-6)
	assert.InDelta(t, 0.5, tr.Position.Y, 1e-6)
	assert.InDelta(t, math.Pi/4, tr.Rotation.X, 1e-6)
	assert.InDelta(t, math.Pi/4, tr.Rotation.Y, 1e-6)
	assert.Equal(t, raster.Splat(1), tr.Scale)
}

func TestUpdateWrapsRotation(t *testing.T) {
	e := New(Spec{Kind: Cube, Motion: motion.NewSpin(motion.AxisY, 1, 0)})

	tr := e.Update(1000)
	assert.GreaterOrEqual(t, tr.Rotation.Y, float32(0))
	assert.Less(t, tr.Rotation.Y, float32(2*math.Pi)+1e-4)
}

func TestHoverScalesAndBrightens(t *testing.T) {
	e := New(Spec{
		Kind:     Cube,
		Material: raster.Material{EmissiveIntensity: 0.2},
		Hover:    &HoverSpec{Scale: 1.2, EmissiveIntensity: 0.5},
		Radius:   0.5,
	})
	require.True(t, e.Hoverable())

	tr := e.Update(0)
	assert.Equal(t, float32(0.2), tr.EmissiveIntensity)
	assert.Equal(t, raster.Splat(1), tr.Scale)

	e.SetHovered(true)
	var last float32 = 1
	for range 200 {
		tr = e.Update(0)
		assert.GreaterOrEqual(t, tr.Scale.X, last)
		last = tr.Scale.X
	}
	assert.Equal(t, float32(0.5), tr.EmissiveIntensity)
	assert.InDelta(t, 1.2, tr.Scale.X, 1e-4)

	_, r := e.Bounds(tr)
	assert.InDelta(t, 0.6, r, 1e-4)

	e.SetHovered(false)
	for range 200 {
		tr = e.Update(0)
	}
	assert.InDelta(t, 1.0, tr.Scale.X, 1e-4)
	assert.Equal(t, float32(0.2), tr.EmissiveIntensity)
}

func TestSetHoveredIgnoredWithoutHoverSpec(t *testing.T) {
	e := New(Spec{Kind: Torus})
	e.SetHovered(true)
	assert.False(t, e.Hovered())
	assert.Equal(t, raster.Splat(1), e.Update(3).Scale)
}

func TestTransformMatrixTranslates(t *testing.T) {
	tr := Transform{Position: raster.V3(1, 2, 3), Scale: raster.Splat(2)}
	p := raster.Mat4MulPoint(tr.Matrix(), raster.V3(1, 0, 0))
	assert.InDelta(t, 3, p.X, 1e-6)
	assert.InDelta(t, 2, p.Y, 1e-6)
	assert.InDelta(t, 3, p.Z, 1e-6)
}

func TestMeshShapes(t *testing.T) {
	s := SphereMesh(1.5, 16, 8)
	for _, v := range s.Vertices {
		assert.InDelta(t, 1.5, raster.Len(v.Pos), 1e-4)
	}
	assert.Zero(t, len(s.Indices)%3)

	tor := TorusMesh(1, 0.3, 24, 12)
	assert.Len(t, tor.Vertices, 24*12)
	assert.Len(t, tor.Indices, 24*12*6)
	for _, i := range tor.Indices {
		assert.Less(t, int(i), len(tor.Vertices))
	}

	box := BoxMesh(1.5, 2, 0.1)
	assert.Len(t, box.Vertices, 8)
	assert.Len(t, box.Indices, 36)
}

func TestParticleMeshDeterministic(t *testing.T) {
	a := ParticleMesh(200, 10, 42)
	b := ParticleMesh(200, 10, 42)
	require.Len(t, a.Vertices, 200)
	assert.Equal(t, a.Vertices, b.Vertices)
	for _, v := range a.Vertices {
		assert.LessOrEqual(t, math.Abs(float64(v.Pos.X)), 5.0)
		assert.LessOrEqual(t, math.Abs(float64(v.Pos.Y)), 5.0)
		assert.LessOrEqual(t, math.Abs(float64(v.Pos.Z)), 5.0)
	}
	assert.NotEqual(t, a.Vertices, ParticleMesh(200, 10, 7).Vertices)
}
