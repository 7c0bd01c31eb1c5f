package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quad(size Scalar) Mesh {
	return Mesh{
		Vertices: []Vertex{
			{Pos: V3(-size, -size, 0)},
			{Pos: V3(size, -size, 0)},
			{Pos: V3(size, size, 0)},
			{Pos: V3(-size, size, 0)},
		},
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}

func countOpaque(tg *RGBATarget) int {
	n := 0
	for i := 3; i < len(tg.Img.Pix); i += 4 {
		if tg.Img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

func TestRenderClearsTransparent(t *testing.T) {
	tg := NewRGBATarget(32, 32)
	tg.Clear(RGB(0xFF, 0, 0))

	r := NewRenderer(32, 32, true)
	r.Render(tg, CreateScene(1))
	assert.Equal(t, 0, countOpaque(tg))
}

func TestRenderQuadCoversCenter(t *testing.T) {
	tg := NewRGBATarget(64, 64)
	s := CreateScene(1)
	s.Lights = []Light{AmbientLight(RGB(0xFF, 0xFF, 0xFF), 1)}
	m := quad(1)
	m.Material.BaseColor = RGB(0x80, 0x40, 0x20)
	require.GreaterOrEqual(t, s.AddMesh(m), 0)

	r := NewRenderer(64, 64, true)
	r.Render(tg, s)

	c := tg.Img.RGBAAt(32, 32)
	assert.Equal(t, uint8(0xFF), c.A)
	assert.Equal(t, uint8(0x80), c.R)
	assert.Equal(t, uint8(0), tg.Img.RGBAAt(0, 0).A)
}

func TestRenderWireframeLeavesInteriorEmpty(t *testing.T) {
	tg := NewRGBATarget(64, 64)
	s := CreateScene(1)
	m := quad(1)
	m.Material.Mode = RenderWireframe
	m.Material.EmissiveIntensity = 1
	m.Material.Emissive = RGB(0xFF, 0xFF, 0xFF)
	s.AddMesh(m)

	NewRenderer(64, 64, false).Render(tg, s)

	assert.Greater(t, countOpaque(tg), 0)
	// Point inside the lower-right triangle, away from every edge.
	assert.Equal(t, uint8(0), tg.Img.RGBAAt(36, 36).A)
}

func TestRenderPointsSkipsBehindCamera(t *testing.T) {
	tg := NewRGBATarget(32, 32)
	s := CreateScene(1)
	s.AddMesh(Mesh{
		Vertices: []Vertex{{Pos: V3(0, 0, 0)}, {Pos: V3(0, 0, 20)}},
		Material: Material{Mode: RenderPoints, BaseColor: RGB(0xFF, 0xFF, 0xFF)},
	})

	NewRenderer(32, 32, true).Render(tg, s)
	assert.Equal(t, 1, countOpaque(tg))
}

func TestProjectOriginToCenter(t *testing.T) {
	x, y, ok := Project(DefaultCamera(), 101, 51, V3(0, 0, 0))
	require.True(t, ok)
	assert.InDelta(t, 50, x, 1e-3)
	assert.InDelta(t, 25, y, 1e-3)

	_, _, ok = Project(DefaultCamera(), 101, 51, V3(0, 0, 9))
	assert.False(t, ok)
}

func TestResizeRederivesProjection(t *testing.T) {
	s := CreateScene(0)
	r := NewRenderer(0, 0, true)

	r.Render(NewRGBATarget(40, 20), s)
	wide := r.proj
	assert.False(t, r.Resized(40, 20))
	assert.True(t, r.Resized(20, 40))

	r.Render(NewRGBATarget(20, 40), s)
	assert.NotEqual(t, wide, r.proj)
	assert.InDelta(t, wide[5], r.proj[5], 1e-6)
	assert.InDelta(t, wide[0]*4, r.proj[0], 1e-4)
}

func TestShadeEmissiveOnlyWithoutLights(t *testing.T) {
	mat := Material{BaseColor: RGB(0xFF, 0xFF, 0xFF), Emissive: RGB(0, 0xFF, 0), EmissiveIntensity: 0.5}
	c := Shade(mat, V3(0, 0, 1), Vec3{}, V3(0, 0, 5), nil)
	assert.Equal(t, uint8(0), c.R)
	assert.Equal(t, uint8(128), c.G)
}

func TestSceneCapacity(t *testing.T) {
	s := CreateScene(1)
	assert.Equal(t, 0, s.AddMesh(quad(1)))
	assert.Equal(t, -1, s.AddMesh(quad(1)))
	s.RemoveMesh(0)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.AddMesh(quad(1)))
}
