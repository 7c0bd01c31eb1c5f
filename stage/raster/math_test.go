package raster

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestMat4MulIdentity(t *testing.T) {
	a := Mat4Identity()
	b := Mat4Translate(V3(1, 2, 3))
	assert.Equal(t, b, Mat4Mul(a, b))
	assert.Equal(t, b, Mat4Mul(b, a))
}

func TestLookAtNotIdentity(t *testing.T) {
	m := Mat4LookAt(V3(0, 0, 3), V3(0, 0, 0), V3(0, 1, 0))
	assert.NotEqual(t, Mat4Identity(), m)
}

func TestRotateYQuarterTurn(t *testing.T) {
	p := Mat4MulPoint(Mat4RotateY(math32.Pi/2), V3(1, 0, 0))
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)
	assert.InDelta(t, -1, p.Z, 1e-5)
}

func TestEulerAppliesXFirst(t *testing.T) {
	r := V3(math32.Pi/2, math32.Pi/2, 0)
	got := Mat4MulPoint(Mat4Euler(r), V3(0, 1, 0))
	want := Mat4MulPoint(Mat4RotateY(r.Y), Mat4MulPoint(Mat4RotateX(r.X), V3(0, 1, 0)))
	assert.InDelta(t, want.X, got.X, 1e-5)
	assert.InDelta(t, want.Y, got.Y, 1e-5)
	assert.InDelta(t, want.Z, got.Z, 1e-5)
}

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, Vec3{}, Normalize(Vec3{}))
	assert.InDelta(t, 1, Len(Normalize(V3(3, 4, 0))), 1e-6)
}
