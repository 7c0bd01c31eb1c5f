package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/stage/raster"
)

func skillsCamera(opts ...Option) *Controller {
	base := []Option{WithAutoRotate(1), WithZoom(6, 12)}
	return New(raster.V3(0, 0, 8), raster.V3(0, 0, 0), append(base, opts...)...)
}

func TestAutoRotateIsRateTimesElapsed(t *testing.T) {
	c := skillsCamera()
	rate := 2 * math.Pi / 60

	for _, el := range []float64{0, 1, 15, 59.5, 90} {
		want := math.Mod(rate*el, 2*math.Pi)
		assert.InDelta(t, want, c.Azimuth(el), 1e-4, "elapsed %v", el)
	}
}

func TestAutoRotateStaysSmoothAfterLongRuns(t *testing.T) {
	c := skillsCamera()
	rate := 2 * math.Pi / 60
	step := 1.0 / 60

	el := 3*86400.0 + 7
	for i := range 120 {
		now := el + float64(i)*step
		want := math.Mod(rate*now, 2*math.Pi)
		assert.InDelta(t, want, c.Azimuth(now), 1e-5, "elapsed %v", now)
	}

	a, b := c.Azimuth(el), c.Azimuth(el+step)
	assert.InDelta(t, rate*step, float64(b-a), 1e-5)
}

func TestAutoRotateDisabled(t *testing.T) {
	c := New(raster.V3(0, 0, 8), raster.Vec3{})
	assert.Zero(t, c.AutoRotateRate())
	assert.InDelta(t, 0, c.Azimuth(42), 1e-6)
}

func TestDragAddsToAutoRotation(t *testing.T) {
	c := skillsCamera()
	c.Drag(-50, 0, 400)

	yaw := 2 * math.Pi * 50 / 400
	want := math.Mod(2*math.Pi/60*10+yaw, 2*math.Pi)
	assert.InDelta(t, want, c.Azimuth(10), 1e-4)

	// Auto-rotation keeps advancing after the drag.
	assert.InDelta(t, math.Mod(2*math.Pi/60*20+yaw, 2*math.Pi), c.Azimuth(20), 1e-4)
}

func TestLockedPolarStaysHorizontal(t *testing.T) {
	c := New(raster.V3(0, 0, 8), raster.Vec3{}, WithAutoRotate(0.5), WithLockedPolar(math.Pi/2))
	c.Drag(30, 200, 300)

	assert.InDelta(t, math.Pi/2, c.Polar(), 1e-6)
	cam := c.Update(12.3)
	assert.InDelta(t, 0, cam.Position.Y, 1e-4)
	assert.InDelta(t, 8, raster.Len(cam.Position), 1e-4)
}

func TestPolarClampRespondsToReverseDrag(t *testing.T) {
	c := New(raster.V3(0, 0, 8), raster.Vec3{}, WithPolarRange(math.Pi/4, 3*math.Pi/4))
	c.Drag(0, 10000, 100)
	assert.InDelta(t, math.Pi/4, c.Polar(), 1e-5)

	c.Drag(0, -10, 100)
	assert.Greater(t, c.Polar(), float32(math.Pi/4))
}

func TestZoomClampsToBounds(t *testing.T) {
	c := skillsCamera()

	c.SetDistance(3)
	assert.Equal(t, float32(6), c.Distance())
	c.SetDistance(20)
	assert.Equal(t, float32(12), c.Distance())

	c.SetDistance(8)
	c.Zoom(1)
	assert.InDelta(t, 8*0.95, c.Distance(), 1e-5)
	for range 100 {
		c.Zoom(5)
	}
	assert.Equal(t, float32(6), c.Distance())
}

func TestZoomDisabledIgnoresWheel(t *testing.T) {
	c := New(raster.V3(0, 0, 8), raster.Vec3{}, WithAutoRotate(0.5))
	c.Zoom(10)
	assert.Equal(t, float32(8), c.Distance())
}

func TestDragDisabled(t *testing.T) {
	c := New(raster.V3(0, 0, 8), raster.Vec3{}, WithDrag(false))
	c.Drag(100, 100, 100)
	assert.InDelta(t, 0, c.Azimuth(0), 1e-6)
	assert.InDelta(t, math.Pi/2, c.Polar(), 1e-5)
}

func TestInvalidOptionsAreClamped(t *testing.T) {
	c := New(raster.V3(0, 0, 8), raster.Vec3{},
		WithAutoRotate(-3),
		WithZoom(12, 6),
		WithFOV(400),
	)
	assert.Zero(t, c.AutoRotateRate())

	c.SetDistance(1)
	assert.Equal(t, float32(6), c.Distance())
	c.SetDistance(100)
	assert.Equal(t, float32(12), c.Distance())

	assert.Equal(t, float32(50), c.Update(0).FOVDeg)

	z := New(raster.V3(0, 0, 8), raster.Vec3{}, WithZoom(-1, 0))
	z.SetDistance(5)
	assert.Equal(t, float32(MinDistance), z.Distance())
}

func TestUpdateStartsAtInitialPosition(t *testing.T) {
	c := skillsCamera()
	cam := c.Update(0)
	require.Equal(t, float32(50), cam.FOVDeg)
	assert.InDelta(t, 0, cam.Position.X, 1e-5)
	assert.InDelta(t, 0, cam.Position.Y, 1e-5)
	assert.InDelta(t, 8, cam.Position.Z, 1e-5)
}
