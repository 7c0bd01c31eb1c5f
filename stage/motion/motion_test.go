package motion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDualAxisRotateMonotonic(t *testing.T) {
	for _, phase := range []float64{0, 1, 4} {
		p := NewDualAxisRotate(0.3, 0.5, phase)

		start := p.Eval(0)
		assert.Equal(t, phase, start.Rotation.X)
		assert.Equal(t, phase, start.Rotation.Y)

		prev := start
		for i := 1; i <= 2000; i++ {
			cur := p.Eval(float64(i) * 0.016)
			require.Greater(t, cur.Rotation.X, prev.Rotation.X)
			require.Greater(t, cur.Rotation.Y, prev.Rotation.Y)
			prev = cur
		}
	}
}

func TestBobBoundedAndPeriodic(t *testing.T) {
	const amp = 0.2
	p := NewBob(AxisY, amp, 0.7)
	for i := 0; i < 1000; i++ {
		tt := float64(i) * 0.037
		off := p.Eval(tt).Offset
		assert.LessOrEqual(t, math.Abs(off.Y), amp)
		assert.Zero(t, off.X)
		assert.InDelta(t, off.Y, p.Eval(tt+2*math.Pi).Offset.Y, 1e-9)
	}
}

func TestNegativeParametersClamp(t *testing.T) {
	assert.Zero(t, NewDualAxisRotate(-1, -2, 0).RateX)
	assert.Zero(t, NewSpin(AxisY, -0.4, 0).Rate)
	assert.Zero(t, NewBob(AxisY, -3, 0).Amplitude)
	assert.Zero(t, NewBob(AxisY, math.NaN(), 0).Amplitude)
}

func TestCombinedSumsParts(t *testing.T) {
	c := Combine(NewSpin(AxisY, 0.4, 0), NewBob(AxisY, 0.2, 0), nil)
	pose := c.Eval(1.5)
	assert.InDelta(t, 0.6, pose.Rotation.Y, 1e-12)
	assert.InDelta(t, 0.2*math.Sin(1.5), pose.Offset.Y, 1e-12)
}

func TestWrapAngle(t *testing.T) {
	assert.InDelta(t, 1, WrapAngle(1+4*math.Pi), 1e-9)
	assert.InDelta(t, 2*math.Pi-1, WrapAngle(-1), 1e-9)
}

func TestHoverConvergesAndStays(t *testing.T) {
	h := NewHover(1, 1.2, DefaultSmoothing)
	h.Set(true)
	for i := 0; i < 300; i++ {
		s := h.Step()
		require.GreaterOrEqual(t, s, 1.0)
		require.LessOrEqual(t, s, 1.2)
	}
	assert.InDelta(t, 1.2, h.Scale(), 1e-6)
	for i := 0; i < 50; i++ {
		assert.InDelta(t, 1.2, h.Step(), 1e-6)
	}

	h.Set(false)
	for i := 0; i < 300; i++ {
		s := h.Step()
		require.GreaterOrEqual(t, s, 1.0)
		require.LessOrEqual(t, s, 1.2)
	}
	assert.InDelta(t, 1, h.Scale(), 1e-6)
}

func TestHoverEasesNotSnaps(t *testing.T) {
	h := NewHover(1, 1.2, 0)
	h.Set(true)
	assert.InDelta(t, 1.02, h.Step(), 1e-12)
	assert.True(t, h.Hovered())
}
