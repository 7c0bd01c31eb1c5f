package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/stage/gate"
)

func TestObserverRatios(t *testing.T) {
	o := NewObserver()
	o.SetRegion("a", Rect{Y: 0, W: 100, H: 100})
	o.SetRegion("b", Rect{Y: 1000, W: 100, H: 200})

	o.Update(0, 500)
	assert.Equal(t, 1.0, o.Ratio("a"))
	assert.Zero(t, o.Ratio("b"))

	o.Update(1100, 500)
	assert.Zero(t, o.Ratio("a"))
	assert.Equal(t, 0.5, o.Ratio("b"))

	assert.Zero(t, o.Ratio("missing"))
}

func TestObserverNotifiesOnChange(t *testing.T) {
	o := NewObserver()
	o.SetRegion("skills", Rect{Y: 1000, W: 10, H: 100})

	var got []float64
	detach, err := o.Observe("skills", func(r float64) { got = append(got, r) })
	require.NoError(t, err)

	o.Update(0, 500)
	o.Update(10, 500)
	o.Update(590, 500)
	o.Update(600, 500)
	assert.Equal(t, []float64{0, 0.9, 1}, got)

	detach()
	detach()
	o.Update(0, 500)
	assert.Len(t, got, 3)
}

func TestObserverUnknownRegion(t *testing.T) {
	o := NewObserver()
	_, err := o.Observe("nope", func(float64) {})
	assert.ErrorIs(t, err, gate.ErrRegionNotFound)
}

func TestObserverDrivesGate(t *testing.T) {
	o := NewObserver()
	o.SetRegion("contact", Rect{Y: 1000, W: 10, H: 100})

	active := 0
	g := gate.New("contact", 0.1, gate.OnTransition(func(s gate.State) {
		if s == gate.Active {
			active++
		}
	}))
	require.NoError(t, g.Attach(o))

	for _, top := range []float64{0, 200, 505, 520, 900, 0, 900} {
		o.Update(top, 500)
	}
	assert.Equal(t, 1, active)
}

func TestLayoutColumnsAndCards(t *testing.T) {
	wide := ComputeLayout(1280, 800, 6)
	require.Len(t, wide.CardCanvases, 6)
	assert.Equal(t, wide.CardCanvases[0].Y, wide.CardCanvases[2].Y)
	assert.Greater(t, wide.CardCanvases[3].Y, wide.CardCanvases[0].Y)

	mid := ComputeLayout(800, 600, 6)
	assert.Equal(t, mid.CardCanvases[0].Y, mid.CardCanvases[1].Y)
	assert.Greater(t, mid.CardCanvases[2].Y, mid.CardCanvases[1].Y)

	narrow := ComputeLayout(400, 700, 6)
	for i := 1; i < 6; i++ {
		assert.Greater(t, narrow.CardCanvases[i].Y, narrow.CardCanvases[i-1].Y)
	}
	assert.Greater(t, narrow.PageHeight, wide.PageHeight)
}

func TestLayoutSectionsTilePage(t *testing.T) {
	l := ComputeLayout(1280, 800, 6)
	y := 0.0
	for _, s := range l.Sections {
		assert.Equal(t, y, s.Rect.Y, s.ID)
		y += s.Rect.H
	}
	assert.Equal(t, y, l.PageHeight)
	assert.Equal(t, l.PageHeight-800, l.MaxScroll())

	hero, ok := l.Section(SectionHero)
	require.True(t, ok)
	assert.Equal(t, 800.0, hero.Rect.H)

	sk, _ := l.Section(SectionSkills)
	assert.True(t, sk.Rect.Contains(l.SkillsCanvas.X+1, l.SkillsCanvas.Y+1))
	ct, _ := l.Section(SectionContact)
	assert.True(t, ct.Rect.Contains(l.ContactCanvas.X+1, l.ContactCanvas.Y+1))
}
