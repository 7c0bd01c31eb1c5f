package app

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/hal"
	"folio/internal/config"
	"folio/stage/scene"
	"folio/stage/surfaces"
)

type fakeFB struct {
	img   *image.RGBA
	scale float64
}

func (f *fakeFB) Width() int         { return f.img.Rect.Dx() }
func (f *fakeFB) Height() int        { return f.img.Rect.Dy() }
func (f *fakeFB) Scale() float64     { return f.scale }
func (f *fakeFB) Image() *image.RGBA { return f.img }
func (f *fakeFB) Present() error     { return nil }
func (f *fakeFB) ClearRGB(r, g, b uint8) {
	for i := 0; i < len(f.img.Pix); i += 4 {
		f.img.Pix[i], f.img.Pix[i+1], f.img.Pix[i+2], f.img.Pix[i+3] = r, g, b, 0xFF
	}
}

type fakeHAL struct {
	fb  *fakeFB
	kbd chan hal.KeyEvent
	ptr chan hal.PointerEvent
	now time.Time
}

func newFakeHAL(w, h int) *fakeHAL {
	return &fakeHAL{
		fb:  &fakeFB{img: image.NewRGBA(image.Rect(0, 0, w, h)), scale: 1},
		kbd: make(chan hal.KeyEvent, 16),
		ptr: make(chan hal.PointerEvent, 16),
		now: time.Unix(0, 0),
	}
}

func (h *fakeHAL) Display() hal.Display         { return h }
func (h *fakeHAL) Input() hal.Input             { return h }
func (h *fakeHAL) Time() hal.Time               { return h }
func (h *fakeHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *fakeHAL) Keyboard() hal.Keyboard       { return h }
func (h *fakeHAL) Pointer() hal.Pointer         { return ptrEvents(h.ptr) }
func (h *fakeHAL) Events() <-chan hal.KeyEvent  { return h.kbd }
func (h *fakeHAL) Now() time.Time               { return h.now }
func (h *fakeHAL) resize(w, hgt int, scale float64) {
	h.fb.img = image.NewRGBA(image.Rect(0, 0, w, hgt))
	h.fb.scale = scale
}

type ptrEvents chan hal.PointerEvent

func (p ptrEvents) Events() <-chan hal.PointerEvent { return p }

func step(t *testing.T, h *fakeHAL, p *Page, n int) {
	t.Helper()
	for range n {
		h.now = h.now.Add(16 * time.Millisecond)
		require.NoError(t, p.Step())
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Hero.Particles.Count = 50
	return cfg
}

func mount(p *Page, region string) *Mount {
	for _, m := range p.mounts {
		if m.region == region {
			return m
		}
	}
	return nil
}

func TestHeroActivatesAndOthersWait(t *testing.T) {
	h := newFakeHAL(640, 400)
	p := NewPage(h, testConfig())
	defer p.Close()

	step(t, h, p, 2)
	assert.True(t, mount(p, SectionHero).Active())
	assert.False(t, mount(p, SectionSkills).Active())
	assert.False(t, mount(p, SectionContact).Active())
	assert.Equal(t, 1, p.refresh.Scheduled())

	sk, _ := p.Layout().Section(SectionSkills)
	p.ScrollTo(sk.Rect.Y)
	step(t, h, p, 1)
	assert.True(t, mount(p, SectionSkills).Active())

	// Scrolling away keeps the skills scene alive.
	p.ScrollTo(0)
	step(t, h, p, 1)
	assert.True(t, mount(p, SectionSkills).Active())
	assert.Equal(t, 2, p.refresh.Scheduled())
}

func TestProjectCardsRunIndependentLoops(t *testing.T) {
	h := newFakeHAL(1280, 800)
	p := NewPage(h, testConfig())
	defer p.Close()

	pr, _ := p.Layout().Section(SectionProjects)
	p.ScrollTo(pr.Rect.Y)
	step(t, h, p, 3)

	m := mount(p, SectionProjects)
	require.True(t, m.Active())
	require.Len(t, m.surfaces, 6)
	for _, s := range m.surfaces {
		assert.True(t, s.loop.Running(), s.id)
		assert.Equal(t, uint64(3), s.loop.Ticks(), s.id)
	}
}

func TestCompositeDrawsHeroScene(t *testing.T) {
	h := newFakeHAL(320, 200)
	p := NewPage(h, testConfig())
	defer p.Close()
	step(t, h, p, 2)

	bg := rgba(p.cfg.Window.Background)
	differs := 0
	img := h.fb.img
	for y := 0; y < img.Rect.Dy(); y++ {
		for x := 0; x < img.Rect.Dx(); x++ {
			c := img.RGBAAt(x, y)
			if c.R != bg.R || c.G != bg.G || c.B != bg.B {
				differs++
			}
		}
	}
	assert.Positive(t, differs)
}

func TestWheelScrollsOrZooms(t *testing.T) {
	h := newFakeHAL(1280, 800)
	p := NewPage(h, testConfig())
	defer p.Close()
	step(t, h, p, 1)

	// Hero has zoom disabled: the wheel scrolls the page.
	h.ptr <- hal.PointerEvent{Kind: hal.PointerWheel, X: 640, Y: 400, WheelY: -2}
	step(t, h, p, 1)
	assert.Equal(t, 2*wheelStep, p.Scroll())

	sk, _ := p.Layout().Section(SectionSkills)
	p.ScrollTo(sk.Rect.Y)
	step(t, h, p, 1)

	c := p.Layout().SkillsCanvas
	vx, vy := c.X+c.W/2, c.Y+c.H/2-p.Scroll()
	ctrl := mount(p, SectionSkills).surfaces[0].sc.Controller()
	before, scroll := ctrl.Distance(), p.Scroll()

	h.ptr <- hal.PointerEvent{Kind: hal.PointerWheel, X: vx, Y: vy, WheelY: 3}
	step(t, h, p, 1)
	assert.Less(t, ctrl.Distance(), before)
	assert.Equal(t, scroll, p.Scroll())
}

func TestDragRotatesSkillsCamera(t *testing.T) {
	h := newFakeHAL(1280, 800)
	p := NewPage(h, testConfig())
	defer p.Close()

	sk, _ := p.Layout().Section(SectionSkills)
	p.ScrollTo(sk.Rect.Y)
	step(t, h, p, 1)

	c := p.Layout().SkillsCanvas
	vx, vy := c.X+c.W/2, c.Y+c.H/2-p.Scroll()
	ctrl := mount(p, SectionSkills).surfaces[0].sc.Controller()
	az := ctrl.Azimuth(0)

	h.ptr <- hal.PointerEvent{Kind: hal.PointerMove, X: vx, Y: vy}
	h.ptr <- hal.PointerEvent{Kind: hal.PointerDown, X: vx, Y: vy}
	h.ptr <- hal.PointerEvent{Kind: hal.PointerMove, X: vx + 100, Y: vy}
	h.ptr <- hal.PointerEvent{Kind: hal.PointerUp, X: vx + 100, Y: vy}
	step(t, h, p, 1)

	assert.NotEqual(t, az, ctrl.Azimuth(0))
}

func TestKeysScrollAndQuit(t *testing.T) {
	h := newFakeHAL(640, 400)
	p := NewPage(h, testConfig())
	defer p.Close()

	h.kbd <- hal.KeyEvent{Code: hal.KeyEnd, Press: true}
	step(t, h, p, 1)
	assert.Equal(t, p.Layout().MaxScroll(), p.Scroll())

	h.kbd <- hal.KeyEvent{Code: hal.KeyHome, Press: true}
	h.kbd <- hal.KeyEvent{Code: hal.KeyF1, Press: true}
	step(t, h, p, 1)
	assert.Zero(t, p.Scroll())
	assert.True(t, p.debug)

	h.kbd <- hal.KeyEvent{Code: hal.KeyEscape, Press: true}
	assert.ErrorIs(t, p.Step(), hal.ErrQuit)
}

func TestResizeRelayouts(t *testing.T) {
	h := newFakeHAL(1280, 800)
	p := NewPage(h, testConfig())
	defer p.Close()
	step(t, h, p, 1)
	assert.Equal(t, 3, Columns(p.Layout().Width))

	h.resize(1200, 1600, 2)
	step(t, h, p, 1)
	assert.Equal(t, 600.0, p.Layout().Width)
	assert.Equal(t, 800.0, p.Layout().Height)

	hero := mount(p, SectionHero).surfaces[0]
	w, ht := hero.target.Size()
	assert.Equal(t, 1200, w)
	assert.Equal(t, 1600, ht)
}

func TestRenderScaleShrinksTargets(t *testing.T) {
	cfg := testConfig()
	cfg.Window.RenderScale = 0.5
	h := newFakeHAL(400, 300)
	p := NewPage(h, cfg)
	defer p.Close()
	step(t, h, p, 1)

	hero := mount(p, SectionHero).surfaces[0]
	w, ht := hero.target.Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 150, ht)
}

func TestCloseStopsEverything(t *testing.T) {
	h := newFakeHAL(640, 400)
	p := NewPage(h, testConfig())
	step(t, h, p, 1)
	require.Positive(t, p.refresh.Scheduled())

	p.Close()
	assert.Zero(t, p.refresh.Scheduled())
	assert.NotPanics(t, p.Close)
}

func TestPanicShowsCrashScreen(t *testing.T) {
	h := newFakeHAL(320, 200)
	p := NewPage(h, testConfig())

	bad := newMount(SectionAbout, 0.1, false, p.refresh, &surface{
		id:    "bad",
		rect:  func(Layout) Rect { return Rect{} },
		build: func() *scene.Scene { panic("no scene") },
	})
	p.mounts = append(p.mounts, bad)
	require.NoError(t, bad.Attach(p.observer))

	about, _ := p.Layout().Section(SectionAbout)
	p.ScrollTo(about.Rect.Y)
	step(t, h, p, 2)
	require.NotNil(t, p.crash)
	assert.Zero(t, p.refresh.Scheduled())

	white := 0
	for i := 0; i < len(h.fb.img.Pix); i += 4 {
		if h.fb.img.Pix[i] == 255 && h.fb.img.Pix[i+1] == 255 && h.fb.img.Pix[i+2] == 255 {
			white++
		}
	}
	assert.Greater(t, white, len(h.fb.img.Pix)/8)

	h.kbd <- hal.KeyEvent{Code: hal.KeyEscape, Press: true}
	assert.ErrorIs(t, p.Step(), hal.ErrQuit)
}

func TestSurfaceNamesMatchSections(t *testing.T) {
	assert.Equal(t, surfaces.Hero, SectionHero)
	assert.Equal(t, surfaces.Skills, SectionSkills)
	assert.Equal(t, surfaces.Projects, SectionProjects)
	assert.Equal(t, surfaces.Contact, SectionContact)
}
