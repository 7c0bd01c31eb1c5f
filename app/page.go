package app

import (
	"fmt"
	"time"

	"folio/hal"
	"folio/internal/config"
	"folio/stage"
	"folio/stage/clock"
	"folio/stage/scene"
	"folio/stage/surfaces"
)

const (
	wheelStep = 60.0 // logical pixels per wheel notch
	keyStep   = 40.0
)

// Option configures a Page.
type Option func(*Page)

// WithDebug shows the frame statistics overlay from the start.
func WithDebug(on bool) Option {
	return func(p *Page) { p.debug = on }
}

// Page is the scrolling portfolio page: it lays out sections, gates the 3D surfaces
// on visibility, drives their loops from the host refresh and composites the result.
type Page struct {
	h   hal.HAL
	cfg *config.Config

	refresh  *clock.Refresh
	observer *Observer
	layout   Layout
	mounts   []*Mount
	surfs    []*surface

	scroll float64
	debug  bool

	// Viewport of the last step, in device pixels.
	devW, devH int
	dpr        float64

	pointerX, pointerY float64
	drag               *surface
	hover              *surface

	crash *crashInfo
}

// NewPage creates the page. A nil cfg uses config.Default.
func NewPage(h hal.HAL, cfg *config.Config, opts ...Option) *Page {
	if cfg == nil {
		cfg = config.Default()
	}
	p := &Page{
		h:        h,
		cfg:      cfg,
		refresh:  clock.NewRefresh(h.Time().Now),
		observer: NewObserver(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if cfg.Window.TickRate > 0 {
		p.refresh.SetBudget(time.Second / time.Duration(cfg.Window.TickRate))
	}

	p.resize()
	p.buildMounts()
	return p
}

func (p *Page) buildMounts() {
	cfg := p.cfg
	threshold, rearm := cfg.Activation.Threshold, cfg.Activation.Rearm

	single := func(name string, rect func(Layout) Rect) *surface {
		return &surface{
			id:    name,
			rect:  rect,
			build: func() *scene.Scene { return mustBuild(name, cfg, 0) },
		}
	}

	hero := single(surfaces.Hero, func(l Layout) Rect { return l.HeroCanvas })
	skills := single(surfaces.Skills, func(l Layout) Rect { return l.SkillsCanvas })
	contact := single(surfaces.Contact, func(l Layout) Rect { return l.ContactCanvas })

	var cards []*surface
	for i := range cfg.Projects.Titles {
		cards = append(cards, &surface{
			id: fmt.Sprintf("%s/%d", surfaces.Projects, i),
			rect: func(l Layout) Rect {
				if i < len(l.CardCanvases) {
					return l.CardCanvases[i]
				}
				return Rect{}
			},
			build: func() *scene.Scene { return surfaces.NewProject(cfg, i) },
		})
	}

	p.mounts = []*Mount{
		newMount(SectionHero, threshold, rearm, p.refresh, hero),
		newMount(SectionSkills, threshold, rearm, p.refresh, skills),
		newMount(SectionProjects, threshold, rearm, p.refresh, cards...),
		newMount(SectionContact, threshold, rearm, p.refresh, contact),
	}
	p.surfs = append([]*surface{hero, skills}, append(cards, contact)...)
	p.sizeSurfaces()

	for _, m := range p.mounts {
		// A failed attach leaves the mount dormant; the gate has already logged it.
		_ = m.Attach(p.observer)
	}
}

func mustBuild(name string, cfg *config.Config, index int) *scene.Scene {
	s, err := surfaces.Build(name, cfg, index)
	if err != nil {
		panic(err)
	}
	return s
}

// Step handles input, updates visibility, ticks every running loop and composites
// one frame.
func (p *Page) Step() (err error) {
	if p.crash != nil {
		return p.crashStep()
	}
	defer func() {
		if r := recover(); r != nil {
			p.enterCrash(r)
			err = nil
		}
	}()

	if err := p.handleInput(); err != nil {
		return err
	}
	p.resize()
	p.observer.Update(p.scroll, p.layout.Height)
	p.refresh.Frame()
	p.compose()
	return p.h.Display().Framebuffer().Present()
}

// Close unmounts every surface.
func (p *Page) Close() {
	for _, m := range p.mounts {
		m.Unmount()
	}
}

// Scroll returns the current scroll offset in logical pixels.
func (p *Page) Scroll() float64 { return p.scroll }

// ScrollTo moves the viewport, clamped to the page.
func (p *Page) ScrollTo(y float64) {
	p.scroll = min(max(y, 0), p.layout.MaxScroll())
}

func (p *Page) Layout() Layout { return p.layout }

// resize re-derives the layout and surface sizes when the framebuffer changed.
func (p *Page) resize() {
	fb := p.h.Display().Framebuffer()
	w, h, dpr := fb.Width(), fb.Height(), fb.Scale()
	if w == p.devW && h == p.devH && dpr == p.dpr {
		return
	}
	p.devW, p.devH, p.dpr = w, h, dpr

	p.layout = ComputeLayout(float64(w)/dpr, float64(h)/dpr, len(p.cfg.Projects.Titles))
	for _, s := range p.layout.Sections {
		p.observer.SetRegion(s.ID, s.Rect)
	}
	p.ScrollTo(p.scroll)
	p.sizeSurfaces()
	stage.Logger().Debug("page: layout", "w", p.layout.Width, "h", p.layout.Height, "dpr", dpr)
}

func (p *Page) sizeSurfaces() {
	for _, s := range p.surfs {
		s.resize(s.rect(p.layout), p.dpr, p.cfg.Window.RenderScale)
	}
}

func (p *Page) handleInput() error {
	in := p.h.Input()
	if in == nil {
		return nil
	}
	if kb := in.Keyboard(); kb != nil {
	keys:
		for {
			select {
			case ev := <-kb.Events():
				if err := p.handleKey(ev); err != nil {
					return err
				}
			default:
				break keys
			}
		}
	}
	if ptr := in.Pointer(); ptr != nil {
		for {
			select {
			case ev := <-ptr.Events():
				p.handlePointer(ev)
			default:
				return nil
			}
		}
	}
	return nil
}

func (p *Page) handleKey(ev hal.KeyEvent) error {
	if !ev.Press {
		return nil
	}
	switch ev.Code {
	case hal.KeyEscape:
		return hal.ErrQuit
	case hal.KeyF1:
		p.debug = !p.debug
	case hal.KeyUp:
		p.ScrollTo(p.scroll - keyStep)
	case hal.KeyDown:
		p.ScrollTo(p.scroll + keyStep)
	case hal.KeyPageUp:
		p.ScrollTo(p.scroll - p.layout.Height)
	case hal.KeyPageDown:
		p.ScrollTo(p.scroll + p.layout.Height)
	case hal.KeyHome:
		p.ScrollTo(0)
	case hal.KeyEnd:
		p.ScrollTo(p.layout.MaxScroll())
	}
	if ev.Rune == ' ' {
		p.ScrollTo(p.scroll + p.layout.Height)
	}
	return nil
}

// surfaceAt returns the live surface under a viewport point and the point in the
// surface's own logical coordinates.
func (p *Page) surfaceAt(x, y float64) (*surface, float64, float64) {
	py := y + p.scroll
	for _, s := range p.surfs {
		if s.sc == nil {
			continue
		}
		r := s.rect(p.layout)
		if r.Contains(x, py) {
			return s, x - r.X, py - r.Y
		}
	}
	return nil, 0, 0
}

func (p *Page) handlePointer(ev hal.PointerEvent) {
	dx, dy := ev.X-p.pointerX, ev.Y-p.pointerY
	p.pointerX, p.pointerY = ev.X, ev.Y

	switch ev.Kind {
	case hal.PointerMove:
		if p.drag != nil && p.drag.sc != nil {
			p.drag.sc.Drag(float32(dx), float32(dy), int(p.drag.rect(p.layout).H))
			return
		}
		p.updateHover(ev.X, ev.Y)

	case hal.PointerDown:
		if s, _, _ := p.surfaceAt(ev.X, ev.Y); s != nil && s.sc.Interactive() {
			p.drag = s
		}

	case hal.PointerUp:
		p.drag = nil

	case hal.PointerLeave:
		p.drag = nil
		p.setHover(nil, 0, 0)

	case hal.PointerWheel:
		if s, _, _ := p.surfaceAt(ev.X, ev.Y); s != nil && s.sc.Interactive() && s.sc.Controller().ZoomEnabled() {
			s.sc.Zoom(float32(ev.WheelY))
			return
		}
		p.ScrollTo(p.scroll - ev.WheelY*wheelStep)
		p.updateHover(ev.X, ev.Y)
	}
}

func (p *Page) updateHover(x, y float64) {
	s, lx, ly := p.surfaceAt(x, y)
	p.setHover(s, lx, ly)
}

func (p *Page) setHover(s *surface, lx, ly float64) {
	if p.hover != nil && p.hover != s && p.hover.sc != nil {
		p.hover.sc.Hover(0, 0, 1, 1, false)
	}
	p.hover = s
	if s == nil || s.sc == nil || s.target == nil {
		return
	}
	w, h := s.target.Size()
	s.sc.Hover(float32(lx*s.scale), float32(ly*s.scale), w, h, true)
}
