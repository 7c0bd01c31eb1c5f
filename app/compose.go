package app

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"folio/internal/config"
	"folio/stage/surfaces"
)

var (
	colBand     = color.RGBA{0x0F, 0x17, 0x2A, 0xFF} // slate-900
	colCard     = color.RGBA{0x1E, 0x29, 0x3B, 0xFF} // slate-800
	colTitle    = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	colSubtitle = color.RGBA{0x94, 0xA3, 0xB8, 0xFF} // slate-400
	colLabel    = color.RGBA{0xCB, 0xD5, 0xE1, 0xFF} // slate-300
	colDebug    = color.RGBA{0x22, 0xD3, 0xEE, 0xFF}
)

func rgba(c config.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 0xFF}
}

// device converts a page rect to framebuffer pixels for the current scroll.
func (p *Page) device(r Rect) image.Rectangle {
	r = r.Offset(0, -p.scroll)
	return image.Rect(
		int(math.Round(r.X*p.dpr)), int(math.Round(r.Y*p.dpr)),
		int(math.Round((r.X+r.W)*p.dpr)), int(math.Round((r.Y+r.H)*p.dpr)),
	)
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r.Intersect(dst.Rect), image.NewUniform(c), image.Point{}, draw.Src)
}

// compose paints section chrome, then every live surface, then labels and overlays.
func (p *Page) compose() {
	fb := p.h.Display().Framebuffer()
	dst := fb.Image()
	bg := rgba(p.cfg.Window.Background)
	fb.ClearRGB(bg.R, bg.G, bg.B)
	cv := newCanvas(dst)

	for _, s := range p.layout.Sections {
		r := p.device(s.Rect)
		if !r.Overlaps(dst.Rect) {
			continue
		}
		if s.ID == SectionAbout || s.ID == SectionProjects {
			fillRect(dst, r, colBand)
		}
		if s.ID == SectionHero || s.Title == "" {
			continue
		}
		cx := (r.Min.X + r.Max.X) / 2
		top := r.Min.Y + int(sectionPad*p.dpr/2)
		drawTextCentered(cv, cx, top, s.Title, colTitle)
		drawTextCentered(cv, cx, top+2*lineHeight, s.Subtitle, colSubtitle)
	}

	for i, card := range p.layout.Cards {
		r := p.device(card)
		if !r.Overlaps(dst.Rect) {
			continue
		}
		fillRect(dst, r, colCard)
		body := p.device(Rect{X: card.X, Y: card.Y + cardCanvas, W: card.W, H: cardBody})
		if i < len(p.cfg.Projects.Titles) {
			cols := max(body.Dx()/max(textWidth("M"), 1)-2, 1)
			y := body.Min.Y + lineHeight
			for _, line := range wrapText(p.cfg.Projects.Titles[i], cols) {
				drawText(cv, body.Min.X+lineHeight, y, line, colTitle)
				y += lineHeight
			}
		}
	}

	for _, s := range p.surfs {
		p.blit(dst, s)
	}

	if hero, ok := p.layout.Section(SectionHero); ok {
		r := p.device(hero.Rect)
		if r.Overlaps(dst.Rect) {
			cy := (r.Min.Y + r.Max.Y) / 2
			cx := (r.Min.X + r.Max.X) / 2
			drawTextCentered(cv, cx, cy-lineHeight, hero.Title, colTitle)
			drawTextCentered(cv, cx, cy+lineHeight, hero.Subtitle, colLabel)
		}
	}

	if p.debug {
		p.drawDebug(cv)
	}
}

// blit copies a surface's render target into its device rectangle, resampling when
// the render scale differs from the device scale.
func (p *Page) blit(dst *image.RGBA, s *surface) {
	src := s.image()
	if s.sc == nil || src == nil {
		return
	}
	r := p.device(s.rect(p.layout))
	if !r.Overlaps(dst.Rect) {
		return
	}
	if src.Rect.Dx() == r.Dx() && src.Rect.Dy() == r.Dy() {
		draw.Draw(dst, r, src, src.Rect.Min, draw.Over)
	} else {
		draw.ApproxBiLinear.Scale(dst, r, src, src.Rect, draw.Over, nil)
	}

	if s.id != surfaces.Skills {
		return
	}
	cv := newCanvas(dst)
	cv.clip = r.Intersect(dst.Rect)
	tw, th := s.target.Size()
	sx := float64(r.Dx()) / float64(max(tw, 1))
	sy := float64(r.Dy()) / float64(max(th, 1))
	for _, l := range s.sc.Labels(tw, th) {
		x := r.Min.X + int(float64(l.X)*sx)
		y := r.Min.Y + int(float64(l.Y)*sy)
		drawTextCentered(cv, x, y+2, l.Text, colLabel)
	}
}

func (p *Page) drawDebug(cv *canvas) {
	st := p.refresh.Stats()
	active := 0
	for _, m := range p.mounts {
		if m.Active() {
			active++
		}
	}
	lines := []string{
		fmt.Sprintf("frames %d  overruns %d", st.Frames, st.Overruns),
		fmt.Sprintf("gap %.1fms  loops %d", float64(st.LastGap.Microseconds())/1000, p.refresh.Scheduled()),
		fmt.Sprintf("mounts %d/%d  scroll %.0f/%.0f", active, len(p.mounts), p.scroll, p.layout.MaxScroll()),
		fmt.Sprintf("viewport %dx%d @%.2g", p.devW, p.devH, p.dpr),
	}
	for i, l := range lines {
		drawText(cv, 4, 4+i*lineHeight, l, colDebug)
	}
}
