package app

import "math"

// Rect is an axis-aligned rectangle in logical page pixels.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) Contains(x, y float64) bool {
	return !r.Empty() && x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the overlap of r and o, or an empty rect.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Offset moves r by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Section ids, in page order.
const (
	SectionHero     = "hero"
	SectionAbout    = "about"
	SectionSkills   = "skills"
	SectionProjects = "projects"
	SectionContact  = "contact"
	SectionFooter   = "footer"
)

const (
	sidePad      = 24.0
	maxContent   = 1280.0
	sectionPad   = 96.0
	titleBlock   = 120.0
	aboutHeight  = 560.0
	skillsCanvas = 500.0
	cardCanvas   = 192.0
	cardBody     = 150.0
	cardGap      = 32.0
	contactPanel = 400.0
	footerHeight = 96.0
)

// Section is one vertical band of the page.
type Section struct {
	ID       string
	Title    string
	Subtitle string
	Rect     Rect
}

// Layout positions every section and 3D canvas for one viewport size.
type Layout struct {
	Width, Height float64

	Sections []Section

	HeroCanvas    Rect
	SkillsCanvas  Rect
	Cards         []Rect // whole project cards
	CardCanvases  []Rect // canvas area at the top of each card
	ContactCanvas Rect

	PageHeight float64
}

// Columns returns the project grid column count for a viewport width.
func Columns(width float64) int {
	switch {
	case width >= 1024:
		return 3
	case width >= 768:
		return 2
	default:
		return 1
	}
}

// ComputeLayout lays out a page for a w×h logical viewport with the given number of
// project cards.
func ComputeLayout(w, h float64, cards int) Layout {
	w = max(w, 1)
	h = max(h, 1)
	l := Layout{Width: w, Height: h}

	cw := min(max(w-2*sidePad, 1), maxContent)
	cx := (w - cw) / 2
	y := 0.0

	add := func(id, title, subtitle string, height float64) float64 {
		top := y
		l.Sections = append(l.Sections, Section{
			ID: id, Title: title, Subtitle: subtitle,
			Rect: Rect{X: 0, Y: top, W: w, H: height},
		})
		y += height
		return top
	}

	add(SectionHero, "Obinna", "Chef de projet informatique, developpeur et passionne d'innovation", h)
	l.HeroCanvas = Rect{X: 0, Y: 0, W: w, H: h}

	add(SectionAbout, "A propos", "", aboutHeight)

	top := add(SectionSkills, "Competences", "Faites glisser pour explorer les technologies en 3D",
		2*sectionPad+titleBlock+skillsCanvas)
	l.SkillsCanvas = Rect{X: cx, Y: top + sectionPad + titleBlock, W: cw, H: skillsCanvas}

	cols := Columns(w)
	rows := 0
	if cards > 0 {
		rows = (cards + cols - 1) / cols
	}
	gridH := float64(rows)*(cardCanvas+cardBody) + math.Max(float64(rows-1), 0)*cardGap
	top = add(SectionProjects, "Projets", "Une selection de mes creations les plus innovantes",
		2*sectionPad+titleBlock+gridH)
	cardW := (cw - float64(cols-1)*cardGap) / float64(cols)
	for i := range cards {
		col, row := i%cols, i/cols
		card := Rect{
			X: cx + float64(col)*(cardW+cardGap),
			Y: top + sectionPad + titleBlock + float64(row)*(cardCanvas+cardBody+cardGap),
			W: cardW,
			H: cardCanvas + cardBody,
		}
		l.Cards = append(l.Cards, card)
		l.CardCanvases = append(l.CardCanvases, Rect{X: card.X, Y: card.Y, W: card.W, H: cardCanvas})
	}

	if w >= 1024 {
		top = add(SectionContact, "Contact", "Une idee de projet 3D ? Discutons-en ensemble",
			2*sectionPad+titleBlock+contactPanel)
		half := (cw - cardGap) / 2
		l.ContactCanvas = Rect{X: cx + half + cardGap, Y: top + sectionPad + titleBlock, W: half, H: contactPanel}
	} else {
		top = add(SectionContact, "Contact", "Une idee de projet 3D ? Discutons-en ensemble",
			2*sectionPad+titleBlock+contactPanel+aboutHeight/2)
		l.ContactCanvas = Rect{X: cx, Y: top + sectionPad + titleBlock, W: cw, H: contactPanel}
	}

	add(SectionFooter, "", "", footerHeight)
	l.PageHeight = y
	return l
}

// Section returns the section with the given id.
func (l Layout) Section(id string) (Section, bool) {
	for _, s := range l.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// MaxScroll is the largest scroll offset that keeps the viewport on the page.
func (l Layout) MaxScroll() float64 {
	return max(l.PageHeight-l.Height, 0)
}
