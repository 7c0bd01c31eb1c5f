package raster

import "image"

// RGBATarget renders into an *image.RGBA.
//
// Clearing with a zero-alpha color makes the target transparent so that it can be
// composited over whatever the host drew underneath.
type RGBATarget struct {
	Img *image.RGBA
}

// NewRGBATarget allocates a w×h target.
func NewRGBATarget(w, h int) *RGBATarget {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &RGBATarget{Img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (t *RGBATarget) Size() (w, h int) {
	if t == nil || t.Img == nil {
		return 0, 0
	}
	b := t.Img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the backing image when the size changes.
func (t *RGBATarget) Resize(w, h int) {
	if cw, ch := t.Size(); cw == w && ch == h && t.Img != nil {
		return
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	t.Img = image.NewRGBA(image.Rect(0, 0, w, h))
}

func (t *RGBATarget) Clear(c Color) {
	if t == nil || t.Img == nil {
		return
	}
	pix := t.Img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
}

func (t *RGBATarget) SetPixel(x, y int, c Color) {
	if t == nil || t.Img == nil {
		return
	}
	b := t.Img.Bounds()
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return
	}
	off := y*t.Img.Stride + x*4
	if off < 0 || off+3 >= len(t.Img.Pix) {
		return
	}
	t.Img.Pix[off+0] = c.R
	t.Img.Pix[off+1] = c.G
	t.Img.Pix[off+2] = c.B
	t.Img.Pix[off+3] = c.A
}
