package app

import (
	"image"
	"image/color"
	"unicode/utf8"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var labelFont tinyfont.Fonter = &proggy.TinySZ8pt7b

const (
	lineHeight = 12
	baseline   = 9
)

// canvas exposes an RGBA image as a tinyfont display, optionally clipped.
type canvas struct {
	img  *image.RGBA
	clip image.Rectangle
}

var _ drivers.Displayer = (*canvas)(nil)

func newCanvas(img *image.RGBA) *canvas {
	return &canvas{img: img, clip: img.Rect}
}

func (c *canvas) Size() (x, y int16) {
	if c.img == nil {
		return 0, 0
	}
	return int16(min(c.img.Rect.Dx(), 0x7FFF)), int16(min(c.img.Rect.Dy(), 0x7FFF))
}

func (c *canvas) SetPixel(x, y int16, col color.RGBA) {
	p := image.Pt(int(x), int(y))
	if c.img == nil || !p.In(c.clip) {
		return
	}
	c.img.SetRGBA(p.X, p.Y, col)
}

func (c *canvas) Display() error { return nil }

// textWidth returns the advance width of s in pixels.
func textWidth(s string) int {
	_, outbox := tinyfont.LineWidth(labelFont, s)
	return int(outbox)
}

// drawText draws s with its top-left corner at (x, y).
func drawText(c *canvas, x, y int, s string, col color.RGBA) {
	tinyfont.WriteLine(c, labelFont, int16(x), int16(y+baseline), s, col)
}

// drawTextCentered draws s horizontally centered on cx.
func drawTextCentered(c *canvas, cx, y int, s string, col color.RGBA) {
	drawText(c, cx-textWidth(s)/2, y, s, col)
}

// wrapText breaks s into lines of at most cols runes, preferring spaces.
func wrapText(s string, cols int) []string {
	if cols <= 0 {
		return nil
	}
	var lines []string
	for s != "" {
		if utf8.RuneCountInString(s) <= cols {
			lines = append(lines, s)
			break
		}
		cut, n, lastSpace := 0, 0, -1
		for i, r := range s {
			if n == cols {
				cut = i
				break
			}
			if r == ' ' {
				lastSpace = i
			}
			n++
		}
		if lastSpace > 0 {
			cut = lastSpace
		}
		lines = append(lines, s[:cut])
		s = trimLeadingSpace(s[cut:])
	}
	return lines
}

func trimLeadingSpace(s string) string {
	for len(s) > 0 && s[0] == ' ' {
		s = s[1:]
	}
	return s
}
