package hal

import (
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu    sync.Mutex
	img   *image.RGBA
	scale float64
}

func newHostFramebuffer(width, height int, scale float64) *hostFramebuffer {
	f := &hostFramebuffer{}
	f.resize(width, height, scale)
	return f
}

func (f *hostFramebuffer) Width() int         { return f.img.Rect.Dx() }
func (f *hostFramebuffer) Height() int        { return f.img.Rect.Dy() }
func (f *hostFramebuffer) Scale() float64     { return f.scale }
func (f *hostFramebuffer) Image() *image.RGBA { return f.img }
func (f *hostFramebuffer) Present() error     { return nil }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pix := f.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = 0xFF
	}
}

// resize reallocates the buffer when the device size changes and reports whether it did.
func (f *hostFramebuffer) resize(width, height int, scale float64) bool {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if !(scale > 0) {
		scale = 1
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.scale = scale
	if f.img != nil && f.img.Rect.Dx() == width && f.img.Rect.Dy() == height {
		return false
	}
	f.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return true
}

func (f *hostFramebuffer) snapshot(dst []byte) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cap(dst) < len(f.img.Pix) {
		dst = make([]byte, len(f.img.Pix))
	}
	dst = dst[:len(f.img.Pix)]
	copy(dst, f.img.Pix)
	return dst
}
