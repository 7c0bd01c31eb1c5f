package raster

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// MulScalar scales the RGB channels by s clamped to 0..1.
func (c Color) MulScalar(s Scalar) Color {
	t := Clamp01(s)
	mul := func(ch uint8) uint8 {
		return uint8(Scalar(ch)*t + 0.5)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

// Linear returns the channels as 0..1 values.
func (c Color) Linear() Vec3 {
	return Vec3{Scalar(c.R) / 255, Scalar(c.G) / 255, Scalar(c.B) / 255}
}

// ColorFromLinear converts 0..1 channels back to an opaque Color.
func ColorFromLinear(v Vec3) Color {
	ch := func(f Scalar) uint8 {
		return uint8(Clamp01(f)*255 + 0.5)
	}
	return Color{R: ch(v.X), G: ch(v.Y), B: ch(v.Z), A: 0xFF}
}
