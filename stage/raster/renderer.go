package raster

import "github.com/chewxy/math32"

// Renderer is a fixed-pipeline software renderer.
//
// Create it once per surface and reuse it to avoid allocations.
type Renderer struct {
	Depth      bool
	ClearColor Color

	depthBuf []float32

	// Aspect of the last rendered frame; lets callers notice a resize.
	lastW, lastH int
	proj         Mat4
}

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated. The default clear
// color is fully transparent.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Depth: enableDepth,
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on {
		r.depthBuf = nil
		return
	}
	if w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// Resized reports whether the next Render with a w×h target re-derives the projection.
func (r *Renderer) Resized(w, h int) bool {
	return w != r.lastW || h != r.lastH
}

// Render renders a scene into the target.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)

	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}

	view := s.Camera.View()
	proj := r.projection(s.Camera, w, h)
	vp := Mat4Mul(proj, view)

	s.eachMesh(func(m *Mesh) {
		if m == nil || !m.Enabled {
			return
		}
		r.renderMesh(t, w, h, vp, *m, s.Lights, s.Camera.Position)
	})
}

func (r *Renderer) projection(c Camera, w, h int) Mat4 {
	r.lastW, r.lastH = w, h
	r.proj = c.Projection(Scalar(w) / Scalar(h))
	return r.proj
}

func (r *Renderer) renderMesh(t Target, w, h int, vp Mat4, m Mesh, lights []Light, eye Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	if m.Transform == (Mat4{}) {
		m.Transform = Mat4Identity()
	}

	if m.Material.Mode == RenderPoints {
		r.renderPoints(t, w, h, vp, m, lights)
		return
	}
	if len(m.Indices) < 3 {
		return
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0 := int(m.Indices[i+0])
		i1 := int(m.Indices[i+1])
		i2 := int(m.Indices[i+2])
		if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
			continue
		}

		w0 := Mat4MulPoint(m.Transform, m.Vertices[i0].Pos)
		w1 := Mat4MulPoint(m.Transform, m.Vertices[i1].Pos)
		w2 := Mat4MulPoint(m.Transform, m.Vertices[i2].Pos)

		ndc0, ok0 := clipToNDC(Mat4MulV4(vp, Vec4{X: w0.X, Y: w0.Y, Z: w0.Z, W: 1}))
		ndc1, ok1 := clipToNDC(Mat4MulV4(vp, Vec4{X: w1.X, Y: w1.Y, Z: w1.Z, W: 1}))
		ndc2, ok2 := clipToNDC(Mat4MulV4(vp, Vec4{X: w2.X, Y: w2.Y, Z: w2.Z, W: 1}))
		if !ok0 || !ok1 || !ok2 {
			continue
		}

		x0, y0 := ndcToScreen(ndc0, w, h)
		x1, y1 := ndcToScreen(ndc1, w, h)
		x2, y2 := ndcToScreen(ndc2, w, h)

		center := w0.Add(w1).Add(w2).Mul(1.0 / 3)
		n := triangleNormal(w0, w1, w2)
		c := Shade(m.Material, n, center, eye, lights)

		switch m.Material.Mode {
		case RenderWireframe:
			r.drawLine(t, x0, y0, x1, y1, c)
			r.drawLine(t, x1, y1, x2, y2, c)
			r.drawLine(t, x2, y2, x0, y0, c)
		default:
			r.fillTriangleFlat(t, w, h, x0, y0, ndc0.Z, x1, y1, ndc1.Z, x2, y2, ndc2.Z, c)
		}
	}
}

func (r *Renderer) renderPoints(t Target, w, h int, vp Mat4, m Mesh, lights []Light) {
	mvp := Mat4Mul(vp, m.Transform)
	c := pointColor(m.Material, lights)
	size := m.Material.PointSize
	if size <= 0 {
		size = 1
	}
	for _, v := range m.Vertices {
		ndc, ok := clipToNDC(Mat4MulV4(mvp, Vec4{X: v.Pos.X, Y: v.Pos.Y, Z: v.Pos.Z, W: 1}))
		if !ok || ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 {
			continue
		}
		x, y := ndcToScreen(ndc, w, h)
		for dy := 0; dy < size; dy++ {
			for dx := 0; dx < size; dx++ {
				px, py := x+dx, y+dy
				if px < 0 || py < 0 || px >= w || py >= h {
					continue
				}
				if !r.depthTest(w, px, py, ndc.Z) {
					continue
				}
				t.SetPixel(px, py, c)
			}
		}
	}
}

type ndcPoint struct {
	X, Y, Z float32
}

// nearW rejects vertices at or behind the eye.
const nearW = 1e-3

func clipToNDC(p Vec4) (ndcPoint, bool) {
	if p.W <= nearW {
		return ndcPoint{}, false
	}
	invW := 1 / p.W
	return ndcPoint{
		X: p.X * invW,
		Y: p.Y * invW,
		Z: p.Z * invW,
	}, true
}

func ndcToScreen(p ndcPoint, w, h int) (x, y int) {
	sx := (p.X*0.5 + 0.5) * float32(w-1)
	sy := (1 - (p.Y*0.5 + 0.5)) * float32(h-1)
	return int(math32.Floor(sx + 0.5)), int(math32.Floor(sy + 0.5))
}

func triangleNormal(a, b, c Vec3) Vec3 {
	return Normalize(Cross(b.Sub(a), c.Sub(a)))
}

// Shade computes the flat color of a face with world-space normal n at point p seen
// from eye. Faces are lit on both sides.
func Shade(mat Material, n, p, eye Vec3, lights []Light) Color {
	base := mat.BaseColor.Linear()
	view := Normalize(eye.Sub(p))
	if Dot(n, view) < 0 {
		n = n.Mul(-1)
	}

	metal := Clamp01(mat.Metalness)
	rough := Clamp01(mat.Roughness)
	diffuseK := 1 - 0.7*metal
	shininess := 2 + (1-rough)*(1-rough)*126
	specColor := Splat(0.04).Mul(1 - metal).Add(base.Mul(metal))

	var out Vec3
	for _, l := range lights {
		lc := l.Color.Linear().Mul(l.Intensity)
		var dir Vec3
		switch l.Kind {
		case LightAmbient:
			out = out.Add(base.MulVec(lc))
			continue
		case LightDirectional:
			dir = Normalize(l.Position)
		case LightPoint:
			dir = Normalize(l.Position.Sub(p))
		}
		ndl := Dot(n, dir)
		if ndl <= 0 {
			continue
		}
		out = out.Add(base.MulVec(lc).Mul(ndl * diffuseK))

		half := Normalize(dir.Add(view))
		if nh := Dot(n, half); nh > 0 {
			spec := math32.Pow(nh, shininess) * (shininess + 8) / 64
			out = out.Add(specColor.MulVec(lc).Mul(spec * ndl))
		}
	}

	if mat.EmissiveIntensity > 0 {
		out = out.Add(mat.Emissive.Linear().Mul(mat.EmissiveIntensity))
	}
	return ColorFromLinear(out)
}

// pointColor lights a point sprite with the ambient term plus half of every other light.
func pointColor(mat Material, lights []Light) Color {
	base := mat.BaseColor.Linear()
	if len(lights) == 0 {
		return mat.BaseColor
	}
	var out Vec3
	for _, l := range lights {
		k := l.Intensity
		if l.Kind != LightAmbient {
			k *= 0.5
		}
		out = out.Add(base.MulVec(l.Color.Linear()).Mul(k))
	}
	out = out.Add(mat.Emissive.Linear().Mul(mat.EmissiveIntensity))
	return ColorFromLinear(out)
}

func (r *Renderer) depthTest(w int, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= w {
		return false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is in [-1,1]. Map to [0,1].
	d := Clamp01(z*0.5 + 0.5)
	if d >= r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = d
	return true
}

func (r *Renderer) drawLine(t Target, x0, y0, x1, y1 int, c Color) {
	// Lines far outside the target come from vertices close to the eye; skip them
	// instead of walking millions of clipped pixels.
	tw, th := t.Size()
	if outside(x0, y0, tw, th) && outside(x1, y1, tw, th) {
		return
	}
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func outside(x, y, w, h int) bool {
	return x < -w || y < -h || x > 2*w || y > 2*h
}

func (r *Renderer) fillTriangleFlat(t Target, w, h int, x0, y0 int, z0 float32, x1, y1 int, z1 float32, x2, y2 int, z2 float32, c Color) {
	minX, maxX := min(x0, x1, x2), max(x0, x1, x2)
	minY, maxY := min(y0, y1, y2), max(y0, y1, y2)
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	area := edgeFn(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}
	// Accept both windings; meshes are lit two-sided.
	if area < 0 {
		x1, y1, z1, x2, y2, z2 = x2, y2, z2, x1, y1, z1
		area = -area
	}
	invArea := 1.0 / float32(area)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(x1, y1, x2, y2, x, y)
			w1 := edgeFn(x2, y2, x0, y0, x, y)
			w2 := edgeFn(x0, y0, x1, y1, x, y)
			if (w0 | w1 | w2) < 0 {
				continue
			}
			a0 := float32(w0) * invArea
			a1 := float32(w1) * invArea
			a2 := float32(w2) * invArea
			z := a0*z0 + a1*z1 + a2*z2
			if !r.depthTest(w, x, y, z) {
				continue
			}
			t.SetPixel(x, y, c)
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
