package raster

// Project maps a world-space point to pixel coordinates of a w×h target.
// ok is false for points behind the camera.
func Project(c Camera, w, h int, p Vec3) (x, y Scalar, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	vp := Mat4Mul(c.Projection(Scalar(w)/Scalar(h)), c.View())
	ndc, ok := clipToNDC(Mat4MulV4(vp, Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1}))
	if !ok {
		return 0, 0, false
	}
	x = (ndc.X*0.5 + 0.5) * Scalar(w-1)
	y = (1 - (ndc.Y*0.5 + 0.5)) * Scalar(h-1)
	return x, y, true
}

// ProjectSphere returns the screen center and approximate pixel radius of a bounding
// sphere, plus its distance from the camera for ordering hits.
func ProjectSphere(c Camera, w, h int, center Vec3, radius Scalar) (x, y, r, dist Scalar, ok bool) {
	x, y, ok = Project(c, w, h, center)
	if !ok {
		return 0, 0, 0, 0, false
	}
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	fwd := Normalize(c.Target.Sub(c.Position))
	right := Normalize(Cross(fwd, up))
	ex, ey, ok := Project(c, w, h, center.Add(right.Mul(radius)))
	if !ok {
		return 0, 0, 0, 0, false
	}
	dx, dy := ex-x, ey-y
	r = Len(V3(dx, dy, 0))
	return x, y, r, Len(center.Sub(c.Position)), true
}
