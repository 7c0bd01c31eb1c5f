package entity

import (
	"math"
	"math/rand/v2"

	"folio/stage/raster"
)

// SphereMesh builds a UV sphere.
func SphereMesh(radius float32, segU, segV int) raster.Mesh {
	if segU < 3 {
		segU = 3
	}
	if segV < 2 {
		segV = 2
	}

	verts := make([]raster.Vertex, 0, (segU+1)*(segV+1))
	for v := 0; v <= segV; v++ {
		phi := math.Pi * float64(v) / float64(segV)
		sp, cp := math.Sin(phi), math.Cos(phi)
		for u := 0; u <= segU; u++ {
			theta := 2 * math.Pi * float64(u) / float64(segU)
			verts = append(verts, raster.Vertex{Pos: raster.V3(
				radius*float32(sp*math.Cos(theta)),
				radius*float32(cp),
				radius*float32(sp*math.Sin(theta)),
			)})
		}
	}

	row := segU + 1
	indices := make([]uint16, 0, segU*segV*6)
	for v := 0; v < segV; v++ {
		for u := 0; u < segU; u++ {
			i0 := uint16(v*row + u)
			i1 := uint16(v*row + u + 1)
			i2 := uint16((v+1)*row + u + 1)
			i3 := uint16((v+1)*row + u)
			if v != 0 {
				indices = append(indices, i0, i1, i2)
			}
			if v != segV-1 {
				indices = append(indices, i0, i2, i3)
			}
		}
	}
	return raster.Mesh{Vertices: verts, Indices: indices}
}

// TorusMesh builds a torus around the Y axis.
func TorusMesh(major, minor float32, segU, segV int) raster.Mesh {
	if segU < 3 {
		segU = 3
	}
	if segV < 3 {
		segV = 3
	}

	verts := make([]raster.Vertex, 0, segU*segV)
	indices := make([]uint16, 0, segU*segV*6)

	for u := 0; u < segU; u++ {
		theta := 2 * math.Pi * float64(u) / float64(segU)
		ct, st := float32(math.Cos(theta)), float32(math.Sin(theta))
		for v := 0; v < segV; v++ {
			phi := 2 * math.Pi * float64(v) / float64(segV)
			cp, sp := float32(math.Cos(phi)), float32(math.Sin(phi))

			r := major + minor*cp
			verts = append(verts, raster.Vertex{Pos: raster.V3(r*ct, minor*sp, r*st)})
		}
	}

	idx := func(u, v int) uint16 {
		return uint16((u%segU)*segV + v%segV)
	}
	for u := 0; u < segU; u++ {
		for v := 0; v < segV; v++ {
			i0 := idx(u, v)
			i1 := idx(u+1, v)
			i2 := idx(u+1, v+1)
			i3 := idx(u, v+1)

			indices = append(indices, i0, i1, i2)
			indices = append(indices, i0, i2, i3)
		}
	}
	return raster.Mesh{Vertices: verts, Indices: indices}
}

// BoxMesh builds an axis-aligned box centered on the origin.
func BoxMesh(w, h, d float32) raster.Mesh {
	x, y, z := w/2, h/2, d/2
	verts := []raster.Vertex{
		{Pos: raster.V3(-x, -y, -z)}, {Pos: raster.V3(x, -y, -z)},
		{Pos: raster.V3(x, y, -z)}, {Pos: raster.V3(-x, y, -z)},
		{Pos: raster.V3(-x, -y, z)}, {Pos: raster.V3(x, -y, z)},
		{Pos: raster.V3(x, y, z)}, {Pos: raster.V3(-x, y, z)},
	}
	indices := []uint16{
		4, 5, 6, 4, 6, 7, // front
		1, 0, 3, 1, 3, 2, // back
		0, 4, 7, 0, 7, 3, // left
		5, 1, 2, 5, 2, 6, // right
		7, 6, 2, 7, 2, 3, // top
		0, 1, 5, 0, 5, 4, // bottom
	}
	return raster.Mesh{Vertices: verts, Indices: indices}
}

// ParticleMesh scatters count points uniformly in a cube of the given edge length.
// The same seed always yields the same cloud.
func ParticleMesh(count int, spread float32, seed uint64) raster.Mesh {
	if count < 0 {
		count = 0
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	verts := make([]raster.Vertex, count)
	for i := range verts {
		verts[i].Pos = raster.V3(
			(rng.Float32()-0.5)*spread,
			(rng.Float32()-0.5)*spread,
			(rng.Float32()-0.5)*spread,
		)
	}
	return raster.Mesh{Vertices: verts}
}
