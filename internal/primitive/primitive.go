// Package primitive builds canonical base solids at unit reference scale.
// Generators scale and combine these into dimensioned part previews; none of
// the constructors here can fail.
package primitive

import (
	"github.com/chewxy/math32"

	"partforge/internal/mesh"
)

// defaultSphereRings and defaultSphereSlices control sphere mesh resolution.
const defaultSphereRings = 16
const defaultSphereSlices = 16

// defaultCylinderSlices controls cylinder mesh resolution.
const defaultCylinderSlices = 32

// Box returns a 1x1x1 box centered at the origin.
func Box() *mesh.Mesh {
	const h = 0.5
	positions := []float32{
		-h, -h, -h, h, -h, -h, h, h, -h, -h, h, -h,
		-h, -h, h, h, -h, h, h, h, h, -h, h, h,
	}
	indices := []uint32{
		0, 2, 1, 0, 3, 2, // -Z
		4, 5, 6, 4, 6, 7, // +Z
		0, 1, 5, 0, 5, 4, // -Y
		3, 7, 6, 3, 6, 2, // +Y
		0, 4, 7, 0, 7, 3, // -X
		1, 2, 6, 1, 6, 5, // +X
	}
	return mesh.New(positions, indices)
}

// Cylinder returns a capped cylinder with diameter 1 and height 1, centered at
// the origin with the Y axis as its axis of symmetry.
func Cylinder() *mesh.Mesh {
	return Prism(defaultCylinderSlices)
}

// Prism returns a capped right prism with a regular n-gon cross-section,
// circumscribed diameter 1 and height 1, centered at the origin. n below 3 is
// clamped to 3.
func Prism(n int) *mesh.Mesh {
	if n < 3 {
		n = 3
	}
	const r = 0.5
	const h = 0.5
	positions := make([]float32, 0, (2*n+2)*3)
	for _, y := range []float32{-h, h} {
		for i := 0; i < n; i++ {
			s, c := math32.Sincos(2 * math32.Pi * float32(i) / float32(n))
			positions = append(positions, r*c, y, r*s)
		}
	}
	positions = append(positions, 0, -h, 0, 0, h, 0)
	cb := uint32(2 * n)
	ct := uint32(2*n + 1)

	indices := make([]uint32, 0, 12*n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		bi, bj := uint32(i), uint32(j)
		ti, tj := uint32(n+i), uint32(n+j)
		indices = append(indices,
			bi, tj, bj, // side, outward
			bi, ti, tj,
			cb, bi, bj, // bottom cap, -Y
			ct, tj, ti, // top cap, +Y
		)
	}
	return mesh.New(positions, indices)
}

// Sphere returns a latitude/longitude sphere with diameter 1 centered at the
// origin.
func Sphere() *mesh.Mesh {
	const r = 0.5
	rings, slices := defaultSphereRings, defaultSphereSlices

	positions := make([]float32, 0, (rings+1)*slices*3)
	for i := 0; i <= rings; i++ {
		phi := math32.Pi * float32(i) / float32(rings)
		sp, cp := math32.Sincos(phi)
		y := r * cp
		for j := 0; j < slices; j++ {
			st, ct := math32.Sincos(2 * math32.Pi * float32(j) / float32(slices))
			positions = append(positions, r*sp*ct, y, r*sp*st)
		}
	}

	indices := make([]uint32, 0, rings*slices*6)
	for i := 0; i < rings; i++ {
		for j := 0; j < slices; j++ {
			j1 := (j + 1) % slices
			v00 := uint32(i*slices + j)
			v01 := uint32(i*slices + j1)
			v10 := uint32((i+1)*slices + j)
			v11 := uint32((i+1)*slices + j1)
			if i < rings-1 {
				indices = append(indices, v10, v01, v11)
			}
			if i > 0 {
				indices = append(indices, v10, v00, v01)
			}
		}
	}
	return mesh.New(positions, indices)
}
