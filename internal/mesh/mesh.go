package mesh

import (
	"github.com/chewxy/math32"
)

// Mesh is a triangle mesh for preview rendering. All arrays are flat:
// Positions has 3 floats per vertex (x,y,z), Indices has 3 uint32s per triangle.
// The longitudinal axis of revolved parts is Y.
type Mesh struct {
	Positions []float32
	Indices   []uint32

	// bounds is computed lazily by Bounds and cleared by mutating methods.
	bounds *Box
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the box center.
func (b Box) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the box extents along each axis.
func (b Box) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// New returns a mesh taking ownership of the given arrays.
func New(positions []float32, indices []uint32) *Mesh {
	return &Mesh{Positions: positions, Indices: indices}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty reports whether the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Positions) == 0 || len(m.Indices) == 0
}

// Clone returns a structural copy sharing no storage with m.
func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return nil
	}
	c := &Mesh{}
	if len(m.Positions) > 0 {
		c.Positions = make([]float32, len(m.Positions))
		copy(c.Positions, m.Positions)
	}
	if len(m.Indices) > 0 {
		c.Indices = make([]uint32, len(m.Indices))
		copy(c.Indices, m.Indices)
	}
	if m.bounds != nil {
		b := *m.bounds
		c.bounds = &b
	}
	return c
}

// Bounds returns the axis-aligned bounding box, computing and caching it on
// first use. An empty mesh has a zero box.
func (m *Mesh) Bounds() Box {
	if m.bounds != nil {
		return *m.bounds
	}
	var b Box
	if len(m.Positions) >= 3 {
		b.Min = [3]float32{m.Positions[0], m.Positions[1], m.Positions[2]}
		b.Max = b.Min
		for i := 3; i+2 < len(m.Positions); i += 3 {
			for a := 0; a < 3; a++ {
				v := m.Positions[i+a]
				if v < b.Min[a] {
					b.Min[a] = v
				}
				if v > b.Max[a] {
					b.Max[a] = v
				}
			}
		}
	}
	m.bounds = &b
	return b
}

// Translate moves every vertex by (dx, dy, dz).
func (m *Mesh) Translate(dx, dy, dz float32) {
	for i := 0; i+2 < len(m.Positions); i += 3 {
		m.Positions[i] += dx
		m.Positions[i+1] += dy
		m.Positions[i+2] += dz
	}
	m.bounds = nil
}

// Scale multiplies every vertex by (sx, sy, sz) about the origin.
func (m *Mesh) Scale(sx, sy, sz float32) {
	for i := 0; i+2 < len(m.Positions); i += 3 {
		m.Positions[i] *= sx
		m.Positions[i+1] *= sy
		m.Positions[i+2] *= sz
	}
	m.bounds = nil
}

// RotateX rotates the mesh about the X axis by angle radians.
func (m *Mesh) RotateX(angle float32) {
	s, c := math32.Sincos(angle)
	for i := 0; i+2 < len(m.Positions); i += 3 {
		y, z := m.Positions[i+1], m.Positions[i+2]
		m.Positions[i+1] = y*c - z*s
		m.Positions[i+2] = y*s + z*c
	}
	m.bounds = nil
}

// RotateY rotates the mesh about the Y axis by angle radians.
func (m *Mesh) RotateY(angle float32) {
	s, c := math32.Sincos(angle)
	for i := 0; i+2 < len(m.Positions); i += 3 {
		x, z := m.Positions[i], m.Positions[i+2]
		m.Positions[i] = x*c + z*s
		m.Positions[i+2] = -x*s + z*c
	}
	m.bounds = nil
}

// RotateZ rotates the mesh about the Z axis by angle radians.
func (m *Mesh) RotateZ(angle float32) {
	s, c := math32.Sincos(angle)
	for i := 0; i+2 < len(m.Positions); i += 3 {
		x, y := m.Positions[i], m.Positions[i+1]
		m.Positions[i] = x*c - y*s
		m.Positions[i+1] = x*s + y*c
	}
	m.bounds = nil
}

// Recenter translates the mesh so its bounding-box center sits at the origin.
func (m *Mesh) Recenter() {
	if m.IsEmpty() {
		return
	}
	c := m.Bounds().Center()
	if c[0] == 0 && c[1] == 0 && c[2] == 0 {
		return
	}
	m.Translate(-c[0], -c[1], -c[2])
}

// Volume returns the approximate enclosed volume, computed as the magnitude of
// the divergence-theorem sum over triangles. Meaningful only for closed meshes
// with consistent winding, which every generator in this module produces.
func (m *Mesh) Volume() float64 {
	var total float64
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.vertex64(m.Indices[i])
		b := m.vertex64(m.Indices[i+1])
		c := m.vertex64(m.Indices[i+2])
		// Signed volume of tetrahedron (origin, a, b, c).
		total += (a[0]*(b[1]*c[2]-b[2]*c[1]) -
			a[1]*(b[0]*c[2]-b[2]*c[0]) +
			a[2]*(b[0]*c[1]-b[1]*c[0])) / 6
	}
	if total < 0 {
		return -total
	}
	return total
}

func (m *Mesh) vertex64(i uint32) [3]float64 {
	j := int(i) * 3
	return [3]float64{
		float64(m.Positions[j]),
		float64(m.Positions[j+1]),
		float64(m.Positions[j+2]),
	}
}
