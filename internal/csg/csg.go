// Package csg implements boundary-representation boolean operations
// (union, difference) on closed triangle meshes using BSP-tree clipping.
//
// Boolean solid operations are numerically delicate: coplanar faces and
// near-degenerate triangles can produce panics or empty output. Callers are
// expected to treat any returned error as "keep the input solid" rather than
// a hard failure; see the solid package.
package csg

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"partforge/internal/mesh"
)

// planeEpsilon is the distance tolerance used to classify vertices against a
// splitting plane.
const planeEpsilon = 1e-5

var (
	// ErrEmptyInput is returned when an operand has no geometry.
	ErrEmptyInput = errors.New("csg: empty input mesh")
	// ErrEmptyResult is returned when an operation consumed its inputs but
	// produced no usable geometry.
	ErrEmptyResult = errors.New("csg: operation produced no geometry")
)

type opError struct {
	op       string
	panicObj any
}

func (e *opError) Error() string {
	return "csg: " + e.op + " failed"
}

// Union returns the boolean union of two closed meshes. Inputs are not
// mutated. On failure the returned mesh is nil and the error describes the
// failure.
func Union(a, b *mesh.Mesh) (result *mesh.Mesh, err error) {
	if a.IsEmpty() || b.IsEmpty() {
		return nil, ErrEmptyInput
	}
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, &opError{op: "union", panicObj: r}
		}
	}()
	na := newNode(toPolygons(a))
	nb := newNode(toPolygons(b))
	na.clipTo(nb)
	nb.clipTo(na)
	nb.invert()
	nb.clipTo(na)
	nb.invert()
	na.build(nb.allPolygons())
	return fromPolygons(na.allPolygons())
}

// Difference returns a minus b for two closed meshes. Inputs are not mutated.
// On failure the returned mesh is nil and the error describes the failure.
func Difference(a, b *mesh.Mesh) (result *mesh.Mesh, err error) {
	if a.IsEmpty() || b.IsEmpty() {
		return nil, ErrEmptyInput
	}
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, &opError{op: "difference", panicObj: r}
		}
	}()
	na := newNode(toPolygons(a))
	nb := newNode(toPolygons(b))
	na.invert()
	na.clipTo(nb)
	nb.clipTo(na)
	nb.invert()
	nb.clipTo(na)
	nb.invert()
	na.build(nb.allPolygons())
	na.invert()
	return fromPolygons(na.allPolygons())
}

// toPolygons converts mesh triangles into planar polygons, skipping
// degenerate triangles that define no plane.
func toPolygons(m *mesh.Mesh) []polygon {
	polys := make([]polygon, 0, m.TriangleCount())
	at := func(i uint32) r3.Vec {
		j := int(i) * 3
		return r3.Vec{
			X: float64(m.Positions[j]),
			Y: float64(m.Positions[j+1]),
			Z: float64(m.Positions[j+2]),
		}
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		verts := []r3.Vec{at(m.Indices[i]), at(m.Indices[i+1]), at(m.Indices[i+2])}
		pl, ok := planeFromPoints(verts[0], verts[1], verts[2])
		if !ok {
			continue
		}
		polys = append(polys, polygon{verts: verts, plane: pl})
	}
	return polys
}

// fromPolygons triangulates polygons fan-wise back into an indexed mesh,
// merging exactly-coincident vertices.
func fromPolygons(polys []polygon) (*mesh.Mesh, error) {
	if len(polys) == 0 {
		return nil, ErrEmptyResult
	}
	var positions []float32
	var indices []uint32
	seen := map[[3]float32]uint32{}
	index := func(v r3.Vec) (uint32, bool) {
		key := [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
		for _, f := range key {
			if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
				return 0, false
			}
		}
		if i, ok := seen[key]; ok {
			return i, true
		}
		i := uint32(len(positions) / 3)
		positions = append(positions, key[0], key[1], key[2])
		seen[key] = i
		return i, true
	}
	for _, p := range polys {
		if len(p.verts) < 3 {
			continue
		}
		i0, ok := index(p.verts[0])
		if !ok {
			return nil, ErrEmptyResult
		}
		for k := 1; k+1 < len(p.verts); k++ {
			i1, ok1 := index(p.verts[k])
			i2, ok2 := index(p.verts[k+1])
			if !ok1 || !ok2 {
				return nil, ErrEmptyResult
			}
			if i0 == i1 || i1 == i2 || i0 == i2 {
				continue
			}
			indices = append(indices, i0, i1, i2)
		}
	}
	if len(positions) == 0 || len(indices) == 0 {
		return nil, ErrEmptyResult
	}
	return mesh.New(positions, indices), nil
}
