// Package profile builds axisymmetric solids by revolving a 2-D cross-section
// around the Y axis. A cross-section is described declaratively as a closed
// polyline in the (radius, axial) plane: straight segments with LineTo and
// tangent-continuous fillet arcs with FilletTo. One shared Revolve turns any
// profile into a manifold shell, so archetype generators carry only their
// segment lists.
package profile

import (
	"github.com/chewxy/math32"

	"partforge/internal/mesh"
)

// FilletSamples is the number of arc samples per fillet transition.
const FilletSamples = 8

// DefaultSegments is the number of radial divisions used when Revolve is given
// a non-positive segment count.
const DefaultSegments = 48

// minSegments keeps a revolved shell from degenerating into a sheet.
const minSegments = 3

// Point is a cross-section vertex: R is distance from the axis, Y the axial
// position.
type Point struct {
	R float32
	Y float32
}

// Profile is an ordered cross-section polyline. It is treated as a closed loop
// by Revolve and must be traced counterclockwise in the (R, Y) plane (outer
// wall upward, across the top inward, inner wall downward) so the revolved
// shell's normals face outward.
type Profile struct {
	pts []Point
}

// New returns a profile starting at (r, y).
func New(r, y float32) *Profile {
	return &Profile{pts: []Point{{R: r, Y: y}}}
}

// LineTo appends a straight segment endpoint.
func (p *Profile) LineTo(r, y float32) *Profile {
	p.pts = append(p.pts, Point{R: r, Y: y})
	return p
}

// FilletTo appends an arc-sampled transition from the current point to (r, y).
// Sample i of N lies at angle (pi/2)(i/N) along a quarter arc:
//
//	R = r0 + (r1-r0)*sin(angle)
//	Y = y0 + (y1-y0)*(1-cos(angle))
//
// which leaves the current surface tangentially and arrives normal to the
// next, instead of a sharp corner.
func (p *Profile) FilletTo(r, y float32) *Profile {
	p0 := p.pts[len(p.pts)-1]
	for i := 1; i <= FilletSamples; i++ {
		a := math32.Pi / 2 * float32(i) / FilletSamples
		s, c := math32.Sincos(a)
		p.pts = append(p.pts, Point{
			R: p0.R + (r-p0.R)*s,
			Y: p0.Y + (y-p0.Y)*(1-c),
		})
	}
	return p
}

// Points returns the profile polyline.
func (p *Profile) Points() []Point {
	return p.pts
}

// Revolve sweeps the closed profile 360 degrees around the Y axis with the
// given number of radial segments, producing a single closed shell. A
// duplicate closing point is dropped; segments outside [3, ...) fall back to
// DefaultSegments.
func (p *Profile) Revolve(segments int) *mesh.Mesh {
	if segments < minSegments {
		segments = DefaultSegments
	}
	pts := p.pts
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	np := len(pts)
	if np < 3 {
		return mesh.New(nil, nil)
	}

	positions := make([]float32, 0, np*segments*3)
	for k := 0; k < np; k++ {
		for j := 0; j < segments; j++ {
			s, c := math32.Sincos(2 * math32.Pi * float32(j) / float32(segments))
			positions = append(positions, pts[k].R*c, pts[k].Y, pts[k].R*s)
		}
	}

	idx := func(k, j int) uint32 {
		return uint32((k%np)*segments + j%segments)
	}
	indices := make([]uint32, 0, np*segments*6)
	for k := 0; k < np; k++ {
		for j := 0; j < segments; j++ {
			a := idx(k, j)
			b := idx(k, j+1)
			c := idx(k+1, j)
			d := idx(k+1, j+1)
			indices = append(indices, a, d, b, a, c, d)
		}
	}
	return mesh.New(positions, indices)
}
