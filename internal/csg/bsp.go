package csg

import (
	"gonum.org/v1/gonum/spatial/r3"
)

type plane struct {
	n r3.Vec
	w float64
}

func planeFromPoints(a, b, c r3.Vec) (plane, bool) {
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	l := r3.Norm(n)
	if !(l > 1e-12) {
		return plane{}, false
	}
	n = r3.Scale(1/l, n)
	return plane{n: n, w: r3.Dot(n, a)}, true
}

func (p plane) flipped() plane {
	return plane{n: r3.Scale(-1, p.n), w: -p.w}
}

type polygon struct {
	verts []r3.Vec
	plane plane
}

func (p polygon) flipped() polygon {
	verts := make([]r3.Vec, len(p.verts))
	for i, v := range p.verts {
		verts[len(verts)-1-i] = v
	}
	return polygon{verts: verts, plane: p.plane.flipped()}
}

// Vertex classifications relative to a splitting plane.
const (
	coplanar = 0
	front    = 1
	back     = 2
	spanning = 3
)

// split classifies poly against p and appends it (or its halves) to the
// appropriate lists. Standard BSP polygon splitting: spanning polygons are cut
// at plane crossings with linear interpolation.
func (p plane) split(poly polygon, coplanarFront, coplanarBack, frontList, backList *[]polygon) {
	polyType := 0
	types := make([]int, len(poly.verts))
	for i, v := range poly.verts {
		t := r3.Dot(p.n, v) - p.w
		typ := coplanar
		if t < -planeEpsilon {
			typ = back
		} else if t > planeEpsilon {
			typ = front
		}
		polyType |= typ
		types[i] = typ
	}

	switch polyType {
	case coplanar:
		if r3.Dot(p.n, poly.plane.n) > 0 {
			*coplanarFront = append(*coplanarFront, poly)
		} else {
			*coplanarBack = append(*coplanarBack, poly)
		}
	case front:
		*frontList = append(*frontList, poly)
	case back:
		*backList = append(*backList, poly)
	case spanning:
		var f, b []r3.Vec
		for i, vi := range poly.verts {
			j := (i + 1) % len(poly.verts)
			ti, tj := types[i], types[j]
			vj := poly.verts[j]
			if ti != back {
				f = append(f, vi)
			}
			if ti != front {
				b = append(b, vi)
			}
			if (ti | tj) == spanning {
				t := (p.w - r3.Dot(p.n, vi)) / r3.Dot(p.n, r3.Sub(vj, vi))
				v := r3.Add(vi, r3.Scale(t, r3.Sub(vj, vi)))
				f = append(f, v)
				b = append(b, v)
			}
		}
		if len(f) >= 3 {
			*frontList = append(*frontList, polygon{verts: f, plane: poly.plane})
		}
		if len(b) >= 3 {
			*backList = append(*backList, polygon{verts: b, plane: poly.plane})
		}
	}
}

// node is a BSP tree node holding the polygons coplanar with its plane.
type node struct {
	plane    *plane
	front    *node
	back     *node
	polygons []polygon
}

func newNode(polys []polygon) *node {
	n := &node{}
	n.build(polys)
	return n
}

// invert converts the solid to its complement in place.
func (n *node) invert() {
	for i := range n.polygons {
		n.polygons[i] = n.polygons[i].flipped()
	}
	if n.plane != nil {
		p := n.plane.flipped()
		n.plane = &p
	}
	if n.front != nil {
		n.front.invert()
	}
	if n.back != nil {
		n.back.invert()
	}
	n.front, n.back = n.back, n.front
}

// clipPolygons removes from the list every polygon part inside this node's
// solid.
func (n *node) clipPolygons(polys []polygon) []polygon {
	if n.plane == nil {
		out := make([]polygon, len(polys))
		copy(out, polys)
		return out
	}
	var frontList, backList []polygon
	for _, p := range polys {
		n.plane.split(p, &frontList, &backList, &frontList, &backList)
	}
	if n.front != nil {
		frontList = n.front.clipPolygons(frontList)
	}
	if n.back != nil {
		backList = n.back.clipPolygons(backList)
	} else {
		backList = nil
	}
	return append(frontList, backList...)
}

// clipTo removes every polygon in this tree that lies inside other's solid.
func (n *node) clipTo(other *node) {
	n.polygons = other.clipPolygons(n.polygons)
	if n.front != nil {
		n.front.clipTo(other)
	}
	if n.back != nil {
		n.back.clipTo(other)
	}
}

// allPolygons returns every polygon in the tree.
func (n *node) allPolygons() []polygon {
	out := append([]polygon(nil), n.polygons...)
	if n.front != nil {
		out = append(out, n.front.allPolygons()...)
	}
	if n.back != nil {
		out = append(out, n.back.allPolygons()...)
	}
	return out
}

// build adds polygons to the tree, using the first polygon's plane as the
// splitting plane of an empty node.
func (n *node) build(polys []polygon) {
	if len(polys) == 0 {
		return
	}
	if n.plane == nil {
		p := polys[0].plane
		n.plane = &p
	}
	var frontList, backList []polygon
	for _, p := range polys {
		n.plane.split(p, &n.polygons, &n.polygons, &frontList, &backList)
	}
	if len(frontList) > 0 {
		if n.front == nil {
			n.front = &node{}
		}
		n.front.build(frontList)
	}
	if len(backList) > 0 {
		if n.back == nil {
			n.back = &node{}
		}
		n.back.build(backList)
	}
}
