// Package solid applies boolean modeling operations to part meshes with
// degrade-don't-fail semantics: a preview that is slightly wrong is always
// preferred over no preview, so every failure path returns the best available
// geometry together with an error describing the downgrade.
package solid

import (
	"fmt"

	"github.com/chewxy/math32"

	"partforge/internal/csg"
	"partforge/internal/mesh"
)

// MinVertexCount is the smallest vertex count that can bound a solid
// (a tetrahedron). Inputs below it are rejected before any boolean attempt.
const MinVertexCount = 4

// Hollow subtracts inner from outer. The originals are never mutated.
//
// A degenerate operand or a boolean failure falls back to an unchanged copy
// of outer; the returned error is non-nil exactly when the result is that
// fallback.
func Hollow(outer, inner *mesh.Mesh) (*mesh.Mesh, error) {
	if outer == nil {
		return mesh.New(nil, nil), fmt.Errorf("solid: hollow called with nil outer mesh")
	}
	if outer.VertexCount() < MinVertexCount || inner == nil || inner.VertexCount() < MinVertexCount {
		ic := 0
		if inner != nil {
			ic = inner.VertexCount()
		}
		return outer.Clone(), fmt.Errorf("solid: degenerate hollow input (outer %d, inner %d vertices)",
			outer.VertexCount(), ic)
	}
	out, err := csg.Difference(outer, inner)
	if err != nil {
		return outer.Clone(), fmt.Errorf("solid: hollow fell back to solid: %w", err)
	}
	return out, nil
}

// FeatureFunc produces the feature solid for one instance index, authored at
// the origin with its length along +X (pointing radially outward once
// placed).
type FeatureFunc func(index int) *mesh.Mesh

// CompositeRadial unions count feature instances around the Y axis onto a
// copy of base. Instance i is twisted about its radial axis, moved out to
// radius, and rotated to angle 2*pi*i/count before the union.
//
// Failures are isolated per instance: a degenerate feature or a failed union
// skips that instance only. The returned count is the number of skipped
// instances; base plus all successful instances is always returned.
func CompositeRadial(base *mesh.Mesh, feature FeatureFunc, count int, radius, twist float32) (*mesh.Mesh, int) {
	if base == nil {
		return mesh.New(nil, nil), count
	}
	result := base.Clone()
	if base.VertexCount() < MinVertexCount || count <= 0 || feature == nil {
		return result, count
	}
	skipped := 0
	for i := 0; i < count; i++ {
		f := feature(i)
		if f == nil || f.VertexCount() < MinVertexCount {
			skipped++
			continue
		}
		inst := f.Clone()
		if twist != 0 {
			inst.RotateX(twist)
		}
		inst.Translate(radius, 0, 0)
		inst.RotateY(2 * math32.Pi * float32(i) / float32(count))

		merged, err := csg.Union(result, inst)
		if err != nil {
			skipped++
			continue
		}
		result = merged
	}
	return result, skipped
}
