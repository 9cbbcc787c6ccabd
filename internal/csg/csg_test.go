package csg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partforge/internal/mesh"
	"partforge/internal/primitive"
)

func box(t *testing.T, cx, cy, cz, size float32) *mesh.Mesh {
	t.Helper()
	m := primitive.Box()
	m.Scale(size, size, size)
	m.Translate(cx, cy, cz)
	return m
}

func TestDifferenceCavity(t *testing.T) {
	outer := box(t, 0, 0, 0, 2)
	inner := box(t, 0, 0, 0, 1)
	got, err := Difference(outer, inner)
	require.NoError(t, err)

	// Fully interior subtraction leaves a closed cavity: enclosed volume is
	// outer minus inner, and the result carries both surfaces.
	assert.InDelta(t, 8.0-1.0, got.Volume(), 1e-3)
	assert.Greater(t, got.TriangleCount(), outer.TriangleCount())

	// Operands are untouched.
	assert.InDelta(t, 8.0, outer.Volume(), 1e-3)
	assert.InDelta(t, 1.0, inner.Volume(), 1e-3)
}

func TestDifferenceThroughHole(t *testing.T) {
	outer := box(t, 0, 0, 0, 2)
	// Tool protrudes beyond both faces so the cut goes all the way through.
	tool := box(t, 0, 0, 0, 1)
	tool.Scale(1, 4, 1)
	got, err := Difference(outer, tool)
	require.NoError(t, err)
	assert.InDelta(t, 8.0-2.0, got.Volume(), 1e-3)
}

func TestUnionDisjoint(t *testing.T) {
	a := box(t, -2, 0, 0, 1)
	b := box(t, 2, 0, 0, 1)
	got, err := Union(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got.Volume(), 1e-3)
}

func TestUnionOverlapping(t *testing.T) {
	a := box(t, 0, 0, 0, 1)
	b := box(t, 0.5, 0, 0, 1)
	got, err := Union(a, b)
	require.NoError(t, err)
	// Overlap is a 0.5 x 1 x 1 slab.
	assert.InDelta(t, 1.0+1.0-0.5, got.Volume(), 1e-3)
}

func TestEmptyOperands(t *testing.T) {
	full := box(t, 0, 0, 0, 1)
	empty := mesh.New(nil, nil)

	_, err := Difference(full, empty)
	assert.ErrorIs(t, err, ErrEmptyInput)
	_, err = Difference(empty, full)
	assert.ErrorIs(t, err, ErrEmptyInput)
	_, err = Union(full, nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestCylinderDifference(t *testing.T) {
	outer := primitive.Cylinder()
	outer.Scale(100, 40, 100)
	inner := primitive.Cylinder()
	inner.Scale(50, 44, 50) // taller than outer so the caps are not coplanar
	got, err := Difference(outer, inner)
	require.NoError(t, err)
	require.False(t, got.IsEmpty())
	assert.Less(t, got.Volume(), outer.Volume())
	assert.Greater(t, got.TriangleCount(), outer.TriangleCount())
}
