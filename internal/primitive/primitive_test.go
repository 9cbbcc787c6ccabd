package primitive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox(t *testing.T) {
	m := Box()
	require.Equal(t, 8, m.VertexCount())
	require.Equal(t, 12, m.TriangleCount())
	assert.InDelta(t, 1.0, m.Volume(), 1e-6)

	b := m.Bounds()
	assert.Equal(t, [3]float32{-0.5, -0.5, -0.5}, b.Min)
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, b.Max)
}

func TestCylinder(t *testing.T) {
	m := Cylinder()
	require.False(t, m.IsEmpty())

	// Inscribed polygon volume approaches pi*r^2*h from below.
	// Diameter 1, height 1, so r = 0.5 and the exact volume is pi/4.
	exact := math.Pi * 0.25
	got := m.Volume()
	assert.Less(t, got, exact)
	assert.InEpsilon(t, exact, got, 0.02)

	b := m.Bounds()
	assert.InDelta(t, -0.5, b.Min[1], 1e-6)
	assert.InDelta(t, 0.5, b.Max[1], 1e-6)
}

func TestPrism(t *testing.T) {
	hex := Prism(6)
	// 2 rings of 6 plus 2 cap centers.
	require.Equal(t, 14, hex.VertexCount())
	require.Equal(t, 24, hex.TriangleCount())

	// Regular hexagon area with circumradius r is 3*sqrt(3)/2 * r^2.
	area := 3 * math.Sqrt(3) / 2 * 0.25
	assert.InDelta(t, area, hex.Volume(), 1e-4)

	// Degenerate side counts clamp to a triangle.
	tri := Prism(1)
	assert.Equal(t, 8, tri.VertexCount())
}

func TestSphere(t *testing.T) {
	m := Sphere()
	require.False(t, m.IsEmpty())

	exact := 4.0 / 3.0 * math.Pi * 0.125
	assert.InEpsilon(t, exact, m.Volume(), 0.05)

	b := m.Bounds()
	c := b.Center()
	assert.InDelta(t, 0, float64(c[0]), 1e-5)
	assert.InDelta(t, 0, float64(c[1]), 1e-5)
	assert.InDelta(t, 0, float64(c[2]), 1e-5)
}
