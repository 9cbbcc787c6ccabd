package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"partforge/internal/catalog"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return New(catalog.MustLoad(), zaptest.NewLogger(t))
}

func TestCenteringSweep(t *testing.T) {
	s := newService(t)
	sweeps := []catalog.ShapeParameters{
		{},
		{OuterDiameter: 120, Length: 90},
		{OuterDiameter: 250, InnerDiameter: 80, Thickness: 45},
		{IsHollow: true},
	}
	for _, name := range s.Catalog().Archetypes() {
		for _, p := range sweeps {
			res := s.GetOrBuild(name, p)
			require.NotNil(t, res.Mesh, name)
			c := res.Mesh.Bounds().Center()
			for axis := 0; axis < 3; axis++ {
				assert.InDeltaf(t, 0, float64(c[axis]), 1e-3,
					"%s axis %d not centered", name, axis)
			}
		}
	}
}

func TestCacheIdempotence(t *testing.T) {
	s := newService(t)
	a := s.GetOrBuild("cylinder", catalog.ShapeParameters{OuterDiameter: 50, Length: 100})
	b := s.GetOrBuild("cylinder", catalog.ShapeParameters{Length: 100, OuterDiameter: 50})

	require.Equal(t, a.Mesh.VertexCount(), b.Mesh.VertexCount())
	require.Equal(t, a.Mesh.TriangleCount(), b.Mesh.TriangleCount())
	assert.Equal(t, int64(1), s.Stats().Misses)
	assert.Equal(t, int64(1), s.Stats().Hits)

	// Mutating one result never affects another.
	a.Mesh.Positions[0] = 1e9
	c := s.GetOrBuild("cylinder", catalog.ShapeParameters{OuterDiameter: 50, Length: 100})
	assert.NotEqual(t, float32(1e9), c.Mesh.Positions[0])
	assert.Equal(t, b.Mesh.Positions, c.Mesh.Positions)
}

func TestRepeatedCalls(t *testing.T) {
	s := newService(t)
	p := catalog.ShapeParameters{OuterDiameter: 50}
	first := s.GetOrBuild("cylinder", p)
	for i := 0; i < 999; i++ {
		got := s.GetOrBuild("cylinder", p)
		if !assert.Equal(t, first.Mesh.VertexCount(), got.Mesh.VertexCount()) {
			break
		}
	}
	st := s.Stats()
	assert.Equal(t, int64(1), st.Misses)
	assert.Equal(t, int64(999), st.Hits)
	assert.Equal(t, 1, st.Entries)
}

func TestConcurrentRequestsShareOneBuild(t *testing.T) {
	s := newService(t)
	p := catalog.ShapeParameters{OuterDiameter: 200, InnerDiameter: 120, Length: 60}
	var wg sync.WaitGroup
	results := make([]int, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.GetOrBuild("ring", p).Mesh.VertexCount()
		}(i)
	}
	wg.Wait()
	for _, n := range results {
		assert.Equal(t, results[0], n)
	}
	st := s.Stats()
	assert.Equal(t, 1, st.Entries)
	// One build, regardless of how many requesters raced for it.
	assert.Equal(t, int64(1), st.Misses)
	assert.Equal(t, int64(len(results)-1), st.Hits)
}

func TestEntriesSnapshot(t *testing.T) {
	s := newService(t)
	p := catalog.ShapeParameters{OuterDiameter: 80, Length: 120}
	s.GetOrBuild("cylinder", p)
	s.GetOrBuild("sphere", catalog.ShapeParameters{OuterDiameter: 40})

	// Later mutation of the caller's record must not reach the stored copy.
	p.OuterDiameter = 999

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Less(t, entries[0].Key, entries[1].Key)

	var cyl *EntryInfo
	for i := range entries {
		if entries[i].Params.Length == 120 {
			cyl = &entries[i]
		}
	}
	require.NotNil(t, cyl)
	assert.Equal(t, float64(80), cyl.Params.OuterDiameter)
	assert.False(t, cyl.Degraded)
	assert.False(t, cyl.BuiltAt.IsZero())
}

func TestHollowMonotonicity(t *testing.T) {
	s := newService(t)
	base := catalog.ShapeParameters{OuterDiameter: 100, Length: 50}

	solidVol := s.GetOrBuild("cylinder", base).Mesh.Volume()

	// Thicker walls leave less cavity, so enclosed material grows toward
	// the solid volume.
	prev := 0.0
	for _, wall := range []float64{5, 15, 30, 45} {
		p := base
		p.WallThickness = wall
		vol := s.GetOrBuild("tube", p).Mesh.Volume()
		assert.Greaterf(t, vol, prev, "wall %g", wall)
		assert.Lessf(t, vol, solidVol, "wall %g", wall)
		prev = vol
	}

	// Inner at or beyond outer degrades to the solid variant's volume.
	p := base
	p.InnerDiameter = 100
	res := s.GetOrBuild("tube", p)
	assert.True(t, res.Degraded)
	assert.InDelta(t, solidVol, res.Mesh.Volume(), solidVol*1e-4)
}

func TestRingScenario(t *testing.T) {
	s := newService(t)
	ring := s.GetOrBuild("ring", catalog.ShapeParameters{
		OuterDiameter: 200, InnerDiameter: 100, Length: 40,
	})
	require.False(t, ring.Degraded)

	c := ring.Mesh.Bounds().Center()
	assert.InDelta(t, 0, float64(c[0]), 1e-3)
	assert.InDelta(t, 0, float64(c[1]), 1e-3)
	assert.InDelta(t, 0, float64(c[2]), 1e-3)

	solid := s.GetOrBuild("cylinder", catalog.ShapeParameters{
		OuterDiameter: 200, Length: 40,
	})
	assert.Greater(t, ring.Mesh.TriangleCount(), solid.Mesh.TriangleCount())
	assert.Less(t, ring.Mesh.Volume(), solid.Mesh.Volume())
}

func TestHollowBoxScenario(t *testing.T) {
	s := newService(t)
	res := s.GetOrBuild("box", catalog.ShapeParameters{
		Length: 100, Width: 100, Thickness: 12, IsHollow: true, WallThickness: 10,
	})
	require.NotNil(t, res.Mesh)
	assert.True(t, res.Degraded)
	assert.NotEmpty(t, res.Reasons)
	assert.False(t, res.Mesh.IsEmpty())
}

func TestUnknownPartType(t *testing.T) {
	s := newService(t)
	res := s.GetOrBuild("widget", catalog.ShapeParameters{})
	require.NotNil(t, res.Mesh)
	assert.False(t, res.Mesh.IsEmpty())
	assert.True(t, res.Degraded)
	assert.NotEmpty(t, res.Reasons)

	// The shared cache entry stays pristine: a direct request for the
	// default archetype is not marked degraded.
	direct := s.GetOrBuild("box", catalog.ShapeParameters{})
	assert.False(t, direct.Degraded)
}

func TestClear(t *testing.T) {
	s := newService(t)
	p := catalog.ShapeParameters{OuterDiameter: 60}
	s.GetOrBuild("sphere", p)
	require.Equal(t, 1, s.Stats().Entries)

	s.Clear()
	assert.Equal(t, 0, s.Stats().Entries)

	s.GetOrBuild("sphere", p)
	st := s.Stats()
	assert.Equal(t, 1, st.Entries)
	assert.Equal(t, int64(2), st.Misses)
}
