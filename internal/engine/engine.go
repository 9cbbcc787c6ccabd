// Package engine owns the geometry cache. A Service resolves part types
// through the catalog, builds and recenters meshes on first request, and
// memoizes the pristine result for the life of the process. Stored meshes are
// never handed out: every caller gets a structural copy, so nothing a caller
// does can corrupt the cache.
package engine

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"partforge/internal/catalog"
	"partforge/internal/mesh"
)

// entry is one memoized build. Immutable after insertion.
type entry struct {
	mesh     *mesh.Mesh
	params   catalog.ShapeParameters
	degraded bool
	reasons  []string
	builtAt  time.Time
}

// Service is a geometry cache bound to a catalog. Safe for concurrent use:
// the entry map is mutex-guarded and a singleflight group keeps at most one
// build in flight per key, with concurrent requesters sharing its result.
type Service struct {
	cat *catalog.Catalog
	log *zap.Logger

	mu      sync.RWMutex
	entries map[string]*entry
	group   singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// Stats is a snapshot of cache counters. Misses counts builds, so
// Hits+Misses equals the number of GetOrBuild calls served.
type Stats struct {
	Entries int
	Hits    int64
	Misses  int64
}

// EntryInfo describes one memoized build: the canonical key, the parameter
// record it was built from, and when.
type EntryInfo struct {
	Key      string
	Params   catalog.ShapeParameters
	Degraded bool
	BuiltAt  time.Time
}

// New returns a service with an empty cache. A nil logger disables
// diagnostics.
func New(cat *catalog.Catalog, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		cat:     cat,
		log:     log,
		entries: make(map[string]*entry),
	}
}

// GetOrBuild returns the preview mesh for a part type and parameter record.
// The result is always renderable; Degraded marks every downgrade, including
// an unknown part type resolving to the default cube. The mesh's bounding-box
// center is at the origin.
func (s *Service) GetOrBuild(partType string, params catalog.ShapeParameters) catalog.Result {
	gen, canonical, known := s.cat.Resolve(partType)
	key := catalog.Key(canonical, params)

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		s.hits.Add(1)
	} else {
		// Only the caller whose closure generates geometry records a miss.
		// Singleflight losers and late re-check arrivals share an existing
		// entry, so Misses tracks actual builds.
		built := false
		v, _, _ := s.group.Do(key, func() (any, error) {
			e, fresh := s.build(key, canonical, gen, params)
			built = fresh
			return e, nil
		})
		e = v.(*entry)
		if built {
			s.misses.Add(1)
		} else {
			s.hits.Add(1)
		}
	}

	res := catalog.Result{
		Mesh:     e.mesh.Clone(),
		Degraded: e.degraded,
		Reasons:  append([]string(nil), e.reasons...),
	}
	if !known {
		res.Degraded = true
		res.Reasons = append(res.Reasons, "unknown part type \""+partType+"\", using default cube")
		s.log.Warn("unknown part type",
			zap.String("part_type", partType),
			zap.String("fallback", canonical))
	}
	return res
}

// build runs the generator and stores the pristine entry. Re-checks the map
// first: a singleflight loser that arrives after the winner stored the entry
// must not rebuild. The second return reports whether geometry was generated.
func (s *Service) build(key, canonical string, gen catalog.Generator, params catalog.ShapeParameters) (*entry, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		return e, false
	}

	res := gen(params)
	m := res.Mesh
	if m == nil {
		m = mesh.New(nil, nil)
	}
	m.Recenter()

	var snapshot catalog.ShapeParameters
	_ = copier.Copy(&snapshot, &params)

	e = &entry{
		mesh:     m,
		params:   snapshot,
		degraded: res.Degraded,
		reasons:  res.Reasons,
		builtAt:  time.Now(),
	}
	for _, reason := range res.Reasons {
		s.log.Warn("degraded geometry",
			zap.String("part_type", canonical),
			zap.String("key", key),
			zap.String("reason", reason))
	}
	s.log.Debug("built geometry",
		zap.String("key", key),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()))

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return e, true
}

// Clear drops every cache entry.
func (s *Service) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]*entry)
	s.mu.Unlock()
}

// Stats returns current cache counters.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	n := len(s.entries)
	s.mu.RUnlock()
	return Stats{Entries: n, Hits: s.hits.Load(), Misses: s.misses.Load()}
}

// Entries returns a snapshot of the cache contents, sorted by key. Params is
// the stored copy of the record each entry was built from.
func (s *Service) Entries() []EntryInfo {
	s.mu.RLock()
	out := make([]EntryInfo, 0, len(s.entries))
	for key, e := range s.entries {
		out = append(out, EntryInfo{
			Key:      key,
			Params:   e.params,
			Degraded: e.degraded,
			BuiltAt:  e.builtAt,
		})
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Catalog returns the catalog this service resolves against.
func (s *Service) Catalog() *catalog.Catalog {
	return s.cat
}
