// Package mesh is the public façade over tinmesh's triangulation core:
// it owns the vertex table, the quad-edge arena, and the spatial index
// used for coincident-vertex merging and nearest-neighbor queries, and
// sequences the arena/bootstrap/walker/insert/remove/constraint
// packages into the handful of operations a caller needs — Add,
// Remove, AddConstraints, and the read-only query surface.
package mesh

import (
	"math/rand"

	"github.com/tinmesh/tinmesh/arena"
	"github.com/tinmesh/tinmesh/insert"
	"github.com/tinmesh/tinmesh/spatial"
	"github.com/tinmesh/tinmesh/thresholds"
	"github.com/tinmesh/tinmesh/vertex"
)

// Mesh is a constrained Delaunay triangulation built incrementally
// from 2D points. The zero value is not usable; construct with New.
type Mesh struct {
	cfg config
	th  thresholds.Thresholds
	rng *rand.Rand

	arena *arena.EdgeArena
	index spatial.Index

	vertices []vertex.Vertex
	removed  []bool
	anchor   []arena.EdgeID // invariant: anchor[id].Valid() <=> vertex id is live and triangulated

	seed          arena.Handle
	bootstrapped  bool
	pending       []vertex.Vertex // vertices (Index = id) accumulated before bootstrap succeeds
	constraintsIn bool

	mergeRule   vertex.MergeRule
	mergeGroups map[int32]*vertex.MergerGroup // keyed by the surviving anchor id

	insertStats insert.Stats
	Stats       Stats
}

// Stats accumulates diagnostic counters surfaced to callers for
// tuning and regression tracking; it is not consulted by the
// triangulator itself.
type Stats struct {
	VerticesAdded    int
	VerticesMerged   int
	VerticesRemoved  int
	EdgesReplaced    int
	InCircleFallback int
	ConstraintSplits int
}

// New creates an empty mesh. nominalPointSpacing scales every
// geometric tolerance the mesh uses (vertex merge distance, the
// encroachment radius, the bootstrap area floor) and should be set to
// a representative distance between neighboring input points.
func New(nominalPointSpacing float64, opts ...Option) *Mesh {
	cfg := newDefaultConfig(nominalPointSpacing)
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	m := &Mesh{
		cfg:         cfg,
		th:          thresholds.New(nominalPointSpacing),
		rng:         rand.New(rand.NewSource(cfg.seed)),
		arena:       arena.New(),
		mergeRule:   cfg.mergeRule,
		mergeGroups: map[int32]*vertex.MergerGroup{},
	}
	if cfg.mergeVertices {
		m.index = spatial.NewHashGrid(cfg.effectiveMergeDistance() * 4)
	}
	return m
}

// IsBootstrapped reports whether the mesh has triangulated its first
// three vertices; queries that walk the mesh return ErrNotBootstrapped
// until this is true.
func (m *Mesh) IsBootstrapped() bool { return m.bootstrapped }

// NumVertices returns the number of live (non-removed) vertices.
func (m *Mesh) NumVertices() int {
	n := 0
	for _, r := range m.removed {
		if !r {
			n++
		}
	}
	return n
}

// Clear discards every vertex and edge, returning the mesh to its
// just-constructed state.
func (m *Mesh) Clear() {
	m.arena.Clear()
	m.vertices = nil
	m.removed = nil
	m.anchor = nil
	m.bootstrapped = false
	m.pending = nil
	m.constraintsIn = false
	m.mergeGroups = map[int32]*vertex.MergerGroup{}
	m.seed = arena.Handle{}
	m.rng = rand.New(rand.NewSource(m.cfg.seed))
	m.mergeRule = m.cfg.mergeRule
	m.insertStats = insert.Stats{}
	m.Stats = Stats{}
	if m.cfg.mergeVertices {
		m.index = spatial.NewHashGrid(m.cfg.effectiveMergeDistance() * 4)
	}
}

// Dispose releases the mesh's backing storage. The mesh must not be
// used afterward.
func (m *Mesh) Dispose() {
	m.arena.Dispose()
	m.vertices = nil
	m.removed = nil
	m.anchor = nil
	m.index = nil
}

func (m *Mesh) vertexLookup(id int32) vertex.Vertex {
	return m.vertices[id]
}

// SetMergeRule changes how a future coincident-vertex merge resolves
// its effective Z. It only affects groups formed after the call; a
// group already created keeps whichever rule was active when its
// first merge happened, since MergerGroup fixes its rule at
// construction.
func (m *Mesh) SetMergeRule(rule vertex.MergeRule) {
	m.mergeRule = rule
}

// MergerGroup returns the coalescing group anchored at id, if any
// vertex has ever been merged into it.
func (m *Mesh) MergerGroup(id int32) (*vertex.MergerGroup, bool) {
	g, ok := m.mergeGroups[id]
	return g, ok
}

func (m *Mesh) liveTriangleCount() int {
	seen := map[int32]bool{}
	m.arena.Iterate(false, func(id arena.EdgeID) {
		h := arena.NewHandle(m.arena, id)
		for _, side := range [2]arena.Handle{h, h.Dual()} {
			if side.IsExterior() {
				continue
			}
			seen[triCanon(side)] = true
		}
	})
	return len(seen)
}
