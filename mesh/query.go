package mesh

import (
	"math"

	"github.com/tinmesh/tinmesh/arena"
	"github.com/tinmesh/tinmesh/predicates"
	"github.com/tinmesh/tinmesh/vertex"
	"github.com/tinmesh/tinmesh/walker"
)

// Bounds returns the axis-aligned bounding box of every live vertex.
// The second return is false when the mesh has no live vertices.
func (m *Mesh) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	first := true
	for id, v := range m.vertices {
		if m.removed[id] {
			continue
		}
		if first {
			minX, minY, maxX, maxY = v.X, v.Y, v.X, v.Y
			first = false
			continue
		}
		minX, minY = math.Min(minX, v.X), math.Min(minY, v.Y)
		maxX, maxY = math.Max(maxX, v.X), math.Max(maxY, v.Y)
	}
	return minX, minY, maxX, maxY, !first
}

// ContainingTriangle walks the mesh from its current seed and returns
// the handle of the triangle (real or ghost) enclosing (x, y).
func (m *Mesh) ContainingTriangle(x, y float64) (arena.Handle, error) {
	if !m.bootstrapped {
		return arena.Handle{}, ErrNotBootstrapped
	}
	return walker.Walk(m.seed, x, y, m.vertexLookup, m.th, m.rng), nil
}

// IsPointInsideHull reports whether (x, y) falls within the convex
// hull of the triangulated vertices.
func (m *Mesh) IsPointInsideHull(x, y float64) (bool, error) {
	h, err := m.ContainingTriangle(x, y)
	if err != nil {
		return false, err
	}
	return !h.IsExterior(), nil
}

// NeighborEdge returns the handle of the directed edge from -> to, if
// one currently exists in the mesh.
func (m *Mesh) NeighborEdge(from, to int32) (arena.Handle, bool) {
	if !m.IsLiveVertex(from) || !m.anchor[from].Valid() {
		return arena.Handle{}, false
	}
	anchor := arena.NewHandle(m.arena, m.anchor[from])
	var found arena.Handle
	ok := false
	anchor.Pinwheel(func(h arena.Handle) bool {
		if h.B() == to {
			found, ok = h, true
			return false
		}
		return true
	})
	return found, ok
}

// NearestVertex returns the live vertex id closest to (x, y), widening
// its spatial-index search radius until a candidate is found.
func (m *Mesh) NearestVertex(x, y float64) (int32, bool) {
	if m.index == nil || len(m.vertices) == 0 {
		return m.linearNearestVertex(x, y)
	}
	radius := m.cfg.effectiveMergeDistance() * 4
	q := vertex.New(x, y, 0, 0)
	for tries := 0; tries < 20; tries++ {
		best, bestDist, ok := int32(0), math.Inf(1), false
		for _, id := range m.index.FindVerticesNear(x, y, radius) {
			if int32(id) >= int32(len(m.removed)) || m.removed[id] {
				continue
			}
			d := vertex.Dist2(m.vertices[id], q)
			if !ok || d < bestDist {
				best, bestDist, ok = int32(id), d, true
			}
		}
		if ok {
			return best, true
		}
		radius *= 4
	}
	return m.linearNearestVertex(x, y)
}

func (m *Mesh) linearNearestVertex(x, y float64) (int32, bool) {
	q := vertex.New(x, y, 0, 0)
	best, bestDist, ok := int32(0), math.Inf(1), false
	for id, v := range m.vertices {
		if m.removed[id] {
			continue
		}
		d := vertex.Dist2(v, q)
		if !ok || d < bestDist {
			best, bestDist, ok = int32(id), d, true
		}
	}
	return best, ok
}

// NearestEdge returns the directed edge of the triangle containing
// (x, y) whose segment lies closest to the query point.
func (m *Mesh) NearestEdge(x, y float64) (arena.Handle, error) {
	tri, err := m.ContainingTriangle(x, y)
	if err != nil {
		return arena.Handle{}, err
	}
	q := vertex.New(x, y, 0, 0)
	sides := [3]arena.Handle{tri, tri.Forward(), tri.Reverse()}
	best, bestDist := sides[0], math.Inf(1)
	for _, s := range sides {
		if s.A() == arena.NullVertex || s.B() == arena.NullVertex {
			continue
		}
		a, b := m.vertexLookup(s.A()), m.vertexLookup(s.B())
		d := predicates.HalfPlane(a, b, q, m.th)
		d = math.Abs(d)
		length := math.Max(vertex.Dist(a, b), m.th.NominalPointSpacing)
		dist := d / length
		if dist < bestDist {
			best, bestDist = s, dist
		}
	}
	return best, nil
}

// Edges calls fn once for each undirected edge currently in the mesh,
// oriented arbitrarily (one side of its pair). includeGhosts controls
// whether hull-fringing ghost edges are included.
func (m *Mesh) Edges(includeGhosts bool, fn func(arena.Handle)) {
	m.arena.Iterate(includeGhosts, func(id arena.EdgeID) {
		fn(arena.NewHandle(m.arena, id))
	})
}

// Perimeter returns the hull boundary as a sequence of vertex ids in
// CCW order, starting from an arbitrary hull vertex. Returns nil if
// the mesh is not yet bootstrapped.
//
// At any hull vertex v, Pinwheeling from v's single null-vertex spoke
// (v, Null) lands on (v, successor) next: the spoke immediately
// following the null ray in pinwheel's CCW order is always the edge to
// v's hull successor. Walking that relation hull-vertex by
// hull-vertex avoids needing a dedicated hull-edge flag.
func (m *Mesh) Perimeter() []int32 {
	if !m.bootstrapped {
		return nil
	}
	var start arena.Handle
	found := false
	m.arena.Iterate(true, func(id arena.EdgeID) {
		if found {
			return
		}
		h := arena.NewHandle(m.arena, id)
		if h.B() == arena.NullVertex {
			start, found = h, true
		} else if h.Dual().B() == arena.NullVertex {
			start, found = h.Dual(), true
		}
	})
	if !found {
		return nil
	}

	firstVertex := start.A()
	cur := start
	var hull []int32
	for {
		successor := cur.Reverse().Dual() // (v, nextVertex)
		nextVertex := successor.B()
		hull = append(hull, nextVertex)
		if nextVertex == firstVertex {
			break
		}

		spokeAtNext := successor.Dual() // origin == nextVertex
		nullAtNext := spokeAtNext
		spokeAtNext.Pinwheel(func(h arena.Handle) bool {
			if h.B() == arena.NullVertex {
				nullAtNext = h
				return false
			}
			return true
		})
		cur = nullAtNext
	}
	return hull
}
