package mesh

import (
	"github.com/tinmesh/tinmesh/arena"
	"github.com/tinmesh/tinmesh/vertex"
)

// SplitEdge replaces the directed edge from->to with two edges meeting
// at a new midpoint vertex, preserving whatever constraint flags the
// original edge carried on both of its new halves, and returns the
// midpoint's id. It mirrors the conformance-restoration split the
// constraint embedder performs internally, exposed here for callers
// that want to subdivide an edge directly (for example to refine mesh
// density along a known-sharp feature).
func (m *Mesh) SplitEdge(from, to int32) (int32, error) {
	e, ok := m.NeighborEdge(from, to)
	if !ok {
		return 0, ErrInvalidVertexID
	}

	va, vb := m.vertices[from], m.vertices[to]
	mid := vertex.Midpoint(va, vb, 0)
	midID := m.AddSynthetic(mid)

	// SplitEdge turns e's pair from (from,to) into (midID,to) and
	// allocates newSide as the (from,midID) pair, so e itself is now
	// midID's anchor and newSide is from's.
	newSide := arena.NewHandle(m.arena, m.arena.SplitEdge(e.ID(), midID))

	m.anchor[from] = newSide.ID()
	m.anchor[midID] = e.ID()
	m.anchor[to] = e.Dual().ID()
	m.seed = newSide

	m.OnSplit(from, to, midID)
	return midID, nil
}
