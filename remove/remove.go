// Package remove implements Devillers' ear-based vertex removal: the
// star-shaped polygon left behind once a vertex and its incident
// edges are deleted is retriangulated one ear at a time, always
// closing the ear least likely to violate the Delaunay condition.
package remove

import (
	"errors"
	"math"

	"github.com/tinmesh/tinmesh/arena"
	"github.com/tinmesh/tinmesh/predicates"
	"github.com/tinmesh/tinmesh/thresholds"
	"github.com/tinmesh/tinmesh/walker"
)

// ErrTooFewNeighbors signals that the vertex being removed had fewer
// than three incident edges, which should never happen in a
// well-formed mesh.
var ErrTooFewNeighbors = errors.New("tinmesh: vertex has fewer than three incident edges")

type ringNode struct {
	vertex   int32
	outEdge  arena.EdgeID // current edge from this node's vertex to the next node's vertex
	prev, next int
	alive    bool
}

// Remove deletes removedVertexID from the mesh. anchor must be a live
// handle whose origin is removedVertexID; the caller is responsible
// for locating it (for example via a per-vertex adjacency cache) and
// for confirming identity before calling Remove.
func Remove(a *arena.EdgeArena, lookup walker.VertexLookup, th thresholds.Thresholds, anchor arena.Handle, removedVertexID int32) error {
	vRemoved := lookup(removedVertexID)

	var spokes []arena.Handle
	anchor.Pinwheel(func(h arena.Handle) bool {
		spokes = append(spokes, h)
		return true
	})
	if len(spokes) < 3 {
		return ErrTooFewNeighbors
	}

	boundary := make([]arena.Handle, len(spokes))
	for i, s := range spokes {
		boundary[i] = s.Forward()
	}

	for _, s := range spokes {
		a.Deallocate(s.ID())
	}

	k := len(boundary)
	nodes := make([]ringNode, k)
	for i := 0; i < k; i++ {
		nodes[i] = ringNode{
			vertex:  boundary[i].A(),
			outEdge: boundary[i].ID(),
			prev:    (i - 1 + k) % k,
			next:    (i + 1) % k,
			alive:   true,
		}
	}
	// Relink the boundary ring now that the spokes are gone.
	for i := 0; i < k; i++ {
		cur := arena.NewHandle(a, nodes[i].outEdge)
		nxt := arena.NewHandle(a, nodes[nodes[i].next].outEdge)
		cur.SetForward(nxt)
	}

	if k == 3 {
		return nil
	}

	alive := k
	score := func(i int) float64 {
		if nodes[nodes[i].prev].vertex == arena.NullVertex || nodes[i].vertex == arena.NullVertex || nodes[nodes[i].next].vertex == arena.NullVertex {
			return math.Inf(1)
		}
		v0 := lookup(nodes[nodes[i].prev].vertex)
		v1 := lookup(nodes[i].vertex)
		v2 := lookup(nodes[nodes[i].next].vertex)
		ori := predicates.Orientation(v0, v1, v2, th)
		if ori <= 0 {
			return math.Inf(1)
		}
		return predicates.InCircle(v0, v1, v2, vRemoved, th) / ori
	}

	for alive > 3 {
		best := -1
		bestScore := math.Inf(1)
		for i := 0; i < k; i++ {
			if !nodes[i].alive {
				continue
			}
			s := score(i)
			if best == -1 {
				best, bestScore = i, s
				continue
			}
			if s < bestScore {
				best, bestScore = i, s
				continue
			}
			if s == bestScore && nodes[nodes[i].prev].vertex == arena.NullVertex && nodes[nodes[best].prev].vertex != arena.NullVertex {
				best = i
			}
		}

		closeEar(a, nodes, best)
		alive--
	}

	return nil
}

func closeEar(a *arena.EdgeArena, nodes []ringNode, i int) {
	prevIdx := nodes[i].prev
	nextIdx := nodes[i].next

	v0 := nodes[prevIdx].vertex
	v2 := nodes[nextIdx].vertex

	newEdge := arena.NewHandle(a, a.Allocate(v2, v0))

	outPrev := arena.NewHandle(a, nodes[prevIdx].outEdge) // v0 -> v1
	outCur := arena.NewHandle(a, nodes[i].outEdge)        // v1 -> v2

	outBefore := arena.NewHandle(a, nodes[nodes[prevIdx].prev].outEdge) // ... -> v0
	outNext := arena.NewHandle(a, nodes[nextIdx].outEdge)               // v2 -> ...

	outPrev.SetForward(outCur)
	outCur.SetForward(newEdge)
	newEdge.SetForward(outPrev)

	// Splice the new chord's dual (v0 -> v2) into the remaining ring.
	outBefore.SetForward(newEdge.Dual())
	newEdge.Dual().SetForward(outNext)

	nodes[prevIdx].next = nextIdx
	nodes[nextIdx].prev = prevIdx
	nodes[prevIdx].outEdge = newEdge.Dual().ID() // now v0 -> v2
	nodes[i].alive = false
}
