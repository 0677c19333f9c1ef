// Package constraint embeds linear chains and polygon boundaries into
// an already-triangulated mesh: each segment either already exists as
// an edge, or is carved out by flipping the edges it crosses until it
// does, after which polygon interiors are flood-filled with the
// constraint's region index and any constrained edge left encroached
// by a later vertex is split to restore local Delaunay-ness.
package constraint

import (
	"errors"
	"math/rand"

	"github.com/tinmesh/tinmesh/arena"
	"github.com/tinmesh/tinmesh/predicates"
	"github.com/tinmesh/tinmesh/thresholds"
	"github.com/tinmesh/tinmesh/vertex"
	"github.com/tinmesh/tinmesh/walker"
)

// ErrTooManyConstraints reports that more constraints were supplied
// than the packed constraint word can index.
var ErrTooManyConstraints = errors.New("tinmesh: constraint index exceeds packed word capacity")

// ErrDegenerateCorridor reports that a constraint segment's corridor
// could not be resolved into a single edge — typically because two
// constraints cross each other.
var ErrDegenerateCorridor = errors.New("tinmesh: constraint segment corridor could not be resolved")

// ErrVertexNotFound reports that a constraint referenced a vertex id
// that could not be located by walking to its coordinates.
var ErrVertexNotFound = errors.New("tinmesh: constraint vertex could not be located in the mesh")

// Constraint is an ordered, already-inserted chain of vertex ids. A
// Polygon constraint's last vertex implicitly closes back to its
// first; a non-polygon constraint is an open chain.
type Constraint struct {
	Vertices []int32
	Polygon  bool
	Index    int
}

// VertexStore is the subset of mesh's vertex table the constraint
// package needs: coordinate lookup, plus the ability to mint a new
// synthetic vertex (used when an encroached constrained edge must be
// split at its midpoint), plus a notification hook so the mesh can
// surface conformance-restoration splits to a caller-installed debug
// callback.
type VertexStore interface {
	Vertex(id int32) vertex.Vertex
	AddSynthetic(v vertex.Vertex) int32
	OnSplit(a, b, mid int32)
}

// Result accumulates diagnostic counters across an Embed call.
type Result struct {
	SegmentsEmbedded int
	DirectMatches    int
	FlipsPerformed   int
	SplitsPerformed  int
}

// Embed inserts every constraint in constraints into the mesh rooted
// at seed, assigning each constraint's packed index (overriding
// Constraint.Index with its position in the slice), flood-filling
// polygon interiors, and — when restoreConformity is set — restoring
// Delaunay conformance by flipping unconstrained corridor edges and
// splitting any constrained edge a later step left encroached.
func Embed(a *arena.EdgeArena, store VertexStore, th thresholds.Thresholds, seed arena.Handle, rng *rand.Rand, constraints []Constraint, restoreConformity bool) (Result, error) {
	lookup := func(id int32) vertex.Vertex { return store.Vertex(id) }
	var result Result
	var borders []arena.Handle

	for ci := range constraints {
		c := &constraints[ci]
		if ci > arena.MaxConstraintIndex {
			return result, ErrTooManyConstraints
		}
		c.Index = ci

		n := len(c.Vertices)
		segments := n - 1
		if c.Polygon {
			segments = n
		}

		var firstEdge arena.Handle
		for s := 0; s < segments; s++ {
			vStart := c.Vertices[s]
			vEnd := c.Vertices[(s+1)%n]

			anchor, ok := locateVertexAnchor(seed, vStart, lookup, th, rng)
			if !ok {
				return result, ErrVertexNotFound
			}

			edge, ok := findDirectEdge(anchor, vEnd)
			var crossing []arena.Handle
			if ok {
				result.DirectMatches++
			} else {
				var err error
				crossing, err = collectCrossingEdges(anchor, vStart, vEnd, lookup, th)
				if err != nil {
					return result, err
				}
				edge, err = resolveCrossings(anchor, crossing, vStart, vEnd, lookup, th, &result.FlipsPerformed)
				if err != nil {
					return result, err
				}
			}

			if edge.A() != vStart {
				edge = edge.Dual()
			}
			edge.SetConstrained(c.Index)
			if !c.Polygon {
				edge.SetConstraintLineMemberFlag()
			}
			if s == 0 {
				firstEdge = edge
			}
			borders = append(borders, edge)
			seed = edge
			result.SegmentsEmbedded++

			// The corridor's other interior edges are newly created
			// diagonals, not the constraint segment itself; restore
			// their Delaunay-ness with up to k^2 flip passes now that
			// the constraint edge is flagged and will never be flipped.
			if restoreConformity && len(crossing) > 0 {
				restoreCorridorFlips(crossing, lookup, th, &result.FlipsPerformed)
			}
		}

		if c.Polygon {
			floodFillRegion(firstEdge)
		}
	}

	if restoreConformity {
		splits, flips := restoreConformance(a, store, th, borders)
		result.SplitsPerformed = splits
		result.FlipsPerformed += flips
	}
	return result, nil
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func triCanon(h arena.Handle) int32 {
	ids := [3]int32{int32(h.ID()), int32(h.Forward().ID()), int32(h.Reverse().ID())}
	min := ids[0]
	for _, v := range ids[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// floodFillRegion marks every triangle reachable from borderEdge's
// interior side (its Forward triangle, assuming the constraint's
// vertices were supplied in the polygon's winding order) as region
// territory, stopping at the polygon's own constrained edges. Which
// polygon a border edge belongs to is recovered from the edge's own
// constraint index, already set by the caller.
func floodFillRegion(borderEdge arena.Handle) {
	visited := map[int32]bool{}
	queue := []arena.Handle{borderEdge.Forward()}

	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		canon := triCanon(h)
		if visited[canon] {
			continue
		}
		visited[canon] = true

		sides := [3]arena.Handle{h, h.Forward(), h.Reverse()}
		for _, side := range sides {
			if side.IsConstrained() {
				side.SetConstrainedRegionBorderFlag()
				continue
			}
			side.SetConstrainedRegionInteriorFlag()
			nb := side.Dual()
			if !nb.IsExterior() && !visited[triCanon(nb)] {
				queue = append(queue, nb)
			}
		}
	}
}

// isEncroached reports whether e fails the Delaunay incircle test
// against th.DelaunayThreshold per spec.md §4.9.5: d, the apex of the
// triangle on e's far side, lies inside the circumcircle of e's own
// (counter-clockwise) triangle (a,b,c). Edges bordering a ghost
// triangle on either side have no opposing apex to test and are never
// encroached.
func isEncroached(e arena.Handle, lookup walker.VertexLookup, th thresholds.Thresholds) bool {
	if e.IsExterior() || e.Dual().IsExterior() {
		return false
	}
	a, b, c := lookup(e.A()), lookup(e.B()), lookup(e.TriangleApex())
	d := lookup(e.Dual().TriangleApex())
	return predicates.InCircle(a, b, c, d, th) > th.DelaunayThreshold
}

// restoreCorridorFlips restores local Delaunay-ness on a constraint
// segment's newly created interior edges (the corridor diagonals
// collectCrossingEdges found and resolveCrossings flipped into place)
// with up to k^2 passes per spec.md §4.9.4, where k is the number of
// corridor edges. Constrained edges — including the segment edge
// itself, already flagged by the caller — are never flipped.
func restoreCorridorFlips(edges []arena.Handle, lookup walker.VertexLookup, th thresholds.Thresholds, flips *int) {
	k := len(edges)
	limit := k * k
	for pass := 0; pass < limit; pass++ {
		changed := false
		for _, e := range edges {
			if e.IsConstrained() {
				continue
			}
			if !convexQuad(e, lookup, th) {
				continue
			}
			if !isEncroached(e, lookup, th) {
				continue
			}
			flip(e)
			*flips++
			changed = true
		}
		if !changed {
			return
		}
	}
}

// restoreConformance walks every constrained edge reachable from seeds
// (and any constrained edge newly exposed by an earlier split),
// splitting one at its midpoint whenever it fails the incircle test
// against th.DelaunayThreshold (spec.md §4.9.5) and recursing on its
// four neighbor edges, using an explicit stack so the recursive
// splitting the algorithm calls for never grows the Go call stack.
// Unconstrained violations encountered along the way are restored by
// a single flip rather than a split.
func restoreConformance(a *arena.EdgeArena, store VertexStore, th thresholds.Thresholds, seeds []arena.Handle) (splits, flips int) {
	lookup := func(id int32) vertex.Vertex { return store.Vertex(id) }
	stack := append([]arena.Handle{}, seeds...)

	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if e.IsExterior() || e.Dual().IsExterior() {
			continue
		}

		if !e.IsConstrained() {
			if convexQuad(e, lookup, th) && isEncroached(e, lookup, th) {
				flip(e)
				flips++
			}
			continue
		}

		if !isEncroached(e, lookup, th) {
			continue
		}

		origA, origB := e.A(), e.B()
		va, vb := store.Vertex(origA), store.Vertex(origB)
		mid := vertex.Midpoint(va, vb, 0)
		midID := store.AddSynthetic(mid)

		newSide := arena.NewHandle(a, a.SplitEdge(e.ID(), midID))
		splits++
		store.OnSplit(origA, origB, midID)

		stack = append(stack, e, newSide, e.Forward(), e.Reverse(), newSide.Forward(), newSide.Reverse())
	}

	return splits, flips
}
