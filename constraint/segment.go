package constraint

import (
	"errors"
	"math/rand"

	"github.com/tinmesh/tinmesh/arena"
	"github.com/tinmesh/tinmesh/insert"
	"github.com/tinmesh/tinmesh/predicates"
	"github.com/tinmesh/tinmesh/thresholds"
	"github.com/tinmesh/tinmesh/walker"
)

var errNoCrossingWedge = errors.New("tinmesh: no incident wedge spans the constraint segment")

// locateVertexAnchor walks to vertexID's own coordinates and returns a
// handle whose origin is vertexID.
func locateVertexAnchor(seed arena.Handle, vertexID int32, lookup walker.VertexLookup, th thresholds.Thresholds, rng *rand.Rand) (arena.Handle, bool) {
	v := lookup(vertexID)
	tri := insert.Locate(seed, v.X, v.Y, lookup, th, rng)

	if tri.A() == vertexID {
		return tri, true
	}
	if tri.B() == vertexID {
		return tri.Dual(), true
	}
	if !tri.IsExterior() && tri.TriangleApex() == vertexID {
		return tri.Reverse(), true
	}
	return arena.Handle{}, false
}

// findDirectEdge reports whether anchor's origin already has an edge
// to target, returning it oriented anchor-origin -> target.
func findDirectEdge(anchor arena.Handle, target int32) (arena.Handle, bool) {
	var found arena.Handle
	ok := false
	anchor.Pinwheel(func(h arena.Handle) bool {
		if h.B() == target {
			found = h
			ok = true
			return false
		}
		return true
	})
	return found, ok
}

// collectCrossingEdges returns, in geometric order from vStart to
// vEnd, every edge the open segment (vStart, vEnd) passes through the
// interior of.
func collectCrossingEdges(vStartAnchor arena.Handle, vStart, vEnd int32, lookup walker.VertexLookup, th thresholds.Thresholds) ([]arena.Handle, error) {
	vStartVtx := lookup(vStart)
	vEndVtx := lookup(vEnd)

	var spokes []arena.Handle
	vStartAnchor.Pinwheel(func(h arena.Handle) bool {
		spokes = append(spokes, h)
		return true
	})
	n := len(spokes)
	if n == 0 {
		return nil, errNoCrossingWedge
	}

	var first arena.Handle
	found := false
	for i := 0; i < n; i++ {
		b0 := spokes[i].B()
		if b0 == arena.NullVertex {
			continue
		}
		next := spokes[(i+1)%n]
		b1 := next.B()
		if b1 == arena.NullVertex {
			continue
		}
		// Pinwheel visits a vertex's spokes in CCW order, so the
		// consecutive pair (b0, b1) brackets vEnd exactly when vEnd is
		// not to the right of ray(vStart,b0) and not to the left of
		// ray(vStart,b1).
		o0 := predicates.Orientation(vStartVtx, lookup(b0), vEndVtx, th)
		o1 := predicates.Orientation(vStartVtx, lookup(b1), vEndVtx, th)
		if o0 >= 0 && o1 <= 0 {
			first = spokes[i].Forward()
			found = true
			break
		}
	}
	if !found {
		return nil, errNoCrossingWedge
	}

	var crossing []arena.Handle
	cur := first
	for {
		crossing = append(crossing, cur)

		r := cur.Dual().TriangleApex()
		if r == vEnd || r == arena.NullVertex {
			break
		}

		sideA := sign(predicates.Orientation(vStartVtx, vEndVtx, lookup(cur.A()), th))
		sideR := sign(predicates.Orientation(vStartVtx, vEndVtx, lookup(r), th))
		if sideR == sideA {
			cur = cur.Dual().Reverse() // edge (r, b)
		} else {
			cur = cur.Dual().Forward() // edge (a, r)
		}
	}
	return crossing, nil
}

// flip swaps e's diagonal in the quadrilateral formed by its two
// incident triangles, returning the new diagonal's handle (same pair,
// reseated to its new endpoints).
func flip(e arena.Handle) arena.Handle {
	f1 := e.Forward()       // q -> r
	g1 := e.Reverse()       // r -> p
	f2 := e.Dual().Forward() // p -> s
	g2 := e.Dual().Reverse() // s -> q

	r := f1.B()
	s := f2.B()

	e.SetVertices(r, s)

	e.SetForward(g2)
	g2.SetForward(f1)
	f1.SetForward(e)

	e.Dual().SetForward(g1)
	g1.SetForward(f2)
	f2.SetForward(e.Dual())

	return e
}

func convexQuad(e arena.Handle, lookup walker.VertexLookup, th thresholds.Thresholds) bool {
	p, q := lookup(e.A()), lookup(e.B())
	r := lookup(e.Forward().B())
	s := lookup(e.Dual().Forward().B())
	return predicates.Orientation(r, p, s, th) > 0 && predicates.Orientation(s, q, r, th) > 0
}

// resolveCrossings flips every edge in crossing (requeuing ones whose
// quad isn't yet convex, and ones whose post-flip diagonal still
// crosses the segment) until the direct edge vStart-vEnd exists, which
// it then returns. vStartAnchor must still be a live handle whose
// origin is vStart; flip never changes f1/g1/f2/g2's own endpoints, so
// a spoke of vStart is never disturbed by flips along the corridor
// ahead of it.
func resolveCrossings(vStartAnchor arena.Handle, crossing []arena.Handle, vStart, vEnd int32, lookup walker.VertexLookup, th thresholds.Thresholds, flips *int) (arena.Handle, error) {
	vStartVtx := lookup(vStart)
	vEndVtx := lookup(vEnd)

	queue := append([]arena.Handle{}, crossing...)
	maxSpins := len(queue)*len(queue) + 8
	spins := 0

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		if !convexQuad(e, lookup, th) {
			queue = append(queue, e)
			spins++
			if spins > maxSpins {
				return arena.Handle{}, ErrDegenerateCorridor
			}
			continue
		}

		e2 := flip(e)
		*flips++
		a2, b2 := e2.A(), e2.B()
		if (a2 == vStart && b2 == vEnd) || (a2 == vEnd && b2 == vStart) {
			continue
		}

		sideA := sign(predicates.Orientation(vStartVtx, vEndVtx, lookup(a2), th))
		sideB := sign(predicates.Orientation(vStartVtx, vEndVtx, lookup(b2), th))
		if sideA != 0 && sideA == -sideB {
			queue = append(queue, e2)
			spins = 0
		}
	}

	edge, ok := findDirectEdge(vStartAnchor, vEnd)
	if !ok {
		return arena.Handle{}, ErrDegenerateCorridor
	}
	return edge, nil
}
