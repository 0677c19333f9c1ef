// Package insert implements incremental Bowyer-Watson vertex
// insertion against a quad-edge arena: it excavates the star-shaped
// cavity of triangles whose circumcircle contains the new vertex —
// including the ghost triangles fringing the convex hull — and fans
// new edges from the vertex to the cavity boundary.
package insert

import (
	"errors"
	"math/rand"

	"github.com/tinmesh/tinmesh/arena"
	"github.com/tinmesh/tinmesh/predicates"
	"github.com/tinmesh/tinmesh/thresholds"
	"github.com/tinmesh/tinmesh/vertex"
	"github.com/tinmesh/tinmesh/walker"
)

// ErrDegenerateCavity signals that the cavity excavation could not
// find a single boundary edge, which would indicate mesh corruption
// rather than a client error.
var ErrDegenerateCavity = errors.New("tinmesh: cavity excavation found no boundary edges")

// Stats accumulates per-insertion diagnostic counters that the mesh
// surfaces to callers.
type Stats struct {
	EdgesReplaced     int
	InCircleConflicts int
}

// Locate walks from seed to the triangle (possibly a ghost triangle)
// containing (x, y).
func Locate(seed arena.Handle, x, y float64, lookup walker.VertexLookup, th thresholds.Thresholds, rng *rand.Rand) arena.Handle {
	return walker.Walk(seed, x, y, lookup, th, rng)
}

// CoincidentVertex reports whether (x, y) falls within vertex
// tolerance of one of containing's (up to three) vertices, returning
// that vertex's id. Ghost vertices (NullVertex) are never matched.
func CoincidentVertex(containing arena.Handle, x, y float64, lookup walker.VertexLookup, th thresholds.Thresholds) (int32, bool) {
	q := vertex.New(x, y, 0, 0)
	candidates := [3]int32{containing.A(), containing.B()}
	if !containing.IsExterior() {
		candidates[2] = containing.TriangleApex()
	} else {
		candidates[2] = arena.NullVertex
	}
	for _, id := range candidates {
		if id == arena.NullVertex {
			continue
		}
		if vertex.Dist2(lookup(id), q) <= th.VertexTolerance2 {
			return id, true
		}
	}
	return 0, false
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

func findHullEdge(h arena.Handle) arena.Handle {
	edges := [3]arena.Handle{h, h.Forward(), h.Reverse()}
	for _, e := range edges {
		if e.A() != arena.NullVertex && e.B() != arena.NullVertex {
			return e
		}
	}
	return h
}

// inCircleWithGhosts classifies whether the new vertex v falls on the
// exterior side of a ghost triangle's hull edge (hullA, hullB) — the
// edge as stored on the ghost triangle itself, whose left face is the
// unbounded exterior — meaning the cavity should swallow that ghost
// triangle because v extends the hull. v on the interior side leaves
// the ghost triangle untouched. Exactly-collinear queries (v on the
// hull edge's line) fall back to checking whether v's projection lies
// within the edge's span: within span, v is effectively a point along
// the existing boundary and the ghost triangle is left alone; beyond
// either end, v is walking past a hull vertex and the ghost triangle
// is swallowed.
func inCircleWithGhosts(hullA, hullB, v vertex.Vertex, th thresholds.Thresholds) bool {
	h := predicates.HalfPlane(hullA, hullB, v, th)
	if h > th.HalfPlaneThreshold {
		return true
	}
	if h < -th.HalfPlaneThreshold {
		return false
	}
	length2 := vertex.Dist2(hullA, hullB)
	if length2 == 0 {
		return true
	}
	t := ((v.X-hullA.X)*(hullB.X-hullA.X) + (v.Y-hullA.Y)*(hullB.Y-hullA.Y)) / length2
	return !(t >= 0 && t <= 1)
}

func triangleInCavity(h arena.Handle, v vertex.Vertex, lookup walker.VertexLookup, th thresholds.Thresholds, stats *Stats) bool {
	if h.IsExterior() {
		hull := findHullEdge(h)
		hullA, hullB := lookup(hull.A()), lookup(hull.B())
		return inCircleWithGhosts(hullA, hullB, v, th)
	}
	a, b, c := lookup(h.A()), lookup(h.B()), lookup(h.TriangleApex())
	result := predicates.InCircleDiagnosed(a, b, c, v, th)
	if result.UsedExact {
		stats.InCircleConflicts++
	}
	return result.Value > 0
}

// Insert performs the Bowyer-Watson cavity expansion and
// retriangulation for a new vertex newVertexID located at (x, y),
// whose containing triangle (from Locate) is given by containing.
// Callers must have already ruled out a coincident match (for example
// via CoincidentVertex). It returns an edge seated on the new vertex,
// suitable as the next Locate's seed.
func Insert(a *arena.EdgeArena, lookup walker.VertexLookup, th thresholds.Thresholds, containing arena.Handle, newVertexID int32, stats *Stats) (arena.Handle, error) {
	v := lookup(newVertexID)

	visited := map[int32]bool{triCanon(containing): true}
	inCavity := map[int32]bool{triCanon(containing): true}
	queue := []arena.Handle{containing}

	var boundary []arena.Handle
	freed := map[int32]bool{}

	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]

		edges := [3]arena.Handle{h, h.Forward(), h.Reverse()}
		for _, e := range edges {
			neighbor := e.Dual()
			nc := triCanon(neighbor)

			if !visited[nc] {
				visited[nc] = true
				if triangleInCavity(neighbor, v, lookup, th, stats) {
					inCavity[nc] = true
					queue = append(queue, neighbor)
				}
			}

			if inCavity[nc] {
				pairKey := int32(e.ID())
				if int32(e.ID().Dual()) < pairKey {
					pairKey = int32(e.ID().Dual())
				}
				freed[pairKey] = true
			} else {
				boundary = append(boundary, e)
			}
		}
	}

	if len(boundary) == 0 {
		return arena.Handle{}, ErrDegenerateCavity
	}

	for pairKey := range freed {
		a.Deallocate(arena.EdgeID(pairKey))
	}
	stats.EdgesReplaced += len(freed)

	// Radiant edges (v -> boundary vertex) are shared between the two
	// new triangles meeting at that vertex. This includes the null
	// vertex: when v extends the hull, its single ghost pair (v, null)
	// is shared by the two new ghost triangles on either side of it,
	// one using v->null and the other null->v.
	radiant := map[int32]arena.EdgeID{}
	get := func(id int32) arena.Handle {
		if existing, ok := radiant[id]; ok {
			return arena.NewHandle(a, existing)
		}
		e := a.Allocate(newVertexID, id)
		radiant[id] = e
		return arena.NewHandle(a, e)
	}

	var last arena.Handle
	for _, b := range boundary {
		rp := get(b.A())
		rq := get(b.B())
		rqDual := rq.Dual()

		rp.SetForward(b)
		b.SetForward(rqDual)
		rqDual.SetForward(rp)
		last = rp
	}

	return last, nil
}
