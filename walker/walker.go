// Package walker implements stochastic Lawson point location: given a
// starting edge and a query point, it walks triangle to triangle
// toward the triangle that contains the query, or to the hull edge a
// ghost triangle is reached from.
package walker

import (
	"math/rand"

	"github.com/tinmesh/tinmesh/arena"
	"github.com/tinmesh/tinmesh/predicates"
	"github.com/tinmesh/tinmesh/thresholds"
	"github.com/tinmesh/tinmesh/vertex"
)

// VertexLookup resolves an arena vertex id to its coordinates.
// NullVertex is never passed in.
type VertexLookup func(id int32) vertex.Vertex

// Walk locates the triangle containing (x, y) starting the search
// from start. It returns an edge whose left triangle contains the
// point, or — if the walk exits the hull — the hull edge it crossed
// into the ghost triangle through.
//
// At each step the three edges of the current left triangle are
// tested; if the query is to the right of more than one, the walk
// picks among the failing edges uniformly at random via rng, which
// keeps it from cycling on exactly co-circular quadrilaterals.
func Walk(start arena.Handle, x, y float64, lookup VertexLookup, th thresholds.Thresholds, rng *rand.Rand) arena.Handle {
	cur := start
	q := vertex.New(x, y, 0, 0)

	for {
		if cur.IsExterior() {
			return cur
		}

		a := lookup(cur.A())
		b := lookup(cur.B())
		c := lookup(cur.TriangleApex())

		edges := [3]arena.Handle{cur, cur.Forward(), cur.Reverse()}
		origins := [3]vertex.Vertex{a, b, c}
		dests := [3]vertex.Vertex{b, c, a}

		var failing []int
		for i := 0; i < 3; i++ {
			if predicates.Orientation(origins[i], dests[i], q, th) < 0 {
				failing = append(failing, i)
			}
		}

		if len(failing) == 0 {
			return cur
		}

		pick := failing[0]
		if len(failing) > 1 {
			pick = failing[rng.Intn(len(failing))]
		}
		cur = edges[pick].Dual()
	}
}
