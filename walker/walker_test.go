package walker

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinmesh/tinmesh/arena"
	"github.com/tinmesh/tinmesh/thresholds"
	"github.com/tinmesh/tinmesh/vertex"
)

// buildSingleTriangleMesh builds one CCW interior triangle (0,0),
// (1,0), (0,1) plus its three ghost triangles fanning to the null
// vertex, matching the bootstrap post-condition described for the
// single-triangle end-to-end scenario.
func buildSingleTriangleMesh(t *testing.T) (*arena.EdgeArena, arena.Handle, map[int32]vertex.Vertex) {
	t.Helper()
	a := arena.New()
	verts := map[int32]vertex.Vertex{
		0: vertex.New(0, 0, 0, 0),
		1: vertex.New(1, 0, 0, 1),
		2: vertex.New(0, 1, 0, 2),
	}

	// interior triangle 0->1->2
	e0 := arena.NewHandle(a, a.Allocate(0, 1))
	e1 := arena.NewHandle(a, a.Allocate(1, 2))
	e2 := arena.NewHandle(a, a.Allocate(2, 0))
	e0.SetForward(e1)
	e1.SetForward(e2)
	e2.SetForward(e0)

	// One ghost pair per hull vertex, each shared between the two
	// ghost triangles fanning from that vertex.
	g0 := arena.NewHandle(a, a.Allocate(0, arena.NullVertex)) // 0->null, dual null->0
	g1 := arena.NewHandle(a, a.Allocate(1, arena.NullVertex)) // 1->null, dual null->1
	g2 := arena.NewHandle(a, a.Allocate(2, arena.NullVertex)) // 2->null, dual null->2

	// ghost triangle over e0's dual (1->0): 1->0, 0->null, null->1
	e0.Dual().SetForward(g0)
	g0.SetForward(g1.Dual())
	g1.Dual().SetForward(e0.Dual())

	// ghost triangle over e1's dual (2->1): 2->1, 1->null, null->2
	e1.Dual().SetForward(g1)
	g1.SetForward(g2.Dual())
	g2.Dual().SetForward(e1.Dual())

	// ghost triangle over e2's dual (0->2): 0->2, 2->null, null->0
	e2.Dual().SetForward(g2)
	g2.SetForward(g0.Dual())
	g0.Dual().SetForward(e2.Dual())

	return a, e0, verts
}

func lookupFor(verts map[int32]vertex.Vertex) VertexLookup {
	return func(id int32) vertex.Vertex { return verts[id] }
}

func TestWalkFindsContainingTriangleFromSameTriangle(t *testing.T) {
	_, e0, verts := buildSingleTriangleMesh(t)
	th := thresholds.New(1)
	rng := rand.New(rand.NewSource(0))

	result := Walk(e0, 0.2, 0.2, lookupFor(verts), th, rng)
	require.False(t, result.IsExterior())
	require.Equal(t, int32(0), result.A())
}

func TestWalkExitsToGhostForOutsidePoint(t *testing.T) {
	_, e0, verts := buildSingleTriangleMesh(t)
	th := thresholds.New(1)
	rng := rand.New(rand.NewSource(0))

	result := Walk(e0, 5, 5, lookupFor(verts), th, rng)
	require.True(t, result.IsExterior())
}
