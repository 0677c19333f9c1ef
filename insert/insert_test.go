package insert

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinmesh/tinmesh/arena"
	"github.com/tinmesh/tinmesh/thresholds"
	"github.com/tinmesh/tinmesh/vertex"
)

// buildSingleTriangleMesh mirrors the walker package's fixture: one
// interior triangle (0,0),(1,0),(0,1) ringed by three ghost triangles.
func buildSingleTriangleMesh(t *testing.T) (*arena.EdgeArena, arena.Handle, map[int32]vertex.Vertex) {
	t.Helper()
	a := arena.New()
	verts := map[int32]vertex.Vertex{
		0: vertex.New(0, 0, 0, 0),
		1: vertex.New(1, 0, 0, 1),
		2: vertex.New(0, 1, 0, 2),
	}

	e0 := arena.NewHandle(a, a.Allocate(0, 1))
	e1 := arena.NewHandle(a, a.Allocate(1, 2))
	e2 := arena.NewHandle(a, a.Allocate(2, 0))
	e0.SetForward(e1)
	e1.SetForward(e2)
	e2.SetForward(e0)

	g0 := arena.NewHandle(a, a.Allocate(0, arena.NullVertex))
	g1 := arena.NewHandle(a, a.Allocate(1, arena.NullVertex))
	g2 := arena.NewHandle(a, a.Allocate(2, arena.NullVertex))

	e0.Dual().SetForward(g0)
	g0.SetForward(g1.Dual())
	g1.Dual().SetForward(e0.Dual())

	e1.Dual().SetForward(g1)
	g1.SetForward(g2.Dual())
	g2.Dual().SetForward(e1.Dual())

	e2.Dual().SetForward(g2)
	g2.SetForward(g0.Dual())
	g0.Dual().SetForward(e2.Dual())

	return a, e0, verts
}

func TestCoincidentVertexDetectsExistingCorner(t *testing.T) {
	_, e0, verts := buildSingleTriangleMesh(t)
	th := thresholds.New(1)
	lookup := func(id int32) vertex.Vertex { return verts[id] }

	id, ok := CoincidentVertex(e0, 1e-9, 1e-9, lookup, th)
	require.True(t, ok)
	require.Equal(t, int32(0), id)
}

func TestInsertInteriorPointSplitsTriangleInThree(t *testing.T) {
	a, e0, verts := buildSingleTriangleMesh(t)
	th := thresholds.New(1)
	lookup := func(id int32) vertex.Vertex { return verts[id] }
	rng := rand.New(rand.NewSource(0))

	verts[3] = vertex.New(0.25, 0.25, 0, 3)
	containing := Locate(e0, 0.25, 0.25, lookup, th, rng)
	require.False(t, containing.IsExterior())

	stats := &Stats{}
	seed, err := Insert(a, lookup, th, containing, 3, stats)
	require.NoError(t, err)
	require.Equal(t, int32(3), seed.A())

	// Three new radiant edges (v->0, v->1, v->2) added to the original
	// six pairs (three interior, three ghost); nothing was freed since
	// the cavity never reached a second triangle.
	require.Equal(t, 9, a.Len())
	require.Zero(t, stats.EdgesReplaced)

	var fromNewVertex int
	a.Iterate(true, func(id arena.EdgeID) {
		h := arena.NewHandle(a, id)
		if h.A() == 3 || h.B() == 3 {
			fromNewVertex++
		}
	})
	require.Equal(t, 3, fromNewVertex, "the new vertex should anchor exactly three new pairs")
}

func TestInsertReturnsDegenerateCavityNever(t *testing.T) {
	a, e0, verts := buildSingleTriangleMesh(t)
	th := thresholds.New(1)
	lookup := func(id int32) vertex.Vertex { return verts[id] }
	rng := rand.New(rand.NewSource(1))

	verts[3] = vertex.New(0.1, 0.1, 0, 3)
	containing := Locate(e0, 0.1, 0.1, lookup, th, rng)

	stats := &Stats{}
	_, err := Insert(a, lookup, th, containing, 3, stats)
	require.NoError(t, err)
}
