package remove

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinmesh/tinmesh/arena"
	"github.com/tinmesh/tinmesh/thresholds"
	"github.com/tinmesh/tinmesh/vertex"
)

// buildFanMesh builds a central vertex 0 surrounded by five boundary
// vertices (1..5) arranged on a near-circle, each consecutive pair of
// boundary vertices already joined (so the star of triangles around 0
// is complete), ringed by ghost triangles fanning from the boundary to
// null. Removing vertex 0 leaves a pentagon that the ear algorithm
// must retriangulate down to a single triangle (k=5 -> 3).
func buildFanMesh(t *testing.T) (*arena.EdgeArena, arena.Handle, map[int32]vertex.Vertex) {
	t.Helper()
	a := arena.New()

	const n = 5
	verts := map[int32]vertex.Vertex{
		0: vertex.New(0, 0, 0, 0),
	}
	boundaryIDs := make([]int32, n)
	for i := 0; i < n; i++ {
		angle := 2 * 3.14159265358979 * float64(i) / float64(n)
		id := int32(i + 1)
		boundaryIDs[i] = id
		verts[id] = vertex.New(3*math.Cos(angle), 3*math.Sin(angle), 0, int(id))
	}

	// Spokes 0->b_i and their forward boundary edges b_i->b_{i+1}.
	spokes := make([]arena.Handle, n)
	boundary := make([]arena.Handle, n)
	for i := 0; i < n; i++ {
		spokes[i] = arena.NewHandle(a, a.Allocate(0, boundaryIDs[i]))
	}
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		boundary[i] = arena.NewHandle(a, a.Allocate(boundaryIDs[i], boundaryIDs[next]))
	}

	// Interior triangle i: spoke[i] -> boundary[i] -> spoke[next].Dual()
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		spokes[i].SetForward(boundary[i])
		boundary[i].SetForward(spokes[next].Dual())
		spokes[next].Dual().SetForward(spokes[i])
	}

	// Ghost triangles over each boundary edge's dual, fanning to null.
	ghosts := make([]arena.Handle, n)
	for i := 0; i < n; i++ {
		ghosts[i] = arena.NewHandle(a, a.Allocate(boundaryIDs[i], arena.NullVertex))
	}
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		boundary[i].Dual().SetForward(ghosts[i])
		ghosts[i].SetForward(ghosts[next].Dual())
		ghosts[next].Dual().SetForward(boundary[i].Dual())
	}

	return a, spokes[0], verts
}

func TestRemoveVertexRetriangulatesPentagonDownToOneTriangle(t *testing.T) {
	a, anchor, verts := buildFanMesh(t)
	th := thresholds.New(1)
	lookup := func(id int32) vertex.Vertex { return verts[id] }

	before := a.Len()
	require.NoError(t, Remove(a, lookup, th, anchor, 0))

	// Five spokes were freed; one new chord was allocated per ear
	// closed (5 - 3 = 2 ears closed for a pentagon).
	require.Equal(t, before-5+2, a.Len())

	// No edge should still reference the removed vertex.
	var touchesRemoved bool
	a.Iterate(true, func(id arena.EdgeID) {
		h := arena.NewHandle(a, id)
		if h.A() == 0 {
			touchesRemoved = true
		}
	})
	require.False(t, touchesRemoved)
}

func TestRemoveVertexWithThreeNeighborsSkipsEarClipping(t *testing.T) {
	a := arena.New()
	verts := map[int32]vertex.Vertex{
		0: vertex.New(0, 0, 0, 0),
		1: vertex.New(1, 0, 0, 1),
		2: vertex.New(1, 1, 0, 2),
		3: vertex.New(0, 1, 0, 3),
	}
	lookup := func(id int32) vertex.Vertex { return verts[id] }
	th := thresholds.New(1)

	s0 := arena.NewHandle(a, a.Allocate(0, 1))
	s1 := arena.NewHandle(a, a.Allocate(0, 2))
	s2 := arena.NewHandle(a, a.Allocate(0, 3))
	b0 := arena.NewHandle(a, a.Allocate(1, 2))
	b1 := arena.NewHandle(a, a.Allocate(2, 3))
	b2 := arena.NewHandle(a, a.Allocate(3, 1))

	s0.SetForward(b0)
	b0.SetForward(s1.Dual())
	s1.Dual().SetForward(s0)

	s1.SetForward(b1)
	b1.SetForward(s2.Dual())
	s2.Dual().SetForward(s1)

	s2.SetForward(b2)
	b2.SetForward(s0.Dual())
	s0.Dual().SetForward(s2)

	before := a.Len()
	require.NoError(t, Remove(a, lookup, th, s0, 0))
	require.Equal(t, before-3, a.Len())
}

func TestRemoveTooFewNeighborsErrors(t *testing.T) {
	a := arena.New()
	verts := map[int32]vertex.Vertex{
		0: vertex.New(0, 0, 0, 0),
		1: vertex.New(1, 0, 0, 1),
	}
	lookup := func(id int32) vertex.Vertex { return verts[id] }
	th := thresholds.New(1)

	e := arena.NewHandle(a, a.Allocate(0, 1))
	e.SetForward(e.Dual())
	e.Dual().SetForward(e)

	err := Remove(a, lookup, th, e, 0)
	require.ErrorIs(t, err, ErrTooFewNeighbors)
}
