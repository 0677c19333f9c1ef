package constraint

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinmesh/tinmesh/arena"
	"github.com/tinmesh/tinmesh/thresholds"
	"github.com/tinmesh/tinmesh/vertex"
)

// buildUnitSquare triangulates the unit square (0,0),(1,0),(1,1),(0,1)
// with the 0-2 diagonal, ringed by four ghost triangles.
func buildUnitSquare(t *testing.T) (*arena.EdgeArena, arena.Handle, *fakeStore) {
	t.Helper()
	a := arena.New()
	store := newFakeStore()
	store.set(0, vertex.New(0, 0, 0, 0))
	store.set(1, vertex.New(1, 0, 0, 1))
	store.set(2, vertex.New(1, 1, 0, 2))
	store.set(3, vertex.New(0, 1, 0, 3))

	diag := arena.NewHandle(a, a.Allocate(0, 2))
	ea1 := arena.NewHandle(a, a.Allocate(0, 1))
	ea2 := arena.NewHandle(a, a.Allocate(1, 2))
	eb2 := arena.NewHandle(a, a.Allocate(2, 3))
	eb3 := arena.NewHandle(a, a.Allocate(3, 0))

	ea1.SetForward(ea2)
	ea2.SetForward(diag.Dual())
	diag.Dual().SetForward(ea1)

	diag.SetForward(eb2)
	eb2.SetForward(eb3)
	eb3.SetForward(diag)

	g0 := arena.NewHandle(a, a.Allocate(0, arena.NullVertex))
	g1 := arena.NewHandle(a, a.Allocate(1, arena.NullVertex))
	g2 := arena.NewHandle(a, a.Allocate(2, arena.NullVertex))
	g3 := arena.NewHandle(a, a.Allocate(3, arena.NullVertex))

	hull := [4]arena.Handle{ea1, ea2, eb2, eb3}
	ghosts := [4]arena.Handle{g0, g1, g2, g3}
	for i := 0; i < 4; i++ {
		next := (i + 1) % 4
		hull[i].Dual().SetForward(ghosts[i])
		ghosts[i].SetForward(ghosts[next].Dual())
		ghosts[next].Dual().SetForward(hull[i].Dual())
	}

	return a, ea1, store
}

type fakeStore struct {
	verts map[int32]vertex.Vertex
	next  int32
}

func newFakeStore() *fakeStore {
	return &fakeStore{verts: map[int32]vertex.Vertex{}, next: 100}
}

func (s *fakeStore) set(id int32, v vertex.Vertex) { s.verts[id] = v }

func (s *fakeStore) Vertex(id int32) vertex.Vertex { return s.verts[id] }

func (s *fakeStore) AddSynthetic(v vertex.Vertex) int32 {
	id := s.next
	s.next++
	v.Index = int(id)
	s.verts[id] = v
	return id
}

func (s *fakeStore) OnSplit(a, b, mid int32) {}

func TestEmbedFlipsCrossingDiagonalForOpenSegment(t *testing.T) {
	a, seed, store := buildUnitSquare(t)
	th := thresholds.New(1)
	rng := rand.New(rand.NewSource(0))

	result, err := Embed(a, store, th, seed, rng, []Constraint{
		{Vertices: []int32{1, 3}, Polygon: false},
	}, true)
	require.NoError(t, err)
	require.Equal(t, 1, result.SegmentsEmbedded)
	require.Equal(t, 1, result.FlipsPerformed)

	anchor, ok := locateVertexAnchor(seed, 1, func(id int32) vertex.Vertex { return store.Vertex(id) }, th, rng)
	require.True(t, ok)
	edge, ok := findDirectEdge(anchor, 3)
	require.True(t, ok)
	require.True(t, edge.IsConstrained())
	require.Equal(t, 0, edge.ConstraintIndex())
	require.True(t, edge.IsConstraintLineMember())
}

func TestEmbedDirectEdgeSkipsFlips(t *testing.T) {
	a, seed, store := buildUnitSquare(t)
	th := thresholds.New(1)
	rng := rand.New(rand.NewSource(0))

	result, err := Embed(a, store, th, seed, rng, []Constraint{
		{Vertices: []int32{0, 1}, Polygon: false},
	}, true)
	require.NoError(t, err)
	require.Equal(t, 1, result.DirectMatches)
	require.Zero(t, result.FlipsPerformed)
}

func TestEmbedPolygonFloodFillsInterior(t *testing.T) {
	a, seed, store := buildUnitSquare(t)
	th := thresholds.New(1)
	rng := rand.New(rand.NewSource(0))

	result, err := Embed(a, store, th, seed, rng, []Constraint{
		{Vertices: []int32{0, 1, 2, 3}, Polygon: true},
	}, true)
	require.NoError(t, err)
	require.Equal(t, 4, result.SegmentsEmbedded)
	require.Equal(t, 4, result.DirectMatches)

	lookup := func(id int32) vertex.Vertex { return store.Vertex(id) }
	anchor, ok := locateVertexAnchor(seed, 0, lookup, th, rng)
	require.True(t, ok)
	diagEdge, ok := findDirectEdge(anchor, 2)
	require.True(t, ok)
	require.True(t, diagEdge.IsConstrainedRegionInterior())

	hullEdge, ok := findDirectEdge(anchor, 1)
	require.True(t, ok)
	require.True(t, hullEdge.IsConstrainedRegionBorder())
}
