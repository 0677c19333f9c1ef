// Package spatial provides nearest-neighbor lookup structures used for
// coincident-vertex detection during insertion and for nearest-vertex
// queries.
package spatial

// Index supports approximate-then-exact nearest vertex queries over a
// growing set of points. Implementations need not support deletion:
// the mesh never removes entries from the index, since a removed mesh
// vertex still occupies a slot a future coincident vertex could land
// on.
type Index interface {
	// FindVerticesNear returns the indices of previously added vertices
	// that may lie within radius of (x, y): a superset that includes
	// every vertex within radius, so callers apply their own exact
	// distance check afterward. A radius of 0 returns only vertices
	// sharing (x, y)'s grid cell.
	FindVerticesNear(x, y, radius float64) []int
	// AddVertex registers a vertex's position under its application
	// index so it can later be found by FindVerticesNear.
	AddVertex(index int, x, y float64)
	// Build finalizes the index. Incremental structures may treat this
	// as a no-op.
	Build()
}

var _ Index = (*HashGrid)(nil)
