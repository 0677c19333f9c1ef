package mesh

import "errors"

var (
	// ErrNotBootstrapped is returned by queries that need at least one
	// triangle (walks, nearest-edge, containment) before the mesh has
	// accepted its first three non-collinear vertices.
	ErrNotBootstrapped = errors.New("tinmesh: mesh has no triangle yet")

	// ErrInvalidVertexID indicates a vertex id is out of range, or
	// names a vertex that has since been removed.
	ErrInvalidVertexID = errors.New("tinmesh: invalid or removed vertex id")

	// ErrVertexOutsideHull is returned by Remove when the requested
	// vertex is not present in the mesh's live adjacency table.
	ErrVertexOutsideHull = errors.New("tinmesh: vertex is not part of the triangulation")

	// ErrConstraintsAlreadyEmbedded is returned by AddConstraints when
	// called more than once against the same mesh.
	ErrConstraintsAlreadyEmbedded = errors.New("tinmesh: constraints have already been embedded into this mesh")

	// ErrMeshLocked is returned by Add and AddList once AddConstraints
	// has embedded constraints into the mesh: conformance restoration
	// may already have located and subdivided edges against the vertex
	// set as it stood at that point, so admitting more vertices
	// afterward could silently invalidate that work.
	ErrMeshLocked = errors.New("tinmesh: mesh is locked against new vertices after constraint embedding")
)
