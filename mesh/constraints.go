package mesh

import "github.com/tinmesh/tinmesh/constraint"

// ConstraintChain is an ordered, already-inserted list of vertex ids.
// A Polygon chain's last vertex implicitly closes back to its first.
type ConstraintChain struct {
	Vertices []int32
	Polygon  bool
}

// ConstraintReport summarizes one AddConstraints call.
type ConstraintReport struct {
	SegmentsEmbedded int
	DirectMatches    int
	FlipsPerformed   int
	SplitsPerformed  int
}

// AddConstraints embeds every chain into the triangulation: each
// segment either already exists as an edge or is carved out by
// flipping the edges it crosses, after which polygon interiors are
// flood-filled. When restoreConformity is true, the corridor's
// unconstrained interior edges are flip-restored to Delaunay and any
// constrained edge left encroached by a later vertex is split to
// restore conformance; when false, the mesh is left as a plain CDT
// with no synthetic vertices added. It may only be called once per
// mesh, since restoring conformance can introduce new synthetic
// vertices that a second call would need to re-locate against a
// changed mesh.
func (m *Mesh) AddConstraints(chains []ConstraintChain, restoreConformity bool) (ConstraintReport, error) {
	if !m.bootstrapped {
		return ConstraintReport{}, ErrNotBootstrapped
	}
	if m.constraintsIn {
		return ConstraintReport{}, ErrConstraintsAlreadyEmbedded
	}

	before := len(m.vertices)
	specs := make([]constraint.Constraint, len(chains))
	for i, c := range chains {
		specs[i] = constraint.Constraint{Vertices: c.Vertices, Polygon: c.Polygon}
	}

	result, err := constraint.Embed(m.arena, m, m.th, m.seed, m.rng, specs, restoreConformity)
	if err != nil {
		return ConstraintReport{}, err
	}
	m.constraintsIn = true

	for id := before; id < len(m.vertices); id++ {
		m.repairAnchor(int32(id))
	}
	for _, c := range chains {
		for _, v := range c.Vertices {
			m.repairAnchor(v)
		}
	}

	m.Stats.ConstraintSplits += result.SplitsPerformed
	return ConstraintReport{
		SegmentsEmbedded: result.SegmentsEmbedded,
		DirectMatches:    result.DirectMatches,
		FlipsPerformed:   result.FlipsPerformed,
		SplitsPerformed:  result.SplitsPerformed,
	}, nil
}
