package mesh

import (
	"github.com/tinmesh/tinmesh/arena"
	"github.com/tinmesh/tinmesh/predicates"
)

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

// Violation records one pair of triangles sharing an unconstrained
// edge where the far vertex of one lies inside the other's
// circumcircle.
type Violation struct {
	TriangleA [3]int32
	TriangleB [3]int32
	Shared    [2]int32
}

// IntegrityReport summarizes the outcome of CheckIntegrity.
type IntegrityReport struct {
	Triangles        int
	ConstrainedEdges int
	Violations       []Violation
}

// CheckIntegrity walks every edge pair and verifies the empty
// -circumcircle property across each shared edge that is not itself
// constrained: embedding a required segment can legitimately force a
// locally non-Delaunay configuration, so constrained edges are counted
// but never flagged. It never mutates the mesh.
func (m *Mesh) CheckIntegrity() IntegrityReport {
	var report IntegrityReport
	seenTri := map[int32]bool{}

	m.arena.Iterate(false, func(id arena.EdgeID) {
		h := arena.NewHandle(m.arena, id)
		for _, side := range [2]arena.Handle{h, h.Dual()} {
			if side.IsExterior() {
				continue
			}
			canon := triCanon(side)
			if !seenTri[canon] {
				seenTri[canon] = true
				report.Triangles++
			}
		}

		if h.IsConstrained() {
			report.ConstrainedEdges++
			return
		}
		if h.IsExterior() || h.Dual().IsExterior() {
			return
		}

		a, b := m.vertexLookup(h.A()), m.vertexLookup(h.B())
		c := m.vertexLookup(h.TriangleApex())
		d := m.vertexLookup(h.Dual().TriangleApex())
		if predicates.InCircleDiagnosed(a, b, c, d, m.th).Value > m.th.InCircleThreshold {
			report.Violations = append(report.Violations, Violation{
				TriangleA: [3]int32{h.A(), h.B(), h.TriangleApex()},
				TriangleB: [3]int32{h.Dual().A(), h.Dual().B(), h.Dual().TriangleApex()},
				Shared:    [2]int32{h.A(), h.B()},
			})
		}
	})

	return report
}

// IsDelaunay reports whether CheckIntegrity found zero violations.
func (m *Mesh) IsDelaunay() bool {
	return len(m.CheckIntegrity().Violations) == 0
}
