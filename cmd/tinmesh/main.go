// Command tinmesh builds a reproducible random triangulation and
// prints a diagnostic summary, exercising the public mesh package
// end to end the way the teacher's cmd/ binaries exercise cdt.Build.
package main

import (
	"flag"
	"log"
	"math"
	"math/rand"

	"github.com/tinmesh/tinmesh/mesh"
)

func main() {
	var (
		n        = flag.Int("n", 500, "number of random points to triangulate")
		seed     = flag.Int64("seed", 1, "PRNG seed for both point generation and mesh construction")
		extent   = flag.Float64("extent", 1000, "side length of the square point cloud is drawn from")
		spacing  = flag.Float64("spacing", 0, "nominal point spacing; defaults to extent/sqrt(n)")
		rectHole = flag.Bool("rect-constraint", false, "embed a rectangular region constraint covering the middle third of the extent")
	)
	flag.Parse()

	s := *spacing
	if s <= 0 {
		s = *extent / math.Sqrt(float64(max(1, *n)))
	}

	log.Printf("generating %d points over a %gx%g square (seed=%d)", *n, *extent, *extent, *seed)
	pts := randomPoints(*n, *extent, *seed)

	m := mesh.New(s, mesh.WithSeed(*seed))
	ids, err := m.AddList(pts, func(done, total int) {
		if done%max(1, total/10) == 0 {
			log.Printf("  inserted %d/%d points", done, total)
		}
	})
	if err != nil {
		log.Fatalf("failed to build mesh: %v", err)
	}

	if *rectHole {
		report, err := embedRectangle(m, ids, *extent)
		if err != nil {
			log.Fatalf("failed to embed rectangle constraint: %v", err)
		}
		log.Printf("embedded rectangle constraint: %d segments (%d direct, %d flips, %d splits)",
			report.SegmentsEmbedded, report.DirectMatches, report.FlipsPerformed, report.SplitsPerformed)
	}

	integrity := m.CheckIntegrity()
	hull := m.Perimeter()

	log.Printf("=== summary ===")
	log.Printf("vertices:            %d", m.NumVertices())
	log.Printf("triangles:           %d", integrity.Triangles)
	log.Printf("hull vertices:       %d", len(hull))
	log.Printf("constrained edges:   %d", integrity.ConstrainedEdges)
	log.Printf("delaunay violations: %d", len(integrity.Violations))
	log.Printf("edges replaced:      %d", m.Stats.EdgesReplaced)
	log.Printf("incircle fallbacks:  %d", m.Stats.InCircleFallback)
	log.Printf("coincident merges:   %d", m.Stats.VerticesMerged)
}

func randomPoints(n int, extent float64, seed int64) [][3]float64 {
	rng := rand.New(rand.NewSource(seed))
	pts := make([][3]float64, n)
	for i := range pts {
		pts[i] = [3]float64{rng.Float64() * extent, rng.Float64() * extent, 0}
	}
	return pts
}

// embedRectangle locates the four input points closest to the middle
// third of the point cloud's extent and constrains their boundary as
// a polygon, giving the CLI a concrete, reproducible region to report
// on without requiring a file-based input format.
func embedRectangle(m *mesh.Mesh, ids []int32, extent float64) (mesh.ConstraintReport, error) {
	lo, hi := extent/3, extent*2/3
	corners := [4][2]float64{{lo, lo}, {hi, lo}, {hi, hi}, {lo, hi}}
	chain := make([]int32, 4)
	for i, c := range corners {
		id, ok := m.NearestVertex(c[0], c[1])
		if !ok {
			return mesh.ConstraintReport{}, mesh.ErrNotBootstrapped
		}
		chain[i] = id
	}
	return m.AddConstraints([]mesh.ConstraintChain{{Vertices: chain, Polygon: true}}, true)
}
