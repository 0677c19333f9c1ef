// Package bootstrap selects the first three vertices a fresh mesh
// triangulates, picking a well-conditioned (large-area, non-collinear)
// triple from whatever vertices have accumulated so far.
package bootstrap

import (
	"math"
	"math/rand"

	"github.com/tinmesh/tinmesh/predicates"
	"github.com/tinmesh/tinmesh/thresholds"
	"github.com/tinmesh/tinmesh/vertex"
)

// Result is the outcome of an attempted bootstrap.
type Result struct {
	// Ready is true when a usable triangle was found.
	Ready bool
	// A, B, C index into the input slice and are ordered
	// counter-clockwise when Ready is true.
	A, B, C int
}

// maxRandomTriples bounds how many random triples Try samples before
// falling back to an exhaustive search, per n^(1/3) capped at 16.
func maxRandomTriples(n int) int {
	t := int(math.Ceil(math.Cbrt(float64(n))))
	if t > 16 {
		t = 16
	}
	if t < 1 {
		t = 1
	}
	return t
}

// Try looks for three non-collinear, well-separated vertices among
// pts. It first samples random triples (bounded by maxRandomTriples),
// keeping the one with the largest absolute signed area; if that area
// clears the minimum-area threshold s²·√3/256, it is accepted. If the
// best random sample is too small, Try falls back to an exhaustive
// search over all triples. If even the best exhaustive triple is too
// small, Try reports not-ready so the caller can wait for more input.
func Try(pts []vertex.Vertex, th thresholds.Thresholds, rng *rand.Rand) Result {
	n := len(pts)
	if n < 3 {
		return Result{Ready: false}
	}

	minArea := th.NominalPointSpacing * th.NominalPointSpacing * math.Sqrt(3) / 256

	bestI, bestJ, bestK := -1, -1, -1
	bestArea := 0.0

	attempts := maxRandomTriples(n)
	for t := 0; t < attempts; t++ {
		i := rng.Intn(n)
		j := rng.Intn(n)
		k := rng.Intn(n)
		if i == j || j == k || i == k {
			continue
		}
		area := math.Abs(predicates.Orientation(pts[i], pts[j], pts[k], th))
		if area > bestArea {
			bestArea, bestI, bestJ, bestK = area, i, j, k
		}
	}

	if bestArea < minArea {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				for k := j + 1; k < n; k++ {
					area := math.Abs(predicates.Orientation(pts[i], pts[j], pts[k], th))
					if area > bestArea {
						bestArea, bestI, bestJ, bestK = area, i, j, k
					}
				}
			}
		}
	}

	if bestArea < minArea || bestI < 0 {
		return Result{Ready: false}
	}

	signed := predicates.Orientation(pts[bestI], pts[bestJ], pts[bestK], th)
	if signed < 0 {
		bestI, bestK = bestK, bestI
	}

	return Result{Ready: true, A: bestI, B: bestJ, C: bestK}
}
