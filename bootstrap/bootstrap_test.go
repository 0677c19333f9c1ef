package bootstrap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinmesh/tinmesh/thresholds"
	"github.com/tinmesh/tinmesh/vertex"
)

func pts(coords ...[2]float64) []vertex.Vertex {
	out := make([]vertex.Vertex, len(coords))
	for i, c := range coords {
		out[i] = vertex.New(c[0], c[1], 0, i)
	}
	return out
}

func TestTryFailsOnCollinearPoints(t *testing.T) {
	th := thresholds.New(1)
	rng := rand.New(rand.NewSource(0))

	result := Try(pts([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{2, 0}), th, rng)
	require.False(t, result.Ready)
}

func TestTrySucceedsOnWellSeparatedTriangle(t *testing.T) {
	th := thresholds.New(1)
	rng := rand.New(rand.NewSource(0))

	result := Try(pts([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{0, 1}), th, rng)
	require.True(t, result.Ready)
}

func TestTryReturnsCCWOrder(t *testing.T) {
	th := thresholds.New(1)
	rng := rand.New(rand.NewSource(0))

	input := pts([2]float64{0, 0}, [2]float64{0, 1}, [2]float64{1, 0})
	result := Try(input, th, rng)
	require.True(t, result.Ready)

	a, b, c := input[result.A], input[result.B], input[result.C]
	area := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	require.Greater(t, area, 0.0)
}

func TestTryNotReadyWithFewerThanThreePoints(t *testing.T) {
	th := thresholds.New(1)
	rng := rand.New(rand.NewSource(0))
	result := Try(pts([2]float64{0, 0}, [2]float64{1, 1}), th, rng)
	require.False(t, result.Ready)
}
