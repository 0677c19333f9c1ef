package predicates

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinmesh/tinmesh/thresholds"
	"github.com/tinmesh/tinmesh/vertex"
)

func v(x, y float64) vertex.Vertex {
	return vertex.New(x, y, 0, 0)
}

func TestOrientation(t *testing.T) {
	th := thresholds.New(1)

	ccw := Orientation(v(0, 0), v(1, 0), v(0, 1), th)
	require.Greater(t, ccw, 0.0)

	cw := Orientation(v(0, 0), v(0, 1), v(1, 0), th)
	require.Less(t, cw, 0.0)

	collinear := Orientation(v(0, 0), v(1, 1), v(2, 2), th)
	require.Zero(t, collinear)
}

func TestOrientationNearDegenerateUsesExactFallback(t *testing.T) {
	th := thresholds.New(1)
	result := Orientation(v(0, 0), v(1e-30, 0), v(0, 1e-30), th)
	require.Greater(t, result, 0.0, "robust ccw orientation expected for near-degenerate triangle")
}

func TestInCircle(t *testing.T) {
	th := thresholds.New(1)
	a, b, c := v(0, 0), v(1, 0), v(0, 1)

	inside := InCircle(a, b, c, v(0.25, 0.25), th)
	require.Greater(t, inside, 0.0)

	outside := InCircle(a, b, c, v(2, 2), th)
	require.Less(t, outside, 0.0)

	onCircle := InCircle(a, b, c, v(1, 1), th)
	require.InDelta(t, 0, onCircle, 1e-9)
}

func TestInCircleDiagnosedReportsExactUsage(t *testing.T) {
	th := thresholds.New(1)
	a, b, c := v(0, 0), v(1, 0), v(0, 1)

	result := InCircleDiagnosed(a, b, c, v(1, 1), th)
	require.True(t, result.UsedExact, "near-cocircular query should trigger the extended-precision path")
}

func TestCircumcircle(t *testing.T) {
	cx, cy, r := Circumcircle(v(0, 0), v(2, 0), v(0, 2))
	require.InDelta(t, 1, cx, 1e-9)
	require.InDelta(t, 1, cy, 1e-9)
	require.InDelta(t, r*r, (cx-0)*(cx-0)+(cy-0)*(cy-0), 1e-9)
}

func TestArea(t *testing.T) {
	th := thresholds.New(1)
	area := Area(v(0, 0), v(4, 0), v(0, 3), th)
	require.InDelta(t, 6, area, 1e-9)
}
