package thresholds

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewScalesWithNominalSpacing(t *testing.T) {
	unit := New(1)
	ten := New(10)

	require.InDelta(t, unit.VertexTolerance*10, ten.VertexTolerance, 1e-12)
	require.InDelta(t, unit.HalfPlaneThreshold*100, ten.HalfPlaneThreshold, 1e-9)
	require.InDelta(t, unit.InCircleThreshold*10000, ten.InCircleThreshold, 1e-6)
	require.InDelta(t, unit.DelaunayThreshold*10000, ten.DelaunayThreshold, 1e-4)
}

func TestNewRejectsNonPositiveSpacing(t *testing.T) {
	th := New(0)
	require.Equal(t, 1.0, th.NominalPointSpacing)

	th = New(-5)
	require.Equal(t, 1.0, th.NominalPointSpacing)
}

func TestVertexTolerance2IsSquare(t *testing.T) {
	th := New(2.5)
	require.InDelta(t, th.VertexTolerance*th.VertexTolerance, th.VertexTolerance2, 1e-18)
}
