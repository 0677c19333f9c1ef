// Package vertex defines the point type stored in a mesh and the
// coincident-vertex merging mechanism used when two input points land
// within tolerance of each other.
package vertex

import "math"

// Flag bits packed into Vertex.Flags.
const (
	// FlagSynthetic marks a vertex created by the mesh itself (for
	// example a midpoint inserted during conformance restoration)
	// rather than supplied by the client.
	FlagSynthetic byte = 1 << iota
	// FlagConstraintMember marks a vertex that belongs to at least one
	// constraint (linear chain or polygon).
	FlagConstraintMember
)

// Vertex is an immutable 2D point with an application-assigned index
// and a float32 z that may be NaN to represent "no data".
type Vertex struct {
	X, Y  float64
	Z     float32
	Index int
	Flags byte
}

// New constructs a Vertex with no flags set.
func New(x, y float64, z float32, index int) Vertex {
	return Vertex{X: x, Y: y, Z: z, Index: index}
}

// IsSynthetic reports whether this vertex was created by the mesh.
func (v Vertex) IsSynthetic() bool {
	return v.Flags&FlagSynthetic != 0
}

// IsConstraintMember reports whether this vertex participates in a
// constraint.
func (v Vertex) IsConstraintMember() bool {
	return v.Flags&FlagConstraintMember != 0
}

// WithSynthetic returns a copy of v with the synthetic flag set to the
// given value.
//
// The source repo this package is modeled on has a sibling method that
// ANDs with the bit mask instead of its complement when clearing a
// flag; this implementation clears correctly (v.Flags &^= mask) — see
// DESIGN.md's Open Question on setSynthetic.
func (v Vertex) WithSynthetic(synthetic bool) Vertex {
	if synthetic {
		v.Flags |= FlagSynthetic
	} else {
		v.Flags &^= FlagSynthetic
	}
	return v
}

// WithConstraintMember returns a copy of v with the constraint-member
// flag set to the given value.
func (v Vertex) WithConstraintMember(member bool) Vertex {
	if member {
		v.Flags |= FlagConstraintMember
	} else {
		v.Flags &^= FlagConstraintMember
	}
	return v
}

// Dist2 returns the squared Euclidean distance between two vertices.
func Dist2(a, b Vertex) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Dist returns the Euclidean distance between two vertices.
func Dist(a, b Vertex) float64 {
	return math.Sqrt(Dist2(a, b))
}

// Midpoint returns the point halfway between a and b, with z linearly
// interpolated (NaN propagates if either input is NaN) and flagged
// synthetic.
func Midpoint(a, b Vertex, index int) Vertex {
	z := float32(math.NaN())
	if !math.IsNaN(float64(a.Z)) && !math.IsNaN(float64(b.Z)) {
		z = (a.Z + b.Z) / 2
	}
	m := New((a.X+b.X)/2, (a.Y+b.Y)/2, z, index)
	return m.WithSynthetic(true)
}
