// Package predicates implements the adaptive-precision geometric tests
// the triangulator's every decision rests on: orientation, incircle,
// half-plane side, and signed area. Each evaluates in float64 first
// and only falls back to arbitrary-precision arithmetic when the
// double-precision result is too close to zero to trust.
package predicates

import (
	"math"
	"math/big"

	"github.com/tinmesh/tinmesh/thresholds"
	"github.com/tinmesh/tinmesh/vertex"
)

// bigPrec is the working precision of the extended-precision fallback,
// generous enough that its own rounding never competes with the
// double-precision filter above it.
const bigPrec = 256

// Orientation returns the signed area of the parallelogram spanned by
// (b-a) and (c-a), i.e. twice the signed area of triangle (a,b,c):
// positive when a,b,c turn counter-clockwise, negative when clockwise,
// zero when collinear. th gates when the extended-precision fallback
// engages.
func Orientation(a, b, c vertex.Vertex, th thresholds.Thresholds) float64 {
	ax := b.X - a.X
	ay := b.Y - a.Y
	bx := c.X - a.X
	by := c.Y - a.Y
	det := ax*by - ay*bx

	if math.Abs(det) > th.HalfPlaneThreshold {
		return det
	}
	return orientationExact(a, b, c)
}

func orientationExact(a, b, c vertex.Vertex) float64 {
	ax := bigSub(b.X, a.X)
	ay := bigSub(b.Y, a.Y)
	bx := bigSub(c.X, a.X)
	by := bigSub(c.Y, a.Y)

	det := bigDet2(ax, ay, bx, by)
	f, _ := det.Float64()
	return f
}

// HalfPlane reports which side of the directed line a->b the point c
// falls on, using the same determinant as Orientation but exposed
// under its own name for call sites that test a point against a line
// rather than a triangle's winding.
func HalfPlane(a, b, c vertex.Vertex, th thresholds.Thresholds) float64 {
	return Orientation(a, b, c, th)
}

// Area returns the signed area of triangle (a,b,c) — half of
// Orientation's determinant, with the same sign convention.
func Area(a, b, c vertex.Vertex, th thresholds.Thresholds) float64 {
	return Orientation(a, b, c, th) / 2
}

// InCircle tests whether d lies inside (positive), outside (negative),
// or on (zero) the circumcircle of a, b, c. The sign convention
// assumes a, b, c are in counter-clockwise order; callers that cannot
// guarantee winding should orient the triangle first.
func InCircle(a, b, c, d vertex.Vertex, th thresholds.Thresholds) float64 {
	adx := a.X - d.X
	ady := a.Y - d.Y
	bdx := b.X - d.X
	bdy := b.Y - d.Y
	cdx := c.X - d.X
	cdy := c.Y - d.Y

	ad2 := adx*adx + ady*ady
	bd2 := bdx*bdx + bdy*bdy
	cd2 := cdx*cdx + cdy*cdy

	det := ad2*(bdx*cdy-bdy*cdx) -
		bd2*(adx*cdy-ady*cdx) +
		cd2*(adx*bdy-ady*bdx)

	if math.Abs(det) > th.InCircleThreshold {
		return det
	}
	return inCircleExact(a, b, c, d)
}

// InCircleResult carries the incircle outcome alongside whether the
// extended-precision fallback fired and, if so, whether it reversed
// the fast path's sign — the "predicate-inconsistency" case callers
// tally as a diagnostic.
type InCircleResult struct {
	Value       float64
	UsedExact   bool
	SignFlipped bool
}

// InCircleDiagnosed behaves like InCircle but also reports whether the
// extended-precision path engaged and whether doing so flipped the
// sign the double-precision evaluation would have returned.
func InCircleDiagnosed(a, b, c, d vertex.Vertex, th thresholds.Thresholds) InCircleResult {
	adx := a.X - d.X
	ady := a.Y - d.Y
	bdx := b.X - d.X
	bdy := b.Y - d.Y
	cdx := c.X - d.X
	cdy := c.Y - d.Y

	ad2 := adx*adx + ady*ady
	bd2 := bdx*bdx + bdy*bdy
	cd2 := cdx*cdx + cdy*cdy

	fast := ad2*(bdx*cdy-bdy*cdx) -
		bd2*(adx*cdy-ady*cdx) +
		cd2*(adx*bdy-ady*bdx)

	if math.Abs(fast) > th.InCircleThreshold {
		return InCircleResult{Value: fast}
	}

	exact := inCircleExact(a, b, c, d)
	return InCircleResult{
		Value:       exact,
		UsedExact:   true,
		SignFlipped: sign(fast) != sign(exact),
	}
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func inCircleExact(a, b, c, d vertex.Vertex) float64 {
	ax := bigSub(a.X, d.X)
	ay := bigSub(a.Y, d.Y)
	bx := bigSub(b.X, d.X)
	by := bigSub(b.Y, d.Y)
	cx := bigSub(c.X, d.X)
	cy := bigSub(c.Y, d.Y)

	ad2 := bigAdd(bigMul(ax, ax), bigMul(ay, ay))
	bd2 := bigAdd(bigMul(bx, bx), bigMul(by, by))
	cd2 := bigAdd(bigMul(cx, cx), bigMul(cy, cy))

	term1 := bigMul(ad2, bigDet2(bx, by, cx, cy))
	term2 := bigMul(bd2, bigDet2(ax, ay, cx, cy))
	term3 := bigMul(cd2, bigDet2(ax, ay, bx, by))

	det := bigAdd(term1, term3)
	det.Sub(det, term2)

	f, _ := det.Float64()
	return f
}

// Circumcircle returns the center and radius of the circle through a,
// b, c. The three points must not be collinear.
func Circumcircle(a, b, c vertex.Vertex) (cx, cy, radius float64) {
	ax, ay := a.X, a.Y
	bx, by := b.X, b.Y
	ccx, ccy := c.X, c.Y

	d := 2 * (ax*(by-ccy) + bx*(ccy-ay) + ccx*(ay-by))

	a2 := ax*ax + ay*ay
	b2 := bx*bx + by*by
	c2 := ccx*ccx + ccy*ccy

	cx = (a2*(by-ccy) + b2*(ccy-ay) + c2*(ay-by)) / d
	cy = (a2*(ccx-bx) + b2*(ax-ccx) + c2*(bx-ax)) / d

	dx := ax - cx
	dy := ay - cy
	radius = math.Sqrt(dx*dx + dy*dy)
	return cx, cy, radius
}

func bigFloat(v float64) *big.Float {
	return new(big.Float).SetPrec(bigPrec).SetFloat64(v)
}

func bigSub(x, y float64) *big.Float {
	return new(big.Float).SetPrec(bigPrec).Sub(bigFloat(x), bigFloat(y))
}

func bigMul(x, y *big.Float) *big.Float {
	return new(big.Float).SetPrec(bigPrec).Mul(x, y)
}

func bigAdd(x, y *big.Float) *big.Float {
	return new(big.Float).SetPrec(bigPrec).Add(x, y)
}

func bigDet2(ax, ay, bx, by *big.Float) *big.Float {
	return bigAdd(bigMul(ax, by), new(big.Float).SetPrec(bigPrec).Neg(bigMul(ay, bx)))
}
