package arena

import "fmt"

// Constraint word layout. CONSTRAINED occupies the sign bit so testing
// "is this edge constrained" is a single signed comparison against
// zero. The index occupies the low 20 bits — spec.md's data model and
// its design notes disagree on 20 vs. 21 bits; this implementation
// follows the design notes' packed-word layout and the error-handling
// table's explicit [0, 2^20-1] validation range (see DESIGN.md).
const (
	flagConstrained     = int32(-1) << 31
	constraintIndexMask = int32(1)<<20 - 1
	flagRegionBorder    = int32(1) << 20
	flagRegionInterior  = int32(1) << 21
	flagLineMember      = int32(1) << 22

	// MaxConstraintIndex is the largest constraint index the packed
	// word can hold.
	MaxConstraintIndex = int(constraintIndexMask)
)

// Handle is a lightweight, re-seatable cursor into an EdgeArena. It
// carries the arena's generation at the moment it was produced;
// callers that hold a Handle across a mutation must re-validate it.
type Handle struct {
	arena *EdgeArena
	id    EdgeID
	gen   uint64
}

// NewHandle seats a cursor on id.
func NewHandle(a *EdgeArena, id EdgeID) Handle {
	return Handle{arena: a, id: id, gen: a.generation}
}

// ID returns the underlying directed-edge index.
func (h Handle) ID() EdgeID { return h.id }

// Valid reports whether h addresses a real edge and was produced from
// the arena's current generation.
func (h Handle) Valid() bool {
	return h.arena != nil && h.id.Valid() && h.gen == h.arena.generation
}

func (h Handle) checkLive() {
	if h.arena == nil {
		panic("arena: handle has no backing arena")
	}
	if h.gen != h.arena.generation {
		panic(fmt.Sprintf("arena: stale handle (seen generation %d, arena is at %d)", h.gen, h.arena.generation))
	}
}

func (h Handle) reseat(id EdgeID) Handle {
	return Handle{arena: h.arena, id: id, gen: h.gen}
}

// A returns the origin vertex id of h, or NullVertex if h is the
// exterior side of a ghost edge.
func (h Handle) A() int32 {
	h.checkLive()
	return h.arena.vertexOf(h.id)
}

// B returns the destination vertex id of h (the dual's origin), or
// NullVertex.
func (h Handle) B() int32 {
	return h.Dual().A()
}

// Forward returns the next directed edge around h's left face.
func (h Handle) Forward() Handle {
	h.checkLive()
	return h.reseat(h.arena.linkOf(h.id, true))
}

// Reverse returns the previous directed edge around h's left face.
func (h Handle) Reverse() Handle {
	h.checkLive()
	return h.reseat(h.arena.linkOf(h.id, false))
}

// Dual returns the other side of h's pair (same undirected edge,
// opposite direction).
func (h Handle) Dual() Handle {
	h.checkLive()
	return h.reseat(h.id.Dual())
}

// ForwardFromDual returns Dual().Forward(), the next edge around the
// face on h's right.
func (h Handle) ForwardFromDual() Handle { return h.Dual().Forward() }

// ReverseFromDual returns Dual().Reverse().
func (h Handle) ReverseFromDual() Handle { return h.Dual().Reverse() }

// TriangleApex returns the vertex opposite h in its left triangle:
// Forward().B().
func (h Handle) TriangleApex() int32 {
	return h.Forward().B()
}

// SetA sets h's origin vertex.
func (h Handle) SetA(v int32) {
	h.checkLive()
	h.arena.setVertex(h.id, v)
}

// SetB sets h's destination vertex (the dual's origin).
func (h Handle) SetB(v int32) {
	h.Dual().SetA(v)
}

// SetVertices sets both endpoints of h in one call.
func (h Handle) SetVertices(a, b int32) {
	h.SetA(a)
	h.SetB(b)
}

// SetForward sets h's forward link to o and, to keep the cycle
// consistent, sets o's reverse link back to h.
func (h Handle) SetForward(o Handle) {
	h.checkLive()
	h.arena.setLink(h.id, true, o.id)
	h.arena.setLink(o.id, false, h.id)
}

// SetReverse sets h's reverse link to o and o's forward link back to h.
func (h Handle) SetReverse(o Handle) {
	h.checkLive()
	h.arena.setLink(h.id, false, o.id)
	h.arena.setLink(o.id, true, h.id)
}

// SetDualForward sets h.Dual()'s forward link to o, without touching
// o's own reverse link — used when the two sides of a relink are
// established independently.
func (h Handle) SetDualForward(o Handle) {
	h.checkLive()
	h.arena.setLink(h.id.Dual(), true, o.id)
}

// SetDualReverse sets h.Dual()'s reverse link to o.
func (h Handle) SetDualReverse(o Handle) {
	h.checkLive()
	h.arena.setLink(h.id.Dual(), false, o.id)
}

// IsExterior reports whether the triangle to h's left is a ghost
// triangle, i.e. h's origin, destination, or apex is the null vertex.
func (h Handle) IsExterior() bool {
	return h.A() == NullVertex || h.B() == NullVertex || h.TriangleApex() == NullVertex
}

// IsSynthetic reports whether h's pair was created by the mesh itself
// (for example during conformance restoration) rather than directly
// by a client request.
func (h Handle) IsSynthetic() bool {
	h.checkLive()
	return h.arena.isSynthetic(h.id)
}

// --- constraint flags ---

func (h Handle) word() int32 {
	h.checkLive()
	return h.arena.constraintWord(h.id)
}

func (h Handle) setWord(w int32) {
	h.checkLive()
	h.arena.setConstraintWord(h.id, w)
}

// IsConstrained reports whether h's pair carries a constraint.
func (h Handle) IsConstrained() bool {
	return h.word() < 0
}

// ConstraintIndex returns h's constraint index. Only meaningful when
// IsConstrained() is true.
func (h Handle) ConstraintIndex() int {
	return int(h.word() & constraintIndexMask)
}

// SetConstrained marks h's pair constrained with the given index,
// preserving whichever region/line flags were already set.
func (h Handle) SetConstrained(index int) {
	if index < 0 || index > MaxConstraintIndex {
		panic(fmt.Sprintf("arena: constraint index %d out of range [0,%d]", index, MaxConstraintIndex))
	}
	w := h.word()
	w = (w &^ constraintIndexMask) | int32(index) | flagConstrained
	h.setWord(w)
}

// ClearConstrained removes the constrained flag and index, leaving any
// region/line flags untouched.
func (h Handle) ClearConstrained() {
	w := h.word()
	w &^= flagConstrained
	w &^= constraintIndexMask
	h.setWord(w)
}

// IsConstrainedRegionBorder reports whether h bounds a constrained
// region (its interior side has the region's index).
func (h Handle) IsConstrainedRegionBorder() bool {
	return h.word()&flagRegionBorder != 0
}

// IsConstrainedRegionInterior reports whether h lies inside a
// constrained region's flood-fill.
func (h Handle) IsConstrainedRegionInterior() bool {
	return h.word()&flagRegionInterior != 0
}

// IsConstrainedRegionMember reports whether h is either a region
// border or a region interior edge.
func (h Handle) IsConstrainedRegionMember() bool {
	return h.word()&(flagRegionBorder|flagRegionInterior) != 0
}

// SetConstrainedRegionBorderFlag sets the REGION_BORDER bit.
func (h Handle) SetConstrainedRegionBorderFlag() {
	h.setWord(h.word() | flagRegionBorder)
}

// SetConstrainedRegionInteriorFlag sets the REGION_INTERIOR bit.
func (h Handle) SetConstrainedRegionInteriorFlag() {
	h.setWord(h.word() | flagRegionInterior)
}

// IsConstraintLineMember reports whether h belongs to a linear (open
// chain) constraint.
func (h Handle) IsConstraintLineMember() bool {
	return h.word()&flagLineMember != 0
}

// SetConstraintLineMemberFlag sets the LINE_MEMBER bit.
func (h Handle) SetConstraintLineMemberFlag() {
	h.setWord(h.word() | flagLineMember)
}

// Pinwheel calls fn once for each directed edge sharing h's origin
// vertex, starting at h and proceeding in angular order until back to
// h. fn returning false stops iteration early.
func (h Handle) Pinwheel(fn func(Handle) bool) {
	start := h.id
	cur := h
	for {
		if !fn(cur) {
			return
		}
		cur = cur.Reverse().Dual()
		if cur.id == start {
			return
		}
	}
}
