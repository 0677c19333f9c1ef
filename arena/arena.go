// Package arena implements the quad-edge topology store: directed
// edges packed two-to-a-pair into fixed-size pages of parallel integer
// arrays, with a free-pair stack per page and a free-page list across
// pages, so allocation and deallocation are both O(1) and the whole
// structure never allocates a per-edge object.
package arena

import "fmt"

// PairsPerPage is the number of undirected edge pairs (256 directed
// edges) stored per page.
const PairsPerPage = 128

// NullVertex marks a directed edge's origin (or, via Dual, its
// destination) as absent: a ghost edge's exterior-facing side.
const NullVertex = int32(-1)

// EdgeID addresses one directed edge by its global index. EdgeID and
// EdgeID^1 are always the two sides of the same pair. NoEdge (-1) is
// the "no edge" sentinel returned by queries that found nothing;
// index 0 is an ordinary, allocatable directed edge, not reserved
// (see DESIGN.md).
type EdgeID int32

// NoEdge is the sentinel returned when no edge satisfies a query.
const NoEdge EdgeID = -1

// Valid reports whether id addresses a real edge.
func (id EdgeID) Valid() bool { return id >= 0 }

// Dual returns the other side of id's pair.
func (id EdgeID) Dual() EdgeID { return id ^ 1 }

// pairOf returns the pair index and page-local pair offset for a
// global directed edge id.
func pairOf(id EdgeID) (pageIdx, localPair int) {
	pairGlobal := int(id) / 2
	return pairGlobal / PairsPerPage, pairGlobal % PairsPerPage
}

type page struct {
	vertices    []int32 // len 2*PairsPerPage, directed-edge origin vertex id (NullVertex = ghost side)
	links       []int32 // len 4*PairsPerPage: links[2*ld]=forward EdgeID, links[2*ld+1]=reverse EdgeID
	constraints []int32 // len PairsPerPage, packed constraint word per pair
	allocated   bitset  // len PairsPerPage, true = pair currently in use
	synthetic   bitset  // len PairsPerPage, true = pair created by conformance restoration
	freeStack   []int32 // page-local pair indices currently free
	inFreeList  bool    // whether this page is threaded into the arena's free-page list
	nextFree    int     // next page index in the free-page list, -1 if last
}

func newPage() *page {
	p := &page{
		vertices:    make([]int32, 2*PairsPerPage),
		links:       make([]int32, 4*PairsPerPage),
		constraints: make([]int32, PairsPerPage),
		allocated:   newBitset(PairsPerPage),
		synthetic:   newBitset(PairsPerPage),
		freeStack:   make([]int32, PairsPerPage),
		inFreeList:  true,
		nextFree:    -1,
	}
	for i := range p.freeStack {
		p.freeStack[i] = int32(PairsPerPage - 1 - i)
	}
	return p
}

func (p *page) full() bool { return len(p.freeStack) == 0 }

// EdgeArena owns every directed edge in a mesh. It hands out EdgeID
// values via Allocate and never reuses one while it is live; the
// topology (links, vertex ids, constraint flags) lives entirely in the
// page arrays, not in per-edge Go objects.
//
// generation only changes on Clear and Dispose. Ordinary Allocate,
// Deallocate, and SplitEdge calls leave it untouched: insertion and
// removal routinely hold a Handle across several such calls (a cavity
// boundary edge captured before its neighbors are freed, for example),
// and that is expected, not a staleness condition. What generation
// guards against is a Handle surviving a full arena reset.
type EdgeArena struct {
	pages        []*page
	freePageHead int // index into pages of the first page with a free pair, -1 if none
	generation   uint64
	allocCount   int
}

// New creates an empty arena with a single page.
func New() *EdgeArena {
	a := &EdgeArena{freePageHead: -1}
	a.appendPage()
	return a
}

func (a *EdgeArena) appendPage() int {
	idx := len(a.pages)
	p := newPage()
	a.pages = append(a.pages, p)
	p.nextFree = a.freePageHead
	a.freePageHead = idx
	return idx
}

// Generation returns the arena's current mutation counter. Handles and
// iterators snapshot this at creation and must treat any change as
// invalidating them.
func (a *EdgeArena) Generation() uint64 { return a.generation }

// Len reports the number of currently allocated pairs (undirected
// edges) across the whole arena.
func (a *EdgeArena) Len() int { return a.allocCount }

// Allocate reserves a new pair, sets up= (a,b) on its first side and
// (b,a) on its dual, resets all links to NoEdge, and returns the first side's
// EdgeID. a or b may be NullVertex for a ghost edge.
func (a *EdgeArena) Allocate(va, vb int32) EdgeID {
	id := a.allocatePair()
	a.setVertices(id, va, vb)
	a.setLink(id, true, NoEdge)
	a.setLink(id, false, NoEdge)
	a.setLink(id.Dual(), true, NoEdge)
	a.setLink(id.Dual(), false, NoEdge)
	pageIdx, local := pairOf(id)
	a.pages[pageIdx].constraints[local] = 0
	a.pages[pageIdx].synthetic.set(local, false)
	a.allocCount++
	return id
}

// AllocateSynthetic behaves like Allocate but marks the pair synthetic
// — created by the mesh itself (for example during conformance
// restoration) rather than by a direct client request.
func (a *EdgeArena) AllocateSynthetic(va, vb int32) EdgeID {
	id := a.Allocate(va, vb)
	pageIdx, local := pairOf(id)
	a.pages[pageIdx].synthetic.set(local, true)
	return id
}

func (a *EdgeArena) allocatePair() EdgeID {
	if a.freePageHead == -1 {
		a.appendPage()
	}
	pageIdx := a.freePageHead
	p := a.pages[pageIdx]

	n := len(p.freeStack)
	local := int(p.freeStack[n-1])
	p.freeStack = p.freeStack[:n-1]
	p.allocated.set(local, true)

	if p.full() {
		a.freePageHead = p.nextFree
		p.inFreeList = false
		p.nextFree = -1
		if a.freePageHead == -1 {
			a.appendPage()
		}
	}

	return EdgeID((pageIdx*PairsPerPage + local) * 2)
}

// Deallocate returns id's pair to its page's free stack. id may be
// either side of the pair.
func (a *EdgeArena) Deallocate(id EdgeID) {
	pageIdx, local := pairOf(id)
	p := a.pages[pageIdx]
	if !p.allocated.get(local) {
		panic(fmt.Sprintf("arena: double free of pair %d on page %d", local, pageIdx))
	}
	wasFull := p.full()
	p.allocated.set(local, false)
	p.synthetic.set(local, false)
	p.freeStack = append(p.freeStack, int32(local))
	if wasFull {
		p.inFreeList = true
		p.nextFree = a.freePageHead
		a.freePageHead = pageIdx
	}
	a.allocCount--
}

func (a *EdgeArena) localDirected(id EdgeID) (pageIdx, localDirected int) {
	pageIdx, localPair := pairOf(id)
	side := int(id) % 2
	if side < 0 {
		side += 2
	}
	return pageIdx, localPair*2 + side
}

func (a *EdgeArena) vertexOf(id EdgeID) int32 {
	pageIdx, ld := a.localDirected(id)
	return a.pages[pageIdx].vertices[ld]
}

func (a *EdgeArena) setVertex(id EdgeID, v int32) {
	pageIdx, ld := a.localDirected(id)
	a.pages[pageIdx].vertices[ld] = v
}

func (a *EdgeArena) setVertices(id EdgeID, va, vb int32) {
	a.setVertex(id, va)
	a.setVertex(id.Dual(), vb)
}

func (a *EdgeArena) linkOf(id EdgeID, forward bool) EdgeID {
	pageIdx, ld := a.localDirected(id)
	off := 0
	if !forward {
		off = 1
	}
	return EdgeID(a.pages[pageIdx].links[2*ld+off])
}

func (a *EdgeArena) setLink(id EdgeID, forward bool, target EdgeID) {
	pageIdx, ld := a.localDirected(id)
	off := 0
	if !forward {
		off = 1
	}
	a.pages[pageIdx].links[2*ld+off] = int32(target)
}

func (a *EdgeArena) constraintWord(id EdgeID) int32 {
	pageIdx, local := pairOf(id)
	return a.pages[pageIdx].constraints[local]
}

func (a *EdgeArena) setConstraintWord(id EdgeID, word int32) {
	pageIdx, local := pairOf(id)
	a.pages[pageIdx].constraints[local] = word
}

func (a *EdgeArena) isSynthetic(id EdgeID) bool {
	pageIdx, local := pairOf(id)
	return a.pages[pageIdx].synthetic.get(local)
}

// SplitEdge transforms the pair addressed by e from (a,b) into (m,b)
// and allocates a new pair p=(a,m), relinking so that the face cycles
// remain intact. Both e and p inherit e's original constraint flags.
// It returns the EdgeID of the new (a,m) side with origin a, so that
// SplitEdge(e,m).Dual() == the (m,a) side adjoining e at m.
func (a *EdgeArena) SplitEdge(e EdgeID, m int32) EdgeID {
	origA := a.vertexOf(e)
	word := a.constraintWord(e)

	eReverse := a.linkOf(e, false)
	eDualForward := a.linkOf(e.Dual(), true)

	p := a.Allocate(origA, m)
	a.setConstraintWord(p, word)
	pageIdx, local := pairOf(p)
	srcPageIdx, srcLocal := pairOf(e)
	a.pages[pageIdx].synthetic.set(local, a.pages[srcPageIdx].synthetic.get(srcLocal))

	a.setVertex(e, m)

	a.setLink(p, false, eReverse)
	a.setLink(eReverse, true, p)
	a.setLink(p, true, e)
	a.setLink(e, false, p)

	a.setLink(p.Dual(), true, eDualForward)
	a.setLink(eDualForward, false, p.Dual())
	a.setLink(p.Dual(), false, e.Dual())
	a.setLink(e.Dual(), true, p.Dual())

	return p
}

// Iterate calls fn once for each allocated pair's lower-numbered side,
// in index order (page by page, slot by slot); once freed pairs have
// been reused, this is not the order in which pairs were allocated.
// If includeGhosts is false, pairs where either side's origin is
// NullVertex are skipped. Iterate panics if the arena's generation
// changes (Clear or Dispose) while it is running.
func (a *EdgeArena) Iterate(includeGhosts bool, fn func(EdgeID)) {
	gen := a.generation
	for pageIdx, p := range a.pages {
		for local := 0; local < PairsPerPage; local++ {
			if a.generation != gen {
				panic("arena: arena was reset during Iterate")
			}
			if !p.allocated.get(local) {
				continue
			}
			id := EdgeID((pageIdx*PairsPerPage + local) * 2)
			if !includeGhosts && (a.vertexOf(id) == NullVertex || a.vertexOf(id.Dual()) == NullVertex) {
				continue
			}
			fn(id)
		}
	}
}

// Clear resets every page's free list without releasing the
// underlying page slices, leaving the arena ready for reuse.
func (a *EdgeArena) Clear() {
	for _, p := range a.pages {
		for i := range p.vertices {
			p.vertices[i] = NullVertex
		}
		for i := range p.links {
			p.links[i] = int32(NoEdge)
		}
		for i := range p.constraints {
			p.constraints[i] = 0
		}
		p.allocated = newBitset(PairsPerPage)
		p.synthetic = newBitset(PairsPerPage)
		p.freeStack = p.freeStack[:0]
		for i := 0; i < PairsPerPage; i++ {
			p.freeStack = append(p.freeStack, int32(PairsPerPage-1-i))
		}
		p.inFreeList = true
	}
	for i := range a.pages {
		if i == len(a.pages)-1 {
			a.pages[i].nextFree = -1
		} else {
			a.pages[i].nextFree = i + 1
		}
	}
	if len(a.pages) > 0 {
		a.freePageHead = 0
	}
	a.allocCount = 0
	a.generation++
}

// Dispose releases the arena's backing storage. The arena must not be
// used afterward.
func (a *EdgeArena) Dispose() {
	a.pages = nil
	a.freePageHead = -1
	a.generation++
}
