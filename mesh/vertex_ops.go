package mesh

import (
	"github.com/tinmesh/tinmesh/arena"
	"github.com/tinmesh/tinmesh/bootstrap"
	"github.com/tinmesh/tinmesh/insert"
	"github.com/tinmesh/tinmesh/remove"
	"github.com/tinmesh/tinmesh/vertex"
	"github.com/tinmesh/tinmesh/walker"
)

// Vertex returns the coordinates of a live or removed vertex by id.
// Removed ids keep their slot (tombstoned) rather than being reused,
// since the mesh's spatial index never forgets a position it indexed.
func (m *Mesh) Vertex(id int32) vertex.Vertex {
	return m.vertices[id]
}

// IsLiveVertex reports whether id names a vertex currently
// participating in the triangulation.
func (m *Mesh) IsLiveVertex(id int32) bool {
	return id >= 0 && int(id) < len(m.vertices) && !m.removed[id]
}

// Vertices returns a copy of every live vertex's coordinates, in id
// order.
func (m *Mesh) Vertices() []vertex.Vertex {
	out := make([]vertex.Vertex, 0, len(m.vertices))
	for id, v := range m.vertices {
		if !m.removed[id] {
			out = append(out, v)
		}
	}
	return out
}

func (m *Mesh) registerVertex(v vertex.Vertex) int32 {
	id := int32(len(m.vertices))
	v.Index = int(id)
	m.vertices = append(m.vertices, v)
	m.removed = append(m.removed, false)
	m.anchor = append(m.anchor, arena.NoEdge)
	if m.cfg.debugAddVertex != nil {
		m.cfg.debugAddVertex(id, v.X, v.Y)
	}
	return id
}

func (m *Mesh) coincident(x, y float64) (int32, bool) {
	if m.index == nil {
		return 0, false
	}
	tol := m.cfg.effectiveMergeDistance()
	q := vertex.New(x, y, 0, 0)
	for _, id := range m.index.FindVerticesNear(x, y, tol) {
		if int32(id) < int32(len(m.removed)) && m.removed[id] {
			continue
		}
		if vertex.Dist2(m.vertices[id], q) <= tol*tol {
			return int32(id), true
		}
	}
	return 0, false
}

// mergeInto folds incoming into the coalescing group anchored at id,
// creating the group on its first merge, and writes the group's
// resolved Z back onto the anchor vertex so plain Vertex reads see it
// without needing to know about merging at all.
func (m *Mesh) mergeInto(id int32, incoming vertex.Vertex) {
	g, ok := m.mergeGroups[id]
	if !ok {
		g = vertex.NewMergerGroup(m.vertices[id], m.mergeRule)
		m.mergeGroups[id] = g
	}
	g.Add(incoming)
	resolved := m.vertices[id]
	resolved.Z = g.Z()
	m.vertices[id] = resolved
}

// Add inserts a point into the mesh, returning the id of the vertex it
// now occupies (a new id, or an existing one within merge distance)
// and whether a new vertex was actually triangulated. Before the mesh
// is bootstrapped, points accumulate in a pending buffer; Add
// retriangulates from scratch against that buffer each time until
// three well-separated, non-collinear points are found.
func (m *Mesh) Add(x, y float64, z float32) (int32, bool, error) {
	if m.constraintsIn {
		return 0, false, ErrMeshLocked
	}
	if existing, ok := m.coincident(x, y); ok {
		m.mergeInto(existing, vertex.New(x, y, z, int(existing)))
		m.Stats.VerticesMerged++
		return existing, false, nil
	}

	v := vertex.New(x, y, z, 0)
	id := m.registerVertex(v)
	if m.index != nil {
		m.index.AddVertex(int(id), x, y)
	}

	if !m.bootstrapped {
		v.Index = int(id) // registerVertex only stamps its own local copy
		m.pending = append(m.pending, v)
		if !m.tryBootstrap() {
			return id, false, nil
		}
		m.Stats.VerticesAdded += 3
		return id, true, nil
	}

	if err := m.insertVertex(id); err != nil {
		return id, false, err
	}
	m.Stats.VerticesAdded++
	return id, true, nil
}

// AddList inserts every point in pts in order, returning the assigned
// vertex ids. A monitor, if non-nil, is called after each point with
// the number of points processed so far and the total number of
// points; useful for progress reporting over large inputs.
func (m *Mesh) AddList(pts [][3]float64, monitor func(done, total int)) ([]int32, error) {
	ids := make([]int32, len(pts))
	for i, p := range pts {
		id, _, err := m.Add(p[0], p[1], float32(p[2]))
		if err != nil {
			return ids, err
		}
		ids[i] = id
		if monitor != nil {
			monitor(i+1, len(pts))
		}
	}
	return ids, nil
}

func (m *Mesh) tryBootstrap() bool {
	result := bootstrap.Try(m.pending, m.th, m.rng)
	if !result.Ready {
		return false
	}

	ids := make([]int32, len(m.pending))
	for i, v := range m.pending {
		ids[i] = int32(v.Index)
	}
	a, b, c := ids[result.A], ids[result.B], ids[result.C]

	e1 := arena.NewHandle(m.arena, m.arena.Allocate(a, b))
	e2 := arena.NewHandle(m.arena, m.arena.Allocate(b, c))
	e3 := arena.NewHandle(m.arena, m.arena.Allocate(c, a))
	e1.SetForward(e2)
	e2.SetForward(e3)
	e3.SetForward(e1)

	// Ghost wiring follows the (u,v) -> Forward(edge.Dual())=g_u,
	// Forward(g_u)=g_v.Dual(), Forward(g_v.Dual())=edge.Dual() pattern:
	// g_a anchors the ghost fan at a, etc.
	gA := arena.NewHandle(m.arena, m.arena.Allocate(a, arena.NullVertex))
	gB := arena.NewHandle(m.arena, m.arena.Allocate(b, arena.NullVertex))
	gC := arena.NewHandle(m.arena, m.arena.Allocate(c, arena.NullVertex))

	e1.Dual().SetForward(gA) // e1=(a,b)
	gA.SetForward(gB.Dual())
	gB.Dual().SetForward(e1.Dual())

	e2.Dual().SetForward(gB) // e2=(b,c)
	gB.SetForward(gC.Dual())
	gC.Dual().SetForward(e2.Dual())

	e3.Dual().SetForward(gC) // e3=(c,a)
	gC.SetForward(gA.Dual())
	gA.Dual().SetForward(e3.Dual())

	m.anchor[a] = e1.ID()
	m.anchor[b] = e2.ID()
	m.anchor[c] = e3.ID()
	m.seed = e1
	m.bootstrapped = true

	rest := m.pending[:0]
	skip := map[int32]bool{a: true, b: true, c: true}
	for _, v := range m.pending {
		if !skip[int32(v.Index)] {
			rest = append(rest, v)
		}
	}
	m.pending = nil

	for _, v := range rest {
		if err := m.insertVertex(int32(v.Index)); err == nil {
			m.Stats.VerticesAdded++
		}
	}
	return true
}

func (m *Mesh) insertVertex(id int32) error {
	v := m.vertices[id]
	containing := walker.Walk(m.seed, v.X, v.Y, m.vertexLookup, m.th, m.rng)

	last, err := insert.Insert(m.arena, m.vertexLookup, m.th, containing, id, &m.insertStats)
	if err != nil {
		return err
	}

	m.seed = last
	m.anchor[id] = last.ID()
	last.Pinwheel(func(h arena.Handle) bool {
		if h.B() != arena.NullVertex {
			m.anchor[h.B()] = h.Dual().ID()
		}
		return true
	})
	m.Stats.EdgesReplaced += m.insertStats.EdgesReplaced
	m.Stats.InCircleFallback += m.insertStats.InCircleConflicts
	m.insertStats = insert.Stats{}
	return nil
}

// Remove deletes a live vertex from the triangulation, re-triangulating
// its star via ear clipping. The vertex's id is retired: it becomes
// invalid for future queries but is never reused by Add.
func (m *Mesh) Remove(id int32) error {
	if !m.IsLiveVertex(id) {
		return ErrInvalidVertexID
	}
	if !m.anchor[id].Valid() {
		return ErrVertexOutsideHull
	}

	anchorHandle := arena.NewHandle(m.arena, m.anchor[id])
	var neighbors []int32
	anchorHandle.Pinwheel(func(h arena.Handle) bool {
		if h.B() != arena.NullVertex {
			neighbors = append(neighbors, h.B())
		}
		return true
	})

	if err := remove.Remove(m.arena, m.vertexLookup, m.th, anchorHandle, id); err != nil {
		return err
	}

	m.removed[id] = true
	m.anchor[id] = arena.NoEdge
	for _, nb := range neighbors {
		m.repairAnchor(nb)
	}
	// Removal only deallocates id's own spokes; every other edge,
	// including m.seed unless it happened to be anchored at id, is
	// untouched. Reseed from a surviving neighbor's fresh anchor so a
	// stray seed anchored at id is never dereferenced.
	for _, nb := range neighbors {
		if m.anchor[nb].Valid() {
			m.seed = arena.NewHandle(m.arena, m.anchor[nb])
			break
		}
	}
	m.Stats.VerticesRemoved++
	return nil
}

// repairAnchor recomputes id's anchor edge by scanning the arena. It
// is only ever called for the handful of vertices neighboring a just
// -removed vertex, whose own anchor may have pointed at one of the
// deallocated spokes.
func (m *Mesh) repairAnchor(id int32) {
	if m.removed[id] {
		return
	}
	found := arena.NoEdge
	m.arena.Iterate(true, func(e arena.EdgeID) {
		if found.Valid() {
			return
		}
		h := arena.NewHandle(m.arena, e)
		if h.A() == id {
			found = e
		} else if h.B() == id {
			found = h.Dual().ID()
		}
	})
	m.anchor[id] = found
}

// AddSynthetic registers a mesh-created vertex (for example a
// constrained-edge midpoint) and returns its id. It implements
// constraint.VertexStore.
func (m *Mesh) AddSynthetic(v vertex.Vertex) int32 {
	v = v.WithSynthetic(true)
	id := m.registerVertex(v)
	if m.index != nil {
		m.index.AddVertex(int(id), v.X, v.Y)
	}
	return id
}

// OnSplit notifies any installed debug hook that edge (a,b) was split
// at synthetic vertex mid, either by conformance restoration or by
// SplitEdge. It implements constraint.VertexStore.
func (m *Mesh) OnSplit(a, b, mid int32) {
	if m.cfg.debugSplit != nil {
		m.cfg.debugSplit(a, b, mid)
	}
}
