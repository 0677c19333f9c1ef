package spatial

import "math"

// HashGrid implements Index with a uniform spatial hash: each point
// falls into exactly one cell of side cellSize, and a radius query
// visits every cell the query circle's bounding box overlaps.
type HashGrid struct {
	cellSize float64
	cells    map[[2]int][]int
}

// NewHashGrid creates a hash grid whose cell side is cellSize. Callers
// typically size this to a small multiple of the mesh's nominal point
// spacing so that a radius query touches only a handful of cells.
func NewHashGrid(cellSize float64) *HashGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &HashGrid{
		cellSize: cellSize,
		cells:    make(map[[2]int][]int),
	}
}

// FindVerticesNear returns vertex indices in cells overlapping the
// query radius around (x, y). The result is a superset of the true
// answer within radius; callers apply an exact distance check.
func (h *HashGrid) FindVerticesNear(x, y, radius float64) []int {
	if radius < 0 {
		radius = 0
	}

	if radius == 0 {
		cell := h.cellAt(x, y)
		return append([]int(nil), h.cells[cell]...)
	}

	minCell := h.cellAt(x-radius, y-radius)
	maxCell := h.cellAt(x+radius, y+radius)

	var result []int
	for cy := minCell[1]; cy <= maxCell[1]; cy++ {
		for cx := minCell[0]; cx <= maxCell[0]; cx++ {
			if vertices, ok := h.cells[[2]int{cx, cy}]; ok {
				result = append(result, vertices...)
			}
		}
	}
	return result
}

// AddVertex files index under the cell containing (x, y).
func (h *HashGrid) AddVertex(index int, x, y float64) {
	cell := h.cellAt(x, y)
	h.cells[cell] = append(h.cells[cell], index)
}

// Build is a no-op: HashGrid is incremental by construction.
func (h *HashGrid) Build() {}

func (h *HashGrid) cellAt(x, y float64) [2]int {
	return [2]int{
		int(math.Floor(x / h.cellSize)),
		int(math.Floor(y / h.cellSize)),
	}
}
