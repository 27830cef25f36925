// Package spatial implements the uniform-grid cell list used to
// accelerate short-range pairwise force computation (spec.md §4.2).
//
// The grid shape is grounded on the teacher's SpatialHash
// (backend/internal/physics/spatial_hash.go): a cell-size-keyed
// bucket-of-indices grid, gathered by a neighboring-cell query. That
// implementation used a 3D map[int][]*Atom hashed with a Morton-style
// bit interleave of (ix, iy, iz) and queried all 27 surrounding cells
// every time, since it was rebuilt from scratch per frame in a
// protein-sized system. Here the domain is bounded and rarely
// reinitialized, so a flat 2D array of buckets indexed by
// row*cols+col is both simpler and avoids a map lookup per cell.
package spatial

// CellList is a uniform grid covering [0, Lx] x [0, Ly], with each
// cell at least cellSize on a side. Atom indices are bucketed by which
// cell their coordinates fall in.
type CellList struct {
	lx, ly     float64
	cellSize   float64
	rows, cols int
	cells      [][]int
}

// NewCellList builds an empty grid for a domain of size (lx, ly) with
// cells at least minCellSize on a side.
func NewCellList(lx, ly, minCellSize float64) *CellList {
	cl := &CellList{}
	cl.Reinitialize(lx, ly, minCellSize)
	return cl
}

// Reinitialize resizes the grid when the used-element set (and
// therefore the required cell size) changes. Existing bucket contents
// are discarded; callers must refill via AddToCell afterward.
func (cl *CellList) Reinitialize(lx, ly, minCellSize float64) {
	cl.lx, cl.ly = lx, ly
	if minCellSize <= 0 {
		minCellSize = lx // degenerate: single cell covering the domain
		if ly > minCellSize {
			minCellSize = ly
		}
	}
	cl.cellSize = minCellSize

	cl.cols = cellsAcross(lx, minCellSize)
	cl.rows = cellsAcross(ly, minCellSize)
	if cl.cols < 1 {
		cl.cols = 1
	}
	if cl.rows < 1 {
		cl.rows = 1
	}
	cl.cells = make([][]int, cl.rows*cl.cols)
}

func cellsAcross(extent, cellSize float64) int {
	n := int(extent / cellSize)
	if n < 1 {
		n = 1
	}
	return n
}

// Clear empties every bucket without resizing the grid.
func (cl *CellList) Clear() {
	for i := range cl.cells {
		if len(cl.cells[i]) > 0 {
			cl.cells[i] = cl.cells[i][:0]
		}
	}
}

// Rows returns the number of grid rows.
func (cl *CellList) Rows() int { return cl.rows }

// Cols returns the number of grid columns.
func (cl *CellList) Cols() int { return cl.cols }

// CellSize returns the current cell side length.
func (cl *CellList) CellSize() float64 { return cl.cellSize }

// cellIndices maps a coordinate pair to (row, col), clamped to the
// grid bounds so a particle that has drifted slightly outside [0, L]
// (before the wall-bounce guard runs) doesn't panic on out-of-range
// indexing.
func (cl *CellList) cellIndices(x, y float64) (row, col int) {
	col = int(x / cl.cellSize)
	row = int(y / cl.cellSize)
	if col < 0 {
		col = 0
	} else if col >= cl.cols {
		col = cl.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= cl.rows {
		row = cl.rows - 1
	}
	return row, col
}

// AddToCell appends atom index i to the bucket owning coordinates
// (x, y).
func (cl *CellList) AddToCell(i int, x, y float64) {
	row, col := cl.cellIndices(x, y)
	idx := row*cl.cols + col
	cl.cells[idx] = append(cl.cells[idx], i)
}

// GetCell returns the atom-index bucket for flat cell index idx.
func (cl *CellList) GetCell(idx int) []int {
	if idx < 0 || idx >= len(cl.cells) {
		return nil
	}
	return cl.cells[idx]
}

// CellIndexOf returns the flat cell index for a coordinate pair,
// useful for callers that want GetCell(CellIndexOf(x,y)) directly.
func (cl *CellList) CellIndexOf(x, y float64) int {
	row, col := cl.cellIndices(x, y)
	return row*cl.cols + col
}

// GetNeighboringCells returns the flat indices of the half-stencil of
// cells whose pairs with (row, col) have not yet been visited by a
// row-major traversal: the cell itself, plus east, and the three cells
// below (southwest, south, southeast). Visiting only this half-stencil
// for every (row, col), in row-major order, covers every unordered
// cell pair exactly once.
func (cl *CellList) GetNeighboringCells(row, col int) []int {
	out := make([]int, 0, 5)
	add := func(r, c int) {
		if r < 0 || r >= cl.rows || c < 0 || c >= cl.cols {
			return
		}
		out = append(out, r*cl.cols+c)
	}

	add(row, col)       // self
	add(row, col+1)     // east
	add(row+1, col-1)   // southwest
	add(row+1, col)     // south
	add(row+1, col+1)   // southeast
	return out
}
