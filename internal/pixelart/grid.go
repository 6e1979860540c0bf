package pixelart

import (
	"fmt"
	"math"
)

// Grid is a rectangular array of cells stored row-major.
//
// The zero Grid is not usable; create grids with NewGrid or GridFromRows.
type Grid struct {
	width  int
	height int
	cells  []Color
}

// NewGrid creates a width x height grid with every cell set to fill.
//
// Returns an error wrapping ErrInvalidDimensions if width or height is not
// positive or the cell count overflows int.
func NewGrid(width, height int, fill Color) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > math.MaxInt/height {
		return nil, fmt.Errorf("%w: %dx%d cells overflow", ErrInvalidDimensions, width, height)
	}

	cells := make([]Color, width*height)
	if fill != Transparent {
		for i := range cells {
			cells[i] = fill
		}
	}
	return &Grid{width: width, height: height, cells: cells}, nil
}

// GridFromRows builds a grid from a slice of rows. Every row must have the
// same, non-zero length. The rows are copied.
func GridFromRows(rows [][]Color) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrInvalidDimensions)
	}

	width := len(rows[0])
	g := &Grid{width: width, height: len(rows), cells: make([]Color, 0, width*len(rows))}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimensions, y, len(row), width)
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Contains reports whether (col, row) addresses a cell of g.
func (g *Grid) Contains(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

func (g *Grid) checkBounds(col, row int) error {
	if !g.Contains(col, row) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d grid", ErrOutOfBounds, col, row, g.width, g.height)
	}
	return nil
}

// At returns the cell at (col, row).
func (g *Grid) At(col, row int) (Color, error) {
	if err := g.checkBounds(col, row); err != nil {
		return Transparent, err
	}
	return g.cells[row*g.width+col], nil
}

// Set stores c at (col, row). It is the only way cells are mutated; every
// paint operation goes through it.
func (g *Grid) Set(col, row int, c Color) error {
	if err := g.checkBounds(col, row); err != nil {
		return err
	}
	g.cells[row*g.width+col] = c
	return nil
}

// Resize returns a new grid of the given dimensions. Cells inside the overlap
// of the old and new extents keep their values; newly exposed cells are
// Transparent. g itself is not modified.
func (g *Grid) Resize(width, height int) (*Grid, error) {
	out, err := NewGrid(width, height, Transparent)
	if err != nil {
		return nil, err
	}

	w := min(g.width, width)
	h := min(g.height, height)
	for y := 0; y < h; y++ {
		copy(out.cells[y*width:y*width+w], g.cells[y*g.width:y*g.width+w])
	}
	return out, nil
}

// Clone returns a deep copy of g sharing no storage with it.
func (g *Grid) Clone() *Grid {
	cells := make([]Color, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Equal reports whether g and o have the same dimensions and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns a copy of the grid as a slice of rows, top to bottom.
func (g *Grid) Rows() [][]Color {
	rows := make([][]Color, g.height)
	for y := range rows {
		row := make([]Color, g.width)
		copy(row, g.cells[y*g.width:(y+1)*g.width])
		rows[y] = row
	}
	return rows
}
