package pixelart

import (
	"fmt"

	"github.com/google/uuid"
)

// DefaultPixelSize is the rendering size hint used when none is configured.
const DefaultPixelSize = 25

// Point addresses one cell.
type Point struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Document is a pixel-art image being edited: one grid plus its history.
//
// Every paint operation validates its arguments, mutates the grid through
// Grid.Set, and records exactly one history snapshot. A failed operation
// changes nothing.
type Document struct {
	id        string
	grid      *Grid
	pixelSize int
	initial   Color
	history   *History
	onChange  func(Action)
}

// Option configures a Document at creation.
type Option func(*Document)

// WithFill sets the initial color of every cell. ResetGrid restores it.
func WithFill(c Color) Option {
	return func(d *Document) { d.initial = c }
}

// WithPixelSize sets the rendering size hint, in screen pixels per cell.
// Non-positive values are ignored.
func WithPixelSize(px int) Option {
	return func(d *Document) {
		if px > 0 {
			d.pixelSize = px
		}
	}
}

// WithID overrides the generated document identifier.
func WithID(id string) Option {
	return func(d *Document) {
		if id != "" {
			d.id = id
		}
	}
}

// WithChangeHook installs a function called after every committed change
// (paint operations, undo and redo) with the action now current. Renderers
// use it to redraw.
func WithChangeHook(fn func(Action)) Option {
	return func(d *Document) { d.onChange = fn }
}

// New creates a width x height document. Cells start Transparent unless
// WithFill is given.
//
// Returns an error wrapping ErrInvalidDimensions if width or height is not
// positive.
func New(width, height int, opts ...Option) (*Document, error) {
	d := &Document{
		id:        uuid.NewString(),
		pixelSize: DefaultPixelSize,
	}
	for _, opt := range opts {
		opt(d)
	}

	g, err := NewGrid(width, height, d.initial)
	if err != nil {
		return nil, err
	}
	d.grid = g
	d.history = NewHistory(g, d.replaceGrid)
	return d, nil
}

// ID returns the document's identifier, stable for its lifetime.
func (d *Document) ID() string { return d.id }

// Width returns the current number of columns.
func (d *Document) Width() int { return d.grid.Width() }

// Height returns the current number of rows.
func (d *Document) Height() int { return d.grid.Height() }

// PixelSize returns the rendering size hint.
func (d *Document) PixelSize() int { return d.pixelSize }

// InitialColor returns the color the document was created with.
func (d *Document) InitialColor() Color { return d.initial }

// Grid returns a deep copy of the live grid.
func (d *Document) Grid() *Grid { return d.grid.Clone() }

// HistoryState describes a document's position in its history.
type HistoryState struct {
	Length        int    `json:"length"`
	Cursor        int    `json:"cursor"`
	CanUndo       bool   `json:"can_undo"`
	CanRedo       bool   `json:"can_redo"`
	CurrentAction Action `json:"current_action"`
}

// HistoryState returns a read-only summary of the document's history.
func (d *Document) HistoryState() HistoryState {
	return HistoryState{
		Length:        d.history.Len(),
		Cursor:        d.history.Cursor(),
		CanUndo:       d.history.CanUndo(),
		CanRedo:       d.history.CanRedo(),
		CurrentAction: d.history.Current().Action(),
	}
}

// HistoryEntries lists the document's snapshots oldest first.
func (d *Document) HistoryEntries() []HistoryEntry { return d.history.Entries() }

// At returns the cell at (col, row).
func (d *Document) At(col, row int) (Color, error) { return d.grid.At(col, row) }

// Sample describes the cell at (col, row) without copying the grid.
func (d *Document) Sample(col, row int) (*CellInfo, error) { return Sample(d.grid, col, row) }

// PaintPixel sets one cell.
func (d *Document) PaintPixel(col, row int, c Color) error {
	if err := d.grid.Set(col, row, c); err != nil {
		return err
	}
	d.commit(ActionPaintPixel)
	return nil
}

// PaintPixels sets every listed cell to c and records the whole stroke as a
// single action, the way a drag gesture should be committed. All points are
// checked before any cell changes. An empty stroke records nothing.
func (d *Document) PaintPixels(points []Point, c Color) error {
	if len(points) == 0 {
		return nil
	}
	for _, p := range points {
		if err := d.grid.checkBounds(p.Col, p.Row); err != nil {
			return err
		}
	}
	for _, p := range points {
		if err := d.grid.Set(p.Col, p.Row, c); err != nil {
			return err
		}
	}
	d.commit(ActionPaintPixels)
	return nil
}

// FillLine sets every cell of row to c.
func (d *Document) FillLine(c Color, row int) error {
	if row < 0 || row >= d.grid.Height() {
		return fmt.Errorf("%w: row %d outside %d rows", ErrOutOfBounds, row, d.grid.Height())
	}
	for col := 0; col < d.grid.Width(); col++ {
		if err := d.grid.Set(col, row, c); err != nil {
			return err
		}
	}
	d.commit(ActionFillLine)
	return nil
}

// FillColumn sets every cell of col to c.
func (d *Document) FillColumn(c Color, col int) error {
	if col < 0 || col >= d.grid.Width() {
		return fmt.Errorf("%w: column %d outside %d columns", ErrOutOfBounds, col, d.grid.Width())
	}
	for row := 0; row < d.grid.Height(); row++ {
		if err := d.grid.Set(col, row, c); err != nil {
			return err
		}
	}
	d.commit(ActionFillColumn)
	return nil
}

// FillGrid sets every cell to c.
func (d *Document) FillGrid(c Color) error {
	if err := d.fillAll(c); err != nil {
		return err
	}
	d.commit(ActionFillGrid)
	return nil
}

// ResetGrid fills the grid with the initial color (Transparent when none was
// configured).
func (d *Document) ResetGrid() error {
	if err := d.fillAll(d.initial); err != nil {
		return err
	}
	d.commit(ActionReset)
	return nil
}

// ApplyGrid replaces the live grid with the cells of g. When g's dimensions
// differ, the document is resized to them first. g is not retained.
func (d *Document) ApplyGrid(g *Grid) error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidDimensions)
	}

	target := d.grid
	if g.Width() != target.Width() || g.Height() != target.Height() {
		resized, err := target.Resize(g.Width(), g.Height())
		if err != nil {
			return err
		}
		target = resized
	}
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			if err := target.Set(col, row, g.cells[row*g.width+col]); err != nil {
				return err
			}
		}
	}
	d.grid = target
	d.commit(ActionLoadImage)
	return nil
}

// Undo reverts to the previous history state. It reports whether anything
// changed.
func (d *Document) Undo() bool {
	if !d.history.Undo() {
		return false
	}
	d.notify(d.history.Current().Action())
	return true
}

// Redo re-applies the next history state. It reports whether anything
// changed.
func (d *Document) Redo() bool {
	if !d.history.Redo() {
		return false
	}
	d.notify(d.history.Current().Action())
	return true
}

// CanUndo reports whether Undo would change anything.
func (d *Document) CanUndo() bool { return d.history.CanUndo() }

// CanRedo reports whether Redo would change anything.
func (d *Document) CanRedo() bool { return d.history.CanRedo() }

// CompactHistory keeps only the current history state.
func (d *Document) CompactHistory() { d.history.Compact() }

func (d *Document) fillAll(c Color) error {
	for row := 0; row < d.grid.Height(); row++ {
		for col := 0; col < d.grid.Width(); col++ {
			if err := d.grid.Set(col, row, c); err != nil {
				return err
			}
		}
	}
	return nil
}

// replaceGrid is the history apply hook. The grid it receives is already a
// private copy.
func (d *Document) replaceGrid(g *Grid) {
	d.grid = g
}

func (d *Document) commit(action Action) {
	d.history.Register(d.grid, action)
	d.notify(action)
}

func (d *Document) notify(action Action) {
	if d.onChange != nil {
		d.onChange(action)
	}
}
