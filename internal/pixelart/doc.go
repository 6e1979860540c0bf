// Package pixelart implements the editing core of a pixel-art editor: a
// rectangular grid of colored cells, the paint operations that mutate it,
// and a linear undo/redo history of full-grid snapshots.
//
// The package knows nothing about rendering. Callers observe changes through
// the values operations return or through the change hook installed with
// WithChangeHook, and redraw whatever surface they own.
//
// # Coordinate System
//
// Cells are addressed by zero-based (col, row) pairs:
//   - col: horizontal position (0 = leftmost cell), col < Width()
//   - row: vertical position (0 = topmost cell), row < Height()
//
// # Colors
//
// A Color is either a defined color or Transparent. The zero value is
// Transparent. Defined colors have a canonical lowercase hex form without a
// leading '#': "rrggbb", or "rrggbbaa" when a non-opaque alpha was given.
// Two colors are equal exactly when their canonical forms are equal, so the
// == operator can be used directly.
//
// # History
//
// Every paint operation records exactly one snapshot, so undo reverts a whole
// line, column, grid fill, or drag stroke in one step. Registering a new
// state after undoing discards the undone states; there is no redo tree.
// A Document keeps its registry private and exposes it read-only through
// HistoryState and HistoryEntries.
//
// # Error Handling
//
// Errors wrap one of the sentinels ErrInvalidDimensions, ErrOutOfBounds or
// ErrInvalidColorFormat and should be tested with errors.Is. Operations
// validate their arguments before mutating anything, so a failed call leaves
// the grid and its history untouched.
//
// # Thread Safety
//
// Documents, grids and histories are not safe for concurrent use. Each is
// meant to be owned by a single caller.
package pixelart
