package pixelart

import "errors"

var (
	// ErrInvalidDimensions is returned when a grid is requested with a
	// non-positive width or height, or from ragged rows.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrOutOfBounds is returned when a coordinate falls outside the grid.
	ErrOutOfBounds = errors.New("coordinates out of bounds")

	// ErrInvalidColorFormat is returned when color text cannot be parsed.
	ErrInvalidColorFormat = errors.New("invalid color format")
)
