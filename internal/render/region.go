package render

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-art-mcp/internal/pixelart"
	"github.com/ironsheep/pixel-art-mcp/internal/raster"
)

// MaxRegionScale bounds the enlargement ExportRegion applies.
const MaxRegionScale = 64

// ExportRegion crops the cells in [x1,x2) x [y1,y2) and enlarges each cell
// to scale x scale pixels. Transparent cells stay transparent. A scale of 0
// is treated as 1.
//
// Errors wrap pixelart.ErrOutOfBounds when the region leaves the grid and
// pixelart.ErrInvalidDimensions when it is empty or inverted, and
// ErrOutputTooLarge when the enlarged crop exceeds DefaultMaxPixels.
func ExportRegion(g *pixelart.Grid, x1, y1, x2, y2, scale int) (*ImageResult, error) {
	if x1 < 0 || y1 < 0 || x2 > g.Width() || y2 > g.Height() {
		return nil, fmt.Errorf("%w: region (%d,%d)-(%d,%d) outside %dx%d grid",
			pixelart.ErrOutOfBounds, x1, y1, x2, y2, g.Width(), g.Height())
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("%w: x1 must be < x2, y1 must be < y2", pixelart.ErrInvalidDimensions)
	}
	if scale == 0 {
		scale = 1
	}
	if scale < 0 || scale > MaxRegionScale {
		return nil, fmt.Errorf("scale %d outside 1-%d", scale, MaxRegionScale)
	}
	if err := checkOutputSize(x2-x1, y2-y1, scale, DefaultMaxPixels); err != nil {
		return nil, err
	}

	cropped := imaging.Crop(raster.ToImage(g), image.Rect(x1, y1, x2, y2))
	if scale != 1 {
		b := cropped.Bounds()
		cropped = imaging.Resize(cropped, b.Dx()*scale, b.Dy()*scale, imaging.NearestNeighbor)
	}

	res, err := encodeResult(cropped)
	if err != nil {
		return nil, err
	}
	res.PixelSize = scale
	return res, nil
}
