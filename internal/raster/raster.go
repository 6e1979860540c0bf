// Package raster converts between pixel-art grids and PNG images.
//
// One grid cell maps to exactly one image pixel; no scaling is applied.
// Transparent cells become fully transparent pixels and any pixel whose
// alpha is 0 decodes to a Transparent cell. Pixel values are handled
// non-premultiplied, so semi-transparent colors survive a round trip
// unchanged.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // Register PNG format decoder
	"io"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-art-mcp/internal/pixelart"
)

// DefaultMaxPixels bounds the images Decode accepts.
const DefaultMaxPixels = 1 << 20

// ErrImageTooLarge is returned when an image exceeds the decoder's pixel
// budget.
var ErrImageTooLarge = errors.New("image too large")

// ToImage renders g one pixel per cell.
func ToImage(g *pixelart.Grid) *image.NRGBA {
	img := imaging.New(g.Width(), g.Height(), color.NRGBA{})
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			c, _ := g.At(col, row)
			if c.IsTransparent() {
				continue
			}
			img.SetNRGBA(col, row, c.NRGBA())
		}
	}
	return img
}

// Encode writes g to w as a PNG image.
func Encode(w io.Writer, g *pixelart.Grid) error {
	if err := imaging.Encode(w, ToImage(g), imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// EncodeBytes returns g encoded as a PNG image.
func EncodeBytes(g *pixelart.Grid) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromImage converts img to a grid, one cell per pixel.
func FromImage(img image.Image) (*pixelart.Grid, error) {
	bounds := img.Bounds()
	g, err := pixelart.NewGrid(bounds.Dx(), bounds.Dy(), pixelart.Transparent)
	if err != nil {
		return nil, err
	}

	// Clone normalizes any color model to non-premultiplied NRGBA at origin
	nrgba := imaging.Clone(img)
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			i := nrgba.PixOffset(col, row)
			px := nrgba.Pix[i : i+4 : i+4]
			c := pixelart.FromRasterPixel(px[0], px[1], px[2], px[3])
			if err := g.Set(col, row, c); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// Decoder decodes raster images into grids.
type Decoder struct {
	// MaxPixels rejects images with more pixels than this. Zero means
	// DefaultMaxPixels; a negative value disables the check.
	MaxPixels int
}

// Decode reads a complete image from r and converts it to a grid. Nothing is
// returned until the whole image has decoded successfully.
func (d Decoder) Decode(r io.Reader) (*pixelart.Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}
	limit := d.MaxPixels
	if limit == 0 {
		limit = DefaultMaxPixels
	}
	if limit > 0 && cfg.Width*cfg.Height > limit {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, limit)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img)
}

// Import decodes an image from r and applies it to doc as a single
// "image load" action. doc is left untouched when decoding fails.
func (d Decoder) Import(doc *pixelart.Document, r io.Reader) error {
	g, err := d.Decode(r)
	if err != nil {
		return err
	}
	return doc.ApplyGrid(g)
}

// Decode decodes an image with the default pixel budget.
func Decode(r io.Reader) (*pixelart.Grid, error) {
	return Decoder{}.Decode(r)
}

// Import decodes an image with the default pixel budget and applies it to
// doc.
func Import(doc *pixelart.Document, r io.Reader) error {
	return Decoder{}.Import(doc, r)
}
