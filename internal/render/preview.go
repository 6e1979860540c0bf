package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/pixel-art-mcp/internal/pixelart"
	"github.com/ironsheep/pixel-art-mcp/internal/raster"
)

const (
	// MaxPixelSize is the largest cell size a preview may use.
	MaxPixelSize = 256

	// DefaultMaxPixels bounds the total output pixels of Preview and
	// ExportRegion.
	DefaultMaxPixels = 1 << 22
)

// ErrOutputTooLarge is returned when a rendered image would exceed its pixel
// budget.
var ErrOutputTooLarge = errors.New("output image too large")

// DefaultGridColor is drawn between cells when no grid color is given.
var DefaultGridColor = pixelart.RGBA(0, 0, 0, 0x40)

var (
	checkerLight = color.RGBA{255, 255, 255, 255}
	checkerDark  = color.RGBA{204, 204, 204, 255}
	labelFG      = color.RGBA{255, 255, 255, 255}
	labelBG      = color.RGBA{0, 0, 0, 180}
)

// ImageResult is an encoded image ready to hand to a client.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	PixelSize   int    `json:"pixel_size,omitempty"`
}

// PreviewOptions controls Preview.
type PreviewOptions struct {
	// PixelSize is the edge length of one cell in image pixels. Zero means
	// pixelart.DefaultPixelSize.
	PixelSize int

	// ShowGrid draws one-pixel lines between cells in GridColor
	// (DefaultGridColor when Transparent).
	ShowGrid  bool
	GridColor pixelart.Color

	// ShowCoordinates labels the top row of cells with column indices and
	// the left column with row indices. Labels are skipped when cells are
	// too small to hold them.
	ShowCoordinates bool

	// MaxPixels bounds width x height of the output image. Zero means
	// DefaultMaxPixels.
	MaxPixels int
}

// Preview renders g scaled to opts.PixelSize pixels per cell.
//
// Returns an error if PixelSize is negative or larger than MaxPixelSize, or
// one wrapping ErrOutputTooLarge if the image would exceed MaxPixels.
func Preview(g *pixelart.Grid, opts PreviewOptions) (*image.RGBA, error) {
	px := opts.PixelSize
	if px == 0 {
		px = pixelart.DefaultPixelSize
	}
	if px < 0 || px > MaxPixelSize {
		return nil, fmt.Errorf("pixel size %d outside 1-%d", px, MaxPixelSize)
	}
	limit := opts.MaxPixels
	if limit <= 0 {
		limit = DefaultMaxPixels
	}
	if err := checkOutputSize(g.Width(), g.Height(), px, limit); err != nil {
		return nil, err
	}

	w, h := g.Width()*px, g.Height()*px
	cells := imaging.Resize(raster.ToImage(g), w, h, imaging.NearestNeighbor)
	out := blend.Normal(checkerboard(w, h, px), cells)

	if opts.ShowGrid {
		gridColor := opts.GridColor
		if gridColor.IsTransparent() {
			gridColor = DefaultGridColor
		}
		drawGridLines(out, px, gridColor.NRGBA())
	}

	if opts.ShowCoordinates {
		for col := 0; col < g.Width(); col++ {
			drawLabel(out, col*px, 0, px, strconv.Itoa(col))
		}
		for row := 1; row < g.Height(); row++ {
			drawLabel(out, 0, row*px, px, strconv.Itoa(row))
		}
	}

	return out, nil
}

// PreviewPNG renders g like Preview and encodes the result as base64 PNG.
func PreviewPNG(g *pixelart.Grid, opts PreviewOptions) (*ImageResult, error) {
	img, err := Preview(g, opts)
	if err != nil {
		return nil, err
	}
	res, err := encodeResult(img)
	if err != nil {
		return nil, err
	}
	res.PixelSize = img.Bounds().Dx() / g.Width()
	return res, nil
}

// checkerboard returns a w x h background of alternating light and dark
// squares, four per cell.
func checkerboard(w, h, px int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(checkerLight), image.Point{}, draw.Src)

	square := max(px/2, 1)
	dark := image.NewUniform(checkerDark)
	for y := 0; y < h; y += square {
		for x := 0; x < w; x += square {
			if (x/square+y/square)%2 == 1 {
				draw.Draw(img, image.Rect(x, y, x+square, y+square), dark, image.Point{}, draw.Src)
			}
		}
	}
	return img
}

// drawGridLines composites c over the first pixel row and column of every
// cell after the first.
func drawGridLines(img *image.RGBA, px int, c color.NRGBA) {
	bounds := img.Bounds()
	src := image.NewUniform(c)

	for x := px; x < bounds.Dx(); x += px {
		draw.Draw(img, image.Rect(x, 0, x+1, bounds.Dy()), src, image.Point{}, draw.Over)
	}
	for y := px; y < bounds.Dy(); y += px {
		draw.Draw(img, image.Rect(0, y, bounds.Dx(), y+1), src, image.Point{}, draw.Over)
	}
}

// drawLabel writes text on a dark box in the top-left corner of the cell
// whose origin is (x, y). Nothing is drawn if the text does not fit.
func drawLabel(img *image.RGBA, x, y, px int, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelFG),
		Face: face,
	}

	textWidth := d.MeasureString(text).Ceil()
	if textWidth+4 > px || face.Height+4 > px {
		return
	}

	box := image.Rect(x+1, y+1, x+textWidth+3, y+face.Height+3)
	draw.Draw(img, box, image.NewUniform(labelBG), image.Point{}, draw.Over)

	d.Dot = fixed.P(x+2, y+2+face.Ascent)
	d.DrawString(text)
}

// checkOutputSize fails when cols x rows cells at px pixels each would exceed
// limit output pixels. The comparison cannot overflow.
func checkOutputSize(cols, rows, px, limit int) error {
	if cols > limit/px || rows > limit/px || cols*px > limit/(rows*px) {
		return fmt.Errorf("%w: %dx%d cells at %d px exceed %d pixels", ErrOutputTooLarge, cols, rows, px, limit)
	}
	return nil
}

func encodeResult(img image.Image) (*ImageResult, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &ImageResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
