package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ironsheep/pixel-art-mcp/internal/pixelart"
)

var (
	red   = pixelart.RGB(255, 0, 0)
	green = pixelart.RGB(0, 255, 0)
)

// createPatternGrid creates a 2x2 grid: red, green on top, transparent, red below
func createPatternGrid(t *testing.T) *pixelart.Grid {
	t.Helper()
	g, err := pixelart.GridFromRows([][]pixelart.Color{
		{red, green},
		{pixelart.Transparent, red},
	})
	if err != nil {
		t.Fatalf("GridFromRows failed: %v", err)
	}
	return g
}

// decodeResult decodes the base64 PNG of an ImageResult
func decodeResult(t *testing.T, res *ImageResult) image.Image {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(res.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid png: %v", err)
	}
	return img
}

// rgb8 returns the 8-bit channels of c
func rgb8(c color.Color) (uint8, uint8, uint8, uint8) {
	r, g, b, a := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)
}

func TestPreview_Dimensions(t *testing.T) {
	g := createPatternGrid(t)

	tests := []struct {
		name      string
		pixelSize int
		wantSize  int
	}{
		{"default", 0, 2 * pixelart.DefaultPixelSize},
		{"one to one", 1, 2},
		{"ten", 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Preview(g, PreviewOptions{PixelSize: tt.pixelSize})
			if err != nil {
				t.Fatalf("Preview failed: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.wantSize || b.Dy() != tt.wantSize {
				t.Errorf("size: got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantSize, tt.wantSize)
			}
		})
	}
}

func TestPreview_CellColors(t *testing.T) {
	g := createPatternGrid(t)
	img, err := Preview(g, PreviewOptions{PixelSize: 10})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	// Every pixel of an opaque cell carries the cell color
	for _, p := range []image.Point{{0, 0}, {9, 9}, {5, 3}} {
		if r, gr, b, a := rgb8(img.At(p.X, p.Y)); r != 255 || gr != 0 || b != 0 || a != 255 {
			t.Errorf("red cell pixel %v: got (%d,%d,%d,%d)", p, r, gr, b, a)
		}
	}
	if r, gr, _, _ := rgb8(img.At(15, 5)); r != 0 || gr != 255 {
		t.Errorf("green cell pixel: got r=%d g=%d", r, gr)
	}

	// The transparent cell shows the checkerboard, not a cell color
	r, gr, b, a := rgb8(img.At(2, 12))
	if a != 255 || r < 200 || r != gr || gr != b {
		t.Errorf("transparent cell should show light checkerboard, got (%d,%d,%d,%d)", r, gr, b, a)
	}
}

func TestPreview_GridLines(t *testing.T) {
	g, _ := pixelart.NewGrid(3, 3, pixelart.RGB(255, 255, 255))
	img, err := Preview(g, PreviewOptions{
		PixelSize: 8,
		ShowGrid:  true,
		GridColor: pixelart.RGB(0, 0, 255),
	})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	if r, _, b, _ := rgb8(img.At(8, 3)); r != 0 || b != 255 {
		t.Errorf("vertical grid line: got r=%d b=%d", r, b)
	}
	if r, _, b, _ := rgb8(img.At(3, 16)); r != 0 || b != 255 {
		t.Errorf("horizontal grid line: got r=%d b=%d", r, b)
	}
	if r, gr, b, _ := rgb8(img.At(3, 3)); r != 255 || gr != 255 || b != 255 {
		t.Errorf("cell interior should be untouched: got (%d,%d,%d)", r, gr, b)
	}
}

func TestPreview_Coordinates(t *testing.T) {
	g, _ := pixelart.NewGrid(2, 2, pixelart.RGB(255, 255, 255))

	plain, err := Preview(g, PreviewOptions{PixelSize: 30})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	labeled, err := Preview(g, PreviewOptions{PixelSize: 30, ShowCoordinates: true})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if bytes.Equal(plain.Pix, labeled.Pix) {
		t.Error("coordinate labels should change the image")
	}

	// Cells too small for a label are left alone
	small, _ := Preview(g, PreviewOptions{PixelSize: 4, ShowCoordinates: true})
	smallPlain, _ := Preview(g, PreviewOptions{PixelSize: 4})
	if !bytes.Equal(small.Pix, smallPlain.Pix) {
		t.Error("labels should be skipped when cells are too small")
	}
}

func TestPreview_InvalidPixelSize(t *testing.T) {
	g := createPatternGrid(t)
	for _, px := range []int{-1, MaxPixelSize + 1} {
		if _, err := Preview(g, PreviewOptions{PixelSize: px}); err == nil {
			t.Errorf("Preview with pixel size %d should fail", px)
		}
	}
}

func TestPreviewPNG(t *testing.T) {
	g := createPatternGrid(t)
	res, err := PreviewPNG(g, PreviewOptions{PixelSize: 5})
	if err != nil {
		t.Fatalf("PreviewPNG failed: %v", err)
	}

	if res.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", res.MimeType)
	}
	if res.Width != 10 || res.Height != 10 || res.PixelSize != 5 {
		t.Errorf("got %dx%d px %d, want 10x10 px 5", res.Width, res.Height, res.PixelSize)
	}
	img := decodeResult(t, res)
	if img.Bounds().Dx() != 10 {
		t.Errorf("decoded width: got %d, want 10", img.Bounds().Dx())
	}
}

func TestExportRegion(t *testing.T) {
	g := createPatternGrid(t)

	res, err := ExportRegion(g, 0, 1, 2, 2, 3)
	if err != nil {
		t.Fatalf("ExportRegion failed: %v", err)
	}
	if res.Width != 6 || res.Height != 3 {
		t.Fatalf("size: got %dx%d, want 6x3", res.Width, res.Height)
	}

	img := decodeResult(t, res)
	if _, _, _, a := rgb8(img.At(1, 1)); a != 0 {
		t.Errorf("transparent cell should stay transparent, alpha %d", a)
	}
	if r, _, _, a := rgb8(img.At(4, 1)); r != 255 || a != 255 {
		t.Errorf("red cell: got r=%d a=%d", r, a)
	}
}

func TestExportRegion_Invalid(t *testing.T) {
	g := createPatternGrid(t)

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		want           error
	}{
		{"outside right", 0, 0, 3, 1, pixelart.ErrOutOfBounds},
		{"negative", -1, 0, 1, 1, pixelart.ErrOutOfBounds},
		{"empty", 1, 1, 1, 2, pixelart.ErrInvalidDimensions},
		{"inverted", 2, 0, 1, 1, pixelart.ErrInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExportRegion(g, tt.x1, tt.y1, tt.x2, tt.y2, 1)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := ExportRegion(g, 0, 0, 1, 1, MaxRegionScale+1); err == nil {
		t.Error("oversized scale should fail")
	}
}

func TestPreview_OutputTooLarge(t *testing.T) {
	g, err := pixelart.NewGrid(1024, 1024, pixelart.Transparent)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	tests := []struct {
		name string
		opts PreviewOptions
	}{
		{"default budget", PreviewOptions{PixelSize: 64}},
		{"explicit budget", PreviewOptions{PixelSize: 2, MaxPixels: 1024 * 1024}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Preview(g, tt.opts); !errors.Is(err, ErrOutputTooLarge) {
				t.Errorf("got %v, want ErrOutputTooLarge", err)
			}
		})
	}

	// Exactly at the budget is allowed
	small := createPatternGrid(t)
	if _, err := Preview(small, PreviewOptions{PixelSize: 10, MaxPixels: 400}); err != nil {
		t.Errorf("preview at budget failed: %v", err)
	}
	if _, err := Preview(small, PreviewOptions{PixelSize: 10, MaxPixels: 399}); !errors.Is(err, ErrOutputTooLarge) {
		t.Errorf("preview over budget: got %v, want ErrOutputTooLarge", err)
	}
}

func TestExportRegion_OutputTooLarge(t *testing.T) {
	g, err := pixelart.NewGrid(1024, 1024, pixelart.Transparent)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	if _, err := ExportRegion(g, 0, 0, 1024, 1024, MaxRegionScale); !errors.Is(err, ErrOutputTooLarge) {
		t.Errorf("got %v, want ErrOutputTooLarge", err)
	}
}
