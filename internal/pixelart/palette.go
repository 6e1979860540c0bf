package pixelart

import (
	"math"
	"sort"
)

// RGBAComponents holds the 8-bit channels of a color.
type RGBAComponents struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLValue is a color in HSL space.
type HSLValue struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// CellInfo describes the content of one cell in several representations.
type CellInfo struct {
	Col         int            `json:"col"`
	Row         int            `json:"row"`
	Transparent bool           `json:"transparent"`
	Hex         string         `json:"hex"` // canonical form, "" when transparent
	RGBA        RGBAComponents `json:"rgba"`
	HSL         HSLValue       `json:"hsl"`
}

// Sample describes the cell at (col, row) of g.
func Sample(g *Grid, col, row int) (*CellInfo, error) {
	c, err := g.At(col, row)
	if err != nil {
		return nil, err
	}

	r, gr, b, a := c.Components()
	return &CellInfo{
		Col:         col,
		Row:         row,
		Transparent: c.IsTransparent(),
		Hex:         c.Hex(),
		RGBA:        RGBAComponents{R: r, G: gr, B: b, A: a},
		HSL:         hslOf(c),
	}, nil
}

// PaletteEntry is one distinct color used in a grid.
type PaletteEntry struct {
	Hex        string   `json:"hex"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"` // share of all cells, 0-100
	HSL        HSLValue `json:"hsl"`
}

// PaletteResult lists the colors used in a grid, most frequent first.
type PaletteResult struct {
	Colors           []PaletteEntry `json:"colors"`
	DistinctColors   int            `json:"distinct_colors"`
	TransparentCells int            `json:"transparent_cells"`
	TotalCells       int            `json:"total_cells"`
}

// Palette counts the defined colors of g. Colors are sorted by count,
// descending, ties broken by hex. When limit is positive at most limit
// entries are returned; DistinctColors always reports the full count.
func Palette(g *Grid, limit int) *PaletteResult {
	counts := make(map[Color]int)
	transparent := 0
	for _, c := range g.cells {
		if c.IsTransparent() {
			transparent++
			continue
		}
		counts[c]++
	}

	total := len(g.cells)
	colors := make([]PaletteEntry, 0, len(counts))
	for c, n := range counts {
		colors = append(colors, PaletteEntry{
			Hex:        c.Hex(),
			Count:      n,
			Percentage: math.Round(float64(n)/float64(total)*1000) / 10,
			HSL:        hslOf(c),
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Count != colors[j].Count {
			return colors[i].Count > colors[j].Count
		}
		return colors[i].Hex < colors[j].Hex
	})

	distinct := len(colors)
	if limit > 0 && len(colors) > limit {
		colors = colors[:limit]
	}

	return &PaletteResult{
		Colors:           colors,
		DistinctColors:   distinct,
		TransparentCells: transparent,
		TotalCells:       total,
	}
}

func hslOf(c Color) HSLValue {
	h, s, l := c.HSL()
	return HSLValue{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}
