package pixelart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is the value held by a grid cell: either a defined color or
// Transparent.
//
// Channels are 8-bit (0-255). A defined color remembers whether it carries
// an explicit alpha channel; a fully opaque alpha (255) is folded into the
// plain RGB form so that every color has exactly one canonical hex
// rendering. Color is comparable and == compares canonical forms.
type Color struct {
	r, g, b, a uint8
	alpha      bool // explicit alpha below 255
	defined    bool
}

// Transparent is the absence of color. It is the zero value of Color.
var Transparent Color

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{r: r, g: g, b: b, a: 255, defined: true}
}

// RGBA returns a color with an explicit alpha channel. An alpha of 255 yields
// the same value as RGB. An alpha of 0 still yields a defined color; use
// FromRasterPixel when alpha 0 should mean Transparent.
func RGBA(r, g, b, a uint8) Color {
	if a == 255 {
		return RGB(r, g, b)
	}
	return Color{r: r, g: g, b: b, a: a, alpha: true, defined: true}
}

// FromRasterPixel converts non-premultiplied raster pixel components into a
// cell value. A pixel whose alpha is exactly 0 is Transparent.
func FromRasterPixel(r, g, b, a uint8) Color {
	if a == 0 {
		return Transparent
	}
	return RGBA(r, g, b, a)
}

// IsTransparent reports whether c is Transparent.
func (c Color) IsTransparent() bool { return !c.defined }

// HasAlpha reports whether c carries an explicit, non-opaque alpha channel.
func (c Color) HasAlpha() bool { return c.alpha }

// Components returns the 8-bit channels of c. Opaque colors report an alpha
// of 255; Transparent reports all zeros.
func (c Color) Components() (r, g, b, a uint8) {
	return c.r, c.g, c.b, c.a
}

// Hex returns the canonical form of c: two lowercase hex digits per channel
// in red, green, blue order, followed by alpha only when c carries one.
// Transparent has no hex form and returns "".
func (c Color) Hex() string {
	if !c.defined {
		return ""
	}
	if c.alpha {
		return fmt.Sprintf("%02x%02x%02x%02x", c.r, c.g, c.b, c.a)
	}
	return fmt.Sprintf("%02x%02x%02x", c.r, c.g, c.b)
}

// String returns "#" followed by the canonical hex form, or "transparent".
func (c Color) String() string {
	if !c.defined {
		return "transparent"
	}
	return "#" + c.Hex()
}

// NRGBA converts c to a non-premultiplied standard library color.
// Transparent becomes fully transparent black.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.r, G: c.g, B: c.b, A: c.a}
}

// HSL returns hue in degrees (0-360), saturation and lightness (0-1) of the
// RGB channels of c. Alpha is ignored. Transparent reports black.
func (c Color) HSL() (h, s, l float64) {
	cf := colorful.Color{
		R: float64(c.r) / 255.0,
		G: float64(c.g) / 255.0,
		B: float64(c.b) / 255.0,
	}
	return cf.Hsl()
}

// ParseColor parses textual color input.
//
// Accepted forms:
//   - hex with or without a leading '#': "rrggbb", "rrggbbaa", and the
//     shorthands "rgb" and "rgba" where each digit is doubled
//   - "rgb(r, g, b)" and "rgba(r, g, b, a)" with comma or whitespace
//     separators and decimal components 0-255
//   - "" or "transparent" for Transparent
//
// An rgba alpha written with a decimal point is a fraction 0-1, multiplied
// by 255 and floored; an integer alpha is taken as 0-255. Any other input,
// or a component that is non-numeric or out of range, fails with
// ErrInvalidColorFormat.
func ParseColor(input string) (Color, error) {
	s := strings.TrimSpace(input)
	lower := strings.ToLower(s)

	switch {
	case s == "" || lower == "transparent":
		return Transparent, nil
	case strings.HasPrefix(lower, "rgb"):
		return parseFunctional(input, lower)
	default:
		return parseHex(input, strings.TrimPrefix(s, "#"))
	}
}

// MustParseColor is like ParseColor but panics on error. It is intended for
// package-level color constants.
func MustParseColor(input string) Color {
	c, err := ParseColor(input)
	if err != nil {
		panic(err)
	}
	return c
}

func colorError(input, reason string) error {
	return fmt.Errorf("%w: %q: %s", ErrInvalidColorFormat, input, reason)
}

func parseHex(input, hex string) (Color, error) {
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return Transparent, colorError(input, "hex form must have 3, 4, 6 or 8 digits")
	}

	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Transparent, colorError(input, "non-hexadecimal digit")
	}

	switch len(hex) {
	case 3:
		return RGB(nibble(val>>8), nibble(val>>4), nibble(val)), nil
	case 4:
		return RGBA(nibble(val>>12), nibble(val>>8), nibble(val>>4), nibble(val)), nil
	case 6:
		return RGB(uint8(val>>16), uint8(val>>8), uint8(val)), nil
	default:
		return RGBA(uint8(val>>24), uint8(val>>16), uint8(val>>8), uint8(val)), nil
	}
}

// nibble expands the low 4 bits of v to a full channel ("f" -> 0xff).
func nibble(v uint64) uint8 {
	return uint8(v&0xf) * 17
}

func parseFunctional(input, s string) (Color, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Transparent, colorError(input, "expected rgb(...) or rgba(...)")
	}

	want := 0
	switch strings.TrimSpace(s[:open]) {
	case "rgb":
		want = 3
	case "rgba":
		want = 4
	default:
		return Transparent, colorError(input, "expected rgb(...) or rgba(...)")
	}

	body := s[open+1 : len(s)-1]
	var parts []string
	if strings.Contains(body, ",") {
		parts = strings.Split(body, ",")
	} else {
		parts = strings.Fields(body)
	}
	if len(parts) != want {
		return Transparent, colorError(input, fmt.Sprintf("expected %d components, got %d", want, len(parts)))
	}

	var ch [3]uint8
	for i := range ch {
		v, err := parseChannel(parts[i])
		if err != nil {
			return Transparent, colorError(input, err.Error())
		}
		ch[i] = v
	}
	if want == 3 {
		return RGB(ch[0], ch[1], ch[2]), nil
	}

	a, err := parseAlpha(parts[3])
	if err != nil {
		return Transparent, colorError(input, err.Error())
	}
	return RGBA(ch[0], ch[1], ch[2], a), nil
}

func parseChannel(part string) (uint8, error) {
	part = strings.TrimSpace(part)
	v, err := strconv.Atoi(part)
	if err != nil {
		return 0, fmt.Errorf("component %q is not a decimal integer", part)
	}
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("component %d outside 0-255", v)
	}
	return uint8(v), nil
}

func parseAlpha(part string) (uint8, error) {
	part = strings.TrimSpace(part)
	if !strings.Contains(part, ".") {
		return parseChannel(part)
	}
	f, err := strconv.ParseFloat(part, 64)
	if err != nil || math.IsNaN(f) {
		return 0, fmt.Errorf("alpha %q is not a number", part)
	}
	if f < 0 || f > 1 {
		return 0, fmt.Errorf("fractional alpha %v outside 0-1", f)
	}
	return uint8(math.Floor(f * 255)), nil
}
