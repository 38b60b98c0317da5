package quilt

import (
	"image/color"
	"strconv"
	"strings"
)

// Color is an RGB triplet written as six lowercase hex digits, e.g. "c81ec9".
type Color string

// RGB decodes the three channels. A malformed colour decodes to black; colours
// built by AssembleColors are always well formed.
func (c Color) RGB() (r, g, b uint8) {
	if len(c) != hexPerColor {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(string(c), 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// ToRGBA returns the colour as an opaque color.RGBA.
func (c Color) ToRGBA() color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Hex returns the colour with a leading '#'.
func (c Color) Hex() string { return "#" + string(c) }

// Valid reports whether c is exactly six hex digits.
func (c Color) Valid() bool {
	if len(c) != hexPerColor {
		return false
	}
	return strings.Trim(strings.ToLower(string(c)), "0123456789abcdef") == ""
}

// AssembleColors joins consecutive token triples into colours, in order.
// Trailing tokens that do not fill a triple are dropped.
func AssembleColors(tokens []Token) []Color {
	colors := make([]Color, 0, len(tokens)/3)
	for i := 0; i+3 <= len(tokens); i += 3 {
		colors = append(colors, Color(tokens[i]+tokens[i+1]+tokens[i+2]))
	}
	return colors
}

// Grid is a square arrangement of colours in placement order.
//
// Colours fill the grid column by column: index i lands in column i/Size,
// row i%Size.
type Grid struct {
	Size   int
	Colors []Color
}

// At returns the colour of the cell in column col and row row.
func (g Grid) At(col, row int) Color {
	return g.Colors[col*g.Size+row]
}

// Cell returns the column and row of the colour at index i.
func (g Grid) Cell(i int) (col, row int) {
	return i / g.Size, i % g.Size
}
