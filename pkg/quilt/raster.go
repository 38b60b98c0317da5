package quilt

import (
	"errors"
	"image"
	"image/color"
	"math"
)

// bytesPerPixel is the stride of one RGB pixel in PixelBuffer.Pix.
const bytesPerPixel = 3

// PixelBuffer is a square RGB raster, 3 bytes per pixel, rows top to bottom.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// ErrRasterTooLarge is the panic value when a buffer's byte size does not
// fit in an int or a dimension is negative.
var ErrRasterTooLarge = errors.New("quilt: raster size overflows int")

// NewPixelBuffer allocates a zeroed (black) buffer. It panics with
// ErrRasterTooLarge if width*height*3 does not fit in an int.
func NewPixelBuffer(width, height int) *PixelBuffer {
	n, ok := mulNonNeg(width, height)
	if ok {
		n, ok = mulNonNeg(n, bytesPerPixel)
	}
	if !ok {
		panic(ErrRasterTooLarge)
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, n),
	}
}

// mulNonNeg returns a*b for non-negative operands, reporting overflow.
func mulNonNeg(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a != 0 && b > math.MaxInt/a {
		return 0, false
	}
	return a * b, true
}

// RGB returns the pixel at (x, y). Out-of-range coordinates return black.
func (p *PixelBuffer) RGB(x, y int) (r, g, b uint8) {
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return 0, 0, 0
	}
	i := (y*p.Width + x) * bytesPerPixel
	return p.Pix[i], p.Pix[i+1], p.Pix[i+2]
}

// FillRect paints the w×h rectangle at (x, y), clipped to the buffer.
func (p *PixelBuffer) FillRect(x, y, w, h int, r, g, b uint8) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, p.Width), min(y+h, p.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	// Paint the first row, then copy it down.
	first := (y0*p.Width + x0) * bytesPerPixel
	rowLen := (x1 - x0) * bytesPerPixel
	for i := first; i < first+rowLen; i += bytesPerPixel {
		p.Pix[i], p.Pix[i+1], p.Pix[i+2] = r, g, b
	}
	for yy := y0 + 1; yy < y1; yy++ {
		start := (yy*p.Width + x0) * bytesPerPixel
		copy(p.Pix[start:start+rowLen], p.Pix[first:first+rowLen])
	}
}

// ToImage converts the buffer to an opaque *image.RGBA.
func (p *PixelBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	for i, j := 0, 0; i < len(p.Pix); i, j = i+bytesPerPixel, j+4 {
		img.Pix[j] = p.Pix[i]
		img.Pix[j+1] = p.Pix[i+1]
		img.Pix[j+2] = p.Pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// At implements the image.Image interface.
func (p *PixelBuffer) At(x, y int) color.Color {
	r, g, b := p.RGB(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Bounds implements the image.Image interface.
func (p *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

// ColorModel implements the image.Image interface.
func (p *PixelBuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Rasterize paints grid into a buffer of side grid.Size*blockSize.
//
// Cells are visited in colour order. Each colour fills one blockSize square,
// then the cursor moves down one block; at the bottom edge it returns to the
// top of the next column. It panics with ErrRasterTooLarge when the
// buffer size overflows int.
func Rasterize(grid Grid, blockSize int) *PixelBuffer {
	side, ok := mulNonNeg(grid.Size, blockSize)
	if !ok {
		panic(ErrRasterTooLarge)
	}
	buf := NewPixelBuffer(side, side)
	if side == 0 {
		return buf
	}

	x, y := 0, 0
	for _, c := range grid.Colors {
		r, g, b := c.RGB()
		buf.FillRect(x, y, blockSize, blockSize, r, g, b)
		y += blockSize
		if y >= side {
			y = 0
			x += blockSize
		}
	}
	return buf
}
