package sink

import (
	"fmt"

	"github.com/matzehuels/quilt/pkg/prng"
	"github.com/matzehuels/quilt/pkg/quilt"
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// DefaultFormat is the format used when none is requested.
const DefaultFormat = FormatPNG

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatBMP:  true,
	FormatTIFF: true,
	FormatSVG:  true,
	FormatJSON: true,
}

var contentTypes = map[string]string{
	FormatPNG:  "image/png",
	FormatBMP:  "image/bmp",
	FormatTIFF: "image/tiff",
	FormatSVG:  "image/svg+xml",
	FormatJSON: "application/json",
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: png, bmp, tiff, svg, json)", format)
	}
	return nil
}

// ContentType returns the MIME type for format, or application/octet-stream.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Extension returns the file extension for format, without the dot.
func Extension(format string) string {
	if ValidFormats[format] {
		return format
	}
	return "bin"
}

// IsRaster reports whether format needs a pixel buffer.
func IsRaster(format string) bool {
	return format == FormatPNG || format == FormatBMP || format == FormatTIFF
}

// Quilt carries a colour grid plus its provenance to the sinks.
type Quilt struct {
	Salt      string
	Seed      uint32
	Algorithm prng.Algorithm
	Grid      quilt.Grid
	BlockSize int

	pixels *quilt.PixelBuffer
}

// FromGenerator snapshots g's current configuration and colours.
func FromGenerator(g *quilt.Generator) *Quilt {
	return &Quilt{
		Salt:      g.Salt(),
		Seed:      g.Seed(),
		Algorithm: g.Algorithm(),
		Grid:      g.Grid(),
		BlockSize: g.BlockSize(),
	}
}

// Side returns the rendered image side in pixels.
func (q *Quilt) Side() int { return q.Grid.Size * q.BlockSize }

// Pixels rasterises the grid on first use and returns the cached buffer.
func (q *Quilt) Pixels() *quilt.PixelBuffer {
	if q.pixels == nil {
		q.pixels = quilt.Rasterize(q.Grid, q.BlockSize)
	}
	return q.pixels
}

// Render encodes q in the given format.
func Render(q *Quilt, format string, opts ...Option) ([]byte, error) {
	switch format {
	case FormatPNG:
		return RenderPNG(q.Pixels(), opts...)
	case FormatBMP:
		return RenderBMP(q.Pixels(), opts...)
	case FormatTIFF:
		return RenderTIFF(q.Pixels(), opts...)
	case FormatSVG:
		return RenderSVG(q.Grid, q.BlockSize, opts...), nil
	case FormatJSON:
		return RenderJSON(q, opts...)
	default:
		return nil, ValidateFormat(format)
	}
}
