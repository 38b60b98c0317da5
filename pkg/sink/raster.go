package sink

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/matzehuels/quilt/pkg/quilt"
)

// ErrEmptyImage is returned by the raster sinks for zero-area quilts, which
// PNG, BMP and TIFF cannot represent. SVG and JSON accept them.
var ErrEmptyImage = errors.New("cannot encode a zero-area image")

// RenderPNG encodes buf as PNG.
func RenderPNG(buf *quilt.PixelBuffer, opts ...Option) ([]byte, error) {
	return encode(buf, newOptions(opts), func(w *bytes.Buffer, img image.Image) error {
		return png.Encode(w, img)
	})
}

// RenderBMP encodes buf as a 24-bit BMP.
func RenderBMP(buf *quilt.PixelBuffer, opts ...Option) ([]byte, error) {
	return encode(buf, newOptions(opts), func(w *bytes.Buffer, img image.Image) error {
		return bmp.Encode(w, img)
	})
}

// RenderTIFF encodes buf as a deflate-compressed TIFF.
func RenderTIFF(buf *quilt.PixelBuffer, opts ...Option) ([]byte, error) {
	return encode(buf, newOptions(opts), func(w *bytes.Buffer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	})
}

func encode(buf *quilt.PixelBuffer, o options, fn func(*bytes.Buffer, image.Image) error) ([]byte, error) {
	if buf.Width == 0 || buf.Height == 0 {
		return nil, ErrEmptyImage
	}
	img := scaleImage(buf.ToImage(), o.scale)
	var out bytes.Buffer
	if err := fn(&out, img); err != nil {
		return nil, fmt.Errorf("encode %dx%d image: %w", img.Bounds().Dx(), img.Bounds().Dy(), err)
	}
	return out.Bytes(), nil
}

// scaleImage upscales src by an integer factor. Nearest-neighbour keeps cell
// edges sharp.
func scaleImage(src *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 || src.Bounds().Empty() {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
