// Package sink encodes rendered quilts into output formats.
//
// # Overview
//
// A "sink" turns a finished quilt into bytes. The generator in
// [github.com/matzehuels/quilt/pkg/quilt] stops at a pixel buffer; everything
// here is formatting:
//
//   - PNG: lossless raster output (the default, and the historical format)
//   - BMP: uncompressed raster via golang.org/x/image/bmp
//   - TIFF: deflate-compressed raster via golang.org/x/image/tiff
//   - SVG: one rectangle per cell, resolution independent
//   - JSON: seed provenance plus the colour of every cell
//
// [EncodeBase64] wraps any of them for text transports.
//
// # Usage
//
//	q := sink.FromGenerator(quilt.Default())
//	png, err := sink.Render(q, sink.FormatPNG)
//	svg, err := sink.Render(q, sink.FormatSVG)
//
// Raster formats accept [WithScale] for an integer nearest-neighbour upscale
// that keeps every cell perfectly flat:
//
//	png, err := sink.RenderPNG(q.Pixels(), sink.WithScale(2))
//
// All sinks are deterministic: the same quilt always encodes to the same
// bytes, which is what makes artifact caching safe.
package sink
