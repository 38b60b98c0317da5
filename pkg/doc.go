// Package pkg provides the core libraries for Quilt identicon generation.
//
// # Overview
//
// Quilt turns any string into a square grid of flat colours. The grid depends
// only on the string, the grid size and the shuffle algorithm, so identicons
// can be derived on demand instead of stored. The pkg directory is organized
// into three areas:
//
//  1. [quilt], [prng] - Domain logic (seed derivation, token stream, shuffle, raster)
//  2. [sink] - Output encoders (PNG, BMP, TIFF, SVG, JSON, base64)
//  3. [pipeline], [cache], [config], [server] - Orchestration and infrastructure
//
// # Architecture
//
// The typical data flow through Quilt:
//
//	Seed string
//	     ↓
//	[quilt] package (seed → tokens → shuffle → colours)
//	     ↓
//	[sink] package (raster + encoders)
//	     ↓
//	PNG/BMP/TIFF/SVG/JSON output
//
// [pipeline] wraps these steps with validation, size limits and the artifact
// [cache]; the CLI and the HTTP [server] both go through it.
//
// # Quick Start
//
//	g, _ := quilt.New("alice@example.com", quilt.WithGridSize(8))
//	q := sink.FromGenerator(g)
//	png, _ := sink.Render(q, sink.FormatPNG)
//
// With caching and validation:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Seed:    "alice@example.com",
//	    Formats: []string{"png", "svg"},
//	})
//
// # Main Packages
//
// [quilt] - The deterministic generator. Pure functions, no I/O.
//
// [prng] - Seeded random generators: MT19937 (default, matches historical
// quilts) and PCG.
//
// [sink] - Encoders for every output format plus integer upscaling.
//
// [pipeline] - Options validation, limits, rendering and caching used by the
// CLI and the server. Ensures consistent behavior across entry points.
//
// [cache] - Artifact cache backends: none, file (CLI) and Redis (server).
//
// [config] - TOML configuration with XDG default locations.
//
// [server] - HTTP service built on chi.
//
// [errors] - Coded errors for the outer surfaces.
//
// [observability] - Hooks for render, cache and HTTP events.
//
// [buildinfo] - Version information baked in at build time.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/quilt/...    # Specific package
//	go test -run Example ./... # Examples only
//
// [quilt]: https://pkg.go.dev/github.com/matzehuels/quilt/pkg/quilt
// [prng]: https://pkg.go.dev/github.com/matzehuels/quilt/pkg/prng
// [sink]: https://pkg.go.dev/github.com/matzehuels/quilt/pkg/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/quilt/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/quilt/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/quilt/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/quilt/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/quilt/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/quilt/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/quilt/pkg/buildinfo
package pkg
