// Package pipeline turns a render request into encoded quilt artifacts.
//
// The same Runner backs the CLI and the HTTP server, so validation, defaults,
// caching and encoding behave identically on every entry point.
//
// # Stages
//
//  1. Validate: check the seed, sizes, algorithm and formats against Limits
//  2. Render: build the colour grid with [quilt.Generator]
//  3. Encode: run each requested sink, consulting the artifact cache first
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Seed:    "hello@example.com",
//	    Formats: []string{"png", "svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	png := result.Artifacts["png"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/quilt/pkg/cache"
	"github.com/matzehuels/quilt/pkg/errors"
	"github.com/matzehuels/quilt/pkg/prng"
	"github.com/matzehuels/quilt/pkg/quilt"
	"github.com/matzehuels/quilt/pkg/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultMaxBlockSize bounds the block size accepted from outside.
	DefaultMaxBlockSize = 512

	// DefaultMaxSide bounds the encoded image side in pixels, scale included.
	DefaultMaxSide = 8192

	// DefaultMaxScale bounds the integer upscale factor.
	DefaultMaxScale = 16
)

// Limits bounds the work one request may cause. Zero fields take defaults.
type Limits struct {
	MaxGridSize  int `json:"max_grid_size,omitempty"`
	MaxBlockSize int `json:"max_block_size,omitempty"`
	MaxSide      int `json:"max_side,omitempty"`
	MaxScale     int `json:"max_scale,omitempty"`
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxGridSize:  quilt.MaxGridSize,
		MaxBlockSize: DefaultMaxBlockSize,
		MaxSide:      DefaultMaxSide,
		MaxScale:     DefaultMaxScale,
	}
}

func (l *Limits) setDefaults() {
	d := DefaultLimits()
	if l.MaxGridSize <= 0 {
		l.MaxGridSize = d.MaxGridSize
	}
	if l.MaxBlockSize <= 0 {
		l.MaxBlockSize = d.MaxBlockSize
	}
	if l.MaxSide <= 0 {
		l.MaxSide = d.MaxSide
	}
	if l.MaxScale <= 0 {
		l.MaxScale = d.MaxScale
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	Seed      string   `json:"seed"`
	GridSize  int      `json:"grid_size,omitempty"`
	BlockSize int      `json:"block_size,omitempty"`
	Algorithm string   `json:"algorithm,omitempty"`
	Formats   []string `json:"formats,omitempty"`
	Scale     int      `json:"scale,omitempty"`
	Base64    bool     `json:"base64,omitempty"`
	Refresh   bool     `json:"refresh,omitempty"`
	Limits    Limits   `json:"limits"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Seed is the 32-bit value derived from the seed string.
	Seed uint32

	// Quilt is the rendered grid with its provenance.
	Quilt *sink.Quilt

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	// Keys contains the artifact cache key per format.
	Keys map[string]string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Width      int
	Height     int
	RenderTime time.Duration
	EncodeTime time.Duration
}

// CacheInfo tracks artifact cache hits.
type CacheInfo struct {
	Hit  bool            // every format came from cache
	Hits map[string]bool // per format
}

// DefaultOptions returns options for DefaultSalt with every default applied.
func DefaultOptions() Options {
	o := Options{Seed: quilt.DefaultSalt}
	_ = o.ValidateAndSetDefaults()
	return o
}

// ValidateAndSetDefaults checks the request and fills in defaults.
//
// Zero sizes mean "default" here; the generator's own degenerate zero-size
// quilt stays reachable through pkg/quilt. The method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateSeed(o.Seed); err != nil {
		return err
	}

	o.Limits.setDefaults()
	if o.GridSize == 0 {
		o.GridSize = quilt.DefaultGridSize
	}
	if o.BlockSize == 0 {
		o.BlockSize = quilt.DefaultBlockSize
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.Algorithm == "" {
		o.Algorithm = string(prng.Default)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{sink.DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := prng.Validate(prng.Algorithm(o.Algorithm)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidAlgorithm, err, "algorithm %q", o.Algorithm)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateSizes(o.GridSize, o.BlockSize, o.Limits.MaxGridSize, o.Limits.MaxBlockSize, o.Limits.MaxSide); err != nil {
		return err
	}
	if o.Scale < 0 || o.Scale > o.Limits.MaxScale {
		return errors.New(errors.ErrCodeInvalidSize, "scale must be between 1 and %d", o.Limits.MaxScale)
	}
	if side := o.GridSize * o.BlockSize; side > o.Limits.MaxSide/o.Scale {
		return errors.New(errors.ErrCodeInvalidSize, "scaled image side %d×%d exceeds limit %d px", side, o.Scale, o.Limits.MaxSide)
	}

	o.validated = true
	return nil
}

// ValidateFormats checks that every format is known and requested once.
func ValidateFormats(formats []string) error {
	seen := make(map[string]bool, len(formats))
	for _, f := range formats {
		if err := sink.ValidateFormat(f); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "format %q", f)
		}
		if seen[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "format %q requested twice", f)
		}
		seen[f] = true
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Generator builds the quilt generator described by o.
func (o *Options) Generator() (*quilt.Generator, error) {
	if err := o.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return quilt.New(o.Seed,
		quilt.WithGridSize(o.GridSize),
		quilt.WithBlockSize(o.BlockSize),
		quilt.WithAlgorithm(prng.Algorithm(o.Algorithm)),
	)
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Salt:      o.Seed,
		GridSize:  o.GridSize,
		BlockSize: o.BlockSize,
		Algorithm: o.Algorithm,
		Scale:     o.Scale,
		Format:    format,
	}
}
