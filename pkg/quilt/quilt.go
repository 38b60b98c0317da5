package quilt

import (
	"github.com/matzehuels/quilt/pkg/prng"
)

const (
	// DefaultSalt is the seed string used by Default.
	DefaultSalt = "NaCl"

	// DefaultGridSize is the number of cells per side.
	DefaultGridSize = 5

	// DefaultBlockSize is the side of one cell in pixels.
	DefaultBlockSize = 50

	// MaxGridSize is the upper clamp applied by SetGridSize.
	MaxGridSize = 100
)

// Generator renders the quilt for one seed string.
type Generator struct {
	salt      string
	seed      uint32
	gridSize  int
	blockSize int
	algorithm prng.Algorithm
}

// Option configures a Generator at construction time.
type Option func(*Generator) error

// WithGridSize sets the grid size using the same normalisation as SetGridSize.
func WithGridSize(n int) Option {
	return func(g *Generator) error { g.SetGridSize(n); return nil }
}

// WithBlockSize sets the block size using the same normalisation as SetBlockSize.
func WithBlockSize(n int) Option {
	return func(g *Generator) error { g.SetBlockSize(n); return nil }
}

// WithAlgorithm selects the shuffle generator. Unknown algorithms fail New.
func WithAlgorithm(a prng.Algorithm) Option {
	return func(g *Generator) error {
		if err := prng.Validate(a); err != nil {
			return err
		}
		g.algorithm = a
		return nil
	}
}

// New creates a generator for salt. Any string, including "", is a valid salt.
func New(salt string, opts ...Option) (*Generator, error) {
	g := &Generator{
		salt:      salt,
		seed:      DeriveSeed(salt),
		gridSize:  DefaultGridSize,
		blockSize: DefaultBlockSize,
		algorithm: prng.Default,
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Default returns a generator for DefaultSalt with default sizes.
func Default() *Generator {
	g, _ := New(DefaultSalt)
	return g
}

// SetGridSize clamps n to at most MaxGridSize and stores its absolute value.
// The clamp runs first, so -150 becomes 150.
func (g *Generator) SetGridSize(n int) {
	if n > MaxGridSize {
		n = MaxGridSize
	}
	g.gridSize = abs(n)
}

// SetBlockSize stores the absolute value of n.
func (g *Generator) SetBlockSize(n int) {
	g.blockSize = abs(n)
}

func (g *Generator) Salt() string              { return g.salt }
func (g *Generator) Seed() uint32              { return g.seed }
func (g *Generator) GridSize() int             { return g.gridSize }
func (g *Generator) BlockSize() int            { return g.blockSize }
func (g *Generator) Algorithm() prng.Algorithm { return g.algorithm }
func (g *Generator) Side() int                 { return g.gridSize * g.blockSize }

// Colors returns the gridSize² colours in placement order.
func (g *Generator) Colors() []Color {
	tokens := ExpandTokens(g.seed, g.gridSize)
	rng, err := prng.New(g.algorithm, g.seed)
	if err != nil {
		// algorithm is validated by WithAlgorithm
		panic(err)
	}
	return AssembleColors(Shuffle(tokens, rng))
}

// Grid returns the colour grid for the current configuration.
func (g *Generator) Grid() Grid {
	return Grid{Size: g.gridSize, Colors: g.Colors()}
}

// Render runs the full pipeline and returns a fresh pixel buffer.
//
// The buffer holds (gridSize*blockSize)² pixels; callers exposing Render to
// untrusted input should bound both sizes first. Sizes whose buffer would
// overflow int panic with ErrRasterTooLarge.
func (g *Generator) Render() *PixelBuffer {
	return Rasterize(g.Grid(), g.blockSize)
}

// abs returns |n|. math.MinInt has no positive counterpart and maps to 0.
func abs(n int) int {
	if n < 0 {
		n = -n
	}
	if n < 0 {
		return 0
	}
	return n
}
