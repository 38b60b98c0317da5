// Package prng provides the seeded pseudo-random generators used to shuffle
// quilt tokens.
//
// Every generator is created from a 32-bit seed and owns its state. Nothing in
// this package touches a process-wide source, so two generators built from
// the same seed always produce the same sequence regardless of what else the
// process is doing.
//
// # Algorithms
//
//   - [MT19937]: the 32-bit Mersenne Twister with reference seeding. Its
//     IntN uses rejection sampling on raw 32-bit outputs, which matches the
//     quilts produced by earlier deployments bit for bit. This is the default.
//   - [PCG]: math/rand/v2's PCG generator. Faster to seed, but quilts differ
//     from the MT19937 ones.
//
// Usage:
//
//	r, err := prng.New(prng.MT19937, seed)
//	j := r.IntN(i + 1)
package prng

import (
	"fmt"
	"math/rand/v2"
)

// Algorithm names a seeded generator.
type Algorithm string

const (
	MT19937 Algorithm = "mt19937"
	PCG     Algorithm = "pcg"
)

// Default is the algorithm used when none is configured.
const Default = MT19937

// ValidAlgorithms is the set of supported algorithms.
var ValidAlgorithms = map[Algorithm]bool{
	MT19937: true,
	PCG:     true,
}

// Rand draws uniformly distributed integers.
type Rand interface {
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// Validate checks that a is a supported algorithm.
func Validate(a Algorithm) error {
	if !ValidAlgorithms[a] {
		return fmt.Errorf("invalid algorithm: %q (must be one of: mt19937, pcg)", a)
	}
	return nil
}

// New returns a freshly seeded generator for the given algorithm.
func New(a Algorithm, seed uint32) (Rand, error) {
	switch a {
	case MT19937:
		return NewMT19937(seed), nil
	case PCG:
		return NewPCG(seed), nil
	default:
		return nil, Validate(a)
	}
}

// NewPCG returns a math/rand/v2 PCG generator seeded from seed.
func NewPCG(seed uint32) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0xdeadbeef))
}
