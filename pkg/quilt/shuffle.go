package quilt

import (
	"slices"

	"github.com/matzehuels/quilt/pkg/prng"
)

// Shuffle returns a permutation of tokens driven by rng.
//
// It walks from the last index down to 1, swapping position i with a
// uniformly drawn j in [0, i]. The input slice is left untouched. The same
// tokens and an identically seeded rng always give the same result.
func Shuffle[T any](items []T, rng prng.Rand) []T {
	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
