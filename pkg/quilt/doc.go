// Package quilt derives deterministic identicon images from text seeds.
//
// # Overview
//
// A quilt is a square grid of flat-coloured cells. The colours depend only on
// a seed string, the grid size and the shuffle algorithm, so the same input
// always yields the same image and no image ever needs to be stored.
//
// # Pipeline
//
// Rendering runs five pure steps:
//
//  1. [DeriveSeed]: SHA-1 of the seed string, first 32 bits
//  2. [ExpandTokens]: SHA-1 of the decimal seed, repeated and cut into hex byte tokens
//  3. [Shuffle]: Fisher-Yates permutation driven by a generator seeded with the seed
//  4. [AssembleColors]: consecutive token triples become RRGGBB colours
//  5. [Rasterize]: colours fill block-sized squares in column-major order
//
// The same integer seed drives steps 2 and 3.
//
// # Usage
//
//	g := quilt.Default() // seed "NaCl", 5x5 grid, 50px blocks
//	g.SetGridSize(8)
//	buf := g.Render()    // 400x400 RGB buffer
//	img := buf.ToImage() // hand to an encoder
//
// Encoding, files and HTTP live in [github.com/matzehuels/quilt/pkg/sink] and
// friends; this package never performs I/O.
//
// # Concurrency
//
// A [Generator] is cheap and holds only its seed and configuration. Render
// creates its own random generator on every call, so repeated renders never
// influence each other. Do not change the configuration of a Generator while
// another goroutine is rendering with it.
package quilt
