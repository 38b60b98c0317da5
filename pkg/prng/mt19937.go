package prng

import "math"

const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
)

// MT19937Source is a 32-bit Mersenne Twister.
//
// It is not safe for concurrent use. It also satisfies math/rand/v2.Source.
type MT19937Source struct {
	state [mtN]uint32
	index int
}

// NewMT19937 returns a Mersenne Twister seeded with the reference
// init_genrand routine.
func NewMT19937(seed uint32) *MT19937Source {
	m := &MT19937Source{}
	m.Seed(seed)
	return m
}

// Seed resets the generator state.
func (m *MT19937Source) Seed(seed uint32) {
	m.state[0] = seed
	for i := 1; i < mtN; i++ {
		prev := m.state[i-1]
		m.state[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	m.index = mtN
}

// Uint32 returns the next tempered 32-bit output.
func (m *MT19937Source) Uint32() uint32 {
	if m.index >= mtN {
		m.twist()
	}
	y := m.state[m.index]
	m.index++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Uint64 combines two consecutive 32-bit outputs, high word first.
func (m *MT19937Source) Uint64() uint64 {
	hi := uint64(m.Uint32())
	return hi<<32 | uint64(m.Uint32())
}

// IntN returns a uniform value in [0, n).
//
// Raw outputs above the largest multiple of n are rejected and redrawn so the
// result is unbiased; a power-of-two n never redraws.
func (m *MT19937Source) IntN(n int) int {
	if n <= 0 {
		panic("prng: invalid argument to IntN")
	}
	if uint64(n-1) > math.MaxUint32 {
		panic("prng: IntN argument exceeds 32-bit range")
	}
	return int(m.uint32n(uint32(n - 1)))
}

// uint32n returns a value in [0, umax].
func (m *MT19937Source) uint32n(umax uint32) uint32 {
	result := m.Uint32()
	if umax == math.MaxUint32 {
		return result
	}
	umax++
	if umax&(umax-1) != 0 {
		limit := math.MaxUint32 - (math.MaxUint32 % umax) - 1
		for result > limit {
			result = m.Uint32()
		}
	}
	return result % umax
}

func (m *MT19937Source) twist() {
	s := &m.state
	for k := 0; k < mtN; k++ {
		y := (s[k] & mtUpperMask) | (s[(k+1)%mtN] & mtLowerMask)
		v := s[(k+mtM)%mtN] ^ (y >> 1)
		if s[(k+1)%mtN]&1 != 0 {
			v ^= mtMatrixA
		}
		s[k] = v
	}
	m.index = 0
}
