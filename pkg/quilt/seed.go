package quilt

import (
	"crypto/sha1"
	"encoding/binary"
)

// DeriveSeed maps s to the 32-bit seed that anchors every later step.
//
// The seed is the first 8 hex digits of SHA-1(s), i.e. the first four digest
// bytes read big-endian.
func DeriveSeed(s string) uint32 {
	sum := sha1.Sum([]byte(s))
	return binary.BigEndian.Uint32(sum[:4])
}
