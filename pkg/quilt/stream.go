package quilt

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"strings"
)

const (
	// digestHexLen is the length of one hex-encoded SHA-1 digest.
	digestHexLen = 2 * sha1.Size

	// hexPerColor is the number of hex digits in one RRGGBB colour.
	hexPerColor = 6
)

// Token is one byte written as two lowercase hex digits.
type Token string

// ExpandTokens returns exactly 3*gridSize² tokens for seed.
//
// The byte source is SHA-1 of the seed's decimal representation, repeated
// as often as needed and cut to length. A gridSize of 0 returns an empty
// slice.
func ExpandTokens(seed uint32, gridSize int) []Token {
	needed := gridSize * gridSize * hexPerColor
	if needed <= 0 {
		return []Token{}
	}
	repeat := (needed + digestHexLen - 1) / digestHexLen

	sum := sha1.Sum([]byte(strconv.FormatUint(uint64(seed), 10)))
	stream := strings.Repeat(hex.EncodeToString(sum[:]), repeat)[:needed]

	tokens := make([]Token, 0, needed/2)
	for i := 0; i < needed; i += 2 {
		tokens = append(tokens, Token(stream[i:i+2]))
	}
	return tokens
}
