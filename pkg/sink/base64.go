package sink

import "encoding/base64"

// EncodeBase64 returns data as standard, padded base64 text.
func EncodeBase64(data []byte) []byte {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(data)))
	base64.StdEncoding.Encode(out, data)
	return out
}
