package errors

import (
	"strings"
	"unicode"
)

// MaxSeedLength bounds seed strings accepted from the CLI and HTTP server.
const MaxSeedLength = 1024

// ValidateSeed validates a seed string received from outside the process.
//
// The generator itself accepts any string, including the empty one. Outer
// surfaces only reject what cannot travel safely through URLs, file names
// and logs:
//   - Maximum length of MaxSeedLength bytes
//   - No null bytes
func ValidateSeed(seed string) error {
	if len(seed) > MaxSeedLength {
		return New(ErrCodeInvalidSeed, "seed too long (max %d bytes)", MaxSeedLength)
	}
	if strings.ContainsRune(seed, '\x00') {
		return New(ErrCodeInvalidSeed, "seed contains a null byte")
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is about to write.
// "-" (stdout) is accepted.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateSizes checks grid and block sizes against outer-surface limits.
// A limit of 0 disables that check. Negative sizes are rejected here even
// though the generator would normalise them, so API users see their mistake.
func ValidateSizes(grid, block, maxGrid, maxBlock, maxSide int) error {
	if grid < 0 || block < 0 {
		return New(ErrCodeInvalidSize, "grid and block sizes must not be negative")
	}
	if maxGrid > 0 && grid > maxGrid {
		return New(ErrCodeInvalidSize, "grid size %d exceeds limit %d", grid, maxGrid)
	}
	if maxBlock > 0 && block > maxBlock {
		return New(ErrCodeInvalidSize, "block size %d exceeds limit %d", block, maxBlock)
	}
	if maxSide > 0 && block > 0 && grid > maxSide/block {
		return New(ErrCodeInvalidSize, "image side %d×%d exceeds limit %d px", grid, block, maxSide)
	}
	return nil
}
