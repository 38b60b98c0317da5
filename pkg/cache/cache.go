// Package cache stores rendered quilt artifacts.
//
// Quilts are pure functions of their inputs, so an encoded artifact never
// goes stale; the TTL only bounds storage. Three backends implement [Cache]:
//
//   - [NullCache]: stores nothing (caching disabled)
//   - [FileCache]: JSON entries under a directory, for the CLI
//   - [RedisCache]: shared cache for server deployments
//
// Keys come from a [Keyer], so the same request maps to the same key in every
// backend and every process.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	// TTLArtifact is how long encoded artifacts are kept.
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts are the inputs that determine an artifact's bytes.
type ArtifactKeyOpts struct {
	Salt      string `json:"salt"`
	GridSize  int    `json:"grid_size"`
	BlockSize int    `json:"block_size"`
	Algorithm string `json:"algorithm"`
	Scale     int    `json:"scale"`
	Format    string `json:"format"`
}

// Keyer builds cache keys.
type Keyer interface {
	ArtifactKey(opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key options into "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey generates a key for an encoded artifact.
func (DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return hashKey("artifact", opts)
}
