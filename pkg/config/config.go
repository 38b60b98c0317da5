// Package config loads quilt's TOML configuration file.
//
// The file is optional. Every field has a default, and a missing file is the
// same as an empty one. Unknown keys are rejected so typos surface early.
//
// Example:
//
//	[render]
//	grid_size = 8
//	formats   = ["png", "svg"]
//
//	[cache]
//	backend = "redis"
//	ttl     = "720h"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr     = ":8080"
//	max_side = 4096
package config

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/quilt/pkg/cache"
	"github.com/matzehuels/quilt/pkg/errors"
	"github.com/matzehuels/quilt/pkg/pipeline"
	"github.com/matzehuels/quilt/pkg/prng"
	"github.com/matzehuels/quilt/pkg/quilt"
	"github.com/matzehuels/quilt/pkg/sink"
)

const (
	appName  = "quilt"
	fileName = "config.toml"
)

// Config is the root of the configuration file.
type Config struct {
	Render Render `toml:"render"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Render holds the defaults for new renders.
type Render struct {
	GridSize  int      `toml:"grid_size"`
	BlockSize int      `toml:"block_size"`
	Algorithm string   `toml:"algorithm"`
	Formats   []string `toml:"formats"`
	Scale     int      `toml:"scale"`
}

// Cache selects the artifact cache backend.
type Cache struct {
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir,omitempty"`
	TTL     Duration `toml:"ttl"`
	Redis   Redis    `toml:"redis"`
}

// Redis configures the redis cache backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password,omitempty"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Server configures `quilt serve`.
type Server struct {
	Addr           string   `toml:"addr"`
	RequestTimeout Duration `toml:"request_timeout"`
	MaxGridSize    int      `toml:"max_grid_size"`
	MaxBlockSize   int      `toml:"max_block_size"`
	MaxSide        int      `toml:"max_side"`
	MaxScale       int      `toml:"max_scale"`
}

// Duration is a time.Duration written as a Go duration string ("30s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	limits := pipeline.DefaultLimits()
	return Config{
		Render: Render{
			GridSize:  quilt.DefaultGridSize,
			BlockSize: quilt.DefaultBlockSize,
			Algorithm: string(prng.Default),
			Formats:   []string{sink.DefaultFormat},
			Scale:     1,
		},
		Cache: Cache{
			Backend: cache.BackendFile,
			TTL:     Duration{cache.TTLArtifact},
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: "quilt:",
			},
		},
		Server: Server{
			Addr:           ":8080",
			RequestTimeout: Duration{10 * time.Second},
			MaxGridSize:    limits.MaxGridSize,
			MaxBlockSize:   limits.MaxBlockSize,
			MaxSide:        limits.MaxSide,
			MaxScale:       limits.MaxScale,
		},
	}
}

// Path returns the default config file location:
// $XDG_CONFIG_HOME/quilt/config.toml, else ~/.config/quilt/config.toml.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// CacheDir returns the default file cache location:
// $XDG_CACHE_HOME/quilt, else ~/.cache/quilt.
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads path over the defaults. An empty path means Path(); a missing
// file at the default location is not an error, but an explicit path must
// exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	defer f.Close()

	cfg, err = Decode(f)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Decode parses TOML from r over the defaults.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes cfg as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if err := prng.Validate(prng.Algorithm(c.Render.Algorithm)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.algorithm")
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.formats")
	}
	if c.Render.GridSize < 0 || c.Render.BlockSize < 0 || c.Render.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render sizes must not be negative")
	}

	switch c.Cache.Backend {
	case "", cache.BackendNone, cache.BackendFile:
	case cache.BackendRedis:
		if c.Cache.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis.addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend: unknown backend %q (must be one of: none, file, redis)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}

	s := c.Server
	if s.MaxGridSize < 0 || s.MaxBlockSize < 0 || s.MaxSide < 0 || s.MaxScale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server limits must not be negative")
	}
	if s.RequestTimeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.request_timeout must not be negative")
	}
	return nil
}

// Limits returns the server's request limits.
func (c Config) Limits() pipeline.Limits {
	return pipeline.Limits{
		MaxGridSize:  c.Server.MaxGridSize,
		MaxBlockSize: c.Server.MaxBlockSize,
		MaxSide:      c.Server.MaxSide,
		MaxScale:     c.Server.MaxScale,
	}
}

// Options returns pipeline options for seed using the render defaults.
func (c Config) Options(seed string) pipeline.Options {
	return pipeline.Options{
		Seed:      seed,
		GridSize:  c.Render.GridSize,
		BlockSize: c.Render.BlockSize,
		Algorithm: c.Render.Algorithm,
		Formats:   append([]string(nil), c.Render.Formats...),
		Scale:     c.Render.Scale,
	}
}

// OpenCache opens the configured cache backend. The file backend falls back
// to CacheDir when no directory is configured. Failures carry
// ErrCodeCacheUnavailable.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	dir := c.Cache.Dir
	if c.Cache.Backend == cache.BackendFile && dir == "" {
		d, err := CacheDir()
		if err != nil {
			return nil, fmt.Errorf("locate cache dir: %w", err)
		}
		dir = d
	}
	ch, err := cache.Open(ctx, cache.Config{
		Backend: c.Cache.Backend,
		Dir:     dir,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		},
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCacheUnavailable, err, "open %s cache", c.Cache.Backend)
	}
	return ch, nil
}

// Keyer returns the cache keyer, scoped by the redis prefix when the redis
// backend is selected.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Backend == cache.BackendRedis && c.Cache.Redis.Prefix != "" {
		return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Cache.Redis.Prefix)
	}
	return cache.NewDefaultKeyer()
}
