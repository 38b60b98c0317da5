package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/quilt/pkg/cache"
	"github.com/matzehuels/quilt/pkg/errors"
	"github.com/matzehuels/quilt/pkg/observability"
	"github.com/matzehuels/quilt/pkg/sink"
)

const artifactKeyType = "artifact"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL applies to cached artifacts. Zero uses cache.TTLArtifact.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLArtifact,
	}
}

// Execute renders the quilt described by opts and encodes every requested
// format. Cache failures are logged and never fail the run.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	gen, err := opts.Generator()
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Seed, opts.GridSize)
	renderStart := time.Now()
	q := sink.FromGenerator(gen)
	renderTime := time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Seed, opts.GridSize, renderTime)

	side := q.Side() * opts.Scale
	result := &Result{
		Seed:      gen.Seed(),
		Quilt:     q,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		Keys:      make(map[string]string, len(opts.Formats)),
		Stats: Stats{
			Width:      side,
			Height:     side,
			RenderTime: renderTime,
		},
		CacheInfo: CacheInfo{Hit: true, Hits: make(map[string]bool, len(opts.Formats))},
	}

	logger.Debug("rendered grid",
		"seed", gen.Seed(),
		"grid", opts.GridSize,
		"algorithm", opts.Algorithm,
		"duration", renderTime)

	encodeStart := time.Now()
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		key := r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format))
		result.Keys[format] = key

		data, hit := r.lookup(ctx, logger, key, opts.Refresh)
		if !hit {
			data, err = r.encode(ctx, q, format, opts.Scale)
			if err != nil {
				return nil, err
			}
			r.store(ctx, logger, key, data)
		}

		result.CacheInfo.Hits[format] = hit
		result.CacheInfo.Hit = result.CacheInfo.Hit && hit

		if opts.Base64 {
			data = sink.EncodeBase64(data)
		}
		result.Artifacts[format] = data
	}
	result.Stats.EncodeTime = time.Since(encodeStart)

	logger.Info("rendered quilt",
		"seed", opts.Seed,
		"formats", opts.Formats,
		"size", fmt.Sprintf("%dx%d", side, side),
		"cached", result.CacheInfo.Hit,
		"duration", renderTime+result.Stats.EncodeTime)

	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) lookup(ctx context.Context, logger *log.Logger, key string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "key", key, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, artifactKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, artifactKeyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, logger *log.Logger, key string, data []byte) {
	ttl := r.TTL
	if ttl == 0 {
		ttl = cache.TTLArtifact
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, artifactKeyType, len(data))
}

func (r *Runner) encode(ctx context.Context, q *sink.Quilt, format string, scale int) ([]byte, error) {
	start := time.Now()
	data, err := sink.Render(q, format, sink.WithScale(scale))
	observability.Pipeline().OnEncodeComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
	}
	return data, nil
}
