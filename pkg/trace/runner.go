package trace

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stepviz/pkg/cache"
	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/observability"
)

// DefaultTTL is how long recorded traces stay cached. Producers are
// deterministic, so entries only go stale when a producer changes.
const DefaultTTL = 7 * 24 * time.Hour

// Runner records traces through a cache. The CLI and the API share it.
//
// A Runner holds no per-run state, so one instance may serve concurrent
// callers as long as its Cache does.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Limits catalog.Limits
	TTL    time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// [cache.DefaultKeyer] and a nil logger uses the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Limits: catalog.DefaultLimits(),
		TTL:    DefaultTTL,
	}
}

// Run returns the trace for one run and whether it came from the cache.
// Input is validated before the cache is consulted, so invalid input never
// produces a cache entry or a hit. Cache failures are logged and ignored.
func (r *Runner) Run(ctx context.Context, d *catalog.Descriptor, in catalog.Input, p catalog.Params) (*Trace, bool, error) {
	if err := d.Check(in, p, r.Limits); err != nil {
		return nil, false, err
	}
	if len(p) == 0 {
		p = nil
	}
	key := r.Keyer.TraceKey(d.ID, in, p)
	hooks := observability.Cache()

	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("trace cache read failed", "algorithm", d.ID, "error", err)
	}
	if hit {
		if t, err := Unmarshal(data); err == nil {
			hooks.OnCacheHit(ctx, "trace")
			r.Logger.Debug("trace cache hit", "algorithm", d.ID, "events", t.Len())
			t.Key = key
			return t, true, nil
		}
		r.Logger.Warn("discarding undecodable cache entry", "algorithm", d.ID)
	}
	hooks.OnCacheMiss(ctx, "trace")

	start := time.Now()
	t, err := Record(ctx, d, in, p, r.Limits)
	if err != nil {
		return nil, false, err
	}
	t.Key = key
	r.Logger.Debug("recorded trace", "algorithm", d.ID, "events", t.Len(), "duration", time.Since(start))

	if data, err := Marshal(t); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("trace cache write failed", "algorithm", d.ID, "error", err)
		} else {
			hooks.OnCacheSet(ctx, "trace", len(data))
		}
	}
	return t, false, nil
}

// Artifact returns a cached rendering of one trace step, calling build on a
// miss. format distinguishes renderings of the same step.
func (r *Runner) Artifact(ctx context.Context, t *Trace, step int, format string, build func() ([]byte, error)) ([]byte, bool, error) {
	if t.Key == "" {
		data, err := build()
		return data, false, err
	}
	key := r.Keyer.RenderKey(t.Key, step, format)
	hooks := observability.Cache()

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		hooks.OnCacheHit(ctx, "render")
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, "render")

	data, err := build()
	if err != nil {
		return nil, false, fmt.Errorf("render step %d: %w", step, err)
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err == nil {
		hooks.OnCacheSet(ctx, "render", len(data))
	}
	return data, false, nil
}
