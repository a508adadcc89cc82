package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/moodcanvas/moodcanvas/pkg/cache"
	"github.com/moodcanvas/moodcanvas/pkg/field"
	"github.com/moodcanvas/moodcanvas/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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
	}
}

// Execute runs the complete derive → trace → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Derive
	deriveStart := time.Now()
	d, paletteHit, err := r.DeriveWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("derive: %w", err)
	}
	result.Derivation = d
	result.Stats.DeriveTime = time.Since(deriveStart)
	result.CacheInfo.PaletteHit = paletteHit

	// Compute derivation hash for cache keys and API responses
	if data, err := MarshalDerivation(d); err == nil {
		result.PaletteHash = cache.Hash(data)
	}

	opts.Logger.Info("derived palette",
		"colors", len(d.Palette),
		"dominant", string(d.Dominant),
		"duration", result.Stats.DeriveTime)

	// Stage 2: Trace (flow mode only)
	contentHash := result.PaletteHash
	if opts.IsFlow() {
		traceStart := time.Now()
		traces, traceHit, err := r.TraceWithCacheInfo(ctx, d, result.PaletteHash, opts)
		if err != nil {
			return nil, fmt.Errorf("trace: %w", err)
		}
		result.Traces = traces
		result.Stats.TraceTime = time.Since(traceStart)
		result.Stats.PointCount = TotalPoints(traces)
		result.CacheInfo.TraceHit = traceHit

		if data, err := MarshalTraces(traces); err == nil {
			contentHash = cache.Hash(data)
		}

		opts.Logger.Info("traced particles",
			"particles", len(traces),
			"points", result.Stats.PointCount,
			"duration", result.Stats.TraceTime)
	}

	// Stage 3: Render
	renderStart := time.Now()
	png, renderHit, err := r.RenderWithCacheInfo(ctx, d, result.Traces, contentHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.PNG = png
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.PNGBytes = len(png)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered output",
		"mode", opts.Mode,
		"bytes", len(png),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// DeriveWithCacheInfo derives palette and weights with caching and
// returns cache hit info.
func (r *Runner) DeriveWithCacheInfo(ctx context.Context, opts Options) (Derivation, bool, error) {
	if err := opts.ValidateForDerive(); err != nil {
		return Derivation{}, false, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnDeriveStart(ctx, opts.Prompt, opts.Scheme)

	cacheKey := r.Keyer.PaletteKey(opts.Prompt, opts.PaletteKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if d, err := UnmarshalDerivation(data); err == nil {
				opts.Logger.Debug("palette cache hit", "key", cacheKey)
				observability.Cache().OnCacheHit(ctx, "palette")
				observability.Pipeline().OnDeriveComplete(ctx, opts.Prompt, opts.Scheme, len(d.Palette), time.Since(start), nil)
				return d, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "palette")
	}

	d := Derive(opts)

	// Cache the result
	if !opts.Refresh {
		if data, err := MarshalDerivation(d); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLPalette)
			observability.Cache().OnCacheSet(ctx, "palette", len(data))
		}
	}

	observability.Pipeline().OnDeriveComplete(ctx, opts.Prompt, opts.Scheme, len(d.Palette), time.Since(start), nil)
	return d, false, nil // Cache miss
}

// Derive is a convenience wrapper that calls DeriveWithCacheInfo and discards the cache hit info.
func (r *Runner) Derive(ctx context.Context, opts Options) (Derivation, error) {
	d, _, err := r.DeriveWithCacheInfo(ctx, opts)
	return d, err
}

// TraceWithCacheInfo integrates particles with caching and returns cache
// hit info. paletteHash is the content hash of the derivation; it folds
// the prompt and palette configuration into the trace key.
func (r *Runner) TraceWithCacheInfo(ctx context.Context, d Derivation, paletteHash string, opts Options) ([]field.Trace, bool, error) {
	if err := opts.ValidateForTrace(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnTraceStart(ctx, opts.Particles, opts.Steps)

	cacheKey := r.Keyer.TraceKey(paletteHash, opts.TraceKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if traces, err := UnmarshalTraces(data); err == nil {
				opts.Logger.Debug("trace cache hit", "key", cacheKey)
				observability.Cache().OnCacheHit(ctx, "trace")
				observability.Pipeline().OnTraceComplete(ctx, opts.Particles, opts.Steps, TotalPoints(traces), time.Since(start), nil)
				return traces, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "trace")
	}

	traces := Trace(d, opts)

	if !opts.Refresh {
		if data, err := MarshalTraces(traces); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLTrace)
			observability.Cache().OnCacheSet(ctx, "trace", len(data))
		}
	}

	observability.Pipeline().OnTraceComplete(ctx, opts.Particles, opts.Steps, TotalPoints(traces), time.Since(start), nil)
	return traces, false, nil // Cache miss
}

// Trace is a convenience wrapper that derives the trace key hash itself
// and discards the cache hit info.
func (r *Runner) Trace(ctx context.Context, d Derivation, opts Options) ([]field.Trace, error) {
	data, err := MarshalDerivation(d)
	if err != nil {
		return nil, err
	}
	traces, _, err := r.TraceWithCacheInfo(ctx, d, cache.Hash(data), opts)
	return traces, err
}

// RenderWithCacheInfo renders the PNG with caching and returns cache hit
// info. contentHash identifies the render input: the trace hash in flow
// mode, the derivation hash in emotion mode.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d Derivation, traces []field.Trace, contentHash string, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Mode)

	cacheKey := r.Keyer.ArtifactKey(contentHash, opts.ArtifactKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			opts.Logger.Debug("artifact cache hit", "key", cacheKey)
			observability.Cache().OnCacheHit(ctx, "artifact")
			observability.Pipeline().OnRenderComplete(ctx, opts.Mode, len(data), time.Since(start), nil)
			return data, true, nil // Cache hit
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	png, err := Render(d, traces, opts)
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, opts.Mode, 0, time.Since(start), err)
		return nil, false, err
	}

	if !opts.Refresh {
		_ = r.Cache.Set(ctx, cacheKey, png, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(png))
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Mode, len(png), time.Since(start), nil)
	return png, false, nil // Cache miss
}

// Render is a convenience wrapper that derives the content hash itself
// and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, d Derivation, traces []field.Trace, opts Options) ([]byte, error) {
	var contentHash string
	if len(traces) > 0 {
		data, err := MarshalTraces(traces)
		if err != nil {
			return nil, err
		}
		contentHash = cache.Hash(data)
	} else {
		data, err := MarshalDerivation(d)
		if err != nil {
			return nil, err
		}
		contentHash = cache.Hash(data)
	}
	png, _, err := r.RenderWithCacheInfo(ctx, d, traces, contentHash, opts)
	return png, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
