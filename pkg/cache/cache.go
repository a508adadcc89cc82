// Package cache provides caching for the MoodCanvas render pipeline.
//
// The pipeline caches the result of each stage separately so that
// changing a render-only knob (say, stroke width) never forces a
// re-derivation of the palette, and changing the prompt invalidates
// everything downstream:
//
//   - Palette: derived colors and seed for a prompt
//   - Trace: particle traces for a field/particle configuration
//   - Artifact: encoded PNG bytes
//
// Keys are content-addressed: every key embeds a SHA-256 hash of the
// inputs that influence the stage, so identical inputs always map to
// the same entry regardless of process or host.
//
// # Backends
//
//   - FileCache: directory-backed, used by the CLI (~/.cache/moodcanvas/)
//   - RedisCache: shared cache for server deployments
//   - NullCache: disables caching (--no-cache, tests)
package cache

import (
	"context"
	"time"
)

// TTLs for the different cache entry types.
//
// Palette and trace derivation are pure functions of their inputs, so
// the TTLs exist only to bound disk usage, not for correctness.
const (
	// TTLPalette is the lifetime of derived palette entries.
	TTLPalette = 30 * 24 * time.Hour

	// TTLTrace is the lifetime of particle trace entries.
	TTLTrace = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of rendered artifact entries.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether
	// the key was present (a miss is not an error).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// PaletteKeyOpts are the options that influence palette derivation.
type PaletteKeyOpts struct {
	Size   int    `json:"size"`
	Scheme string `json:"scheme"`

	// Lexicon is the fingerprint of the emotion lexicon used for
	// scoring. Derivations made with different lexicons must never
	// share a cache entry.
	Lexicon string `json:"lexicon,omitempty"`
}

// TraceKeyOpts are the options that influence particle tracing.
type TraceKeyOpts struct {
	Seed      int64   `json:"seed"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Particles int     `json:"particles"`
	Steps     int     `json:"steps"`
	StepLen   float64 `json:"step_len"`
	Scale     float64 `json:"scale"`
	Twist     float64 `json:"twist"`
	Bounds    string  `json:"bounds"`
}

// ArtifactKeyOpts are the options that influence final rendering.
type ArtifactKeyOpts struct {
	Mode        string  `json:"mode"`
	StrokeWidth float64 `json:"stroke_width"`
	StrokeAlpha int     `json:"stroke_alpha"`
	Blur        float64 `json:"blur"`
	Density     float64 `json:"density"`
	Background  string  `json:"background"`

	// Visuals is the fingerprint of the emotion visual table; it keeps
	// artifacts rendered with different tables on separate entries.
	Visuals string `json:"visuals,omitempty"`
}

// Keyer generates cache keys for the pipeline stages.
// Implementations must be deterministic: the same inputs always
// produce the same key.
type Keyer interface {
	// PaletteKey generates a key for palette derivation results.
	PaletteKey(prompt string, opts PaletteKeyOpts) string

	// TraceKey generates a key for particle traces. paletteHash is the
	// content hash of the derived palette, which already folds in the
	// prompt.
	TraceKey(paletteHash string, opts TraceKeyOpts) string

	// ArtifactKey generates a key for rendered artifacts. traceHash is
	// the content hash of the traces (or, for emotion renders, of the
	// score vector).
	ArtifactKey(traceHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PaletteKey generates a key for palette derivation results.
func (k *DefaultKeyer) PaletteKey(prompt string, opts PaletteKeyOpts) string {
	return hashKey("palette", prompt, opts)
}

// TraceKey generates a key for particle trace results.
func (k *DefaultKeyer) TraceKey(paletteHash string, opts TraceKeyOpts) string {
	return hashKey("trace", paletteHash, opts)
}

// ArtifactKey generates a key for rendered artifacts.
func (k *DefaultKeyer) ArtifactKey(traceHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", traceHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
