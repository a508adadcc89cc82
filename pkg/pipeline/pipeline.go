// Package pipeline provides the core rendering pipeline for MoodCanvas.
//
// This package implements the complete derive → trace → render pipeline
// that can be used by CLI, API, and TUI components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Derive: canonicalize the prompt and derive its palette, seed, and
//     emotion weights
//  2. Trace: integrate particles through the flowfield (flow mode only)
//  3. Render: draw the composition and encode it as PNG
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Prompt: "calm ocean sunrise",
//	    Mode:   pipeline.ModeFlow,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.PNG
//
// Run individual stages:
//
//	// Derive only
//	d, err := runner.Derive(ctx, opts)
//
//	// Trace with an existing derivation
//	traces, err := runner.Trace(ctx, d, opts)
//
//	// Render with existing traces
//	png, err := runner.Render(ctx, d, traces, opts)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/moodcanvas/moodcanvas/pkg/cache"
	"github.com/moodcanvas/moodcanvas/pkg/emotion"
	"github.com/moodcanvas/moodcanvas/pkg/errors"
	"github.com/moodcanvas/moodcanvas/pkg/field"
	"github.com/moodcanvas/moodcanvas/pkg/palette"
	"github.com/moodcanvas/moodcanvas/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and TUI
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 1400

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 900

	// DefaultParticles is the default number of flowfield particles.
	DefaultParticles = 1200

	// DefaultSteps is the default number of integration steps per particle.
	DefaultSteps = 450

	// DefaultStepLen is the default step length in pixels.
	DefaultStepLen = 2.2

	// DefaultScale is the default noise scale (larger values mean
	// smoother, wider curls).
	DefaultScale = 80.0

	// DefaultTwist is the default twist factor of the noise function.
	DefaultTwist = 1.3

	// DefaultSeed is the default random seed for particle placement.
	DefaultSeed = int64(123)

	// DefaultPaletteSize is the default number of palette colors.
	DefaultPaletteSize = 5

	// DefaultStrokeWidth is the default stroke width in pixels.
	DefaultStrokeWidth = 2.0

	// DefaultStrokeAlpha is the default stroke alpha (0-255). Low alpha
	// lets overlapping traces build up density.
	DefaultStrokeAlpha = 110

	// DefaultDensity is the default shape density multiplier for
	// emotion mode.
	DefaultDensity = 1.0
)

// DefaultMode is the default render mode.
const DefaultMode = ModeFlow

// DefaultScheme is the default palette scheme.
const DefaultScheme = palette.SchemeSlice

// DefaultBounds is the default particle edge policy.
const DefaultBounds = field.BoundsWrap

// DefaultBackground is the default background mode.
const DefaultBackground = render.BackgroundDark

// Mode constants for render modes.
const (
	ModeFlow    = "flow"
	ModeEmotion = "emotion"
)

// ValidModes is the set of supported render modes.
var ValidModes = map[string]bool{
	ModeFlow:    true,
	ModeEmotion: true,
}

// Hard limits. Values outside these ranges are rejected rather than
// clamped so callers notice misconfiguration instead of silently getting
// a different image.
const (
	MinDimension = 64
	MaxDimension = 4096
	MaxParticles = 20000
	MaxSteps     = 5000
	MaxStepLen   = 50.0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Derive options
	Prompt      string `json:"prompt"`
	Mode        string `json:"mode,omitempty"`
	Scheme      string `json:"scheme,omitempty"`
	PaletteSize int    `json:"palette_size,omitempty"`

	// Trace options (flow mode)
	Width     int     `json:"width,omitempty"`
	Height    int     `json:"height,omitempty"`
	Particles int     `json:"particles,omitempty"`
	Steps     int     `json:"steps,omitempty"`
	StepLen   float64 `json:"step_len,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
	Twist     float64 `json:"twist,omitempty"`
	Bounds    string  `json:"bounds,omitempty"`

	// Seed is a pointer so that seed 0 stays distinguishable from
	// "not set": nil takes DefaultSeed, an explicit zero is honored.
	Seed *int64 `json:"seed,omitempty"`

	// Render options
	StrokeWidth float64 `json:"stroke_width,omitempty"`

	// StrokeAlpha follows the same nil-versus-zero convention as Seed.
	StrokeAlpha *int    `json:"stroke_alpha,omitempty"`
	Blur        float64 `json:"blur,omitempty"`
	Density     float64 `json:"density,omitempty"` // emotion mode shape density
	Background  string  `json:"background,omitempty"`
	Refresh     bool    `json:"refresh,omitempty"` // bypass caches and recompute

	// Runtime options (not serialized)
	Logger  *log.Logger         `json:"-"`
	Lexicon emotion.Lexicon     `json:"-"` // defaults to emotion.DefaultLexicon()
	Visuals emotion.VisualTable `json:"-"` // defaults to emotion.DefaultVisuals()

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Derivation holds the derived palette, seed, and emotion weights.
	Derivation Derivation

	// PaletteHash is the content hash of the derivation.
	PaletteHash string

	// Traces are the particle traces (nil in emotion mode).
	Traces []field.Trace

	// PNG is the encoded output image.
	PNG []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	DeriveTime time.Duration
	TraceTime  time.Duration
	RenderTime time.Duration
	PointCount int
	PNGBytes   int
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PaletteHit bool // Whether the derivation came from cache
	TraceHit   bool // Whether traces came from cache
	RenderHit  bool // Whether the PNG came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateMode checks that a render mode is valid.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidMode, "invalid mode: %q (must be one of: flow, emotion)", mode)
	}
	return nil
}

// ValidateScheme checks that a palette scheme is valid.
func ValidateScheme(scheme string) error {
	if !palette.ValidScheme(palette.Scheme(scheme)) {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid scheme: %q (must be one of: slice, harmonic)", scheme)
	}
	return nil
}

// ValidateBounds checks that a bounds policy is valid.
func ValidateBounds(bounds string) error {
	if !field.ValidBounds(field.Bounds(bounds)) {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid bounds: %q (must be one of: wrap, clip)", bounds)
	}
	return nil
}

// ValidateBackground checks that a background mode is valid.
func ValidateBackground(bg string) error {
	if !render.ValidBackground(render.Background(bg)) {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid background: %q (must be one of: dark, light, palette)", bg)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times
// has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForDerive(); err != nil {
		return err
	}
	o.SetTraceDefaults()
	o.SetRenderDefaults()
	if err := o.validateRanges(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForDerive checks fields required for derivation and applies
// derive-stage defaults. An empty prompt is valid; it falls back to the
// default prompt downstream.
func (o *Options) ValidateForDerive() error {
	if err := errors.ValidatePrompt(o.Prompt); err != nil {
		return err
	}

	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}

	if o.Scheme == "" {
		o.Scheme = string(DefaultScheme)
	}
	if err := ValidateScheme(o.Scheme); err != nil {
		return err
	}

	if o.PaletteSize == 0 {
		o.PaletteSize = DefaultPaletteSize
	}
	if o.Lexicon == nil {
		o.Lexicon = emotion.DefaultLexicon()
	}
	if o.Visuals == nil {
		o.Visuals = emotion.DefaultVisuals()
	}

	return nil
}

// SetTraceDefaults sets default values for particle tracing.
func (o *Options) SetTraceDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Particles == 0 {
		o.Particles = DefaultParticles
	}
	if o.Steps == 0 {
		o.Steps = DefaultSteps
	}
	if o.StepLen == 0 {
		o.StepLen = DefaultStepLen
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Twist == 0 {
		o.Twist = DefaultTwist
	}
	if o.Bounds == "" {
		o.Bounds = string(DefaultBounds)
	}
	if o.Seed == nil {
		seed := DefaultSeed
		o.Seed = &seed
	}
}

// ValidateForTrace validates and sets defaults for particle tracing.
func (o *Options) ValidateForTrace() error {
	o.SetTraceDefaults()
	return ValidateBounds(o.Bounds)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.StrokeWidth == 0 {
		o.StrokeWidth = DefaultStrokeWidth
	}
	if o.StrokeAlpha == nil {
		alpha := DefaultStrokeAlpha
		o.StrokeAlpha = &alpha
	}
	if o.Density == 0 {
		o.Density = DefaultDensity
	}
	if o.Background == "" {
		o.Background = string(DefaultBackground)
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetTraceDefaults()
	o.SetRenderDefaults()
	if err := ValidateBounds(o.Bounds); err != nil {
		return err
	}
	return ValidateBackground(o.Background)
}

// validateRanges rejects values outside the hard limits.
func (o *Options) validateRanges() error {
	switch {
	case o.Width < MinDimension || o.Width > MaxDimension:
		return errors.New(errors.ErrCodeInvalidConfig, "width must be in [%d, %d], got %d", MinDimension, MaxDimension, o.Width)
	case o.Height < MinDimension || o.Height > MaxDimension:
		return errors.New(errors.ErrCodeInvalidConfig, "height must be in [%d, %d], got %d", MinDimension, MaxDimension, o.Height)
	case o.Particles < 1 || o.Particles > MaxParticles:
		return errors.New(errors.ErrCodeInvalidConfig, "particles must be in [1, %d], got %d", MaxParticles, o.Particles)
	case o.Steps < 1 || o.Steps > MaxSteps:
		return errors.New(errors.ErrCodeInvalidConfig, "steps must be in [1, %d], got %d", MaxSteps, o.Steps)
	case o.StepLen <= 0 || o.StepLen > MaxStepLen:
		return errors.New(errors.ErrCodeInvalidConfig, "step_len must be in (0, %g], got %g", MaxStepLen, o.StepLen)
	case *o.StrokeAlpha < 0 || *o.StrokeAlpha > 255:
		return errors.New(errors.ErrCodeInvalidConfig, "stroke_alpha must be in [0, 255], got %d", *o.StrokeAlpha)
	case o.Blur < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "blur must be non-negative, got %g", o.Blur)
	case o.Density < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "density must be non-negative, got %g", o.Density)
	}
	return nil
}

// IsFlow returns true if this is a flowfield render.
func (o *Options) IsFlow() bool {
	return o.Mode == "" || o.Mode == ModeFlow
}

// IsEmotion returns true if this is an emotion composition render.
func (o *Options) IsEmotion() bool {
	return o.Mode == ModeEmotion
}

// PaletteKeyOpts returns cache key options for palette derivation.
// The lexicon fingerprint is part of the key: derivations made with
// different lexicons never share a cache entry. Must be called after
// derive defaults have been applied.
func (o *Options) PaletteKeyOpts() cache.PaletteKeyOpts {
	return cache.PaletteKeyOpts{
		Size:    o.PaletteSize,
		Scheme:  o.Scheme,
		Lexicon: o.Lexicon.Fingerprint(),
	}
}

// TraceKeyOpts returns cache key options for particle tracing.
// Must be called after trace defaults have been applied.
func (o *Options) TraceKeyOpts() cache.TraceKeyOpts {
	return cache.TraceKeyOpts{
		Seed:      *o.Seed,
		Width:     o.Width,
		Height:    o.Height,
		Particles: o.Particles,
		Steps:     o.Steps,
		StepLen:   o.StepLen,
		Scale:     o.Scale,
		Twist:     o.Twist,
		Bounds:    o.Bounds,
	}
}

// ArtifactKeyOpts returns cache key options for rendered artifacts.
// The visual table fingerprint is part of the key so emotion renders
// with custom tables never reuse a default-table artifact. Must be
// called after render defaults have been applied.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Mode:        o.Mode,
		StrokeWidth: o.StrokeWidth,
		StrokeAlpha: *o.StrokeAlpha,
		Blur:        o.Blur,
		Density:     o.Density,
		Background:  o.Background,
		Visuals:     o.Visuals.Fingerprint(),
	}
}
