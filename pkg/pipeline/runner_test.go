package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/moodcanvas/moodcanvas/pkg/cache"
	"github.com/moodcanvas/moodcanvas/pkg/emotion"
)

// smallOpts keeps runner tests fast.
func smallOpts(prompt string) Options {
	return Options{
		Prompt:    prompt,
		Width:     200,
		Height:    150,
		Particles: 25,
		Steps:     40,
	}
}

func TestRunnerExecuteFlow(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), smallOpts("calm ocean sunrise"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(result.PNG) == 0 {
		t.Error("no PNG produced")
	}
	if len(result.Traces) != 25 {
		t.Errorf("traces = %d, want 25", len(result.Traces))
	}
	if result.PaletteHash == "" {
		t.Error("PaletteHash not set")
	}
	if result.Stats.PointCount == 0 {
		t.Error("PointCount not set")
	}
	if result.Stats.PNGBytes != len(result.PNG) {
		t.Error("PNGBytes does not match output size")
	}
	if result.CacheInfo.PaletteHit || result.CacheInfo.TraceHit || result.CacheInfo.RenderHit {
		t.Error("NullCache should never report hits")
	}
}

func TestRunnerExecuteEmotion(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	opts := smallOpts("a joyful, trusting morning")
	opts.Mode = ModeEmotion

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.PNG) == 0 {
		t.Error("no PNG produced")
	}
	if result.Traces != nil {
		t.Error("emotion mode should not trace particles")
	}
	if result.Derivation.Dominant != "joy" {
		t.Errorf("Dominant = %q, want joy", result.Derivation.Dominant)
	}
}

func TestRunnerExecuteDeterministic(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	r1, err := runner.Execute(context.Background(), smallOpts("the same text"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	r2, err := runner.Execute(context.Background(), smallOpts("the same text"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !bytes.Equal(r1.PNG, r2.PNG) {
		t.Error("same prompt and options should produce byte-identical output")
	}
	if r1.PaletteHash != r2.PaletteHash {
		t.Error("same prompt should produce the same palette hash")
	}
}

func TestRunnerExecuteDifferentPrompts(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	r1, err := runner.Execute(context.Background(), smallOpts("alpha"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	r2, err := runner.Execute(context.Background(), smallOpts("omega"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if r1.PaletteHash == r2.PaletteHash {
		t.Error("different prompts should produce different palette hashes")
	}
	if bytes.Equal(r1.PNG, r2.PNG) {
		t.Error("different prompts should produce different images")
	}
}

func TestRunnerCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	opts := smallOpts("cache me")

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.PaletteHit || first.CacheInfo.TraceHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss on all stages")
	}

	second, err := runner.Execute(ctx, smallOpts("cache me"))
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.PaletteHit || !second.CacheInfo.TraceHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit all stages, got %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.PNG, second.PNG) {
		t.Error("cached output should match the original")
	}
}

func TestRunnerCustomLexiconGetsOwnCacheEntry(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	ctx := context.Background()

	// Prime the cache with the default lexicon, under which "zzz" scores
	// nothing.
	if _, _, err := runner.DeriveWithCacheInfo(ctx, smallOpts("zzz")); err != nil {
		t.Fatalf("prime derive: %v", err)
	}

	opts := smallOpts("zzz")
	opts.Lexicon = emotion.NewLexicon(map[emotion.Emotion][]string{
		emotion.Joy: {"zzz"},
	})
	d, hit, err := runner.DeriveWithCacheInfo(ctx, opts)
	if err != nil {
		t.Fatalf("custom lexicon derive: %v", err)
	}
	if hit {
		t.Error("custom lexicon must not hit the default lexicon's cache entry")
	}
	if d.Scores[emotion.Joy] != 1 {
		t.Errorf("Scores[joy] = %d, want 1", d.Scores[emotion.Joy])
	}
}

func TestRunnerCustomVisualsGetOwnCacheEntry(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	prime := smallOpts("a joyful morning")
	prime.Mode = ModeEmotion
	if _, err := runner.Execute(ctx, prime); err != nil {
		t.Fatalf("prime Execute: %v", err)
	}

	opts := smallOpts("a joyful morning")
	opts.Mode = ModeEmotion
	opts.Visuals = emotion.VisualTable{
		emotion.Joy: {HueMin: 1, HueMax: 2, Shape: emotion.ShapeSquare, Saturation: 0.3, Density: 0.4},
	}
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("custom visuals Execute: %v", err)
	}
	if result.CacheInfo.RenderHit {
		t.Error("custom visual table must not hit the default table's render entry")
	}
}

func TestRunnerLogsThroughOptionsLogger(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	var buf bytes.Buffer
	opts := smallOpts("quiet forest")
	opts.Logger = log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	if _, err := runner.Execute(context.Background(), opts); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"derived palette", "traced particles", "rendered output"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q", want)
		}
	}
}

func TestRunnerRefreshBypassesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	if _, err := runner.Execute(ctx, smallOpts("refresh me")); err != nil {
		t.Fatalf("prime Execute: %v", err)
	}

	opts := smallOpts("refresh me")
	opts.Refresh = true
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if result.CacheInfo.PaletteHit || result.CacheInfo.TraceHit || result.CacheInfo.RenderHit {
		t.Errorf("refresh should bypass the cache, got %+v", result.CacheInfo)
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	opts := smallOpts("x")
	opts.Mode = "cubist"
	if _, err := runner.Execute(context.Background(), opts); err == nil {
		t.Error("invalid mode should fail")
	}
}

func TestRunnerNilDefaults(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	if runner.Cache == nil || runner.Keyer == nil || runner.Logger == nil {
		t.Error("NewRunner should fill nil fields with defaults")
	}
}
