package pipeline

import (
	"math/rand"

	"github.com/moodcanvas/moodcanvas/pkg/errors"
	"github.com/moodcanvas/moodcanvas/pkg/field"
	"github.com/moodcanvas/moodcanvas/pkg/render"
)

// Render draws the final image and returns PNG bytes.
//
// Flow mode strokes the particle traces; emotion mode paints shape
// layers from the derivation's weights, seeding the shape PRNG from the
// prompt-derived seed so the same text always yields the same art.
func Render(d Derivation, traces []field.Trace, opts Options) ([]byte, error) {
	switch opts.Mode {
	case ModeEmotion:
		rng := rand.New(rand.NewSource(d.Seed))
		return render.Emotion(d.Weights, opts.Visuals, d.Palette, rng, render.EmotionOptions{
			Width:      opts.Width,
			Height:     opts.Height,
			Density:    opts.Density,
			Blur:       opts.Blur,
			Background: render.Background(opts.Background),
		})

	case ModeFlow, "":
		return render.Flow(traces, d.Palette, render.FlowOptions{
			Width:       opts.Width,
			Height:      opts.Height,
			StrokeWidth: opts.StrokeWidth,
			StrokeAlpha: uint8(*opts.StrokeAlpha),
			Blur:        opts.Blur,
			Background:  render.Background(opts.Background),
		})

	default:
		return nil, errors.New(errors.ErrCodeInvalidMode, "invalid mode: %q", opts.Mode)
	}
}
