package render

import (
	"math"
	"math/rand"

	"github.com/fogleman/gg"

	"github.com/moodcanvas/moodcanvas/pkg/emotion"
	"github.com/moodcanvas/moodcanvas/pkg/palette"
)

// EmotionOptions controls the emotion composition renderer.
type EmotionOptions struct {
	Width      int
	Height     int
	Density    float64 // overall shape density multiplier
	Blur       float64
	Background Background
}

// baseShapeCount is the number of shapes drawn for a full-weight
// emotion at density 1.0.
const baseShapeCount = 48

// Emotion draws a composition of filled shapes, one layer per emotion,
// and returns PNG bytes. Shape count scales with the emotion's weight,
// its density factor, and the configured density; position and size
// come from the explicit PRNG, so a fixed seed reproduces the image
// exactly.
//
// Neutral input (all weights zero) paints a sparse layer of Neutral
// shapes instead of an empty canvas.
func Emotion(weights emotion.Weights, visuals emotion.VisualTable, pal palette.Palette, rng *rand.Rand, opts EmotionOptions) ([]byte, error) {
	dc := newCanvas(opts.Width, opts.Height, backgroundColor(opts.Background, pal))

	neutral := true
	for _, emo := range emotion.All {
		if weights[emo] > 0 {
			neutral = false
			break
		}
	}

	if neutral {
		drawLayer(dc, emotion.Neutral, emotion.Neutral.Density, rng, opts)
	} else {
		// Canonical emotion order keeps layering deterministic.
		for _, emo := range emotion.All {
			w := weights[emo]
			if w <= 0 {
				continue
			}
			v := visuals.Lookup(emo)
			drawLayer(dc, v, w*v.Density, rng, opts)
		}
	}

	return encodePNG(dc.Image(), opts.Blur)
}

// drawLayer paints one emotion's shapes. strength combines the
// normalized weight and the emotion's density factor.
func drawLayer(dc *gg.Context, v emotion.Visual, strength float64, rng *rand.Rand, opts EmotionOptions) {
	count := int(math.Round(strength * opts.Density * baseShapeCount))
	if count <= 0 {
		return
	}

	w := float64(opts.Width)
	h := float64(opts.Height)
	maxRadius := math.Min(w, h) / 8

	for i := 0; i < count; i++ {
		x := rng.Float64() * w
		y := rng.Float64() * h
		r := (0.2 + 0.8*rng.Float64()) * maxRadius
		c := v.Color(rng.Float64())

		// Shapes are drawn semi-transparent so layers blend.
		dc.SetRGBA255(int(c.R), int(c.G), int(c.B), 160)

		switch v.Shape {
		case emotion.ShapeTriangle:
			dc.MoveTo(x, y-r)
			dc.LineTo(x-r*0.866, y+r*0.5)
			dc.LineTo(x+r*0.866, y+r*0.5)
			dc.ClosePath()
			dc.Fill()
		case emotion.ShapeSquare:
			dc.DrawRectangle(x-r/2, y-r/2, r, r)
			dc.Fill()
		default: // circle
			dc.DrawCircle(x, y, r/2)
			dc.Fill()
		}
	}
}
