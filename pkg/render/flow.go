package render

import (
	"github.com/moodcanvas/moodcanvas/pkg/field"
	"github.com/moodcanvas/moodcanvas/pkg/palette"
)

// FlowOptions controls the flowfield line-art renderer.
// Values are expected to be validated/clamped by the pipeline before
// they reach this package.
type FlowOptions struct {
	Width       int
	Height      int
	StrokeWidth float64
	StrokeAlpha uint8 // 0-255
	Blur        float64
	Background  Background
}

// Flow draws particle traces as stroked polylines and returns PNG bytes.
// Each trace is stroked in its palette color at the configured width
// and alpha; polylines within a trace are stroked separately so wrapped
// paths never produce a segment across the frame.
func Flow(traces []field.Trace, pal palette.Palette, opts FlowOptions) ([]byte, error) {
	if len(pal) == 0 {
		pal = palette.Palette{lightBackground}
	}
	dc := newCanvas(opts.Width, opts.Height, backgroundColor(opts.Background, pal))
	dc.SetLineWidth(opts.StrokeWidth)

	for _, tr := range traces {
		c := pal[tr.ColorIndex%len(pal)]
		dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(opts.StrokeAlpha))

		for _, line := range tr.Polylines {
			if len(line) < 2 {
				continue
			}
			dc.MoveTo(line[0].X, line[0].Y)
			for _, p := range line[1:] {
				dc.LineTo(p.X, p.Y)
			}
			dc.Stroke()
		}
	}

	return encodePNG(dc.Image(), opts.Blur)
}
