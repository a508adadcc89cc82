package render

import (
	"github.com/moodcanvas/moodcanvas/pkg/palette"
)

// Strip swatch dimensions, matching the original preview panel.
const (
	stripSwatchWidth = 80
	stripHeight      = 60
)

// Strip renders a palette preview: one swatch per color, side by side.
// Returns PNG bytes. An empty palette produces a single light swatch so
// callers always get a valid image.
func Strip(pal palette.Palette) ([]byte, error) {
	if len(pal) == 0 {
		dc := newCanvas(stripSwatchWidth, stripHeight, lightBackground)
		return encodePNG(dc.Image(), 0)
	}

	dc := newCanvas(stripSwatchWidth*len(pal), stripHeight, lightBackground)
	for i, c := range pal {
		dc.SetRGBA255(int(c.R), int(c.G), int(c.B), 255)
		dc.DrawRectangle(float64(i*stripSwatchWidth), 0, stripSwatchWidth, stripHeight)
		dc.Fill()
	}
	return encodePNG(dc.Image(), 0)
}
