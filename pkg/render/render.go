// Package render draws derived parameters onto a raster canvas.
//
// Each render call owns its canvas exclusively: nothing in this package
// holds state across calls, so concurrent renders never share mutable
// data. Drawing is done with fogleman/gg, the optional blur post-pass
// with disintegration/imaging, and the result is returned as encoded
// PNG bytes.
//
// # Styles
//
//   - Flow: stroked polylines from particle traces (flowfield posters)
//   - Emotion: filled shapes with per-emotion color and density
//   - Strip: a palette swatch preview
package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/moodcanvas/moodcanvas/pkg/palette"
)

// Background selects the canvas fill behind the art.
type Background string

// Background modes.
const (
	BackgroundDark    Background = "dark"
	BackgroundLight   Background = "light"
	BackgroundPalette Background = "palette"
)

// ValidBackground reports whether b names a supported background mode.
func ValidBackground(b Background) bool {
	return b == BackgroundDark || b == BackgroundLight || b == BackgroundPalette
}

// Fixed background colors.
var (
	darkBackground  = color.RGBA{R: 12, G: 12, B: 16, A: 255}
	lightBackground = color.RGBA{R: 245, G: 245, B: 245, A: 255}
)

// backgroundColor resolves the background mode against a palette.
// Palette mode uses the first palette color; an empty palette falls
// back to dark.
func backgroundColor(mode Background, pal palette.Palette) color.RGBA {
	switch mode {
	case BackgroundLight:
		return lightBackground
	case BackgroundPalette:
		if len(pal) > 0 {
			return pal[0]
		}
		return darkBackground
	default:
		return darkBackground
	}
}

// encodePNG encodes the image, applying a gaussian blur first when
// sigma is positive.
func encodePNG(img image.Image, blurSigma float64) ([]byte, error) {
	if blurSigma > 0 {
		img = imaging.Blur(img, blurSigma)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// newCanvas creates a context with the background already filled.
func newCanvas(width, height int, bg color.RGBA) *gg.Context {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return dc
}
