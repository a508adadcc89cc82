package emotion

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image/color"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Shape enumerates the primitive drawn for an emotion.
type Shape string

// Shapes used by the emotion renderer.
const (
	ShapeCircle   Shape = "circle"
	ShapeTriangle Shape = "triangle"
	ShapeSquare   Shape = "square"
)

// Visual describes how one emotion is drawn: the hue range its colors
// are picked from, the primitive shape, the base saturation, and a
// density factor scaling how many shapes appear per unit of weight.
//
// The table is arbitrary design data, not an algorithmic contract; it
// only has to stay fixed so identical input keeps producing identical
// posters.
type Visual struct {
	HueMin     float64 // degrees, inclusive
	HueMax     float64 // degrees, exclusive
	Shape      Shape
	Saturation float64 // [0,1]
	Density    float64 // shapes per unit weight, relative to config density
}

// VisualTable maps emotions to their visual parameters. A nil entry
// falls back to Neutral.
type VisualTable map[Emotion]Visual

// Neutral is the visual used when no emotion matched: soft gray-blue
// circles at low saturation.
var Neutral = Visual{HueMin: 200, HueMax: 240, Shape: ShapeCircle, Saturation: 0.12, Density: 0.5}

// DefaultVisuals returns the built-in emotion→visual lookup table.
func DefaultVisuals() VisualTable {
	return VisualTable{
		Joy:      {HueMin: 40, HueMax: 65, Shape: ShapeCircle, Saturation: 0.85, Density: 1.0},
		Sadness:  {HueMin: 210, HueMax: 250, Shape: ShapeCircle, Saturation: 0.55, Density: 0.7},
		Anger:    {HueMin: 0, HueMax: 20, Shape: ShapeTriangle, Saturation: 0.9, Density: 1.1},
		Fear:     {HueMin: 260, HueMax: 290, Shape: ShapeTriangle, Saturation: 0.6, Density: 0.8},
		Surprise: {HueMin: 300, HueMax: 330, Shape: ShapeSquare, Saturation: 0.8, Density: 0.9},
		Trust:    {HueMin: 120, HueMax: 160, Shape: ShapeSquare, Saturation: 0.65, Density: 0.9},
		Disgust:  {HueMin: 70, HueMax: 100, Shape: ShapeTriangle, Saturation: 0.5, Density: 0.6},
	}
}

// Fingerprint returns a stable hex digest of the table contents, used
// to key cached render artifacts per visual table.
func (t VisualTable) Fingerprint() string {
	h := sha256.New()

	emos := make([]string, 0, len(t))
	for emo := range t {
		emos = append(emos, string(emo))
	}
	sort.Strings(emos)

	for _, emo := range emos {
		v := t[Emotion(emo)]
		fmt.Fprintf(h, "%s %g %g %s %g %g\n", emo, v.HueMin, v.HueMax, v.Shape, v.Saturation, v.Density)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Lookup returns the visual for an emotion, falling back to Neutral for
// unknown entries.
func (t VisualTable) Lookup(emo Emotion) Visual {
	if v, ok := t[emo]; ok {
		return v
	}
	return Neutral
}

// Color produces a concrete RGBA color for the visual. t in [0,1]
// positions the hue within [HueMin, HueMax); lightness is fixed so the
// palette stays readable on both dark and light backgrounds.
func (v Visual) Color(t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	hue := v.HueMin + t*(v.HueMax-v.HueMin)
	c := colorful.Hsl(hue, v.Saturation, 0.55)
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
