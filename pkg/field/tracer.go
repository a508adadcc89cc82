package field

import (
	"math"
	"math/rand"
)

// Bounds selects what happens when a particle reaches the canvas edge.
type Bounds string

// Bounds policies.
const (
	// BoundsWrap wraps the particle to the opposite edge (toroidal),
	// producing continuous paths that re-enter the frame.
	BoundsWrap Bounds = "wrap"

	// BoundsClip terminates the particle at the edge. Early exit is
	// expected behavior, not an error.
	BoundsClip Bounds = "clip"
)

// ValidBounds reports whether b names a supported bounds policy.
func ValidBounds(b Bounds) bool {
	return b == BoundsWrap || b == BoundsClip
}

// Point is a 2D canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Trace is the path of one particle. A wrap at the canvas edge breaks
// the path into a new polyline so the renderer never draws a segment
// across the whole frame.
type Trace struct {
	// ColorIndex selects the palette color for this trace.
	ColorIndex int `json:"color"`

	// Polylines are the contiguous path segments, each a sequence of
	// in-bounds points.
	Polylines [][]Point `json:"polylines"`
}

// TraceConfig controls particle integration.
type TraceConfig struct {
	Particles  int     // number of particles
	Steps      int     // max integration steps per particle
	StepLen    float64 // distance per step in pixels
	Bounds     Bounds  // edge policy
	PaletteLen int     // number of palette entries to cycle colors over
}

// TraceAll integrates all particles through the field and returns their
// traces. The PRNG must be an explicit seeded instance; TraceAll draws
// the start point and color index for each particle from it in a fixed
// order, so the same generator state always produces the same traces.
func TraceAll(f *Field, rng *rand.Rand, cfg TraceConfig) []Trace {
	w := float64(f.Width())
	h := float64(f.Height())

	traces := make([]Trace, 0, cfg.Particles)
	for i := 0; i < cfg.Particles; i++ {
		x := float64(rng.Intn(f.Width()))
		y := float64(rng.Intn(f.Height()))
		colorIdx := 0
		if cfg.PaletteLen > 0 {
			colorIdx = rng.Intn(cfg.PaletteLen)
		}
		traces = append(traces, traceOne(f, x, y, colorIdx, w, h, cfg))
	}
	return traces
}

// traceOne integrates a single particle from (x, y).
func traceOne(f *Field, x, y float64, colorIdx int, w, h float64, cfg TraceConfig) Trace {
	tr := Trace{ColorIndex: colorIdx}
	line := []Point{{X: x, Y: y}}

	for step := 0; step < cfg.Steps; step++ {
		ang := f.Sample(x, y)
		nx := x + math.Cos(ang)*cfg.StepLen
		ny := y + math.Sin(ang)*cfg.StepLen

		inBounds := nx >= 0 && nx < w && ny >= 0 && ny < h

		switch {
		case inBounds:
			line = append(line, Point{X: nx, Y: ny})
			x, y = nx, ny

		case cfg.Bounds == BoundsClip:
			// Terminate at the edge without emitting the out-of-bounds point.
			tr.Polylines = append(tr.Polylines, line)
			return tr

		default: // BoundsWrap
			if nx < 0 {
				nx += w
			}
			if nx >= w {
				nx -= w
			}
			if ny < 0 {
				ny += h
			}
			if ny >= h {
				ny -= h
			}
			// Break the polyline: the wrapped position starts a new one.
			tr.Polylines = append(tr.Polylines, line)
			line = []Point{{X: nx, Y: ny}}
			x, y = nx, ny
		}
	}

	tr.Polylines = append(tr.Polylines, line)
	return tr
}

// PointCount returns the total number of points across all polylines.
func (t Trace) PointCount() int {
	n := 0
	for _, line := range t.Polylines {
		n += len(line)
	}
	return n
}
