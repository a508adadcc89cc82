// Package field implements the flowfield grid and particle tracer.
//
// A Field is a 2D grid of direction values derived from a dependency-free
// trigonometric pseudo-noise function parameterized by scale and twist.
// Values are precomputed per grid cell and bilinearly interpolated on
// lookup, so sampling is cheap even for thousands of particles.
//
// The Tracer integrates particles through the field: each particle
// starts at a PRNG-drawn point and repeatedly steps a fixed length in
// the local flow direction, recording its path. Both the field and the
// traces are pure functions of (seed, parameters) — the determinism
// contract the whole pipeline rests on.
package field

import "math"

// Params controls the shape of the pseudo-noise field.
type Params struct {
	// Scale is the feature size in pixels; larger values produce
	// broader, calmer currents.
	Scale float64

	// Twist feeds each axis's noise into the other, adding vorticity.
	Twist float64
}

// Angle returns the raw flow direction at (x, y) in radians.
// The function is continuous in x and y, so nearby samples produce
// nearby directions and traces stay smooth.
func Angle(x, y float64, p Params) float64 {
	return math.Sin(x/p.Scale+p.Twist*math.Sin(y/p.Scale)) +
		math.Cos(y/p.Scale+p.Twist*math.Cos(x/p.Scale))
}

// DefaultCellSize is the grid resolution in pixels. Small enough that
// bilinear interpolation is visually indistinguishable from evaluating
// the noise at every sample, large enough to keep the grid small.
const DefaultCellSize = 8

// Field is a precomputed grid of flow directions over a canvas.
type Field struct {
	width  int
	height int
	cell   int
	cols   int
	rows   int
	angles []float64
	params Params
}

// New builds a field for a width×height canvas at the given cell size.
// A cell size <= 0 falls back to DefaultCellSize. The grid carries one
// extra row and column so Sample can interpolate at the far edges.
func New(width, height, cell int, p Params) *Field {
	if cell <= 0 {
		cell = DefaultCellSize
	}
	cols := width/cell + 2
	rows := height/cell + 2

	f := &Field{
		width:  width,
		height: height,
		cell:   cell,
		cols:   cols,
		rows:   rows,
		angles: make([]float64, cols*rows),
		params: p,
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := float64(col * cell)
			y := float64(row * cell)
			f.angles[row*cols+col] = Angle(x, y, p)
		}
	}
	return f
}

// Width returns the canvas width the field covers.
func (f *Field) Width() int { return f.width }

// Height returns the canvas height the field covers.
func (f *Field) Height() int { return f.height }

// at returns the grid value at (col, row), clamped to the grid.
func (f *Field) at(col, row int) float64 {
	if col < 0 {
		col = 0
	}
	if col >= f.cols {
		col = f.cols - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= f.rows {
		row = f.rows - 1
	}
	return f.angles[row*f.cols+col]
}

// Sample returns the flow direction at (x, y), bilinearly interpolated
// between the four surrounding grid cells. Coordinates outside the
// canvas clamp to the nearest cell.
func (f *Field) Sample(x, y float64) float64 {
	fx := x / float64(f.cell)
	fy := y / float64(f.cell)

	col := int(math.Floor(fx))
	row := int(math.Floor(fy))
	tx := fx - float64(col)
	ty := fy - float64(row)

	a00 := f.at(col, row)
	a10 := f.at(col+1, row)
	a01 := f.at(col, row+1)
	a11 := f.at(col+1, row+1)

	top := a00 + (a10-a00)*tx
	bottom := a01 + (a11-a01)*tx
	return top + (bottom-top)*ty
}
