// Package palette derives deterministic color palettes from text.
//
// The prompt is hashed with SHA-256 and the digest is sliced into color
// channels, so the same prompt always yields bit-identical colors on
// every platform and invocation. The digest also provides the seed for
// the pipeline's pseudo-random generator; callers construct an explicit
// rand.Rand from it rather than touching the process-global generator.
//
// Two schemes are supported:
//
//   - Slice: raw digest triplets become RGB channels (the classic look)
//   - Harmonic: digest-derived hues at fixed saturation/lightness, for
//     palettes that are guaranteed to sit well together
package palette

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultPrompt is hashed in place of an empty prompt so that empty
// input still produces a well-defined palette instead of an error.
const DefaultPrompt = "flowfield"

// Size limits for palettes.
const (
	MinSize = 1
	MaxSize = 64
)

// Scheme selects the palette derivation scheme.
type Scheme string

// Supported schemes.
const (
	SchemeSlice    Scheme = "slice"
	SchemeHarmonic Scheme = "harmonic"
)

// ValidScheme reports whether s names a supported scheme.
func ValidScheme(s Scheme) bool {
	return s == SchemeSlice || s == SchemeHarmonic
}

// Palette is an ordered list of opaque colors.
type Palette []color.RGBA

// Digest returns the SHA-256 digest of the canonical prompt. Empty
// prompts fall back to DefaultPrompt.
func Digest(canonical string) [32]byte {
	if canonical == "" {
		canonical = DefaultPrompt
	}
	return sha256.Sum256([]byte(canonical))
}

// Seed derives a PRNG seed from the first eight digest bytes.
// The seed is what makes "same text, same art" hold for every stage
// that consumes randomness downstream of the palette.
func Seed(canonical string) int64 {
	d := Digest(canonical)
	return int64(binary.BigEndian.Uint64(d[:8]))
}

// Derive produces a palette of exactly size colors using the given
// scheme. Size is clamped to [MinSize, MaxSize].
func Derive(canonical string, size int, scheme Scheme) Palette {
	if size < MinSize {
		size = MinSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	switch scheme {
	case SchemeHarmonic:
		return deriveHarmonic(canonical, size)
	default:
		return deriveSlice(canonical, size)
	}
}

// deriveSlice slices the digest into RGB triplets: color i reads one
// digest byte per channel starting at offset (i*3) mod 32, with
// wraparound. Equivalent to slicing the hex digest two characters per
// channel at offset (i*6) mod 64.
func deriveSlice(canonical string, size int) Palette {
	d := Digest(canonical)

	p := make(Palette, size)
	for i := 0; i < size; i++ {
		r := d[(i*3)%32]
		g := d[(i*3+1)%32]
		b := d[(i*3+2)%32]
		p[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return p
}

// deriveHarmonic reads two digest bytes per color as a hue in [0,360)
// and keeps saturation and lightness fixed.
func deriveHarmonic(canonical string, size int) Palette {
	const (
		saturation = 0.65
		lightness  = 0.55
	)
	d := Digest(canonical)

	p := make(Palette, size)
	for i := 0; i < size; i++ {
		hi := d[(i*2)%32]
		lo := d[(i*2+1)%32]
		hue := float64(uint16(hi)<<8|uint16(lo)) / 65536.0 * 360.0
		c := colorful.Hsl(hue, saturation, lightness)
		r, g, b := c.Clamped().RGB255()
		p[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return p
}

// Hex returns the #rrggbb representation of palette color i.
func (p Palette) Hex(i int) string {
	c := p[i]
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HexStrings returns the whole palette as #rrggbb strings, useful for
// JSON responses and logs.
func (p Palette) HexStrings() []string {
	out := make([]string, len(p))
	for i := range p {
		out[i] = p.Hex(i)
	}
	return out
}
