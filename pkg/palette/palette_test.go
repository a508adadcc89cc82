package palette

import (
	"crypto/sha256"
	"image/color"
	"reflect"
	"testing"
)

func TestDeriveDeterministic(t *testing.T) {
	for _, scheme := range []Scheme{SchemeSlice, SchemeHarmonic} {
		p1 := Derive("dance emotion k-pop freedom", 5, scheme)
		p2 := Derive("dance emotion k-pop freedom", 5, scheme)
		if !reflect.DeepEqual(p1, p2) {
			t.Errorf("scheme %s: identical input should yield identical palettes", scheme)
		}
	}
}

func TestDeriveSize(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{1, 1},
		{5, 5},
		{7, 7},
		{64, 64},
		{0, MinSize},   // clamped
		{-3, MinSize},  // clamped
		{999, MaxSize}, // clamped
	}

	for _, tt := range tests {
		p := Derive("prompt", tt.size, SchemeSlice)
		if len(p) != tt.want {
			t.Errorf("Derive size %d: got %d colors, want %d", tt.size, len(p), tt.want)
		}
	}
}

func TestDeriveOpaque(t *testing.T) {
	for _, scheme := range []Scheme{SchemeSlice, SchemeHarmonic} {
		for i, c := range Derive("any text", 8, scheme) {
			if c.A != 255 {
				t.Errorf("scheme %s color %d: alpha = %d, want 255", scheme, i, c.A)
			}
		}
	}
}

func TestDeriveSliceMatchesDigest(t *testing.T) {
	// The slice scheme reads digest bytes directly: color i takes bytes
	// (i*3)%32, (i*3+1)%32, (i*3+2)%32 as R, G, B.
	prompt := "test"
	d := sha256.Sum256([]byte(prompt))

	p := Derive(prompt, 3, SchemeSlice)
	for i := 0; i < 3; i++ {
		want := color.RGBA{R: d[(i*3)%32], G: d[(i*3+1)%32], B: d[(i*3+2)%32], A: 255}
		if p[i] != want {
			t.Errorf("color %d = %v, want %v", i, p[i], want)
		}
	}
}

func TestDeriveSliceWraps(t *testing.T) {
	// Color 11 starts at byte 33 mod 32 = 1: wraparound past the end of
	// the digest must not panic and must stay deterministic.
	p := Derive("wrap", 16, SchemeSlice)
	if len(p) != 16 {
		t.Fatalf("got %d colors", len(p))
	}
	d := sha256.Sum256([]byte("wrap"))
	if p[11].R != d[33%32] {
		t.Errorf("wrapped color R = %d, want %d", p[11].R, d[33%32])
	}
}

func TestEmptyPromptFallsBack(t *testing.T) {
	empty := Derive("", 5, SchemeSlice)
	fallback := Derive(DefaultPrompt, 5, SchemeSlice)
	if !reflect.DeepEqual(empty, fallback) {
		t.Error("empty prompt should derive the DefaultPrompt palette")
	}
}

func TestDifferentPromptsDiffer(t *testing.T) {
	p1 := Derive("testing1", 5, SchemeSlice)
	p2 := Derive("testing2", 5, SchemeSlice)
	if reflect.DeepEqual(p1, p2) {
		t.Error("different prompts should (almost surely) differ")
	}
}

func TestSeed(t *testing.T) {
	if Seed("alpha") != Seed("alpha") {
		t.Error("Seed should be deterministic")
	}
	if Seed("alpha") == Seed("beta") {
		t.Error("different prompts should yield different seeds")
	}
	if Seed("") != Seed(DefaultPrompt) {
		t.Error("empty prompt should seed from DefaultPrompt")
	}
}

func TestHexStrings(t *testing.T) {
	p := Palette{{R: 255, G: 0, B: 16, A: 255}, {R: 1, G: 2, B: 3, A: 255}}
	got := p.HexStrings()
	want := []string{"#ff0010", "#010203"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("HexStrings = %v, want %v", got, want)
	}
}

func TestValidScheme(t *testing.T) {
	if !ValidScheme(SchemeSlice) || !ValidScheme(SchemeHarmonic) {
		t.Error("built-in schemes should be valid")
	}
	if ValidScheme("rainbow") {
		t.Error("unknown scheme should be invalid")
	}
}
