package text

import (
	"reflect"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t\n  ", ""},
		{"lowercases", "Joy And TRUST", "joy and trust"},
		{"collapses whitespace", "so   much \t joy\n\ntoday", "so much joy today"},
		{"trims", "  hello  ", "hello"},
		{"unicode", "Größe  Émotion", "größe émotion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonicalize(tt.in); got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeDeterministic(t *testing.T) {
	in := "The  SAME   input"
	if Canonicalize(in) != Canonicalize(in) {
		t.Error("Canonicalize should be deterministic")
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"simple words", "joy and trust", []string{"joy", "and", "trust"}},
		{"punctuation boundaries", "fear, anger! disgust?", []string{"fear", "anger", "disgust"}},
		{"hyphens split", "k-pop freedom", []string{"k", "pop", "freedom"}},
		{"digits kept", "route 66", []string{"route", "66"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
