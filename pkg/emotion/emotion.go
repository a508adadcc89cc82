// Package emotion implements keyword-based emotion scoring of text.
//
// A prompt is scanned against seven fixed keyword sets, one per
// emotion, producing a non-negative match count per emotion. Counts are
// normalized into weights in [0,1] which drive the visual parameters of
// the emotion renderer (hue, shape, density, saturation).
//
// The keyword sets and the emotion→visual lookup are plain immutable
// values passed into the scanner, never ambient globals, so scoring is
// a pure function of (prompt, lexicon).
//
// # Usage
//
//	tokens := text.Tokenize(text.Canonicalize(prompt))
//	scores := emotion.Scan(tokens, emotion.DefaultLexicon())
//	weights := scores.Normalize()
package emotion

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// Emotion identifies one of the seven recognized emotions.
type Emotion string

// The fixed emotion set. Order matters: All defines the canonical
// iteration order used for deterministic rendering and serialization.
const (
	Joy      Emotion = "joy"
	Sadness  Emotion = "sadness"
	Anger    Emotion = "anger"
	Fear     Emotion = "fear"
	Surprise Emotion = "surprise"
	Trust    Emotion = "trust"
	Disgust  Emotion = "disgust"
)

// All lists the emotions in canonical order.
var All = []Emotion{Joy, Sadness, Anger, Fear, Surprise, Trust, Disgust}

// Lexicon maps each emotion to its keyword set. The set is stored as a
// map for O(1) membership tests during scanning.
type Lexicon map[Emotion]map[string]bool

// NewLexicon builds a Lexicon from keyword lists. Keywords are expected
// in canonical (lower-case) form.
func NewLexicon(words map[Emotion][]string) Lexicon {
	l := make(Lexicon, len(words))
	for emo, list := range words {
		set := make(map[string]bool, len(list))
		for _, w := range list {
			set[w] = true
		}
		l[emo] = set
	}
	return l
}

// DefaultLexicon returns the built-in keyword sets. The lists are
// deliberately small: they are configuration data, not an NLP model,
// and callers with domain-specific vocabularies should supply their own.
func DefaultLexicon() Lexicon {
	return NewLexicon(map[Emotion][]string{
		Joy: {
			"joy", "joyful", "happy", "happiness", "delight", "delighted",
			"glad", "cheerful", "smile", "laugh", "laughter", "love",
			"wonderful", "bliss", "excited", "fun", "celebrate",
		},
		Sadness: {
			"sad", "sadness", "unhappy", "sorrow", "grief", "cry",
			"crying", "tears", "lonely", "loss", "miss", "gloomy",
			"depressed", "mourn", "heartbroken",
		},
		Anger: {
			"anger", "angry", "rage", "furious", "fury", "mad",
			"hate", "hatred", "annoyed", "irritated", "outraged",
			"resent", "hostile",
		},
		Fear: {
			"fear", "afraid", "scared", "terror", "terrified", "dread",
			"panic", "anxious", "anxiety", "worry", "worried",
			"nervous", "frightened",
		},
		Surprise: {
			"surprise", "surprised", "astonished", "amazed", "amazing",
			"shocked", "shock", "sudden", "unexpected", "wow",
			"startled", "stunned",
		},
		Trust: {
			"trust", "trusting", "faith", "reliable", "loyal", "loyalty",
			"honest", "honesty", "safe", "secure", "confide",
			"dependable", "believe",
		},
		Disgust: {
			"disgust", "disgusted", "disgusting", "gross", "revolting",
			"nausea", "sick", "vile", "repulsed", "loathe",
			"nasty", "foul",
		},
	})
}

// Fingerprint returns a stable hex digest of the lexicon contents.
// Lexicons with identical keyword sets produce identical fingerprints
// regardless of construction order. The pipeline folds the fingerprint
// into cache keys, so a derivation cached under one lexicon is never
// served to a caller using another.
func (l Lexicon) Fingerprint() string {
	h := sha256.New()

	emos := make([]string, 0, len(l))
	for emo := range l {
		emos = append(emos, string(emo))
	}
	sort.Strings(emos)

	for _, emo := range emos {
		h.Write([]byte(emo))
		words := make([]string, 0, len(l[Emotion(emo)]))
		for w := range l[Emotion(emo)] {
			words = append(words, w)
		}
		sort.Strings(words)
		for _, w := range words {
			h.Write([]byte{' '})
			h.Write([]byte(w))
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Scores holds the raw match count per emotion. Counts are always
// non-negative. A zero-value Scores (all counts zero) is the neutral
// distribution produced by empty or keyword-free input.
type Scores map[Emotion]int

// Scan counts keyword matches over the prompt's tokens. Tokens come
// from text.Tokenize over the canonical prompt, which makes matching
// word-boundary-aware by construction.
//
// Empty input is valid and yields the neutral all-zero Scores.
func Scan(tokens []string, lexicon Lexicon) Scores {
	scores := make(Scores, len(All))
	for _, emo := range All {
		scores[emo] = 0
	}
	for _, tok := range tokens {
		for _, emo := range All {
			if lexicon[emo][tok] {
				scores[emo]++
			}
		}
	}
	return scores
}

// Total returns the sum of all match counts.
func (s Scores) Total() int {
	total := 0
	for _, emo := range All {
		total += s[emo]
	}
	return total
}

// IsNeutral reports whether no keyword matched at all.
func (s Scores) IsNeutral() bool {
	return s.Total() == 0
}

// Weights holds normalized per-emotion weights in [0,1].
type Weights map[Emotion]float64

// Normalize converts counts to weights by dividing by the maximum
// count. The dominant emotion gets weight 1.0 and the rest scale
// proportionally. Neutral scores normalize to all-zero weights rather
// than erroring.
func (s Scores) Normalize() Weights {
	max := 0
	for _, emo := range All {
		if s[emo] > max {
			max = s[emo]
		}
	}

	w := make(Weights, len(All))
	if max == 0 {
		for _, emo := range All {
			w[emo] = 0
		}
		return w
	}
	for _, emo := range All {
		w[emo] = float64(s[emo]) / float64(max)
	}
	return w
}

// Dominant returns the emotion with the highest count, breaking ties by
// canonical order. The second return value is false for neutral scores.
func (s Scores) Dominant() (Emotion, bool) {
	best := Emotion("")
	bestCount := 0
	for _, emo := range All {
		if s[emo] > bestCount {
			best = emo
			bestCount = s[emo]
		}
	}
	if bestCount == 0 {
		return "", false
	}
	return best, true
}
