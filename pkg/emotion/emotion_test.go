package emotion

import (
	"testing"

	"github.com/moodcanvas/moodcanvas/pkg/text"
)

func scan(prompt string) Scores {
	return Scan(text.Tokenize(text.Canonicalize(prompt)), DefaultLexicon())
}

func TestScanJoyAndTrust(t *testing.T) {
	scores := scan("I feel so much joy and trust today")

	if scores[Joy] == 0 {
		t.Error("expected joy > 0")
	}
	if scores[Trust] == 0 {
		t.Error("expected trust > 0")
	}
	for _, emo := range []Emotion{Sadness, Anger, Fear, Surprise, Disgust} {
		if scores[emo] != 0 {
			t.Errorf("expected %s = 0, got %d", emo, scores[emo])
		}
	}
}

func TestScanEmptyIsNeutral(t *testing.T) {
	scores := scan("")
	if !scores.IsNeutral() {
		t.Error("empty input should produce neutral scores")
	}
	if _, ok := scores.Dominant(); ok {
		t.Error("neutral scores should have no dominant emotion")
	}
}

func TestScanNoMatchesIsNeutral(t *testing.T) {
	scores := scan("the quick brown fox jumps over the lazy dog")
	if !scores.IsNeutral() {
		t.Errorf("expected neutral, got %v", scores)
	}
}

func TestScanWordBoundaries(t *testing.T) {
	// "joyful" is a keyword, "enjoyment" is not: matching is per token,
	// never substring.
	scores := scan("enjoyment")
	if scores[Joy] != 0 {
		t.Errorf("substring should not match, got joy = %d", scores[Joy])
	}

	scores = scan("joyful, truly joyful!")
	if scores[Joy] != 2 {
		t.Errorf("expected joy = 2, got %d", scores[Joy])
	}
}

func TestScanCountsNonNegative(t *testing.T) {
	scores := scan("happy sad angry afraid amazed loyal gross")
	for _, emo := range All {
		if scores[emo] < 0 {
			t.Errorf("%s count negative: %d", emo, scores[emo])
		}
	}
}

func TestNormalize(t *testing.T) {
	scores := scan("joy joy happy trust")
	w := scores.Normalize()

	for _, emo := range All {
		if w[emo] < 0 || w[emo] > 1 {
			t.Errorf("%s weight %f outside [0,1]", emo, w[emo])
		}
	}
	if w[Joy] != 1.0 {
		t.Errorf("dominant emotion weight = %f, want 1.0", w[Joy])
	}
	if w[Trust] <= 0 || w[Trust] >= 1 {
		t.Errorf("trust weight = %f, want in (0,1)", w[Trust])
	}
}

func TestNormalizeNeutral(t *testing.T) {
	w := (Scores{}).Normalize()
	for _, emo := range All {
		if w[emo] != 0 {
			t.Errorf("neutral weight for %s = %f, want 0", emo, w[emo])
		}
	}
}

func TestDominant(t *testing.T) {
	scores := scan("rage rage rage smile")
	emo, ok := scores.Dominant()
	if !ok {
		t.Fatal("expected a dominant emotion")
	}
	if emo != Anger {
		t.Errorf("Dominant = %s, want %s", emo, Anger)
	}
}

func TestLexiconFingerprint(t *testing.T) {
	a := NewLexicon(map[Emotion][]string{Joy: {"sun", "beam"}, Fear: {"dusk"}})
	b := NewLexicon(map[Emotion][]string{Fear: {"dusk"}, Joy: {"beam", "sun"}})
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("same keyword sets should fingerprint identically regardless of order")
	}

	c := NewLexicon(map[Emotion][]string{Joy: {"sun", "beam", "dawn"}, Fear: {"dusk"}})
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("adding a keyword should change the fingerprint")
	}

	custom := NewLexicon(map[Emotion][]string{Joy: {"zzz"}})
	if custom.Fingerprint() == DefaultLexicon().Fingerprint() {
		t.Error("custom lexicon should fingerprint differently from the default")
	}

	if DefaultLexicon().Fingerprint() != DefaultLexicon().Fingerprint() {
		t.Error("fingerprint should be stable across calls")
	}
}

func TestVisualTableFingerprint(t *testing.T) {
	if DefaultVisuals().Fingerprint() != DefaultVisuals().Fingerprint() {
		t.Error("fingerprint should be stable across calls")
	}

	tweaked := DefaultVisuals()
	v := tweaked[Joy]
	v.Density = 2.0
	tweaked[Joy] = v
	if tweaked.Fingerprint() == DefaultVisuals().Fingerprint() {
		t.Error("changing a visual should change the fingerprint")
	}
}

func TestVisualLookupFallback(t *testing.T) {
	table := DefaultVisuals()
	if v := table.Lookup(Joy); v.Shape != ShapeCircle {
		t.Errorf("joy shape = %s, want circle", v.Shape)
	}
	if v := table.Lookup(Emotion("unknown")); v != Neutral {
		t.Error("unknown emotion should fall back to Neutral")
	}
}

func TestVisualColorDeterministic(t *testing.T) {
	v := DefaultVisuals().Lookup(Joy)
	if v.Color(0.3) != v.Color(0.3) {
		t.Error("Color should be deterministic")
	}
	// Out-of-range positions are clamped, not errors.
	if v.Color(-1) != v.Color(0) {
		t.Error("negative t should clamp to 0")
	}
	if v.Color(2) != v.Color(1) {
		t.Error("t > 1 should clamp to 1")
	}
	if v.Color(0).A != 255 {
		t.Error("colors should be opaque")
	}
}
