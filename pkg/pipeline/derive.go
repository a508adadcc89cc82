package pipeline

import (
	"encoding/json"

	"github.com/moodcanvas/moodcanvas/pkg/emotion"
	"github.com/moodcanvas/moodcanvas/pkg/errors"
	"github.com/moodcanvas/moodcanvas/pkg/palette"
	"github.com/moodcanvas/moodcanvas/pkg/text"
)

// Derivation holds everything derived from the prompt text: the
// canonical form, the palette and its seed, and the emotion weights.
// It is a pure function of (prompt, palette size, scheme, lexicon) and
// serializes to JSON for caching.
type Derivation struct {
	// Canonical is the normalized prompt (lower-cased, whitespace
	// collapsed). Empty when the raw prompt had no content.
	Canonical string `json:"canonical"`

	// Seed is the prompt-derived PRNG seed, used by emotion mode.
	Seed int64 `json:"seed"`

	// Palette holds the derived colors in order.
	Palette palette.Palette `json:"palette"`

	// Scores are the raw emotion match counts.
	Scores emotion.Scores `json:"scores"`

	// Weights are the normalized emotion weights in [0,1].
	Weights emotion.Weights `json:"weights"`

	// Dominant is the highest-scoring emotion, empty when neutral.
	Dominant emotion.Emotion `json:"dominant,omitempty"`
}

// Derive computes the full derivation for the prompt in opts. It never
// fails for valid options: empty and keyword-free prompts yield the
// default palette and neutral weights respectively.
func Derive(opts Options) Derivation {
	canonical := text.Canonicalize(opts.Prompt)
	tokens := text.Tokenize(canonical)

	scores := emotion.Scan(tokens, opts.Lexicon)
	dominant, _ := scores.Dominant()

	return Derivation{
		Canonical: canonical,
		Seed:      palette.Seed(canonical),
		Palette:   palette.Derive(canonical, opts.PaletteSize, palette.Scheme(opts.Scheme)),
		Scores:    scores,
		Weights:   scores.Normalize(),
		Dominant:  dominant,
	}
}

// MarshalDerivation serializes a derivation for caching.
func MarshalDerivation(d Derivation) ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize derivation")
	}
	return data, nil
}

// UnmarshalDerivation deserializes a cached derivation.
func UnmarshalDerivation(data []byte) (Derivation, error) {
	var d Derivation
	if err := json.Unmarshal(data, &d); err != nil {
		return Derivation{}, errors.Wrap(errors.ErrCodeInternal, err, "deserialize derivation")
	}
	return d, nil
}
