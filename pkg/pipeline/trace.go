package pipeline

import (
	"encoding/json"
	"math/rand"

	"github.com/moodcanvas/moodcanvas/pkg/errors"
	"github.com/moodcanvas/moodcanvas/pkg/field"
)

// Trace integrates particles through the flowfield built from opts.
// The particle PRNG is seeded from opts.Seed, so a fixed seed and
// configuration reproduce the traces exactly regardless of the prompt.
func Trace(d Derivation, opts Options) []field.Trace {
	f := field.New(opts.Width, opts.Height, field.DefaultCellSize, field.Params{
		Scale: opts.Scale,
		Twist: opts.Twist,
	})
	rng := rand.New(rand.NewSource(*opts.Seed))

	return field.TraceAll(f, rng, field.TraceConfig{
		Particles:  opts.Particles,
		Steps:      opts.Steps,
		StepLen:    opts.StepLen,
		Bounds:     field.Bounds(opts.Bounds),
		PaletteLen: len(d.Palette),
	})
}

// MarshalTraces serializes traces for caching.
func MarshalTraces(traces []field.Trace) ([]byte, error) {
	data, err := json.Marshal(traces)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize traces")
	}
	return data, nil
}

// UnmarshalTraces deserializes cached traces.
func UnmarshalTraces(data []byte) ([]field.Trace, error) {
	var traces []field.Trace
	if err := json.Unmarshal(data, &traces); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "deserialize traces")
	}
	return traces, nil
}

// TotalPoints sums the point counts of all traces.
func TotalPoints(traces []field.Trace) int {
	n := 0
	for _, tr := range traces {
		n += tr.PointCount()
	}
	return n
}
