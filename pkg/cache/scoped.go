package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The server uses this to keep per-deployment namespaces separate when
// several environments share one Redis instance.
//
// Example usage:
//
//	// Staging deployment keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PaletteKey generates a prefixed key for palette derivation results.
func (k *ScopedKeyer) PaletteKey(prompt string, opts PaletteKeyOpts) string {
	return k.prefix + k.inner.PaletteKey(prompt, opts)
}

// TraceKey generates a prefixed key for particle trace results.
func (k *ScopedKeyer) TraceKey(paletteHash string, opts TraceKeyOpts) string {
	return k.prefix + k.inner.TraceKey(paletteHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(traceHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(traceHash, opts)
}
