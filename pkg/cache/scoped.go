package cache

// ScopedKeyer prefixes every key from an inner Keyer. The HTTP server wraps
// its runner's keyer in one to keep API entries apart from CLI entries in a
// shared backend.
//
//	apiKeyer := cache.NewScopedKeyer(runner.Keyer, "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, which defaults to [DefaultKeyer] when nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// TraceKey returns the prefixed trace key.
func (k *ScopedKeyer) TraceKey(algorithm string, input, params any) string {
	return k.prefix + k.inner.TraceKey(algorithm, input, params)
}

// RenderKey returns the prefixed render key. traceKey is passed through
// unchanged, so it may already carry the prefix.
func (k *ScopedKeyer) RenderKey(traceKey string, step int, format string) string {
	return k.prefix + k.inner.RenderKey(traceKey, step, format)
}
