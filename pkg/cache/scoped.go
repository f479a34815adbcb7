package cache

// ScopedKeyer wraps a Keyer with a prefix so several stores or servers can
// share one cache directory without colliding:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "store:redis:")
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

// RenderKey generates a prefixed render key.
func (k *ScopedKeyer) RenderKey(docHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(docHash, opts)
}

// ReplayKey generates a prefixed replay key.
func (k *ScopedKeyer) ReplayKey(docHash, scriptHash string) string {
	return k.prefix + k.inner.ReplayKey(docHash, scriptHash)
}
