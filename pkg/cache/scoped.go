package cache

// ScopedKeyer wraps a Keyer with a prefix, so that several environments can
// share one Redis instance without seeing each other's entries.
//
//	staging := NewScopedKeyer(nil, "staging:")
//	staging.ArtifactKey(hash, opts) // "staging:artifact:..."
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer uses
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

func (k *ScopedKeyer) LogoKey(hmmHash string, opts LogoKeyOpts) string {
	return k.prefix + k.inner.LogoKey(hmmHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}
