package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis or Mongo backend without seeing each other's entries.
//
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

// CountKey generates a prefixed count key.
func (k *ScopedKeyer) CountKey(kind string, params ...int) string {
	return k.prefix + k.inner.CountKey(kind, params...)
}

// CensusKey generates a prefixed census key.
func (k *ScopedKeyer) CensusKey(kind string, max int) string {
	return k.prefix + k.inner.CensusKey(kind, max)
}
