package cache

// ScopedKeyer wraps a Keyer with a prefix, giving separate namespaces to
// deployments that share one Redis instance.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "brewdeps:staging:")
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

// DepsKey generates a prefixed dependency listing key.
func (k *ScopedKeyer) DepsKey(opts DepsKeyOpts) string {
	return k.prefix + k.inner.DepsKey(opts)
}

// TreeKey generates a prefixed tree key.
func (k *ScopedKeyer) TreeKey(opts TreeKeyOpts) string {
	return k.prefix + k.inner.TreeKey(opts)
}

// UpgradeKey generates a prefixed upgrade-spec key.
func (k *ScopedKeyer) UpgradeKey(formula, formulary, cellar string) string {
	return k.prefix + k.inner.UpgradeKey(formula, formulary, cellar)
}
