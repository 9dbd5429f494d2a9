package cache

// ScopedKeyer prefixes every key a wrapped Keyer produces, giving
// separate datasets or server tenants isolated cache namespaces:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "snapshot:nfl-2025:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner gets the default
// keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

func (k *ScopedKeyer) TreeKey(datasetHash string, opts TreeKeyOpts) string {
	return k.prefix + k.inner.TreeKey(datasetHash, opts)
}

func (k *ScopedKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(treeHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
