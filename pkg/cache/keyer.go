package cache

import (
	"slices"
	"strings"
)

// DepsKeyOpts identifies one dependency listing.
type DepsKeyOpts struct {
	Formulae        []string // Root formulae (order-insensitive)
	IncludeBuild    bool
	IncludeOptional bool
	SkipRecommended bool
	OnlyDirect      bool
	Union           bool
	Formulary       string // Fingerprint of the definitions
	Cellar          string // Fingerprint of the installed kegs
}

// TreeKeyOpts identifies one dependency tree.
type TreeKeyOpts struct {
	Formula         string
	IncludeBuild    bool
	IncludeOptional bool
	SkipRecommended bool
	OnlyDirect      bool
	Formulary       string
	Cellar          string
}

// Keyer builds cache keys.
type Keyer interface {
	// DepsKey returns the key of a merged dependency listing.
	DepsKey(opts DepsKeyOpts) string

	// TreeKey returns the key of a dependency tree.
	TreeKey(opts TreeKeyOpts) string

	// UpgradeKey returns the key of the upgrade specs of a formula's
	// declared dependencies.
	UpgradeKey(formula, formulary, cellar string) string
}

// DefaultKeyer hashes every key component.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DepsKey implements Keyer.
func (DefaultKeyer) DepsKey(opts DepsKeyOpts) string {
	roots := slices.Clone(opts.Formulae)
	slices.Sort(roots)
	opts.Formulae = roots
	return hashKey("deps:"+strings.Join(roots, ","), opts)
}

// TreeKey implements Keyer.
func (DefaultKeyer) TreeKey(opts TreeKeyOpts) string {
	return hashKey("tree:"+opts.Formula, opts)
}

// UpgradeKey implements Keyer.
func (DefaultKeyer) UpgradeKey(formula, formulary, cellar string) string {
	return hashKey("upgrade:"+formula, formula, formulary, cellar)
}

var _ Keyer = DefaultKeyer{}
