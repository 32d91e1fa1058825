package dependency

import (
	"slices"

	"github.com/vladshablinsky/brew/pkg/tap"
	"github.com/vladshablinsky/brew/pkg/version"
)

// Formula is the view of a package definition the engine needs. Concrete
// definitions live in package formula.
type Formula interface {
	// Name returns the bare formula name.
	Name() string
	// FullName returns the bare name for core formulae and "user/repo/name"
	// for formulae from other taps.
	FullName() string
	// Tap returns the tap the definition was loaded from.
	Tap() tap.Tap
	// Deps returns the declared dependencies of the active spec, in
	// declaration order.
	Deps() []*Dependency
	// ActiveSpec returns the lineage the definition was loaded with.
	ActiveSpec() Spec
	// VersionScheme returns the definition's version-numbering scheme.
	VersionScheme() int
	// Version returns the version of the given lineage, if defined.
	Version(spec Spec) (version.Version, bool)
	// Options returns the build option names the definition accepts.
	Options() []string
	// BuildWith reports whether the dependent's active build configuration
	// requested d.
	BuildWith(d Dependable) bool
}

// Loader loads package definitions by bare or tap-qualified name.
type Loader interface {
	// Load returns the definition of name at spec, configured with the given
	// build options. A missing definition fails with FORMULA_UNAVAILABLE.
	Load(name string, spec Spec, options []string) (Formula, error)
}

// Receipt is the installation metadata recorded for an installed artifact.
type Receipt struct {
	Tap           tap.Tap                  // Tap the artifact was built from (zero when unrecorded)
	Spec          Spec                     // Lineage the artifact was built from
	VersionScheme int                      // Version-numbering scheme at install time
	Versions      map[Spec]version.Version // Per-lineage versions recorded at install time
	UsedOptions   []string                 // Build options the artifact was built with
}

// Installation is an installed artifact together with the definition it
// resolves to.
type Installation struct {
	Name     string            // Rack name (bare formula name)
	Version  version.Version   // Newest installed version
	Versions []version.Version // Every installed version
	Formula  Formula           // Definition loaded from the receipt's tap and spec
	Receipt  *Receipt          // Nil when the artifact has no installation metadata
}

// HasVersion reports whether v is among the installed versions.
func (i *Installation) HasVersion(v version.Version) bool {
	return slices.ContainsFunc(i.Versions, v.Equal)
}

// Cellar looks up installed artifacts by bare formula name.
type Cellar interface {
	// Installation returns the installed artifact for name, or nil when
	// nothing is installed under that name.
	Installation(name string) (*Installation, error)
}
