// Package formula loads package definitions.
//
// A definition is a TOML file under a tap's Formula directory. [New] turns a
// decoded [Definition] into a [Formula] configured for one lineage and one set
// of build arguments. [Registry] serves definitions held in memory and
// [Formulary] serves them from tap checkouts on disk; both resolve bare and
// tap-qualified names the same way and implement [dependency.Loader].
package formula

import (
	"slices"

	"github.com/vladshablinsky/brew/pkg/dependency"
	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
	"github.com/vladshablinsky/brew/pkg/tap"
	"github.com/vladshablinsky/brew/pkg/version"
)

// Formula is a definition loaded for one lineage and build configuration.
type Formula struct {
	def     *Definition
	tap     tap.Tap
	path    string
	active  dependency.Spec
	deps    []*dependency.Dependency
	options []Option
	build   BuildOptions
}

var _ dependency.Formula = (*Formula)(nil)

// New loads def from t at spec with the given build arguments. When def lacks
// the requested spec the stable lineage is used; a definition without any
// lineage fails with INVALID_FORMULA.
func New(def *Definition, t tap.Tap, spec dependency.Spec, args []string) (*Formula, error) {
	if err := brewerrors.ValidateFormulaName(def.Name); err != nil {
		return nil, brewerrors.Wrap(brewerrors.ErrCodeInvalidFormula, err, "definition name")
	}

	active := spec
	if def.Block(active) == nil {
		specs := def.Specs()
		if len(specs) == 0 {
			return nil, brewerrors.New(brewerrors.ErrCodeInvalidFormula, "%s defines no stable, devel or head version", def.Name)
		}
		active = specs[0]
	}

	deps, err := def.declare(active)
	if err != nil {
		return nil, err
	}

	f := &Formula{def: def, tap: t, active: active, deps: deps}
	f.options = f.collectOptions()
	names := make([]string, len(f.options))
	for i, o := range f.options {
		names[i] = o.Name
	}
	f.build = NewBuildOptions(args, names)
	return f, nil
}

// collectOptions returns explicit options followed by generated ones:
// "with-<n>" for optional dependencies and "without-<n>" for recommended ones.
func (f *Formula) collectOptions() []Option {
	opts := slices.Clone(f.def.Options)
	defined := func(name string) bool {
		return slices.ContainsFunc(opts, func(o Option) bool { return o.Name == name })
	}
	for _, d := range f.deps {
		for _, n := range d.OptionNames() {
			switch {
			case d.IsOptional() && !defined("with-"+n):
				opts = append(opts, Option{Name: "with-" + n, Description: "Build with " + n + " support"})
			case d.IsRecommended() && !defined("without-"+n):
				opts = append(opts, Option{Name: "without-" + n, Description: "Build without " + n + " support"})
			}
		}
	}
	return opts
}

// Name returns the bare name.
func (f *Formula) Name() string { return f.def.Name }

// FullName returns the bare name for core formulae and the tap-qualified name
// otherwise.
func (f *Formula) FullName() string {
	if f.tap.IsCore() || f.tap.IsZero() {
		return f.def.Name
	}
	return f.tap.Qualify(f.def.Name)
}

// Tap returns the tap the definition came from.
func (f *Formula) Tap() tap.Tap { return f.tap }

// Path returns the definition file, if loaded from disk.
func (f *Formula) Path() string { return f.path }

// Desc returns the one-line description.
func (f *Formula) Desc() string { return f.def.Desc }

// Homepage returns the homepage URL.
func (f *Formula) Homepage() string { return f.def.Homepage }

// Definition returns the underlying definition.
func (f *Formula) Definition() *Definition { return f.def }

// Deps returns the declarations of the active lineage.
func (f *Formula) Deps() []*dependency.Dependency { return slices.Clone(f.deps) }

// ActiveSpec returns the lineage in use.
func (f *Formula) ActiveSpec() dependency.Spec { return f.active }

// VersionScheme returns the version-numbering scheme.
func (f *Formula) VersionScheme() int { return f.def.VersionScheme }

// Version returns the version of spec. A head block without an explicit
// version is "HEAD".
func (f *Formula) Version(spec dependency.Spec) (version.Version, bool) {
	b := f.def.Block(spec)
	if b == nil {
		return version.Version{}, false
	}
	raw := b.Version
	if raw == "" && spec == dependency.SpecHead {
		raw = "HEAD"
	}
	v, err := version.Parse(raw)
	if err != nil {
		return version.Version{}, false
	}
	return v, true
}

// Options returns the names of every option the formula accepts.
func (f *Formula) Options() []string {
	out := make([]string, len(f.options))
	for i, o := range f.options {
		out[i] = o.Name
	}
	return out
}

// OptionDefs returns the options with their descriptions.
func (f *Formula) OptionDefs() []Option { return slices.Clone(f.options) }

// Build returns the build configuration.
func (f *Formula) Build() BuildOptions { return f.build }

// BuildWith reports whether the build configuration enables d.
func (f *Formula) BuildWith(d dependency.Dependable) bool { return f.build.With(d) }
