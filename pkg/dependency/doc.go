// Package dependency expands and reconciles formula dependencies.
//
// A [Dependency] is a declared edge to another formula: a name, a set of
// [Tags], the option names used to match the dependent's build options, an
// optional build environment effect and a resolved [Spec]. Identity is
// (name, tags) only.
//
// # Classification
//
// Tags classify necessity (required, recommended, optional) and temporality
// (build-only, run-only, both). Any other tag is an option association.
//
// # Expansion
//
// An [Expander] walks a dependent's declarations depth first. For each one it
// resolves the upgrade spec against the cellar ([ResolveUpgradeSpec]), asks the
// [Policy] for an [Action], and either prunes it, skips it while keeping its
// subtree, keeps it shallow, or expands its subtree before appending it:
//
//	e := dependency.NewExpander(formulary, cellar, dependency.Options{})
//	deps, err := e.Expand(ctx, wget)
//
// Names already being expanded are not expanded again, so cycles terminate
// without error. [Expander.ExpandUnmerged] returns the raw sequence and
// [MergeRepeats] collapses it to one entry per name.
//
// # Tap-scoped dependencies
//
// A qualified name such as "homebrew/science/samtools" yields a tap-scoped
// dependency ([NewTap]). Its option name is the trailing component, and
// [Dependency.Installed] reports a missing definition as "not installed"
// instead of failing.
package dependency
