package dependency

// Filter selects which dependencies a listing includes, the way `brew deps`
// flags do.
type Filter struct {
	IncludeBuild    bool // Keep build-only dependencies
	IncludeOptional bool // Keep optional dependencies even when not requested
	SkipRecommended bool // Drop recommended dependencies even when requested
	OnlyDirect      bool // Do not expand beyond the declared dependencies
}

// Policy returns the expansion policy for f.
//
// Recommended dependencies are pruned when skipped or when the dependent's
// build excludes them. Optional dependencies are pruned unless included or
// requested. Build-only dependencies are pruned unless included.
func (f Filter) Policy() Policy {
	return func(dependent Formula, dep *Dependency) Action {
		switch {
		case dep.IsRecommended():
			if f.SkipRecommended || !dependent.BuildWith(dep) {
				return ActionPrune
			}
		case dep.IsOptional():
			if !f.IncludeOptional && !dependent.BuildWith(dep) {
				return ActionPrune
			}
		}
		if dep.IsBuild() && !f.IncludeBuild {
			return ActionPrune
		}
		if f.OnlyDirect {
			return ActionKeepButPruneRecursiveDeps
		}
		return ActionDefault
	}
}

// RequiredBuildOnly keeps only required build-time dependencies, at every
// depth.
func RequiredBuildOnly(_ Formula, dep *Dependency) Action {
	if dep.IsRequired() && dep.IsBuild() {
		return ActionDefault
	}
	return ActionPrune
}
