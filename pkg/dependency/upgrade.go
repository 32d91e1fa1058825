package dependency

import (
	"fmt"

	"github.com/vladshablinsky/brew/pkg/tap"
)

// ResolveUpgradeSpec returns the lineage d should be upgraded to so that it
// satisfies the dependent, given what the cellar holds.
//
// An installed devel artifact keeps devel only while its recorded devel
// version is newer than the available stable one. A receipt that records no
// devel version compares as older than any stable version and resolves to
// stable.
//
// Resolution never fails: any lookup problem resolves to [SpecStable].
func ResolveUpgradeSpec(d Dependable, cellar Cellar) Spec {
	s, _ := resolveUpgradeSpec(d, cellar)
	return s
}

// resolveUpgradeSpec also returns the reason a lookup fell back to stable,
// for callers that log it.
func resolveUpgradeSpec(d Dependable, cellar Cellar) (Spec, error) {
	if cellar == nil {
		return SpecStable, nil
	}
	inst, err := cellar.Installation(tap.BaseName(d.Name()))
	if err != nil {
		return SpecStable, fmt.Errorf("look up %s: %w", d.Name(), err)
	}
	if inst == nil || inst.Formula == nil {
		return SpecStable, nil
	}

	f := inst.Formula
	if f.Tap() != d.Tap() {
		return SpecStable, nil
	}

	active := f.ActiveSpec()
	if active == SpecStable {
		return SpecStable, nil
	}

	r := inst.Receipt
	if r == nil {
		return active, nil
	}
	if r.VersionScheme < f.VersionScheme() {
		return SpecStable, nil
	}

	if active == SpecDevel {
		stable, hasStable := f.Version(SpecStable)
		installedDevel := r.Versions[SpecDevel]
		if hasStable && stable.GreaterThan(installedDevel) {
			return SpecStable, nil
		}
	}
	return active, nil
}
