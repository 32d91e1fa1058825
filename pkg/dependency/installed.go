package dependency

import (
	"slices"

	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
	"github.com/vladshablinsky/brew/pkg/tap"
)

// ToFormula loads the definition of d at its resolved spec, configured with
// d's option tags as build options.
func (d *Dependency) ToFormula(loader Loader) (Formula, error) {
	return loader.Load(d.name, d.spec, d.OptionTags().Strings())
}

// Installed reports whether the current version of d's formula is installed.
//
// For core dependencies a missing definition is returned as an error. A
// tap-scoped dependency whose definition cannot be located is reported as not
// installed instead, so unresolved taps never abort the caller.
func (d *Dependency) Installed(loader Loader, cellar Cellar) (bool, error) {
	ok, err := d.installed(loader, cellar)
	if err != nil && d.kind == KindTap && brewerrors.Is(err, brewerrors.ErrCodeFormulaUnavailable) {
		return false, nil
	}
	return ok, err
}

func (d *Dependency) installed(loader Loader, cellar Cellar) (bool, error) {
	f, err := d.ToFormula(loader)
	if err != nil {
		return false, err
	}
	if cellar == nil {
		return false, nil
	}
	inst, err := cellar.Installation(tap.BaseName(d.name))
	if err != nil || inst == nil {
		return false, err
	}
	current, ok := f.Version(f.ActiveSpec())
	if !ok {
		return false, nil
	}
	return inst.HasVersion(current), nil
}

// Satisfied reports whether d is installed and was built with every option
// the dependent needs.
func (d *Dependency) Satisfied(loader Loader, cellar Cellar, inherited []string) (bool, error) {
	ok, err := d.Installed(loader, cellar)
	if err != nil || !ok {
		return false, err
	}
	missing, err := d.MissingOptions(loader, cellar, inherited)
	if err != nil {
		return false, err
	}
	return len(missing) == 0, nil
}

// MissingOptions returns the options d's formula accepts that are requested
// (by d's option tags or inherited from the dependent) but were not used when
// the installed artifact was built.
func (d *Dependency) MissingOptions(loader Loader, cellar Cellar, inherited []string) ([]string, error) {
	f, err := d.ToFormula(loader)
	if err != nil {
		return nil, err
	}

	required := uniqueStrings(append(d.OptionTags().Strings(), inherited...))
	accepted := f.Options()
	required = slices.DeleteFunc(required, func(o string) bool { return !slices.Contains(accepted, o) })

	var used []string
	if cellar != nil {
		inst, err := cellar.Installation(tap.BaseName(d.name))
		if err != nil {
			return nil, err
		}
		if inst != nil && inst.Receipt != nil {
			used = inst.Receipt.UsedOptions
		}
	}
	return slices.DeleteFunc(required, func(o string) bool { return slices.Contains(used, o) }), nil
}
