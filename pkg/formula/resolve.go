package formula

import (
	"slices"

	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
	"github.com/vladshablinsky/brew/pkg/tap"
)

// resolve maps a bare or qualified name to the tap that provides it.
// providers lists the taps defining a bare name.
//
// Qualified names resolve to their tap without consulting providers. A bare
// name resolves to the core tap when core provides it, else to the single
// other provider. Several providers fail with AMBIGUOUS_FORMULA and none with
// FORMULA_UNAVAILABLE.
func resolve(name string, providers func(base string) ([]tap.Tap, error)) (tap.Tap, string, error) {
	if err := brewerrors.ValidateFormulaName(name); err != nil {
		return tap.Tap{}, "", err
	}
	if _, _, ok := tap.SplitQualified(name); ok {
		t, err := tap.FromQualified(name)
		if err != nil {
			return tap.Tap{}, "", err
		}
		return t, tap.BaseName(name), nil
	}

	found, err := providers(name)
	if err != nil {
		return tap.Tap{}, "", err
	}
	switch {
	case slices.Contains(found, tap.Core):
		return tap.Core, name, nil
	case len(found) == 1:
		return found[0], name, nil
	case len(found) > 1:
		candidates := make([]string, len(found))
		for i, t := range found {
			candidates[i] = t.Qualify(name)
		}
		slices.Sort(candidates)
		return tap.Tap{}, "", &brewerrors.AmbiguousFormulaError{Name: name, Candidates: candidates}
	}
	return tap.Tap{}, "", brewerrors.FormulaUnavailable(name)
}
