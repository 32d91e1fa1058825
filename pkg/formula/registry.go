package formula

import (
	"slices"
	"sync"

	"github.com/vladshablinsky/brew/pkg/dependency"
	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
	"github.com/vladshablinsky/brew/pkg/tap"
)

// Registry holds definitions in memory. It is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	defs map[tap.Tap]map[string]*Definition
}

var _ dependency.Loader = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[tap.Tap]map[string]*Definition)}
}

// Add registers def under t, replacing any definition with the same name.
func (r *Registry) Add(t tap.Tap, def *Definition) error {
	if err := brewerrors.ValidateFormulaName(def.Name); err != nil {
		return brewerrors.Wrap(brewerrors.ErrCodeInvalidFormula, err, "register %s", t.Qualify(def.Name))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.defs[t] == nil {
		r.defs[t] = make(map[string]*Definition)
	}
	r.defs[t][def.Name] = def
	return nil
}

// MustAdd is like Add but panics on error.
func (r *Registry) MustAdd(t tap.Tap, def *Definition) {
	if err := r.Add(t, def); err != nil {
		panic(err)
	}
}

// Load implements dependency.Loader.
func (r *Registry) Load(name string, spec dependency.Spec, options []string) (dependency.Formula, error) {
	return r.LoadFormula(name, spec, options)
}

// LoadFormula resolves name and loads its definition.
func (r *Registry) LoadFormula(name string, spec dependency.Spec, options []string) (*Formula, error) {
	t, base, err := resolve(name, r.providers)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	def, ok := r.defs[t][base]
	r.mu.RUnlock()
	if !ok {
		return nil, brewerrors.FormulaUnavailable(name)
	}
	return New(def, t, spec, options)
}

// Names returns the full names of every registered definition, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for t, defs := range r.defs {
		for name := range defs {
			if t.IsCore() {
				out = append(out, name)
			} else {
				out = append(out, t.Qualify(name))
			}
		}
	}
	slices.Sort(out)
	return out
}

func (r *Registry) providers(base string) ([]tap.Tap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []tap.Tap
	for t, defs := range r.defs {
		if _, ok := defs[base]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}
