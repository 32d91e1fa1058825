package dependency

import (
	"slices"
	"sync"

	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
	"github.com/vladshablinsky/brew/pkg/tap"
	"github.com/vladshablinsky/brew/pkg/version"
)

type testFormula struct {
	name      string
	tap       tap.Tap
	deps      []*Dependency
	active    Spec
	scheme    int
	versions  map[Spec]version.Version
	options   []string
	requested []string
}

func newFormula(name string, deps ...*Dependency) *testFormula {
	return &testFormula{
		name:     name,
		tap:      tap.Core,
		deps:     deps,
		versions: map[Spec]version.Version{SpecStable: version.MustParse("1.0")},
	}
}

func (f *testFormula) Name() string { return f.name }

func (f *testFormula) FullName() string {
	if f.tap.IsCore() {
		return f.name
	}
	return f.tap.Qualify(f.name)
}

func (f *testFormula) Tap() tap.Tap        { return f.tap }
func (f *testFormula) Deps() []*Dependency { return f.deps }
func (f *testFormula) ActiveSpec() Spec    { return f.active }
func (f *testFormula) VersionScheme() int  { return f.scheme }
func (f *testFormula) Options() []string   { return f.options }

func (f *testFormula) Version(s Spec) (version.Version, bool) {
	v, ok := f.versions[s]
	return v, ok
}

// BuildWith treats a dependency as requested when any of its option names
// was requested.
func (f *testFormula) BuildWith(d Dependable) bool {
	for _, n := range d.OptionNames() {
		if slices.Contains(f.requested, n) {
			return true
		}
	}
	return false
}

// testLoader serves formulae by full name and records every load.
type testLoader struct {
	mu       sync.Mutex
	formulae map[string]*testFormula
	loads    map[string]Spec
}

func newLoader(fs ...*testFormula) *testLoader {
	l := &testLoader{formulae: map[string]*testFormula{}, loads: map[string]Spec{}}
	for _, f := range fs {
		l.formulae[f.FullName()] = f
	}
	return l
}

func (l *testLoader) Load(name string, spec Spec, _ []string) (Formula, error) {
	key := name
	if t, base, ok := tap.SplitQualified(name); ok && t == tap.Core.Name() {
		key = base
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loads[key] = spec
	f, ok := l.formulae[key]
	if !ok {
		return nil, brewerrors.FormulaUnavailable(name)
	}
	return f, nil
}

type testCellar struct {
	installs map[string]*Installation
	err      error
}

func (c *testCellar) Installation(name string) (*Installation, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.installs[name], nil
}

func install(f *testFormula, v string, r *Receipt) *Installation {
	ver := version.MustParse(v)
	return &Installation{Name: f.name, Version: ver, Versions: []version.Version{ver}, Formula: f, Receipt: r}
}

func names(deps []*Dependency) []string {
	out := make([]string, len(deps))
	for i, d := range deps {
		out[i] = d.Name()
	}
	return out
}
