package dependency

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vladshablinsky/brew/pkg/observability"
)

// Action is a filtering decision for one (dependent, dependency) pair.
type Action int

const (
	// ActionDefault expands the dependency's subtree, then keeps the dependency.
	ActionDefault Action = iota
	// ActionPrune drops the dependency and its entire subtree.
	ActionPrune
	// ActionSkip drops the dependency but keeps its transitive dependencies.
	ActionSkip
	// ActionKeepButPruneRecursiveDeps keeps the dependency without expanding it.
	ActionKeepButPruneRecursiveDeps
)

func (a Action) String() string {
	switch a {
	case ActionDefault:
		return "default"
	case ActionPrune:
		return "prune"
	case ActionSkip:
		return "skip"
	case ActionKeepButPruneRecursiveDeps:
		return "keep_but_prune_recursive_deps"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Policy decides what to do with dep while expanding dependent. dep already
// carries its resolved upgrade spec.
type Policy func(dependent Formula, dep *Dependency) Action

// DefaultPolicy prunes optional and recommended dependencies the dependent's
// build did not request, and expands everything else.
func DefaultPolicy(dependent Formula, dep *Dependency) Action {
	if (dep.IsOptional() || dep.IsRecommended()) && !dependent.BuildWith(dep) {
		return ActionPrune
	}
	return ActionDefault
}

// Options configures an Expander.
type Options struct {
	Policy Policy               // Filtering policy (default: DefaultPolicy)
	Logger func(string, ...any) // Debug callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Policy == nil {
		opts.Policy = DefaultPolicy
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Expander walks declared dependencies recursively.
//
// An Expander holds no per-call state and is safe for concurrent use: every
// call gets its own expansion stack.
type Expander struct {
	loader Loader
	cellar Cellar
	opts   Options
}

// NewExpander creates an Expander that loads definitions through loader and
// resolves upgrade specs against cellar. A nil cellar resolves every
// dependency to stable.
func NewExpander(loader Loader, cellar Cellar, opts Options) *Expander {
	return &Expander{loader: loader, cellar: cellar, opts: opts.WithDefaults()}
}

// WithPolicy returns a copy of e that filters with p.
func (e *Expander) WithPolicy(p Policy) *Expander {
	c := *e
	c.opts.Policy = p
	c.opts = c.opts.WithDefaults()
	return &c
}

// Expand returns the merged, ordered effective dependencies of dependent.
func (e *Expander) Expand(ctx context.Context, dependent Formula) ([]*Dependency, error) {
	return e.ExpandDeps(ctx, dependent, dependent.Deps())
}

// ExpandDeps is like Expand but walks deps instead of dependent's own
// declarations.
func (e *Expander) ExpandDeps(ctx context.Context, dependent Formula, deps []*Dependency) ([]*Dependency, error) {
	raw, err := e.ExpandUnmerged(ctx, dependent, deps)
	if err != nil {
		return nil, err
	}
	return MergeRepeats(raw), nil
}

// ExpandUnmerged returns the raw expansion sequence, transitive dependencies
// before the dependency that introduced them, with repeats left in place.
//
// A dependency whose name is already being expanded is not expanded again.
// Failures to load a definition are returned wrapped, with their code intact.
func (e *Expander) ExpandUnmerged(ctx context.Context, dependent Formula, deps []*Dependency) ([]*Dependency, error) {
	x := &expansion{Expander: e, ctx: ctx, id: uuid.NewString()}
	start := time.Now()
	hooks := observability.Expansion()
	hooks.OnExpandStart(ctx, x.id, dependent.FullName())

	out, err := x.walk(dependent, deps)
	if err != nil {
		err = fmt.Errorf("expand %s: %w", dependent.FullName(), err)
		out = nil
	}
	hooks.OnExpandComplete(ctx, x.id, dependent.FullName(), len(out), time.Since(start), err)
	return out, err
}

// frame is one dependent on the expansion stack.
type frame struct {
	name     string
	fullName string
}

func (f frame) matches(d *Dependency) bool {
	if d.canonicalName() == f.fullName {
		return true
	}
	return d.kind == KindCore && d.name == f.name
}

// expansion is the state of one top-level call.
type expansion struct {
	*Expander
	ctx   context.Context
	id    string
	stack []frame
}

func (x *expansion) walk(dependent Formula, deps []*Dependency) ([]*Dependency, error) {
	if err := x.ctx.Err(); err != nil {
		return nil, err
	}

	self := frame{name: dependent.Name(), fullName: dependent.FullName()}
	x.stack = append(x.stack, self)
	defer func() { x.stack = x.stack[:len(x.stack)-1] }()

	var out []*Dependency
	for _, decl := range deps {
		if self.matches(decl) {
			continue
		}

		dep := decl.clone()
		spec, err := resolveUpgradeSpec(dep, x.cellar)
		if err != nil {
			x.opts.Logger("upgrade spec for %s falls back to stable: %v", dep.name, err)
		}
		dep.spec = spec

		switch x.opts.Policy(dependent, dep) {
		case ActionPrune:
			continue
		case ActionSkip:
			if x.onStack(dep) {
				x.cycle(dependent, dep)
				continue
			}
			sub, err := x.descend(dep)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		case ActionKeepButPruneRecursiveDeps:
			out = append(out, dep)
		default:
			if x.onStack(dep) {
				x.cycle(dependent, dep)
				out = append(out, dep)
				continue
			}
			sub, err := x.descend(dep)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
			out = append(out, dep)
		}
	}
	return out, nil
}

func (x *expansion) descend(dep *Dependency) ([]*Dependency, error) {
	f, err := dep.ToFormula(x.loader)
	if err != nil {
		return nil, err
	}
	return x.walk(f, f.Deps())
}

func (x *expansion) onStack(dep *Dependency) bool {
	for _, f := range x.stack {
		if f.matches(dep) {
			return true
		}
	}
	return false
}

func (x *expansion) cycle(dependent Formula, dep *Dependency) {
	x.opts.Logger("cycle: %s -> %s already being expanded", dependent.FullName(), dep.name)
	observability.Expansion().OnCycle(x.ctx, x.id, dependent.FullName(), dep.name)
}
