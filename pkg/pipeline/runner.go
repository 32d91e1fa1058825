package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vladshablinsky/brew/pkg/cache"
	"github.com/vladshablinsky/brew/pkg/dag"
	"github.com/vladshablinsky/brew/pkg/dependency"
	"github.com/vladshablinsky/brew/pkg/render"
)

// Runner executes dependency listings with caching.
//
// The Runner holds no per-request state. Multiple goroutines can safely use
// the same Runner as long as its loader and cellar are safe for concurrent
// use (Formulary, Registry, cellar.Dir and cellar.Memory all are).
type Runner struct {
	Loader dependency.Loader
	Cellar dependency.Cellar
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner over loader and cellar. A nil cache disables
// caching, a nil keyer selects the DefaultKeyer and a nil logger discards
// output. cellar may be nil, in which case nothing counts as installed.
func NewRunner(loader dependency.Loader, cellar dependency.Cellar, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Loader: loader,
		Cellar: cellar,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Deps returns the merged effective dependencies of req.Formulae.
func (r *Runner) Deps(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	key, cacheable := r.depsKey(req)
	if cacheable && !req.Refresh {
		if res, ok := r.cachedDeps(ctx, key); ok {
			res.Stats = Stats{CacheHit: true, Duration: time.Since(start)}
			r.Logger.Debug("deps cache hit", "formulae", req.Formulae)
			return res, nil
		}
		r.Logger.Debug("deps cache miss", "formulae", req.Formulae)
	}

	lists, err := r.expandAll(ctx, req)
	if err != nil {
		return nil, err
	}

	var deps []*dependency.Dependency
	switch {
	case len(lists) == 1:
		deps = lists[0]
	case req.Union:
		deps = union(lists)
	default:
		deps = intersect(lists)
	}

	res := &Result{Formulae: req.Formulae, Deps: deps}
	if cacheable {
		if entry, ok := encodeResult(res); !ok {
			r.Logger.Debug("deps not cached: opaque environment effect", "formulae", req.Formulae)
		} else if err := cache.SetJSON(ctx, r.Cache, "deps", key, entry, cache.TTLDeps); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		}
	}
	res.Stats = Stats{Duration: time.Since(start)}

	r.Logger.Info("expanded dependencies",
		"formulae", req.Formulae,
		"deps", len(deps),
		"duration", res.Stats.Duration)
	return res, nil
}

func (r *Runner) cachedDeps(ctx context.Context, key string) (*Result, bool) {
	var entry cachedResult
	if err := cache.GetJSON(ctx, r.Cache, "deps", key, &entry); err != nil {
		return nil, false
	}
	res, err := entry.decode()
	if err != nil {
		r.Logger.Debug("discarding cached deps", "error", err)
		return nil, false
	}
	return res, true
}

// expandAll expands every root concurrently. Each expansion runs its own
// stack; the first failure cancels the others.
func (r *Runner) expandAll(ctx context.Context, req Request) ([][]*dependency.Dependency, error) {
	exp := r.expander(req.Filter.Policy())
	lists := make([][]*dependency.Dependency, len(req.Formulae))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range req.Formulae {
		g.Go(func() error {
			f, err := r.Loader.Load(name, dependency.SpecStable, nil)
			if err != nil {
				return fmt.Errorf("load %s: %w", name, err)
			}
			deps, err := exp.Expand(gctx, f)
			if err != nil {
				return err
			}
			lists[i] = deps
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lists, nil
}

// Tree returns the dependency tree of req.Formula under req.Filter: one node
// per formula reached and one edge per declaration kept by the filter.
func (r *Runner) Tree(ctx context.Context, req TreeRequest) (*dag.DAG, error) {
	name, filter := req.Formula, req.Filter
	if err := (Request{Formulae: []string{name}}).Validate(); err != nil {
		return nil, err
	}

	key, cacheable := r.treeKey(name, filter)
	if cacheable && !req.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if g, err := render.ReadJSON(bytes.NewReader(data)); err == nil {
				r.Logger.Debug("tree cache hit", "formula", name)
				return g, nil
			}
		}
		r.Logger.Debug("tree cache miss", "formula", name)
	}

	f, err := r.Loader.Load(name, dependency.SpecStable, nil)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	b := newTreeBuilder(filter.Policy())
	b.visit(f)
	if _, err := r.expander(b.policy).ExpandUnmerged(ctx, f, f.Deps()); err != nil {
		return nil, err
	}
	g, err := b.build()
	if err != nil {
		return nil, err
	}

	if cacheable {
		var buf bytes.Buffer
		if err := render.WriteJSON(g, &buf); err == nil {
			_ = r.Cache.Set(ctx, key, buf.Bytes(), cache.TTLTree)
		}
	}

	r.Logger.Info("built dependency tree",
		"formula", f.FullName(),
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount())
	return g, nil
}

// UpgradeSpecs reports the spec each dependency declared by req.Formula
// would be upgraded with, given what is installed.
func (r *Runner) UpgradeSpecs(ctx context.Context, req UpgradeRequest) ([]UpgradeSpec, error) {
	name := req.Formula
	if err := (Request{Formulae: []string{name}}).Validate(); err != nil {
		return nil, err
	}

	key, cacheable := r.upgradeKey(name)
	if cacheable && !req.Refresh {
		var cached []UpgradeSpec
		if err := cache.GetJSON(ctx, r.Cache, "upgrade", key, &cached); err == nil {
			r.Logger.Debug("upgrade cache hit", "formula", name)
			return cached, nil
		}
		r.Logger.Debug("upgrade cache miss", "formula", name)
	}

	f, err := r.Loader.Load(name, dependency.SpecStable, nil)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	out := make([]UpgradeSpec, 0, len(f.Deps()))
	for _, d := range f.Deps() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, UpgradeSpec{
			Name: d.Name(),
			Tags: d.Tags().Strings(),
			Spec: dependency.ResolveUpgradeSpec(d, r.Cellar),
		})
	}

	if cacheable {
		if err := cache.SetJSON(ctx, r.Cache, "upgrade", key, out, cache.TTLUpgrade); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		}
	}
	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) expander(p dependency.Policy) *dependency.Expander {
	return dependency.NewExpander(r.Loader, r.Cellar, dependency.Options{
		Policy: p,
		Logger: func(format string, args ...any) { r.Logger.Debugf(format, args...) },
	})
}

// fingerprints returns the loader and cellar fingerprints, or false when
// either cannot provide one. A nil cellar fingerprints as empty.
func (r *Runner) fingerprints() (string, string, bool) {
	lf, ok := r.Loader.(Fingerprinter)
	if !ok {
		return "", "", false
	}
	loaderFP, err := lf.Fingerprint()
	if err != nil {
		r.Logger.Debug("loader fingerprint unavailable", "error", err)
		return "", "", false
	}
	if r.Cellar == nil {
		return loaderFP, "", true
	}
	cf, ok := r.Cellar.(Fingerprinter)
	if !ok {
		return "", "", false
	}
	cellarFP, err := cf.Fingerprint()
	if err != nil {
		r.Logger.Debug("cellar fingerprint unavailable", "error", err)
		return "", "", false
	}
	return loaderFP, cellarFP, true
}

func (r *Runner) depsKey(req Request) (string, bool) {
	if _, null := r.Cache.(*cache.NullCache); null {
		return "", false
	}
	lfp, cfp, ok := r.fingerprints()
	if !ok {
		return "", false
	}
	return r.Keyer.DepsKey(cache.DepsKeyOpts{
		Formulae:        req.Formulae,
		IncludeBuild:    req.Filter.IncludeBuild,
		IncludeOptional: req.Filter.IncludeOptional,
		SkipRecommended: req.Filter.SkipRecommended,
		OnlyDirect:      req.Filter.OnlyDirect,
		Union:           req.Union,
		Formulary:       lfp,
		Cellar:          cfp,
	}), true
}

func (r *Runner) treeKey(name string, filter dependency.Filter) (string, bool) {
	if _, null := r.Cache.(*cache.NullCache); null {
		return "", false
	}
	lfp, cfp, ok := r.fingerprints()
	if !ok {
		return "", false
	}
	return r.Keyer.TreeKey(cache.TreeKeyOpts{
		Formula:         name,
		IncludeBuild:    filter.IncludeBuild,
		IncludeOptional: filter.IncludeOptional,
		SkipRecommended: filter.SkipRecommended,
		OnlyDirect:      filter.OnlyDirect,
		Formulary:       lfp,
		Cellar:          cfp,
	}), true
}

func (r *Runner) upgradeKey(name string) (string, bool) {
	if _, null := r.Cache.(*cache.NullCache); null {
		return "", false
	}
	lfp, cfp, ok := r.fingerprints()
	if !ok {
		return "", false
	}
	return r.Keyer.UpgradeKey(name, lfp, cfp), true
}
