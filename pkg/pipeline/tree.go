package pipeline

import (
	"slices"

	"github.com/vladshablinsky/brew/pkg/dag"
	"github.com/vladshablinsky/brew/pkg/dependency"
	"github.com/vladshablinsky/brew/pkg/render"
	"github.com/vladshablinsky/brew/pkg/tap"
)

type treeEdge struct {
	from string
	to   string
	tags []string
	spec dependency.Spec
}

// treeBuilder records the tree while an expansion runs, by observing every
// (dependent, dependency) decision of the wrapped policy.
//
// Declarations name dependencies the way the formula author wrote them, so
// a bare name may refer to a formula that actually lives in a third-party
// tap. Edge targets are folded onto the full names of the formulae that
// the walk loaded, once it is finished.
type treeBuilder struct {
	inner   dependency.Policy
	order   []string
	nodes   map[string]dag.Metadata
	aliases map[string][]string
	edges   []treeEdge
}

func newTreeBuilder(p dependency.Policy) *treeBuilder {
	return &treeBuilder{
		inner:   p,
		nodes:   make(map[string]dag.Metadata),
		aliases: make(map[string][]string),
	}
}

func (b *treeBuilder) policy(dependent dependency.Formula, dep *dependency.Dependency) dependency.Action {
	action := b.inner(dependent, dep)
	b.visit(dependent)
	if action != dependency.ActionPrune {
		b.edges = append(b.edges, treeEdge{
			from: dependent.FullName(),
			to:   dep.Name(),
			tags: dep.Tags().Strings(),
			spec: dep.Spec(),
		})
	}
	return action
}

// visit records f as a node, once.
func (b *treeBuilder) visit(f dependency.Formula) {
	id := f.FullName()
	if _, ok := b.nodes[id]; ok {
		return
	}
	meta := dag.Metadata{render.MetaSpec: f.ActiveSpec().String()}
	if v, ok := f.Version(f.ActiveSpec()); ok {
		meta[render.MetaVersion] = v.String()
	}
	if d, ok := f.(interface{ Desc() string }); ok && d.Desc() != "" {
		meta[render.MetaDesc] = d.Desc()
	}
	b.nodes[id] = meta
	b.order = append(b.order, id)
	if base := f.Name(); base != id && !slices.Contains(b.aliases[base], id) {
		b.aliases[base] = append(b.aliases[base], id)
	}
}

// resolve maps a declared name onto a node ID.
func (b *treeBuilder) resolve(name string) string {
	if tapName, base, ok := tap.SplitQualified(name); ok {
		if t, err := tap.Parse(tapName); err == nil && t.IsCore() {
			return base
		}
		return name
	}
	if _, ok := b.nodes[name]; ok {
		return name
	}
	if full := b.aliases[name]; len(full) == 1 {
		return full[0]
	}
	return name
}

func (b *treeBuilder) build() (*dag.DAG, error) {
	g := dag.New(nil)
	for _, id := range b.order {
		if err := g.AddNode(dag.Node{ID: id, Meta: b.nodes[id]}); err != nil {
			return nil, err
		}
	}
	for _, e := range b.edges {
		to := b.resolve(e.to)
		if _, err := g.EnsureNode(to); err != nil {
			return nil, err
		}
		meta := dag.Metadata{}
		if len(e.tags) > 0 {
			meta[render.MetaTags] = e.tags
		}
		if e.spec != dependency.SpecStable {
			meta[render.MetaSpec] = e.spec.String()
		}
		if err := g.AddEdge(dag.Edge{From: e.from, To: to, Meta: meta}); err != nil {
			return nil, err
		}
	}
	g.AssignRows()
	return g, nil
}
