package render

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/vladshablinsky/brew/pkg/dag"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds version, spec and any other node metadata to labels.
	Detailed bool
	// Tags labels each edge with its dependency tags.
	Tags bool
}

const dotPreamble = `digraph deps {
  rankdir=TB;
  bgcolor="transparent";
  ranksep=0.5;
  nodesep=0.3;
  node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.2,0.1"];
  edge [arrowsize=0.7];
`

// ToDOT converts a dependency tree to Graphviz DOT source. Roots get a bold
// outline, build-only edges are gray and edges that close a cycle are dashed.
func ToDOT(g *dag.DAG, opts Options) string {
	var b strings.Builder
	b.WriteString(dotPreamble)

	b.WriteString("\n")
	for _, n := range g.Nodes() {
		var a attrs
		a.add("label", fmt.Sprintf("%q", nodeLabel(*n, opts.Detailed)))
		if g.InDegree(n.ID) == 0 {
			a.add("penwidth", "2")
		}
		fmt.Fprintf(&b, "  %q%s;\n", n.ID, a)
	}

	cycles := make(map[[2]string]bool)
	for _, e := range g.BackEdges() {
		cycles[[2]string{e.From, e.To}] = true
	}

	b.WriteString("\n")
	for _, e := range g.Edges() {
		var a attrs
		tags := tagsOf(e.Meta)
		if opts.Tags && len(tags) > 0 {
			a.add("label", fmt.Sprintf("%q", strings.Join(tags, ",")))
		}
		if slices.Contains(tags, "build") && !slices.Contains(tags, "run") {
			a.add("color", "gray50")
		}
		if cycles[[2]string{e.From, e.To}] {
			a.add("style", "dashed")
		}
		fmt.Fprintf(&b, "  %q -> %q%s;\n", e.From, e.To, a)
	}

	b.WriteString("}\n")
	return b.String()
}

// attrs is an ordered DOT attribute list.
type attrs []string

func (a *attrs) add(key, value string) { *a = append(*a, key+"="+value) }

// String renders " [k=v, ...]", or nothing for an empty list.
func (a attrs) String() string {
	if len(a) == 0 {
		return ""
	}
	return " [" + strings.Join(a, ", ") + "]"
}

func nodeLabel(n dag.Node, detailed bool) string {
	if !detailed || len(n.Meta) == 0 {
		return n.ID
	}
	lines := []string{n.ID}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		lines = append(lines, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}
	return strings.Join(lines, "\n")
}
