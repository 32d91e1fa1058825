// Package render turns a dependency tree ([dag.DAG]) into output formats.
//
//   - [ToDOT] produces Graphviz DOT source.
//   - [RenderSVG] lays DOT source out in-process with go-graphviz.
//   - [WriteJSON] and [ReadJSON] serialize the graph with its metadata.
//   - [WriteText] prints an indented tree like "brew deps --tree".
//
// Renderers read a small set of metadata keys written by the pipeline:
// [MetaVersion], [MetaSpec] and [MetaDesc] on nodes, [MetaTags] and [MetaSpec]
// on edges.
// Unknown keys are carried through JSON and shown in detailed DOT labels.
//
// Edges that close a cycle are drawn dashed in DOT and marked "(cycle)" in
// the text tree, which never descends into them.
package render

import "github.com/vladshablinsky/brew/pkg/dag"

// Metadata keys understood by the renderers.
const (
	MetaVersion = "version"
	MetaSpec    = "spec"
	MetaDesc    = "desc"
	MetaTags    = "tags"
)

// tagsOf returns the tag list stored on an edge, accepting both the typed
// form written by the pipeline and the untyped form produced by JSON.
func tagsOf(m dag.Metadata) []string {
	switch v := m[MetaTags].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, t := range v {
			if s, ok := t.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func specOf(m dag.Metadata) string {
	s, _ := m[MetaSpec].(string)
	return s
}
