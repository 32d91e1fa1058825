package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vladshablinsky/brew/pkg/dag"
)

type graph struct {
	Meta  dag.Metadata `json:"meta,omitempty"`
	Nodes []node       `json:"nodes"`
	Edges []edge       `json:"edges"`
}

type node struct {
	ID    string       `json:"id"`
	Depth int          `json:"depth"`
	Meta  dag.Metadata `json:"meta,omitempty"`
}

type edge struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Tags  []string `json:"tags,omitempty"`
	Spec  string   `json:"spec,omitempty"`
	Cycle bool     `json:"cycle,omitempty"`
}

// WriteJSON encodes g as indented JSON. Edge tags and specs are lifted out
// of the edge metadata; edges that close a cycle are flagged.
func WriteJSON(g *dag.DAG, w io.Writer) error {
	back := make(map[[2]string]bool)
	for _, e := range g.BackEdges() {
		back[[2]string{e.From, e.To}] = true
	}

	out := graph{
		Nodes: make([]node, 0, g.NodeCount()),
		Edges: make([]edge, 0, g.EdgeCount()),
	}
	if len(g.Meta()) > 0 {
		out.Meta = g.Meta()
	}
	for _, n := range g.Nodes() {
		nd := node{ID: n.ID, Depth: n.Row}
		if len(n.Meta) > 0 {
			nd.Meta = n.Meta
		}
		out.Nodes = append(out.Nodes, nd)
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edge{
			From:  e.From,
			To:    e.To,
			Tags:  tagsOf(e.Meta),
			Spec:  specOf(e.Meta),
			Cycle: back[[2]string{e.From, e.To}],
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a graph written by WriteJSON. Duplicate node IDs and edges
// referencing unknown nodes are reported with the offending element.
func ReadJSON(r io.Reader) (*dag.DAG, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := dag.New(data.Meta)
	for _, n := range data.Nodes {
		if err := g.AddNode(dag.Node{ID: n.ID, Row: n.Depth, Meta: n.Meta}); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		meta := dag.Metadata{}
		if len(e.Tags) > 0 {
			meta[MetaTags] = e.Tags
		}
		if e.Spec != "" {
			meta[MetaSpec] = e.Spec
		}
		if err := g.AddEdge(dag.Edge{From: e.From, To: e.To, Meta: meta}); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	return g, nil
}
