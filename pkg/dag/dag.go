package dag

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a directed cycle is
	// found. Formula definitions may legitimately depend on each other, so a
	// tree built from them is allowed to carry cycles; callers that need an
	// acyclic view use [DAG.BackEdges].
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Metadata stores arbitrary key-value pairs attached to nodes, edges or the
// graph. Maps are never nil once added to a DAG.
type Metadata map[string]any

// Node is one formula in a dependency tree.
type Node struct {
	ID   string   // Full formula name, unique within the graph
	Row  int      // Shortest distance from the nearest source (see AssignRows)
	Meta Metadata // Version, spec, description...
}

// Edge is a "depends on" relation. Meta typically carries the declared tags.
type Edge struct {
	From string
	To   string
	Meta Metadata
}

// DAG is a directed graph of formulae and the dependencies between them.
// Nodes and edges are kept in insertion order so that renderings are stable.
//
// The zero value is not usable; create graphs with New. A DAG is not safe for
// concurrent use.
type DAG struct {
	order    []string
	nodes    map[string]*Node
	edges    []Edge
	edgeSet  map[[2]string]int
	outgoing map[string][]string
	incoming map[string][]string
	meta     Metadata
}

// New creates an empty DAG with optional graph-level metadata.
func New(meta Metadata) *DAG {
	if meta == nil {
		meta = Metadata{}
	}
	return &DAG{
		nodes:    make(map[string]*Node),
		edgeSet:  make(map[[2]string]int),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
func (d *DAG) Meta() Metadata { return d.meta }

// AddNode adds n to the graph. It returns ErrInvalidNodeID for an empty ID
// and ErrDuplicateNodeID if the ID is taken.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	d.nodes[n.ID] = &n
	d.order = append(d.order, n.ID)
	return nil
}

// EnsureNode returns the node with the given ID, adding an empty one first
// if it does not exist yet.
func (d *DAG) EnsureNode(id string) (*Node, error) {
	if n, ok := d.nodes[id]; ok {
		return n, nil
	}
	if err := d.AddNode(Node{ID: id}); err != nil {
		return nil, err
	}
	return d.nodes[id], nil
}

// AddEdge connects two existing nodes. Adding an edge that already exists
// merges e.Meta into the existing edge's metadata instead of duplicating it.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	key := [2]string{e.From, e.To}
	if i, ok := d.edgeSet[key]; ok {
		for k, v := range e.Meta {
			d.edges[i].Meta[k] = v
		}
		return nil
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	d.edgeSet[key] = len(d.edges)
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// HasEdge reports whether from depends on to.
func (d *DAG) HasEdge(from, to string) bool {
	_, ok := d.edgeSet[[2]string{from, to}]
	return ok
}

// Edge returns the edge from -> to.
func (d *DAG) Edge(from, to string) (Edge, bool) {
	i, ok := d.edgeSet[[2]string{from, to}]
	if !ok {
		return Edge{}, false
	}
	return d.edges[i], true
}

// Nodes returns all nodes in insertion order. The pointers refer to the
// graph's own nodes.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, 0, len(d.order))
	for _, id := range d.order {
		nodes = append(nodes, d.nodes[id])
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the dependencies of id in insertion order. The slice must
// not be modified.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the dependents of id in insertion order. The slice must not
// be modified.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// Node returns the node with the given ID.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Sources returns nodes with no incoming edges, in insertion order.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, id := range d.order {
		if len(d.incoming[id]) == 0 {
			sources = append(sources, d.nodes[id])
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges, in insertion order.
func (d *DAG) Sinks() []*Node {
	var sinks []*Node
	for _, id := range d.order {
		if len(d.outgoing[id]) == 0 {
			sinks = append(sinks, d.nodes[id])
		}
	}
	return sinks
}

// Validate returns ErrGraphHasCycle if the graph has a directed cycle.
func (d *DAG) Validate() error {
	if len(d.BackEdges()) > 0 {
		return ErrGraphHasCycle
	}
	return nil
}

// BackEdges returns the edges that close a cycle, found by a depth-first
// search starting from the sources and then from any unvisited node, both in
// insertion order. Removing them leaves the graph acyclic.
func (d *DAG) BackEdges() []Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var back []Edge

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				back = append(back, d.edges[d.edgeSet[[2]string{id, child}]])
			}
		}
		color[id] = black
	}

	for _, n := range d.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	for _, id := range d.order {
		if color[id] == white {
			dfs(id)
		}
	}
	return back
}

// AssignRows sets every reachable node's Row to its breadth-first distance
// from the closest source. Nodes only reachable through a cycle keep row 0.
func (d *DAG) AssignRows() {
	seen := make(map[string]bool, len(d.nodes))
	var queue []string
	for _, n := range d.Sources() {
		n.Row = 0
		seen[n.ID] = true
		queue = append(queue, n.ID)
	}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, child := range d.outgoing[curr] {
			if seen[child] {
				continue
			}
			seen[child] = true
			d.nodes[child].Row = d.nodes[curr].Row + 1
			queue = append(queue, child)
		}
	}
}

// NodeIDs extracts the IDs from a slice of nodes, preserving order.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
