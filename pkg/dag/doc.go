// Package dag records dependency trees as directed graphs for rendering.
//
// Nodes are formulae keyed by their full name and edges point from a
// dependent to the dependency it declares:
//
//	g := dag.New(nil)
//	_ = g.AddNode(dag.Node{ID: "wget"})
//	_ = g.AddNode(dag.Node{ID: "openssl@3"})
//	_ = g.AddEdge(dag.Edge{From: "wget", To: "openssl@3"})
//
// Formula definitions can depend on each other, so unlike a strict DAG the
// graph accepts cycles. [DAG.Validate] reports them and [DAG.BackEdges]
// returns the edges to ignore for an acyclic view.
//
// Nodes, edges, children and parents are all returned in insertion order,
// which keeps DOT, JSON and text renderings byte-for-byte reproducible.
//
// A DAG is not safe for concurrent use.
package dag
