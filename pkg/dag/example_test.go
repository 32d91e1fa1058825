package dag_test

import (
	"fmt"

	"github.com/vladshablinsky/brew/pkg/dag"
)

func ExampleDAG_basic() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "wget"})
	_ = g.AddNode(dag.Node{ID: "openssl@3"})
	_ = g.AddNode(dag.Node{ID: "ca-certificates"})
	_ = g.AddEdge(dag.Edge{From: "wget", To: "openssl@3"})
	_ = g.AddEdge(dag.Edge{From: "openssl@3", To: "ca-certificates"})
	g.AssignRows()

	for _, n := range g.Nodes() {
		fmt.Println(n.Row, n.ID)
	}
	// Output:
	// 0 wget
	// 1 openssl@3
	// 2 ca-certificates
}

func ExampleDAG_BackEdges() {
	g := dag.New(nil)
	for _, id := range []string{"a", "b"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "a", To: "b"})
	_ = g.AddEdge(dag.Edge{From: "b", To: "a"})

	for _, e := range g.BackEdges() {
		fmt.Println(e.From, "->", e.To)
	}
	fmt.Println(g.Validate())
	// Output:
	// b -> a
	// graph contains a cycle
}
