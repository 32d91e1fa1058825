package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vladshablinsky/brew/pkg/dag"
)

// wgetTree builds wget -> {openssl@3 -> ca-certificates, pkgconf [build]}.
func wgetTree(t *testing.T) *dag.DAG {
	t.Helper()
	g := dag.New(nil)
	nodes := []dag.Node{
		{ID: "wget", Meta: dag.Metadata{MetaVersion: "1.24.5", MetaSpec: "stable"}},
		{ID: "openssl@3", Meta: dag.Metadata{MetaVersion: "3.3.1"}},
		{ID: "ca-certificates"},
		{ID: "pkgconf"},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	edges := []dag.Edge{
		{From: "wget", To: "openssl@3"},
		{From: "openssl@3", To: "ca-certificates"},
		{From: "wget", To: "pkgconf", Meta: dag.Metadata{MetaTags: []string{"build"}}},
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}
	g.AssignRows()
	return g
}

func cyclicTree(t *testing.T) *dag.DAG {
	t.Helper()
	g := dag.New(nil)
	for _, id := range []string{"root", "a", "b"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "root", To: "a"})
	_ = g.AddEdge(dag.Edge{From: "a", To: "b"})
	_ = g.AddEdge(dag.Edge{From: "b", To: "a"})
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(wgetTree(t), Options{Tags: true})

	for _, want := range []string{
		"digraph deps {",
		`"wget" [label="wget", penwidth=2];`,
		`"openssl@3" [label="openssl@3"];`,
		`"wget" -> "openssl@3";`,
		`"wget" -> "pkgconf" [label="build", color=gray50];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(wgetTree(t), Options{Detailed: true})
	if !strings.Contains(dot, `label="wget\nspec: stable\nversion: 1.24.5"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
	if !strings.Contains(dot, `"ca-certificates" [label="ca-certificates"]`) {
		t.Errorf("node without metadata should keep a plain label:\n%s", dot)
	}
}

func TestToDOTDashesCycleEdges(t *testing.T) {
	dot := ToDOT(cyclicTree(t), Options{})
	if !strings.Contains(dot, `"b" -> "a" [style=dashed];`) {
		t.Errorf("cycle edge not dashed:\n%s", dot)
	}
	if !strings.Contains(dot, `"a" -> "b";`) {
		t.Errorf("forward edge missing:\n%s", dot)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(wgetTree(t), &buf, TextOptions{Tags: true, Versions: true}); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"wget 1.24.5",
		"├── openssl@3 3.3.1",
		"│   └── ca-certificates",
		"└── pkgconf [build]",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("text tree mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteTextCycle(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(cyclicTree(t), &buf, TextOptions{}); err != nil {
		t.Fatal(err)
	}
	want := "root\n└── a\n    └── b\n        └── a (cycle)\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("text tree mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteTextWithoutSources(t *testing.T) {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "x"})
	_ = g.AddNode(dag.Node{ID: "y"})
	_ = g.AddEdge(dag.Edge{From: "x", To: "y"})
	_ = g.AddEdge(dag.Edge{From: "y", To: "x"})

	var buf bytes.Buffer
	if err := WriteText(g, &buf, TextOptions{}); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "x\n└── y\n    └── x (cycle)\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g := wgetTree(t)
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatal(err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(dag.NodeIDs(g.Nodes()), dag.NodeIDs(got.Nodes())); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
	if got.EdgeCount() != g.EdgeCount() {
		t.Errorf("EdgeCount = %d, want %d", got.EdgeCount(), g.EdgeCount())
	}
	e, ok := got.Edge("wget", "pkgconf")
	if !ok {
		t.Fatal("edge wget->pkgconf lost")
	}
	if diff := cmp.Diff([]string{"build"}, tagsOf(e.Meta)); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	n, _ := got.Node("ca-certificates")
	if n.Row != 2 {
		t.Errorf("depth = %d, want 2", n.Row)
	}
}

func TestJSONKeepsEdgeSpec(t *testing.T) {
	g := dag.New(nil)
	for _, id := range []string{"app", "lib"} {
		if err := g.AddNode(dag.Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.AddEdge(dag.Edge{From: "app", To: "lib", Meta: dag.Metadata{MetaSpec: "devel"}}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatal(err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	e, ok := got.Edge("app", "lib")
	if !ok {
		t.Fatal("edge app->lib lost")
	}
	if spec := specOf(e.Meta); spec != "devel" {
		t.Errorf("spec = %q, want devel", spec)
	}
}

func TestWriteJSONFlagsCycles(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(cyclicTree(t), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"cycle": true`) {
		t.Errorf("cycle flag missing:\n%s", buf.String())
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"malformed", `{`, "decode"},
		{"duplicate", `{"nodes":[{"id":"a"},{"id":"a"}],"edges":[]}`, "node a"},
		{"unknown target", `{"nodes":[{"id":"a"}],"edges":[{"from":"a","to":"b"}]}`, "edge a->b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(wgetTree(t), Options{}))
	if err != nil {
		t.Fatal(err)
	}
	s := string(svg)
	if !strings.Contains(s, "<svg") || !strings.Contains(s, "openssl@3") {
		t.Errorf("unexpected SVG output: %.200s", s)
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("expected parse error")
	}
}

func TestPixelSize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"points to pixels",
			`<?xml?><svg width="75pt" height="116pt" viewBox="0.00 0.00 75.39 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`,
			`<?xml?><svg width="75.39" height="116.00" viewBox="0.00 0.00 75.39 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`,
		},
		{"no viewBox", `<svg width="1pt"></svg>`, `<svg width="1pt"></svg>`},
		{"empty extent", `<svg width="1pt" viewBox="0 0 0 0"></svg>`, `<svg width="1pt" viewBox="0 0 0 0"></svg>`},
		{"nested svg untouched", `<svg width="5pt" height="5pt" viewBox="0 0 5 5"><svg width="9pt"/></svg>`, `<svg width="5" height="5" viewBox="0 0 5 5"><svg width="9pt"/></svg>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(pixelSize([]byte(tt.in))); got != tt.want {
				t.Errorf("pixelSize() = %s, want %s", got, tt.want)
			}
		})
	}
}
