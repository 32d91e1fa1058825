package render

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/vladshablinsky/brew/pkg/dag"
)

// TextOptions configures WriteText.
type TextOptions struct {
	// Tags appends each dependency's tags, e.g. "pkgconf [build]".
	Tags bool
	// Versions appends node versions when known.
	Versions bool
}

// WriteText prints the tree below each source of g, one node per line with
// box-drawing guides. A dependency already on the current path is printed
// with a "(cycle)" marker and not expanded again.
func WriteText(g *dag.DAG, w io.Writer, opts TextOptions) error {
	bw := bufio.NewWriter(w)
	roots := g.Sources()
	if len(roots) == 0 && g.NodeCount() > 0 {
		roots = g.Nodes()[:1]
	}
	for i, root := range roots {
		if i > 0 {
			bw.WriteString("\n")
		}
		bw.WriteString(textLabel(g, root.ID, nil, opts))
		bw.WriteString("\n")
		writeChildren(g, bw, root.ID, "", []string{root.ID}, opts)
	}
	return bw.Flush()
}

func writeChildren(g *dag.DAG, w *bufio.Writer, id, prefix string, path []string, opts TextOptions) {
	children := g.Children(id)
	for i, child := range children {
		last := i == len(children)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}

		e, _ := g.Edge(id, child)
		label := textLabel(g, child, e.Meta, opts)
		if slices.Contains(path, child) {
			fmt.Fprintf(w, "%s%s%s (cycle)\n", prefix, branch, label)
			continue
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, label)
		writeChildren(g, w, child, prefix+indent, append(path, child), opts)
	}
}

func textLabel(g *dag.DAG, id string, edgeMeta dag.Metadata, opts TextOptions) string {
	var sb strings.Builder
	sb.WriteString(id)
	if opts.Versions {
		if n, ok := g.Node(id); ok {
			if v, ok := n.Meta[MetaVersion]; ok && v != "" {
				fmt.Fprintf(&sb, " %v", v)
			}
		}
	}
	if opts.Tags {
		if tags := tagsOf(edgeMeta); len(tags) > 0 {
			fmt.Fprintf(&sb, " [%s]", strings.Join(tags, ", "))
		}
	}
	return sb.String()
}
