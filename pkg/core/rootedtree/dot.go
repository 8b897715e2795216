package rootedtree

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the tree, root at the top.
//
// Nodes are identified as n0, n1, ... in preorder. If labels[i] exists,
// node i is shown as labels[i], otherwise as its preorder index. Pass nil
// for numeric labels. The labels slice is not modified.
//
// Example:
//
//	t, _ := rootedtree.FromLevels([]int{1, 2, 3, 2})
//	dot := t.ToDOT(nil)
//	// Use 'dot' command or RenderSVG to visualize
func (t *Tree) ToDOT(labels []string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph RootedTree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, shape=circle, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	for i := range t.levels {
		label := strconv.Itoa(i)
		if i < len(labels) {
			label = labels[i]
		}
		if i == 0 {
			fmt.Fprintf(&buf, "  n%d [label=%q, shape=doublecircle];\n", i, label)
			continue
		}
		fmt.Fprintf(&buf, "  n%d [label=%q];\n", i, label)
	}
	parents := t.Parents()
	for i := 1; i < len(parents); i++ {
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", parents[i], i)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders the tree as an SVG document via Graphviz.
//
// The labels parameter is passed to ToDOT and works identically. Errors are
// returned if Graphviz cannot initialize, the DOT is malformed, or rendering
// fails; all are wrapped with fmt.Errorf and %w.
func (t *Tree) RenderSVG(ctx context.Context, labels []string) ([]byte, error) {
	dot := t.ToDOT(labels)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
