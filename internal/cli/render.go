package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/funcstructs/pkg/core/rootedtree"
	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
)

const (
	renderSVG = "svg"
	renderDOT = "dot"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	index  int    // 1-based position in the enumeration
	levels  string // explicit level sequence, overrides N and index
	parents string // explicit parent array, overrides N and index
	format string // svg or dot
	output string // output file, "-" for stdout
	labels string // comma-separated node labels in preorder
}

// renderCommand creates the render command for drawing one tree.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{index: 1, format: renderSVG}

	cmd := &cobra.Command{
		Use:   "render [N]",
		Short: "Draw a rooted tree as SVG or DOT",
		Long: `Draw the tree at position --index among the trees on N nodes, or the
tree given by --levels or --parents. A --parents array lists each node's
parent, with the root as its own parent, as printed by "trees --format
parents". Explicit trees are brought into canonical form before drawing.`,
		Example: `  funcstructs render 6 --index 12
  funcstructs render --levels 1,2,3,2,3 --format dot -o -
  funcstructs render --parents 0,0,1,0,3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateRenderFormat(opts.format); err != nil {
				return err
			}
			tree, name, err := selectTree(args, opts)
			if err != nil {
				return err
			}
			return c.runRender(cmd, tree, name, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.index, "index", "i", opts.index, "1-based position of the tree among all trees on N nodes")
	cmd.Flags().StringVar(&opts.levels, "levels", "", "level sequence to draw, e.g. 1,2,3,2")
	cmd.Flags().StringVar(&opts.parents, "parents", "", "parent array to draw, e.g. 0,0,1,0")
	cmd.MarkFlagsMutuallyExclusive("levels", "parents")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout (default tree_<N>_<index>.<format>)")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "comma-separated node labels in preorder")

	return cmd
}

func validateRenderFormat(f string) error {
	return fserrors.ValidateChoice(fserrors.ErrCodeInvalidFormat, "render format", f, renderSVG, renderDOT)
}

// selectTree resolves the tree to draw and a base name for the output file.
func selectTree(args []string, opts renderOpts) (*rootedtree.Tree, string, error) {
	if opts.levels != "" || opts.parents != "" {
		var t *rootedtree.Tree
		if opts.levels != "" {
			levels, err := parseInts(opts.levels)
			if err != nil {
				return nil, "", err
			}
			if t, err = rootedtree.Dominant(levels); err != nil {
				return nil, "", err
			}
		} else {
			parents, err := parseInts(opts.parents)
			if err != nil {
				return nil, "", err
			}
			if t, err = rootedtree.FromParents(parents); err != nil {
				return nil, "", err
			}
		}
		return t, "tree_" + joinLevels(t), nil
	}
	if len(args) == 0 {
		return nil, "", fserrors.New(fserrors.ErrCodeInvalidArguments, "render needs N, --levels or --parents")
	}
	n, err := parseArg("N", args[0])
	if err != nil {
		return nil, "", err
	}
	t, err := treeAt(n, opts.index)
	if err != nil {
		return nil, "", err
	}
	return t, fmt.Sprintf("tree_%d_%d", n, opts.index), nil
}

// treeAt walks the successor to the index-th tree on n nodes.
func treeAt(n, index int) (*rootedtree.Tree, error) {
	e, err := rootedtree.NewEnumerator(n)
	if err != nil {
		return nil, err
	}
	if index < 1 {
		return nil, fserrors.New(fserrors.ErrCodeInvalidArguments, "index must be at least 1, got %d", index)
	}
	for e.Next() {
		if e.Index() == index {
			return e.Tree().Clone(), nil
		}
	}
	return nil, fserrors.New(fserrors.ErrCodeNotFound, "there are only %d trees on %d nodes, index %d is out of range",
		e.Index(), n, index)
}

// joinLevels returns the level sequence as "1-2-3-2".
func joinLevels(t *rootedtree.Tree) string {
	v := t.Levels()
	parts := make([]string, v.Len())
	for i := range parts {
		parts[i] = strconv.Itoa(v.At(i))
	}
	return strings.Join(parts, "-")
}

// parseInts parses "1,2,3,2" (spaces and brackets tolerated).
func parseInts(s string) ([]int, error) {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	levels := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fserrors.Wrap(fserrors.ErrCodeInvalidArguments, err, "bad level %q", f)
		}
		levels[i] = v
	}
	return levels, nil
}

func (c *CLI) runRender(cmd *cobra.Command, t *rootedtree.Tree, name string, opts renderOpts) error {
	var labels []string
	if opts.labels != "" {
		labels = strings.Split(opts.labels, ",")
	}

	logger := loggerFromContext(cmd.Context())
	logger.Debug("rendering", "levels", t.String(), "format", opts.format)
	prog := newProgress(logger)

	data, err := renderTree(cmd.Context(), t, labels, opts.format)
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	out := opts.output
	if out == "" {
		out = name + "." + opts.format
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	prog.done(fmt.Sprintf("Rendered %s", t))
	printSuccess("Rendered %s", StyleHighlight.Render(t.String()))
	printFile(out)
	return nil
}

func renderTree(ctx context.Context, t *rootedtree.Tree, labels []string, format string) ([]byte, error) {
	if format == renderDOT {
		return []byte(t.ToDOT(labels)), nil
	}
	return t.RenderSVG(ctx, labels)
}
