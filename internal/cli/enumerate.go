package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
	"github.com/matzehuels/funcstructs/pkg/pipeline"
)

// enumerateOpts holds the flags shared by the trees and partitions commands.
type enumerateOpts struct {
	format string
	limit  int
	output string
}

func (o *enumerateOpts) register(cmd *cobra.Command, formats string) {
	cmd.Flags().StringVarP(&o.format, "format", "f", pipeline.DefaultFormat, "output format: "+formats)
	cmd.Flags().IntVarP(&o.limit, "limit", "n", 0, "stop after this many objects (0 = all)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default stdout)")
}

// treesCommand creates the trees command.
func (c *CLI) treesCommand() *cobra.Command {
	var opts enumerateOpts

	cmd := &cobra.Command{
		Use:   "trees N",
		Short: "List all unlabeled rooted trees on N nodes",
		Long: `List every unlabeled rooted tree on N nodes as its canonical level
sequence, from the path [1 2 ... N] down to the star [1 2 ... 2].`,
		Example: `  funcstructs trees 5
  funcstructs trees 12 --format json -o trees12.jsonl
  funcstructs trees 6 --format brackets`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseArg("N", args[0])
			if err != nil {
				return err
			}
			return c.runEnumerate(cmd, pipeline.Options{Kind: pipeline.KindTrees, N: n}, opts)
		},
	}
	opts.register(cmd, "text, json, brackets, parents")
	return cmd
}

// partitionsCommand creates the partitions command.
func (c *CLI) partitionsCommand() *cobra.Command {
	var opts enumerateOpts

	cmd := &cobra.Command{
		Use:   "partitions N L",
		Short: "List all partitions of N into exactly L parts",
		Long: `List every partition of N into exactly L positive parts. Parts are
written in non-increasing order; partitions come in ascending order.`,
		Example: `  funcstructs partitions 10 4
  funcstructs partitions 30 6 --limit 20`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseArg("N", args[0])
			if err != nil {
				return err
			}
			l, err := parseArg("L", args[1])
			if err != nil {
				return err
			}
			return c.runEnumerate(cmd, pipeline.Options{Kind: pipeline.KindPartitions, N: n, L: l}, opts)
		},
	}
	opts.register(cmd, "text, json")
	return cmd
}

func (c *CLI) runEnumerate(cmd *cobra.Command, popts pipeline.Options, opts enumerateOpts) error {
	popts.Format = opts.format
	popts.Limit = opts.limit
	popts.Logger = c.Logger
	c.outputDefaults(cmd, &popts)

	var w io.Writer = cmd.OutOrStdout()
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	// Enumeration never touches the cache.
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	stats, err := runner.Enumerate(cmd.Context(), popts, w)
	if err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Wrote %s %s", StyleNumber.Render(strconv.Itoa(stats.Items)), popts.Kind)
		printFile(opts.output)
		printStats(stats.Items, stats.Duration, stats.Truncated, false)
		if popts.Kind == pipeline.KindTrees {
			printNextStep("Draw one", fmt.Sprintf("%s render %d --index 1", appName, popts.N))
		}
	}
	return nil
}

// parseArg parses a positional size argument.
func parseArg(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fserrors.Wrap(fserrors.ErrCodeInvalidArguments, err, "%s must be an integer, got %q", name, s)
	}
	return v, nil
}
