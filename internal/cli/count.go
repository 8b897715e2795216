package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
	"github.com/matzehuels/funcstructs/pkg/pipeline"
)

// countCommand creates the count command, which walks the successor to the
// end and compares the number of objects with the counting formula.
func (c *CLI) countCommand() *cobra.Command {
	var refresh, formulaOnly bool

	cmd := &cobra.Command{
		Use:   "count trees N | count partitions N L",
		Short: "Count objects by enumeration and check the formula",
		Example: `  funcstructs count trees 16
  funcstructs count partitions 60 8 --refresh
  funcstructs count trees 40 --formula-only`,
		Args:      cobra.RangeArgs(2, 3),
		ValidArgs: pipeline.ValidKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := countOptions(args)
			if err != nil {
				return err
			}
			opts.Refresh = refresh
			opts.Logger = c.Logger

			if formulaOnly {
				f, err := pipeline.Formula(opts.Kind, opts.N, opts.L)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), f)
				return nil
			}
			return c.runCount(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached counts")
	cmd.Flags().BoolVar(&formulaOnly, "formula-only", false, "print the closed-form count without enumerating")
	return cmd
}

func countOptions(args []string) (pipeline.Options, error) {
	kind := strings.ToLower(args[0])
	if err := pipeline.ValidateKind(kind); err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{Kind: kind}
	want := 2
	if kind == pipeline.KindPartitions {
		want = 3
	}
	if len(args) != want {
		return opts, fserrors.New(fserrors.ErrCodeInvalidArguments, "count %s takes %d argument(s), got %d", kind, want-1, len(args)-1)
	}

	var err error
	if opts.N, err = parseArg("N", args[1]); err != nil {
		return opts, err
	}
	if want == 3 {
		if opts.L, err = parseArg("L", args[2]); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func (c *CLI) runCount(cmd *cobra.Command, opts pipeline.Options) error {
	runner, err := c.newRunner(cmd.Context())
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Walking %s for n=%d...", opts.Kind, opts.N))
	spinner.Start()
	res, err := runner.Count(cmd.Context(), opts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Walk of %s for n=%d stopped", opts.Kind, opts.N))
		return err
	}
	spinner.Stop()

	printKeyValue("Kind", res.Kind)
	printKeyValue("N", strconv.Itoa(res.N))
	if res.Kind == pipeline.KindPartitions {
		printKeyValue("L", strconv.Itoa(res.L))
	}
	printKeyValue("Enumerated", strconv.Itoa(res.Count))
	printKeyValue("Formula", strconv.Itoa(res.Formula))
	printStats(res.Count, res.Duration, false, res.CacheHit)
	printVerdict(res.Count, res.Formula)

	if !res.Verified() {
		return fserrors.New(fserrors.ErrCodeInternal, "%s n=%d: enumeration and formula disagree", res.Kind, res.N)
	}
	return nil
}
