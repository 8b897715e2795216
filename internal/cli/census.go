package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
	"github.com/matzehuels/funcstructs/pkg/pipeline"
)

// censusCommand creates the census command, a table of successor counts
// against formula values for every size up to MAX.
func (c *CLI) censusCommand() *cobra.Command {
	var (
		workers int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "census trees|partitions MAX",
		Short: "Tabulate enumerated counts against the formulas",
		Long: `Walk the successor for every size up to MAX and compare each count with
the closed form: the rooted tree numbers for trees, p(n, l) for every
1 <= l <= n <= MAX for partitions. Cells run in parallel.`,
		Example: `  funcstructs census trees 14
  funcstructs census partitions 20 --json`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: pipeline.ValidKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			maxN, err := parseArg("MAX", args[1])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			kind := strings.ToLower(args[0])
			spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Counting %s up to %d...", kind, maxN))
			spinner.Start()
			census, err := runner.Census(cmd.Context(), kind, maxN, workers)
			spinner.Stop()
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(census)
			}
			fmt.Fprintln(cmd.OutOrStdout(), censusTable(census))
			printStats(len(census.Rows), census.Duration, false, census.CacheHit)
			if !census.Verified() {
				printError("some cells disagree with the formula")
				return fserrors.New(fserrors.ErrCodeInternal, "%s census up to %d failed verification", census.Kind, census.Max)
			}
			printSuccess("All %d cells match", len(census.Rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "parallel cells (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the census as JSON")
	return cmd
}

// censusTable renders the census rows, marking mismatches in red.
func censusTable(c *pipeline.Census) string {
	headers := []string{"n", "count", "formula", ""}
	if c.Kind == pipeline.KindPartitions {
		headers = []string{"n", "l", "count", "formula", ""}
	}

	rows := make([][]string, 0, len(c.Rows))
	for _, r := range c.Rows {
		mark := iconSuccess
		if r.Count != r.Formula {
			mark = iconError
		}
		row := []string{strconv.Itoa(r.N)}
		if c.Kind == pipeline.KindPartitions {
			row = append(row, strconv.Itoa(r.L))
		}
		rows = append(rows, append(row, strconv.Itoa(r.Count), strconv.Itoa(r.Formula), mark))
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	last := len(headers) - 1

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col < last {
				return base.Foreground(colorWhite).Align(lipgloss.Right)
			}
			if rows[row][col] == iconSuccess {
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorRed)
		})

	return t.Render()
}
