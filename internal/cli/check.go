package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	fsio "github.com/matzehuels/funcstructs/pkg/io"
	"github.com/matzehuels/funcstructs/pkg/pipeline"
)

// checkCommand creates the check command, which verifies a JSON Lines
// listing written by "trees --format json" or "partitions --format json".
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Verify a JSON Lines listing against the enumeration",
		Example: `  funcstructs trees 10 --format json -o trees10.jsonl
  funcstructs check trees10.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			prog := newProgress(loggerFromContext(cmd.Context()))
			res, err := pipeline.Check(cmd.Context(), fsio.ReadJSONLines(f))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			prog.done(fmt.Sprintf("Checked %d records", res.Records))

			if res.Records == 0 {
				printInfo("No records in %s", args[0])
				return nil
			}
			printSuccess("%s records match the successor", StyleNumber.Render(strconv.Itoa(res.Records)))
			printKeyValue("Kind", res.Kind)
			printKeyValue("N", strconv.Itoa(res.N))
			if res.Kind == pipeline.KindPartitions {
				printKeyValue("L", strconv.Itoa(res.L))
			}
			if res.Complete {
				printKeyValue("Listing", "complete")
			} else {
				printKeyValue("Listing", "prefix")
			}
			return nil
		},
	}
}
