package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/layout"
)

// normalizeCommand creates the normalize command.
func (c *CLI) normalizeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "normalize <document>",
		Short: "Prune empty containers and rebalance widths",
		Long: `Normalize removes empty columns and rows and rebalances every row whose
widths do not sum to 16, then writes the result as JSON.

Use "-" to read from stdin. Output goes to stdout unless -o is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, _, err := c.loadDocument(args[0])
			if err != nil {
				return err
			}

			report := layout.Normalize(tree)
			if report.Changed() {
				c.Logger.Info("normalized",
					"pruned_columns", report.PrunedColumns,
					"pruned_rows", report.PrunedRows,
					"rebalanced", report.RebalancedRows)
			} else {
				c.Logger.Info("already normalized")
			}
			if err := tree.Validate(); err != nil {
				return err
			}

			data, err := encodeTree(tree)
			if err != nil {
				return err
			}
			if err := c.writeOutput(output, data); err != nil {
				return err
			}
			if output != "" && output != stdinPath {
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
