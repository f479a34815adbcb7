package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <document>...",
		Short: "Check layout documents",
		Long: `Validate reads each document and reports import errors.

A document that imports cleanly may still need normalizing (empty columns,
rows whose widths do not sum to 16). With --strict those are errors too.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if err := c.validateOne(path, strict); err != nil {
					printError("%s: %v", displayPath(path), err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents invalid", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on documents that need normalizing")
	return cmd
}

func (c *CLI) validateOne(path string, strict bool) error {
	tree, _, err := c.loadDocument(path)
	if err != nil {
		return err
	}

	if strict {
		if err := tree.Validate(); err != nil {
			return err
		}
	}
	problems := tree.Problems()

	printSuccess("%s", displayPath(path))
	for _, p := range problems {
		printWarning("%s", p.Error())
	}
	if len(problems) == 0 {
		printStats(tree.Stats(), "balanced", true)
	} else {
		printStats(tree.Stats(), "needs normalize", false)
	}
	return nil
}
