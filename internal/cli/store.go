package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	mosaicio "github.com/matzehuels/mosaic/pkg/io"
	"github.com/matzehuels/mosaic/pkg/store"
)

// storeCommand creates the store management command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage stored documents",
		Long: `Manage documents in the configured store (memory, file, redis or mongo).

The backend is chosen in the [store] section of the config file; the file
backend keeps documents under ~/.config/mosaic/documents by default.`,
	}

	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storePushCommand())
	cmd.AddCommand(c.storePullCommand())
	cmd.AddCommand(c.storeRemoveCommand())

	return cmd
}

func (c *CLI) storeListCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored documents",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			recs, err := st.List(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				data, err := json.MarshalIndent(recordInfos(recs), "", "  ")
				if err != nil {
					return err
				}
				return c.writeOutput("", append(data, '\n'))
			}
			if len(recs) == 0 {
				printInfo("No stored documents")
				return nil
			}
			fmt.Fprintln(c.stdout, recordTable(recs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func (c *CLI) storePushCommand() *cobra.Command {
	var id, name string

	cmd := &cobra.Command{
		Use:   "push <document>",
		Short: "Validate a document and save it to the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tree, _, err := c.loadDocument(args[0])
			if err != nil {
				return err
			}
			e, err := c.newEngine(tree)
			if err != nil {
				return err
			}
			data, err := mosaicio.Marshal(e.Tree())
			if err != nil {
				return err
			}

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			rec := &store.Record{ID: id, Name: name, Data: data}
			if err := st.Put(ctx, rec); err != nil {
				return err
			}
			printSuccess("Stored %s", StyleHighlight.Render(rec.ID))
			printStats(e.Stats(), c.Config.Store.Backend, true)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "document ID (default: a new UUID)")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	return cmd
}

func (c *CLI) storePullCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pull <id>",
		Short: "Write a stored document as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			rec, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}
			tree, err := mosaicio.Unmarshal(rec.Data, c.ioOptions())
			if err != nil {
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

func (c *CLI) storeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Delete stored documents",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			for _, id := range args {
				if err := st.Delete(ctx, id); err != nil {
					return err
				}
				printSuccess("Deleted %s", id)
			}
			return nil
		},
	}
}

// recordInfo is a stored document without its data.
type recordInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Size      int    `json:"size"`
	UpdatedAt string `json:"updated_at"`
}

func recordInfos(recs []*store.Record) []recordInfo {
	out := make([]recordInfo, len(recs))
	for i, r := range recs {
		out[i] = recordInfo{ID: r.ID, Name: r.Name, Size: len(r.Data), UpdatedAt: r.UpdatedAt.Format("2006-01-02 15:04")}
	}
	return out
}

// recordTable renders records with the same table style as the rest of the
// CLI output.
func recordTable(recs []*store.Record) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	idStyle := lipgloss.NewStyle().Foreground(colorCyan)

	rows := make([][]string, len(recs))
	for i, info := range recordInfos(recs) {
		name := info.Name
		if name == "" {
			name = "—"
		}
		rows[i] = []string{info.ID, name, fmt.Sprintf("%d B", info.Size), info.UpdatedAt}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Size", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return idStyle
			case col == 3:
				return StyleDim
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}
