package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/internal/tui"
	mosaicio "github.com/matzehuels/mosaic/pkg/io"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/store"
)

// editOpts holds the command-line flags for the edit command.
type editOpts struct {
	output string // file written on save (default: the document)
	id     string // edit a stored document instead of a file
}

// editCommand creates the edit command.
func (c *CLI) editCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "edit [document]",
		Short: "Rearrange a layout interactively",
		Long: `Edit opens a layout in the terminal editor.

Arrows move the selection. Space picks up the selected tile; while dragging,
arrows move the drop target, tab switches between tile, column and row
targets, [ and ] pick the side, enter drops and esc cancels. d deletes the
selected tile, s saves and q quits.

Without a document the built-in sample is opened; give -o to save it. With
--id the document is loaded from and saved to the configured store.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			if opts.id != "" {
				return c.editStored(cmd.Context(), opts.id)
			}
			return c.editFile(cmd.Context(), path, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "file to save to (default: the document)")
	cmd.Flags().StringVar(&opts.id, "id", "", "edit a document from the store")

	return cmd
}

func (c *CLI) editFile(ctx context.Context, path, output string) error {
	tree, _, err := c.loadDocument(path)
	if err != nil {
		return err
	}
	if output == "" && path != stdinPath {
		output = path
	}

	var save func(*layout.Tree) error
	if output != "" {
		save = func(t *layout.Tree) error { return mosaicio.ExportJSON(t, output) }
	}
	return c.runEditor(ctx, tree, displayPath(path), save)
}

func (c *CLI) editStored(ctx context.Context, id string) error {
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.Get(ctx, id)
	if err != nil {
		return err
	}
	tree, err := mosaicio.Unmarshal(rec.Data, c.ioOptions())
	if err != nil {
		return err
	}

	title := rec.ID
	if rec.Name != "" {
		title = rec.Name
	}
	save := func(t *layout.Tree) error {
		data, err := mosaicio.Marshal(t)
		if err != nil {
			return err
		}
		return st.Put(ctx, &store.Record{ID: rec.ID, Name: rec.Name, Data: data})
	}
	return c.runEditor(ctx, tree, title, save)
}

func (c *CLI) runEditor(ctx context.Context, tree *layout.Tree, title string, save func(*layout.Tree) error) error {
	e, err := c.newEngine(tree)
	if err != nil {
		return err
	}

	m, err := tui.Run(ctx, tui.New(e, tui.Options{Title: title, Save: save}))
	if err != nil {
		return err
	}
	if m.Dirty() {
		printWarning("Quit with unsaved changes")
	}
	return nil
}
