package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/engine"
	errs "github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/script"
)

// replayOpts holds the command-line flags for the replay command.
type replayOpts struct {
	output   string // output file (default stdout)
	snapshot bool   // write the final snapshot instead of the document
	noCache  bool   // bypass the replay cache
}

// replayOutput is what a replay produces and what the cache stores.
type replayOutput struct {
	Result   script.Result   `json:"result"`
	Document json.RawMessage `json:"document"`
	Snapshot engine.Snapshot `json:"snapshot"`
}

// replayCommand creates the replay command.
func (c *CLI) replayCommand() *cobra.Command {
	var opts replayOpts

	cmd := &cobra.Command{
		Use:   "replay <document> <script>",
		Short: "Apply a gesture script to a document",
		Long: `Replay applies the commands of a gesture script to a document and writes the
resulting document.

A script has one command per line:

  select 0 0 1
  hover tile 1 0 0 bottom
  drop 0 0 1
  delete 0 1 0
  content 0 0 0 "<p>Hello</p>"

Replay stops at the first failing command and reports its line. Drops
refused because the target row is full are counted, not failed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == stdinPath && args[1] == stdinPath {
				return errs.New(errs.ErrCodeInvalidInput, "document and script cannot both be read from stdin")
			}
			return c.runReplay(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.snapshot, "snapshot", false, "write the final engine snapshot instead of the document")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runReplay(ctx context.Context, docPath, scriptPath string, opts replayOpts) error {
	prog := newProgress(c.Logger)

	docData, err := c.readDocument(docPath)
	if err != nil {
		return err
	}
	scriptData, err := c.readScript(scriptPath)
	if err != nil {
		return err
	}

	rc, err := c.newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer rc.Close()

	key := c.keyer().ReplayKey(cache.Hash(docData), cache.Hash(scriptData))
	data, hit, err := cache.Fetch(ctx, rc, cache.KeyTypeReplay, key, 0, func() ([]byte, error) {
		out, err := c.replay(docPath, docData, scriptData)
		if err != nil {
			return nil, err
		}
		return json.Marshal(out)
	})
	if err != nil {
		return err
	}

	var out replayOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("decode replay result: %w", err)
	}

	status := tagFresh
	if hit {
		status = tagCached
	}
	prog.done(fmt.Sprintf("Replayed %d commands, %d drops refused [%s]", out.Result.Applied+out.Result.Rejected, out.Result.Rejected, status))

	var result []byte
	if opts.snapshot {
		result, err = json.MarshalIndent(out.Snapshot, "", "  ")
		result = append(result, '\n')
	} else {
		var buf bytes.Buffer
		err = json.Indent(&buf, out.Document, "", "  ")
		buf.WriteByte('\n')
		result = buf.Bytes()
	}
	if err != nil {
		return err
	}
	return c.writeOutput(opts.output, result)
}

// replay runs script over the document and captures the outcome.
func (c *CLI) replay(docPath string, docData, scriptData []byte) (*replayOutput, error) {
	s, err := script.Parse(bytes.NewReader(scriptData))
	if err != nil {
		return nil, err
	}
	tree, err := c.unmarshalDocument(docPath, docData)
	if err != nil {
		return nil, err
	}
	e, err := c.newEngine(tree)
	if err != nil {
		return nil, err
	}

	res, err := script.Run(e, s)
	if err != nil {
		return nil, err
	}
	doc, err := encodeTree(e.Tree())
	if err != nil {
		return nil, err
	}
	return &replayOutput{Result: res, Document: doc, Snapshot: e.Snapshot()}, nil
}

func (c *CLI) readScript(path string) ([]byte, error) {
	if path == stdinPath {
		return c.readDocument(stdinPath)
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeNotFound, err, "script %s", path)
	}
	return data, err
}
