package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/engine"
	errs "github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/render/grid"
	"github.com/matzehuels/mosaic/pkg/render/outline"
)

// Render formats.
const (
	formatText = "text" // terminal boxes
	formatJSON = "json" // engine snapshot
	formatDOT  = "dot"  // graphviz source
	formatSVG  = "svg"
	formatPNG  = "png"
	formatPDF  = "pdf"
)

var renderFormats = []string{formatText, formatJSON, formatDOT, formatSVG, formatPNG, formatPDF}

const (
	defaultScale  = 2.0                    // PNG scale factor
	watchDebounce = 100 * time.Millisecond // coalesces editor save bursts
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file (default stdout)
	format   string  // one of renderFormats
	width    int     // terminal width for text output
	detailed bool    // tile excerpts in diagrams, URLs in text
	scale    float64 // PNG scale factor
	watch    bool    // re-render when the document changes
	noCache  bool    // bypass the render cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: formatText, scale: defaultScale}

	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Draw a layout as text or a diagram",
		Long: `Render draws a layout document.

Formats:
  text  boxes in the terminal, sized by column width
  json  the engine snapshot
  dot   graphviz source of the row/column/tile structure
  svg   the structure diagram as SVG
  png   the structure diagram as PNG (requires rsvg-convert)
  pdf   the structure diagram as PDF (requires rsvg-convert)

Without a document the built-in sample is rendered. Diagrams are cached
by document content and options. With --watch the document is rendered
again whenever it changes on disk.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.format = strings.ToLower(opts.format)
			if !slices.Contains(renderFormats, opts.format) {
				return errs.New(errs.ErrCodeInvalidFormat, "unknown format %q (want %s)", opts.format, strings.Join(renderFormats, ", "))
			}
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			if opts.watch && (path == "" || path == stdinPath) {
				return errs.New(errs.ErrCodeInvalidInput, "--watch needs a document file")
			}

			if err := c.runRender(cmd.Context(), path, opts); err != nil {
				if !opts.watch {
					return err
				}
				printError("%v", err)
			}
			if opts.watch {
				return c.watch(cmd.Context(), path, func() {
					if err := c.runRender(cmd.Context(), path, opts); err != nil {
						printError("%v", err)
					}
				})
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: "+strings.Join(renderFormats, ", "))
	cmd.Flags().IntVar(&opts.width, "width", 0, "text width in cells (default 96)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show tile text in diagrams and URLs in text output")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the document changes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	prog := newProgress(c.Logger)

	tree, data, err := c.loadDocument(path)
	if err != nil {
		return err
	}
	e, err := c.newEngine(tree, engine.WithoutInitialSelection())
	if err != nil {
		return err
	}
	snap := e.Snapshot()

	var (
		out []byte
		hit bool
	)
	switch opts.format {
	case formatText:
		text := grid.Render(snap, grid.Options{Width: opts.width, ShowURL: opts.detailed})
		out = []byte(text + "\n")
	case formatJSON:
		out, err = json.MarshalIndent(snap, "", "  ")
		out = append(out, '\n')
	case formatDOT:
		out = []byte(outline.ToDOT(snap, outline.Options{Detailed: opts.detailed}))
	default:
		out, hit, err = c.renderDiagram(ctx, snap, data, opts)
	}
	if err != nil {
		return err
	}

	if err := c.writeOutput(opts.output, out); err != nil {
		return err
	}
	if opts.output != "" && opts.output != stdinPath {
		status := tagFresh
		if hit {
			status = tagCached
		}
		prog.done(fmt.Sprintf("Rendered %s [%s]", opts.format, status))
		printFile(opts.output)
	}
	return nil
}

// renderDiagram produces SVG, PNG or PDF through the render cache.
func (c *CLI) renderDiagram(ctx context.Context, snap engine.Snapshot, data []byte, opts renderOpts) ([]byte, bool, error) {
	rc, err := c.newCache(opts.noCache)
	if err != nil {
		return nil, false, err
	}
	defer rc.Close()

	keyOpts := cache.RenderKeyOpts{Format: opts.format, Detailed: opts.detailed}
	if opts.format == formatPNG {
		keyOpts.Scale = opts.scale
	}
	key := c.keyer().RenderKey(cache.Hash(data), keyOpts)

	return cache.Fetch(ctx, rc, cache.KeyTypeRender, key, 0, func() ([]byte, error) {
		dot := outline.ToDOT(snap, outline.Options{Detailed: opts.detailed})
		switch opts.format {
		case formatPNG:
			return outline.RenderPNG(dot, opts.scale)
		case formatPDF:
			return outline.RenderPDF(dot)
		}
		return outline.RenderSVG(dot)
	})
}

// watch calls fn after every change to path until ctx is cancelled. The
// parent directory is watched so editors that replace the file on save are
// followed.
func (c *CLI) watch(ctx context.Context, path string, fn func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	printInfo("Watching %s (ctrl+c to stop)", path)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "err", err)
		case <-fire:
			fire = nil
			c.Logger.Debug("document changed", "path", path)
			fn()
		}
	}
}
