// Package cli implements the mosaic command-line interface.
package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/internal/config"
	"github.com/matzehuels/mosaic/pkg/buildinfo"
	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/engine"
	errs "github.com/matzehuels/mosaic/pkg/errors"
	mosaicio "github.com/matzehuels/mosaic/pkg/io"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/observability"
	"github.com/matzehuels/mosaic/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mosaic"

	// stdinPath names standard input in document arguments.
	stdinPath = "-"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Mosaic edits tile layouts",
		Long:          `Mosaic is a layout engine for grid page editors: rows of columns of tiles, rearranged by drag and drop and kept balanced on a 16-unit grid.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/mosaic/config.toml)")

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.normalizeCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration, applies the log level and registers the
// log-backed observability hooks.
func (c *CLI) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level := cfg.LogLevel()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	if cfg.Path() != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path())
	}

	hooks := &logHooks{logger: c.Logger}
	observability.SetEngineHooks(hooks)
	observability.SetStoreHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	return nil
}

// =============================================================================
// Documents
// =============================================================================

// readDocument reads raw document bytes from path or stdin.
func (c *CLI) readDocument(path string) ([]byte, error) {
	if path == stdinPath {
		return io.ReadAll(c.stdin)
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeDocumentNotFound, err, "document %s", path)
	}
	return data, err
}

// loadDocument reads and validates the document at path. An empty path
// loads the built-in default document.
func (c *CLI) loadDocument(path string) (*layout.Tree, []byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data = mosaicio.DefaultJSON()
	} else if data, err = c.readDocument(path); err != nil {
		return nil, nil, err
	}
	tree, err := c.unmarshalDocument(path, data)
	if err != nil {
		return nil, nil, err
	}
	return tree, data, nil
}

// unmarshalDocument decodes data read from path.
func (c *CLI) unmarshalDocument(path string, data []byte) (*layout.Tree, error) {
	tree, err := mosaicio.Unmarshal(data, c.ioOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayPath(path), err)
	}
	return tree, nil
}

// newEngine builds an engine over tree with the CLI's logger and decoder.
func (c *CLI) newEngine(tree *layout.Tree, opts ...engine.Option) (*engine.Engine, error) {
	base := []engine.Option{engine.WithLogger(c.Logger), engine.WithDecoder(c.Config.Decoder())}
	return engine.New(tree, append(base, opts...)...)
}

func (c *CLI) ioOptions() mosaicio.Options {
	return mosaicio.Options{Decoder: c.Config.Decoder()}
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func (c *CLI) writeOutput(path string, data []byte) error {
	if path == "" || path == stdinPath {
		_, err := c.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// encodeTree writes tree as an indented document.
func encodeTree(tree *layout.Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := mosaicio.WriteJSON(tree, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func displayPath(path string) string {
	switch path {
	case "":
		return "default document"
	case stdinPath:
		return "stdin"
	}
	return path
}

// =============================================================================
// Cache and Store
// =============================================================================

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || !c.Config.Render.Cache {
		return cache.NewNullCache(), nil
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// openStore opens the configured store. Remote backends show a spinner
// while connecting.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	switch c.Config.Store.Backend {
	case store.BackendRedis, store.BackendMongo:
	default:
		return store.Open(ctx, c.Config.Store, c.Logger)
	}

	s := newSpinner(ctx, c.stderr, "Connecting to "+c.Config.Store.Backend+"...")
	s.Start()
	st, err := store.Open(ctx, c.Config.Store, c.Logger)
	s.Stop()
	// Report the interrupt itself so main exits with 130.
	if err != nil && s.interrupted() {
		return nil, ctx.Err()
	}
	return st, err
}

// keyer builds cache keys scoped by content mode, since the mode changes
// what tiles hold.
func (c *CLI) keyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Config.Content.Mode+":")
}
