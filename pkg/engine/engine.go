package engine

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/content"
	errs "github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/observability"
)

// Hover is the hover cursor: the element under a dragged tile and the side
// the tile would land on. A row of -1 means no hover.
type Hover struct {
	layout.Address
	Kind      layout.Kind      `json:"kind"`
	Direction layout.Direction `json:"direction"`
}

// NoHover is the sentinel hover cursor.
var NoHover = Hover{Address: layout.NoAddress}

// Engine mutates a layout tree in response to editor events.
type Engine struct {
	tree     *layout.Tree
	selected layout.Address
	hovered  Hover
	version  uint64

	logger      *log.Logger
	decoder     content.Decoder
	onSnapshot  func(Snapshot)
	selectFirst bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSnapshotHandler registers fn to receive a snapshot after every
// state-changing operation.
func WithSnapshotHandler(fn func(Snapshot)) Option {
	return func(e *Engine) { e.onSnapshot = fn }
}

// WithDecoder sets the decoder used by [Engine.Apply] for content events.
func WithDecoder(d content.Decoder) Option {
	return func(e *Engine) {
		if d != nil {
			e.decoder = d
		}
	}
}

// WithoutInitialSelection starts the engine with nothing selected instead
// of the first tile.
func WithoutInitialSelection() Option {
	return func(e *Engine) { e.selectFirst = false }
}

// New creates an engine owning tree. Selection and hover flags already in
// the tree are cleared, the tree is normalized and validated, and the first
// tile is selected unless [WithoutInitialSelection] is given.
func New(tree *layout.Tree, opts ...Option) (*Engine, error) {
	if tree == nil {
		tree = layout.New()
	}
	e := &Engine{
		tree:        tree,
		selected:    layout.NoAddress,
		hovered:     NoHover,
		logger:      log.Default(),
		decoder:     content.Decode,
		selectFirst: true,
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, r := range tree.Rows {
		r.Hovered = layout.DirectionNone
		for _, c := range r.Columns {
			c.Hovered = layout.DirectionNone
			for _, t := range c.Tiles {
				t.Selected = false
				t.Hovered = layout.DirectionNone
			}
		}
	}

	if rep := layout.Normalize(tree); rep.Changed() {
		e.logger.Debug("normalized initial layout",
			"pruned_columns", rep.PrunedColumns,
			"pruned_rows", rep.PrunedRows,
			"rebalanced_rows", rep.RebalancedRows)
	}
	if err := tree.Validate(); err != nil {
		return nil, err
	}

	if e.selectFirst && len(tree.Rows) > 0 {
		first := layout.Address{Row: 0, Column: 0, Tile: 0}
		if err := e.selectTile(first); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "select first tile")
		}
	}
	return e, nil
}

// Selected returns the selection cursor.
func (e *Engine) Selected() layout.Address { return e.selected }

// Hovered returns the hover cursor.
func (e *Engine) Hovered() Hover { return e.hovered }

// Version counts emitted snapshots.
func (e *Engine) Version() uint64 { return e.version }

// Stats counts rows, columns and tiles of the current tree.
func (e *Engine) Stats() layout.Stats { return e.tree.Stats() }

// Tree returns a deep copy of the current tree for serialization.
func (e *Engine) Tree() *layout.Tree { return e.tree.Clone() }

// emit bumps the version and hands a fresh snapshot to the handler.
func (e *Engine) emit() {
	e.version++
	if e.onSnapshot != nil {
		e.onSnapshot(e.Snapshot())
	}
}

func (e *Engine) observe(op string, start time.Time, err error) {
	observability.Engine().OnOperation(op, time.Since(start), err)
	if err != nil {
		e.logger.Debug("operation failed", "op", op, "err", err)
	}
}

// relocateSelection points the selection cursor at the tile carrying the
// Selected flag after tiles moved.
func (e *Engine) relocateSelection() {
	if e.selected.IsNone() {
		return
	}
	e.selected = layout.NoAddress
	e.tree.Walk(func(a layout.Address, t *layout.Tile) {
		if t.Selected {
			e.selected = a
		}
	})
}

func (e *Engine) normalize() {
	rep := layout.Normalize(e.tree)
	if rep.Changed() {
		observability.Engine().OnNormalize(rep.PrunedColumns, rep.PrunedRows, rep.RebalancedRows)
		e.logger.Debug("normalized layout",
			"pruned_columns", rep.PrunedColumns,
			"pruned_rows", rep.PrunedRows,
			"rebalanced_rows", rep.RebalancedRows)
	}
	e.relocateSelection()
}
