package engine

import (
	"time"

	errs "github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/observability"
)

// DragSession pairs the dragged tile with the drop target captured at
// release time.
type DragSession struct {
	Source layout.Address `json:"source"`
	Target Hover          `json:"target"`
}

// Offset is 1 when the tile lands after the target and 0 when before.
func (s DragSession) Offset() int {
	if s.Target.Direction.After() {
		return 1
	}
	return 0
}

// HandleDrop drops the tile at source onto the current hover target.
// It reports whether the tree changed; see [Engine.Drop].
func (e *Engine) HandleDrop(source layout.Address) (bool, error) {
	return e.Drop(DragSession{Source: source, Target: e.hovered})
}

// Drop performs the move described by s. Without a target it does nothing
// and reports false. A column drop into a full row is refused: the hover is
// cleared, a snapshot is emitted and Drop reports false without error.
// Invalid source or target addresses fail with INVALID_ADDRESS before any
// state changes.
func (e *Engine) Drop(s DragSession) (moved bool, err error) {
	defer func(start time.Time) { e.observe("drop", start, err) }(time.Now())

	if s.Target.IsNone() {
		return false, nil
	}
	srcCol, err := e.tree.ColumnAt(s.Source)
	if err != nil {
		return false, err
	}
	if _, err = e.tree.TileAt(s.Source); err != nil {
		return false, err
	}
	if err = e.tree.Check(s.Target.Address, s.Target.Kind); err != nil {
		return false, err
	}

	src, dst, off := s.Source, s.Target, s.Offset()
	e.clearHover()

	switch dst.Kind {
	case layout.KindTile:
		if dst.Row == src.Row && dst.Column == src.Column {
			srcCol.MoveTile(src.Tile, dst.Tile+off)
			break
		}
		tile, _ := e.tree.RemoveTile(src)
		at := layout.Address{Row: dst.Row, Column: dst.Column, Tile: dst.Tile + off}
		if err = e.tree.InsertTile(at, tile); err != nil {
			return false, errs.Wrap(errs.ErrCodeInternal, err, "insert tile")
		}

	case layout.KindColumn:
		row := e.tree.Rows[dst.Row]
		if !admits(row, dst.Row, src, srcCol) {
			observability.Engine().OnDropRejected(len(row.Columns), len(srcCol.Tiles))
			e.logger.Debug("drop rejected: row is full", "row", dst.Row, "columns", len(row.Columns))
			e.emit()
			return false, nil
		}
		tile, _ := e.tree.RemoveTile(src)
		col := &layout.Column{Width: srcCol.Width, Tiles: []*layout.Tile{tile}}
		if err = e.tree.InsertColumn(dst.Row, dst.Column+off, col); err != nil {
			return false, errs.Wrap(errs.ErrCodeInternal, err, "insert column")
		}

	default:
		tile, _ := e.tree.RemoveTile(src)
		e.tree.InsertRow(dst.Row+off, &layout.Row{
			Columns: []*layout.Column{{Width: layout.GridWidth, Tiles: []*layout.Tile{tile}}},
		})
	}

	e.normalize()
	e.logger.Debug("dropped tile", "source", src, "target", dst.Address, "kind", dst.Kind, "direction", dst.Direction)
	e.emit()
	return true, nil
}

// admits reports whether a new column may be created in row. A full row
// still admits the drop when the dragged tile is the only tile of a column
// in that same row, since its column disappears and the count stays put.
func admits(row *layout.Row, rowIdx int, src layout.Address, srcCol *layout.Column) bool {
	if len(row.Columns) < layout.MaxColumns {
		return true
	}
	return src.Row == rowIdx && len(srcCol.Tiles) == 1
}
