package engine

import (
	"time"

	"github.com/matzehuels/mosaic/pkg/content"
	errs "github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/layout"
)

// SelectTile moves the selection to the tile at a, or clears it when a is
// [layout.NoAddress].
func (e *Engine) SelectTile(a layout.Address) (err error) {
	defer func(start time.Time) { e.observe("select", start, err) }(time.Now())

	if err = e.selectTile(a); err != nil {
		return err
	}
	e.logger.Debug("selected tile", "addr", e.selected)
	e.emit()
	return nil
}

func (e *Engine) selectTile(a layout.Address) error {
	var target *layout.Tile
	if !a.IsNone() {
		t, err := e.tree.TileAt(a)
		if err != nil {
			return err
		}
		target = t
	}
	if !e.selected.IsNone() {
		if old, err := e.tree.TileAt(e.selected); err == nil {
			old.Selected = false
		}
	}
	if target == nil {
		e.selected = layout.NoAddress
		return nil
	}
	target.Selected = true
	e.selected = a
	return nil
}

// SetHovered moves the hover mark to h. Setting the current hover again is a
// no-op and emits nothing, so gesture layers may call it on every pointer
// move. Any sentinel address clears the mark and is stored as [NoHover].
func (e *Engine) SetHovered(h Hover) (err error) {
	defer func(start time.Time) { e.observe("hover", start, err) }(time.Now())

	if h.IsNone() {
		h = NoHover
	}
	if h == e.hovered {
		return nil
	}
	if !h.IsNone() {
		if !h.Direction.Valid() {
			return errs.New(errs.ErrCodeInvalidInput, "invalid hover direction %q", h.Direction)
		}
		if err = e.tree.Check(h.Address, h.Kind); err != nil {
			return err
		}
	}

	e.clearHover()
	if !h.IsNone() {
		if err = e.tree.SetHover(h.Address, h.Kind, h.Direction); err != nil {
			return errs.Wrap(errs.ErrCodeInternal, err, "mark hover")
		}
	}
	e.hovered = h
	e.emit()
	return nil
}

// clearHover removes the mark of the current hover cursor from the tree and
// resets the cursor.
func (e *Engine) clearHover() {
	if !e.hovered.IsNone() {
		_ = e.tree.SetHover(e.hovered.Address, e.hovered.Kind, layout.DirectionNone)
	}
	e.hovered = NoHover
}

// DeleteTile removes the tile at a. Selection and hover are cleared and the
// tree is normalized.
func (e *Engine) DeleteTile(a layout.Address) (err error) {
	defer func(start time.Time) { e.observe("delete", start, err) }(time.Now())

	if _, err = e.tree.TileAt(a); err != nil {
		return err
	}
	_ = e.selectTile(layout.NoAddress)
	e.clearHover()
	if _, err = e.tree.RemoveTile(a); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "remove tile")
	}
	e.normalize()
	e.logger.Debug("deleted tile", "addr", a, "tiles", e.tree.Stats().Tiles)
	e.emit()
	return nil
}

// SetTileContent replaces the content of the tile at a.
func (e *Engine) SetTileContent(a layout.Address, c content.Content) (err error) {
	defer func(start time.Time) { e.observe("content", start, err) }(time.Now())

	if c == nil {
		return errs.New(errs.ErrCodeInvalidInput, "tile content must not be nil")
	}
	t, err := e.tree.TileAt(a)
	if err != nil {
		return err
	}
	t.Content = c
	e.logger.Debug("updated tile content", "addr", a)
	e.emit()
	return nil
}
