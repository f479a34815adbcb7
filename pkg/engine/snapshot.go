package engine

import (
	"github.com/matzehuels/mosaic/pkg/layout"
)

// Snapshot is an immutable view of the engine state with cursor state
// merged into the nodes.
type Snapshot struct {
	Version  uint64         `json:"version"`
	Rows     []RowView      `json:"rows"`
	Selected layout.Address `json:"selected"`
	Hovered  Hover          `json:"hovered"`
}

// RowView is a row in a [Snapshot].
type RowView struct {
	Hovered layout.Direction `json:"hovered,omitempty"`
	Columns []ColumnView     `json:"columns"`
}

// ColumnView is a column in a [Snapshot].
type ColumnView struct {
	Width   int              `json:"width"`
	Hovered layout.Direction `json:"hovered,omitempty"`
	Tiles   []TileView       `json:"tiles"`
}

// TileView is a tile in a [Snapshot]. Content holds the tile's markup.
type TileView struct {
	URL      string           `json:"url"`
	Type     string           `json:"type,omitempty"`
	Content  string           `json:"content"`
	Selected bool             `json:"selected,omitempty"`
	Hovered  layout.Direction `json:"hovered,omitempty"`
}

// Snapshot captures the current state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Version:  e.version,
		Rows:     make([]RowView, len(e.tree.Rows)),
		Selected: e.selected,
		Hovered:  e.hovered,
	}
	for i, r := range e.tree.Rows {
		rv := RowView{Hovered: r.Hovered, Columns: make([]ColumnView, len(r.Columns))}
		for j, c := range r.Columns {
			cv := ColumnView{Width: c.Width, Hovered: c.Hovered, Tiles: make([]TileView, len(c.Tiles))}
			for k, t := range c.Tiles {
				tv := TileView{URL: t.URL, Type: t.Type, Selected: t.Selected, Hovered: t.Hovered}
				if t.Content != nil {
					tv.Content = t.Content.Markup()
				}
				cv.Tiles[k] = tv
			}
			rv.Columns[j] = cv
		}
		s.Rows[i] = rv
	}
	return s
}

// Tile returns the tile view at a.
func (s Snapshot) Tile(a layout.Address) (TileView, bool) {
	if a.Row < 0 || a.Row >= len(s.Rows) {
		return TileView{}, false
	}
	r := s.Rows[a.Row]
	if a.Column < 0 || a.Column >= len(r.Columns) {
		return TileView{}, false
	}
	c := r.Columns[a.Column]
	if a.Tile < 0 || a.Tile >= len(c.Tiles) {
		return TileView{}, false
	}
	return c.Tiles[a.Tile], true
}

// Stats counts the rows, columns and tiles in s.
func (s Snapshot) Stats() layout.Stats {
	st := layout.Stats{Rows: len(s.Rows)}
	for _, r := range s.Rows {
		st.Columns += len(r.Columns)
		for _, c := range r.Columns {
			st.Tiles += len(c.Tiles)
		}
	}
	return st
}
