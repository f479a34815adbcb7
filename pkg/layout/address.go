package layout

import (
	errs "github.com/matzehuels/mosaic/pkg/errors"
)

// RowAt returns the row at index i.
func (t *Tree) RowAt(i int) (*Row, error) {
	if i < 0 || i >= len(t.Rows) {
		return nil, errs.New(errs.ErrCodeInvalidAddress, "no row %d (tree has %d rows)", i, len(t.Rows))
	}
	return t.Rows[i], nil
}

// ColumnAt returns the column addressed by a.Row and a.Column.
func (t *Tree) ColumnAt(a Address) (*Column, error) {
	r, err := t.RowAt(a.Row)
	if err != nil {
		return nil, err
	}
	if a.Column < 0 || a.Column >= len(r.Columns) {
		return nil, errs.New(errs.ErrCodeInvalidAddress, "no column %d in row %d (row has %d columns)", a.Column, a.Row, len(r.Columns))
	}
	return r.Columns[a.Column], nil
}

// TileAt returns the tile addressed by a.
func (t *Tree) TileAt(a Address) (*Tile, error) {
	c, err := t.ColumnAt(a)
	if err != nil {
		return nil, err
	}
	if a.Tile < 0 || a.Tile >= len(c.Tiles) {
		return nil, errs.New(errs.ErrCodeInvalidAddress, "no tile %d in column %d of row %d (column has %d tiles)", a.Tile, a.Column, a.Row, len(c.Tiles))
	}
	return c.Tiles[a.Tile], nil
}

// Check verifies that a addresses an element of the given kind. Only the
// indices meaningful for the kind are checked: a row target ignores the
// column and tile indices, a column target ignores the tile index.
func (t *Tree) Check(a Address, k Kind) error {
	switch k {
	case KindTile:
		_, err := t.TileAt(a)
		return err
	case KindColumn:
		_, err := t.ColumnAt(a)
		return err
	default:
		_, err := t.RowAt(a.Row)
		return err
	}
}

// Find returns the address of tile, or [NoAddress] if it is not in t.
func (t *Tree) Find(tile *Tile) Address {
	found := NoAddress
	t.Walk(func(a Address, tl *Tile) {
		if tl == tile && found.IsNone() {
			found = a
		}
	})
	return found
}

// SetHover sets the hover mark of the element of kind k at a.
// Kinds other than tile and column mark the row.
func (t *Tree) SetHover(a Address, k Kind, d Direction) error {
	switch k {
	case KindTile:
		tl, err := t.TileAt(a)
		if err != nil {
			return err
		}
		tl.Hovered = d
	case KindColumn:
		c, err := t.ColumnAt(a)
		if err != nil {
			return err
		}
		c.Hovered = d
	default:
		r, err := t.RowAt(a.Row)
		if err != nil {
			return err
		}
		r.Hovered = d
	}
	return nil
}

// RemoveTile detaches and returns the tile at a. The column it leaves may
// be empty; callers run [Normalize] afterwards.
func (t *Tree) RemoveTile(a Address) (*Tile, error) {
	c, err := t.ColumnAt(a)
	if err != nil {
		return nil, err
	}
	tl, err := t.TileAt(a)
	if err != nil {
		return nil, err
	}
	c.Tiles = remove(c.Tiles, a.Tile)
	return tl, nil
}

func insert[T any](s []T, i int, v T) []T {
	if i < 0 {
		i = 0
	}
	if i > len(s) {
		i = len(s)
	}
	s = append(s, v)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func remove[T any](s []T, i int) []T {
	return append(s[:i], s[i+1:]...)
}

// InsertTile inserts tile into the column addressed by a at index a.Tile,
// clamped to the column bounds.
func (t *Tree) InsertTile(a Address, tile *Tile) error {
	c, err := t.ColumnAt(a)
	if err != nil {
		return err
	}
	c.Tiles = insert(c.Tiles, a.Tile, tile)
	return nil
}

// InsertColumn inserts col into row at index i, clamped to the row bounds.
func (t *Tree) InsertColumn(row, i int, col *Column) error {
	r, err := t.RowAt(row)
	if err != nil {
		return err
	}
	r.Columns = insert(r.Columns, i, col)
	return nil
}

// InsertRow inserts r at index i, clamped to the tree bounds.
func (t *Tree) InsertRow(i int, r *Row) {
	t.Rows = insert(t.Rows, i, r)
}

// MoveTile moves the tile at index from to land immediately before the
// element currently at index to within the same column. An index equal to
// the column length moves the tile to the end. The index is read before the
// tile is removed, so dropping A below B in [A B C] gives [B A C] and not the
// splice-at-index result [B C A].
func (c *Column) MoveTile(from, to int) {
	if from < 0 || from >= len(c.Tiles) {
		return
	}
	if to > from {
		to--
	}
	if to == from {
		return
	}
	tl := c.Tiles[from]
	c.Tiles = remove(c.Tiles, from)
	c.Tiles = insert(c.Tiles, to, tl)
}
