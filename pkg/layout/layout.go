package layout

import (
	"fmt"

	"github.com/matzehuels/mosaic/pkg/content"
)

const (
	// GridWidth is the total width of every row.
	GridWidth = 16

	// MaxColumns is the practical maximum of columns per row. Drops that
	// would pull a new column into a full row are rejected, and documents
	// with wider rows are refused at import.
	MaxColumns = 4
)

// Direction is a hover mark indicating on which side of an element a
// dragged tile would land. The zero value means "no mark".
type Direction string

// Hover directions.
const (
	DirectionNone   Direction = ""
	DirectionTop    Direction = "top"
	DirectionBottom Direction = "bottom"
	DirectionLeft   Direction = "left"
	DirectionRight  Direction = "right"
)

// Valid reports whether d is one of the four hover marks.
func (d Direction) Valid() bool {
	switch d {
	case DirectionTop, DirectionBottom, DirectionLeft, DirectionRight:
		return true
	}
	return false
}

// After reports whether a drop relative to d lands after the element.
func (d Direction) After() bool {
	return d == DirectionBottom || d == DirectionRight
}

// Kind identifies the level of the tree a hover targets.
type Kind string

// Element kinds. The empty kind is used by the no-hover sentinel; hover
// dispatch treats any kind other than tile and column as row.
const (
	KindNone   Kind = ""
	KindRow    Kind = "row"
	KindColumn Kind = "column"
	KindTile   Kind = "tile"
)

// ParseKind converts a kind name, rejecting unknown names.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindNone, KindRow, KindColumn, KindTile:
		return k, nil
	}
	return KindNone, fmt.Errorf("unknown kind %q", s)
}

// ParseDirection converts a direction name, rejecting unknown names.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if d == DirectionNone || d.Valid() {
		return d, nil
	}
	return DirectionNone, fmt.Errorf("unknown direction %q", s)
}

// Address locates an element by position.
type Address struct {
	Row    int `json:"row"`
	Column int `json:"column"`
	Tile   int `json:"tile"`
}

// NoAddress is the sentinel for "nothing selected".
var NoAddress = Address{Row: -1, Column: -1, Tile: -1}

// IsNone reports whether a is a sentinel (row -1).
func (a Address) IsNone() bool {
	return a.Row == -1
}

func (a Address) String() string {
	return fmt.Sprintf("(%d,%d,%d)", a.Row, a.Column, a.Tile)
}

// Tile is an atomic content unit.
type Tile struct {
	URL      string
	Type     string
	Content  content.Content
	Selected bool
	Hovered  Direction
}

// Column is a vertical slot of tiles with a width weight.
type Column struct {
	Width   int
	Hovered Direction
	Tiles   []*Tile
}

// Row is a horizontal band of columns.
type Row struct {
	Hovered Direction
	Columns []*Column
}

// Tree is the root of a layout.
type Tree struct {
	Rows []*Row
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// Stats summarizes the size of a tree.
type Stats struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
	Tiles   int `json:"tiles"`
}

// Stats counts rows, columns and tiles.
func (t *Tree) Stats() Stats {
	s := Stats{Rows: len(t.Rows)}
	for _, r := range t.Rows {
		s.Columns += len(r.Columns)
		for _, c := range r.Columns {
			s.Tiles += len(c.Tiles)
		}
	}
	return s
}

// Clone returns a deep copy of t. Content values are shared unless they
// are editable documents, which are copied.
func (t *Tree) Clone() *Tree {
	out := &Tree{Rows: make([]*Row, len(t.Rows))}
	for i, r := range t.Rows {
		nr := &Row{Hovered: r.Hovered, Columns: make([]*Column, len(r.Columns))}
		for j, c := range r.Columns {
			nc := &Column{Width: c.Width, Hovered: c.Hovered, Tiles: make([]*Tile, len(c.Tiles))}
			for k, tl := range c.Tiles {
				cp := *tl
				if d, ok := tl.Content.(*content.Document); ok {
					cp.Content = d.Clone()
				}
				nc.Tiles[k] = &cp
			}
			nr.Columns[j] = nc
		}
		out.Rows[i] = nr
	}
	return out
}

// Walk calls fn for every tile in row-major order.
func (t *Tree) Walk(fn func(a Address, tile *Tile)) {
	for i, r := range t.Rows {
		for j, c := range r.Columns {
			for k, tl := range c.Tiles {
				fn(Address{Row: i, Column: j, Tile: k}, tl)
			}
		}
	}
}
