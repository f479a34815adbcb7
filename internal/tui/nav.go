package tui

import (
	"github.com/matzehuels/mosaic/pkg/engine"
	"github.com/matzehuels/mosaic/pkg/layout"
)

// first returns the first tile address, or NoAddress for an empty layout.
func first(s engine.Snapshot) layout.Address {
	if len(s.Rows) == 0 {
		return layout.NoAddress
	}
	return layout.Address{}
}

// step moves a one tile in the direction named by key. Up and down walk
// the column and continue into the neighbouring row; left and right change
// column within the row. Moves off the edge leave a unchanged.
func step(s engine.Snapshot, a layout.Address, key string) layout.Address {
	if !valid(s, a) {
		return first(s)
	}
	row := s.Rows[a.Row]
	col := row.Columns[a.Column]

	switch key {
	case "up", "k":
		if a.Tile > 0 {
			a.Tile--
		} else if a.Row > 0 {
			a.Row--
			a.Column = min(a.Column, len(s.Rows[a.Row].Columns)-1)
			a.Tile = len(s.Rows[a.Row].Columns[a.Column].Tiles) - 1
		}
	case "down", "j":
		if a.Tile < len(col.Tiles)-1 {
			a.Tile++
		} else if a.Row < len(s.Rows)-1 {
			a.Row++
			a.Column = min(a.Column, len(s.Rows[a.Row].Columns)-1)
			a.Tile = 0
		}
	case "left", "h":
		if a.Column > 0 {
			a.Column--
			a.Tile = min(a.Tile, len(row.Columns[a.Column].Tiles)-1)
		}
	case "right", "l":
		if a.Column < len(row.Columns)-1 {
			a.Column++
			a.Tile = min(a.Tile, len(row.Columns[a.Column].Tiles)-1)
		}
	}
	return a
}

// nearest clamps a into s, for reselecting after a delete.
func nearest(s engine.Snapshot, a layout.Address) layout.Address {
	if len(s.Rows) == 0 {
		return layout.NoAddress
	}
	a.Row = min(max(a.Row, 0), len(s.Rows)-1)
	cols := s.Rows[a.Row].Columns
	a.Column = min(max(a.Column, 0), len(cols)-1)
	a.Tile = min(max(a.Tile, 0), len(cols[a.Column].Tiles)-1)
	return a
}

func valid(s engine.Snapshot, a layout.Address) bool {
	if a.Row < 0 || a.Row >= len(s.Rows) {
		return false
	}
	cols := s.Rows[a.Row].Columns
	if a.Column < 0 || a.Column >= len(cols) {
		return false
	}
	return a.Tile >= 0 && a.Tile < len(cols[a.Column].Tiles)
}
