// Package layout provides the tree model of a Mosaic page layout and the
// normalization pass that repairs its structural invariants.
//
// # Overview
//
// A [Tree] is an ordered list of rows. Each [Row] holds ordered columns,
// each [Column] holds ordered tiles. Columns carry an integer width weight;
// the widths of a row always add up to [GridWidth] (16):
//
//	Tree
//	├── Row 0
//	│   ├── Column (width 6)  → Tile "Title", Tile "Document by line"
//	│   └── Column (width 10) → Tile "Description"
//	└── Row 1
//	    └── Column (width 16) → Tile "Text", Tile "Text"
//
// Elements are addressed positionally with an [Address] (row, column, tile).
// [NoAddress] (-1, -1, -1) is the "nothing" sentinel used by cursors.
//
// Rows, columns and tiles also carry ephemeral editor state: a tile's
// Selected flag and a [Direction] hover mark on any element. These are
// owned by the editing engine and merged into snapshots for rendering.
//
// # Invariants
//
// After [Normalize] a tree satisfies:
//
//   - Every row has at least one column and every column at least one tile
//   - The column widths of every row sum to [GridWidth]
//
// [Tree.Validate] additionally checks the editor invariants: at most one
// selected tile and at most one hover mark in the whole tree.
//
// # Normalization
//
// [Normalize] runs two passes in order:
//
//  1. [Prune] removes empty columns, then rows left without columns
//  2. [Rebalance] reassigns widths from a table keyed by column count
//     (1 → 16; 2 → 8,8; 3 → 5,6,5; 4 → 4,4,4,4) for rows whose widths do not
//     sum to 16
//
// Column pruning must precede row pruning because a row becomes empty only
// once all of its columns are gone.
package layout
