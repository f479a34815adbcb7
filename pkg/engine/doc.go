// Package engine implements the Mosaic layout engine: a stateful mutator
// over a [layout.Tree] driven by selection, hover, drop, delete and content
// events.
//
// # Overview
//
// An [Engine] owns a tree and two cursors:
//
//   - the selection cursor, addressing at most one selected tile
//   - the hover cursor, addressing the element a dragged tile is over and
//     the side ([layout.Direction]) it would land on
//
// All mutation goes through five operations:
//
//	e.SelectTile(addr)            // select a tile, or layout.NoAddress to clear
//	e.SetHovered(hover)           // move the hover mark (no-op if unchanged)
//	e.HandleDrop(source)          // drop the dragged tile onto the hover target
//	e.DeleteTile(addr)            // remove a tile
//	e.SetTileContent(addr, body)  // replace a tile's content
//
// Structural changes (drop, delete) end with [layout.Normalize], so every
// operation returns with the tree's invariants intact: no empty rows or
// columns, row widths summing to 16, a single selected tile and a single
// hover mark, and cursors that address existing elements.
//
// # Drag and Drop
//
// While a drag is in progress the gesture layer reports the element under
// the pointer with [Engine.SetHovered]. On release it calls
// [Engine.HandleDrop] with the address of the dragged tile; the hover
// cursor supplies the drop target. The pair is captured as an explicit
// [DragSession], which can also be passed to [Engine.Drop] directly.
//
// Dropping onto a tile inserts before or after it; onto a column creates a
// new column next to it; onto a row creates a new full-width row above or
// below it. A column drop into a row that already holds
// [layout.MaxColumns] columns is refused unless it cannot grow the row
// (the dragged tile is the only tile of a column in that row). Refused
// drops are not errors: Drop reports false and only the hover is cleared.
//
// # Errors
//
// Addresses that do not exist fail with an INVALID_ADDRESS error from
// [github.com/matzehuels/mosaic/pkg/errors] and leave the engine unchanged.
//
// # Snapshots
//
// Every state-changing call ends by emitting a [Snapshot] to the handler
// registered with [WithSnapshotHandler]. A snapshot is a plain value tree
// with selection and hover state merged into the nodes, ready to render or
// encode as JSON.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Operations run synchronously to
// completion; hosts serving several goroutines must serialize access.
package engine
