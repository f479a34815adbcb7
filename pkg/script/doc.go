// Package script parses and replays gesture scripts: line-oriented command
// files that drive a layout engine the way a pointer-driven editor would.
//
// # Syntax
//
//	# comments run to the end of the line
//	select 0 0 1                  # select tile (row, column, tile)
//	select none                   # clear the selection
//	hover tile 0 0 1 bottom       # hover kind, address, direction
//	hover column 1 0 0 left
//	hover row 2 0 0 top
//	hover none
//	drop 0 0 0                    # drop the tile at (0,0,0) on the hover target
//	delete 0 1 0
//	content 0 0 0 "<p>Hello</p>"  # replace tile content (Go string syntax)
//
// Each command maps to one [engine.Event]. [Run] applies them in order and
// stops at the first failing command, reporting its line.
//
// [Format] writes events back in the same syntax, so recorded editor
// sessions can be replayed.
//
// [engine.Event]: github.com/matzehuels/mosaic/pkg/engine.Event
package script
