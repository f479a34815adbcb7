// Package pkg holds the mosaic libraries.
//
// # Overview
//
// Mosaic is the layout engine behind a grid page editor. A page is a list of
// rows; each row holds up to four columns whose widths share a 16-unit grid;
// each column stacks tiles. Users rearrange tiles by drag and drop and the
// engine keeps the tree balanced after every change.
//
// # Architecture
//
//	document JSON
//	     ↓
//	[io] (decode, tile markup via [content])
//	     ↓
//	[layout] tree ←→ [engine] (select, hover, drop, delete, content)
//	     ↓                ↑
//	[render] views    [script] gesture replay
//	     ↓
//	[store] persistence, [cache] render and replay results
//
// # Quick Start
//
//	tree, err := io.ImportJSON("page.json", io.Options{})
//	if err != nil {
//	    return err
//	}
//	e, err := engine.New(tree)
//	if err != nil {
//	    return err
//	}
//
//	// Drag the second tile of the first column below the first tile of row 1.
//	e.SetHovered(engine.Hover{
//	    Address:   layout.Address{Row: 1, Column: 0, Tile: 0},
//	    Kind:      layout.KindTile,
//	    Direction: layout.DirectionBottom,
//	})
//	moved, err := e.HandleDrop(layout.Address{Row: 0, Column: 0, Tile: 1})
//
//	fmt.Println(grid.Render(e.Snapshot(), grid.Options{}))
//
// # Packages
//
// [layout] - The row/column/tile tree, addressing, normalization and
// invariant checks.
//
// [engine] - The stateful editor: selection, hover targets, drop semantics
// and snapshots.
//
// [content] - Tile markup. The editable decoder keeps a small formatting
// model; the raw decoder keeps markup untouched.
//
// [io] - Document import and export.
//
// [script] - A line-oriented gesture language for replaying edits.
//
// [render] - Terminal ([render/grid]) and Graphviz ([render/outline]) views
// of a snapshot.
//
// [store] - Document persistence on memory, files, Redis or MongoDB.
//
// [cache] - Content-addressed caching of rendered diagrams and replays.
//
// [observability] - Hooks for engine, store, cache and HTTP events.
//
// [errors] - Coded errors shared by every package.
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/layout
// [engine]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/engine
// [content]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/content
// [io]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/io
// [script]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/script
// [render]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/render
// [render/grid]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/render/grid
// [render/outline]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/render/outline
// [store]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/store
// [cache]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/errors
package pkg
