// Package outline renders layout snapshots as structure diagrams.
//
// Rows become Graphviz clusters stacked top to bottom; each column is a
// node labelled with its grid width, with its tiles hanging below it in
// order. The selected tile is filled, hovered elements are outlined and
// labelled with the side a drop would land on.
//
//	dot := outline.ToDOT(snap, outline.Options{Detailed: true})
//	svg, err := outline.RenderSVG(dot)
//
// DOT output can also be saved and processed with external Graphviz tools.
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package outline
