// Package render holds output helpers shared by the layout renderers.
//
// The renderers themselves live in subpackages:
//
//   - [grid] draws a snapshot as terminal boxes with lipgloss
//   - [outline] converts a snapshot into a Graphviz structure diagram
//
// [ToPDF] and [ToPNG] convert SVG output from [outline] into other formats
// using the external rsvg-convert tool (from librsvg):
//
//	svg, err := outline.RenderSVG(outline.ToDOT(snap, outline.Options{}))
//	png, err := render.ToPNG(svg, 2.0)
//
// [grid]: github.com/matzehuels/mosaic/pkg/render/grid
// [outline]: github.com/matzehuels/mosaic/pkg/render/outline
package render
