// Package grid renders layout snapshots as boxes in the terminal.
//
// Each row is drawn as a horizontal band of columns sized in proportion to
// their grid width; each column stacks its tiles. The selected tile gets a
// highlighted border and hover marks are drawn as arrow markers on the
// hovered side.
//
//	fmt.Println(grid.Render(snap, grid.Options{Width: 100}))
package grid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mosaic/pkg/content"
	"github.com/matzehuels/mosaic/pkg/engine"
	"github.com/matzehuels/mosaic/pkg/layout"
)

// DefaultWidth is the total width used when Options.Width is unset.
const DefaultWidth = 96

// minColumn is the narrowest column that still fits a bordered box.
const minColumn = 8

var (
	colorCyan   = lipgloss.Color("36")
	colorYellow = lipgloss.Color("220")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")

	tileStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	selectedStyle = tileStyle.BorderStyle(lipgloss.ThickBorder()).BorderForeground(colorCyan)
	typeStyle     = lipgloss.NewStyle().Bold(true)
	textStyle     = lipgloss.NewStyle().Foreground(colorGray)
	markerStyle   = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	emptyStyle    = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
)

// Options configures rendering.
type Options struct {
	// Width is the total width in terminal cells.
	Width int
	// Lines limits the text lines shown per tile. Zero means 3.
	Lines int
	// ShowURL adds the tile URL under the type.
	ShowURL bool
}

// Render draws s.
func Render(s engine.Snapshot, opts Options) string {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Lines <= 0 {
		opts.Lines = 3
	}
	if len(s.Rows) == 0 {
		return emptyStyle.Render("(empty layout)")
	}

	var out []string
	for _, r := range s.Rows {
		if marker := rowMarker(r.Hovered, opts.Width); marker != "" && !r.Hovered.After() {
			out = append(out, marker)
		}
		out = append(out, renderRow(r, opts))
		if marker := rowMarker(r.Hovered, opts.Width); marker != "" && r.Hovered.After() {
			out = append(out, marker)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func renderRow(r engine.RowView, opts Options) string {
	sizes := ColumnWidths(r, opts.Width)
	cols := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		cols[i] = renderColumn(c, sizes[i], opts)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// ColumnWidths splits total cells across the columns of r in proportion to
// their grid widths. Every column gets at least a minimal box width.
func ColumnWidths(r engine.RowView, total int) []int {
	sum := 0
	for _, c := range r.Columns {
		sum += c.Width
	}
	if sum <= 0 {
		sum = layout.GridWidth
	}
	out := make([]int, len(r.Columns))
	cum, prev := 0, 0
	for i, c := range r.Columns {
		cum += c.Width
		edge := total * cum / sum
		out[i] = max(edge-prev, minColumn)
		prev = edge
	}
	return out
}

func renderColumn(c engine.ColumnView, width int, opts Options) string {
	var parts []string
	if c.Hovered != layout.DirectionNone && !c.Hovered.After() {
		parts = append(parts, marker(c.Hovered, width, "column"))
	}
	for _, t := range c.Tiles {
		if t.Hovered != layout.DirectionNone && !t.Hovered.After() {
			parts = append(parts, marker(t.Hovered, width, "tile"))
		}
		parts = append(parts, renderTile(t, width, opts))
		if t.Hovered.After() {
			parts = append(parts, marker(t.Hovered, width, "tile"))
		}
	}
	if c.Hovered.After() {
		parts = append(parts, marker(c.Hovered, width, "column"))
	}
	header := textStyle.Render(fmt.Sprintf("w%d", c.Width))
	return lipgloss.NewStyle().Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, append([]string{header}, parts...)...),
	)
}

func renderTile(t engine.TileView, width int, opts Options) string {
	style := tileStyle
	if t.Selected {
		style = selectedStyle
	}
	inner := max(width-style.GetHorizontalFrameSize(), 1)

	name := t.Type
	if name == "" {
		name = "tile"
	}
	lines := []string{typeStyle.Render(truncate(name, inner))}
	if opts.ShowURL && t.URL != "" {
		lines = append(lines, textStyle.Render(truncate(t.URL, inner)))
	}
	text := content.PlainText(content.Raw(t.Content))
	for _, l := range wrap(text, inner, opts.Lines) {
		lines = append(lines, textStyle.Render(l))
	}
	return style.Width(width - style.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}

func rowMarker(d layout.Direction, width int) string {
	if d == layout.DirectionNone {
		return ""
	}
	return marker(d, width, "row")
}

// marker draws the drop indicator for a hovered element.
func marker(d layout.Direction, width int, kind string) string {
	var label string
	switch d {
	case layout.DirectionTop:
		label = "▲ " + kind + " above"
	case layout.DirectionBottom:
		label = "▼ " + kind + " below"
	case layout.DirectionLeft:
		label = "◀ " + kind + " left"
	case layout.DirectionRight:
		label = kind + " right ▶"
	}
	label = truncate(label, width)
	pad := width - lipgloss.Width(label)
	if pad > 0 && d == layout.DirectionRight {
		label = strings.Repeat(" ", pad) + label
	}
	return markerStyle.Render(label)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// wrap breaks text into at most lines lines of width n, ending the last
// with an ellipsis when text remains.
func wrap(text string, n, lines int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		cur := ""
		for _, w := range strings.Fields(para) {
			switch {
			case cur == "":
				cur = w
			case len([]rune(cur))+1+len([]rune(w)) <= n:
				cur += " " + w
			default:
				out = append(out, truncate(cur, n))
				cur = w
			}
		}
		if cur != "" {
			out = append(out, truncate(cur, n))
		}
	}
	if len(out) > lines {
		out = out[:lines]
		out[lines-1] = truncate(out[lines-1]+" …", n)
	}
	return out
}
