package outline

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mosaic/pkg/content"
	"github.com/matzehuels/mosaic/pkg/engine"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/render"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds tile URLs and a text excerpt to tile labels.
	Detailed bool
	// Excerpt limits the excerpt length in runes. Zero means 40.
	Excerpt int
}

// ToDOT converts a snapshot to Graphviz DOT source.
func ToDOT(s engine.Snapshot, opts Options) string {
	if opts.Excerpt <= 0 {
		opts.Excerpt = 40
	}

	var buf bytes.Buffer
	buf.WriteString("digraph layout {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")

	for i, r := range s.Rows {
		fmt.Fprintf(&buf, "\n  subgraph cluster_r%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", withMark(fmt.Sprintf("row %d", i), r.Hovered))
		buf.WriteString("    style=\"rounded,dashed\";\n")
		if r.Hovered != layout.DirectionNone {
			buf.WriteString("    color=orange; penwidth=2;\n")
		}

		var heads []string
		for j, c := range r.Columns {
			cid := columnID(i, j)
			heads = append(heads, strconv.Quote(cid))
			attrs := []string{
				fmt.Sprintf("label=%q", withMark(fmt.Sprintf("column %d\nwidth %d/%d", j, c.Width, layout.GridWidth), c.Hovered)),
				"shape=folder", "fillcolor=lightgrey",
			}
			attrs = append(attrs, hoverAttrs(c.Hovered)...)
			fmt.Fprintf(&buf, "    %q [%s];\n", cid, strings.Join(attrs, ", "))

			prev := cid
			for k, t := range c.Tiles {
				tid := tileID(i, j, k)
				fmt.Fprintf(&buf, "    %q [%s];\n", tid, strings.Join(tileAttrs(t, opts), ", "))
				fmt.Fprintf(&buf, "    %q -> %q [arrowhead=none];\n", prev, tid)
				prev = tid
			}
		}
		if len(heads) > 1 {
			fmt.Fprintf(&buf, "    { rank=same; %s }\n", strings.Join(heads, "; "))
		}
		buf.WriteString("  }\n")
	}

	// Invisible edges keep rows stacked in document order.
	for i := 1; i < len(s.Rows); i++ {
		if len(s.Rows[i-1].Columns) == 0 || len(s.Rows[i].Columns) == 0 {
			continue
		}
		above := lastNode(s.Rows[i-1], i-1)
		fmt.Fprintf(&buf, "  %q -> %q [style=invis];\n", above, columnID(i, 0))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func columnID(r, c int) string { return fmt.Sprintf("r%dc%d", r, c) }

func tileID(r, c, t int) string { return fmt.Sprintf("r%dc%dt%d", r, c, t) }

// lastNode returns the deepest node of the first column of a row.
func lastNode(r engine.RowView, idx int) string {
	c := r.Columns[0]
	if len(c.Tiles) == 0 {
		return columnID(idx, 0)
	}
	return tileID(idx, 0, len(c.Tiles)-1)
}

func tileAttrs(t engine.TileView, opts Options) []string {
	name := t.Type
	if name == "" {
		name = "tile"
	}
	label := name
	if opts.Detailed {
		if t.URL != "" {
			label += "\n" + t.URL
		}
		if text := excerpt(content.PlainText(content.Raw(t.Content)), opts.Excerpt); text != "" {
			label += "\n" + text
		}
	}
	attrs := []string{fmt.Sprintf("label=%q", withMark(label, t.Hovered))}
	if t.Selected {
		attrs = append(attrs, "fillcolor=\"#9be7df\"", "penwidth=2")
	}
	return append(attrs, hoverAttrs(t.Hovered)...)
}

func hoverAttrs(d layout.Direction) []string {
	if d == layout.DirectionNone {
		return nil
	}
	return []string{"color=orange", "penwidth=2"}
}

// withMark appends the hover side to a label.
func withMark(label string, d layout.Direction) string {
	if d == layout.DirectionNone {
		return label
	}
	return label + "\n[drop " + string(d) + "]"
}

func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the diagram scales from a
// zero origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion at the given scale.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
