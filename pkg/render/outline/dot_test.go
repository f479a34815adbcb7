package outline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/mosaic/pkg/engine"
	"github.com/matzehuels/mosaic/pkg/layout"
)

func snapshot() engine.Snapshot {
	return engine.Snapshot{
		Rows: []engine.RowView{
			{Columns: []engine.ColumnView{
				{Width: 6, Tiles: []engine.TileView{
					{Type: "Title", URL: "./@@tile/1", Content: "<p>Column <b>one</b></p>", Selected: true},
					{Type: "Document by line", Content: "by line", Hovered: layout.DirectionBottom},
				}},
				{Width: 10, Tiles: []engine.TileView{{Type: "Description", Content: "two"}}},
			}},
			{Hovered: layout.DirectionTop, Columns: []engine.ColumnView{
				{Width: 16, Tiles: []engine.TileView{{Type: "Text", Content: "full"}}},
			}},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(snapshot(), Options{Detailed: true})

	for _, want := range []string{
		"digraph layout {",
		"subgraph cluster_r0 {",
		"subgraph cluster_r1 {",
		`label="row 1\n[drop top]"`,
		`"r0c0" [label="column 0\nwidth 6/16"`,
		`"r0c1" [label="column 1\nwidth 10/16"`,
		`"r0c0" -> "r0c0t0"`,
		`"r0c0t0" -> "r0c0t1"`,
		`label="Title\n./@@tile/1\nColumn one"`,
		`fillcolor="#9be7df"`,
		`label="Document by line\nby line\n[drop bottom]"`,
		`{ rank=same; "r0c0"; "r0c1" }`,
		`"r0c0t1" -> "r1c0" [style=invis]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTCompact(t *testing.T) {
	dot := ToDOT(snapshot(), Options{})
	if strings.Contains(dot, "./@@tile/1") {
		t.Error("compact labels should omit URLs")
	}
	if !strings.Contains(dot, `label="Title"`) {
		t.Errorf("missing compact tile label:\n%s", dot)
	}
}

func TestExcerpt(t *testing.T) {
	if got := excerpt("  a\n b  c ", 10); got != "a b c" {
		t.Errorf("excerpt = %q", got)
	}
	if got := excerpt("abcdefgh", 5); got != "abcd…" {
		t.Errorf("excerpt = %q", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := normalizeViewBox(in)
	if !bytes.Contains(out, []byte(`viewBox="0 0 10.00 20.00" width="10" height="20"`)) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("unchanged input rewritten: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(snapshot(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("output is not SVG: %.80s", svg)
	}
}
