package grid

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mosaic/pkg/engine"
	"github.com/matzehuels/mosaic/pkg/layout"
)

func snapshot() engine.Snapshot {
	return engine.Snapshot{
		Rows: []engine.RowView{
			{Columns: []engine.ColumnView{
				{Width: 6, Tiles: []engine.TileView{{Type: "Title", Content: "<p>Column <b>one</b></p>", Selected: true}}},
				{Width: 10, Hovered: layout.DirectionLeft, Tiles: []engine.TileView{{Type: "Description", Content: "two"}}},
			}},
			{Hovered: layout.DirectionBottom, Columns: []engine.ColumnView{
				{Width: 16, Tiles: []engine.TileView{{Type: "Text", URL: "./@@tile/4", Content: "full"}}},
			}},
		},
	}
}

func TestRender(t *testing.T) {
	out := Render(snapshot(), Options{Width: 80, ShowURL: true})

	for _, want := range []string{"Title", "Column one", "Description", "Text", "./@@tile/4", "◀ column left", "▼ row below", "w6", "w10"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<b>") {
		t.Error("markup leaked into output")
	}
	if w := lipgloss.Width(out); w > 80 {
		t.Errorf("width = %d, want <= 80", w)
	}
	if strings.Index(out, "Text") < strings.Index(out, "Title") {
		t.Error("rows out of order")
	}
	if strings.Index(out, "▼ row below") < strings.Index(out, "full") {
		t.Error("bottom marker drawn above the row")
	}
}

func TestRenderEmpty(t *testing.T) {
	if out := Render(engine.Snapshot{}, Options{}); !strings.Contains(out, "empty layout") {
		t.Errorf("Render(empty) = %q", out)
	}
}

func TestColumnWidths(t *testing.T) {
	tests := []struct {
		widths []int
		total  int
		want   []int
	}{
		{[]int{16}, 80, []int{80}},
		{[]int{8, 8}, 80, []int{40, 40}},
		{[]int{6, 10}, 80, []int{30, 50}},
		{[]int{5, 6, 5}, 96, []int{30, 36, 30}},
		{[]int{4, 4, 4, 4}, 20, []int{8, 8, 8, 8}},
	}
	for _, tt := range tests {
		var r engine.RowView
		for _, w := range tt.widths {
			r.Columns = append(r.Columns, engine.ColumnView{Width: w})
		}
		got := ColumnWidths(r, tt.total)
		if len(got) != len(tt.want) {
			t.Fatalf("ColumnWidths(%v) = %v", tt.widths, got)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ColumnWidths(%v, %d) = %v, want %v", tt.widths, tt.total, got, tt.want)
				break
			}
		}
	}
}

func TestWrap(t *testing.T) {
	got := wrap("one two three four five six", 9, 2)
	if len(got) != 2 || got[0] != "one two" {
		t.Fatalf("wrap = %q", got)
	}
	if !strings.HasSuffix(got[1], "…") {
		t.Errorf("last line %q not elided", got[1])
	}
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Errorf("truncate = %q", got)
	}
}
