package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mosaic/pkg/content"
	"github.com/matzehuels/mosaic/pkg/engine"
	errs "github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/layout"
)

const sample = `
# reorder the first column
select 0 0 1
hover tile 0 0 0 top
drop 0 0 1

hover none   # trailing comment
select none
content 1 0 0 "<p>Hello \"you\"</p>"
delete 0 1 0
`

func TestParse(t *testing.T) {
	s, err := ParseString(sample)
	require.NoError(t, err)

	want := []engine.Event{
		{Op: engine.OpSelect, Row: 0, Column: 0, Tile: 1},
		{Op: engine.OpHover, Row: 0, Column: 0, Tile: 0, Kind: layout.KindTile, Direction: layout.DirectionTop},
		{Op: engine.OpDrop, Row: 0, Column: 0, Tile: 1},
		{Op: engine.OpHover, Row: -1, Column: -1, Tile: -1},
		{Op: engine.OpSelect, Row: -1, Column: -1, Tile: -1},
		{Op: engine.OpContent, Row: 1, Column: 0, Tile: 0, Markup: `<p>Hello "you"</p>`},
		{Op: engine.OpDelete, Row: 0, Column: 1, Tile: 0},
	}
	assert.Equal(t, want, s.Events())
	assert.Equal(t, 3, s.Commands[0].Pos.Line)
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "\n\n", "# only a comment\n"} {
		s, err := ParseString(in)
		require.NoError(t, err, "%q", in)
		assert.Empty(t, s.Commands)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  string
	}{
		{"unknown command", "select 0 0 0\nspin 0 0 0\n", "line 2"},
		{"bad direction", "hover tile 0 0 0 up\n", "line 1"},
		{"missing index", "drop 0 0 x\n", "line 1"},
		{"unquoted content", "content 0 0 0 hello\n", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrCodeInvalidScript), "got %v", err)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestParseReader(t *testing.T) {
	s, err := Parse(strings.NewReader("select 0 0 0\n"))
	require.NoError(t, err)
	assert.Len(t, s.Commands, 1)
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	tree := layout.New()
	tree.Rows = []*layout.Row{
		{Columns: []*layout.Column{
			{Width: 8, Tiles: []*layout.Tile{{Type: "A", Content: content.Raw("A")}, {Type: "B", Content: content.Raw("B")}}},
			{Width: 8, Tiles: []*layout.Tile{{Type: "C", Content: content.Raw("C")}}},
		}},
		{Columns: []*layout.Column{
			{Width: 4, Tiles: []*layout.Tile{{Type: "D", Content: content.Raw("D")}}},
			{Width: 4, Tiles: []*layout.Tile{{Type: "E", Content: content.Raw("E")}}},
			{Width: 4, Tiles: []*layout.Tile{{Type: "F", Content: content.Raw("F")}}},
			{Width: 4, Tiles: []*layout.Tile{{Type: "G", Content: content.Raw("G")}}},
		}},
	}
	e, err := engine.New(tree)
	require.NoError(t, err)
	return e
}

func TestRun(t *testing.T) {
	e := newEngine(t)
	s, err := ParseString(`
hover tile 0 0 0 top
drop 0 0 1
hover column 1 0 0 left
drop 0 0 0
content 1 0 0 "<p>Hi</p>"
`)
	require.NoError(t, err)

	res, err := Run(e, s)
	require.NoError(t, err)
	assert.Equal(t, Result{Applied: 4, Rejected: 1}, res)

	tree := e.Tree()
	assert.Equal(t, "B", tree.Rows[0].Columns[0].Tiles[0].Type)
	assert.Len(t, tree.Rows[1].Columns, layout.MaxColumns)
	assert.Equal(t, "Hi", content.PlainText(tree.Rows[1].Columns[0].Tiles[0].Content))
}

func TestRunStopsAtFailure(t *testing.T) {
	e := newEngine(t)
	s, err := ParseString("select 0 1 0\n\nselect 5 0 0\nselect 0 0 0\n")
	require.NoError(t, err)

	res, err := Run(e, s)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidScript))
	assert.Contains(t, err.Error(), "line 3: select 5 0 0")
	assert.Equal(t, Result{Applied: 1}, res)
	assert.Equal(t, layout.Address{Row: 0, Column: 1, Tile: 0}, e.Selected())
}

func TestFormatRoundTrip(t *testing.T) {
	s, err := ParseString(sample)
	require.NoError(t, err)

	back, err := ParseString(Format(s.Events()))
	require.NoError(t, err)
	assert.Equal(t, s.Events(), back.Events())
}
