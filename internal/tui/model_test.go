package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mosaic/pkg/content"
	"github.com/matzehuels/mosaic/pkg/engine"
	mosaicio "github.com/matzehuels/mosaic/pkg/io"
	"github.com/matzehuels/mosaic/pkg/layout"
)

const fullRow = `{"rows":[
 {"columns":[
  {"width":4,"tiles":[{"url":"a"}]},
  {"width":4,"tiles":[{"url":"b"}]},
  {"width":4,"tiles":[{"url":"c"}]},
  {"width":4,"tiles":[{"url":"d"}]}]},
 {"columns":[{"width":16,"tiles":[{"url":"e"},{"url":"f"}]}]}]}`

func newModel(t *testing.T, doc string, opts Options) (Model, *engine.Engine) {
	t.Helper()
	tree := mosaicio.DefaultDocument()
	if doc != "" {
		var err error
		tree, err = mosaicio.Unmarshal([]byte(doc), mosaicio.Options{Decoder: content.ParseRaw})
		require.NoError(t, err)
	}
	e, err := engine.New(tree)
	require.NoError(t, err)
	return New(e, opts), e
}

func key(k string) tea.KeyMsg {
	switch k {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func at(r, c, t int) layout.Address { return layout.Address{Row: r, Column: c, Tile: t} }

func TestNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want layout.Address
	}{
		{"start", nil, at(0, 0, 0)},
		{"down in column", []string{"down"}, at(0, 0, 1)},
		{"down into next row", []string{"down", "down"}, at(1, 0, 0)},
		{"up into previous row ends on last tile", []string{"down", "down", "up"}, at(0, 0, 1)},
		{"right clamps tile", []string{"down", "right"}, at(0, 1, 0)},
		{"left edge stays", []string{"left"}, at(0, 0, 0)},
		{"bottom edge stays", []string{"down", "down", "down", "down", "down"}, at(1, 0, 1)},
		{"vim keys", []string{"j", "l", "h"}, at(0, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, e := newModel(t, "", Options{})
			press(m, tt.keys...)
			assert.Equal(t, tt.want, e.Selected())
		})
	}
}

func TestDragMovesTile(t *testing.T) {
	m, e := newModel(t, "", Options{})

	m = press(m, "space")
	require.True(t, m.dragging)
	assert.Equal(t, layout.DirectionTop, m.Snapshot().Rows[0].Columns[0].Tiles[0].Hovered)

	m = press(m, "down", "down", "down", "]")
	assert.Equal(t, engine.Hover{Address: at(1, 0, 1), Kind: layout.KindTile, Direction: layout.DirectionBottom}, e.Hovered())

	m = press(m, "enter")
	assert.False(t, m.dragging)
	assert.True(t, m.Dirty())

	snap := m.Snapshot()
	tiles := snap.Rows[1].Columns[0].Tiles
	require.Len(t, tiles, 3)
	assert.Equal(t, "./@@plone.app.standardtiles.html/1", tiles[2].URL)
	assert.Equal(t, at(1, 0, 2), snap.Selected)
	assert.True(t, snap.Hovered.IsNone())
}

func TestDragRefused(t *testing.T) {
	m, e := newModel(t, fullRow, Options{})

	m = press(m, "down", "space", "up", "tab")
	assert.Equal(t, engine.Hover{Address: at(0, 0, 0), Kind: layout.KindColumn, Direction: layout.DirectionLeft}, e.Hovered())

	m = press(m, "enter")
	assert.False(t, m.dragging)
	assert.False(t, m.Dirty())
	assert.Contains(t, m.View(), "drop refused")
	assert.Len(t, m.Snapshot().Rows[0].Columns, 4)
	assert.Len(t, m.Snapshot().Rows[1].Columns[0].Tiles, 2)
}

func TestDragPromoteToRow(t *testing.T) {
	m, _ := newModel(t, fullRow, Options{})

	m = press(m, "down", "space", "up", "tab", "tab", "enter")
	snap := m.Snapshot()
	require.Len(t, snap.Rows, 3)
	assert.Equal(t, "e", snap.Rows[0].Columns[0].Tiles[0].URL)
	assert.Equal(t, 16, snap.Rows[0].Columns[0].Width)
}

func TestDragCancel(t *testing.T) {
	m, e := newModel(t, "", Options{})

	m = press(m, "space", "down", "esc")
	assert.False(t, m.dragging)
	assert.True(t, e.Hovered().IsNone())
	assert.Equal(t, at(0, 0, 0), e.Selected())
	assert.False(t, m.Dirty())
}

func TestDelete(t *testing.T) {
	m, e := newModel(t, "", Options{})

	m = press(m, "down", "right", "d")
	assert.True(t, m.Dirty())
	assert.Equal(t, at(0, 0, 0), e.Selected())
	snap := m.Snapshot()
	require.Len(t, snap.Rows[0].Columns, 1)
	assert.Equal(t, 16, snap.Rows[0].Columns[0].Width)
}

func TestSave(t *testing.T) {
	var saved *layout.Tree
	m, _ := newModel(t, "", Options{Title: "home.json", Save: func(t *layout.Tree) error {
		saved = t
		return nil
	}})

	m = press(m, "d")
	assert.Contains(t, m.View(), "home.json *")

	m = press(m, "s")
	require.NotNil(t, saved)
	assert.False(t, m.Dirty())
	assert.Equal(t, 4, saved.Stats().Tiles)
	assert.Contains(t, m.View(), "saved")
}

func TestSaveErrors(t *testing.T) {
	m, _ := newModel(t, "", Options{})
	m = press(m, "s")
	assert.Contains(t, m.View(), "saving is disabled")

	m, _ = newModel(t, "", Options{Save: func(*layout.Tree) error { return errors.New("disk full") }})
	m = press(m, "d", "s")
	assert.True(t, m.Dirty())
	assert.Contains(t, m.View(), "disk full")
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, "", Options{})
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView(t *testing.T) {
	m, _ := newModel(t, "", Options{Title: "doc"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "mosaic · doc")
	assert.Contains(t, view, "space pick up")

	view = press(m, "space").View()
	assert.Contains(t, view, "dragging")
	assert.True(t, strings.Contains(view, "esc cancel"))
}
