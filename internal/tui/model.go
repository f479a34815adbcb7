// Package tui is the interactive layout editor behind `mosaic edit`.
//
// The keyboard stands in for the mouse. Arrows move the selection; space
// picks up the selected tile and starts a drag. While dragging, arrows move
// the drop target, tab cycles what is targeted (tile, column or row), and
// [ or ] choose the side. Enter drops, esc cancels.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mosaic/pkg/engine"
	"github.com/matzehuels/mosaic/pkg/layout"
	"github.com/matzehuels/mosaic/pkg/render/grid"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorDim   = lipgloss.Color("240")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	helpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	dragStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	okStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	errStyle   = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	helpIdle = "←↑↓→ select  space pick up  d delete  s save  q quit"
	helpDrag = "←↑↓→ move target  tab kind  [ ] side  ⏎ drop  esc cancel"
)

// kinds is the tab order of drop targets.
var kinds = []layout.Kind{layout.KindTile, layout.KindColumn, layout.KindRow}

// Options configures the editor.
type Options struct {
	// Title is shown in the header, usually the document path or name.
	Title string
	// Save persists the tree when s is pressed. Nil disables saving.
	Save func(*layout.Tree) error
	// Grid configures tile rendering. Width follows the terminal.
	Grid grid.Options
}

// Model is the bubbletea model for the editor.
type Model struct {
	engine *engine.Engine
	opts   Options
	snap   engine.Snapshot

	dragging bool
	source   layout.Address
	target   layout.Address
	kind     int
	after    bool

	status string
	failed bool
	dirty  bool
	width  int
}

// New creates an editor over e.
func New(e *engine.Engine, opts Options) Model {
	return Model{engine: e, opts: opts, snap: e.Snapshot(), source: layout.NoAddress, target: layout.NoAddress}
}

// Run starts the editor full screen and blocks until it quits.
func Run(ctx context.Context, m Model) (Model, error) {
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return m, err
	}
	return final.(Model), nil
}

// Dirty reports whether the tree changed since the last save.
func (m Model) Dirty() bool { return m.dirty }


// Snapshot returns the state last drawn.
func (m Model) Snapshot() engine.Snapshot { return m.snap }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if m.dragging {
			return m.updateDrag(msg)
		}
		return m.updateIdle(msg)
	}
	return m, nil
}

func (m Model) updateIdle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k", "down", "j", "left", "h", "right", "l":
		from := m.engine.Selected()
		if from.IsNone() {
			from = first(m.snap)
		} else {
			from = step(m.snap, from, key)
		}
		if !from.IsNone() {
			m.report(m.engine.SelectTile(from), "")
		}
	case " ":
		sel := m.engine.Selected()
		if sel.IsNone() {
			m.setStatus("nothing selected", true)
			return m, nil
		}
		m.dragging = true
		m.source, m.target, m.kind, m.after = sel, sel, 0, false
		m.report(m.engine.SetHovered(m.hover()), "")
	case "d":
		sel := m.engine.Selected()
		if sel.IsNone() {
			m.setStatus("nothing selected", true)
			return m, nil
		}
		if m.report(m.engine.DeleteTile(sel), "deleted "+sel.String()) {
			m.dirty = true
			if next := nearest(m.engine.Snapshot(), sel); !next.IsNone() {
				m.report(m.engine.SelectTile(next), "deleted "+sel.String())
			}
		}
	case "s":
		m.save()
	}
	m.snap = m.engine.Snapshot()
	return m, nil
}

func (m Model) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.dragging = false
		m.report(m.engine.SetHovered(engine.NoHover), "drag cancelled")
	case "up", "k", "down", "j", "left", "h", "right", "l":
		m.target = step(m.snap, m.target, key)
		m.report(m.engine.SetHovered(m.hover()), "")
	case "tab":
		m.kind = (m.kind + 1) % len(kinds)
		m.report(m.engine.SetHovered(m.hover()), "")
	case "[":
		m.after = false
		m.report(m.engine.SetHovered(m.hover()), "")
	case "]":
		m.after = true
		m.report(m.engine.SetHovered(m.hover()), "")
	case "enter":
		m.dragging = false
		moved, err := m.engine.HandleDrop(m.source)
		switch {
		case err != nil:
			m.report(err, "")
		case moved:
			m.dirty = true
			m.setStatus("moved "+m.source.String(), false)
		default:
			m.setStatus("drop refused: row already has 4 columns", true)
		}
	}
	m.snap = m.engine.Snapshot()
	return m, nil
}

// hover builds the hover cursor for the current drag target.
func (m Model) hover() engine.Hover {
	k := kinds[m.kind]
	var d layout.Direction
	switch {
	case k == layout.KindColumn && m.after:
		d = layout.DirectionRight
	case k == layout.KindColumn:
		d = layout.DirectionLeft
	case m.after:
		d = layout.DirectionBottom
	default:
		d = layout.DirectionTop
	}
	return engine.Hover{Address: m.target, Kind: k, Direction: d}
}

func (m *Model) save() {
	if m.opts.Save == nil {
		m.setStatus("saving is disabled", true)
		return
	}
	if m.report(m.opts.Save(m.engine.Tree()), "saved") {
		m.dirty = false
	}
}

// report records err, or msg on success, and reports whether err was nil.
func (m *Model) report(err error, msg string) bool {
	if err != nil {
		m.setStatus(err.Error(), true)
		return false
	}
	if msg != "" {
		m.setStatus(msg, false)
	}
	return true
}

func (m *Model) setStatus(msg string, failed bool) {
	m.status, m.failed = msg, failed
}

func (m Model) View() string {
	var b strings.Builder

	title := "mosaic"
	if m.opts.Title != "" {
		title += " · " + m.opts.Title
	}
	if m.dirty {
		title += " *"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	if m.dragging {
		b.WriteString(helpStyle.Render(helpDrag))
	} else {
		b.WriteString(helpStyle.Render(helpIdle))
	}
	b.WriteString("\n\n")

	gopts := m.opts.Grid
	if m.width > 0 {
		gopts.Width = m.width
	}
	b.WriteString(grid.Render(m.snap, gopts))
	b.WriteString("\n\n")

	if m.dragging {
		h := m.hover()
		b.WriteString(dragStyle.Render(fmt.Sprintf("dragging %s → %s %s %s", m.source, h.Kind, h.Direction, h.Address)))
		b.WriteString("\n")
	}
	switch {
	case m.status == "":
	case m.failed:
		b.WriteString(errStyle.Render(m.status))
	default:
		b.WriteString(okStyle.Render(m.status))
	}
	return b.String()
}
