package script

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/mosaic/pkg/engine"
	errs "github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/layout"
)

var (
	scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Int", Pattern: `\d+`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
	})

	scriptParser = participle.MustBuild[Script](
		participle.Lexer(scriptLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// Script is a parsed gesture script.
type Script struct {
	Commands []*Command `parser:"Newline* ( @@ Newline* )*"`
}

// Command is one script line.
type Command struct {
	Pos     lexer.Position `parser:""`
	Select  *SelectCmd     `parser:"  @@"`
	Hover   *HoverCmd      `parser:"| @@"`
	Drop    *DropCmd       `parser:"| @@"`
	Delete  *DeleteCmd     `parser:"| @@"`
	Content *ContentCmd    `parser:"| @@"`
}

// Addr is a row, column, tile triple.
type Addr struct {
	Row    int `parser:"@Int"`
	Column int `parser:"@Int"`
	Tile   int `parser:"@Int"`
}

// Address converts a to a layout address.
func (a *Addr) Address() layout.Address {
	if a == nil {
		return layout.NoAddress
	}
	return layout.Address{Row: a.Row, Column: a.Column, Tile: a.Tile}
}

// SelectCmd selects a tile or clears the selection when At is nil.
type SelectCmd struct {
	At *Addr `parser:"'select' ( 'none' | @@ )"`
}

// HoverCmd moves the hover mark or clears it when Target is nil.
type HoverCmd struct {
	Target *HoverTarget `parser:"'hover' ( 'none' | @@ )"`
}

// HoverTarget is the element under the pointer.
type HoverTarget struct {
	Kind      string `parser:"@( 'row' | 'column' | 'tile' )"`
	At        Addr   `parser:"@@"`
	Direction string `parser:"@( 'top' | 'bottom' | 'left' | 'right' )"`
}

// DropCmd drops the tile at Source on the hover target.
type DropCmd struct {
	Source Addr `parser:"'drop' @@"`
}

// DeleteCmd removes a tile.
type DeleteCmd struct {
	At Addr `parser:"'delete' @@"`
}

// ContentCmd replaces a tile's content with Markup.
type ContentCmd struct {
	At     Addr          `parser:"'content' @@"`
	Markup StringLiteral `parser:"@String"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Event converts the command to an engine event.
func (c *Command) Event() engine.Event {
	switch {
	case c.Select != nil:
		a := c.Select.At.Address()
		return engine.Event{Op: engine.OpSelect, Row: a.Row, Column: a.Column, Tile: a.Tile}
	case c.Hover != nil:
		h := c.Hover.Target
		if h == nil {
			return engine.Event{Op: engine.OpHover, Row: -1, Column: -1, Tile: -1}
		}
		return engine.Event{
			Op:        engine.OpHover,
			Row:       h.At.Row,
			Column:    h.At.Column,
			Tile:      h.At.Tile,
			Kind:      layout.Kind(h.Kind),
			Direction: layout.Direction(h.Direction),
		}
	case c.Drop != nil:
		a := c.Drop.Source
		return engine.Event{Op: engine.OpDrop, Row: a.Row, Column: a.Column, Tile: a.Tile}
	case c.Delete != nil:
		a := c.Delete.At
		return engine.Event{Op: engine.OpDelete, Row: a.Row, Column: a.Column, Tile: a.Tile}
	case c.Content != nil:
		a := c.Content.At
		return engine.Event{Op: engine.OpContent, Row: a.Row, Column: a.Column, Tile: a.Tile, Markup: string(c.Content.Markup)}
	}
	return engine.Event{}
}

// Events returns the script's commands as engine events.
func (s *Script) Events() []engine.Event {
	out := make([]engine.Event, len(s.Commands))
	for i, c := range s.Commands {
		out[i] = c.Event()
	}
	return out
}

// Parse parses a script from r.
func Parse(r io.Reader) (*Script, error) {
	s, err := scriptParser.Parse("", r)
	if err != nil {
		return nil, parseError(err)
	}
	return s, nil
}

// ParseString parses a script from a string.
func ParseString(input string) (*Script, error) {
	s, err := scriptParser.ParseString("", input)
	if err != nil {
		return nil, parseError(err)
	}
	return s, nil
}

func parseError(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		return errs.Wrap(errs.ErrCodeInvalidScript, err, "line %d", perr.Position().Line)
	}
	return errs.Wrap(errs.ErrCodeInvalidScript, err, "parse script")
}
