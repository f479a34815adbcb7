package engine

import (
	errs "github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/layout"
)

// Op names an engine operation carried by an [Event].
type Op string

// Event operations.
const (
	OpSelect  Op = "select"
	OpHover   Op = "hover"
	OpDrop    Op = "drop"
	OpDelete  Op = "delete"
	OpContent Op = "content"
)

// Event is a serializable engine command, as produced by scripts and HTTP
// clients. Row, Column and Tile address the operand; a row of -1 means
// "none" for select and hover.
type Event struct {
	Op        Op               `json:"op"`
	Row       int              `json:"row"`
	Column    int              `json:"column"`
	Tile      int              `json:"tile"`
	Kind      layout.Kind      `json:"kind,omitempty"`
	Direction layout.Direction `json:"direction,omitempty"`
	Markup    string           `json:"markup,omitempty"`
}

// Address returns the event's operand address.
func (ev Event) Address() layout.Address {
	if ev.Row < 0 {
		return layout.NoAddress
	}
	return layout.Address{Row: ev.Row, Column: ev.Column, Tile: ev.Tile}
}

// Hover returns the hover cursor described by a hover event.
func (ev Event) Hover() Hover {
	if ev.Row < 0 {
		return NoHover
	}
	return Hover{Address: ev.Address(), Kind: ev.Kind, Direction: ev.Direction}
}

// Apply dispatches ev to the matching operation. It reports false only for
// drops that did not change the tree.
func (e *Engine) Apply(ev Event) (bool, error) {
	switch ev.Op {
	case OpSelect:
		return true, e.SelectTile(ev.Address())
	case OpHover:
		h := ev.Hover()
		if !h.IsNone() {
			if _, err := layout.ParseKind(string(h.Kind)); err != nil {
				return false, errs.Wrap(errs.ErrCodeInvalidInput, err, "hover event")
			}
			if _, err := layout.ParseDirection(string(h.Direction)); err != nil {
				return false, errs.Wrap(errs.ErrCodeInvalidInput, err, "hover event")
			}
		}
		return true, e.SetHovered(h)
	case OpDrop:
		return e.HandleDrop(layout.Address{Row: ev.Row, Column: ev.Column, Tile: ev.Tile})
	case OpDelete:
		return true, e.DeleteTile(layout.Address{Row: ev.Row, Column: ev.Column, Tile: ev.Tile})
	case OpContent:
		c, err := e.decoder(ev.Markup)
		if err != nil {
			return false, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode content")
		}
		return true, e.SetTileContent(layout.Address{Row: ev.Row, Column: ev.Column, Tile: ev.Tile}, c)
	default:
		return false, errs.New(errs.ErrCodeInvalidInput, "unknown operation %q", ev.Op)
	}
}
