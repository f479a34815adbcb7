package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/mosaic/pkg/engine"
	errs "github.com/matzehuels/mosaic/pkg/errors"
)

// Result summarizes a replay.
type Result struct {
	Applied  int `json:"applied"`
	Rejected int `json:"rejected"`
}

// Run applies the script's commands to e in order. It stops at the first
// command that fails and returns an INVALID_SCRIPT error naming its line;
// commands before it stay applied. Drops that leave the tree unchanged
// count as rejected, not as failures.
func Run(e *engine.Engine, s *Script) (Result, error) {
	var res Result
	for _, c := range s.Commands {
		ev := c.Event()
		ok, err := e.Apply(ev)
		if err != nil {
			return res, errs.Wrap(errs.ErrCodeInvalidScript, err, "line %d: %s", c.Pos.Line, FormatEvent(ev))
		}
		if ok {
			res.Applied++
		} else {
			res.Rejected++
		}
	}
	return res, nil
}

// FormatEvent writes ev as a script command.
func FormatEvent(ev engine.Event) string {
	addr := fmt.Sprintf("%d %d %d", ev.Row, ev.Column, ev.Tile)
	switch ev.Op {
	case engine.OpSelect:
		if ev.Row < 0 {
			return "select none"
		}
		return "select " + addr
	case engine.OpHover:
		if ev.Row < 0 {
			return "hover none"
		}
		return fmt.Sprintf("hover %s %s %s", ev.Kind, addr, ev.Direction)
	case engine.OpContent:
		return fmt.Sprintf("content %s %s", addr, strconv.Quote(ev.Markup))
	}
	return fmt.Sprintf("%s %s", ev.Op, addr)
}

// Format writes events as a script, one command per line.
func Format(events []engine.Event) string {
	var sb strings.Builder
	for _, ev := range events {
		sb.WriteString(FormatEvent(ev))
		sb.WriteByte('\n')
	}
	return sb.String()
}
