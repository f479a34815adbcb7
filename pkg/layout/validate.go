package layout

import (
	"errors"
	"fmt"

	errs "github.com/matzehuels/mosaic/pkg/errors"
)

// Problem is a single invariant violation found by [Tree.Problems].
type Problem struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (p Problem) Error() string {
	if p.Path == "" {
		return p.Message
	}
	return p.Path + ": " + p.Message
}

// Problems lists every invariant violation in t, in row-major order.
func (t *Tree) Problems() []Problem {
	var out []Problem
	add := func(path, format string, args ...any) {
		out = append(out, Problem{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	selected, hovered := 0, 0
	for i, r := range t.Rows {
		rowPath := fmt.Sprintf("rows[%d]", i)
		if r.Hovered != DirectionNone {
			hovered++
		}
		if len(r.Columns) == 0 {
			add(rowPath, "row has no columns")
			continue
		}
		if w := RowWidth(r); w != GridWidth {
			add(rowPath, "column widths sum to %d, want %d", w, GridWidth)
		}
		for j, c := range r.Columns {
			colPath := fmt.Sprintf("%s.columns[%d]", rowPath, j)
			if c.Hovered != DirectionNone {
				hovered++
			}
			if c.Width < 1 || c.Width > GridWidth {
				add(colPath, "width %d out of range [1,%d]", c.Width, GridWidth)
			}
			if len(c.Tiles) == 0 {
				add(colPath, "column has no tiles")
			}
			for k, tl := range c.Tiles {
				if tl.Selected {
					selected++
				}
				if tl.Hovered != DirectionNone {
					hovered++
				}
				if tl.Content == nil {
					add(fmt.Sprintf("%s.tiles[%d]", colPath, k), "tile has no content")
				}
			}
		}
	}

	if selected > 1 {
		add("", "%d tiles selected, want at most 1", selected)
	}
	if hovered > 1 {
		add("", "%d elements carry a hover mark, want at most 1", hovered)
	}
	return out
}

// Validate returns an INVALID_LAYOUT error joining every problem found by
// [Tree.Problems], or nil if t satisfies all invariants.
func (t *Tree) Validate() error {
	problems := t.Problems()
	if len(problems) == 0 {
		return nil
	}
	list := make([]error, len(problems))
	for i, p := range problems {
		list[i] = p
	}
	return errs.Wrap(errs.ErrCodeInvalidLayout, errors.Join(list...), "%d invariant violations", len(problems))
}
