package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/mosaic/pkg/layout"
)

// WriteJSON encodes t as an indented layout document and writes it to w.
// The output can be read back with [ReadJSON].
func WriteJSON(t *layout.Tree, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromTree(t)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Marshal encodes t as a compact layout document.
func Marshal(t *layout.Tree) ([]byte, error) {
	data, err := json.Marshal(fromTree(t))
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// ExportJSON writes t to a JSON file at path.
func ExportJSON(t *layout.Tree, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(t, f)
}

func fromTree(t *layout.Tree) document {
	doc := document{Rows: make([]row, len(t.Rows))}
	for i, r := range t.Rows {
		out := row{Columns: make([]column, len(r.Columns))}
		for j, c := range r.Columns {
			oc := column{Width: c.Width, Tiles: make([]tile, len(c.Tiles))}
			for k, tl := range c.Tiles {
				ot := tile{URL: tl.URL, Type: tl.Type}
				if tl.Content != nil {
					ot.Content = tl.Content.Markup()
				}
				oc.Tiles[k] = ot
			}
			out.Columns[j] = oc
		}
		doc.Rows[i] = out
	}
	return doc
}
