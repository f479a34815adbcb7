package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/mosaic/pkg/content"
	errs "github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/layout"
)

type document struct {
	Rows []row `json:"rows"`
}

type row struct {
	Columns []column `json:"columns"`
}

type column struct {
	Width int    `json:"width"`
	Tiles []tile `json:"tiles"`
}

type tile struct {
	Content string `json:"content"`
	URL     string `json:"url"`
	Type    string `json:"type,omitempty"`
}

// Options controls how documents are decoded.
type Options struct {
	// Decoder converts tile markup into content. Defaults to [content.Decode].
	Decoder content.Decoder
}

// ReadJSON decodes a layout document from r and validates it.
// ReadJSON does not close r.
func ReadJSON(r io.Reader, opts Options) (*layout.Tree, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "decode document")
	}
	return doc.tree(opts)
}

// Unmarshal decodes a layout document from data.
func Unmarshal(data []byte, opts Options) (*layout.Tree, error) {
	return ReadJSON(bytes.NewReader(data), opts)
}

// ImportJSON reads the layout document at path.
func ImportJSON(path string, opts Options) (*layout.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeDocumentNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f, opts)
}

func (d document) tree(opts Options) (*layout.Tree, error) {
	decode := opts.Decoder
	if decode == nil {
		decode = content.Decode
	}
	if d.Rows == nil {
		return nil, invalid("rows", "missing rows array")
	}

	t := layout.New()
	for i, r := range d.Rows {
		if r.Columns == nil {
			return nil, invalid(fmt.Sprintf("rows[%d]", i), "missing columns array")
		}
		if len(r.Columns) > layout.MaxColumns {
			return nil, invalid(fmt.Sprintf("rows[%d]", i), "%d columns exceed the maximum of %d", len(r.Columns), layout.MaxColumns)
		}
		lr := &layout.Row{Columns: make([]*layout.Column, 0, len(r.Columns))}
		for j, c := range r.Columns {
			path := fmt.Sprintf("rows[%d].columns[%d]", i, j)
			if c.Tiles == nil {
				return nil, invalid(path, "missing tiles array")
			}
			if c.Width < 1 || c.Width > layout.GridWidth {
				return nil, invalid(path, "width %d outside [1,%d]", c.Width, layout.GridWidth)
			}
			lc := &layout.Column{Width: c.Width, Tiles: make([]*layout.Tile, 0, len(c.Tiles))}
			for k, tl := range c.Tiles {
				body, err := decode(tl.Content)
				if err != nil {
					return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "%s.tiles[%d].content", path, k)
				}
				lc.Tiles = append(lc.Tiles, &layout.Tile{URL: tl.URL, Type: tl.Type, Content: body})
			}
			lr.Columns = append(lr.Columns, lc)
		}
		t.Rows = append(t.Rows, lr)
	}
	return t, nil
}

func invalid(path, format string, args ...any) error {
	return errs.New(errs.ErrCodeInvalidDocument, "%s: %s", path, fmt.Sprintf(format, args...))
}
