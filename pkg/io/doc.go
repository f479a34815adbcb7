// Package io reads and writes Mosaic layout documents as JSON.
//
// # JSON Format
//
// A document is a list of rows, each a list of columns, each a list of
// tiles:
//
//	{
//	  "rows": [
//	    {
//	      "columns": [
//	        {"width": 6,  "tiles": [{"content": "<p>one</p>", "url": "./@@tile/1", "type": "Title"}]},
//	        {"width": 10, "tiles": [{"content": "<p>two</p>", "url": "./@@tile/2", "type": "Text"}]}
//	      ]
//	    }
//	  ]
//	}
//
// Tile content is markup. On import it is turned into [content.Content]
// by the [Options.Decoder] (the editable [content.Document] by default);
// on export each tile writes back its Markup.
//
// # Validation
//
// [ReadJSON] rejects documents that are missing the rows, columns or tiles
// arrays, carry a column width outside [1,16], or a row with more than
// [layout.MaxColumns] columns. Errors carry the INVALID_DOCUMENT code and
// name the offending element by path, for example rows[1].columns[0].
// Empty rows and columns are accepted; the engine prunes them.
//
// Selection and hover state are editor state and never written.
//
// [content.Content]: github.com/matzehuels/mosaic/pkg/content.Content
// [content.Document]: github.com/matzehuels/mosaic/pkg/content.Document
package io
