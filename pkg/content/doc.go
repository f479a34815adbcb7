// Package content defines the tile content capability used by the layout
// engine and an editable rich-text representation built from HTML markup.
//
// The engine treats tile content as opaque: it only stores and replaces
// values implementing [Content]. Hosts pick how markup from the input
// document becomes content by choosing a [Decoder]:
//
//   - [Parse] builds an editable [Document] of blocks with inline style
//     ranges (the representation a rich-text editor works on)
//   - [ParseRaw] keeps the markup untouched as [Raw], useful when the host
//     only relays documents and never edits text
//
// # Document Model
//
// A [Document] is an ordered list of [Block] values. Each block has a type
// (paragraph, header-one, unordered-list-item, ...), its plain text, and a
// list of [StyleRange] values marking BOLD, ITALIC, UNDERLINE and CODE runs.
// Offsets and lengths count runes, not bytes.
//
//	doc, _ := content.Parse("<p>Column <b>one</b></p>")
//	doc.Blocks[0].Text          // "Column one"
//	doc.Blocks[0].Styles[0]     // {Offset: 7, Length: 3, Style: BOLD}
//	doc.Markup()                // "<p>Column <b>one</b></p>"
//
// Markup that has no block element (for example "Document by line") becomes
// a single unstyled block and serializes back without a wrapper.
package content
