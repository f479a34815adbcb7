package content

import (
	"html"
	"sort"
	"strings"
	"unicode/utf8"
)

// BlockType identifies the structural role of a block.
type BlockType string

// Block types understood by [Parse] and [Document.Markup].
const (
	BlockUnstyled      BlockType = "unstyled"
	BlockParagraph     BlockType = "paragraph"
	BlockHeaderOne     BlockType = "header-one"
	BlockHeaderTwo     BlockType = "header-two"
	BlockHeaderThree   BlockType = "header-three"
	BlockHeaderFour    BlockType = "header-four"
	BlockHeaderFive    BlockType = "header-five"
	BlockHeaderSix     BlockType = "header-six"
	BlockBlockquote    BlockType = "blockquote"
	BlockCode          BlockType = "code-block"
	BlockUnorderedItem BlockType = "unordered-list-item"
	BlockOrderedItem   BlockType = "ordered-list-item"
)

// Style is an inline text style.
type Style string

// Inline styles, in the order their tags are nested on output.
const (
	StyleBold      Style = "BOLD"
	StyleItalic    Style = "ITALIC"
	StyleUnderline Style = "UNDERLINE"
	StyleCode      Style = "CODE"
)

var styleOrder = []Style{StyleBold, StyleItalic, StyleUnderline, StyleCode}

var styleTags = map[Style]string{
	StyleBold:      "b",
	StyleItalic:    "i",
	StyleUnderline: "u",
	StyleCode:      "code",
}

var blockTags = map[BlockType]string{
	BlockUnstyled:      "div",
	BlockParagraph:     "p",
	BlockHeaderOne:     "h1",
	BlockHeaderTwo:     "h2",
	BlockHeaderThree:   "h3",
	BlockHeaderFour:    "h4",
	BlockHeaderFive:    "h5",
	BlockHeaderSix:     "h6",
	BlockBlockquote:    "blockquote",
	BlockCode:          "pre",
	BlockUnorderedItem: "li",
	BlockOrderedItem:   "li",
}

// StyleRange marks Length runes starting at Offset with Style.
type StyleRange struct {
	Offset int   `json:"offset"`
	Length int   `json:"length"`
	Style  Style `json:"style"`
}

// Block is one paragraph-level unit of a [Document].
type Block struct {
	Type   BlockType    `json:"type"`
	Text   string       `json:"text"`
	Styles []StyleRange `json:"styles,omitempty"`
}

// Document is the editable form of tile content.
type Document struct {
	Blocks []Block `json:"blocks"`
}

// PlainText joins the text of all blocks with newlines.
func (d *Document) PlainText() string {
	parts := make([]string, len(d.Blocks))
	for i, b := range d.Blocks {
		parts[i] = b.Text
	}
	return strings.Join(parts, "\n")
}

// Markup serializes the document back to HTML.
// A document made of exactly one unstyled block is written without a
// wrapping element so bare text survives a round trip.
func (d *Document) Markup() string {
	if len(d.Blocks) == 1 && d.Blocks[0].Type == BlockUnstyled {
		return renderInline(d.Blocks[0])
	}

	var sb strings.Builder
	list := ""
	for _, b := range d.Blocks {
		want := listTag(b.Type)
		if want != list {
			if list != "" {
				sb.WriteString("</" + list + ">")
			}
			if want != "" {
				sb.WriteString("<" + want + ">")
			}
			list = want
		}
		tag, ok := blockTags[b.Type]
		if !ok {
			tag = "div"
		}
		sb.WriteString("<" + tag + ">")
		sb.WriteString(renderInline(b))
		sb.WriteString("</" + tag + ">")
	}
	if list != "" {
		sb.WriteString("</" + list + ">")
	}
	return sb.String()
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	out := &Document{Blocks: make([]Block, len(d.Blocks))}
	for i, b := range d.Blocks {
		out.Blocks[i] = Block{Type: b.Type, Text: b.Text, Styles: append([]StyleRange(nil), b.Styles...)}
	}
	return out
}

func listTag(t BlockType) string {
	switch t {
	case BlockUnorderedItem:
		return "ul"
	case BlockOrderedItem:
		return "ol"
	}
	return ""
}

// renderInline writes the block text as runs of identically styled runes.
func renderInline(b Block) string {
	runes := []rune(b.Text)
	if len(runes) == 0 {
		return ""
	}

	masks := make([]uint8, len(runes))
	for _, r := range b.Styles {
		bit := styleBit(r.Style)
		if bit == 0 {
			continue
		}
		for i := r.Offset; i < r.Offset+r.Length && i < len(runes); i++ {
			if i >= 0 {
				masks[i] |= bit
			}
		}
	}

	var sb strings.Builder
	for start := 0; start < len(runes); {
		end := start
		for end < len(runes) && masks[end] == masks[start] {
			end++
		}
		var open, close []string
		for _, s := range styleOrder {
			if masks[start]&styleBit(s) != 0 {
				open = append(open, "<"+styleTags[s]+">")
				close = append([]string{"</" + styleTags[s] + ">"}, close...)
			}
		}
		sb.WriteString(strings.Join(open, ""))
		text := html.EscapeString(string(runes[start:end]))
		sb.WriteString(strings.ReplaceAll(text, "\n", "<br>"))
		sb.WriteString(strings.Join(close, ""))
		start = end
	}
	return sb.String()
}

func styleBit(s Style) uint8 {
	for i, o := range styleOrder {
		if o == s {
			return 1 << i
		}
	}
	return 0
}

// addStyle records a style run, extending the previous run of the same
// style when they touch.
func (b *Block) addStyle(s Style, offset, length int) {
	for i := len(b.Styles) - 1; i >= 0; i-- {
		r := &b.Styles[i]
		if r.Style == s && r.Offset+r.Length == offset {
			r.Length += length
			return
		}
	}
	b.Styles = append(b.Styles, StyleRange{Offset: offset, Length: length, Style: s})
}

// trimTrailing removes trailing spaces and clamps style ranges to the text.
func (b *Block) trimTrailing() {
	b.Text = strings.TrimRight(b.Text, " ")
	n := utf8.RuneCountInString(b.Text)
	kept := b.Styles[:0]
	for _, r := range b.Styles {
		if r.Offset >= n {
			continue
		}
		if r.Offset+r.Length > n {
			r.Length = n - r.Offset
		}
		if r.Length > 0 {
			kept = append(kept, r)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Offset < kept[j].Offset })
	if len(kept) == 0 {
		kept = nil
	}
	b.Styles = kept
}
