package content

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var headerTypes = map[atom.Atom]BlockType{
	atom.H1: BlockHeaderOne,
	atom.H2: BlockHeaderTwo,
	atom.H3: BlockHeaderThree,
	atom.H4: BlockHeaderFour,
	atom.H5: BlockHeaderFive,
	atom.H6: BlockHeaderSix,
}

var inlineStyles = map[atom.Atom]Style{
	atom.B:      StyleBold,
	atom.Strong: StyleBold,
	atom.I:      StyleItalic,
	atom.Em:     StyleItalic,
	atom.U:      StyleUnderline,
	atom.Ins:    StyleUnderline,
	atom.Code:   StyleCode,
}

// Parse converts HTML markup into an editable [Document].
//
// Block elements (p, div, h1-h6, blockquote, pre, li) start new blocks;
// inline b/strong, i/em, u/ins and code become style ranges; other inline
// elements contribute their text only. Whitespace is collapsed outside pre
// and br becomes a newline inside the block.
func Parse(markup string) (*Document, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	p := &parser{}
	for _, n := range nodes {
		p.walk(n)
	}
	p.flush(false)

	if p.blocks == nil {
		p.blocks = []Block{}
	}
	return &Document{Blocks: p.blocks}, nil
}

type parser struct {
	blocks   []Block
	cur      *Block
	explicit bool
	stack    []BlockType
	lists    []BlockType
	styles   []Style
	pre      int
}

func (p *parser) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		p.text(n.Data)
		return
	case html.ElementNode:
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.walk(c)
		}
		return
	}

	switch n.DataAtom {
	case atom.Br:
		p.ensure()
		p.cur.Text += "\n"
		return
	case atom.Script, atom.Style:
		return
	case atom.Ul, atom.Ol:
		item := BlockUnorderedItem
		if n.DataAtom == atom.Ol {
			item = BlockOrderedItem
		}
		p.flush(false)
		p.lists = append(p.lists, item)
		p.children(n)
		p.lists = p.lists[:len(p.lists)-1]
		return
	}

	if t, ok := p.blockType(n.DataAtom); ok {
		p.open(t)
		if t == BlockCode {
			p.pre++
		}
		p.children(n)
		if t == BlockCode {
			p.pre--
		}
		p.close()
		return
	}

	if s, ok := inlineStyles[n.DataAtom]; ok {
		p.styles = append(p.styles, s)
		p.children(n)
		p.styles = p.styles[:len(p.styles)-1]
		return
	}

	p.children(n)
}

func (p *parser) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

func (p *parser) blockType(a atom.Atom) (BlockType, bool) {
	if t, ok := headerTypes[a]; ok {
		return t, true
	}
	switch a {
	case atom.P:
		return BlockParagraph, true
	case atom.Div:
		return BlockUnstyled, true
	case atom.Blockquote:
		return BlockBlockquote, true
	case atom.Pre:
		return BlockCode, true
	case atom.Li:
		if len(p.lists) > 0 {
			return p.lists[len(p.lists)-1], true
		}
		return BlockUnorderedItem, true
	}
	return "", false
}

func (p *parser) open(t BlockType) {
	p.flush(false)
	p.stack = append(p.stack, t)
	p.cur = &Block{Type: t}
	p.explicit = true
}

func (p *parser) close() {
	p.flush(true)
	p.stack = p.stack[:len(p.stack)-1]
}

// flush finishes the current block. Empty blocks are kept only when they
// came from an element that is closing right now.
func (p *parser) flush(closing bool) {
	if p.cur == nil {
		return
	}
	if p.pre == 0 {
		p.cur.trimTrailing()
	}
	if p.cur.Text != "" || (closing && p.explicit) {
		p.blocks = append(p.blocks, *p.cur)
	}
	p.cur = nil
	p.explicit = false
}

// ensure starts an implicit block for inline content outside any block
// element, or after a nested block closed inside its container.
func (p *parser) ensure() {
	if p.cur != nil {
		return
	}
	t := BlockUnstyled
	if len(p.stack) > 0 {
		t = p.stack[len(p.stack)-1]
	}
	p.cur = &Block{Type: t}
	p.explicit = false
}

func (p *parser) text(s string) {
	if p.pre == 0 {
		s = collapseSpace(s)
		if p.cur == nil || p.cur.Text == "" || strings.HasSuffix(p.cur.Text, " ") || strings.HasSuffix(p.cur.Text, "\n") {
			s = strings.TrimLeft(s, " ")
		}
		if s == "" {
			return
		}
	}

	p.ensure()
	start := utf8.RuneCountInString(p.cur.Text)
	p.cur.Text += s
	n := utf8.RuneCountInString(s)
	seen := make(map[Style]bool, len(p.styles))
	for _, st := range p.styles {
		if seen[st] {
			continue
		}
		seen[st] = true
		p.cur.addStyle(st, start, n)
	}
}

func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				sb.WriteByte(' ')
			}
			space = true
		default:
			sb.WriteRune(r)
			space = false
		}
	}
	return sb.String()
}
