package content

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   []Block
	}{
		{
			name:   "paragraph with bold",
			markup: "<p>Column <b>one</b></p>",
			want: []Block{
				{Type: BlockParagraph, Text: "Column one", Styles: []StyleRange{{Offset: 7, Length: 3, Style: StyleBold}}},
			},
		},
		{
			name:   "bare text",
			markup: "Document by line",
			want:   []Block{{Type: BlockUnstyled, Text: "Document by line"}},
		},
		{
			name:   "whitespace collapse",
			markup: "<p>\n   lots   of\n space  </p>",
			want:   []Block{{Type: BlockParagraph, Text: "lots of space"}},
		},
		{
			name:   "headers and lists",
			markup: "<h2>Title</h2><ul><li>one</li><li>two</li></ul><ol><li>first</li></ol>",
			want: []Block{
				{Type: BlockHeaderTwo, Text: "Title"},
				{Type: BlockUnorderedItem, Text: "one"},
				{Type: BlockUnorderedItem, Text: "two"},
				{Type: BlockOrderedItem, Text: "first"},
			},
		},
		{
			name:   "nested styles",
			markup: "<p><b>bold <i>both</i></b> plain</p>",
			want: []Block{
				{Type: BlockParagraph, Text: "bold both plain", Styles: []StyleRange{
					{Offset: 0, Length: 9, Style: StyleBold},
					{Offset: 5, Length: 4, Style: StyleItalic},
				}},
			},
		},
		{
			name:   "line break",
			markup: "<p>a<br>b</p>",
			want:   []Block{{Type: BlockParagraph, Text: "a\nb"}},
		},
		{
			name:   "empty paragraph kept",
			markup: "<p></p>",
			want:   []Block{{Type: BlockParagraph, Text: ""}},
		},
		{
			name:   "blockquote with nested paragraph",
			markup: "<blockquote><p>quoted</p></blockquote>",
			want:   []Block{{Type: BlockParagraph, Text: "quoted"}},
		},
		{
			name:   "empty",
			markup: "",
			want:   []Block{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.markup)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.markup, err)
			}
			if !reflect.DeepEqual(doc.Blocks, tt.want) {
				t.Errorf("Parse(%q) blocks = %#v, want %#v", tt.markup, doc.Blocks, tt.want)
			}
		})
	}
}

func TestMarkupRoundTrip(t *testing.T) {
	tests := []string{
		"<p>Column <b>one</b></p>",
		"Document by line",
		"<h1>Heading</h1><p>Body <i>text</i> &amp; more</p>",
		"<ul><li>one</li><li>two</li></ul><p>after</p>",
		"<p>a<br>b</p>",
		"<pre>x := 1</pre>",
	}

	for _, markup := range tests {
		t.Run(markup, func(t *testing.T) {
			doc, err := Parse(markup)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if got := doc.Markup(); got != markup {
				t.Errorf("Markup() = %q, want %q", got, markup)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	doc, err := Parse("<h1>Title</h1><p>Body <b>bold</b></p>")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := doc.PlainText(); got != "Title\nBody bold" {
		t.Errorf("PlainText() = %q", got)
	}

	if got := PlainText(Raw("<p>raw <b>markup</b></p>")); got != "raw markup" {
		t.Errorf("PlainText(Raw) = %q", got)
	}
	if got := PlainText(nil); got != "" {
		t.Errorf("PlainText(nil) = %q", got)
	}
}

func TestDecoders(t *testing.T) {
	raw, err := ParseRaw("<p>x</p>")
	if err != nil {
		t.Fatalf("ParseRaw error: %v", err)
	}
	if _, ok := raw.(Raw); !ok {
		t.Errorf("ParseRaw returned %T, want Raw", raw)
	}

	editable, err := Decode("<p>x</p>")
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if _, ok := editable.(*Document); !ok {
		t.Errorf("Decode returned %T, want *Document", editable)
	}

	for _, mode := range []string{"", "editable", "raw"} {
		if _, ok := DecoderFor(mode); !ok {
			t.Errorf("DecoderFor(%q) not found", mode)
		}
	}
	if _, ok := DecoderFor("draft"); ok {
		t.Error("DecoderFor(draft) should not exist")
	}
}

func TestClone(t *testing.T) {
	doc, _ := Parse("<p><b>x</b></p>")
	c := doc.Clone()
	c.Blocks[0].Styles[0].Length = 99
	c.Blocks[0].Text = "changed"
	if doc.Blocks[0].Text != "x" || doc.Blocks[0].Styles[0].Length != 1 {
		t.Error("Clone shares state with the original")
	}
}
