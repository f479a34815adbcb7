package content

// Content is the opaque tile body stored by the layout engine.
// Markup returns the serialized form written back to the host document.
type Content interface {
	Markup() string
}

// Decoder turns serialized markup from an input document into Content.
type Decoder func(markup string) (Content, error)

// Raw is markup stored verbatim.
type Raw string

// Markup returns the stored markup unchanged.
func (r Raw) Markup() string { return string(r) }

// ParseRaw is a [Decoder] that wraps markup as [Raw] without parsing it.
func ParseRaw(markup string) (Content, error) {
	return Raw(markup), nil
}

// Decode is a [Decoder] that parses markup into an editable [Document].
func Decode(markup string) (Content, error) {
	doc, err := Parse(markup)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// DecoderFor returns the decoder for a content mode name.
// Known modes are "editable" (the default) and "raw".
func DecoderFor(mode string) (Decoder, bool) {
	switch mode {
	case "", "editable":
		return Decode, true
	case "raw":
		return ParseRaw, true
	}
	return nil, false
}

// PlainText returns the text of c without markup.
// Documents report their block text; other content falls back to
// parsing its markup.
func PlainText(c Content) string {
	if c == nil {
		return ""
	}
	if d, ok := c.(*Document); ok {
		return d.PlainText()
	}
	d, err := Parse(c.Markup())
	if err != nil {
		return c.Markup()
	}
	return d.PlainText()
}
