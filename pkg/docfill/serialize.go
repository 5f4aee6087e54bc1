package docfill

import (
	"bytes"

	"github.com/antchfx/xmlquery"
)

// The serializer writes a parsed part back out without reformatting:
// no added whitespace, no reordered attributes, prefixes as parsed. The
// only difference from the input bytes is re-escaping of text and
// attribute values, which is content-neutral.

var (
	textEscaper = newEscaper(false)
	attrEscaper = newEscaper(true)
)

type escaper struct {
	quote bool
}

func newEscaper(quote bool) *escaper {
	return &escaper{quote: quote}
}

func (e *escaper) write(buf *bytes.Buffer, s string) {
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			if e.quote {
				buf.WriteString("&quot;")
			} else {
				buf.WriteRune(r)
			}
		default:
			buf.WriteRune(r)
		}
	}
}

// serializeTree renders a parsed part as XML bytes.
func serializeTree(root *xmlquery.Node) []byte {
	var buf bytes.Buffer
	writeNode(&buf, root)
	return buf.Bytes()
}

func writeNode(buf *bytes.Buffer, n *xmlquery.Node) {
	switch n.Type {
	case xmlquery.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNode(buf, c)
		}

	case xmlquery.DeclarationNode:
		buf.WriteString("<?xml")
		for _, attr := range n.Attr {
			buf.WriteString(" ")
			buf.WriteString(attr.Name.Local)
			buf.WriteString(`="`)
			attrEscaper.write(buf, attr.Value)
			buf.WriteString(`"`)
		}
		buf.WriteString("?>")

	case xmlquery.ElementNode:
		buf.WriteString("<")
		writeName(buf, n)
		for _, attr := range n.Attr {
			buf.WriteString(" ")
			if attr.Name.Space != "" {
				buf.WriteString(attr.Name.Space)
				buf.WriteString(":")
			}
			buf.WriteString(attr.Name.Local)
			buf.WriteString(`="`)
			attrEscaper.write(buf, attr.Value)
			buf.WriteString(`"`)
		}

		if n.FirstChild == nil {
			buf.WriteString("/>")
			return
		}

		buf.WriteString(">")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNode(buf, c)
		}
		buf.WriteString("</")
		writeName(buf, n)
		buf.WriteString(">")

	case xmlquery.TextNode:
		textEscaper.write(buf, n.Data)

	case xmlquery.CharDataNode:
		buf.WriteString("<![CDATA[")
		buf.WriteString(n.Data)
		buf.WriteString("]]>")

	case xmlquery.CommentNode:
		buf.WriteString("<!--")
		buf.WriteString(n.Data)
		buf.WriteString("-->")
	}
}

func writeName(buf *bytes.Buffer, n *xmlquery.Node) {
	if n.Prefix != "" {
		buf.WriteString(n.Prefix)
		buf.WriteString(":")
	}
	buf.WriteString(n.Data)
}
