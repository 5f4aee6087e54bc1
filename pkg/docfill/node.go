package docfill

import (
	"bytes"
	"strings"

	"github.com/antchfx/xmlquery"
)

// nsWordML is the WordprocessingML namespace shared by every element the
// engine models.
const nsWordML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// part is one parsed XML part of the package. dirty marks parts whose node
// tree must be re-serialized on save.
type part struct {
	name  string
	root  *xmlquery.Node
	dirty bool
}

// Container owns paragraphs and tables. The document body, a table cell,
// and each header and footer part are containers.
type Container struct {
	node *xmlquery.Node
	part *part
}

// Table is an ordered sequence of rows.
type Table struct {
	node *xmlquery.Node
	part *part
}

// Row is an ordered sequence of cells; each cell is itself a Container.
type Row struct {
	node *xmlquery.Node
	part *part
}

// Paragraph is an ordered sequence of fragments whose concatenated text is
// the paragraph's visible text.
type Paragraph struct {
	node *xmlquery.Node
	part *part
}

// Fragment is a single styled run. Fragment boundaries matter only for
// formatting; text search and replacement ignore them.
type Fragment struct {
	node *xmlquery.Node
	part *part
}

// tree parses a part into its node tree, caching the result so repeated
// access (and later serialization) sees the same mutable tree.
func (d *Document) tree(name string) (*part, error) {
	if p, ok := d.parsed[name]; ok {
		return p, nil
	}

	content, err := d.Part(name)
	if err != nil {
		return nil, err
	}

	root, err := xmlquery.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, NewPartError(name, err)
	}

	p := &part{name: name, root: root}
	d.parsed[name] = p
	return p, nil
}

// Body returns the main document body container.
func (d *Document) Body() (*Container, error) {
	p, err := d.tree(documentPart)
	if err != nil {
		return nil, err
	}

	root := firstElementChild(p.root)
	if root == nil {
		return nil, NewPartError(documentPart, errNoRootElement)
	}
	body := firstChildNamed(root, "body")
	if body == nil {
		return nil, NewPartError(documentPart, errNoBody)
	}
	return &Container{node: body, part: p}, nil
}

// HeaderFooters returns one container per header and footer part referenced
// from the main document, in relationship order.
func (d *Document) HeaderFooters() ([]*Container, error) {
	names, err := d.headerFooterParts()
	if err != nil {
		return nil, err
	}

	containers := make([]*Container, 0, len(names))
	for _, name := range names {
		p, err := d.tree(name)
		if err != nil {
			return nil, err
		}
		root := firstElementChild(p.root)
		if root == nil {
			return nil, NewPartError(name, errNoRootElement)
		}
		containers = append(containers, &Container{node: root, part: p})
	}
	return containers, nil
}

// Paragraphs returns the paragraphs directly owned by the container.
// Paragraphs nested in tables belong to their cell containers.
func (c *Container) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for n := c.node.FirstChild; n != nil; n = n.NextSibling {
		if isWordElement(n, "p") {
			out = append(out, &Paragraph{node: n, part: c.part})
		}
	}
	return out
}

// Tables returns the tables directly owned by the container.
func (c *Container) Tables() []*Table {
	var out []*Table
	for n := c.node.FirstChild; n != nil; n = n.NextSibling {
		if isWordElement(n, "tbl") {
			out = append(out, &Table{node: n, part: c.part})
		}
	}
	return out
}

// Rows returns the table's rows in order.
func (t *Table) Rows() []*Row {
	var out []*Row
	for n := t.node.FirstChild; n != nil; n = n.NextSibling {
		if isWordElement(n, "tr") {
			out = append(out, &Row{node: n, part: t.part})
		}
	}
	return out
}

// Cells returns the row's cells in order. Each cell is a Container, so
// tables nest to arbitrary depth.
func (r *Row) Cells() []*Container {
	var out []*Container
	for n := r.node.FirstChild; n != nil; n = n.NextSibling {
		if isWordElement(n, "tc") {
			out = append(out, &Container{node: n, part: r.part})
		}
	}
	return out
}

// Fragments returns the paragraph's runs in order.
func (p *Paragraph) Fragments() []*Fragment {
	var out []*Fragment
	for n := p.node.FirstChild; n != nil; n = n.NextSibling {
		if isWordElement(n, "r") {
			out = append(out, &Fragment{node: n, part: p.part})
		}
	}
	return out
}

// Text returns the concatenation of the paragraph's fragment texts.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, f := range p.Fragments() {
		b.WriteString(f.Text())
	}
	return b.String()
}

// Text returns the fragment's text content: the concatenation of its w:t
// children.
func (f *Fragment) Text() string {
	var b strings.Builder
	for n := f.node.FirstChild; n != nil; n = n.NextSibling {
		if isWordElement(n, "t") {
			b.WriteString(n.InnerText())
		}
	}
	return b.String()
}

// SetText rewrites the fragment's text content in place. Run properties and
// non-text children are left untouched, so the fragment keeps its formatting
// even when fully consumed by a replacement.
func (f *Fragment) SetText(s string) {
	var texts []*xmlquery.Node
	for n := f.node.FirstChild; n != nil; n = n.NextSibling {
		if isWordElement(n, "t") {
			texts = append(texts, n)
		}
	}

	if s == "" {
		for _, t := range texts {
			xmlquery.RemoveFromTree(t)
		}
		return
	}

	var t *xmlquery.Node
	if len(texts) > 0 {
		t = texts[0]
		for _, extra := range texts[1:] {
			xmlquery.RemoveFromTree(extra)
		}
	} else {
		t = &xmlquery.Node{
			Type:         xmlquery.ElementNode,
			Data:         "t",
			Prefix:       f.node.Prefix,
			NamespaceURI: f.node.NamespaceURI,
		}
		xmlquery.AddChild(f.node, t)
	}

	setNodeText(t, s)

	// Word drops leading and trailing spaces from w:t unless told otherwise.
	if s != strings.TrimSpace(s) {
		t.SetAttr("xml:space", "preserve")
	}
}

// isEmpty reports whether the fragment carries no text and no non-property
// content. Such runs are render no-ops.
func (f *Fragment) isEmpty() bool {
	for n := f.node.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != xmlquery.ElementNode {
			continue
		}
		if isWordElement(n, "rPr") {
			continue
		}
		if isWordElement(n, "t") && n.InnerText() == "" {
			continue
		}
		return false
	}
	return f.Text() == ""
}

// remove unlinks the fragment from its paragraph.
func (f *Fragment) remove() {
	xmlquery.RemoveFromTree(f.node)
}

func (p *part) markDirty() {
	if p != nil {
		p.dirty = true
	}
}

// isWordElement matches an element by WordprocessingML local name.
func isWordElement(n *xmlquery.Node, local string) bool {
	if n.Type != xmlquery.ElementNode || n.Data != local {
		return false
	}
	return n.NamespaceURI == nsWordML || n.NamespaceURI == ""
}

func firstElementChild(n *xmlquery.Node) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

func firstChildNamed(n *xmlquery.Node, local string) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isWordElement(c, local) {
			return c
		}
	}
	return nil
}

// setNodeText replaces an element's children with a single text node.
func setNodeText(n *xmlquery.Node, s string) {
	for n.FirstChild != nil {
		xmlquery.RemoveFromTree(n.FirstChild)
	}
	xmlquery.AddChild(n, &xmlquery.Node{Type: xmlquery.TextNode, Data: s})
}
