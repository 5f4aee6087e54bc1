package docfill

import (
	"regexp"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// tokenPattern matches a {{...}} marker. Markers never nest.
var tokenPattern = regexp.MustCompile(`\{\{[^{}]+\}\}`)

// Tokens lists every {{...}} marker found in the document: body, tables,
// headers, and footers. Markers split across styled runs are found because
// the scan works on concatenated paragraph text. First-seen order, no
// duplicates.
func (d *Document) Tokens() ([]string, error) {
	body, err := d.Body()
	if err != nil {
		return nil, err
	}
	containers := []*Container{body}

	headerFooters, err := d.HeaderFooters()
	if err != nil {
		return nil, err
	}
	containers = append(containers, headerFooters...)

	seen := make(map[string]bool)
	var tokens []string
	for _, c := range containers {
		for _, text := range containerTexts(c) {
			for _, m := range tokenPattern.FindAllString(text, -1) {
				if !seen[m] {
					seen[m] = true
					tokens = append(tokens, m)
				}
			}
		}
	}
	return tokens, nil
}

// containerTexts collects the visible text of every paragraph reachable
// from the container, nested tables included.
func containerTexts(c *Container) []string {
	var out []string
	for _, p := range c.Paragraphs() {
		out = append(out, p.Text())
	}
	for _, t := range c.Tables() {
		for _, row := range t.Rows() {
			for _, cell := range row.Cells() {
				out = append(out, containerTexts(cell)...)
			}
		}
	}
	return out
}

// Query runs an XPath expression against the main document part and
// returns the inner text of each match. Useful for ad-hoc template
// inspection; the expression is compiled up front so a malformed one is
// reported before any part is parsed.
func (d *Document) Query(expr string) ([]string, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, NewDocumentError("query", "", err)
	}

	p, err := d.tree(documentPart)
	if err != nil {
		return nil, err
	}

	nodes, err := xmlquery.QueryAll(p.root, expr)
	if err != nil {
		return nil, NewDocumentError("query", "", err)
	}

	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.InnerText())
	}
	return out, nil
}
