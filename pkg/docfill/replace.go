package docfill

import "strings"

// fragmentSpan records where one fragment's text sits in the paragraph's
// concatenated text.
type fragmentSpan struct {
	frag  *Fragment
	start int
	end   int
}

// ReplaceOnce finds the best occurrence of any token in the paragraph's
// concatenated text and substitutes it, rewriting only the fragments the
// occurrence spans. The occurrence with the lowest starting offset wins;
// map order breaks ties. Returns false, mutating nothing, when no token
// occurs in the paragraph.
func ReplaceOnce(p *Paragraph, tokens TokenMap) bool {
	frags := p.Fragments()
	if len(frags) == 0 {
		return false
	}

	var b strings.Builder
	spans := make([]fragmentSpan, len(frags))
	for i, f := range frags {
		text := f.Text()
		spans[i] = fragmentSpan{frag: f, start: b.Len(), end: b.Len() + len(text)}
		b.WriteString(text)
	}
	full := b.String()

	occStart := -1
	var match Token
	for _, tok := range tokens {
		if tok.Key == "" {
			continue
		}
		if idx := strings.Index(full, tok.Key); idx >= 0 && (occStart < 0 || idx < occStart) {
			occStart = idx
			match = tok
		}
	}
	if occStart < 0 {
		return false
	}
	occEnd := occStart + len(match.Key)

	// Fragments overlapping [occStart, occEnd). Empty fragments have
	// zero-width spans and are never affected.
	var hit []fragmentSpan
	for _, s := range spans {
		if s.start < occEnd && occStart < s.end {
			hit = append(hit, s)
		}
	}
	if len(hit) == 0 {
		return false
	}

	first := hit[0]
	last := hit[len(hit)-1]
	prefix := first.frag.Text()[:occStart-first.start]
	suffix := last.frag.Text()[occEnd-last.start:]

	if len(hit) == 1 {
		first.frag.SetText(prefix + match.Value + suffix)
	} else {
		first.frag.SetText(prefix + match.Value)
		for _, s := range hit[1 : len(hit)-1] {
			s.frag.SetText("")
		}
		last.frag.SetText(suffix)
	}

	p.part.markDirty()
	return true
}

// ReplaceAll substitutes every occurrence of every token reachable from the
// container: its own paragraphs, then every nested table, row, and cell,
// recursively. Each paragraph is re-scanned after every substitution, so a
// paragraph holding several tokens, or a token uncovered by an earlier
// substitution, converges to a fixed point. Returns the number of
// substitutions performed; zero occurrences is not an error.
func ReplaceAll(c *Container, tokens TokenMap) int {
	count := 0
	for _, p := range c.Paragraphs() {
		for ReplaceOnce(p, tokens) {
			count++
		}
	}
	for _, t := range c.Tables() {
		for _, row := range t.Rows() {
			for _, cell := range row.Cells() {
				count += ReplaceAll(cell, tokens)
			}
		}
	}
	return count
}

// ReplaceAll substitutes every token occurrence in the whole document: the
// body plus every section header and footer. Calling it again with the same
// map is a no-op unless a replacement value itself contains a token key.
func (d *Document) ReplaceAll(tokens TokenMap) error {
	body, err := d.Body()
	if err != nil {
		return err
	}

	total := ReplaceAll(body, tokens)

	headerFooters, err := d.HeaderFooters()
	if err != nil {
		return err
	}
	for _, c := range headerFooters {
		total += ReplaceAll(c, tokens)
	}

	if total > 0 && d.config.CleanEmptyFragments {
		d.cleanEmptyFragments()
	}

	Debug("replaced %d token occurrence(s)", total)
	return nil
}

// cleanEmptyFragments drops runs left with no content by a replacement.
// Removal is formatting-neutral: an empty run renders as nothing. Off by
// default; some tools prefer the emptied runs kept in place.
func (d *Document) cleanEmptyFragments() {
	for _, p := range d.parsed {
		if !p.dirty {
			continue
		}
		root := firstElementChild(p.root)
		if root == nil {
			continue
		}
		// The main document nests its content one level down in w:body;
		// header and footer roots own their paragraphs directly.
		if body := firstChildNamed(root, "body"); body != nil {
			root = body
		}
		cleanContainerFragments(&Container{node: root, part: p})
	}
}

func cleanContainerFragments(c *Container) {
	for _, p := range c.Paragraphs() {
		for _, f := range p.Fragments() {
			if f.isEmpty() {
				f.remove()
			}
		}
	}
	for _, t := range c.Tables() {
		for _, row := range t.Rows() {
			for _, cell := range row.Cells() {
				cleanContainerFragments(cell)
			}
		}
	}
}
