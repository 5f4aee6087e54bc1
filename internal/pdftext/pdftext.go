// Package pdftext turns a source document into per-page text. The batch
// pipeline reads agreements through this package so field extraction never
// touches PDF internals directly.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Pages holds the extracted text of a document, one string per page. It
// satisfies agreement.PageSource.
type Pages []string

func (p Pages) PageCount() int { return len(p) }

func (p Pages) Page(i int) string {
	if i < 0 || i >= len(p) {
		return ""
	}
	return p[i]
}

// FromText splits plain text into pages on form feeds. pdftotext emits a
// form feed after every page, so a trailing empty page is dropped.
func FromText(s string) Pages {
	pages := strings.Split(s, "\f")
	if n := len(pages); n > 1 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	return Pages(pages)
}

// Pdftotext extracts page text by shelling out to the pdftotext tool from
// poppler-utils. -layout keeps the letterhead's column layout intact, which
// the case number search depends on.
func Pdftotext(ctx context.Context, path string) (Pages, error) {
	cmd := exec.CommandContext(ctx, "pdftotext", "-enc", "UTF-8", "-layout", path, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("pdftotext %s: %s: %w", path, msg, err)
		}
		return nil, fmt.Errorf("pdftotext %s (install poppler-utils): %w", path, err)
	}

	return FromText(stdout.String()), nil
}
