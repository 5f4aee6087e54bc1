// Package agreement extracts the structured fields of a grant agreement
// (case number, amount, date, purpose) from its page text and turns them
// into the token map that fills the bank letter template.
package agreement

import (
	"regexp"
	"strings"
	"time"
)

// PageSource supplies the page text of one source document. Reading the
// document format itself (PDF parsing, OCR) is a collaborator's job; see
// internal/pdftext for implementations.
type PageSource interface {
	PageCount() int
	// Page returns the text of page i (0-based), empty when out of range.
	Page(i int) string
}

// topLines bounds the region of page 1 searched for the case number. The
// number sits in the letterhead; limiting the search keeps digit runs from
// the body (amounts, dates, bank accounts) out of it.
const topLines = 8

var (
	// The case number is printed with leading zeros; the fallback accepts
	// any 6-9 digit run when the zero-padded form is absent.
	caseNumPattern  = regexp.MustCompile(`\b0+(\d{5,})\b`)
	caseNumFallback = regexp.MustCompile(`\b\d{6,9}\b`)

	amountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:amount of|USD|\$)\s*([0-9][0-9 ,.]*)`),
		regexp.MustCompile(`(?i)USD\s*\$?\s*([0-9][0-9 ,.]*)`),
	}

	purposePattern = regexp.MustCompile(`(?i)у вигляді\s+([^.]+)\.`)

	dateUSPattern = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
)

// Fields holds everything extracted from one agreement.
type Fields struct {
	CaseNum string
	Amount  Amount
	// Date is the latest US-format date on the last page: the signing date.
	Date time.Time
	// Purpose is the Ukrainian purpose clause; empty when the agreement
	// does not carry one. The letter substitutes it as-is.
	Purpose string
}

// Extract pulls all fields from the document's pages. A missing purpose is
// tolerated (the token substitutes to empty text); any other missing field
// makes the document unusable and is reported via *FieldError, all missing
// fields at once.
func Extract(pages PageSource) (*Fields, error) {
	if pages.PageCount() == 0 {
		return nil, &FieldError{Missing: []string{"CASE_NUM", "FULL_AMOUNT", "DATE"}}
	}

	first := pages.Page(0)
	last := pages.Page(pages.PageCount() - 1)

	var all strings.Builder
	for i := 0; i < pages.PageCount(); i++ {
		if i > 0 {
			all.WriteString("\n")
		}
		all.WriteString(pages.Page(i))
	}

	f := &Fields{
		CaseNum: findCaseNum(topOfPage(first, topLines)),
		Purpose: findPurpose(all.String()),
	}

	var missing []string
	if f.CaseNum == "" {
		missing = append(missing, "CASE_NUM")
	}

	amount, ok := findAmount(first)
	if !ok {
		missing = append(missing, "FULL_AMOUNT")
	}
	f.Amount = amount

	date, ok := maxDateUS(last)
	if !ok {
		missing = append(missing, "DATE")
	}
	f.Date = date

	if len(missing) > 0 {
		return nil, &FieldError{Missing: missing}
	}
	return f, nil
}

// topOfPage returns the first n lines of a page's text.
func topOfPage(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

// findCaseNum returns the case number without its leading zeros, or ""
// when the region holds no candidate.
func findCaseNum(text string) string {
	if m := caseNumPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := caseNumFallback.FindString(text); m != "" {
		if trimmed := strings.TrimLeft(m, "0"); trimmed != "" {
			return trimmed
		}
		return "0"
	}
	return ""
}

// findAmount scans the page for a monetary amount. Candidates that do not
// parse (stray dots from sentence punctuation) are skipped, not fatal.
func findAmount(text string) (Amount, bool) {
	for _, pat := range amountPatterns {
		for _, m := range pat.FindAllStringSubmatch(text, -1) {
			if a, err := ParseAmount(m[1]); err == nil {
				return a, true
			}
		}
	}
	return 0, false
}

func findPurpose(text string) string {
	if m := purposePattern.FindStringSubmatch(text); m != nil {
		return "у вигляді " + strings.TrimSpace(m[1])
	}
	return ""
}

// maxDateUS returns the latest valid M/D/YYYY date in the text.
func maxDateUS(text string) (time.Time, bool) {
	var best time.Time
	found := false
	for _, m := range dateUSPattern.FindAllStringSubmatch(text, -1) {
		t, err := time.Parse("1/2/2006", m[0])
		if err != nil {
			continue
		}
		if !found || t.After(best) {
			best = t
			found = true
		}
	}
	return best, found
}
