package agreement

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// stubPages is a PageSource over literal page strings.
type stubPages []string

func (s stubPages) PageCount() int { return len(s) }
func (s stubPages) Page(i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	return s[i]
}

const samplePage1 = `GRANT AGREEMENT
Case No. 000123456
Recipient: Test Org

This agreement covers a grant in the amount of USD 1,234,567.89.`

const samplePageLast = `Signed in duplicate.

Date: 7/1/2026
Countersigned: 7/15/2026`

const samplePurposePage = `Грант надається у вигляді фінансової допомоги на відновлення житла. Далі текст.`

func TestExtract(t *testing.T) {
	pages := stubPages{samplePage1, samplePurposePage, samplePageLast}

	f, err := Extract(pages)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if f.CaseNum != "123456" {
		t.Errorf("CaseNum = %q, want 123456", f.CaseNum)
	}
	if got := f.Amount.Grouped(); got != "1 234 567.89" {
		t.Errorf("Amount = %q, want 1 234 567.89", got)
	}
	want := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
	if !f.Date.Equal(want) {
		t.Errorf("Date = %v, want %v (the latest date on the last page)", f.Date, want)
	}
	if f.Purpose != "у вигляді фінансової допомоги на відновлення житла" {
		t.Errorf("Purpose = %q", f.Purpose)
	}
}

func TestExtract_MissingFieldsCollected(t *testing.T) {
	pages := stubPages{"no numbers here", "still nothing"}

	_, err := Extract(pages)
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("Extract() error = %v, want *FieldError", err)
	}

	joined := strings.Join(fe.Missing, ",")
	for _, field := range []string{"CASE_NUM", "FULL_AMOUNT", "DATE"} {
		if !strings.Contains(joined, field) {
			t.Errorf("FieldError missing %s: %v", field, fe.Missing)
		}
	}
}

func TestExtract_MissingPurposeIsTolerated(t *testing.T) {
	pages := stubPages{samplePage1, samplePageLast}

	f, err := Extract(pages)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if f.Purpose != "" {
		t.Errorf("Purpose = %q, want empty", f.Purpose)
	}
}

func TestExtract_NoPages(t *testing.T) {
	if _, err := Extract(stubPages{}); err == nil {
		t.Error("Extract() on empty source: expected error")
	}
}

func TestFindCaseNum(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"leading zeros form", "Case 000123456 opened", "123456"},
		{"fallback without zeros", "ref 1234567 in header", "1234567"},
		{"prefers zero-padded match", "id 999999 and 00054321", "54321"},
		{"too short for either", "no 12345 here", ""},
		{"nothing", "plain text", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findCaseNum(tt.text); got != tt.want {
				t.Errorf("findCaseNum(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestFindCaseNum_OnlySearchesTopOfPage(t *testing.T) {
	page := "letterhead\nCase 000777777\n" + strings.Repeat("filler\n", 10) + "body 000888888"
	got := findCaseNum(topOfPage(page, topLines))
	if got != "777777" {
		t.Errorf("findCaseNum(top) = %q, want 777777", got)
	}

	// A number below the top region must not be picked up.
	deep := strings.Repeat("filler\n", 10) + "body 000888888"
	if got := findCaseNum(topOfPage(deep, topLines)); got != "" {
		t.Errorf("findCaseNum(top) = %q, want no match for deep number", got)
	}
}

func TestFindAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"amount of", "in the amount of 950,000.00 dollars", "950 000.00", true},
		{"usd prefix", "USD 1,500.50 transferred", "1 500.50", true},
		{"dollar sign", "total $ 42", "42.00", true},
		{"sentence-final period", "a grant in the amount of USD 1,234,567.89.", "1 234 567.89", true},
		{"skips unparsable candidate", "amount of 1.2.3 then amount of 100.25", "100.25", true},
		{"no amount", "no money mentioned", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := findAmount(tt.text)
			if ok != tt.ok {
				t.Fatalf("findAmount(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if ok && a.Grouped() != tt.want {
				t.Errorf("findAmount(%q) = %q, want %q", tt.text, a.Grouped(), tt.want)
			}
		})
	}
}

func TestMaxDateUS(t *testing.T) {
	text := "signed 1/5/2026, amended 3/30/2026, noted 2/10/2026"
	got, ok := maxDateUS(text)
	if !ok {
		t.Fatal("maxDateUS() found nothing")
	}
	want := time.Date(2026, time.March, 30, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("maxDateUS() = %v, want %v", got, want)
	}
}

func TestMaxDateUS_SkipsImpossibleDates(t *testing.T) {
	got, ok := maxDateUS("written 2/30/2026 then 1/15/2026")
	if !ok {
		t.Fatal("maxDateUS() found nothing")
	}
	want := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("maxDateUS() = %v, want %v; 2/30 is not a date", got, want)
	}
}
