package agreement

import (
	"fmt"
	"time"

	"github.com/DenisZol/Agreem-make-dir/pkg/docfill"
)

// Tokens builds the ordered token map for the letter template. The
// {{DATE + N}} spellings duplicate {{DATE+N}} because both forms appear in
// templates edited by hand. A missing purpose substitutes to empty text:
// the marker must still disappear from the letter.
func Tokens(f *Fields) docfill.TokenMap {
	date := UADate(f.Date)
	datePlus2 := UADate(f.Date.AddDate(0, 0, 2))
	datePlus3 := UADate(f.Date.AddDate(0, 0, 3))

	return docfill.TokenMap{
		{Key: "{{CASE_NUM}}", Value: f.CaseNum},
		{Key: "{{FULL_AMOUNT_DEC}}", Value: f.Amount.Dec()},
		{Key: "{{FULL_AMOUNT}}", Value: f.Amount.Grouped()},
		{Key: "{{DATE}}", Value: date},
		{Key: "{{DATE+2}}", Value: datePlus2},
		{Key: "{{DATE + 2}}", Value: datePlus2},
		{Key: "{{DATE+3}}", Value: datePlus3},
		{Key: "{{DATE + 3}}", Value: datePlus3},
		{Key: "{{DATE_MM_ONLY}}", Value: fmt.Sprintf("%02d", int(f.Date.Month()))},
		{Key: "{{CASE_DESCR}}", Value: f.Purpose},
	}
}

// monthKey returns the YY-MM prefix shared by the folder name and any
// per-month grouping the caller wants to do.
func monthKey(t time.Time) string {
	return fmt.Sprintf("%02d-%02d", t.Year()%100, int(t.Month()))
}
