package agreement

import (
	"fmt"
	"time"
)

// uaMonthsGen holds Ukrainian month names in the genitive case, as dates
// are written in formal letters.
var uaMonthsGen = map[time.Month]string{
	time.January:   "січня",
	time.February:  "лютого",
	time.March:     "березня",
	time.April:     "квітня",
	time.May:       "травня",
	time.June:      "червня",
	time.July:      "липня",
	time.August:    "серпня",
	time.September: "вересня",
	time.October:   "жовтня",
	time.November:  "листопада",
	time.December:  "грудня",
}

// UADate formats a date the way Ukrainian official letters write it:
// «05» серпня 2026 року.
func UADate(t time.Time) string {
	return fmt.Sprintf("«%02d» %s %d року", t.Day(), uaMonthsGen[t.Month()], t.Year())
}

// FolderName builds the output folder name for one processed agreement:
// "YY-MM Нова ХХХ <amount> №<case> Хелп". The year and month come from the
// agreement date, the amount is whole units without separators.
func FolderName(f *Fields) string {
	return fmt.Sprintf("%s Нова ХХХ %s №%s Хелп", monthKey(f.Date), f.Amount.Dec(), f.CaseNum)
}

// LetterName builds the generated letter's file name.
func LetterName(f *Fields) string {
	return fmt.Sprintf("Письмо_в_банк_№%s.docx", f.CaseNum)
}
