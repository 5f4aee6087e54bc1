package agreement

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount is a monetary amount in cents. Grant amounts fit comfortably in
// an int64; no floating point is involved at any step.
type Amount int64

// ParseAmount reads an amount as printed in an agreement ("1,234,567.89",
// "1 234 567.89", "950000"). Group separators (commas, spaces) are
// dropped; more than one decimal dot means the candidate is not an amount.
func ParseAmount(raw string) (Amount, error) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == ',', r == ' ', r == ' ', r == ' ':
			// group separator
		default:
			return 0, fmt.Errorf("invalid amount %q", raw)
		}
	}
	s := b.String()
	// A period right after the amount ends the sentence, not the number:
	// "in the amount of USD 1,234,567.89." must still parse.
	s = strings.TrimRight(s, ".")
	if s == "" {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}

	whole := s
	frac := ""
	if idx := strings.Index(s, "."); idx >= 0 {
		if strings.Contains(s[idx+1:], ".") {
			return 0, fmt.Errorf("invalid amount %q", raw)
		}
		whole, frac = s[:idx], s[idx+1:]
	}
	if whole == "" {
		whole = "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", raw, err)
	}

	cents := int64(0)
	switch len(frac) {
	case 0:
	case 1:
		cents = int64(frac[0]-'0') * 10
	default:
		// Extra decimals beyond cents are truncated.
		c, err := strconv.ParseInt(frac[:2], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", raw, err)
		}
		cents = c
	}

	return Amount(units*100 + cents), nil
}

// Dec returns the whole-unit part without separators, e.g. "1234567".
// Used in folder names.
func (a Amount) Dec() string {
	return strconv.FormatInt(int64(a)/100, 10)
}

// Grouped returns the amount with space-separated thousand groups and two
// decimals, e.g. "1 234 567.89". This is the form printed in the letter.
func (a Amount) Grouped() string {
	units := int64(a) / 100
	cents := int64(a) % 100

	digits := strconv.FormatInt(units, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	return fmt.Sprintf("%s.%02d", strings.Join(groups, " "), cents)
}

func (a Amount) String() string {
	return a.Grouped()
}
