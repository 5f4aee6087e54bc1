package agreement

import (
	"fmt"
	"strings"
)

// FieldError reports the fields that could not be extracted from an
// agreement. All missing fields are collected into one error so the user
// sees the full list in a single pass.
type FieldError struct {
	Missing []string
}

func (e *FieldError) Error() string {
	if len(e.Missing) == 0 {
		return "field extraction failed"
	}
	return fmt.Sprintf("missing fields: %s", strings.Join(e.Missing, ", "))
}
