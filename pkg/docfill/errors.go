// Package docfill error types. The replacement engine itself raises no
// domain errors (a token absent from the tree is simply not replaced), so
// everything here reports package I/O and part-level failures.
package docfill

import (
	"errors"
	"fmt"
)

var (
	errNoRootElement = errors.New("part has no root element")
	errNoBody        = errors.New("document has no body")
)

// DocumentError represents an error during a document operation.
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	switch {
	case e.Path != "" && e.Cause != nil:
		return fmt.Sprintf("document error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	case e.Path != "":
		return fmt.Sprintf("document error during %s of '%s'", e.Operation, e.Path)
	case e.Cause != nil:
		return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
	default:
		return fmt.Sprintf("document error during %s", e.Operation)
	}
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error.
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// PartError represents an error tied to one part of the DOCX package.
type PartError struct {
	Part  string
	Cause error
}

func (e *PartError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("part '%s': %v", e.Part, e.Cause)
	}
	return fmt.Sprintf("part '%s'", e.Part)
}

func (e *PartError) Unwrap() error {
	return e.Cause
}

// NewPartError creates a new part error.
func NewPartError(part string, cause error) error {
	return &PartError{
		Part:  part,
		Cause: cause,
	}
}
