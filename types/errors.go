package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound signals that an update, delete, or get targeted an item
// that is not present in its collection. It is an expected outcome,
// not a failure of the store.
var ErrNotFound = errors.New("item not found")

// FieldError describes a single schema violation at a dotted path
// within a record or the aggregate, e.g. "features.2.storyPoints".
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationError reports that a record or the full aggregate failed
// schema validation. Fields carries the per-field detail. Operations
// that return a ValidationError never wrote anything to disk.
type ValidationError struct {
	Subject string       `json:"subject"` // what was validated, e.g. "bug", "project data"
	Fields  []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s failed validation", e.Subject)
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%s failed validation: %s", e.Subject, strings.Join(parts, "; "))
}

// CorruptDataError reports that the canonical data file could not be
// parsed, failed checksum verification, or failed aggregate validation
// on load. The store never auto-repairs; the caller decides.
type CorruptDataError struct {
	Path string
	Err  error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt data file %s: %v", e.Path, e.Err)
}

func (e *CorruptDataError) Unwrap() error { return e.Err }

// StorageError reports a filesystem failure (directory creation, read,
// write, rename). The operation may be retried by the caller.
type StorageError struct {
	Op   string // "mkdir", "read", "write", "rename"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewValidationError builds a ValidationError for the given subject.
func NewValidationError(subject string, fields []FieldError) *ValidationError {
	return &ValidationError{Subject: subject, Fields: fields}
}
