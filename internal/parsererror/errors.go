// Package parsererror defines the typed failure conditions shared by the
// format detector, the ingestion pipeline and the storage layer. Every
// failure path in the application returns one of these so callers can
// branch on the condition instead of matching error strings.
package parsererror

import (
	"fmt"
	"strings"
)

// Row error reasons.
const (
	ReasonBadDate      = "bad-date"
	ReasonBadAmount    = "bad-amount"
	ReasonMissingField = "missing-required-field"
)

// RowError is localized to a single row of an uploaded file. It never
// aborts sibling rows; the pipeline collects them for caller display.
type RowError struct {
	Row    int    // 1-based index of the data row within the file
	Reason string // one of the Reason* constants
	Err    error
}

func (e *RowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("row %d: %s: %v", e.Row, e.Reason, e.Err)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// UnrecognizedFormatError is a whole-file failure: the uploaded header
// matched no registered format, and content sniffing ruled out the
// headerless formats too. Nothing is ingested.
type UnrecognizedFormatError struct {
	Header []string
}

func (e *UnrecognizedFormatError) Error() string {
	return fmt.Sprintf("unrecognized CSV format: header [%s] matches no registered format",
		strings.Join(e.Header, ", "))
}

// AmbiguousFormatError is a whole-file failure: two or more formats matched
// the header permissively. Detection refuses to guess.
type AmbiguousFormatError struct {
	Header     []string
	Candidates []string
}

func (e *AmbiguousFormatError) Error() string {
	return fmt.Sprintf("ambiguous CSV format: header matches %s",
		strings.Join(e.Candidates, ", "))
}

// CategoryNotFoundError indicates a category operation targeted a category
// with zero current records. The operation made no changes.
type CategoryNotFoundError struct {
	Name string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("category not found: %s", e.Name)
}

// PersistenceError indicates the underlying storage write failed. The whole
// batch it belonged to was rolled back; no partial rows are visible.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
