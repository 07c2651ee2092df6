// Package formats defines the registry of supported bank CSV layouts, the
// format detector, and the per-format row normalizers that turn raw rows
// into canonical transactions.
package formats

import (
	"strings"

	"github.com/abnew123/expense-ledger/internal/models"
	"github.com/abnew123/expense-ledger/internal/parsererror"
)

// Format describes one supported bank export layout: the expected columns,
// and how its rows normalize into canonical transactions.
type Format interface {
	// Name identifies the format, e.g. "chase".
	Name() string

	// Columns returns the expected header column names in order, or nil
	// for a format without a header row.
	Columns() []string

	// Parse normalizes the raw CSV records (header included for formats
	// with one) into transactions. Row-level failures are collected, not
	// fatal; rows that are entirely blank are skipped silently.
	Parse(records [][]string) ([]models.Transaction, []*parsererror.RowError)
}

// Sniffer is implemented by headerless formats. Detection consults it only
// after every header-based format has been ruled out.
type Sniffer interface {
	// Sniff inspects the first record and reports whether the content
	// plausibly belongs to this format.
	Sniff(record []string) bool
}

// normalizeColumn produces the permissive-match form of a column name:
// case-folded with internal whitespace collapsed.
func normalizeColumn(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// columnIndex maps each normalized column name of a header to its position,
// so permissively matched headers (case or spacing differences) still
// resolve to the right cells.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[normalizeColumn(name)] = i
	}
	return idx
}

// cell returns the trimmed value of the named column, or "" when the column
// is absent or the row is short.
func cell(row []string, idx map[string]int, name string) string {
	i, ok := idx[normalizeColumn(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// rowIsBlank reports whether every field of the row is empty.
func rowIsBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
