package formats

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/abnew123/expense-ledger/internal/parsererror"
)

// ReadRecords parses raw CSV content into records without enforcing a fixed
// field count; the formats decide what each row means.
func ReadRecords(content string) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV content: %w", err)
	}
	return records, nil
}

// Detect returns the single format matching the observed header fields.
// A format matches when every one of its expected columns appears in the
// header; order does not matter and extra columns are tolerated, since
// parsing locates cells by name. Exact name match wins outright; otherwise
// a permissive match (case-insensitive, whitespace-normalized) is accepted
// only when exactly one format qualifies. Ambiguity fails rather than
// guessing, and headerless formats are never matched here.
func (r *Registry) Detect(header []string) (Format, error) {
	var exact []Format
	var permissive []Format
	for _, f := range r.formats {
		cols := f.Columns()
		if cols == nil {
			continue
		}
		switch {
		case columnsMatch(header, cols, false):
			exact = append(exact, f)
		case columnsMatch(header, cols, true):
			permissive = append(permissive, f)
		}
	}

	if len(exact) == 1 {
		return exact[0], nil
	}
	if len(exact) > 1 {
		return nil, &parsererror.AmbiguousFormatError{Header: header, Candidates: formatNames(exact)}
	}
	if len(permissive) == 1 {
		return permissive[0], nil
	}
	if len(permissive) > 1 {
		return nil, &parsererror.AmbiguousFormatError{Header: header, Candidates: formatNames(permissive)}
	}
	return nil, &parsererror.UnrecognizedFormatError{Header: header}
}

// DetectRecords matches a whole file: header-based detection on the first
// record, then, only if every header format is ruled out, content sniffing
// for headerless formats.
func (r *Registry) DetectRecords(records [][]string) (Format, error) {
	if len(records) == 0 {
		return nil, &parsererror.UnrecognizedFormatError{}
	}

	f, err := r.Detect(records[0])
	if err == nil {
		return f, nil
	}
	var unrecognized *parsererror.UnrecognizedFormatError
	if !errors.As(err, &unrecognized) {
		return nil, err
	}

	for _, candidate := range r.formats {
		if candidate.Columns() != nil {
			continue
		}
		sniffer, ok := candidate.(Sniffer)
		if !ok {
			continue
		}
		if sniffer.Sniff(records[0]) {
			return candidate, nil
		}
	}
	return nil, &parsererror.UnrecognizedFormatError{Header: records[0]}
}

// columnsMatch reports whether every expected column is present in the
// header, regardless of position or surplus columns.
func columnsMatch(header, expected []string, permissive bool) bool {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		if permissive {
			have[normalizeColumn(h)] = true
		} else {
			have[strings.TrimSpace(h)] = true
		}
	}
	for _, col := range expected {
		key := col
		if permissive {
			key = normalizeColumn(col)
		}
		if !have[key] {
			return false
		}
	}
	return true
}

func formatNames(formats []Format) []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.Name()
	}
	return names
}
