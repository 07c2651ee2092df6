// Package dateutils provides the date parsing shared by the CSV formats.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Layouts commonly declared by bank export formats.
const (
	DateLayoutISO    = "2006-01-02"
	DateLayoutUS     = "01/02/2006"
	DateLayoutUSDash = "01-02-2006"
)

// fallbackLayouts are tried after a format's declared layout fails. US
// month-first layouts come before day-first ones; that matches the exports
// this tool supports.
var fallbackLayouts = []string{
	DateLayoutUS,
	DateLayoutISO,
	DateLayoutUSDash,
	"2006/01/02",
}

// ParseDate parses a date string, trying the declared layout first and
// falling back to the common layouts found in financial exports.
func ParseDate(dateStr, layout string) (time.Time, error) {
	cleaned := strings.Join(strings.Fields(dateStr), " ")
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}

	if layout != "" {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	for _, l := range fallbackLayouts {
		if l == layout {
			continue
		}
		if t, err := time.Parse(l, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate re-emits a parsed date in the canonical ISO-8601 form.
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// LooksLikeDate reports whether a cell parses as a date under any of the
// supported layouts. Used by headerless format sniffing.
func LooksLikeDate(s string) bool {
	_, err := ParseDate(s, "")
	return err == nil
}
