package formats

import (
	"strings"

	"github.com/abnew123/expense-ledger/internal/dateutils"
	"github.com/abnew123/expense-ledger/internal/models"
	"github.com/abnew123/expense-ledger/internal/parsererror"
)

// Headerless parses the fixed positional three-column layout with no header
// row: date, signed amount, description. Having no header, it can only be
// detected by content sniffing, and only after every header-based format
// has been ruled out.
type Headerless struct{}

func (Headerless) Name() string { return "headerless" }

func (Headerless) Columns() []string { return nil }

// Sniff accepts records whose first row has exactly three cells shaped like
// date, number, free text.
func (Headerless) Sniff(record []string) bool {
	if len(record) != 3 {
		return false
	}
	if !dateutils.LooksLikeDate(record[0]) {
		return false
	}
	if _, err := models.ParseAmount(record[1]); err != nil {
		return false
	}
	// The description must not itself look numeric or date-like, otherwise
	// a stray numeric table would slip through.
	if dateutils.LooksLikeDate(record[2]) {
		return false
	}
	if _, err := models.ParseAmount(record[2]); err == nil {
		return false
	}
	return true
}

func (Headerless) Parse(records [][]string) ([]models.Transaction, []*parsererror.RowError) {
	var txs []models.Transaction
	var errs []*parsererror.RowError
	for i, row := range records {
		rowNum := i + 1
		if rowIsBlank(row) {
			continue
		}
		if len(row) < 3 {
			errs = append(errs, &parsererror.RowError{Row: rowNum, Reason: parsererror.ReasonMissingField})
			continue
		}

		tx, rowErr := normalizeSignedRow(signedRow{
			transactionDate: strings.TrimSpace(row[0]),
			amount:          strings.TrimSpace(row[1]),
			description:     strings.TrimSpace(row[2]),
		}, dateutils.DateLayoutUS, rowNum)
		if rowErr != nil {
			errs = append(errs, rowErr)
			continue
		}
		txs = append(txs, tx)
	}
	return txs, errs
}
