package formats

import (
	"github.com/abnew123/expense-ledger/internal/dateutils"
	"github.com/abnew123/expense-ledger/internal/models"
	"github.com/abnew123/expense-ledger/internal/parsererror"
)

// Generic parses the minimal three-column layout (Date, Description,
// Amount) many banks offer as a lowest common denominator.
type Generic struct{}

var genericColumns = []string{"Date", "Description", "Amount"}

func (Generic) Name() string { return "generic" }

func (Generic) Columns() []string { return genericColumns }

func (Generic) Parse(records [][]string) ([]models.Transaction, []*parsererror.RowError) {
	if len(records) == 0 {
		return nil, nil
	}
	idx := columnIndex(records[0])

	var txs []models.Transaction
	var errs []*parsererror.RowError
	for i, row := range records[1:] {
		rowNum := i + 1
		if rowIsBlank(row) {
			continue
		}

		tx, rowErr := normalizeSignedRow(signedRow{
			transactionDate: cell(row, idx, "Date"),
			description:     cell(row, idx, "Description"),
			amount:          cell(row, idx, "Amount"),
		}, dateutils.DateLayoutUS, rowNum)
		if rowErr != nil {
			errs = append(errs, rowErr)
			continue
		}
		txs = append(txs, tx)
	}
	return txs, errs
}
