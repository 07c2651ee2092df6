package formats

import (
	"fmt"

	"github.com/abnew123/expense-ledger/internal/dateutils"
	"github.com/abnew123/expense-ledger/internal/models"
	"github.com/abnew123/expense-ledger/internal/parsererror"
)

// Chase parses Chase credit card CSV exports: a single signed amount column
// and an explicit type column.
type Chase struct{}

var chaseColumns = []string{
	"Transaction Date", "Post Date", "Description", "Category", "Type", "Amount", "Memo",
}

func (Chase) Name() string { return "chase" }

func (Chase) Columns() []string { return chaseColumns }

func (Chase) Parse(records [][]string) ([]models.Transaction, []*parsererror.RowError) {
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
			transactionDate: cell(row, idx, "Transaction Date"),
			postDate:        cell(row, idx, "Post Date"),
			description:     cell(row, idx, "Description"),
			category:        cell(row, idx, "Category"),
			typeLabel:       cell(row, idx, "Type"),
			amount:          cell(row, idx, "Amount"),
			memo:            cell(row, idx, "Memo"),
		}, dateutils.DateLayoutUS, rowNum)
		if rowErr != nil {
			errs = append(errs, rowErr)
			continue
		}
		txs = append(txs, tx)
	}
	return txs, errs
}

// signedRow carries the raw cells of a row whose amount is one signed column.
type signedRow struct {
	transactionDate string
	postDate        string
	description     string
	category        string
	typeLabel       string
	amount          string
	memo            string
}

// normalizeSignedRow applies the shared normalization rules for
// single-signed-column formats.
func normalizeSignedRow(row signedRow, dateLayout string, rowNum int) (models.Transaction, *parsererror.RowError) {
	if row.transactionDate == "" || row.description == "" || row.amount == "" {
		return models.Transaction{}, &parsererror.RowError{Row: rowNum, Reason: parsererror.ReasonMissingField}
	}

	txDate, err := dateutils.ParseDate(row.transactionDate, dateLayout)
	if err != nil {
		return models.Transaction{}, &parsererror.RowError{Row: rowNum, Reason: parsererror.ReasonBadDate, Err: err}
	}

	postDate := txDate
	if row.postDate != "" {
		postDate, err = dateutils.ParseDate(row.postDate, dateLayout)
		if err != nil {
			return models.Transaction{}, &parsererror.RowError{Row: rowNum, Reason: parsererror.ReasonBadDate, Err: err}
		}
		if postDate.Before(txDate) {
			return models.Transaction{}, &parsererror.RowError{Row: rowNum, Reason: parsererror.ReasonBadDate,
				Err: fmt.Errorf("post date %s precedes transaction date %s", row.postDate, row.transactionDate)}
		}
	}

	amount, err := models.ParseAmount(row.amount)
	if err != nil {
		return models.Transaction{}, &parsererror.RowError{Row: rowNum, Reason: parsererror.ReasonBadAmount, Err: err}
	}
	if amount.IsZero() {
		return models.Transaction{}, &parsererror.RowError{Row: rowNum, Reason: parsererror.ReasonBadAmount}
	}

	category := row.category
	if category == "" {
		category = models.CategoryUncategorized
	}

	return models.Transaction{
		TransactionDate: dateutils.ToISODate(txDate),
		PostDate:        dateutils.ToISODate(postDate),
		Description:     row.description,
		Category:        category,
		Type:            models.NormalizeType(row.typeLabel, amount),
		Amount:          amount,
		Memo:            row.memo,
	}, nil
}
