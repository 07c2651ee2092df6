package formats

import (
	"fmt"

	"github.com/abnew123/expense-ledger/internal/dateutils"
	"github.com/abnew123/expense-ledger/internal/models"
	"github.com/abnew123/expense-ledger/internal/parsererror"
	"github.com/shopspring/decimal"
)

// DebitCredit parses card exports that split amounts into separate unsigned
// Debit and Credit columns instead of one signed column.
type DebitCredit struct{}

var debitCreditColumns = []string{
	"Transaction Date", "Posted Date", "Card No.", "Description", "Category", "Debit", "Credit",
}

func (DebitCredit) Name() string { return "debit-credit" }

func (DebitCredit) Columns() []string { return debitCreditColumns }

func (DebitCredit) Parse(records [][]string) ([]models.Transaction, []*parsererror.RowError) {
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

		tx, rowErr := normalizeDebitCreditRow(debitCreditRow{
			transactionDate: cell(row, idx, "Transaction Date"),
			postDate:        cell(row, idx, "Posted Date"),
			description:     cell(row, idx, "Description"),
			category:        cell(row, idx, "Category"),
			debit:           cell(row, idx, "Debit"),
			credit:          cell(row, idx, "Credit"),
		}, rowNum)
		if rowErr != nil {
			errs = append(errs, rowErr)
			continue
		}
		txs = append(txs, tx)
	}
	return txs, errs
}

type debitCreditRow struct {
	transactionDate string
	postDate        string
	description     string
	category        string
	debit           string
	credit          string
}

// normalizeDebitCreditRow converts a two-column amount into a signed one:
// a populated debit is an outflow (-debit), a populated credit an inflow
// (+credit). Both or neither populated is a bad-amount row.
func normalizeDebitCreditRow(row debitCreditRow, rowNum int) (models.Transaction, *parsererror.RowError) {
	if row.transactionDate == "" || row.description == "" {
		return models.Transaction{}, &parsererror.RowError{Row: rowNum, Reason: parsererror.ReasonMissingField}
	}
	if (row.debit == "") == (row.credit == "") {
		return models.Transaction{}, &parsererror.RowError{Row: rowNum, Reason: parsererror.ReasonBadAmount}
	}

	txDate, err := dateutils.ParseDate(row.transactionDate, dateutils.DateLayoutUS)
	if err != nil {
		return models.Transaction{}, &parsererror.RowError{Row: rowNum, Reason: parsererror.ReasonBadDate, Err: err}
	}
	postDate := txDate
	if row.postDate != "" {
		postDate, err = dateutils.ParseDate(row.postDate, dateutils.DateLayoutUS)
		if err != nil {
			return models.Transaction{}, &parsererror.RowError{Row: rowNum, Reason: parsererror.ReasonBadDate, Err: err}
		}
		if postDate.Before(txDate) {
			return models.Transaction{}, &parsererror.RowError{Row: rowNum, Reason: parsererror.ReasonBadDate,
				Err: fmt.Errorf("post date %s precedes transaction date %s", row.postDate, row.transactionDate)}
		}
	}

	var amount decimal.Decimal
	if row.debit != "" {
		debit, err := models.ParseAmount(row.debit)
		if err != nil {
			return models.Transaction{}, &parsererror.RowError{Row: rowNum, Reason: parsererror.ReasonBadAmount, Err: err}
		}
		amount = debit.Abs().Neg()
	} else {
		credit, err := models.ParseAmount(row.credit)
		if err != nil {
			return models.Transaction{}, &parsererror.RowError{Row: rowNum, Reason: parsererror.ReasonBadAmount, Err: err}
		}
		amount = credit.Abs()
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
		Type:            models.NormalizeType("", amount),
		Amount:          amount,
	}, nil
}
