package formats

import (
	"fmt"
	"os"

	"github.com/abnew123/expense-ledger/internal/models"
	"github.com/abnew123/expense-ledger/internal/parsererror"
	"gopkg.in/yaml.v3"
)

// Amount conventions a custom format may declare.
const (
	AmountModeSigned      = "signed"
	AmountModeDebitCredit = "debit-credit"
)

// CustomFormat is a format definition loaded from a YAML file rather than
// compiled in, for bank layouts the built-ins don't cover.
type CustomFormat struct {
	FormatName string            `yaml:"name"`
	Cols       []string          `yaml:"columns"`
	DateLayout string            `yaml:"date_layout"`
	AmountMode string            `yaml:"amount_mode"`
	Fields     map[string]string `yaml:"fields"` // canonical field -> column name
}

// customFormatsFile is the on-disk shape of a custom formats file.
type customFormatsFile struct {
	Formats []CustomFormat `yaml:"formats"`
}

// Canonical field keys recognized in a custom format's field mapping.
const (
	fieldTransactionDate = "transaction_date"
	fieldPostDate        = "post_date"
	fieldDescription     = "description"
	fieldCategory        = "category"
	fieldType            = "type"
	fieldAmount          = "amount"
	fieldDebit           = "debit"
	fieldCredit          = "credit"
	fieldMemo            = "memo"
)

func (c CustomFormat) Name() string { return c.FormatName }

func (c CustomFormat) Columns() []string { return c.Cols }

func (c CustomFormat) Parse(records [][]string) ([]models.Transaction, []*parsererror.RowError) {
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

		var tx models.Transaction
		var rowErr *parsererror.RowError
		if c.AmountMode == AmountModeDebitCredit {
			tx, rowErr = normalizeDebitCreditRow(debitCreditRow{
				transactionDate: cell(row, idx, c.Fields[fieldTransactionDate]),
				postDate:        cell(row, idx, c.Fields[fieldPostDate]),
				description:     cell(row, idx, c.Fields[fieldDescription]),
				category:        cell(row, idx, c.Fields[fieldCategory]),
				debit:           cell(row, idx, c.Fields[fieldDebit]),
				credit:          cell(row, idx, c.Fields[fieldCredit]),
			}, rowNum)
		} else {
			tx, rowErr = normalizeSignedRow(signedRow{
				transactionDate: cell(row, idx, c.Fields[fieldTransactionDate]),
				postDate:        cell(row, idx, c.Fields[fieldPostDate]),
				description:     cell(row, idx, c.Fields[fieldDescription]),
				category:        cell(row, idx, c.Fields[fieldCategory]),
				typeLabel:       cell(row, idx, c.Fields[fieldType]),
				amount:          cell(row, idx, c.Fields[fieldAmount]),
				memo:            cell(row, idx, c.Fields[fieldMemo]),
			}, c.DateLayout, rowNum)
		}
		if rowErr != nil {
			errs = append(errs, rowErr)
			continue
		}
		txs = append(txs, tx)
	}
	return txs, errs
}

// validate checks a custom definition before registration.
func (c CustomFormat) validate() error {
	if c.FormatName == "" {
		return fmt.Errorf("custom format is missing a name")
	}
	if len(c.Cols) == 0 {
		return fmt.Errorf("custom format %s declares no columns", c.FormatName)
	}
	if c.Fields[fieldTransactionDate] == "" || c.Fields[fieldDescription] == "" {
		return fmt.Errorf("custom format %s must map transaction_date and description", c.FormatName)
	}
	switch c.AmountMode {
	case AmountModeSigned, "":
		if c.Fields[fieldAmount] == "" {
			return fmt.Errorf("custom format %s must map amount", c.FormatName)
		}
	case AmountModeDebitCredit:
		if c.Fields[fieldDebit] == "" || c.Fields[fieldCredit] == "" {
			return fmt.Errorf("custom format %s must map debit and credit", c.FormatName)
		}
	default:
		return fmt.Errorf("custom format %s: unknown amount mode %q", c.FormatName, c.AmountMode)
	}
	return nil
}

// LoadCustomFormats reads format definitions from a YAML file and registers
// them. A missing file is not an error: custom formats are optional.
func (r *Registry) LoadCustomFormats(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- user-configured formats file
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading custom formats file: %w", err)
	}

	var file customFormatsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("error parsing custom formats file: %w", err)
	}

	for _, def := range file.Formats {
		if err := def.validate(); err != nil {
			return err
		}
		if err := r.Register(def); err != nil {
			return err
		}
	}
	return nil
}
