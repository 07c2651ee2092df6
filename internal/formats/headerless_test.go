package formats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abnew123/expense-ledger/internal/parsererror"
)

func TestHeaderlessSniff(t *testing.T) {
	tests := []struct {
		name   string
		record []string
		want   bool
	}{
		{"date amount description", []string{"01/15/2024", "-4.75", "STARBUCKS"}, true},
		{"iso date", []string{"2024-01-15", "4.75", "REFUND"}, true},
		{"wrong column count", []string{"01/15/2024", "-4.75"}, false},
		{"first cell not a date", []string{"Transaction Date", "-4.75", "STARBUCKS"}, false},
		{"second cell not numeric", []string{"01/15/2024", "STARBUCKS", "-4.75"}, false},
		{"numeric description", []string{"01/15/2024", "-4.75", "12.00"}, false},
		{"date-like description", []string{"01/15/2024", "-4.75", "01/16/2024"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Headerless{}.Sniff(tt.record))
		})
	}
}

func TestHeaderlessParse(t *testing.T) {
	records, err := ReadRecords(`01/15/2024,-4.75,STARBUCKS
01/20/2024,250.00,PAYMENT THANK YOU
`)
	require.NoError(t, err)

	txs, rowErrs := Headerless{}.Parse(records)
	require.Empty(t, rowErrs)
	require.Len(t, txs, 2)

	// Every record is data: row numbers start at 1 with no header offset.
	assert.Equal(t, "2024-01-15", txs[0].TransactionDate)
	assert.Equal(t, "2024-01-15", txs[0].PostDate)
	assert.Equal(t, "STARBUCKS", txs[0].Description)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("-4.75")))
}

func TestHeaderlessParseRowErrors(t *testing.T) {
	records := [][]string{
		{"01/15/2024", "-4.75", "STARBUCKS"},
		{"01/16/2024", "oops", "BAD AMOUNT"},
		{"01/17/2024"},
	}

	txs, rowErrs := Headerless{}.Parse(records)
	require.Len(t, txs, 1)
	require.Len(t, rowErrs, 2)
	assert.Equal(t, 2, rowErrs[0].Row)
	assert.Equal(t, parsererror.ReasonBadAmount, rowErrs[0].Reason)
	assert.Equal(t, 3, rowErrs[1].Row)
	assert.Equal(t, parsererror.ReasonMissingField, rowErrs[1].Reason)
}
