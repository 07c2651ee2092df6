package formats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abnew123/expense-ledger/internal/parsererror"
)

func TestDetectExactMatch(t *testing.T) {
	registry := DefaultRegistry()

	// Every header-based format detects itself and nothing else.
	for _, f := range registry.Formats() {
		cols := f.Columns()
		if cols == nil {
			continue
		}
		got, err := registry.Detect(cols)
		require.NoError(t, err, "format %s", f.Name())
		assert.Equal(t, f.Name(), got.Name())
	}
}

func TestDetectPermissiveMatch(t *testing.T) {
	registry := DefaultRegistry()

	header := []string{"transaction date", "POST DATE", "description", "category", "type", "AMOUNT", "memo"}
	got, err := registry.Detect(header)
	require.NoError(t, err)
	assert.Equal(t, "chase", got.Name())
}

func TestDetectReorderedAndSurplusColumns(t *testing.T) {
	registry := DefaultRegistry()

	// Banks shuffle columns and append extras between export versions;
	// parsing locates cells by name, so detection tolerates both.
	reordered := []string{"Amount", "Description", "Transaction Date", "Post Date", "Category", "Type", "Memo"}
	got, err := registry.Detect(reordered)
	require.NoError(t, err)
	assert.Equal(t, "chase", got.Name())

	surplus := []string{"Date", "Description", "Amount", "Running Balance"}
	got, err = registry.Detect(surplus)
	require.NoError(t, err)
	assert.Equal(t, "generic", got.Name())
}

func TestDetectUnrecognized(t *testing.T) {
	registry := DefaultRegistry()

	_, err := registry.Detect([]string{"Foo", "Bar", "Baz"})
	var unrecognized *parsererror.UnrecognizedFormatError
	assert.True(t, errors.As(err, &unrecognized), "expected UnrecognizedFormatError, got %v", err)
}

func TestDetectAmbiguous(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(Generic{}))
	require.NoError(t, registry.Register(CustomFormat{
		FormatName: "generic-lower",
		Cols:       []string{"date", "description", "amount"},
		AmountMode: AmountModeSigned,
		Fields: map[string]string{
			"transaction_date": "date",
			"description":      "description",
			"amount":           "amount",
		},
	}))

	// Matches neither exactly, but both permissively.
	_, err := registry.Detect([]string{"DATE", "DESCRIPTION", "AMOUNT"})
	var ambiguous *parsererror.AmbiguousFormatError
	require.True(t, errors.As(err, &ambiguous), "expected AmbiguousFormatError, got %v", err)
	assert.ElementsMatch(t, []string{"generic", "generic-lower"}, ambiguous.Candidates)
}

func TestDetectExactBeatsPermissive(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(Generic{}))
	require.NoError(t, registry.Register(CustomFormat{
		FormatName: "generic-exact-lower",
		Cols:       []string{"date", "description", "amount"},
		AmountMode: AmountModeSigned,
		Fields: map[string]string{
			"transaction_date": "date",
			"description":      "description",
			"amount":           "amount",
		},
	}))

	got, err := registry.Detect([]string{"date", "description", "amount"})
	require.NoError(t, err)
	assert.Equal(t, "generic-exact-lower", got.Name())
}

func TestDetectRecordsHeaderlessFallback(t *testing.T) {
	registry := DefaultRegistry()

	records, err := ReadRecords("01/15/2024,-4.75,STARBUCKS\n01/16/2024,200.00,PAYMENT THANK YOU\n")
	require.NoError(t, err)

	got, err := registry.DetectRecords(records)
	require.NoError(t, err)
	assert.Equal(t, "headerless", got.Name())
}

func TestDetectRecordsHeaderWins(t *testing.T) {
	registry := DefaultRegistry()

	records, err := ReadRecords("Date,Description,Amount\n01/15/2024,STARBUCKS,-4.75\n")
	require.NoError(t, err)

	got, err := registry.DetectRecords(records)
	require.NoError(t, err)
	assert.Equal(t, "generic", got.Name())
}

func TestDetectRecordsUnrecognizedContent(t *testing.T) {
	registry := DefaultRegistry()

	records, err := ReadRecords("foo,bar\n1,2\n")
	require.NoError(t, err)

	_, err = registry.DetectRecords(records)
	var unrecognized *parsererror.UnrecognizedFormatError
	assert.True(t, errors.As(err, &unrecognized), "expected UnrecognizedFormatError, got %v", err)
}

func TestRegisterDuplicateName(t *testing.T) {
	registry := DefaultRegistry()
	err := registry.Register(Chase{})
	assert.Error(t, err)
}
