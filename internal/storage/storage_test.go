package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abnew123/expense-ledger/internal/logging"
	"github.com/abnew123/expense-ledger/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"), logging.NewMockLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testTransaction(description, date string, amount string) models.Transaction {
	d := decimal.RequireFromString(amount)
	return models.Transaction{
		TransactionDate: date,
		PostDate:        date,
		Description:     description,
		Category:        models.CategoryUncategorized,
		Type:            models.NormalizeType("", d),
		Amount:          d,
	}
}

func TestOpenCreatesSchema(t *testing.T) {
	store := openTestStore(t)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(path, logging.NewMockLogger())
	require.NoError(t, err)
	_, err = store.InsertBatch(context.Background(), []models.Transaction{
		testTransaction("STARBUCKS", "2024-01-15", "-4.75"),
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening an already-migrated database preserves its contents.
	store, err = Open(path, logging.NewMockLogger())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestInsertBatch(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ids, err := store.InsertBatch(ctx, []models.Transaction{
		testTransaction("STARBUCKS", "2024-01-15", "-4.75"),
		testTransaction("PAYMENT THANK YOU", "2024-01-20", "250.00"),
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Greater(t, ids[1], ids[0])

	txs, err := store.ListTransactions(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, txs, 2)

	// Newest first.
	assert.Equal(t, "PAYMENT THANK YOU", txs[0].Description)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("250.00")))
	assert.Equal(t, "STARBUCKS", txs[1].Description)
}

func TestInsertBatchEmpty(t *testing.T) {
	store := openTestStore(t)

	ids, err := store.InsertBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestExistingFingerprints(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	stored := testTransaction("STARBUCKS", "2024-01-15", "-4.75")
	_, err := store.InsertBatch(ctx, []models.Transaction{stored})
	require.NoError(t, err)

	other := testTransaction("GROCERY OUTLET", "2024-01-16", "-20.00")
	existing, err := store.ExistingFingerprints(ctx, []string{stored.Fingerprint(), other.Fingerprint()})
	require.NoError(t, err)
	assert.True(t, existing[stored.Fingerprint()])
	assert.False(t, existing[other.Fingerprint()])
}

func TestExistingFingerprintsChunked(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	stored := testTransaction("STARBUCKS", "2024-01-15", "-4.75")
	_, err := store.InsertBatch(ctx, []models.Transaction{stored})
	require.NoError(t, err)

	// More lookups than one IN clause holds; the known fingerprint sits in
	// the final chunk.
	lookups := make([]string, 0, fingerprintChunkSize+1)
	for i := 0; i < fingerprintChunkSize; i++ {
		lookups = append(lookups, testTransaction("UNKNOWN", "2024-02-01", "-1.00").Fingerprint()+string(rune('a'+i%26)))
	}
	lookups = append(lookups, stored.Fingerprint())

	existing, err := store.ExistingFingerprints(ctx, lookups)
	require.NoError(t, err)
	assert.Len(t, existing, 1)
	assert.True(t, existing[stored.Fingerprint()])
}

func TestListTransactionsFilters(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	coffee := testTransaction("STARBUCKS", "2024-01-15", "-4.75")
	coffee.Category = "Food"
	gas := testTransaction("GAS STATION", "2024-02-10", "-50.00")
	gas.Category = "Gas"
	payment := testTransaction("PAYMENT", "2024-03-01", "250.00")

	_, err := store.InsertBatch(ctx, []models.Transaction{coffee, gas, payment})
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"PAYMENT", "GAS STATION", "STARBUCKS"}},
		{"from", Filter{From: "2024-02-01"}, []string{"PAYMENT", "GAS STATION"}},
		{"to", Filter{To: "2024-02-28"}, []string{"GAS STATION", "STARBUCKS"}},
		{"range inclusive", Filter{From: "2024-02-10", To: "2024-02-10"}, []string{"GAS STATION"}},
		{"category", Filter{Category: "Food"}, []string{"STARBUCKS"}},
		{"category and range", Filter{From: "2024-02-01", Category: "Food"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs, err := store.ListTransactions(ctx, tt.filter)
			require.NoError(t, err)
			var got []string
			for _, tx := range txs {
				got = append(got, tx.Description)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAmountsRoundTripExactly(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// Classic float trap: 0.10 + 0.20 must come back as exactly 0.30.
	_, err := store.InsertBatch(ctx, []models.Transaction{
		testTransaction("TEN CENTS", "2024-01-01", "-0.10"),
		testTransaction("TWENTY CENTS", "2024-01-01", "-0.20"),
	})
	require.NoError(t, err)

	txs, err := store.ListTransactions(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, txs, 2)

	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	assert.True(t, total.Equal(decimal.RequireFromString("-0.30")), "got %s", total)
}
