package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abnew123/expense-ledger/internal/formats"
	"github.com/abnew123/expense-ledger/internal/logging"
	"github.com/abnew123/expense-ledger/internal/parsererror"
	"github.com/abnew123/expense-ledger/internal/storage"
)

func newTestPipeline(t *testing.T) (*Pipeline, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"), logging.NewMockLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return New(store, formats.DefaultRegistry(), logging.NewMockLogger()), store
}

const chaseUpload = `Transaction Date,Post Date,Description,Category,Type,Amount,Memo
01/15/2024,01/16/2024,STARBUCKS,Food,Sale,-4.75,
01/18/2024,01/19/2024,GROCERY OUTLET,Groceries,Sale,-32.40,
01/20/2024,01/20/2024,PAYMENT THANK YOU,,Payment,250.00,
`

func TestIngest(t *testing.T) {
	p, store := newTestPipeline(t)
	ctx := context.Background()

	summary, err := p.Ingest(ctx, chaseUpload)
	require.NoError(t, err)
	assert.NotEmpty(t, summary.BatchID)
	assert.Equal(t, 3, summary.Inserted)
	assert.Zero(t, summary.Skipped)
	assert.Empty(t, summary.Errors)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestIngestIsIdempotent(t *testing.T) {
	p, store := newTestPipeline(t)
	ctx := context.Background()

	first, err := p.Ingest(ctx, chaseUpload)
	require.NoError(t, err)
	require.Equal(t, 3, first.Inserted)

	// The exact same file again: everything is a duplicate.
	second, err := p.Ingest(ctx, chaseUpload)
	require.NoError(t, err)
	assert.Zero(t, second.Inserted)
	assert.Equal(t, 3, second.Skipped)
	assert.NotEqual(t, first.BatchID, second.BatchID)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestIngestOverlappingUpload(t *testing.T) {
	p, _ := newTestPipeline(t)
	ctx := context.Background()

	_, err := p.Ingest(ctx, chaseUpload)
	require.NoError(t, err)

	// A later export overlapping the first: only the new tail lands.
	overlap := `Transaction Date,Post Date,Description,Category,Type,Amount,Memo
01/20/2024,01/20/2024,PAYMENT THANK YOU,,Payment,250.00,
02/01/2024,02/02/2024,GAS STATION,Gas,Sale,-50.00,
`
	summary, err := p.Ingest(ctx, overlap)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)
	assert.Equal(t, 1, summary.Skipped)
}

func TestIngestDeduplicatesWithinBatch(t *testing.T) {
	p, _ := newTestPipeline(t)

	doubled := `Transaction Date,Post Date,Description,Category,Type,Amount,Memo
01/15/2024,01/16/2024,STARBUCKS,Food,Sale,-4.75,
01/15/2024,01/16/2024,STARBUCKS,Food,Sale,-4.75,
`
	summary, err := p.Ingest(context.Background(), doubled)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)
	assert.Equal(t, 1, summary.Skipped)
}

func TestIngestCollectsRowErrors(t *testing.T) {
	p, store := newTestPipeline(t)
	ctx := context.Background()

	mixed := `Transaction Date,Post Date,Description,Category,Type,Amount,Memo
01/15/2024,01/16/2024,STARBUCKS,Food,Sale,-4.75,
bogus,01/16/2024,BAD DATE,Food,Sale,-1.00,
01/17/2024,01/17/2024,BAD AMOUNT,Food,Sale,oops,
`
	summary, err := p.Ingest(ctx, mixed)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)
	require.Len(t, summary.Errors, 2)
	assert.Equal(t, parsererror.ReasonBadDate, summary.Errors[0].Reason)
	assert.Equal(t, parsererror.ReasonBadAmount, summary.Errors[1].Reason)

	// The good row landed despite its broken siblings.
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestIngestRejectsBackdatedPostDate(t *testing.T) {
	p, store := newTestPipeline(t)
	ctx := context.Background()

	summary, err := p.Ingest(ctx, `Transaction Date,Post Date,Description,Category,Type,Amount,Memo
01/15/2024,01/10/2024,STARBUCKS,Food,Sale,-4.75,
`)
	require.NoError(t, err)
	assert.Zero(t, summary.Inserted)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, parsererror.ReasonBadDate, summary.Errors[0].Reason)

	// Nothing with an impossible date span reaches durable storage.
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIngestUnrecognizedFormat(t *testing.T) {
	p, store := newTestPipeline(t)
	ctx := context.Background()

	_, err := p.Ingest(ctx, "foo,bar\n1,2\n")
	var unrecognized *parsererror.UnrecognizedFormatError
	require.True(t, errors.As(err, &unrecognized), "expected UnrecognizedFormatError, got %v", err)

	// Whole-file failure: nothing persisted.
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIngestHeaderlessContent(t *testing.T) {
	p, _ := newTestPipeline(t)

	summary, err := p.Ingest(context.Background(), "01/15/2024,-4.75,STARBUCKS\n01/20/2024,250.00,PAYMENT\n")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Inserted)
}

func TestIngestCaseInsensitiveDuplicateDescriptions(t *testing.T) {
	p, _ := newTestPipeline(t)
	ctx := context.Background()

	_, err := p.Ingest(ctx, `Transaction Date,Post Date,Description,Category,Type,Amount,Memo
01/15/2024,01/16/2024,STARBUCKS  #123,Food,Sale,-4.75,
`)
	require.NoError(t, err)

	// Same transaction, different casing and spacing in the description.
	summary, err := p.Ingest(ctx, `Transaction Date,Post Date,Description,Category,Type,Amount,Memo
01/15/2024,01/16/2024,starbucks #123,Food,Sale,-4.75,
`)
	require.NoError(t, err)
	assert.Zero(t, summary.Inserted)
	assert.Equal(t, 1, summary.Skipped)
}
