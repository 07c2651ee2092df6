// Package pipeline orchestrates ingestion: detect the format of uploaded
// CSV content, normalize every row, partition against already-stored
// transactions, and commit the survivors in one atomic batch.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/abnew123/expense-ledger/internal/formats"
	"github.com/abnew123/expense-ledger/internal/logging"
	"github.com/abnew123/expense-ledger/internal/models"
	"github.com/abnew123/expense-ledger/internal/parsererror"
	"github.com/abnew123/expense-ledger/internal/storage"
)

// ImportSummary reports the outcome of one ingestion run. Row-level errors
// are collected for display; they never abort sibling rows.
type ImportSummary struct {
	BatchID  string
	Inserted int
	Skipped  int
	Errors   []*parsererror.RowError
}

// Pipeline wires the format registry to the store.
type Pipeline struct {
	store    *storage.Store
	registry *formats.Registry
	log      logging.Logger
}

// New creates an ingestion pipeline.
func New(store *storage.Store, registry *formats.Registry, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Pipeline{store: store, registry: registry, log: logger}
}

// Ingest runs the full sequence on raw CSV content: detect format
// (whole-file failure), normalize rows (collecting per-row errors),
// deduplicate within the batch and against durable storage, and persist
// the new rows atomically.
func (p *Pipeline) Ingest(ctx context.Context, content string) (*ImportSummary, error) {
	batchID := uuid.NewString()
	log := p.log.WithField("batch", batchID)

	records, err := formats.ReadRecords(content)
	if err != nil {
		return nil, fmt.Errorf("error reading upload: %w", err)
	}

	format, err := p.registry.DetectRecords(records)
	if err != nil {
		log.WithError(err).Error("Format detection failed")
		return nil, err
	}
	log.Info("Detected format", logging.Field{Key: "format", Value: format.Name()})

	txs, rowErrs := format.Parse(records)

	fresh, skipped, err := p.partition(ctx, txs)
	if err != nil {
		return nil, err
	}

	if _, err := p.store.InsertBatch(ctx, fresh); err != nil {
		return nil, err
	}

	summary := &ImportSummary{
		BatchID:  batchID,
		Inserted: len(fresh),
		Skipped:  skipped,
		Errors:   rowErrs,
	}
	log.Info("Import completed",
		logging.Field{Key: "inserted", Value: summary.Inserted},
		logging.Field{Key: "skipped", Value: summary.Skipped},
		logging.Field{Key: "errors", Value: len(summary.Errors)})
	return summary, nil
}

// partition splits normalized transactions into genuinely new rows and
// duplicates. Fingerprint collisions are checked within the batch first,
// then against durable storage, so re-uploading an overlapping date range
// only adds the new tail.
func (p *Pipeline) partition(ctx context.Context, txs []models.Transaction) ([]models.Transaction, int, error) {
	if len(txs) == 0 {
		return nil, 0, nil
	}

	seen := make(map[string]bool, len(txs))
	candidates := make([]models.Transaction, 0, len(txs))
	fingerprints := make([]string, 0, len(txs))
	skipped := 0
	for _, tx := range txs {
		fp := tx.Fingerprint()
		if seen[fp] {
			skipped++
			continue
		}
		seen[fp] = true
		candidates = append(candidates, tx)
		fingerprints = append(fingerprints, fp)
	}

	existing, err := p.store.ExistingFingerprints(ctx, fingerprints)
	if err != nil {
		return nil, 0, err
	}

	fresh := make([]models.Transaction, 0, len(candidates))
	for _, tx := range candidates {
		if existing[tx.Fingerprint()] {
			skipped++
			continue
		}
		fresh = append(fresh, tx)
	}
	return fresh, skipped, nil
}
