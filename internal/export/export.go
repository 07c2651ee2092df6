// Package export writes stored transactions and category statistics out in
// portable formats, and re-imports previously exported data through the
// same dedup gate the CSV pipeline uses.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/abnew123/expense-ledger/internal/logging"
	"github.com/abnew123/expense-ledger/internal/models"
	"github.com/abnew123/expense-ledger/internal/storage"
)

// Exporter reads from the store and writes portable representations.
type Exporter struct {
	store *storage.Store
	log   logging.Logger
}

// New creates an Exporter.
func New(store *storage.Store, logger logging.Logger) *Exporter {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Exporter{store: store, log: logger}
}

// TransactionsCSV writes all stored transactions to w in the canonical CSV
// layout.
func (e *Exporter) TransactionsCSV(ctx context.Context, w io.Writer) error {
	txs, err := e.store.ListTransactions(ctx, storage.Filter{})
	if err != nil {
		return err
	}
	if err := gocsv.Marshal(&txs, w); err != nil {
		return fmt.Errorf("error writing transactions CSV: %w", err)
	}
	e.log.Info("Exported transactions to CSV", logging.Field{Key: "count", Value: len(txs)})
	return nil
}

// TransactionsJSON writes all stored transactions to w as JSON.
func (e *Exporter) TransactionsJSON(ctx context.Context, w io.Writer, pretty bool) error {
	txs, err := e.store.ListTransactions(ctx, storage.Filter{})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(txs); err != nil {
		return fmt.Errorf("error writing transactions JSON: %w", err)
	}
	e.log.Info("Exported transactions to JSON", logging.Field{Key: "count", Value: len(txs)})
	return nil
}

// CategoryStatsCSV writes the computed per-category statistics to w.
func (e *Exporter) CategoryStatsCSV(ctx context.Context, w io.Writer) error {
	stats, err := e.store.CategoryStats(ctx)
	if err != nil {
		return err
	}
	if err := gocsv.Marshal(&stats, w); err != nil {
		return fmt.Errorf("error writing category stats CSV: %w", err)
	}
	return nil
}

// ImportJSON reads transactions previously exported as JSON and inserts the
// ones not already stored. Returns inserted and skipped counts.
func (e *Exporter) ImportJSON(ctx context.Context, content []byte) (int, int, error) {
	var txs []models.Transaction
	if err := json.Unmarshal(content, &txs); err != nil {
		return 0, 0, fmt.Errorf("error parsing JSON import: %w", err)
	}
	return e.importTransactions(ctx, txs)
}

// ImportCSV reads transactions previously exported in the canonical CSV
// layout and inserts the ones not already stored.
func (e *Exporter) ImportCSV(ctx context.Context, content string) (int, int, error) {
	var txs []models.Transaction
	if err := gocsv.UnmarshalString(content, &txs); err != nil {
		return 0, 0, fmt.Errorf("error parsing CSV import: %w", err)
	}
	return e.importTransactions(ctx, txs)
}

func (e *Exporter) importTransactions(ctx context.Context, txs []models.Transaction) (int, int, error) {
	seen := make(map[string]bool, len(txs))
	candidates := make([]models.Transaction, 0, len(txs))
	fingerprints := make([]string, 0, len(txs))
	skipped := 0
	for i := range txs {
		tx := txs[i]
		tx.ID = 0 // storage assigns IDs
		if err := tx.Validate(); err != nil {
			return 0, 0, fmt.Errorf("invalid transaction in import: %w", err)
		}
		fp := tx.Fingerprint()
		if seen[fp] {
			skipped++
			continue
		}
		seen[fp] = true
		candidates = append(candidates, tx)
		fingerprints = append(fingerprints, fp)
	}

	existing, err := e.store.ExistingFingerprints(ctx, fingerprints)
	if err != nil {
		return 0, 0, err
	}

	fresh := make([]models.Transaction, 0, len(candidates))
	for _, tx := range candidates {
		if existing[tx.Fingerprint()] {
			skipped++
			continue
		}
		fresh = append(fresh, tx)
	}

	if _, err := e.store.InsertBatch(ctx, fresh); err != nil {
		return 0, 0, err
	}
	return len(fresh), skipped, nil
}
