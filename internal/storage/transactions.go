package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/abnew123/expense-ledger/internal/logging"
	"github.com/abnew123/expense-ledger/internal/models"
	"github.com/abnew123/expense-ledger/internal/parsererror"
)

const insertTransactionSQL = `
INSERT INTO transactions
  (transaction_date, post_date, description, category, tx_type, amount, memo, fingerprint)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// InsertBatch persists the given transactions in a single transaction:
// either all rows are committed or none are. Assigned IDs are returned in
// input order.
func (s *Store) InsertBatch(ctx context.Context, txs []models.Transaction) ([]int64, error) {
	if len(txs) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &parsererror.PersistenceError{Op: "batch insert", Err: err}
	}
	defer func() { _ = dbTx.Rollback() }()

	stmt, err := dbTx.PrepareContext(ctx, insertTransactionSQL)
	if err != nil {
		return nil, &parsererror.PersistenceError{Op: "batch insert", Err: err}
	}
	defer func() { _ = stmt.Close() }()

	ids := make([]int64, 0, len(txs))
	for i := range txs {
		res, err := stmt.ExecContext(ctx,
			txs[i].TransactionDate,
			txs[i].PostDate,
			txs[i].Description,
			txs[i].Category,
			txs[i].Type,
			txs[i].Amount.StringFixed(2),
			txs[i].Memo,
			txs[i].Fingerprint(),
		)
		if err != nil {
			return nil, &parsererror.PersistenceError{Op: "batch insert", Err: err}
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, &parsererror.PersistenceError{Op: "batch insert", Err: err}
		}
		ids = append(ids, id)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, &parsererror.PersistenceError{Op: "batch insert", Err: err}
	}

	s.log.Info("Inserted transactions", logging.Field{Key: "count", Value: len(ids)})
	return ids, nil
}

// fingerprintChunkSize bounds the IN clause of the dedup lookup.
const fingerprintChunkSize = 500

// ExistingFingerprints returns the subset of the given fingerprints already
// present in durable storage.
func (s *Store) ExistingFingerprints(ctx context.Context, fingerprints []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	for start := 0; start < len(fingerprints); start += fingerprintChunkSize {
		end := start + fingerprintChunkSize
		if end > len(fingerprints) {
			end = len(fingerprints)
		}
		chunk := fingerprints[start:end]

		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(chunk)), ",")
		query := fmt.Sprintf("SELECT DISTINCT fingerprint FROM transactions WHERE fingerprint IN (%s)", placeholders)

		args := make([]interface{}, len(chunk))
		for i, fp := range chunk {
			args[i] = fp
		}

		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, &parsererror.PersistenceError{Op: "fingerprint lookup", Err: err}
		}
		for rows.Next() {
			var fp string
			if err := rows.Scan(&fp); err != nil {
				_ = rows.Close()
				return nil, &parsererror.PersistenceError{Op: "fingerprint lookup", Err: err}
			}
			existing[fp] = true
		}
		if err := rows.Err(); err != nil {
			_ = rows.Close()
			return nil, &parsererror.PersistenceError{Op: "fingerprint lookup", Err: err}
		}
		_ = rows.Close()
	}
	return existing, nil
}

// Filter narrows ListTransactions. Zero values mean "no constraint".
type Filter struct {
	From     string // inclusive ISO date
	To       string // inclusive ISO date
	Category string
}

// ListTransactions returns stored transactions matching the filter, newest
// first.
func (s *Store) ListTransactions(ctx context.Context, f Filter) ([]models.Transaction, error) {
	query := `SELECT id, transaction_date, post_date, description, category, tx_type, amount, memo
	          FROM transactions`
	var clauses []string
	var args []interface{}
	if f.From != "" {
		clauses = append(clauses, "transaction_date >= ?")
		args = append(args, f.From)
	}
	if f.To != "" {
		clauses = append(clauses, "transaction_date <= ?")
		args = append(args, f.To)
	}
	if f.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, f.Category)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY transaction_date DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &parsererror.PersistenceError{Op: "list transactions", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var txs []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, &parsererror.PersistenceError{Op: "list transactions", Err: err}
	}
	return txs, nil
}

// Count returns the total number of stored transactions.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&count); err != nil {
		return 0, &parsererror.PersistenceError{Op: "count transactions", Err: err}
	}
	return count, nil
}

func scanTransaction(rows *sql.Rows) (models.Transaction, error) {
	var tx models.Transaction
	var amountStr string
	if err := rows.Scan(&tx.ID, &tx.TransactionDate, &tx.PostDate, &tx.Description,
		&tx.Category, &tx.Type, &amountStr, &tx.Memo); err != nil {
		return models.Transaction{}, &parsererror.PersistenceError{Op: "scan transaction", Err: err}
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return models.Transaction{}, &parsererror.PersistenceError{Op: "scan transaction", Err: err}
	}
	tx.Amount = amount
	return tx, nil
}
