package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/abnew123/expense-ledger/internal/logging"
	"github.com/abnew123/expense-ledger/internal/models"
	"github.com/abnew123/expense-ledger/internal/parsererror"
)

// RenameCategory moves every transaction in oldName to newName in one
// atomic rewrite and returns the number of affected records. Records
// already in newName are merged implicitly. Fails with CategoryNotFound
// when no record currently has oldName.
func (s *Store) RenameCategory(ctx context.Context, oldName, newName string) (int64, error) {
	if strings.TrimSpace(newName) == "" {
		return 0, fmt.Errorf("new category name cannot be empty")
	}
	return s.rewriteCategory(ctx, "rename category", []string{oldName}, newName)
}

// MergeCategories moves every transaction whose category is in sourceNames
// to targetName in one atomic rewrite. targetName may or may not already
// exist. Fails with CategoryNotFound when sourceNames is empty or none of
// its members currently exist.
func (s *Store) MergeCategories(ctx context.Context, sourceNames []string, targetName string) (int64, error) {
	if strings.TrimSpace(targetName) == "" {
		return 0, fmt.Errorf("target category name cannot be empty")
	}
	if len(sourceNames) == 0 {
		return 0, &parsererror.CategoryNotFoundError{Name: "(empty source set)"}
	}
	return s.rewriteCategory(ctx, "merge categories", sourceNames, targetName)
}

// DeleteCategory reassigns every transaction in name to replacement and
// lets the category cease to exist as a grouping. No transactions are
// deleted. An empty replacement falls back to the default category.
func (s *Store) DeleteCategory(ctx context.Context, name, replacement string) (int64, error) {
	if strings.TrimSpace(replacement) == "" {
		replacement = models.CategoryUncategorized
	}
	return s.rewriteCategory(ctx, "delete category", []string{name}, replacement)
}

// rewriteCategory is the shared atomic bulk update behind rename, merge and
// delete: a single UPDATE inside a transaction, rolled back when zero rows
// qualify so the operation makes no changes at all.
func (s *Store) rewriteCategory(ctx context.Context, op string, sources []string, target string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &parsererror.PersistenceError{Op: op, Err: err}
	}
	defer func() { _ = dbTx.Rollback() }()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(sources)), ",")
	query := fmt.Sprintf(
		"UPDATE transactions SET category = ?, updated_at = CURRENT_TIMESTAMP WHERE category IN (%s)",
		placeholders)

	args := make([]interface{}, 0, len(sources)+1)
	args = append(args, target)
	for _, src := range sources {
		args = append(args, src)
	}

	res, err := dbTx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, &parsererror.PersistenceError{Op: op, Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, &parsererror.PersistenceError{Op: op, Err: err}
	}
	if affected == 0 {
		return 0, &parsererror.CategoryNotFoundError{Name: strings.Join(sources, ", ")}
	}

	if err := dbTx.Commit(); err != nil {
		return 0, &parsererror.PersistenceError{Op: op, Err: err}
	}

	s.log.Info("Category rewrite applied",
		logging.Field{Key: "op", Value: op},
		logging.Field{Key: "target", Value: target},
		logging.Field{Key: "affected", Value: affected})
	return affected, nil
}

// ListCategories returns the distinct categories currently in use, sorted.
func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT category FROM transactions WHERE category != '' ORDER BY category")
	if err != nil {
		return nil, &parsererror.PersistenceError{Op: "list categories", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, &parsererror.PersistenceError{Op: "list categories", Err: err}
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &parsererror.PersistenceError{Op: "list categories", Err: err}
	}
	return categories, nil
}

// CategoryStat is a computed summary of one category grouping. Statistics
// are derived from current transactions, never stored.
type CategoryStat struct {
	Category     string          `csv:"Category" json:"category"`
	Count        int64           `csv:"Count" json:"count"`
	ExpenseTotal decimal.Decimal `csv:"Expense Total" json:"expense_total"`
	FirstDate    string          `csv:"First Date" json:"first_date"`
	LastDate     string          `csv:"Last Date" json:"last_date"`
}

// CategoryStats computes per-category count, expense total and date span in
// a single consistent read.
func (s *Store) CategoryStats(ctx context.Context) ([]CategoryStat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, transaction_date, amount FROM transactions ORDER BY category, transaction_date`)
	if err != nil {
		return nil, &parsererror.PersistenceError{Op: "category stats", Err: err}
	}
	defer func() { _ = rows.Close() }()

	byCategory := make(map[string]*CategoryStat)
	var order []string
	for rows.Next() {
		var category, date, amountStr string
		if err := rows.Scan(&category, &date, &amountStr); err != nil {
			return nil, &parsererror.PersistenceError{Op: "category stats", Err: err}
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, &parsererror.PersistenceError{Op: "category stats", Err: err}
		}

		stat, ok := byCategory[category]
		if !ok {
			stat = &CategoryStat{Category: category, FirstDate: date, LastDate: date}
			byCategory[category] = stat
			order = append(order, category)
		}
		stat.Count++
		if amount.IsNegative() {
			stat.ExpenseTotal = stat.ExpenseTotal.Add(amount)
		}
		if date < stat.FirstDate {
			stat.FirstDate = date
		}
		if date > stat.LastDate {
			stat.LastDate = date
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &parsererror.PersistenceError{Op: "category stats", Err: err}
	}

	stats := make([]CategoryStat, 0, len(order))
	for _, category := range order {
		stats = append(stats, *byCategory[category])
	}
	return stats, nil
}
