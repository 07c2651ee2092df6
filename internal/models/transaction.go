// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents one imported financial event in the canonical
// schema, independent of the bank format it was normalized from.
type Transaction struct {
	ID              int64           `csv:"-" json:"id"`
	TransactionDate string          `csv:"Transaction Date" json:"transaction_date"` // ISO-8601 (YYYY-MM-DD)
	PostDate        string          `csv:"Post Date" json:"post_date"`               // ISO-8601, >= TransactionDate
	Description     string          `csv:"Description" json:"description"`
	Category        string          `csv:"Category" json:"category"`
	Type            string          `csv:"Type" json:"type"` // Sale or Payment
	Amount          decimal.Decimal `csv:"Amount" json:"amount"`
	Memo            string          `csv:"Memo" json:"memo,omitempty"`
}

// Validate checks the canonical-record invariants. The category falls back
// to CategoryUncategorized instead of failing.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("description cannot be empty")
	}
	if t.Amount.IsZero() {
		return fmt.Errorf("amount cannot be zero")
	}
	if _, err := time.Parse(DateLayoutISO, t.TransactionDate); err != nil {
		return fmt.Errorf("invalid transaction date %q: %w", t.TransactionDate, err)
	}
	if t.PostDate == "" {
		t.PostDate = t.TransactionDate
	}
	if _, err := time.Parse(DateLayoutISO, t.PostDate); err != nil {
		return fmt.Errorf("invalid post date %q: %w", t.PostDate, err)
	}
	if t.PostDate < t.TransactionDate {
		return fmt.Errorf("post date %s precedes transaction date %s", t.PostDate, t.TransactionDate)
	}
	if strings.TrimSpace(t.Category) == "" {
		t.Category = CategoryUncategorized
	}
	return nil
}

// Fingerprint returns the deterministic identity key used for duplicate
// detection across imports. Memo and category are deliberately excluded:
// both may legitimately change between exports of the same window.
func (t Transaction) Fingerprint() string {
	return strings.Join([]string{
		t.TransactionDate,
		NormalizeDescription(t.Description),
		t.Amount.StringFixed(2),
		t.Type,
	}, "|")
}

// IsExpense reports whether the transaction is an outflow (negative amount).
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// IsPayment reports whether the transaction is an inflow (positive amount).
func (t *Transaction) IsPayment() bool {
	return t.Amount.IsPositive()
}

// NormalizeDescription produces the stable canonical form used in
// fingerprints: trimmed, case-folded, internal whitespace collapsed.
func NormalizeDescription(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeType maps a bank-specific type label to TypeSale or TypePayment.
// Unknown or empty labels are inferred from the amount sign: negative
// amounts are sales (expenses), positive amounts are payments.
func NormalizeType(label string, amount decimal.Decimal) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "sale", "purchase", "debit", "withdrawal", "fee":
		return TypeSale
	case "payment", "credit", "deposit", "refund", "return":
		return TypePayment
	}
	if amount.IsNegative() {
		return TypeSale
	}
	return TypePayment
}

// ParseAmount parses a string amount to decimal.Decimal, tolerating the
// currency symbols and separators that show up in bank exports.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "$", "")
	amount = strings.ReplaceAll(amount, ",", "")
	amount = strings.Trim(amount, "\"")

	// Accounting notation: (4.75) means -4.75
	if strings.HasPrefix(amount, "(") && strings.HasSuffix(amount, ")") {
		amount = "-" + strings.TrimSuffix(strings.TrimPrefix(amount, "("), ")")
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}
	return dec, nil
}
