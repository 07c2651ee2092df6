package models

// Transaction types. Bank-specific labels are normalized to one of these two.
const (
	TypeSale    = "Sale"
	TypePayment = "Payment"
)

// CategoryUncategorized is the fallback category for transactions
// that arrive without one.
const CategoryUncategorized = "Uncategorized"

// DateLayoutISO is the canonical date layout for stored transactions.
const DateLayoutISO = "2006-01-02"
