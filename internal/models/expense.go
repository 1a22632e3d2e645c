package models

import "github.com/shopspring/decimal"

// Expense is a single payment made by one group member on behalf of a set
// of participants. Expenses are immutable once created; the only way to
// change derived balances is to append more history (or delete the expense,
// which removes it and its splits entirely).
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is a short human-readable label (e.g., "Dinner").
	Description string

	// Amount is the positive total paid, with two decimal places.
	Amount decimal.Decimal

	// PayerID is the group member who paid the full amount.
	PayerID string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// Splits hold each participant's owed share. They are created
	// atomically with the expense and their amounts sum exactly to Amount.
	Splits []Split
}

// Split is one participant's owed share of one expense. The payer's own
// split represents their own share of the cost and is not a debt to anyone.
type Split struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// ExpenseID is the parent expense.
	ExpenseID string

	// UserID is the participant who owes this share.
	UserID string

	// AmountOwed is this participant's share, with two decimal places.
	AmountOwed decimal.Decimal

	// Settled marks this individual debt line as paid. Settled splits are
	// excluded from outstanding-balance views but remain in history.
	Settled bool

	// SettledAt is the Unix timestamp when the split was settled, 0 if not.
	SettledAt int64
}

// IsDebt reports whether this split represents money owed to the payer,
// i.e. the debtor is someone other than the payer themselves.
func (s *Split) IsDebt(payerID string) bool {
	return s.UserID != payerID
}
