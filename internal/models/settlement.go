package models

import "github.com/shopspring/decimal"

// Settlement records a payment of a fixed amount from one user to another.
// It is not tied to any expense or split: it offsets the net balance
// between the pair, and it may overshoot the outstanding debt (prepayment
// producing a reversed balance is valid). Settlement rows are append-only
// and always retained for history.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// PayerID is the user who paid (the debtor settling up).
	PayerID string

	// PayeeID is the user who received the payment.
	PayeeID string

	// Amount is the positive payment amount, with two decimal places.
	Amount decimal.Decimal

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// Note is an optional free-form description.
	Note string
}
