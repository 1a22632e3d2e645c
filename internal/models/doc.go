// Package models defines the core domain entities of the splitmate ledger.
//
// The ledger records a stream of immutable facts (expenses with their
// per-participant splits, and settlements between users), and every balance
// shown anywhere in the product is derived from that history. Nothing in
// this package carries behavior beyond construction and validation helpers;
// the algorithms live in internal/ledger.
//
// Ownership rules:
//   - Users are referenced by every other entity and owned by none of them.
//   - Groups own their member list.
//   - Expenses own their Splits; the two are created atomically and a Split
//     never outlives its Expense. The only mutation a Split ever sees is
//     flipping its Settled flag.
//   - Settlements are standalone append-only rows, not tied to any Expense.
//
// All monetary amounts are decimal.Decimal with two decimal places. Floats
// are never used for money.
package models
