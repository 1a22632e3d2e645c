// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"

	"github.com/splitmate/splitmate/internal/ledger"
	"github.com/splitmate/splitmate/internal/models"
)

// ExpenseOrder selects the ordering of expense history listings.
type ExpenseOrder string

const (
	OrderDateAsc    ExpenseOrder = "date"
	OrderDateDesc   ExpenseOrder = "-date"
	OrderAmountAsc  ExpenseOrder = "amount"
	OrderAmountDesc ExpenseOrder = "-amount"
)

// Valid reports whether the ordering is one of the supported values.
func (o ExpenseOrder) Valid() bool {
	switch o {
	case OrderDateAsc, OrderDateDesc, OrderAmountAsc, OrderAmountDesc:
		return true
	}
	return false
}

// Store defines the persistence operations of the ledger core.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user; returns a NotFoundError if absent.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no
	// such user exists, since callers use it as an existence check.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateUser updates display name and email of an existing user.
	UpdateUser(ctx context.Context, user *models.User) error

	// SetPasswordHash stores a new credential hash for the user. Used when
	// a placeholder member registers and claims their account.
	SetPasswordHash(ctx context.Context, userID, hash string) error

	// CreateGroup persists a new group with its initial member set.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group and its member IDs.
	GetGroup(ctx context.Context, id string) (*models.Group, error)

	// ListGroupsByMember lists all groups the user belongs to.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// AddGroupMember adds a user to a group. Adding an existing member is
	// a no-op. Existing expenses and splits are never touched.
	AddGroupMember(ctx context.Context, groupID, userID string) error

	// DeleteGroup removes a group, cascading to its expenses and splits.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreateExpense persists an expense together with all its splits in a
	// single transaction, after verifying inside that transaction that the
	// payer and every split's debtor are members of the group. A failure
	// leaves no partial state; a reader never observes an expense without
	// its full set of splits.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense including its splits.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// ListExpensesByGroup lists a group's expenses with splits, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// ListExpensesByUser lists expenses where the user is payer or
	// participant, across all groups, in the given order.
	ListExpensesByUser(ctx context.Context, userID string, order ExpenseOrder) ([]*models.Expense, error)

	// DeleteExpense removes an expense and its splits.
	DeleteExpense(ctx context.Context, id string) error

	// MarkSplitSettled flips a split's settled flag. Returns a
	// NotFoundError for an unknown split and a ConflictError if the split
	// is already settled (state unchanged).
	MarkSplitSettled(ctx context.Context, splitID string, settledAt int64) (*models.Split, error)

	// CreateSettlement appends an immutable settlement row.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsByUser lists settlements the user paid or received,
	// newest first.
	ListSettlementsByUser(ctx context.Context, userID string) ([]*models.Settlement, error)

	// DebtsBetween returns every outstanding debt line connecting the two
	// users, across all groups. A payer's own split is never a debt line.
	DebtsBetween(ctx context.Context, userA, userB string) ([]ledger.DebtLine, error)

	// DebtsInvolving returns every outstanding debt line where the user is
	// debtor or creditor.
	DebtsInvolving(ctx context.Context, userID string) ([]ledger.DebtLine, error)

	// TransfersBetween returns all settlements between the two users.
	TransfersBetween(ctx context.Context, userA, userB string) ([]ledger.Transfer, error)

	// TransfersInvolving returns all settlements the user paid or received.
	TransfersInvolving(ctx context.Context, userID string) ([]ledger.Transfer, error)

	// UsageEntries returns the user's owed shares (settled or not) paired
	// with their expense timestamps, for monthly trend rollups.
	UsageEntries(ctx context.Context, userID string) ([]ledger.UsageEntry, error)

	// Close releases any resources held by the store.
	Close() error
}
