package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitmate/splitmate/internal/ledger"
	"github.com/splitmate/splitmate/internal/models"
	"github.com/splitmate/splitmate/internal/storage"
)

// Recorder counts ledger operations for monitoring. The HTTP layer has its
// own request metrics; these track domain events regardless of transport.
type Recorder interface {
	RecordExpenseCreated()
	RecordSettlementRecorded()
	RecordSplitSettled()
}

// nopRecorder is used when no metrics collector is wired in (tests).
type nopRecorder struct{}

func (nopRecorder) RecordExpenseCreated()     {}
func (nopRecorder) RecordSettlementRecorded() {}
func (nopRecorder) RecordSplitSettled()       {}

// LedgerService implements the command/query surface of the ledger core:
// expense creation, settlements, and every balance-derived read. All user
// identity comes in as explicit IDs; the service never reads ambient state.
type LedgerService struct {
	store   storage.Store
	metrics Recorder
}

// NewLedgerService creates a LedgerService with the given storage backend.
func NewLedgerService(store storage.Store, metrics Recorder) *LedgerService {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &LedgerService{store: store, metrics: metrics}
}

// CreateExpense records an expense paid by payerID and split equally among
// the participants. The expense and its splits are persisted atomically;
// on any validation failure nothing is persisted.
//
// The payer's own split (when the payer participates) is marked settled at
// creation: their share is a cost they already covered, not a debt.
func (s *LedgerService) CreateExpense(ctx context.Context, groupID, payerID, description string, amount decimal.Decimal, participantIDs []string) (*models.Expense, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, models.NewValidationError("description is required")
	}
	if payerID == "" {
		return nil, models.NewValidationError("payer is required")
	}

	shares, err := ledger.ComputeSplits(amount, participantIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	expense := &models.Expense{
		GroupID:     groupID,
		Description: description,
		Amount:      amount,
		PayerID:     payerID,
		CreatedAt:   now,
		Splits:      make([]models.Split, len(shares)),
	}
	for i, share := range shares {
		split := models.Split{
			UserID:     share.UserID,
			AmountOwed: share.Amount,
		}
		if share.UserID == payerID {
			split.Settled = true
			split.SettledAt = now
		}
		expense.Splits[i] = split
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "group_id", groupID, "payer_id", payerID, "error", err)
		return nil, err
	}

	s.metrics.RecordExpenseCreated()
	slog.Info("Expense created",
		"expense_id", expense.ID,
		"group_id", groupID,
		"amount", amount.String(),
		"participants", len(expense.Splits),
	)
	return expense, nil
}

// GetExpense retrieves an expense including its splits.
func (s *LedgerService) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, expenseID)
}

// ListGroupExpenses lists a group's expenses, newest first.
func (s *LedgerService) ListGroupExpenses(ctx context.Context, groupID string) ([]*models.Expense, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByGroup(ctx, groupID)
}

// DeleteExpense removes an expense and its splits. Derived balances
// recompute automatically since aggregation always runs over history.
func (s *LedgerService) DeleteExpense(ctx context.Context, expenseID string) error {
	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		return err
	}
	slog.Info("Expense deleted", "expense_id", expenseID)
	return nil
}

// RecordSettlement appends an immutable settlement from payer to payee.
// It never fails for "insufficient debt": overshooting and flipping the
// net balance is a valid prepayment.
func (s *LedgerService) RecordSettlement(ctx context.Context, payerID, payeeID string, amount decimal.Decimal, note string) (*models.Settlement, error) {
	if amount.Sign() <= 0 {
		return nil, models.NewValidationError("settlement amount must be positive, got %s", amount)
	}
	if !amount.Equal(amount.Round(2)) {
		return nil, models.NewValidationError("settlement amount %s has more than 2 decimal places", amount)
	}
	if payerID == payeeID {
		return nil, models.NewValidationError("payer and payee must differ")
	}
	if _, err := s.store.GetUserByID(ctx, payerID); err != nil {
		return nil, err
	}
	if _, err := s.store.GetUserByID(ctx, payeeID); err != nil {
		return nil, err
	}

	settlement := &models.Settlement{
		PayerID: payerID,
		PayeeID: payeeID,
		Amount:  amount,
		Note:    note,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "payer_id", payerID, "payee_id", payeeID, "error", err)
		return nil, err
	}

	s.metrics.RecordSettlementRecorded()
	slog.Info("Settlement recorded",
		"settlement_id", settlement.ID,
		"payer_id", payerID,
		"payee_id", payeeID,
		"amount", amount.String(),
	)
	return settlement, nil
}

// SettleSplit marks one individual debt line as paid. It does not create a
// Settlement record; the two mechanisms are deliberately independent.
// Settling an already-settled split is a ConflictError and changes nothing.
func (s *LedgerService) SettleSplit(ctx context.Context, splitID string) (*models.Split, error) {
	split, err := s.store.MarkSplitSettled(ctx, splitID, time.Now().Unix())
	if err != nil {
		return nil, err
	}
	s.metrics.RecordSplitSettled()
	slog.Info("Split settled", "split_id", splitID, "user_id", split.UserID)
	return split, nil
}

// ListSettlements lists settlements the user paid or received, newest first.
func (s *LedgerService) ListSettlements(ctx context.Context, userID string) ([]*models.Settlement, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListSettlementsByUser(ctx, userID)
}

// NetBalance computes the signed balance between two users across all
// shared groups and settlements. Positive means userB owes userA.
func (s *LedgerService) NetBalance(ctx context.Context, userA, userB string) (decimal.Decimal, error) {
	if userA == userB {
		return decimal.Decimal{}, models.NewValidationError("users must differ")
	}
	if _, err := s.store.GetUserByID(ctx, userA); err != nil {
		return decimal.Decimal{}, err
	}
	if _, err := s.store.GetUserByID(ctx, userB); err != nil {
		return decimal.Decimal{}, err
	}

	debts, err := s.store.DebtsBetween(ctx, userA, userB)
	if err != nil {
		return decimal.Decimal{}, err
	}
	transfers, err := s.store.TransfersBetween(ctx, userA, userB)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return ledger.NetBalance(userA, userB, debts, transfers), nil
}

// CounterpartySummary is one row of a user's balance breakdown, enriched
// with the counterparty's profile for display.
type CounterpartySummary struct {
	User    *models.User
	Balance ledger.CounterpartyBalance
}

// PortfolioBalance aggregates the user's position across all counterparties
// and returns the totals plus a per-counterparty breakdown ordered by
// absolute net descending.
//
// If a counterparty referenced by the history cannot be loaded, that is
// surfaced as a NotFoundError rather than silently producing a number that
// hides inconsistent data.
func (s *LedgerService) PortfolioBalance(ctx context.Context, userID string) (ledger.PortfolioBalance, []CounterpartySummary, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return ledger.PortfolioBalance{}, nil, err
	}

	debts, err := s.store.DebtsInvolving(ctx, userID)
	if err != nil {
		return ledger.PortfolioBalance{}, nil, err
	}
	transfers, err := s.store.TransfersInvolving(ctx, userID)
	if err != nil {
		return ledger.PortfolioBalance{}, nil, err
	}

	totals, breakdown := ledger.Portfolio(userID, debts, transfers)
	summaries := make([]CounterpartySummary, len(breakdown))
	for i, entry := range breakdown {
		counterparty, err := s.store.GetUserByID(ctx, entry.UserID)
		if err != nil {
			return ledger.PortfolioBalance{}, nil, err
		}
		summaries[i] = CounterpartySummary{User: counterparty, Balance: entry}
	}
	return totals, summaries, nil
}

// History lists expenses the user paid or participated in, across all
// groups, in the requested order (date, -date, amount, -amount).
func (s *LedgerService) History(ctx context.Context, userID string, ordering string) ([]*models.Expense, error) {
	if ordering == "" {
		ordering = string(storage.OrderDateDesc)
	}
	order := storage.ExpenseOrder(ordering)
	if !order.Valid() {
		return nil, models.NewValidationError("unsupported ordering %q", ordering)
	}
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByUser(ctx, userID, order)
}

// MonthlyUsage sums the user's owed shares per calendar month, for trend
// display.
func (s *LedgerService) MonthlyUsage(ctx context.Context, userID string) ([]ledger.MonthlyTotal, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	entries, err := s.store.UsageEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ledger.MonthlyUsage(entries), nil
}
