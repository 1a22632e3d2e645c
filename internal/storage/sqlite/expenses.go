package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitmate/splitmate/internal/models"
	"github.com/splitmate/splitmate/internal/storage"
)

// CreateExpense persists an expense and all its splits in one transaction.
// Membership of the payer and every debtor is verified inside the same
// transaction, so a failed validation leaves no partial state and readers
// never observe an expense without its full set of splits.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM groups WHERE id = ?", expense.GroupID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewNotFoundError("group", expense.GroupID)
	}
	if err != nil {
		return fmt.Errorf("failed to check group existence: %w", err)
	}

	members, err := txMemberSet(ctx, tx, expense.GroupID)
	if err != nil {
		return err
	}
	if _, ok := members[expense.PayerID]; !ok {
		return models.NewValidationError("payer %s is not a member of group %s", expense.PayerID, expense.GroupID)
	}
	for _, split := range expense.Splits {
		if _, ok := members[split.UserID]; !ok {
			return models.NewValidationError("participant %s is not a member of group %s", split.UserID, expense.GroupID)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, amount, payer_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, expense.Amount.String(),
		expense.PayerID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range expense.Splits {
		split := &expense.Splits[i]
		if split.ID == "" {
			split.ID = uuid.New().String()
		}
		split.ExpenseID = expense.ID

		_, err = tx.ExecContext(ctx,
			`INSERT INTO splits (id, expense_id, user_id, amount_owed, settled, settled_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			split.ID, split.ExpenseID, split.UserID, split.AmountOwed.String(),
			boolToInt(split.Settled), split.SettledAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense including its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense := &models.Expense{}
	var amount string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, description, amount, payer_id, created_at
		 FROM expenses WHERE id = ?`, id,
	).Scan(&expense.ID, &expense.GroupID, &expense.Description, &amount,
		&expense.PayerID, &expense.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("expense", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	if expense.Amount, err = scanDecimal(amount); err != nil {
		return nil, err
	}

	splits, err := s.expenseSplits(ctx, expense.ID)
	if err != nil {
		return nil, err
	}
	expense.Splits = splits
	return expense, nil
}

// ListExpensesByGroup lists a group's expenses with splits, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT id, group_id, description, amount, payer_id, created_at
		 FROM expenses WHERE group_id = ?
		 ORDER BY created_at DESC, id`,
		groupID,
	)
}

// ListExpensesByUser lists expenses where the user is payer or participant,
// across all groups.
func (s *SQLiteStore) ListExpensesByUser(ctx context.Context, userID string, order storage.ExpenseOrder) ([]*models.Expense, error) {
	var orderBy string
	switch order {
	case storage.OrderDateAsc:
		orderBy = "created_at ASC, id"
	case storage.OrderDateDesc:
		orderBy = "created_at DESC, id"
	case storage.OrderAmountAsc:
		orderBy = "CAST(amount AS REAL) ASC, id"
	case storage.OrderAmountDesc:
		orderBy = "CAST(amount AS REAL) DESC, id"
	default:
		return nil, models.NewValidationError("unsupported ordering %q", string(order))
	}

	// CAST to REAL is used for ordering only; amounts themselves are
	// returned from the exact TEXT column.
	query := fmt.Sprintf(
		`SELECT id, group_id, description, amount, payer_id, created_at
		 FROM expenses
		 WHERE payer_id = ? OR id IN (SELECT expense_id FROM splits WHERE user_id = ?)
		 ORDER BY %s`, orderBy)
	return s.listExpenses(ctx, query, userID, userID)
}

// DeleteExpense removes an expense; its splits cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return models.NewNotFoundError("expense", id)
	}
	return nil
}

// MarkSplitSettled flips a split's settled flag. A second settle attempt
// is a ConflictError and changes nothing.
func (s *SQLiteStore) MarkSplitSettled(ctx context.Context, splitID string, settledAt int64) (*models.Split, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	split := &models.Split{}
	var amount string
	var settled int
	err = tx.QueryRowContext(ctx,
		`SELECT id, expense_id, user_id, amount_owed, settled, settled_at
		 FROM splits WHERE id = ?`, splitID,
	).Scan(&split.ID, &split.ExpenseID, &split.UserID, &amount, &settled, &split.SettledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("split", splitID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get split: %w", err)
	}
	if split.AmountOwed, err = scanDecimal(amount); err != nil {
		return nil, err
	}
	if settled != 0 {
		return nil, models.NewConflictError("split %s is already settled", splitID)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE splits SET settled = 1, settled_at = ? WHERE id = ?",
		settledAt, splitID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to settle split: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	split.Settled = true
	split.SettledAt = settledAt
	return split, nil
}

func (s *SQLiteStore) listExpenses(ctx context.Context, query string, args ...any) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var amount string
		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.Description,
			&amount, &expense.PayerID, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if expense.Amount, err = scanDecimal(amount); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		splits, err := s.expenseSplits(ctx, expense.ID)
		if err != nil {
			return nil, err
		}
		expense.Splits = splits
	}
	return expenses, nil
}

func (s *SQLiteStore) expenseSplits(ctx context.Context, expenseID string) ([]models.Split, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, expense_id, user_id, amount_owed, settled, settled_at
		 FROM splits WHERE expense_id = ? ORDER BY user_id`,
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []models.Split
	for rows.Next() {
		var split models.Split
		var amount string
		var settled int
		if err := rows.Scan(&split.ID, &split.ExpenseID, &split.UserID,
			&amount, &settled, &split.SettledAt); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if split.AmountOwed, err = scanDecimal(amount); err != nil {
			return nil, err
		}
		split.Settled = settled != 0
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}

func txMemberSet(ctx context.Context, tx *sql.Tx, groupID string) (map[string]struct{}, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT user_id FROM group_members WHERE group_id = ?", groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	members := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		members[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return members, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
