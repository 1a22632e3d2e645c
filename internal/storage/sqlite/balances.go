package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/splitmate/splitmate/internal/ledger"
)

// The balance queries feed the pure aggregation in internal/ledger. They
// always join splits back to their expense's payer and exclude both
// settled splits and the payer's own share; what remains are outstanding
// debt lines, across every group.

const debtQueryBase = `
	SELECT s.user_id, e.payer_id, s.amount_owed
	FROM splits s
	JOIN expenses e ON e.id = s.expense_id
	WHERE s.settled = 0 AND s.user_id != e.payer_id`

// DebtsBetween returns every outstanding debt line connecting the two users.
func (s *SQLiteStore) DebtsBetween(ctx context.Context, userA, userB string) ([]ledger.DebtLine, error) {
	query := debtQueryBase + `
	 AND ((s.user_id = ? AND e.payer_id = ?) OR (s.user_id = ? AND e.payer_id = ?))`
	return s.queryDebts(ctx, query, userA, userB, userB, userA)
}

// DebtsInvolving returns every outstanding debt line where the user is
// debtor or creditor.
func (s *SQLiteStore) DebtsInvolving(ctx context.Context, userID string) ([]ledger.DebtLine, error) {
	query := debtQueryBase + `
	 AND (s.user_id = ? OR e.payer_id = ?)`
	return s.queryDebts(ctx, query, userID, userID)
}

// TransfersBetween returns all settlements between the two users.
func (s *SQLiteStore) TransfersBetween(ctx context.Context, userA, userB string) ([]ledger.Transfer, error) {
	return s.queryTransfers(ctx,
		`SELECT payer_id, payee_id, amount FROM settlements
		 WHERE (payer_id = ? AND payee_id = ?) OR (payer_id = ? AND payee_id = ?)`,
		userA, userB, userB, userA)
}

// TransfersInvolving returns all settlements the user paid or received.
func (s *SQLiteStore) TransfersInvolving(ctx context.Context, userID string) ([]ledger.Transfer, error) {
	return s.queryTransfers(ctx,
		`SELECT payer_id, payee_id, amount FROM settlements
		 WHERE payer_id = ? OR payee_id = ?`,
		userID, userID)
}

// UsageEntries returns the user's owed shares with their expense timestamps.
// Settled shares are included; usage tracks what the user consumed, not
// what remains outstanding.
func (s *SQLiteStore) UsageEntries(ctx context.Context, userID string) ([]ledger.UsageEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.amount_owed, e.created_at
		 FROM splits s
		 JOIN expenses e ON e.id = s.expense_id
		 WHERE s.user_id = ?
		 ORDER BY e.created_at, s.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.UsageEntry
	for rows.Next() {
		var amount string
		var entry ledger.UsageEntry
		if err := rows.Scan(&amount, &entry.At); err != nil {
			return nil, fmt.Errorf("failed to scan usage entry: %w", err)
		}
		if entry.Amount, err = scanDecimal(amount); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate usage entries: %w", err)
	}
	return entries, nil
}

func (s *SQLiteStore) queryDebts(ctx context.Context, query string, args ...any) ([]ledger.DebtLine, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer rows.Close()
	return collectDebts(rows)
}

func collectDebts(rows *sql.Rows) ([]ledger.DebtLine, error) {
	var debts []ledger.DebtLine
	for rows.Next() {
		var debt ledger.DebtLine
		var amount string
		if err := rows.Scan(&debt.DebtorID, &debt.CreditorID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		var err error
		if debt.Amount, err = scanDecimal(amount); err != nil {
			return nil, err
		}
		debts = append(debts, debt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}
	return debts, nil
}

func (s *SQLiteStore) queryTransfers(ctx context.Context, query string, args ...any) ([]ledger.Transfer, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	var transfers []ledger.Transfer
	for rows.Next() {
		var transfer ledger.Transfer
		var amount string
		if err := rows.Scan(&transfer.PayerID, &transfer.PayeeID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		if transfer.Amount, err = scanDecimal(amount); err != nil {
			return nil, err
		}
		transfers = append(transfers, transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfers: %w", err)
	}
	return transfers, nil
}
