package handler

import (
	"github.com/shopspring/decimal"

	"github.com/splitmate/splitmate/internal/ledger"
	"github.com/splitmate/splitmate/internal/models"
	"github.com/splitmate/splitmate/internal/service"
)

// Amounts cross the boundary as decimal values rendered with full 2-place
// precision (shopspring encodes them as JSON strings); nothing is ever
// truncated to float.

type userDTO struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

func toUserDTO(u *models.User) userDTO {
	return userDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

type groupDTO struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
	CreatedAt int64    `json:"created_at"`
}

func toGroupDTO(g *models.Group) groupDTO {
	return groupDTO{
		ID:        g.ID,
		Name:      g.Name,
		MemberIDs: g.MemberIDs,
		CreatedAt: g.CreatedAt,
	}
}

type splitDTO struct {
	ID         string          `json:"id"`
	ExpenseID  string          `json:"expense_id"`
	UserID     string          `json:"user_id"`
	AmountOwed decimal.Decimal `json:"amount_owed"`
	Settled    bool            `json:"settled"`
	SettledAt  int64           `json:"settled_at,omitempty"`
}

func toSplitDTO(s *models.Split) splitDTO {
	return splitDTO{
		ID:         s.ID,
		ExpenseID:  s.ExpenseID,
		UserID:     s.UserID,
		AmountOwed: s.AmountOwed,
		Settled:    s.Settled,
		SettledAt:  s.SettledAt,
	}
}

type expenseDTO struct {
	ID          string          `json:"id"`
	GroupID     string          `json:"group_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PayerID     string          `json:"payer_id"`
	CreatedAt   int64           `json:"created_at"`
	Splits      []splitDTO      `json:"splits"`
}

func toExpenseDTO(e *models.Expense) expenseDTO {
	splits := make([]splitDTO, len(e.Splits))
	for i := range e.Splits {
		splits[i] = toSplitDTO(&e.Splits[i])
	}
	return expenseDTO{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Description: e.Description,
		Amount:      e.Amount,
		PayerID:     e.PayerID,
		CreatedAt:   e.CreatedAt,
		Splits:      splits,
	}
}

func toExpenseDTOs(expenses []*models.Expense) []expenseDTO {
	out := make([]expenseDTO, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseDTO(e)
	}
	return out
}

type settlementDTO struct {
	ID        string          `json:"id"`
	PayerID   string          `json:"payer_id"`
	PayeeID   string          `json:"payee_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt int64           `json:"created_at"`
	Note      string          `json:"note,omitempty"`
}

func toSettlementDTO(s *models.Settlement) settlementDTO {
	return settlementDTO{
		ID:        s.ID,
		PayerID:   s.PayerID,
		PayeeID:   s.PayeeID,
		Amount:    s.Amount,
		CreatedAt: s.CreatedAt,
		Note:      s.Note,
	}
}

type counterpartyDTO struct {
	User      userDTO         `json:"user"`
	OwedToYou decimal.Decimal `json:"owed_to_you"`
	YouOwe    decimal.Decimal `json:"you_owe"`
	Net       decimal.Decimal `json:"net"`
}

type portfolioDTO struct {
	OwedToYou decimal.Decimal   `json:"owed_to_you"`
	YouOwe    decimal.Decimal   `json:"you_owe"`
	Net       decimal.Decimal   `json:"net"`
	Breakdown []counterpartyDTO `json:"breakdown"`
}

func toPortfolioDTO(totals ledger.PortfolioBalance, breakdown []service.CounterpartySummary) portfolioDTO {
	entries := make([]counterpartyDTO, len(breakdown))
	for i, entry := range breakdown {
		entries[i] = counterpartyDTO{
			User:      toUserDTO(entry.User),
			OwedToYou: entry.Balance.OwedToYou,
			YouOwe:    entry.Balance.YouOwe,
			Net:       entry.Balance.Net,
		}
	}
	return portfolioDTO{
		OwedToYou: totals.OwedToYou,
		YouOwe:    totals.YouOwe,
		Net:       totals.Net,
		Breakdown: entries,
	}
}

type monthlyUsageDTO struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

func toMonthlyUsageDTOs(totals []ledger.MonthlyTotal) []monthlyUsageDTO {
	out := make([]monthlyUsageDTO, len(totals))
	for i, t := range totals {
		out[i] = monthlyUsageDTO{Month: t.Month, Amount: t.Total}
	}
	return out
}
