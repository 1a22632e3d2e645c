package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/splitmate/splitmate/internal/middleware"
	"github.com/splitmate/splitmate/internal/service"
)

// LedgerHandler serves expense, settlement and balance endpoints.
type LedgerHandler struct {
	svc *service.LedgerService
}

// NewLedgerHandler creates a LedgerHandler.
func NewLedgerHandler(svc *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

type createExpenseRequest struct {
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	PayerID        string          `json:"payer_id"`
	ParticipantIDs []string        `json:"participant_ids"`
}

// CreateExpense handles POST /api/groups/{id}/expenses.
func (h *LedgerHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	expense, err := h.svc.CreateExpense(r.Context(), chi.URLParam(r, "id"),
		req.PayerID, req.Description, req.Amount, req.ParticipantIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseDTO(expense))
}

// ListGroupExpenses handles GET /api/groups/{id}/expenses.
func (h *LedgerHandler) ListGroupExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.ListGroupExpenses(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseDTOs(expenses))
}

// GetExpense handles GET /api/expenses/{id}.
func (h *LedgerHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := h.svc.GetExpense(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseDTO(expense))
}

// DeleteExpense handles DELETE /api/expenses/{id}.
func (h *LedgerHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SettleSplit handles POST /api/splits/{id}/settle.
func (h *LedgerHandler) SettleSplit(w http.ResponseWriter, r *http.Request) {
	split, err := h.svc.SettleSplit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSplitDTO(split))
}

type recordSettlementRequest struct {
	PayeeID string          `json:"payee_id"`
	Amount  decimal.Decimal `json:"amount"`
	Note    string          `json:"note"`
}

// RecordSettlement handles POST /api/settlements. The authenticated user
// is the payer.
func (h *LedgerHandler) RecordSettlement(w http.ResponseWriter, r *http.Request) {
	var req recordSettlementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	settlement, err := h.svc.RecordSettlement(r.Context(),
		middleware.GetUserID(r.Context()), req.PayeeID, req.Amount, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSettlementDTO(settlement))
}

// ListSettlements handles GET /api/settlements for the authenticated user.
func (h *LedgerHandler) ListSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := h.svc.ListSettlements(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]settlementDTO, len(settlements))
	for i, s := range settlements {
		out[i] = toSettlementDTO(s)
	}
	writeJSON(w, http.StatusOK, out)
}

// PortfolioBalance handles GET /api/balances for the authenticated user.
func (h *LedgerHandler) PortfolioBalance(w http.ResponseWriter, r *http.Request) {
	totals, breakdown, err := h.svc.PortfolioBalance(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPortfolioDTO(totals, breakdown))
}

type netBalanceResponse struct {
	UserID         string          `json:"user_id"`
	CounterpartyID string          `json:"counterparty_id"`
	Net            decimal.Decimal `json:"net"`
}

// NetBalance handles GET /api/balances/{userID}: the signed balance
// between the authenticated user and userID. Positive means the
// counterparty owes the caller.
func (h *LedgerHandler) NetBalance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	counterpartyID := chi.URLParam(r, "userID")

	net, err := h.svc.NetBalance(r.Context(), userID, counterpartyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, netBalanceResponse{
		UserID:         userID,
		CounterpartyID: counterpartyID,
		Net:            net,
	})
}

// History handles GET /api/history?ordering=-date for the authenticated
// user.
func (h *LedgerHandler) History(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.History(r.Context(),
		middleware.GetUserID(r.Context()), r.URL.Query().Get("ordering"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseDTOs(expenses))
}

// MonthlyUsage handles GET /api/usage for the authenticated user.
func (h *LedgerHandler) MonthlyUsage(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.MonthlyUsage(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthlyUsageDTOs(totals))
}
