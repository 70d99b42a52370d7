package handler

import (
	"encoding/json"
	"net/http"

	"github.com/carlapp/ride-ledger/internal/domain"
)

// createExpenseRequest is the log-expense form.
type createExpenseRequest struct {
	Amount float64            `json:"amount"`
	Type   domain.ExpenseType `json:"type"`
	Notes  string             `json:"notes"`
	Date   domain.Millis      `json:"date"`
}

// CreateExpense handles POST /expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "malformed request body")
		return
	}

	created, err := s.expenses.Create(r.Context(), domain.Expense{
		Amount: req.Amount,
		Type:   req.Type,
		Notes:  req.Notes,
		Date:   req.Date,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListExpenses handles GET /expenses. Insertion order by default;
// ?order=desc returns newest first for the transaction-log view.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	newestFirst := r.URL.Query().Get("order") == "desc"
	expenses, err := s.expenses.List(r.Context(), newestFirst)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expenses)
}
