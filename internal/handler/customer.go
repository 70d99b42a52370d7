package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carlapp/ride-ledger/internal/domain"
	"github.com/carlapp/ride-ledger/internal/metrics"
)

// createCustomerRequest is the add-rider form.
type createCustomerRequest struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Notes    string `json:"notes"`
	Phone    string `json:"phone"`
}

// CreateCustomer handles POST /customers.
func (s *Server) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "malformed request body")
		return
	}

	created, err := s.customers.Create(r.Context(), domain.Customer{
		Name:     req.Name,
		Nickname: req.Nickname,
		Notes:    req.Notes,
		Phone:    req.Phone,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListCustomers handles GET /customers. An optional ?q= filters by name or
// nickname, case-insensitive.
func (s *Server) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.customers.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

// GetCustomerSpend handles GET /customers/{id}/spend: the rider's lifetime
// fare total across all attributed trips.
func (s *Server) GetCustomerSpend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	customer, err := s.customers.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	spend := metrics.CustomerLifetimeSpend(s.ledger.Snapshot(), id)
	respondJSON(w, http.StatusOK, map[string]any{
		"customerId":    customer.ID,
		"name":          customer.Name,
		"lifetimeSpend": round2(spend),
	})
}
