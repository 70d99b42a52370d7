// Package handler implements the HTTP surface of the ride ledger.
// All handlers are methods on Server; they are split into domain-specific
// files (ride.go, trip.go, etc.) but share the same struct so they can
// access its dependencies. Dependencies are consumer-defined interfaces so
// handler tests inject hand-written mocks without touching the store or
// session internals.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carlapp/ride-ledger/internal/advisory"
	"github.com/carlapp/ride-ledger/internal/domain"
	"github.com/carlapp/ride-ledger/internal/region"
	"github.com/carlapp/ride-ledger/internal/session"
)

// TripServicer defines the trip read operations the handlers depend on.
type TripServicer interface {
	List(ctx context.Context) ([]domain.Trip, error)
	GetByID(ctx context.Context, id string) (domain.Trip, error)
}

// CustomerServicer defines the customer operations the handlers depend on.
type CustomerServicer interface {
	Create(ctx context.Context, c domain.Customer) (domain.Customer, error)
	List(ctx context.Context, query string) ([]domain.Customer, error)
	GetByID(ctx context.Context, id string) (domain.Customer, error)
}

// ExpenseServicer defines the expense operations the handlers depend on.
type ExpenseServicer interface {
	Create(ctx context.Context, e domain.Expense) (domain.Expense, error)
	List(ctx context.Context, newestFirst bool) ([]domain.Expense, error)
}

// RideSession defines the ride lifecycle operations the handlers depend on.
type RideSession interface {
	Start(ctx context.Context) (domain.Trip, error)
	Stop() (domain.Trip, error)
	Resume() (domain.Trip, error)
	Commit(ctx context.Context, in session.CommitInput) (domain.Trip, error)
	Snapshot() session.Snapshot
}

// LocationFeed defines the device-fix surface the handlers depend on.
type LocationFeed interface {
	Report(fix domain.LatLng)
	Current(ctx context.Context) (domain.LatLng, error)
}

// LedgerSnapshot supplies the polled ledger view for the display paths.
type LedgerSnapshot interface {
	Snapshot() domain.Ledger
}

// Server holds every handler dependency.
type Server struct {
	trips     TripServicer
	customers CustomerServicer
	expenses  ExpenseServicer
	ride      RideSession
	feed      LocationFeed
	ledger    LedgerSnapshot
	gate      *region.Gate
	coach     advisory.Coach
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	trips TripServicer,
	customers CustomerServicer,
	expenses ExpenseServicer,
	ride RideSession,
	feed LocationFeed,
	ledger LedgerSnapshot,
	gate *region.Gate,
	coach advisory.Coach,
) *Server {
	return &Server{
		trips:     trips,
		customers: customers,
		expenses:  expenses,
		ride:      ride,
		feed:      feed,
		ledger:    ledger,
		gate:      gate,
		coach:     coach,
	}
}

// Routes registers every endpoint on a fresh chi router. Middleware is
// applied by the caller (main.go) so tests exercise handlers in isolation.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/region", s.GetRegion)

	r.Post("/location/fix", s.PostLocationFix)
	r.Get("/location/current", s.GetLocationCurrent)

	r.Post("/ride/start", s.PostRideStart)
	r.Post("/ride/stop", s.PostRideStop)
	r.Post("/ride/resume", s.PostRideResume)
	r.Post("/ride/commit", s.PostRideCommit)
	r.Get("/ride", s.GetRide)

	r.Get("/trips", s.ListTrips)
	r.Get("/trips/{id}", s.GetTrip)

	r.Post("/customers", s.CreateCustomer)
	r.Get("/customers", s.ListCustomers)
	r.Get("/customers/{id}/spend", s.GetCustomerSpend)

	r.Post("/expenses", s.CreateExpense)
	r.Get("/expenses", s.ListExpenses)

	r.Get("/dashboard", s.GetDashboard)
	r.Get("/report", s.GetReport)
	r.Get("/advice", s.GetAdvice)

	return r
}

// respondJSON writes v as a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
