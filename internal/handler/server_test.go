package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carlapp/ride-ledger/internal/advisory"
	"github.com/carlapp/ride-ledger/internal/domain"
	"github.com/carlapp/ride-ledger/internal/handler"
	"github.com/carlapp/ride-ledger/internal/region"
	"github.com/carlapp/ride-ledger/internal/session"
)

// Test doubles for the handler's consumer interfaces. Set only the method
// fields your test needs; an unset field panics, which is the test's fault.

type mockTripServicer struct {
	list    func(ctx context.Context) ([]domain.Trip, error)
	getByID func(ctx context.Context, id string) (domain.Trip, error)
}

func (m *mockTripServicer) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	return m.getByID(ctx, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockCustomerServicer struct {
	create  func(ctx context.Context, c domain.Customer) (domain.Customer, error)
	list    func(ctx context.Context, query string) ([]domain.Customer, error)
	getByID func(ctx context.Context, id string) (domain.Customer, error)
}

func (m *mockCustomerServicer) Create(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	return m.create(ctx, c)
}
func (m *mockCustomerServicer) List(ctx context.Context, query string) ([]domain.Customer, error) {
	return m.list(ctx, query)
}
func (m *mockCustomerServicer) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	return m.getByID(ctx, id)
}

var _ handler.CustomerServicer = (*mockCustomerServicer)(nil)

type mockExpenseServicer struct {
	create func(ctx context.Context, e domain.Expense) (domain.Expense, error)
	list   func(ctx context.Context, newestFirst bool) ([]domain.Expense, error)
}

func (m *mockExpenseServicer) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.create(ctx, e)
}
func (m *mockExpenseServicer) List(ctx context.Context, newestFirst bool) ([]domain.Expense, error) {
	return m.list(ctx, newestFirst)
}

var _ handler.ExpenseServicer = (*mockExpenseServicer)(nil)

type mockRideSession struct {
	start    func(ctx context.Context) (domain.Trip, error)
	stop     func() (domain.Trip, error)
	resume   func() (domain.Trip, error)
	commit   func(ctx context.Context, in session.CommitInput) (domain.Trip, error)
	snapshot func() session.Snapshot
}

func (m *mockRideSession) Start(ctx context.Context) (domain.Trip, error) { return m.start(ctx) }
func (m *mockRideSession) Stop() (domain.Trip, error)                     { return m.stop() }
func (m *mockRideSession) Resume() (domain.Trip, error)                   { return m.resume() }
func (m *mockRideSession) Commit(ctx context.Context, in session.CommitInput) (domain.Trip, error) {
	return m.commit(ctx, in)
}
func (m *mockRideSession) Snapshot() session.Snapshot { return m.snapshot() }

var _ handler.RideSession = (*mockRideSession)(nil)

type mockLocationFeed struct {
	report  func(fix domain.LatLng)
	current func(ctx context.Context) (domain.LatLng, error)
}

func (m *mockLocationFeed) Report(fix domain.LatLng) { m.report(fix) }
func (m *mockLocationFeed) Current(ctx context.Context) (domain.LatLng, error) {
	return m.current(ctx)
}

var _ handler.LocationFeed = (*mockLocationFeed)(nil)

type mockLedgerSnapshot struct {
	ledger domain.Ledger
}

func (m *mockLedgerSnapshot) Snapshot() domain.Ledger { return m.ledger }

var _ handler.LedgerSnapshot = (*mockLedgerSnapshot)(nil)

type stubCoach struct {
	tip func(ctx context.Context, tc advisory.Context) string
}

func (s *stubCoach) Tip(ctx context.Context, tc advisory.Context) string { return s.tip(ctx, tc) }

var _ advisory.Coach = (*stubCoach)(nil)

// fixedProvider satisfies location.Provider for deciding a test gate.
type fixedProvider struct {
	fix domain.LatLng
	err error
}

func (p fixedProvider) Current(context.Context) (domain.LatLng, error) { return p.fix, p.err }
func (p fixedProvider) Watch(func(domain.LatLng)) (cancel func())      { return func() {} }

// ---- helpers ---------------------------------------------------------------

// serverDeps collects the dependencies a test cares about; everything left
// nil stays nil so an accidental call fails loudly.
type serverDeps struct {
	trips     handler.TripServicer
	customers handler.CustomerServicer
	expenses  handler.ExpenseServicer
	ride      handler.RideSession
	feed      handler.LocationFeed
	ledger    handler.LedgerSnapshot
	gate      *region.Gate
	coach     advisory.Coach
}

// newHTTPHandler wires a Server with the given mocks into its chi router,
// mirroring how main.go wires it in production.
func newHTTPHandler(d serverDeps) http.Handler {
	if d.gate == nil {
		d.gate = region.NewGate()
	}
	srv := handler.NewServer(d.trips, d.customers, d.expenses, d.ride, d.feed, d.ledger, d.gate, d.coach)
	return srv.Routes()
}

func completedTripFixture() domain.Trip {
	end := domain.Millis(1735736400000)
	return domain.Trip{
		ID:              "trip-1",
		StartTime:       domain.Millis(1735732800000),
		EndTime:         &end,
		PickupLocation:  "Osu",
		DropoffLocation: "East Legon",
		Fare:            45.50,
		PaymentType:     domain.PaymentCard,
		Notes:           "airport run",
		Route:           []domain.LatLng{{Lat: 5.6037, Lng: -0.1870}},
		Status:          domain.TripCompleted,
	}
}

func customerFixture() domain.Customer {
	return domain.Customer{
		ID:       "cust-1",
		Name:     "Ama Mensah",
		Nickname: "Ama",
		Notes:    "regular, mornings",
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// decodeError unpacks the {"error":{"code","message"}} envelope.
func decodeError(t *testing.T, body *bytes.Buffer) (code, message string) {
	t.Helper()
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&envelope))
	return envelope.Error.Code, envelope.Error.Message
}
