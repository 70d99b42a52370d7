// Package store persists the ledger as a single serialized blob.
// The ledger is always read and written whole: every mutation is a
// load, one append or replace, and a full save. Last write wins — there is
// no merge, because the app assumes a single logical writer at a time.
// Extending this to multiple concurrent writers would silently discard
// concurrent edits; that is a documented limitation, not something to patch
// here with a merge policy.
//
// Each backend only supplies raw blob reads and writes; the JSON codec and
// the mutation operations live in one place (blobStore) so file, redis, and
// in-memory stores cannot drift apart.
package store

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/carlapp/ride-ledger/internal/domain"
)

// Store is the persistence surface the rest of the app depends on.
//
// Load never fails: a missing, unreadable, or corrupt blob degrades to the
// empty ledger ("start fresh"), logged but never surfaced. Save and the
// mutation operations report write failures so callers can retry.
type Store interface {
	Load(ctx context.Context) domain.Ledger
	Save(ctx context.Context, ledger domain.Ledger) error
	AppendTrip(ctx context.Context, trip domain.Trip) error
	AppendCustomer(ctx context.Context, customer domain.Customer) error
	AppendExpense(ctx context.Context, expense domain.Expense) error
	// ReplaceTrip swaps the trip whose id matches and saves. Silently a
	// no-op when no trip matches.
	ReplaceTrip(ctx context.Context, trip domain.Trip) error
}

// blob is the minimal backend interface: read the whole serialized ledger
// (ok=false when nothing is stored yet) and write it back whole.
type blob interface {
	read(ctx context.Context) (data []byte, ok bool, err error)
	write(ctx context.Context, data []byte) error
}

// blobStore implements Store on top of any blob backend.
type blobStore struct {
	blob blob
	log  *slog.Logger
}

func newBlobStore(b blob, log *slog.Logger) *blobStore {
	if log == nil {
		log = slog.Default()
	}
	return &blobStore{blob: b, log: log}
}

func (s *blobStore) Load(ctx context.Context) domain.Ledger {
	data, ok, err := s.blob.read(ctx)
	if err != nil {
		s.log.Warn("ledger read failed, starting fresh", "error", err)
		return domain.EmptyLedger()
	}
	if !ok {
		return domain.EmptyLedger()
	}

	var ledger domain.Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		s.log.Warn("ledger blob corrupt, starting fresh", "error", err)
		return domain.EmptyLedger()
	}
	// Old blobs may carry null collections; normalize so callers can append.
	if ledger.Trips == nil {
		ledger.Trips = []domain.Trip{}
	}
	if ledger.Customers == nil {
		ledger.Customers = []domain.Customer{}
	}
	if ledger.Expenses == nil {
		ledger.Expenses = []domain.Expense{}
	}
	return ledger
}

func (s *blobStore) Save(ctx context.Context, ledger domain.Ledger) error {
	data, err := json.Marshal(ledger)
	if err != nil {
		return err
	}
	return s.blob.write(ctx, data)
}

func (s *blobStore) AppendTrip(ctx context.Context, trip domain.Trip) error {
	ledger := s.Load(ctx)
	ledger.Trips = append(ledger.Trips, trip)
	return s.Save(ctx, ledger)
}

func (s *blobStore) AppendCustomer(ctx context.Context, customer domain.Customer) error {
	ledger := s.Load(ctx)
	ledger.Customers = append(ledger.Customers, customer)
	return s.Save(ctx, ledger)
}

func (s *blobStore) AppendExpense(ctx context.Context, expense domain.Expense) error {
	ledger := s.Load(ctx)
	ledger.Expenses = append(ledger.Expenses, expense)
	return s.Save(ctx, ledger)
}

func (s *blobStore) ReplaceTrip(ctx context.Context, trip domain.Trip) error {
	ledger := s.Load(ctx)
	for i := range ledger.Trips {
		if ledger.Trips[i].ID == trip.ID {
			ledger.Trips[i] = trip
		}
	}
	return s.Save(ctx, ledger)
}
