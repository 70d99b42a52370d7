package service

import (
	"context"

	"github.com/carlapp/ride-ledger/internal/domain"
	"github.com/carlapp/ride-ledger/internal/store"
)

// TripService implements read-side logic for completed trips. Trips enter
// the ledger only through the ride session's commit; there is no create,
// edit, or delete here by design.
type TripService struct {
	store store.Store
}

// NewTripService constructs a TripService over the given store.
func NewTripService(s store.Store) *TripService {
	return &TripService{store: s}
}

// List returns all recorded trips in insertion order.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	return s.store.Load(ctx).Trips, nil
}

// GetByID returns a single trip, or domain.ErrNotFound.
func (s *TripService) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	for _, t := range s.store.Load(ctx).Trips {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Trip{}, domain.ErrNotFound
}
