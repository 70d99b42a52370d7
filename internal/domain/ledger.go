package domain

import "github.com/google/uuid"

// LatLng is one geolocation fix.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Ledger is the aggregate root and the unit of persistence: the three
// ordered collections are always read and written as a whole. Insertion
// order is preserved for stable display. There is no partial write or
// transaction concept — a mutation is load, apply one change, save.
type Ledger struct {
	Trips     []Trip     `json:"trips"`
	Customers []Customer `json:"customers"`
	Expenses  []Expense  `json:"expenses"`
}

// EmptyLedger returns a fresh ledger with non-nil (but empty) collections,
// so callers can range and append without nil checks and the serialized
// form is always {"trips":[],"customers":[],"expenses":[]}.
func EmptyLedger() Ledger {
	return Ledger{
		Trips:     []Trip{},
		Customers: []Customer{},
		Expenses:  []Expense{},
	}
}

// NewID returns a collision-resistant opaque id for any ledger entity.
func NewID() string {
	return uuid.NewString()
}
