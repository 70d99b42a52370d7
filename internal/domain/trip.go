// Package domain contains the core data types for the ride ledger.
// This package has zero heavy dependencies and is imported by every other
// internal package (store, session, metrics, handler).
//
// Field names and JSON tags define the persisted wire shape and must not be
// renamed: ledgers written by earlier versions of the app are read back
// through these exact tags.
package domain

// TripStatus is the lifecycle state of a trip.
type TripStatus string

const (
	// TripActive marks the single trip currently being recorded.
	TripActive TripStatus = "ACTIVE"
	// TripCompleted marks a finalized trip in the ledger. Completed trips
	// are never mutated again; there is no edit or delete operation.
	TripCompleted TripStatus = "COMPLETED"
)

// PaymentType enumerates how a fare was collected.
type PaymentType string

const (
	PaymentCash PaymentType = "CASH"
	PaymentCard PaymentType = "CARD"
	// PaymentBoltPayout is an external platform payout settled off-device.
	PaymentBoltPayout PaymentType = "BOLT_PAYOUT"
)

// ValidPaymentType reports whether p is one of the known payment tags.
func ValidPaymentType(p PaymentType) bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentBoltPayout:
		return true
	}
	return false
}

// Trip is one ride record.
//
// Invariants:
//   - EndTime is non-nil iff Status is TripCompleted.
//   - Route only grows while the trip is active and is frozen at completion.
//   - At most one trip is ACTIVE at a time system-wide; the session package
//     owns that single slot.
//
// Distance is recorded but never computed from the route; it stays zero.
type Trip struct {
	ID              string      `json:"id"`
	StartTime       Millis      `json:"startTime"`
	EndTime         *Millis     `json:"endTime"` // nil while the ride is in progress
	PickupLocation  string      `json:"pickupLocation"`
	DropoffLocation string      `json:"dropoffLocation"`
	Fare            float64     `json:"fare"`
	Distance        float64     `json:"distance"` // km
	PaymentType     PaymentType `json:"paymentType"`
	CustomerID      string      `json:"customerId,omitempty"` // weak reference, lookup only
	Notes           string      `json:"notes"`
	Route           []LatLng    `json:"route"`
	Status          TripStatus  `json:"status"`
}
