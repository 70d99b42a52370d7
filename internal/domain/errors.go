package domain

import "errors"

// ErrNotFound is returned when a requested entity does not exist in the
// ledger. Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing required field, negative amount). Handlers map this to
// HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrRideInProgress is returned when a ride start is requested while a
// ride is already active or awaiting its summary. The in-progress ride and
// its route are never silently discarded. Handlers map this to HTTP 409.
var ErrRideInProgress = errors.New("ride already in progress")

// ErrNoActiveRide is returned when stop/resume/commit is requested with no
// ride in the corresponding state. Handlers map this to HTTP 409.
var ErrNoActiveRide = errors.New("no ride in progress")
