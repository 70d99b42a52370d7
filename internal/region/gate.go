// Package region implements the one-shot startup geofence.
//
// The gate is approximate and non-authoritative: a fixed bounding box around
// Ghana's territory, trivially bypassable, there only to set user
// expectations. It is not a security boundary and must never be treated as
// one.
package region

import (
	"context"
	"sync"

	"github.com/carlapp/ride-ledger/internal/domain"
	"github.com/carlapp/ride-ledger/internal/location"
)

// Status is the gate's decision for this process lifetime.
type Status string

const (
	// StatusUnknown is the initial state, before the one-shot check runs.
	StatusUnknown Status = "unknown"
	// StatusAllowed admits the app: the device is inside the box, or its
	// location could not be determined (the gate fails open so the app
	// stays usable without location permission).
	StatusAllowed Status = "allowed"
	// StatusBlocked is terminal for the session; no retry is offered.
	StatusBlocked Status = "blocked"
)

// Bounding box approximating the Republic of Ghana.
const (
	latMin = 4.7
	latMax = 11.2
	lngMin = -3.3
	lngMax = 1.2
)

// InBounds reports whether fix falls inside the Ghana bounding box.
func InBounds(fix domain.LatLng) bool {
	return fix.Lat >= latMin && fix.Lat <= latMax &&
		fix.Lng >= lngMin && fix.Lng <= lngMax
}

// Gate holds the session-wide region decision.
type Gate struct {
	mu     sync.RWMutex
	status Status
}

// NewGate returns a gate in StatusUnknown.
func NewGate() *Gate {
	return &Gate{status: StatusUnknown}
}

// Check runs the one-shot decision against a single coordinate acquisition.
// Acquisition failure (denied permission, timeout, cancellation) resolves to
// StatusAllowed. Once decided the status never changes for the process
// lifetime; repeated calls are no-ops.
func (g *Gate) Check(ctx context.Context, provider location.Provider) Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status != StatusUnknown {
		return g.status
	}

	fix, err := provider.Current(ctx)
	if err != nil {
		g.status = StatusAllowed
		return g.status
	}
	if InBounds(fix) {
		g.status = StatusAllowed
	} else {
		g.status = StatusBlocked
	}
	return g.status
}

// Status returns the current decision.
func (g *Gate) Status() Status {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.status
}

// Blocked reports whether the gate has decided to block this session.
func (g *Gate) Blocked() bool {
	return g.Status() == StatusBlocked
}
