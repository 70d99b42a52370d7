// Package session owns the single mutable "current ride" slot and its
// lifecycle: idle → active → summarizing → idle. At most one trip is ever
// active or awaiting summary across the whole app; a second start is
// rejected rather than silently replacing an in-progress ride and losing
// its route.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/carlapp/ride-ledger/internal/domain"
	"github.com/carlapp/ride-ledger/internal/location"
	"github.com/carlapp/ride-ledger/internal/store"
)

// State is the ride session lifecycle state.
type State string

const (
	StateIdle        State = "idle"
	StateActive      State = "active"
	StateSummarizing State = "summarizing"
)

// Running-fare estimate constants: base fare plus a per-minute rate.
// The estimate is display-only — the committed fare is whatever the driver
// enters at the end of the ride, never this number. That divergence is a
// deliberate business rule; do not unify them.
const (
	estimateBase       = 5.0
	estimateRatePerMin = 0.9
)

// pickupPlaceholder fills the pickup label while a ride is being recorded;
// the real labels are entered at commit time.
const pickupPlaceholder = "In Progress..."

// Defaults applied at commit when the driver leaves a location blank.
const (
	defaultPickup  = "Unknown Start"
	defaultDropoff = "Unknown End"
)

// CommitInput carries the summary the driver enters when finishing a ride.
type CommitInput struct {
	Fare       float64
	Pickup     string
	Dropoff    string
	Payment    domain.PaymentType
	CustomerID string
	Notes      string
}

// Snapshot is a read-only view of the session for display.
type Snapshot struct {
	State          State
	Trip           *domain.Trip // copy; nil when idle
	ElapsedSeconds int64
	// EstimatedGross is the cosmetic running fare, zero when idle.
	EstimatedGross float64
}

// Controller is the ride session state machine. It drives the location
// feed while a ride is active, accumulating the route, and writes the
// finalized trip into the ledger store at commit — the only write path for
// rides. Safe for concurrent use.
type Controller struct {
	store store.Store
	feed  location.Provider
	log   *slog.Logger
	now   func() time.Time // injectable clock for tests

	mu          sync.Mutex
	state       State
	trip        *domain.Trip
	elapsed     int64
	cancelWatch func()
	stopTicker  chan struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the session's time source. Tests use it to drive the
// ride timeline deterministically.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New builds an idle Controller over the given store and location feed.
func New(s store.Store, feed location.Provider, log *slog.Logger, opts ...Option) *Controller {
	if log == nil {
		log = slog.Default()
	}
	c := &Controller{
		store: s,
		feed:  feed,
		log:   log,
		now:   time.Now,
		state: StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins recording a new ride. The trip opens with the current
// coordinate as the first route point, a zero placeholder fare, and cash as
// the placeholder payment; all of those are finalized at commit. Returns
// domain.ErrRideInProgress when a ride is already active or summarizing.
func (c *Controller) Start(ctx context.Context) (domain.Trip, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return domain.Trip{}, domain.ErrRideInProgress
	}

	fix, err := c.feed.Current(ctx)
	if err != nil {
		// Best effort: a denied or timed-out acquisition falls back to the
		// default center inside the feed; an outright context cancellation
		// still starts the ride from the fallback point.
		c.log.Warn("start ride: coordinate acquisition failed", "error", err)
		fix = location.DefaultCenter
	}

	trip := &domain.Trip{
		ID:             domain.NewID(),
		StartTime:      domain.MillisFrom(c.now()),
		PickupLocation: pickupPlaceholder,
		Fare:           0,
		PaymentType:    domain.PaymentCash,
		Route:          []domain.LatLng{fix},
		Status:         domain.TripActive,
	}

	c.trip = trip
	c.state = StateActive
	c.elapsed = 0
	c.startTracking()

	c.log.Info("ride started", "trip_id", trip.ID, "lat", fix.Lat, "lng", fix.Lng)
	return *trip, nil
}

// Stop freezes the active ride for summary entry. The duration ticker and
// the coordinate watch are both cancelled here — fixes arriving after Stop
// are dropped, not appended. Returns domain.ErrNoActiveRide unless a ride
// is active.
func (c *Controller) Stop() (domain.Trip, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateActive {
		return domain.Trip{}, domain.ErrNoActiveRide
	}

	c.stopTracking()
	c.state = StateSummarizing
	c.log.Info("ride stopped", "trip_id", c.trip.ID, "route_points", len(c.trip.Route))
	return *c.trip, nil
}

// Resume returns from the summary form to active tracking without losing
// anything: the route, elapsed time, and entered fields all survive.
// Returns domain.ErrNoActiveRide unless a ride is summarizing.
func (c *Controller) Resume() (domain.Trip, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateSummarizing {
		return domain.Trip{}, domain.ErrNoActiveRide
	}

	c.state = StateActive
	c.startTracking()
	c.log.Info("ride resumed", "trip_id", c.trip.ID)
	return *c.trip, nil
}

// Commit finalizes the summarizing ride and appends it to the ledger.
// Blank locations fall back to the unknown placeholders; a negative fare or
// unknown payment tag is a validation error. On a store write failure the
// session stays in summarizing so the driver can retry — the recorded route
// is never thrown away because a save failed.
func (c *Controller) Commit(ctx context.Context, in CommitInput) (domain.Trip, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateSummarizing {
		return domain.Trip{}, domain.ErrNoActiveRide
	}
	if in.Fare < 0 {
		return domain.Trip{}, fmt.Errorf("%w: fare must not be negative", domain.ErrValidation)
	}
	if !domain.ValidPaymentType(in.Payment) {
		return domain.Trip{}, fmt.Errorf("%w: unknown payment type %q", domain.ErrValidation, in.Payment)
	}

	trip := *c.trip
	end := domain.MillisFrom(c.now())
	trip.EndTime = &end
	trip.Fare = in.Fare
	trip.PickupLocation = in.Pickup
	if trip.PickupLocation == "" {
		trip.PickupLocation = defaultPickup
	}
	trip.DropoffLocation = in.Dropoff
	if trip.DropoffLocation == "" {
		trip.DropoffLocation = defaultDropoff
	}
	trip.PaymentType = in.Payment
	trip.CustomerID = in.CustomerID
	trip.Notes = in.Notes
	trip.Status = domain.TripCompleted

	if err := c.store.AppendTrip(ctx, trip); err != nil {
		c.log.Error("commit ride: ledger write failed", "trip_id", trip.ID, "error", err)
		return domain.Trip{}, fmt.Errorf("append trip: %w", err)
	}

	c.trip = nil
	c.state = StateIdle
	c.elapsed = 0
	c.log.Info("ride committed", "trip_id", trip.ID, "fare", trip.Fare, "payment", trip.PaymentType)
	return trip, nil
}

// Snapshot returns the current session view for display.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{State: c.state, ElapsedSeconds: c.elapsed}
	if c.trip != nil {
		trip := *c.trip
		trip.Route = append([]domain.LatLng(nil), c.trip.Route...)
		snap.Trip = &trip
		snap.EstimatedGross = EstimateGross(c.elapsed)
	}
	return snap
}

// Close tears the session down, cancelling the ticker and watch. Any ride
// in progress stays in memory only and is lost — matching an app shutdown
// mid-ride.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTracking()
	c.state = StateIdle
	c.trip = nil
}

// EstimateGross computes the display-only running fare for an elapsed
// duration in seconds.
func EstimateGross(elapsedSeconds int64) float64 {
	return float64(elapsedSeconds)/60*estimateRatePerMin + estimateBase
}

// FormatElapsed renders seconds as h:mm:ss, or mm:ss under an hour.
func FormatElapsed(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// startTracking launches the 1s elapsed ticker and subscribes the route
// appender to the location feed. Caller holds c.mu.
func (c *Controller) startTracking() {
	stop := make(chan struct{})
	c.stopTicker = stop
	startedAt := c.trip.StartTime

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c.mu.Lock()
				if c.state == StateActive && c.trip != nil && c.trip.StartTime == startedAt {
					c.elapsed = int64(c.now().Sub(startedAt.Time()) / time.Second)
				}
				c.mu.Unlock()
			}
		}
	}()

	tripID := c.trip.ID
	c.cancelWatch = c.feed.Watch(func(fix domain.LatLng) {
		c.mu.Lock()
		defer c.mu.Unlock()
		// The watch is cancelled on Stop, but a fix already in flight may
		// still land here; the state check keeps the route frozen.
		if c.state == StateActive && c.trip != nil && c.trip.ID == tripID {
			c.trip.Route = append(c.trip.Route, fix)
		}
	})
}

// stopTracking cancels the ticker and watch if running. Caller holds c.mu.
func (c *Controller) stopTracking() {
	if c.stopTicker != nil {
		close(c.stopTicker)
		c.stopTicker = nil
	}
	if c.cancelWatch != nil {
		c.cancelWatch()
		c.cancelWatch = nil
	}
}
