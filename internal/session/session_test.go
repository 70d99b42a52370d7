package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlapp/ride-ledger/internal/domain"
	"github.com/carlapp/ride-ledger/internal/location"
	"github.com/carlapp/ride-ledger/internal/session"
	"github.com/carlapp/ride-ledger/internal/store"
)

// fakeFeed is a test double for location.Provider with a hand crank: tests
// push fixes through the watcher directly instead of sleeping.
type fakeFeed struct {
	mu        sync.Mutex
	fix       domain.LatLng
	watcher   func(domain.LatLng)
	cancelled int
}

func (f *fakeFeed) Current(context.Context) (domain.LatLng, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fix, nil
}

func (f *fakeFeed) Watch(fn func(domain.LatLng)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.watcher = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.cancelled++
		f.watcher = nil
	}
}

func (f *fakeFeed) push(fix domain.LatLng) {
	f.mu.Lock()
	fn := f.watcher
	f.mu.Unlock()
	if fn != nil {
		fn(fix)
	}
}

var _ location.Provider = (*fakeFeed)(nil)

// fakeClock is a settable time source.
type fakeClock struct {
	mu sync.Mutex
	at time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.at = c.at.Add(d)
	c.mu.Unlock()
}

// failingStore wraps a Store and fails every AppendTrip.
type failingStore struct {
	store.Store
}

func (f *failingStore) AppendTrip(context.Context, domain.Trip) error {
	return errors.New("disk full")
}

// ---- helpers ---------------------------------------------------------------

func newSession(t *testing.T) (*session.Controller, *fakeFeed, *fakeClock, store.Store) {
	t.Helper()
	feed := &fakeFeed{fix: domain.LatLng{Lat: 5.60, Lng: -0.18}}
	clock := &fakeClock{at: time.Date(2025, 8, 12, 9, 0, 0, 0, time.Local)}
	s := store.NewMemStore(nil)
	c := session.New(s, feed, nil, session.WithClock(clock.now))
	t.Cleanup(c.Close)
	return c, feed, clock, s
}

// ---- lifecycle -------------------------------------------------------------

func TestStart_OpensActiveTripWithFirstFix(t *testing.T) {
	c, _, clock, _ := newSession(t)

	trip, err := c.Start(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.TripActive, trip.Status)
	assert.Equal(t, domain.MillisFrom(clock.now()), trip.StartTime)
	assert.Nil(t, trip.EndTime)
	assert.Equal(t, "In Progress...", trip.PickupLocation)
	assert.Equal(t, domain.PaymentCash, trip.PaymentType)
	assert.Zero(t, trip.Fare)
	require.Len(t, trip.Route, 1)
	assert.Equal(t, 5.60, trip.Route[0].Lat)
	assert.NotEmpty(t, trip.ID)
}

func TestStart_SecondStartRejected(t *testing.T) {
	c, _, _, _ := newSession(t)
	_, err := c.Start(context.Background())
	require.NoError(t, err)

	// Active: rejected, the in-progress ride is never replaced.
	_, err = c.Start(context.Background())
	assert.ErrorIs(t, err, domain.ErrRideInProgress)

	// Summarizing: still rejected.
	_, err = c.Stop()
	require.NoError(t, err)
	_, err = c.Start(context.Background())
	assert.ErrorIs(t, err, domain.ErrRideInProgress)
}

func TestStop_RequiresActiveRide(t *testing.T) {
	c, _, _, _ := newSession(t)

	_, err := c.Stop()

	assert.ErrorIs(t, err, domain.ErrNoActiveRide)
}

func TestWatch_AppendsFixesWhileActiveOnly(t *testing.T) {
	c, feed, _, _ := newSession(t)
	_, err := c.Start(context.Background())
	require.NoError(t, err)

	feed.push(domain.LatLng{Lat: 5.61, Lng: -0.19})

	snap := c.Snapshot()
	require.NotNil(t, snap.Trip)
	assert.Len(t, snap.Trip.Route, 2)

	_, err = c.Stop()
	require.NoError(t, err)

	// A fix still in flight after Stop is dropped: the route is frozen.
	feed.push(domain.LatLng{Lat: 5.62, Lng: -0.20})
	snap = c.Snapshot()
	assert.Len(t, snap.Trip.Route, 2)
	assert.Equal(t, 1, feed.cancelled, "watch must be cancelled on stop")
}

func TestResume_ReturnsToTrackingWithoutLoss(t *testing.T) {
	c, feed, _, _ := newSession(t)
	_, err := c.Start(context.Background())
	require.NoError(t, err)
	feed.push(domain.LatLng{Lat: 5.61, Lng: -0.19})
	_, err = c.Stop()
	require.NoError(t, err)

	trip, err := c.Resume()

	require.NoError(t, err)
	assert.Len(t, trip.Route, 2) // nothing cleared
	assert.Equal(t, session.StateActive, c.Snapshot().State)

	// Tracking is live again: new fixes append.
	feed.push(domain.LatLng{Lat: 5.62, Lng: -0.20})
	assert.Len(t, c.Snapshot().Trip.Route, 3)
}

func TestResume_RequiresSummarizingRide(t *testing.T) {
	c, _, _, _ := newSession(t)

	_, err := c.Resume()
	assert.ErrorIs(t, err, domain.ErrNoActiveRide)

	_, err = c.Start(context.Background())
	require.NoError(t, err)
	_, err = c.Resume()
	assert.ErrorIs(t, err, domain.ErrNoActiveRide)
}

// ---- commit ----------------------------------------------------------------

// The canonical ride: start, one mid-ride fix, stop at 65 seconds, commit
// with a manually entered fare. The stored fare is exactly the entered one,
// not the running estimate.
func TestCommit_FullRideScenario(t *testing.T) {
	c, feed, clock, s := newSession(t)
	ctx := context.Background()

	_, err := c.Start(ctx)
	require.NoError(t, err)

	clock.advance(65 * time.Second)
	feed.push(domain.LatLng{Lat: 5.61, Lng: -0.19})

	_, err = c.Stop()
	require.NoError(t, err)

	trip, err := c.Commit(ctx, session.CommitInput{
		Fare:    25.00,
		Dropoff: "Osu",
		Payment: domain.PaymentCard,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TripCompleted, trip.Status)
	require.NotNil(t, trip.EndTime)
	assert.Equal(t, domain.MillisFrom(clock.now()), *trip.EndTime)
	assert.Len(t, trip.Route, 2)
	assert.Equal(t, 25.00, trip.Fare) // entered fare, never the estimate
	assert.Equal(t, domain.PaymentCard, trip.PaymentType)
	assert.Equal(t, "Osu", trip.DropoffLocation)
	assert.Equal(t, "Unknown Start", trip.PickupLocation)
	assert.Zero(t, trip.Distance)

	// The commit is the only write path: exactly this trip is in the ledger.
	stored := s.Load(ctx).Trips
	require.Len(t, stored, 1)
	assert.Equal(t, trip, stored[0])

	// And the slot is free again.
	assert.Equal(t, session.StateIdle, c.Snapshot().State)
	_, err = c.Start(ctx)
	assert.NoError(t, err)
}

func TestCommit_RequiresSummarizing(t *testing.T) {
	c, _, _, _ := newSession(t)

	_, err := c.Commit(context.Background(), session.CommitInput{Payment: domain.PaymentCash})
	assert.ErrorIs(t, err, domain.ErrNoActiveRide)
}

func TestCommit_NegativeFareRejected(t *testing.T) {
	c, _, _, _ := newSession(t)
	ctx := context.Background()
	_, err := c.Start(ctx)
	require.NoError(t, err)
	_, err = c.Stop()
	require.NoError(t, err)

	_, err = c.Commit(ctx, session.CommitInput{Fare: -5, Payment: domain.PaymentCash})

	assert.ErrorIs(t, err, domain.ErrValidation)
	// Still summarizing: nothing was lost.
	assert.Equal(t, session.StateSummarizing, c.Snapshot().State)
}

func TestCommit_UnknownPaymentRejected(t *testing.T) {
	c, _, _, _ := newSession(t)
	ctx := context.Background()
	_, err := c.Start(ctx)
	require.NoError(t, err)
	_, err = c.Stop()
	require.NoError(t, err)

	_, err = c.Commit(ctx, session.CommitInput{Fare: 10, Payment: "IOU"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCommit_StoreFailureKeepsRide(t *testing.T) {
	feed := &fakeFeed{fix: domain.LatLng{Lat: 5.60, Lng: -0.18}}
	c := session.New(&failingStore{store.NewMemStore(nil)}, feed, nil)
	t.Cleanup(c.Close)
	ctx := context.Background()

	_, err := c.Start(ctx)
	require.NoError(t, err)
	_, err = c.Stop()
	require.NoError(t, err)

	_, err = c.Commit(ctx, session.CommitInput{Fare: 25, Payment: domain.PaymentCash})

	require.Error(t, err)
	// The driver can retry: the ride and its route survive the failed save.
	assert.Equal(t, session.StateSummarizing, c.Snapshot().State)
	assert.NotNil(t, c.Snapshot().Trip)
}

// ---- display helpers -------------------------------------------------------

func TestEstimateGross(t *testing.T) {
	// base 5 + 0.9/minute
	assert.InDelta(t, 5.0, session.EstimateGross(0), 1e-9)
	assert.InDelta(t, 5.9, session.EstimateGross(60), 1e-9)
	assert.InDelta(t, 5.975, session.EstimateGross(65), 1e-9)
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00", session.FormatElapsed(0))
	assert.Equal(t, "01:05", session.FormatElapsed(65))
	assert.Equal(t, "1:00:01", session.FormatElapsed(3601))
}

func TestSnapshot_IdleHasNoTrip(t *testing.T) {
	c, _, _, _ := newSession(t)

	snap := c.Snapshot()

	assert.Equal(t, session.StateIdle, snap.State)
	assert.Nil(t, snap.Trip)
	assert.Zero(t, snap.EstimatedGross)
}
