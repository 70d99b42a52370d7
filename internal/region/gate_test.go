package region_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carlapp/ride-ledger/internal/domain"
	"github.com/carlapp/ride-ledger/internal/region"
)

// mockProvider is a test double for location.Provider.
type mockProvider struct {
	current func(ctx context.Context) (domain.LatLng, error)
}

func (m *mockProvider) Current(ctx context.Context) (domain.LatLng, error) {
	return m.current(ctx)
}

func (m *mockProvider) Watch(func(domain.LatLng)) func() {
	return func() {}
}

func fixedProvider(fix domain.LatLng) *mockProvider {
	return &mockProvider{current: func(context.Context) (domain.LatLng, error) {
		return fix, nil
	}}
}

func TestGate_StartsUnknown(t *testing.T) {
	g := region.NewGate()
	assert.Equal(t, region.StatusUnknown, g.Status())
	assert.False(t, g.Blocked())
}

func TestGate_AccraIsAllowed(t *testing.T) {
	g := region.NewGate()

	status := g.Check(context.Background(), fixedProvider(domain.LatLng{Lat: 5.6, Lng: -0.19}))

	assert.Equal(t, region.StatusAllowed, status)
}

func TestGate_NullIslandIsBlocked(t *testing.T) {
	g := region.NewGate()

	status := g.Check(context.Background(), fixedProvider(domain.LatLng{Lat: 0, Lng: 0}))

	assert.Equal(t, region.StatusBlocked, status)
	assert.True(t, g.Blocked())
}

func TestGate_AcquisitionFailureFailsOpen(t *testing.T) {
	g := region.NewGate()
	failing := &mockProvider{current: func(context.Context) (domain.LatLng, error) {
		return domain.LatLng{}, errors.New("permission denied")
	}}

	status := g.Check(context.Background(), failing)

	assert.Equal(t, region.StatusAllowed, status)
}

func TestGate_DecisionIsTerminal(t *testing.T) {
	g := region.NewGate()
	g.Check(context.Background(), fixedProvider(domain.LatLng{Lat: 0, Lng: 0}))

	// A later in-bounds fix does not unblock the session.
	status := g.Check(context.Background(), fixedProvider(domain.LatLng{Lat: 5.6, Lng: -0.19}))

	assert.Equal(t, region.StatusBlocked, status)
}

func TestInBounds_Edges(t *testing.T) {
	// Corners of the box are inside; just beyond is not.
	assert.True(t, region.InBounds(domain.LatLng{Lat: 4.7, Lng: -3.3}))
	assert.True(t, region.InBounds(domain.LatLng{Lat: 11.2, Lng: 1.2}))
	assert.False(t, region.InBounds(domain.LatLng{Lat: 4.69, Lng: -0.19}))
	assert.False(t, region.InBounds(domain.LatLng{Lat: 5.6, Lng: 1.21}))
}
