// Package location adapts best-effort device geolocation for the rest of
// the app. The device (via the UI) reports fixes in; the ride session and
// region gate consume them as a one-shot coordinate or a continuous watch.
//
// The feed never buffers missed updates: each fix overwrites the current
// position. Fixes are assumed to arrive in non-decreasing time order from
// the device sensor; no reordering is attempted.
package location

import (
	"context"
	"sync"
	"time"

	"github.com/carlapp/ride-ledger/internal/domain"
)

// DefaultCenter is the fallback coordinate when no fix is available —
// central Accra, where the app's drivers operate.
var DefaultCenter = domain.LatLng{Lat: 5.6037, Lng: -0.1870}

// DefaultTimeout bounds how long a one-shot acquisition waits for a first
// fix before falling back. The UI must never stall on GPS.
const DefaultTimeout = 5 * time.Second

// Provider is the capability surface the ride session and region gate
// consume. Current is best-effort and may fail; Watch delivers each new fix
// until the returned cancel is called.
type Provider interface {
	Current(ctx context.Context) (domain.LatLng, error)
	Watch(fn func(domain.LatLng)) (cancel func())
}

// Feed is the production Provider. Fixes arrive via Report and fan out to
// watchers, mirroring a continuous device watch.
type Feed struct {
	timeout time.Duration

	mu       sync.Mutex
	last     domain.LatLng
	hasFix   bool
	nextID   int
	watchers map[int]func(domain.LatLng)
	waiters  []chan domain.LatLng
}

// NewFeed builds a Feed. A timeout <= 0 uses DefaultTimeout.
func NewFeed(timeout time.Duration) *Feed {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Feed{
		timeout:  timeout,
		watchers: make(map[int]func(domain.LatLng)),
	}
}

// Report records a new device fix, wakes any pending one-shot acquisitions,
// and invokes every watcher. Watcher callbacks run on the reporter's
// goroutine and must be quick.
func (f *Feed) Report(fix domain.LatLng) {
	f.mu.Lock()
	f.last = fix
	f.hasFix = true
	for _, ch := range f.waiters {
		ch <- fix
	}
	f.waiters = nil
	fns := make([]func(domain.LatLng), 0, len(f.watchers))
	for _, fn := range f.watchers {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(fix)
	}
}

// Current returns the best-effort current coordinate. The last known fix is
// returned immediately when one exists; otherwise Current waits up to the
// feed's timeout for a first fix and then falls back to DefaultCenter.
// The fallback path returns no error — inability to locate the device is a
// degraded mode, not a failure the caller should surface.
func (f *Feed) Current(ctx context.Context) (domain.LatLng, error) {
	f.mu.Lock()
	if f.hasFix {
		last := f.last
		f.mu.Unlock()
		return last, nil
	}
	ch := make(chan domain.LatLng, 1)
	f.waiters = append(f.waiters, ch)
	f.mu.Unlock()

	timer := time.NewTimer(f.timeout)
	defer timer.Stop()

	select {
	case fix := <-ch:
		return fix, nil
	case <-timer.C:
		return DefaultCenter, nil
	case <-ctx.Done():
		return DefaultCenter, ctx.Err()
	}
}

// LastKnown returns the most recent fix and whether one has been reported.
func (f *Feed) LastKnown() (domain.LatLng, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, f.hasFix
}

// Watch subscribes fn to every subsequent fix. The returned cancel detaches
// the subscription and is idempotent. Callers must cancel when tracking
// stops or the callback keeps firing against stale state.
func (f *Feed) Watch(fn func(domain.LatLng)) (cancel func()) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.watchers[id] = fn
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.watchers, id)
			f.mu.Unlock()
		})
	}
}
