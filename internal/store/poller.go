package store

import (
	"context"
	"sync"
	"time"

	"github.com/carlapp/ride-ledger/internal/domain"
)

// Poller re-reads the ledger at a fixed interval and caches the latest
// snapshot. The display path reads the cache instead of hitting the store on
// every render; changes committed outside the current view become visible
// within one poll interval. This is a polling refresh, not a change
// notification — acceptable staleness equals the interval.
type Poller struct {
	store    Store
	interval time.Duration

	mu       sync.RWMutex
	snapshot domain.Ledger
}

// NewPoller builds a Poller over s. An interval <= 0 falls back to 2s, the
// refresh cadence the app has always used.
func NewPoller(s Store, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Poller{store: s, interval: interval, snapshot: domain.EmptyLedger()}
}

// Run polls until ctx is cancelled. It performs one immediate load so the
// snapshot is warm before the first tick. Blocks; run it in a goroutine.
func (p *Poller) Run(ctx context.Context) {
	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

// Snapshot returns the most recently polled ledger.
func (p *Poller) Snapshot() domain.Ledger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

// Refresh forces an immediate re-read, for callers that just wrote and want
// the next render to see it without waiting out the interval.
func (p *Poller) Refresh(ctx context.Context) {
	p.refresh(ctx)
}

func (p *Poller) refresh(ctx context.Context) {
	ledger := p.store.Load(ctx)
	p.mu.Lock()
	p.snapshot = ledger
	p.mu.Unlock()
}
