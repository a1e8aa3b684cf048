package daemon

import (
	"context"
	"sync"
	"time"
)

// Debouncer coalesces bursts of rebuild requests into single triggers.
// Catalog edits usually arrive as several filesystem events in quick
// succession; a trigger fires only after the quiet window passes without a
// new request, and never later than MaxDelay after the first request of a
// burst.
type Debouncer struct {
	quiet    time.Duration
	maxDelay time.Duration

	mu      sync.Mutex
	pending bool
	firstAt time.Time
	lastAt  time.Time
	out     chan struct{}
}

// NewDebouncer creates a debouncer with the given quiet window. MaxDelay
// defaults to ten quiet windows.
func NewDebouncer(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = 500 * time.Millisecond
	}
	return &Debouncer{
		quiet:    quiet,
		maxDelay: 10 * quiet,
		out:      make(chan struct{}, 1),
	}
}

// Request records one rebuild request.
func (d *Debouncer) Request() {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := time.Now()
	if !d.pending {
		d.pending = true
		d.firstAt = now
	}
	d.lastAt = now
}

// Triggers returns the channel a coalesced trigger is delivered on.
func (d *Debouncer) Triggers() <-chan struct{} {
	return d.out
}

// Run polls the pending state and emits triggers until ctx is done. One
// goroutine per debouncer.
func (d *Debouncer) Run(ctx context.Context) {
	tick := time.NewTicker(d.quiet / 4)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if d.fire(time.Now()) {
				select {
				case d.out <- struct{}{}:
				default:
				}
			}
		}
	}
}

func (d *Debouncer) fire(now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.pending {
		return false
	}
	if now.Sub(d.lastAt) >= d.quiet || now.Sub(d.firstAt) >= d.maxDelay {
		d.pending = false
		return true
	}
	return false
}
