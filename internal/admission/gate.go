package admission

import (
	"sync"
	"time"
)

// Gate is the admission-control gate protecting the completion provider.
// It admits at most limit requests per key within a rolling window.
// Exceeding the quota is a normal boolean outcome, not an error.
type Gate struct {
	store  Store
	limit  int
	window time.Duration

	// mu makes the check-then-act sequence atomic so two concurrent
	// requests cannot both take the last slot.
	mu  sync.Mutex
	now func() time.Time
}

// NewGate creates a gate over the given store
func NewGate(store Store, limit int, window time.Duration) *Gate {
	if limit <= 0 {
		limit = 1
	}
	return &Gate{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// CheckLimit records an attempt for key and reports whether it is admitted.
// Over-quota attempts are not recorded.
func (g *Gate) CheckLimit(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	count := g.store.Count(key, now.Add(-g.window))
	if count >= g.limit {
		return false
	}

	g.store.Append(key, now)
	return true
}

// Remaining returns the number of requests key may still make in the
// current window, clamped to zero.
func (g *Gate) Remaining(key string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	count := g.store.Count(key, g.now().Add(-g.window))
	if count >= g.limit {
		return 0
	}
	return g.limit - count
}

// AdvisoryGate is the client-side variant: the same window algorithm
// keyed to a single local identity. It short-circuits obviously
// over-quota requests before any network cost. The server-side gate
// remains authoritative.
type AdvisoryGate struct {
	gate *Gate
}

const advisoryKey = "local"

// NewAdvisoryGate creates an advisory gate with its own private store
func NewAdvisoryGate(limit int, window time.Duration) *AdvisoryGate {
	return &AdvisoryGate{gate: NewGate(NewMemoryStore(), limit, window)}
}

// Allow records a local attempt and reports whether it is within quota
func (a *AdvisoryGate) Allow() bool {
	return a.gate.CheckLimit(advisoryKey)
}

// Remaining returns the local estimate of requests left in the window
func (a *AdvisoryGate) Remaining() int {
	return a.gate.Remaining(advisoryKey)
}
