// Package politeness enforces a minimum delay between consecutive
// requests to the same host.
//
// Responsibilities:
//   - Gate: one rate.Limiter per host, lazily created, guarding a minimum
//     inter-request interval without blocking unrelated hosts
package politeness

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Gate hands out one rate.Limiter per host, configured so that at most one
// request per delay interval is admitted. A host seen for the first time
// is admitted immediately (burst of 1), matching an unvisited host being
// immediately accessible.
type Gate struct {
	mu       sync.Mutex
	delay    time.Duration
	limiters map[string]*rate.Limiter
}

// NewGate returns a Gate enforcing delay between requests to any one host.
func NewGate(delay time.Duration) *Gate {
	return &Gate{
		delay:    delay,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Wait blocks the caller until host's next request slot opens, then
// returns. The package lock is only held long enough to look up or create
// host's limiter; the actual wait happens on the limiter itself, which
// tracks per-host state independently, so concurrent Wait calls for
// different hosts never block each other.
func (g *Gate) Wait(ctx context.Context, host string) error {
	limiter := g.limiterFor(host)
	return limiter.Wait(ctx)
}

func (g *Gate) limiterFor(host string) *rate.Limiter {
	g.mu.Lock()
	defer g.mu.Unlock()

	if limiter, ok := g.limiters[host]; ok {
		return limiter
	}

	limiter := rate.NewLimiter(rate.Every(g.delay), 1)
	g.limiters[host] = limiter
	return limiter
}
