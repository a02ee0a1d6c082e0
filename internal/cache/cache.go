// Package cache provides per-portfolio memoization of computed summaries.
// The cache is a latency optimization only: disabling it never changes
// results, and a version check on every read backstops missed invalidations.
package cache

import (
	"sync"
	"sync/atomic"

	"github.com/mheijden/portfolio-tracker/internal/model"
)

type entry struct {
	version int64
	summary model.PortfolioSummary
}

// SummaryCache keeps the last computed summary per portfolio together with
// the ledger version it was computed against.
type SummaryCache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	recomputes atomic.Int64
}

// NewSummaryCache creates an empty SummaryCache.
func NewSummaryCache() *SummaryCache {
	return &SummaryCache{
		entries: make(map[string]entry),
	}
}

// GetOrCompute returns the cached summary for the portfolio when the stored
// ledger version matches the given one; otherwise it runs compute, replaces
// the entry, and returns the fresh summary. Errors from compute are returned
// unchanged and nothing is cached for them, so a failing summary (an oversold
// ledger, for example) fails identically on every read until the ledger
// changes.
func (c *SummaryCache) GetOrCompute(portfolioID string, version int64, compute func() (model.PortfolioSummary, error)) (model.PortfolioSummary, error) {
	c.mu.RLock()
	cached, ok := c.entries[portfolioID]
	c.mu.RUnlock()

	if ok && cached.version == version {
		return cached.summary, nil
	}

	c.recomputes.Add(1)
	summary, err := compute()
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	c.mu.Lock()
	c.entries[portfolioID] = entry{version: version, summary: summary}
	c.mu.Unlock()

	return summary, nil
}

// Invalidate drops the cached summary for the portfolio. Called on every
// append before the append is acknowledged to its caller.
func (c *SummaryCache) Invalidate(portfolioID string) {
	c.mu.Lock()
	delete(c.entries, portfolioID)
	c.mu.Unlock()
}

// Recomputes returns the number of times compute has been invoked. Used by
// tests to verify that cache hits skip the full fold.
func (c *SummaryCache) Recomputes() int64 {
	return c.recomputes.Load()
}
