package storage

import (
	"sync"

	"charizard.ecotrip.dev/internal/models"
)

// SummaryCache caches one FootprintSummary per user alongside a generation
// marker. Every write to a user's events bumps the generation via
// Invalidate; a recomputation captures the generation before reading events
// and passes it back to Put, which drops the result if another write landed
// in between. That keeps read-your-writes intact without holding any store
// lock across the recomputation.
type SummaryCache struct {
	mu          sync.Mutex
	entries     map[string]models.FootprintSummary
	generations map[string]uint64
}

// NewSummaryCache creates an empty cache.
func NewSummaryCache() *SummaryCache {
	return &SummaryCache{
		entries:     make(map[string]models.FootprintSummary),
		generations: make(map[string]uint64),
	}
}

// Get returns the cached summary for userID if present, plus the user's
// current generation for a later Put.
func (c *SummaryCache) Get(userID string) (models.FootprintSummary, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	summary, ok := c.entries[userID]
	return summary, c.generations[userID], ok
}

// Put stores a freshly computed summary, unless the user's generation moved
// since the caller fetched it (a concurrent write invalidated the inputs).
func (c *SummaryCache) Put(userID string, summary models.FootprintSummary, generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[userID] != generation {
		return
	}
	c.entries[userID] = summary
}

// Invalidate evicts the user's cached summary and bumps the generation.
// Called exactly once per mutating write.
func (c *SummaryCache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[userID]++
	delete(c.entries, userID)
}

// Clear drops every cached summary and bumps every known generation, for
// bulk event deletion.
func (c *SummaryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for userID := range c.entries {
		c.generations[userID]++
	}
	for userID := range c.generations {
		if _, cached := c.entries[userID]; !cached {
			c.generations[userID]++
		}
	}
	c.entries = make(map[string]models.FootprintSummary)
}
