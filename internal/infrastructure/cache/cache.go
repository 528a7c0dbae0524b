// Package cache provides the process-wide bounded TTL cache for ranked offer
// lists. Entries are evicted by age on read and by capacity on write; there
// is no background sweeper and no teardown.
package cache

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"pricefinder/search-api/internal/domain/search"
)

type entry struct {
	offers     []search.Offer
	insertedAt time.Time
}

// ResultCache implements search.ResultCache.
type ResultCache struct {
	ttl      time.Duration
	capacity int
	now      func() time.Time

	mu      sync.Mutex
	entries map[uint64]entry
}

var _ search.ResultCache = (*ResultCache)(nil)

// New creates a ResultCache with the given TTL and capacity.
func New(ttl time.Duration, capacity int) *ResultCache {
	return NewWithClock(ttl, capacity, time.Now)
}

// NewWithClock creates a cache with an injectable clock (for tests).
func NewWithClock(ttl time.Duration, capacity int, now func() time.Time) *ResultCache {
	return &ResultCache{
		ttl:      ttl,
		capacity: capacity,
		now:      now,
		entries:  make(map[uint64]entry),
	}
}

// Get returns the stored offers when the entry is younger than the TTL.
// Stale entries are treated as absent, not purged.
func (c *ResultCache) Get(key uint64) ([]search.Offer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.insertedAt) >= c.ttl {
		return nil, false
	}
	return e.offers, true
}

// Put inserts or overwrites the entry for key with the current timestamp.
// When the map then exceeds capacity, the single oldest entry is removed.
func (c *ResultCache) Put(key uint64, offers []search.Offer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{offers: offers, insertedAt: c.now()}

	if len(c.entries) <= c.capacity {
		return
	}

	var oldestKey uint64
	var oldestAt time.Time
	first := true
	for k, e := range c.entries {
		if first || e.insertedAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.insertedAt
			first = false
		}
	}
	delete(c.entries, oldestKey)
	log.Debug().Uint64("evicted_key", oldestKey).Msg("result cache evicted oldest entry")
}

// Len reports the current number of entries.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
