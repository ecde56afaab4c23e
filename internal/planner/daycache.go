package planner

import (
	"strings"
	"sync"
	"time"

	"github.com/example/dayplanner/internal/schedule"
)

// dayCache stores recently materialized day views to avoid re-deriving the
// same day for repeated reads while the underlying aggregate is unchanged.
// Every mutation of a user's data must invalidate that user's entries.
type dayCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[string]dayCacheEntry
}

type dayCacheEntry struct {
	day       schedule.DayData
	expiresAt time.Time
}

func newDayCache(ttl time.Duration, maxEntries int, now func() time.Time) *dayCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if maxEntries <= 0 {
		maxEntries = 256
	}
	if now == nil {
		now = time.Now
	}
	return &dayCache{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]dayCacheEntry),
	}
}

func (c *dayCache) Get(key string) (schedule.DayData, bool) {
	if c == nil {
		return schedule.DayData{}, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return schedule.DayData{}, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return schedule.DayData{}, false
	}
	return entry.day.Clone(), true
}

func (c *dayCache) Store(key string, day schedule.DayData) {
	if c == nil {
		return
	}
	cloned := day.Clone()
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked()
	if len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[key] = dayCacheEntry{day: cloned, expiresAt: expiry}
}

// InvalidateUser drops every cached day belonging to the user.
func (c *dayCache) InvalidateUser(userID string) {
	if c == nil {
		return
	}
	prefix := userID + "|"
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

func (c *dayCache) cleanupLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *dayCache) evictOneLocked() {
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}

func dayCacheKey(userID string, day schedule.DayTime) string {
	return userID + "|" + day.Key()
}
