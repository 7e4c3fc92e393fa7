package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ternarybob/propcast/internal/models"
)

type memoryEntry struct {
	report    *models.ProjectionReport
	expiresAt time.Time
}

// MemoryCache is a process-local report cache with per-entry expiry.
// Expired entries are dropped when they are read or on the next Set.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates a memory cache; now is the clock used for expiry
func NewMemoryCache(ttl time.Duration, now func() time.Time) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (*models.ProjectionReport, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.report, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, report *models.ProjectionReport) error {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for k, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = memoryEntry{report: report, expiresAt: now.Add(c.ttl)}
	return nil
}

// Len returns the number of entries, expired or not
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryCache) Close() error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}
