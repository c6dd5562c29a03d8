package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vk/flowbricks/internal/ctxlog"
)

// Clock abstracts time so cache expiry can be tested.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// Cache owns a Source and rebuilds an Index from it once the cached one is
// older than the TTL. A zero TTL disables caching.
type Cache struct {
	source Source
	ttl    time.Duration
	clock  Clock

	mu       sync.Mutex
	index    *Index
	loadedAt time.Time

	// OnReload, if set, is called after each successful rebuild.
	OnReload func(units int)
}

// NewCache creates a cache in front of source. A nil clock means SystemClock.
func NewCache(source Source, ttl time.Duration, clock Clock) *Cache {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Cache{source: source, ttl: ttl, clock: clock}
}

// Index returns the cached index, reloading it when stale.
func (c *Cache) Index(ctx context.Context) (*Index, error) {
	logger := ctxlog.FromContext(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if c.index != nil && c.ttl > 0 && now.Sub(c.loadedAt) < c.ttl {
		return c.index, nil
	}

	logger.Debug("Loading catalog from source.")
	units, err := c.source.Units(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	idx, err := NewIndex(units)
	if err != nil {
		return nil, fmt.Errorf("building catalog index: %w", err)
	}

	c.index = idx
	c.loadedAt = now
	logger.Debug("Catalog loaded.", "units", idx.Len())
	if c.OnReload != nil {
		c.OnReload(idx.Len())
	}
	return idx, nil
}

// Invalidate drops the cached index so the next call reloads it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = nil
}
