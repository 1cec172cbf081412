// Package cache keeps per-site robots policies for the lifetime of the
// process.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/crawlward/crawlward/internal/robots"
)

// FetchFunc retrieves a fresh policy for a site. Injectable so tests
// run without a network.
type FetchFunc func(ctx context.Context, site string) (*robots.Policy, error)

// Cache maps sites to their most recently fetched policy. Entries are
// replaced wholesale: Put swaps the pointer under the lock, so a reader
// holding the previous snapshot keeps a fully consistent policy and
// never observes a half-built one.
type Cache struct {
	ttl   time.Duration
	fetch FetchFunc

	mu       sync.RWMutex
	policies map[string]*robots.Policy
}

// New returns a Cache that refreshes entries older than ttl via fetch.
// A ttl of zero means entries never expire.
func New(ttl time.Duration, fetch FetchFunc) *Cache {
	return &Cache{
		ttl:      ttl,
		fetch:    fetch,
		policies: make(map[string]*robots.Policy),
	}
}

// Get returns the cached policy for site if present and fresh.
func (c *Cache) Get(site string) (*robots.Policy, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.policies[site]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && time.Since(p.LastRefreshed) > c.ttl {
		return nil, false
	}
	return p, true
}

// Put records a policy for site, replacing any previous entry.
func (c *Cache) Put(site string, p *robots.Policy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.policies[site] = p
}

// Lookup returns the policy for site, fetching on a miss or once the
// cached entry has gone stale. Concurrent lookups for one site may
// fetch more than once; the last writer wins, which is harmless since
// every fetch yields a complete snapshot.
func (c *Cache) Lookup(ctx context.Context, site string) (*robots.Policy, error) {
	if p, ok := c.Get(site); ok {
		return p, nil
	}
	p, err := c.fetch(ctx, site)
	if err != nil {
		return nil, err
	}
	c.Put(site, p)
	return p, nil
}
