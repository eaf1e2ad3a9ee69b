package cache

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Loader fetches the value for a key on a cache miss.
type Loader[V any] func(ctx context.Context, key string) (V, error)

// Recorder observes cache hits and misses.
type Recorder interface {
	CacheHit(cache string)
	CacheMiss(cache string)
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is an in-process read-through cache with one fixed time-to-live for
// every key. Failed loads are never stored. Entries are only dropped once
// they expire and are looked up again.
type TTL[V any] struct {
	name     string
	ttl      time.Duration
	clock    clock.Clock
	load     Loader[V]
	recorder Recorder

	mu      sync.Mutex
	entries map[string]entry[V]
}

// Option configures a TTL cache.
type Option[V any] func(*TTL[V])

// WithRecorder reports hits and misses to r.
func WithRecorder[V any](r Recorder) Option[V] {
	return func(c *TTL[V]) {
		c.recorder = r
	}
}

// NewTTL builds a cache named name whose misses are served by load.
func NewTTL[V any](name string, ttl time.Duration, clk clock.Clock, load Loader[V], opts ...Option[V]) *TTL[V] {
	if clk == nil {
		clk = clock.New()
	}
	c := &TTL[V]{
		name:    name,
		ttl:     ttl,
		clock:   clk,
		load:    load,
		entries: make(map[string]entry[V]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value for key, loading and storing it on a miss.
func (c *TTL[V]) Get(ctx context.Context, key string) (V, error) {
	if v, ok := c.lookup(key); ok {
		if c.recorder != nil {
			c.recorder.CacheHit(c.name)
		}
		return v, nil
	}
	if c.recorder != nil {
		c.recorder.CacheMiss(c.name)
	}
	return c.Refresh(ctx, key)
}

// Refresh loads key unconditionally and replaces the cached entry on success.
func (c *TTL[V]) Refresh(ctx context.Context, key string) (V, error) {
	// The lock is not held while loading; concurrent misses for the same key
	// may each call the loader and the last one stored wins.
	v, err := c.load(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = entry[V]{value: v, expiresAt: c.clock.Now().Add(c.ttl)}
	c.mu.Unlock()
	return v, nil
}

// Invalidate removes key from the cache.
func (c *TTL[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *TTL[V]) lookup(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}
