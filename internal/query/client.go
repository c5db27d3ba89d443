// Package query implements the client-side query cache behind the lecture
// data layer. The cache is an explicit object with scoped lifetime: it is
// created once at startup and passed to whatever needs it, never reached
// through package-level state. Invalidation is observable through an
// explicit subscription interface so that cross-query rules (for example
// "a list invalidation refreshes open detail entries") live in the caller,
// not inside the cache.
package query

import (
	"context"
	"sync"
	"time"
)

// Metrics receives cache events. The zero-value client uses a no-op.
type Metrics interface {
	CacheHit(ctx context.Context, scope string)
	CacheMiss(ctx context.Context, scope string)
	CacheInvalidation(ctx context.Context, scope string)
}

type noopMetrics struct{}

func (noopMetrics) CacheHit(context.Context, string)          {}
func (noopMetrics) CacheMiss(context.Context, string)         {}
func (noopMetrics) CacheInvalidation(context.Context, string) {}

// Observer is notified after a key has been invalidated.
type Observer func(Key)

type entry struct {
	value     any
	stale     bool
	fetchedAt time.Time
}

// Client is a mutex-confined cache keyed by (scope, user, lecture).
// Writes are last-writer-wins; there is no cross-key transactionality.
type Client struct {
	mu      sync.Mutex
	entries map[Key]*entry
	subs    map[int]Observer
	nextSub int
	metrics Metrics
}

type Option func(*Client)

// WithMetrics reports cache hits, misses and invalidations to m.
func WithMetrics(m Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func New(opts ...Option) *Client {
	c := &Client{
		entries: make(map[Key]*entry),
		subs:    make(map[int]Observer),
		metrics: noopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the cached value for key if it is present and fresh,
// otherwise runs fn and caches its result. Errors are never cached.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && !e.stale {
		v := e.value.(T)
		c.mu.Unlock()
		c.metrics.CacheHit(ctx, key.Scope)
		return v, nil
	}
	c.mu.Unlock()
	c.metrics.CacheMiss(ctx, key.Scope)

	v, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = &entry{value: v, fetchedAt: time.Now()}
	c.mu.Unlock()
	return v, nil
}

// Invalidate marks the entry for key stale and notifies observers.
// The notification fires even when nothing is cached under key, so
// observers can react to invalidation events for queries they track
// but the cache has never seen.
func (c *Client) Invalidate(key Key) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		e.stale = true
	}
	subs := c.observers()
	c.mu.Unlock()

	c.metrics.CacheInvalidation(context.Background(), key.Scope)
	for _, fn := range subs {
		fn(key)
	}
}

// InvalidateUser invalidates every key in scope belonging to userID.
func (c *Client) InvalidateUser(scope, userID string) {
	c.mu.Lock()
	var stale []Key
	for k, e := range c.entries {
		if k.Scope == scope && k.UserID == userID {
			e.stale = true
			stale = append(stale, k)
		}
	}
	subs := c.observers()
	c.mu.Unlock()

	for _, k := range stale {
		c.metrics.CacheInvalidation(context.Background(), k.Scope)
		for _, fn := range subs {
			fn(k)
		}
	}
}

// Drop removes the entry for key without notifying observers.
func (c *Client) Drop(key Key) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Subscribe registers an observer for invalidation events and returns
// a function that removes it.
func (c *Client) Subscribe(fn Observer) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Stale reports whether key is cached but marked stale.
func (c *Client) Stale(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return ok && e.stale
}

// Cached reports whether key has a cached entry, stale or not.
func (c *Client) Cached(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// observers snapshots the subscription list; callers hold c.mu.
func (c *Client) observers() []Observer {
	out := make([]Observer, 0, len(c.subs))
	for _, fn := range c.subs {
		out = append(out, fn)
	}
	return out
}
