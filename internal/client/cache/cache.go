// Package cache implements the client's keyed read cache. A key is the
// logical operation name plus its canonicalized parameters; two reads with
// equal keys share one cached result and one in-flight request. Mutations
// invalidate the keys for the collections they affect, so the next read is a
// fresh network call rather than a stale hit.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Status is the client-visible state of a key.
type Status int

const (
	StatusMiss Status = iota
	StatusLoading
	StatusSuccess
)

// Key composes a cache key from an operation name and its canonical query
// encoding. An empty query yields the bare operation name.
func Key(op, params string) string {
	if params == "" {
		return op
	}
	return op + "?" + params
}

type entry struct {
	data      any
	fetchedAt time.Time
}

type inflight struct {
	done chan struct{}
	data any
	err  error
}

// Cache is safe for concurrent use. Failed fetches are not cached; a later
// read with the same key retries.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*entry
	inflight map[string]*inflight
}

func New() *Cache {
	return &Cache{
		entries:  make(map[string]*entry),
		inflight: make(map[string]*inflight),
	}
}

// GetOrFetch returns the cached value for key, joining an in-flight fetch if
// one is already underway, and otherwise runs fetch and caches its result.
// Exactly one fetch runs per key at a time.
func (c *Cache) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	c.mu.Lock()

	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return e.data, nil
	}

	if f, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-f.done:
			return f.data, f.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f := &inflight{done: make(chan struct{})}
	c.inflight[key] = f
	c.mu.Unlock()

	data, err := fetch(ctx)

	c.mu.Lock()
	f.data, f.err = data, err
	if err == nil {
		c.entries[key] = &entry{data: data, fetchedAt: time.Now()}
	}
	delete(c.inflight, key)
	c.mu.Unlock()
	close(f.done)

	return data, err
}

// Status reports whether key is cached, being fetched, or absent.
func (c *Cache) Status(key string) Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return StatusSuccess
	}
	if _, ok := c.inflight[key]; ok {
		return StatusLoading
	}
	return StatusMiss
}

// Peek returns the cached value and its fetch time without triggering a fetch.
func (c *Cache) Peek(key string) (any, time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, time.Time{}, false
	}
	return e.data, e.fetchedAt, true
}

// Invalidate drops the exact keys given.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
}

// InvalidateOp drops every cached key belonging to the given operation,
// regardless of parameters.
func (c *Cache) InvalidateOp(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k == op || strings.HasPrefix(k, op+"?") {
			delete(c.entries, k)
		}
	}
}

// Clear wipes the whole cache. Called on logout.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}
