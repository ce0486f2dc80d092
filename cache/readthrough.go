package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// LoaderFunc fetches the value on a cache miss.
type LoaderFunc func(ctx context.Context) ([]byte, error)

// ReadThrough serves read-only lookups from a Store, collapsing concurrent
// identical misses into a single upstream call. Errors are never cached.
type ReadThrough struct {
	store Store
	ttl   time.Duration
	group singleflight.Group
}

// NewReadThrough creates a read-through wrapper. ttl<=0 disables caching
// entirely; loads always go upstream.
func NewReadThrough(store Store, ttl time.Duration) *ReadThrough {
	return &ReadThrough{store: store, ttl: ttl}
}

// Get returns the cached value for (operation, input), loading and caching
// it on a miss. The bool reports whether the value came from cache.
func (r *ReadThrough) Get(ctx context.Context, operation string, input any, load LoaderFunc) ([]byte, bool, error) {
	if r == nil || r.ttl <= 0 {
		data, err := load(ctx)
		return data, false, err
	}

	key, err := Key(operation, input)
	if err != nil {
		// Unkeyable input - fetch without caching.
		data, err := load(ctx)
		return data, false, err
	}

	if cached, ok := r.store.Get(ctx, key); ok {
		return cached, true, nil
	}

	data, err, _ := r.group.Do(key, func() (any, error) {
		// Re-check under the flight: a concurrent caller may have filled
		// the store between our miss and this call.
		if cached, ok := r.store.Get(ctx, key); ok {
			return cached, nil
		}
		fetched, err := load(ctx)
		if err != nil {
			return nil, err
		}
		_ = r.store.Set(ctx, key, fetched, r.ttl)
		return fetched, nil
	})
	if err != nil {
		return nil, false, err
	}
	return data.([]byte), false, nil
}

// Invalidate drops every cached value for an operation.
func (r *ReadThrough) Invalidate(ctx context.Context, operations ...string) {
	if r == nil {
		return
	}
	for _, op := range operations {
		_ = r.store.DeletePrefix(ctx, Prefix(op))
	}
}
