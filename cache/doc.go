// Package cache provides the in-memory TTL store used to serve repeated
// read-only API calls without spending rate-limit tokens.
//
// MemoryStore is a TTL cache with a bounded entry count and LRU eviction.
// ReadThrough wraps it with deterministic keying and singleflight collapse,
// so concurrent identical lookups share one upstream call. Mutating
// operations never go through the cache; services invalidate affected key
// prefixes instead.
package cache
