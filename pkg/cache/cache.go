// Package cache stores computed counts and census tables behind a small
// byte-oriented interface.
//
// Generated trees and partitions are never cached: they are cheap to
// regenerate and a full enumeration does not fit in memory anyway. What is
// worth keeping is the result of a verification walk, which can take minutes
// for larger sizes.
//
// Backends:
//   - [FileCache]: JSON entry files under a directory (CLI default)
//   - [MemoryCache]: a bounded in-process LRU (API server default)
//   - [RedisCache]: a shared Redis instance
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: caching disabled
//
// [Open] picks one from a [Config].
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for serialized results.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any connections held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	// Clear removes all entries and returns how many were removed, or -1
	// when the backend cannot tell.
	Clear(ctx context.Context) (int, error)
}

// TTLs for cached results. Counts are pure functions of their parameters, so
// entries only expire to bound cache growth.
const (
	TTLCount  = 30 * 24 * time.Hour
	TTLCensus = 30 * 24 * time.Hour
)

// Keyer builds cache keys.
type Keyer interface {
	// CountKey is the key for the number of objects of kind with the given
	// parameters, e.g. CountKey("partitions", 10, 4).
	CountKey(kind string, params ...int) string

	// CensusKey is the key for a count table of kind up to max.
	CensusKey(kind string, max int) string
}

// DefaultKeyer builds unscoped keys of the form "count:<kind>:<hash>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// CountKey implements Keyer.
func (DefaultKeyer) CountKey(kind string, params ...int) string {
	return hashKey("count:"+kind, params)
}

// CensusKey implements Keyer.
func (DefaultKeyer) CensusKey(kind string, max int) string {
	return hashKey("census:"+kind, max)
}
