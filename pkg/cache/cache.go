// Package cache stores pipeline results.
//
// [Cache] is a small byte-oriented key/value interface with three backends:
// [NullCache] (caching disabled), [FileCache] (the CLI default, one JSON file
// per entry under the user cache directory) and [RedisCache] (shared between
// API instances). [Keyer] builds the keys so that the CLI and the API agree
// on them.
//
// Expansion results depend on the formula definitions and on what is
// installed, so keys include fingerprints of both; editing a definition or
// installing a keg changes the key rather than requiring invalidation.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per result kind.
const (
	TTLDeps    = 24 * time.Hour
	TTLTree    = 24 * time.Hour
	TTLUpgrade = time.Hour
)

// Cache is a key/value store for serialized results.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}
