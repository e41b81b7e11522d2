// internal/core/ports/cache.go
package ports

import (
	"context"
	"time"
)

// CacheRepository defines the interface for cache operations
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}) error
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error

	// GetOrSet reads through: on a miss it calls fetch, stores the result
	// with the given TTL and fills dest.
	GetOrSet(ctx context.Context, key string, dest interface{},
		fetch func() (interface{}, error), ttl time.Duration) error

	Flush(ctx context.Context) error
	Ping(ctx context.Context) error
}

// Invalidator is the write-side signal: every mutating core operation
// (ingest, checkout, maintenance, wipe) announces that cached reads are now
// stale. The core emits the signal; it never owns a cache itself.
type Invalidator interface {
	InvalidateInventory(ctx context.Context)
	InvalidateTransactions(ctx context.Context)
	InvalidateImportLogs(ctx context.Context)
}
