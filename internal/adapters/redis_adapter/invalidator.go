// internal/adapters/redis_adapter/invalidator.go
package redis_a

import (
	"context"
	"log/slog"

	"github.com/sntracker/backend/internal/core/ports"
)

// Invalidator evicts cached reads when the underlying tables change.
// Inventory and transaction changes also evict dashboard aggregates,
// since those are computed over both tables.
type Invalidator struct {
	cache  *Cache
	logger *slog.Logger
}

var _ ports.Invalidator = (*Invalidator)(nil)

// NewInvalidator creates a cache invalidator backed by the given cache.
func NewInvalidator(cache *Cache, logger *slog.Logger) *Invalidator {
	return &Invalidator{
		cache:  cache,
		logger: logger.With(slog.String("component", "cache_invalidator")),
	}
}

func (i *Invalidator) InvalidateInventory(ctx context.Context) {
	i.invalidate(ctx, PrefixInventory, PrefixDashboard)
}

func (i *Invalidator) InvalidateTransactions(ctx context.Context) {
	i.invalidate(ctx, PrefixTransactions, PrefixDashboard)
}

func (i *Invalidator) InvalidateImportLogs(ctx context.Context) {
	i.invalidate(ctx, PrefixImportLogs)
}

// A failed eviction only leaves stale reads until the TTL expires, so it
// is logged rather than surfaced to the write path.
func (i *Invalidator) invalidate(ctx context.Context, prefixes ...CacheKeyPrefix) {
	for _, prefix := range prefixes {
		pattern := string(prefix) + ":*"
		if err := i.cache.DeletePattern(ctx, pattern); err != nil {
			i.logger.WarnContext(ctx, "failed to invalidate cache",
				slog.String("pattern", pattern),
				slog.Any("error", err))
			continue
		}
		i.logger.DebugContext(ctx, "cache invalidated", slog.String("pattern", pattern))
	}
}
