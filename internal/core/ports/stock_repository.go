// internal/core/ports/stock_repository.go
package ports

import (
	"context"
	"time"

	"github.com/sntracker/backend/internal/core/domain"
)

// ScanFilter narrows an inventory scan. Zero values mean "no filter".
// Brand and SKU are exact matches served by indexes; Search is a substring
// match on serial number and SKU and walks more rows, so callers should
// prefer the exact fields when they know them.
type ScanFilter struct {
	Brand  string
	SKU    string
	Status domain.StockStatus
	Search string
}

// StockRepository defines the persistence port for serialized inventory.
// This interface is implemented by the database adapter.
type StockRepository interface {
	FindBySerial(ctx context.Context, serial string) (*domain.StockItem, error)
	Scan(ctx context.Context, filter ScanFilter) ([]domain.StockItem, error)

	// UpsertMany writes items keyed by serial number, fully replacing any
	// existing record with the same serial. Writes are chunked to the
	// backend batch limit; atomicity holds per chunk only, and a failure
	// mid-stream surfaces as a domain.PartialBatchError carrying the count
	// already committed.
	UpsertMany(ctx context.Context, items []domain.StockItem) (int, error)

	UpdatePrice(ctx context.Context, serial string, price int64) error

	// MarkSoldAll flips status Ready->Sold for every given serial in one
	// statement, touching only rows still Ready, and returns the serials it
	// actually updated.
	MarkSoldAll(ctx context.Context, serials []string, soldAt time.Time) ([]string, error)

	DeleteOne(ctx context.Context, serial string) error

	// DeleteAll removes every record by paging through the table in bounded
	// groups until a page comes back empty. Returns the number removed.
	DeleteAll(ctx context.Context) (int64, error)

	Count(ctx context.Context) (int64, error)
}
