// internal/core/ports/services.go
package ports

import (
	"context"
	"time"

	"github.com/sntracker/backend/internal/core/domain"
)

// ProgressFunc is invoked after each committed ingestion chunk so the caller
// can report incremental progress for large uploads. May be nil.
type ProgressFunc func(written, total int)

// IngestResult summarizes a tabular import
type IngestResult struct {
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// IngestService validates and bulk-loads new stock
type IngestService interface {
	// IngestManual loads units that share one brand/sku/price, one serial
	// per non-blank line. Returns the number of units written.
	IngestManual(ctx context.Context, actor, brand, sku string, price int64, serials []string) (int, error)

	// IngestRows loads tabular rows (spreadsheet upload). Required columns
	// are brand, sku, price and sn; a missing column fails the whole import
	// before any write, as does a non-numeric price.
	IngestRows(ctx context.Context, actor string, columns []string, rows []map[string]string, progress ProgressFunc) (*IngestResult, error)
}

// CheckoutService converts a cart into a sale
type CheckoutService interface {
	Checkout(ctx context.Context, actor string, lines []domain.CartLine) (*domain.Transaction, error)
}

// MaintenanceService performs single-record corrections. Deliberately not
// audit-logged; it exists for fixing typos, not for moving stock.
type MaintenanceService interface {
	UpdatePrice(ctx context.Context, serial string, newPrice int64) error
	DeleteItem(ctx context.Context, serial string) error
}

// InventoryReadService is the read surface over stock, ledger and import log
type InventoryReadService interface {
	GetItem(ctx context.Context, serial string) (*domain.StockItem, error)
	ScanInventory(ctx context.Context, filter ScanFilter) ([]domain.StockItem, error)
	ListTransactions(ctx context.Context, from, to *time.Time) ([]domain.Transaction, error)
	ListImportLogs(ctx context.Context, limit int) ([]domain.ImportLogEntry, error)
}

// AdminService owns the destructive reset. Authorization (role + PIN) is the
// caller's responsibility, not the core's.
type AdminService interface {
	WipeCollection(ctx context.Context, name string) (int64, error)
}
