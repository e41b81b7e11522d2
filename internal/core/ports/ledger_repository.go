// internal/core/ports/ledger_repository.go
package ports

import (
	"context"
	"time"

	"github.com/sntracker/backend/internal/core/domain"
)

// LedgerRepository is the append-only transaction history port. There is no
// update: a transaction is written exactly once by checkout and only the
// administrative wipe removes entries.
type LedgerRepository interface {
	// CommitSale persists one checkout as an atomic unit: the inventory
	// status flips and the ledger insert either all become visible or none
	// do. Returns a domain.ConflictError when any requested unit is no
	// longer Ready.
	CommitSale(ctx context.Context, trx *domain.Transaction) error

	FindByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	List(ctx context.Context, from, to *time.Time) ([]domain.Transaction, error)
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// ImportLogRepository is the append-only stock-ingestion audit trail port.
type ImportLogRepository interface {
	Append(ctx context.Context, entry *domain.ImportLogEntry) error
	List(ctx context.Context, limit int) ([]domain.ImportLogEntry, error)
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}
