// internal/core/services/admin.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/ports"
)

// Collection names accepted by WipeCollection.
const (
	CollectionInventory    = "inventory"
	CollectionTransactions = "transactions"
	CollectionImportLogs   = "import_logs"
)

// AdminService performs destructive administrative operations
type AdminService struct {
	stock       ports.StockRepository
	ledger      ports.LedgerRepository
	importLog   ports.ImportLogRepository
	invalidator ports.Invalidator
	logger      *slog.Logger
}

// Statically assert that *AdminService implements the AdminService interface.
var _ ports.AdminService = (*AdminService)(nil)

// NewAdminService creates a new admin service
func NewAdminService(stock ports.StockRepository, ledger ports.LedgerRepository,
	importLog ports.ImportLogRepository, invalidator ports.Invalidator, logger *slog.Logger) *AdminService {

	return &AdminService{
		stock:       stock,
		ledger:      ledger,
		importLog:   importLog,
		invalidator: orNoopInvalidator(invalidator),
		logger:      logger.With(slog.String("service", "admin")),
	}
}

// WipeCollection deletes every record in the named collection and returns
// how many rows were removed. Deletion is paged inside the repository, so
// a partial failure leaves earlier pages deleted.
func (s *AdminService) WipeCollection(ctx context.Context, name string) (int64, error) {
	var (
		deleted int64
		err     error
	)

	switch name {
	case CollectionInventory:
		deleted, err = s.stock.DeleteAll(ctx)
		if err == nil {
			s.invalidator.InvalidateInventory(ctx)
		}
	case CollectionTransactions:
		deleted, err = s.ledger.DeleteAll(ctx)
		if err == nil {
			s.invalidator.InvalidateTransactions(ctx)
		}
	case CollectionImportLogs:
		deleted, err = s.importLog.DeleteAll(ctx)
		if err == nil {
			s.invalidator.InvalidateImportLogs(ctx)
		}
	default:
		return 0, domain.NewValidationError("collection", fmt.Sprintf("unknown collection: %s", name))
	}

	if err != nil {
		return deleted, fmt.Errorf("failed to wipe collection %s: %w", name, err)
	}

	s.logger.Warn("Collection wiped",
		slog.String("collection", name),
		slog.Int64("deleted", deleted))

	return deleted, nil
}
