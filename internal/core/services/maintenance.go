// internal/core/services/maintenance.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/ports"
)

// MaintenanceService performs ad hoc single-record corrections. These are
// intentionally not audit-logged: they exist for fixing typos, and the
// low-friction path is the design, not an oversight.
type MaintenanceService struct {
	stock       ports.StockRepository
	invalidator ports.Invalidator
	logger      *slog.Logger
}

// Statically assert that *MaintenanceService implements the MaintenanceService interface.
var _ ports.MaintenanceService = (*MaintenanceService)(nil)

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(stock ports.StockRepository, invalidator ports.Invalidator, logger *slog.Logger) *MaintenanceService {
	return &MaintenanceService{
		stock:       stock,
		invalidator: orNoopInvalidator(invalidator),
		logger:      logger.With(slog.String("service", "maintenance")),
	}
}

// UpdatePrice sets a new price on one unit
func (s *MaintenanceService) UpdatePrice(ctx context.Context, serial string, newPrice int64) error {
	if serial == "" {
		return domain.NewValidationError("serial_number", "serial_number is required")
	}
	if newPrice < 0 {
		return domain.NewValidationError("price", "price cannot be negative")
	}

	if err := s.stock.UpdatePrice(ctx, serial, newPrice); err != nil {
		return fmt.Errorf("failed to update price for %s: %w", serial, err)
	}

	s.invalidator.InvalidateInventory(ctx)

	s.logger.InfoContext(ctx, "price updated",
		slog.String("serial_number", serial),
		slog.Int64("new_price", newPrice))

	return nil
}

// DeleteItem removes one unit. This is the only way to revert a sale:
// delete the record and re-ingest it.
func (s *MaintenanceService) DeleteItem(ctx context.Context, serial string) error {
	if serial == "" {
		return domain.NewValidationError("serial_number", "serial_number is required")
	}

	if err := s.stock.DeleteOne(ctx, serial); err != nil {
		return fmt.Errorf("failed to delete %s: %w", serial, err)
	}

	s.invalidator.InvalidateInventory(ctx)

	s.logger.InfoContext(ctx, "stock item deleted",
		slog.String("serial_number", serial))

	return nil
}
