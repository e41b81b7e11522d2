// internal/core/services/inventory.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/ports"
)

// InventoryService is the read surface over stock, ledger and import log
type InventoryService struct {
	stock     ports.StockRepository
	ledger    ports.LedgerRepository
	importLog ports.ImportLogRepository
	logger    *slog.Logger
}

// Statically assert that *InventoryService implements the InventoryReadService interface.
var _ ports.InventoryReadService = (*InventoryService)(nil)

// NewInventoryService creates a new inventory read service
func NewInventoryService(stock ports.StockRepository, ledger ports.LedgerRepository,
	importLog ports.ImportLogRepository, logger *slog.Logger) *InventoryService {

	return &InventoryService{
		stock:     stock,
		ledger:    ledger,
		importLog: importLog,
		logger:    logger.With(slog.String("service", "inventory")),
	}
}

// GetItem retrieves one unit by serial number
func (s *InventoryService) GetItem(ctx context.Context, serial string) (*domain.StockItem, error) {
	if serial == "" {
		return nil, domain.NewValidationError("serial_number", "serial_number is required")
	}

	item, err := s.stock.FindBySerial(ctx, serial)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock item %s: %w", serial, err)
	}
	return item, nil
}

// ScanInventory returns items matching the filter
func (s *InventoryService) ScanInventory(ctx context.Context, filter ports.ScanFilter) ([]domain.StockItem, error) {
	items, err := s.stock.Scan(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to scan inventory: %w", err)
	}
	return items, nil
}

// ListTransactions returns ledger entries, newest first, optionally bounded
// by a date range.
func (s *InventoryService) ListTransactions(ctx context.Context, from, to *time.Time) ([]domain.Transaction, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.NewValidationError("range", "date range end precedes start")
	}

	trxs, err := s.ledger.List(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return trxs, nil
}

// ListImportLogs returns the most recent ingestion log entries
func (s *InventoryService) ListImportLogs(ctx context.Context, limit int) ([]domain.ImportLogEntry, error) {
	if limit < 1 {
		limit = 20
	}

	logs, err := s.importLog.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import logs: %w", err)
	}
	return logs, nil
}
