// internal/workers/backup_processor.go
package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/tealeg/xlsx/v3"

	"github.com/sntracker/backend/internal/adapters/storage"
	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/ports"
)

const backupContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BackupProcessor periodically snapshots the inventory and ledger into an
// xlsx workbook stored in S3. Workbooks are staged in tempDir before upload;
// a failed upload leaves the staged file for the cleanup sweep.
type BackupProcessor struct {
	read    ports.InventoryReadService
	storage storage.StorageClient
	tempDir string
	logger  *slog.Logger
}

// NewBackupProcessor creates a new backup processor
func NewBackupProcessor(read ports.InventoryReadService, storage storage.StorageClient, tempDir string, logger *slog.Logger) *BackupProcessor {
	return &BackupProcessor{
		read:    read,
		storage: storage,
		tempDir: tempDir,
		logger:  logger.With(slog.String("processor", "backup")),
	}
}

// ProcessSnapshot handles a backup:snapshot task. It writes the full
// inventory and the full transaction ledger as two sheets of one workbook.
func (p *BackupProcessor) ProcessSnapshot(ctx context.Context, t *asynq.Task) error {
	var payload BackupPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal backup payload: %w", err)
		}
	}

	p.logger.InfoContext(ctx, "starting inventory snapshot",
		slog.String("requested_by", payload.RequestedBy))

	items, err := p.read.ScanInventory(ctx, ports.ScanFilter{})
	if err != nil {
		return fmt.Errorf("failed to scan inventory for snapshot: %w", err)
	}

	transactions, err := p.read.ListTransactions(ctx, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to list transactions for snapshot: %w", err)
	}

	staged, err := p.stageSnapshotFile(items, transactions)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(staged)
	if err != nil {
		return fmt.Errorf("failed to read staged snapshot: %w", err)
	}

	key := storage.BackupKey(time.Now())
	location, err := p.storage.Upload(ctx, key, bytes.NewReader(data), backupContentType)
	if err != nil {
		// keep the staged file; the cleanup sweep reclaims it
		return fmt.Errorf("failed to upload snapshot: %w", err)
	}
	if err := os.Remove(staged); err != nil {
		p.logger.WarnContext(ctx, "failed to remove staged snapshot",
			slog.String("file", staged),
			slog.Any("error", err))
	}

	p.logger.InfoContext(ctx, "inventory snapshot uploaded",
		slog.String("key", key),
		slog.String("location", location),
		slog.Int("items", len(items)),
		slog.Int("transactions", len(transactions)),
		slog.Int("bytes", len(data)))

	return nil
}

// stageSnapshotFile writes the workbook into the export temp directory and
// returns its path.
func (p *BackupProcessor) stageSnapshotFile(items []domain.StockItem, transactions []domain.Transaction) (string, error) {
	data, err := buildSnapshotWorkbook(items, transactions)
	if err != nil {
		return "", fmt.Errorf("failed to build snapshot workbook: %w", err)
	}

	file, err := os.CreateTemp(p.tempDir, "snapshot-*.xlsx")
	if err != nil {
		return "", fmt.Errorf("failed to stage snapshot file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to write staged snapshot: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close staged snapshot: %w", err)
	}
	return file.Name(), nil
}

func buildSnapshotWorkbook(items []domain.StockItem, transactions []domain.Transaction) ([]byte, error) {
	file := xlsx.NewFile()

	inventory, err := file.AddSheet("Inventory")
	if err != nil {
		return nil, fmt.Errorf("failed to add inventory sheet: %w", err)
	}

	header := inventory.AddRow()
	for _, h := range []string{"Serial Number", "Brand", "SKU", "Price", "Status", "Created At", "Sold At"} {
		cell := header.AddCell()
		cell.Value = h
		cell.GetStyle().Font.Bold = true
	}

	for _, item := range items {
		row := inventory.AddRow()
		row.AddCell().Value = item.SerialNumber
		row.AddCell().Value = item.Brand
		row.AddCell().Value = item.SKU
		row.AddCell().SetInt64(item.Price)
		row.AddCell().Value = string(item.Status)
		row.AddCell().Value = item.CreatedAt.Format(time.RFC3339)
		if item.SoldAt != nil {
			row.AddCell().Value = item.SoldAt.Format(time.RFC3339)
		} else {
			row.AddCell().Value = ""
		}
	}

	ledger, err := file.AddSheet("Transactions")
	if err != nil {
		return nil, fmt.Errorf("failed to add transactions sheet: %w", err)
	}

	header = ledger.AddRow()
	for _, h := range []string{"Transaction ID", "Timestamp", "Actor", "Items", "Serial Numbers", "Total Bill"} {
		cell := header.AddCell()
		cell.Value = h
		cell.GetStyle().Font.Bold = true
	}

	for _, trx := range transactions {
		row := ledger.AddRow()
		row.AddCell().Value = trx.TransactionID
		row.AddCell().Value = trx.Timestamp.Format(time.RFC3339)
		row.AddCell().Value = trx.Actor
		row.AddCell().SetInt(trx.ItemsCount)
		row.AddCell().Value = strings.Join(trx.ItemSerialNumbers, ", ")
		row.AddCell().SetInt64(trx.TotalBill)
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buffer.Bytes(), nil
}
