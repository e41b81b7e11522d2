// internal/core/services/ingest.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/ports"
)

// Required spreadsheet columns, lower-cased
var requiredColumns = []string{"brand", "sku", "price", "sn"}

// IngestService validates and bulk-loads new stock records. All writes go
// through the stock repository's upsert so a re-import of the same serials
// overwrites instead of duplicating.
type IngestService struct {
	stock       ports.StockRepository
	importLog   ports.ImportLogRepository
	invalidator ports.Invalidator
	chunkSize   int
	logger      *slog.Logger
}

// Statically assert that *IngestService implements the IngestService interface.
var _ ports.IngestService = (*IngestService)(nil)

// NewIngestService creates a new ingestion service. chunkSize bounds each
// underlying batch write; values below 1 fall back to the default.
func NewIngestService(stock ports.StockRepository, importLog ports.ImportLogRepository,
	invalidator ports.Invalidator, chunkSize int, logger *slog.Logger) *IngestService {

	if chunkSize < 1 {
		chunkSize = 500
	}
	return &IngestService{
		stock:       stock,
		importLog:   importLog,
		invalidator: orNoopInvalidator(invalidator),
		chunkSize:   chunkSize,
		logger:      logger.With(slog.String("service", "ingest")),
	}
}

// IngestManual loads one serial per non-blank line, all sharing the given
// brand/sku/price. Returns the number of units written.
func (s *IngestService) IngestManual(ctx context.Context, actor, brand, sku string, price int64, serials []string) (int, error) {
	if brand == "" {
		return 0, domain.NewValidationError("brand", "brand is required")
	}
	if sku == "" {
		return 0, domain.NewValidationError("sku", "sku is required")
	}
	if price < 0 {
		return 0, domain.NewValidationError("price", "price cannot be negative")
	}

	items := make([]domain.StockItem, 0, len(serials))
	for _, raw := range serials {
		sn := strings.TrimSpace(raw)
		if sn == "" {
			continue
		}
		item := domain.StockItem{
			SerialNumber: sn,
			Brand:        brand,
			SKU:          sku,
			Price:        price,
			Status:       domain.StatusReady,
		}
		item.PrepareForStorage()
		items = append(items, item)
	}

	if len(items) == 0 {
		return 0, domain.NewValidationError("sn", "no serial numbers provided")
	}

	count, err := s.writeChunked(ctx, items, nil)
	if err != nil {
		return count, err
	}

	if err := s.appendLog(ctx, actor, domain.MethodManualInput, items); err != nil {
		return count, &domain.AuditLogError{Committed: count, Err: err}
	}

	s.logger.InfoContext(ctx, "manual ingestion completed",
		slog.String("actor", actor),
		slog.String("brand", brand),
		slog.String("sku", sku),
		slog.Int("count", count))

	return count, nil
}

// IngestRows loads tabular rows from a spreadsheet upload. The import is
// all-or-nothing at the validation stage: a missing column or a non-numeric
// price fails the whole upload before the first write.
func (s *IngestService) IngestRows(ctx context.Context, actor string, columns []string,
	rows []map[string]string, progress ports.ProgressFunc) (*ports.IngestResult, error) {

	if missing := missingColumns(columns); len(missing) > 0 {
		return nil, domain.NewValidationError("columns",
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}

	items := make([]domain.StockItem, 0, len(rows))
	for i, row := range rows {
		sn := strings.TrimSpace(row["sn"])
		if sn == "" || strings.EqualFold(sn, "nan") {
			continue
		}

		price, err := parsePrice(row["price"])
		if err != nil {
			return nil, domain.NewValidationError("price",
				fmt.Sprintf("row %d (sn %s): %v", i+1, sn, err))
		}

		item := domain.StockItem{
			SerialNumber: sn,
			Brand:        strings.TrimSpace(row["brand"]),
			SKU:          strings.TrimSpace(row["sku"]),
			Price:        price,
			Status:       domain.StatusReady,
		}
		item.PrepareForStorage()
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, domain.NewValidationError("rows", "no importable rows found")
	}

	count, err := s.writeChunked(ctx, items, progress)
	if err != nil {
		return &ports.IngestResult{Count: count, Message: "import failed mid-stream"}, err
	}

	if err := s.appendLog(ctx, actor, domain.MethodSpreadsheetImport, items); err != nil {
		return &ports.IngestResult{Count: count, Message: "imported but audit log write failed"},
			&domain.AuditLogError{Committed: count, Err: err}
	}

	s.logger.InfoContext(ctx, "spreadsheet ingestion completed",
		slog.String("actor", actor),
		slog.Int("rows_in", len(rows)),
		slog.Int("count", count))

	return &ports.IngestResult{
		Count:   count,
		Message: fmt.Sprintf("imported %d items", count),
	}, nil
}

// writeChunked upserts items in caller-visible chunks. Chunks already
// committed stay committed when a later chunk fails; the error reports the
// true count so nothing is lost.
func (s *IngestService) writeChunked(ctx context.Context, items []domain.StockItem, progress ports.ProgressFunc) (int, error) {
	written := 0
	chunkIdx := 0

	for i := 0; i < len(items); i += s.chunkSize {
		end := i + s.chunkSize
		if end > len(items) {
			end = len(items)
		}

		n, err := s.stock.UpsertMany(ctx, items[i:end])
		written += n
		if err != nil {
			return written, &domain.PartialBatchError{
				Committed: written,
				Chunk:     chunkIdx,
				Err:       err,
			}
		}

		chunkIdx++
		if progress != nil {
			progress(written, len(items))
		}
	}

	s.invalidator.InvalidateInventory(ctx)
	return written, nil
}

func (s *IngestService) appendLog(ctx context.Context, actor string, method domain.ImportMethod, items []domain.StockItem) error {
	entry := domain.NewImportLogEntry(actor, method, items)
	if err := s.importLog.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to record import log: %w", err)
	}
	s.invalidator.InvalidateImportLogs(ctx)
	return nil
}

func missingColumns(columns []string) []string {
	have := make(map[string]bool, len(columns))
	for _, c := range columns {
		have[strings.ToLower(strings.TrimSpace(c))] = true
	}

	var missing []string
	for _, c := range requiredColumns {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// parsePrice coerces a spreadsheet cell to a whole currency amount. Cells
// like "100000" and "100000.0" are accepted; anything else is rejected.
func parsePrice(raw string) (int64, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("price is empty")
	}

	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("price cannot be negative")
		}
		return n, nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("price %q is not numeric", raw)
	}
	if f != float64(int64(f)) {
		return 0, fmt.Errorf("price %q is not a whole amount", raw)
	}
	if f < 0 {
		return 0, fmt.Errorf("price cannot be negative")
	}
	return int64(f), nil
}
