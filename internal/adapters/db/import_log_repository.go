// internal/adapters/db/import_log_repository.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/ports"
)

// importLogRepository implements ports.ImportLogRepository
type importLogRepository struct {
	db           *Database
	logger       *slog.Logger
	wipePageSize int
}

// NewImportLogRepository creates a new import audit log repository
func NewImportLogRepository(db *Database, wipePageSize int, logger *slog.Logger) ports.ImportLogRepository {
	return &importLogRepository{
		db:           db,
		logger:       logger.With(slog.String("repository", "import_log")),
		wipePageSize: wipePageSize,
	}
}

// Append writes one audit entry
func (r *importLogRepository) Append(ctx context.Context, entry *domain.ImportLogEntry) error {
	detail, err := json.Marshal(entry.ItemsDetail)
	if err != nil {
		return fmt.Errorf("failed to marshal items detail: %w", err)
	}

	query := `
		INSERT INTO import_logs (id, created_at, actor, method, total_items, items_detail)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.Exec(ctx, query,
		entry.ID, entry.Timestamp, entry.Actor, entry.Method, entry.TotalItems, detail,
	)
	if err != nil {
		return domain.NewStoreError("append_import_log", err)
	}

	r.logger.DebugContext(ctx, "import log appended",
		slog.String("id", entry.ID.String()),
		slog.String("method", string(entry.Method)),
		slog.Int("total_items", entry.TotalItems))

	return nil
}

// List retrieves the most recent entries, newest first
func (r *importLogRepository) List(ctx context.Context, limit int) ([]domain.ImportLogEntry, error) {
	query := `
		SELECT id, created_at, actor, method, total_items, items_detail
		FROM import_logs
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import logs: %w", err)
	}
	defer rows.Close()

	var entries []domain.ImportLogEntry
	for rows.Next() {
		entry, err := scanImportLogEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

func scanImportLogEntry(row pgx.Row) (*domain.ImportLogEntry, error) {
	var entry domain.ImportLogEntry
	var detail []byte

	err := row.Scan(
		&entry.ID, &entry.Timestamp, &entry.Actor, &entry.Method,
		&entry.TotalItems, &detail,
	)
	if err != nil {
		return nil, err
	}

	if len(detail) > 0 {
		if err := json.Unmarshal(detail, &entry.ItemsDetail); err != nil {
			return nil, fmt.Errorf("failed to unmarshal items detail: %w", err)
		}
	}
	return &entry, nil
}

// DeleteAll removes every audit entry in bounded pages
func (r *importLogRepository) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAllPaged(ctx, r.db, "import_logs", "id", r.wipePageSize)
}

// Count returns the total number of audit entries
func (r *importLogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM import_logs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count import logs: %w", err)
	}
	return count, nil
}
