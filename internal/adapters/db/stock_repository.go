// internal/adapters/db/stock_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/ports"
)

// upsertBatchLimit bounds one pgx batch. Callers may hand us arbitrarily
// large slices; we split so a single round trip never carries more.
const upsertBatchLimit = 1000

// stockRepository implements ports.StockRepository
type stockRepository struct {
	db           *Database
	logger       *slog.Logger
	wipePageSize int
}

// NewStockRepository creates a new stock repository. wipePageSize bounds one
// DELETE statement during a full wipe.
func NewStockRepository(db *Database, wipePageSize int, logger *slog.Logger) ports.StockRepository {
	return &stockRepository{
		db:           db,
		logger:       logger.With(slog.String("repository", "stock")),
		wipePageSize: wipePageSize,
	}
}

const stockColumns = `serial_number, brand, sku, price, status, created_at, sold_at`

func scanStockItem(row pgx.Row) (*domain.StockItem, error) {
	var item domain.StockItem
	err := row.Scan(
		&item.SerialNumber, &item.Brand, &item.SKU, &item.Price,
		&item.Status, &item.CreatedAt, &item.SoldAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindBySerial retrieves one unit by serial number
func (r *stockRepository) FindBySerial(ctx context.Context, serial string) (*domain.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM inventory WHERE serial_number = $1`

	item, err := scanStockItem(r.db.QueryRow(ctx, query, serial))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find stock item: %w", err)
	}

	return item, nil
}

// Scan retrieves stock items matching the filter, newest first
func (r *stockRepository) Scan(ctx context.Context, filter ports.ScanFilter) ([]domain.StockItem, error) {
	qb := squirrel.Select(
		"serial_number", "brand", "sku", "price", "status", "created_at", "sold_at",
	).From("inventory").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Brand != "" {
		qb = qb.Where(squirrel.Eq{"brand": filter.Brand})
	}
	if filter.SKU != "" {
		qb = qb.Where(squirrel.Eq{"sku": filter.SKU})
	}
	if filter.Status != "" {
		qb = qb.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		qb = qb.Where(squirrel.Or{
			squirrel.ILike{"serial_number": pattern},
			squirrel.ILike{"sku": pattern},
		})
	}

	qb = qb.OrderBy("created_at DESC", "serial_number ASC")

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build scan query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to scan inventory: %w", err)
	}
	defer rows.Close()

	var items []domain.StockItem
	for rows.Next() {
		var item domain.StockItem
		err := rows.Scan(
			&item.SerialNumber, &item.Brand, &item.SKU, &item.Price,
			&item.Status, &item.CreatedAt, &item.SoldAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

// UpsertMany writes items keyed by serial number. Each internal batch runs
// in its own transaction; a failure reports how many items landed before it.
func (r *stockRepository) UpsertMany(ctx context.Context, items []domain.StockItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO inventory (serial_number, brand, sku, price, status, created_at, sold_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (serial_number) DO UPDATE SET
			brand = EXCLUDED.brand,
			sku = EXCLUDED.sku,
			price = EXCLUDED.price,
			status = EXCLUDED.status,
			created_at = EXCLUDED.created_at,
			sold_at = EXCLUDED.sold_at`

	written := 0
	for start := 0; start < len(items); start += upsertBatchLimit {
		end := start + upsertBatchLimit
		if end > len(items) {
			end = len(items)
		}
		chunk := items[start:end]

		err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
			batch := &pgx.Batch{}
			for i := range chunk {
				batch.Queue(query,
					chunk[i].SerialNumber, chunk[i].Brand, chunk[i].SKU, chunk[i].Price,
					chunk[i].Status, chunk[i].CreatedAt, chunk[i].SoldAt,
				)
			}

			br := tx.SendBatch(ctx, batch)
			defer br.Close()

			for i := range chunk {
				if _, err := br.Exec(); err != nil {
					return fmt.Errorf("failed to upsert item %d (%s): %w", i, chunk[i].SerialNumber, err)
				}
			}
			return nil
		})
		if err != nil {
			return written, domain.NewStoreError("upsert_many", err)
		}

		written += len(chunk)
	}

	r.logger.DebugContext(ctx, "stock items upserted", slog.Int("count", written))
	return written, nil
}

// UpdatePrice sets a new price on one unit
func (r *stockRepository) UpdatePrice(ctx context.Context, serial string, price int64) error {
	query := `UPDATE inventory SET price = $2 WHERE serial_number = $1`

	tag, err := r.db.Exec(ctx, query, serial, price)
	if err != nil {
		return domain.NewStoreError("update_price", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// MarkSoldAll flips status Ready->Sold for the given serials in a single
// statement. Rows that are already Sold (or missing) are left untouched and
// absent from the returned list, so callers can detect the race.
func (r *stockRepository) MarkSoldAll(ctx context.Context, serials []string, soldAt time.Time) ([]string, error) {
	return markSoldAll(ctx, r.db, serials, soldAt)
}

type execQuerier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// markSoldAll runs the conditional status flip against either the pool or
// an open transaction.
func markSoldAll(ctx context.Context, q execQuerier, serials []string, soldAt time.Time) ([]string, error) {
	query := `
		UPDATE inventory
		SET status = $1, sold_at = $2
		WHERE serial_number = ANY($3) AND status = $4
		RETURNING serial_number`

	rows, err := q.Query(ctx, query, domain.StatusSold, soldAt, serials, domain.StatusReady)
	if err != nil {
		return nil, domain.NewStoreError("mark_sold", err)
	}
	defer rows.Close()

	updated := make([]string, 0, len(serials))
	for rows.Next() {
		var sn string
		if err := rows.Scan(&sn); err != nil {
			return nil, fmt.Errorf("failed to scan updated serial: %w", err)
		}
		updated = append(updated, sn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return updated, nil
}

// DeleteOne performs a hard delete of one unit
func (r *stockRepository) DeleteOne(ctx context.Context, serial string) error {
	query := `DELETE FROM inventory WHERE serial_number = $1`

	tag, err := r.db.Exec(ctx, query, serial)
	if err != nil {
		return domain.NewStoreError("delete_one", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	r.logger.InfoContext(ctx, "stock item deleted", slog.String("serial_number", serial))
	return nil
}

// DeleteAll removes every record in bounded pages, looping until a page
// deletes nothing. Each page commits on its own, so an interrupted wipe
// leaves the table smaller, never inconsistent.
func (r *stockRepository) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAllPaged(ctx, r.db, "inventory", "serial_number", r.wipePageSize)
}

// deleteAllPaged wipes a table in pages keyed by its primary key column.
func deleteAllPaged(ctx context.Context, db *Database, table, keyColumn string, pageSize int) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s IN (SELECT %s FROM %s LIMIT %d)`,
		table, keyColumn, keyColumn, table, pageSize)

	var total int64
	for {
		tag, err := db.Exec(ctx, query)
		if err != nil {
			return total, domain.NewStoreError("delete_all", err)
		}
		if tag.RowsAffected() == 0 {
			return total, nil
		}
		total += tag.RowsAffected()
	}
}

// Count returns the total number of stock records
func (r *stockRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM inventory`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count inventory: %w", err)
	}
	return count, nil
}
