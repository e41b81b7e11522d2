// internal/adapters/db/ledger_repository.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/ports"
)

// ledgerRepository implements ports.LedgerRepository
type ledgerRepository struct {
	db           *Database
	logger       *slog.Logger
	wipePageSize int
}

// NewLedgerRepository creates a new transaction ledger repository
func NewLedgerRepository(db *Database, wipePageSize int, logger *slog.Logger) ports.LedgerRepository {
	return &ledgerRepository{
		db:           db,
		logger:       logger.With(slog.String("repository", "ledger")),
		wipePageSize: wipePageSize,
	}
}

// CommitSale flips every cart unit Ready->Sold and appends the ledger row
// in one transaction. If any unit raced away, the whole transaction rolls
// back and the stale serials come back in a domain.ConflictError.
func (r *ledgerRepository) CommitSale(ctx context.Context, trx *domain.Transaction) error {
	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		updated, err := markSoldAll(ctx, tx, trx.ItemSerialNumbers, trx.Timestamp)
		if err != nil {
			return err
		}

		if len(updated) != len(trx.ItemSerialNumbers) {
			sold := make(map[string]bool, len(updated))
			for _, sn := range updated {
				sold[sn] = true
			}
			var stale []string
			for _, sn := range trx.ItemSerialNumbers {
				if !sold[sn] {
					stale = append(stale, sn)
				}
			}
			return &domain.ConflictError{Serials: stale}
		}

		details, err := json.Marshal(trx.ItemDetails)
		if err != nil {
			return fmt.Errorf("failed to marshal item details: %w", err)
		}

		query := `
			INSERT INTO transactions (
				transaction_id, created_at, actor, item_serial_numbers,
				item_details, total_bill, items_count
			) VALUES ($1, $2, $3, $4, $5, $6, $7)`

		_, err = tx.Exec(ctx, query,
			trx.TransactionID, trx.Timestamp, trx.Actor, trx.ItemSerialNumbers,
			details, trx.TotalBill, trx.ItemsCount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "sale committed",
		slog.String("transaction_id", trx.TransactionID),
		slog.Int("items", trx.ItemsCount))

	return nil
}

const transactionColumns = `transaction_id, created_at, actor, item_serial_numbers, item_details, total_bill, items_count`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var trx domain.Transaction
	var details []byte

	err := row.Scan(
		&trx.TransactionID, &trx.Timestamp, &trx.Actor, &trx.ItemSerialNumbers,
		&details, &trx.TotalBill, &trx.ItemsCount,
	)
	if err != nil {
		return nil, err
	}

	if len(details) > 0 {
		if err := json.Unmarshal(details, &trx.ItemDetails); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item details: %w", err)
		}
	}
	return &trx, nil
}

// FindByID retrieves one transaction by its ledger id
func (r *ledgerRepository) FindByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1`

	trx, err := scanTransaction(r.db.QueryRow(ctx, query, transactionID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	return trx, nil
}

// List retrieves transactions newest first, optionally bounded by created_at
func (r *ledgerRepository) List(ctx context.Context, from, to *time.Time) ([]domain.Transaction, error) {
	qb := squirrel.Select(
		"transaction_id", "created_at", "actor", "item_serial_numbers",
		"item_details", "total_bill", "items_count",
	).From("transactions").
		PlaceholderFormat(squirrel.Dollar)

	if from != nil {
		qb = qb.Where(squirrel.GtOrEq{"created_at": *from})
	}
	if to != nil {
		qb = qb.Where(squirrel.LtOrEq{"created_at": *to})
	}
	qb = qb.OrderBy("created_at DESC")

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var trxs []domain.Transaction
	for rows.Next() {
		trx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		trxs = append(trxs, *trx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return trxs, nil
}

// DeleteAll removes every transaction in bounded pages
func (r *ledgerRepository) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAllPaged(ctx, r.db, "transactions", "transaction_id", r.wipePageSize)
}

// Count returns the total number of ledger entries
func (r *ledgerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}
