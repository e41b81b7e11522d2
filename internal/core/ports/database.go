// internal/core/ports/database.go
package ports

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database is the narrow view of the postgres pool that non-repository
// code (health probes, ad-hoc queries in tooling) depends on. Repositories
// use the concrete adapter directly since they need transactions and
// batches.
type Database interface {
	// Ping verifies connectivity; Health adds pool statistics for the
	// health endpoint.
	Ping(ctx context.Context) error
	Health(ctx context.Context) map[string]interface{}

	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)

	Pool() *pgxpool.Pool
	Close()
}
