package schedport

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
)

// DBTx abstracts the statement surface of the load transaction. The schema
// builder and the entity resolver run every statement through this interface,
// which decouples them from pgx-specific transaction types and makes them
// testable without a database.
//
// Thread-Safety: NOT safe for concurrent use. The load transaction is owned
// by a single goroutine for the duration of one run.
type DBTx interface {
	// Exec executes a statement without returning any rows.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// QueryRow executes a query that is expected to return at most one row.
	// Always returns a non-nil Row. Errors are deferred until Row's Scan
	// method is called.
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// Row represents a single row returned by QueryRow.
// This interface decouples from pgx.Row.
type Row interface {
	// Scan reads the values from the row into dest values.
	// Returns an error if no row was found or if the scan fails.
	Scan(dest ...any) error
}
