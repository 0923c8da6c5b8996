package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/schedport/schedport/pkg/schedport"
)

// TxAdapter adapts pgx.Tx to implement the schedport.DBTx interface.
// This decouples the schema builder and entity resolver from pgx-specific
// transaction types.
//
// Thread-Safety: NOT safe for concurrent use; neither is the underlying pgx.Tx.
type TxAdapter struct {
	tx pgx.Tx
}

// NewTxAdapter creates a new TxAdapter wrapping the given transaction.
func NewTxAdapter(tx pgx.Tx) schedport.DBTx {
	return &TxAdapter{tx: tx}
}

// Exec executes a statement on the transaction.
func (a *TxAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return a.tx.Exec(ctx, sql, args...)
}

// QueryRow executes a query that is expected to return at most one row.
func (a *TxAdapter) QueryRow(ctx context.Context, sql string, args ...any) schedport.Row {
	return &rowAdapter{row: a.tx.QueryRow(ctx, sql, args...)}
}

// rowAdapter adapts pgx.Row to implement schedport.Row.
type rowAdapter struct {
	row pgx.Row
}

// Scan reads the values from the row into dest values.
func (r *rowAdapter) Scan(dest ...any) error {
	return r.row.Scan(dest...)
}

// Verify TxAdapter implements DBTx at compile time
var _ schedport.DBTx = (*TxAdapter)(nil)
