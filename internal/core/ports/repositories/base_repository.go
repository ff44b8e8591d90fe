package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction at the default isolation level
	Begin(ctx context.Context) (pgx.Tx, error)

	// BeginWithOptions starts a transaction with explicit isolation and access mode
	BeginWithOptions(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error
}
