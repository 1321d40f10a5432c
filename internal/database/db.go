// Package database defines the narrow storage contract the repositories are
// written against. Repositories never see a driver type, only these
// interfaces; the postgres subpackage supplies the real implementation.
package database

import (
	"context"
	"database/sql"
)

// Row is a single-row result. Scan reports the driver's no-rows error when
// the query matched nothing.
type Row interface {
	Scan(dest ...any) error
}

// Rows is a multi-row result. Callers must Close and check Err after the
// Next loop.
type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// Tx is a transaction over the same statement surface as DB. Rollback after
// Commit is a no-op so it can sit in a defer.
type Tx interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type DB interface {
	Ping(ctx context.Context) error
	Close() error

	// Exec returns the number of rows affected.
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	Begin(ctx context.Context) (Tx, error)

	// SQLDB exposes a database/sql handle over the same pool for callers that
	// need one, such as the migration runner.
	SQLDB() *sql.DB
}
