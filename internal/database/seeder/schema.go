package seeder

import (
	"context"
	"fmt"

	"skill-ready/internal/database"
)

// EnsureTableColumns fails fast when a seeded table is missing an expected
// column, so a seeder reports a schema drift instead of a confusing SQL error
// mid-insert.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}

	existing, err := publicColumns(ctx, db, table)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}

	for _, col := range columns {
		if col == "" {
			return fmt.Errorf("empty column for table %s", table)
		}
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s", table, col)
		}
	}
	return nil
}

func publicColumns(ctx context.Context, db database.DB, table string) (map[string]struct{}, error) {
	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cols[c] = struct{}{}
	}
	return cols, rows.Err()
}
