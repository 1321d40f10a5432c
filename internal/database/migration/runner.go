// Package migration applies plain-SQL migration files in version order.
// Files are named V<version>__<name>.sql. Applied versions are recorded in
// schema_migrations together with a sha256 checksum, so an edited
// already-applied file fails loudly instead of silently diverging.
package migration

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// lockKey is an arbitrary constant shared by every instance of this service,
// so concurrent deployments take turns applying migrations.
const lockKey = 584221977

var filenameRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

type Runner struct {
	Dir string
}

type migrationFile struct {
	version  int64
	name     string
	filename string
	sql      string
	checksum string
}

func (r Runner) Run(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("nil db")
	}

	dir := strings.TrimSpace(r.Dir)
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return err
		}
		dir = filepath.Join(filepath.Dir(exe), "migrations")
	}

	files, err := readMigrationDir(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockKey); err != nil {
		return err
	}
	defer func() {
		_, _ = db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockKey)
	}()

	checksums, err := appliedChecksums(ctx, db)
	if err != nil {
		return err
	}

	for _, f := range files {
		if sum, done := checksums[f.version]; done {
			if sum != f.checksum {
				return fmt.Errorf("migration checksum mismatch: version=%d name=%s", f.version, f.name)
			}
			continue
		}
		if err := apply(ctx, db, f); err != nil {
			return err
		}
	}
	return nil
}

func readMigrationDir(dir string) ([]migrationFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	files := make([]migrationFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		parts := filenameRe.FindStringSubmatch(e.Name())
		if parts == nil {
			continue
		}
		version, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid migration version: %s", e.Name())
		}

		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		text := strings.TrimSpace(string(b))
		if text == "" {
			return nil, fmt.Errorf("empty migration file: %s", e.Name())
		}

		sum := sha256.Sum256([]byte(text))
		files = append(files, migrationFile{
			version:  version,
			name:     parts[2],
			filename: e.Name(),
			sql:      text,
			checksum: hex.EncodeToString(sum[:]),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].version < files[j].version })
	for i := 1; i < len(files); i++ {
		if files[i].version == files[i-1].version {
			return nil, fmt.Errorf("duplicate migration version: %d", files[i].version)
		}
	}
	return files, nil
}

func appliedChecksums(ctx context.Context, db *sql.DB) (map[int64]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var version int64
		var checksum string
		if err := rows.Scan(&version, &checksum); err != nil {
			return nil, err
		}
		out[version] = checksum
	}
	return out, rows.Err()
}

func apply(ctx context.Context, db *sql.DB, f migrationFile) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, f.sql); err != nil {
		return fmt.Errorf("apply migration failed: version=%d file=%s: %w", f.version, f.filename, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
		f.version, f.name, f.checksum,
	); err != nil {
		return err
	}
	return tx.Commit()
}
