// Package seeder populates baseline reference rows (skill vocabulary, demo
// roles and benchmarks) after migrations have run. Every seeder is
// idempotent so the runner can execute on each boot.
package seeder

import (
	"context"

	"skill-ready/internal/database"
)

// Seeder inserts one logical data set. Run must be safe to call repeatedly.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
