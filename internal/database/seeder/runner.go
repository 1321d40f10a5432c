package seeder

import (
	"context"
	"fmt"

	"skill-ready/internal/database"
)

// Runner executes its seeders in order and stops at the first failure so a
// broken seed never leaves later data sets half-applied on top of it.
type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for i, s := range r.Seeders {
		if s == nil {
			return fmt.Errorf("seeder at index %d is nil", i)
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}
