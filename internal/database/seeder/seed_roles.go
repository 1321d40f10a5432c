package seeder

import (
	"context"
	"fmt"

	"skill-ready/internal/database"
)

// RolesSeeder inserts a starter role with a benchmark so a fresh install can
// calculate a readiness score immediately.
type RolesSeeder struct{}

func (RolesSeeder) Name() string { return "roles" }

func (RolesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "roles", "id", "title", "description", "is_active"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "role_benchmarks", "id", "role_id", "skill_id", "weight", "importance", "is_active"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	_, err = tx.Exec(
		ctx,
		`INSERT INTO roles (id, title, description, is_active)
		 VALUES (gen_random_uuid(), $1, $2, TRUE)
		 ON CONFLICT (title) DO NOTHING`,
		"Frontend Intern",
		"Entry-level frontend position",
	)
	if err != nil {
		return err
	}

	entries := []struct {
		Skill      string
		Weight     float64
		Importance string
	}{
		{Skill: "HTML", Weight: 10, Importance: "required"},
		{Skill: "CSS", Weight: 10, Importance: "required"},
		{Skill: "React", Weight: 5, Importance: "optional"},
	}

	for _, e := range entries {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO role_benchmarks (id, role_id, skill_id, weight, importance, is_active)
			 SELECT gen_random_uuid(), r.id, s.id, $1, $2, TRUE
			 FROM roles r, skills s
			 WHERE r.title = $3 AND s.name = $4
			 ON CONFLICT (role_id, skill_id) DO NOTHING`,
			e.Weight,
			e.Importance,
			"Frontend Intern",
			e.Skill,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
