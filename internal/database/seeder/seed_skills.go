package seeder

import (
	"context"
	"fmt"

	"skill-ready/internal/database"
	"skill-ready/internal/domain/skill"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "normalized_name", "domain", "is_active"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name   string
		Domain string
	}{
		{Name: "HTML", Domain: "Frontend"},
		{Name: "CSS", Domain: "Frontend"},
		{Name: "JavaScript", Domain: "Frontend"},
		{Name: "TypeScript", Domain: "Frontend"},
		{Name: "React", Domain: "Frontend"},
		{Name: "Node.js", Domain: "Backend"},
		{Name: "Express", Domain: "Backend"},
		{Name: "Go", Domain: "Backend"},
		{Name: "Java", Domain: "Backend"},
		{Name: "PostgreSQL", Domain: "Database"},
		{Name: "Redis", Domain: "Database"},
		{Name: "Docker", Domain: "DevOps"},
		{Name: "Kubernetes", Domain: "DevOps"},
		{Name: "AWS", Domain: "Cloud"},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, normalized_name, domain, is_active)
			 VALUES (gen_random_uuid(), $1, $2, $3, TRUE)
			 ON CONFLICT (normalized_name) DO NOTHING`,
			it.Name,
			skill.Normalize(it.Name),
			it.Domain,
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
