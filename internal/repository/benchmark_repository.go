package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skill-ready/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrBenchmarkNotFound = errors.New("benchmark entry not found")

type BenchmarkEntry struct {
	ID         uuid.UUID
	RoleID     uuid.UUID
	SkillID    uuid.UUID
	Importance string
	Weight     float64
	IsActive   bool
	CreatedAt  time.Time
}

// BenchmarkRow is a resolved entry joined with the skill's current state.
// Inactive skills are included on purpose: that mismatch is a data-quality
// signal for the caller, not something to filter here.
type BenchmarkRow struct {
	EntryID     uuid.UUID
	SkillID     uuid.UUID
	SkillName   string
	Weight      float64
	Importance  string
	SkillActive bool
}

type BenchmarkRepository interface {
	// ResolveActiveByRole returns active entries ordered by skill id, so
	// identical inputs always come back in the same order.
	ResolveActiveByRole(ctx context.Context, roleID uuid.UUID) ([]BenchmarkRow, error)
	GetByID(ctx context.Context, id uuid.UUID) (BenchmarkEntry, error)
	Create(ctx context.Context, e BenchmarkEntry) (BenchmarkEntry, error)
	Update(ctx context.Context, id uuid.UUID, weight float64, importance string, active bool) (BenchmarkEntry, error)
}

type PostgresBenchmarkRepository struct {
	db database.DB
}

func NewPostgresBenchmarkRepository(db database.DB) *PostgresBenchmarkRepository {
	return &PostgresBenchmarkRepository{db: db}
}

func (r *PostgresBenchmarkRepository) ResolveActiveByRole(ctx context.Context, roleID uuid.UUID) ([]BenchmarkRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT rb.id, rb.skill_id, s.name, rb.weight, rb.importance, s.is_active
		 FROM role_benchmarks rb
		 JOIN skills s ON s.id = rb.skill_id
		 WHERE rb.role_id = $1 AND rb.is_active = TRUE
		 ORDER BY rb.skill_id ASC`,
		roleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BenchmarkRow, 0)
	for rows.Next() {
		var b BenchmarkRow
		if err := rows.Scan(&b.EntryID, &b.SkillID, &b.SkillName, &b.Weight, &b.Importance, &b.SkillActive); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresBenchmarkRepository) GetByID(ctx context.Context, id uuid.UUID) (BenchmarkEntry, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, role_id, skill_id, importance, weight, is_active, created_at
		 FROM role_benchmarks WHERE id = $1`,
		id,
	)
	return scanBenchmarkEntry(row)
}

func (r *PostgresBenchmarkRepository) Create(ctx context.Context, e BenchmarkEntry) (BenchmarkEntry, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO role_benchmarks (id, role_id, skill_id, importance, weight, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.RoleID, e.SkillID, e.Importance, e.Weight, e.IsActive,
	)
	if err != nil {
		return BenchmarkEntry{}, err
	}
	return r.GetByID(ctx, e.ID)
}

func (r *PostgresBenchmarkRepository) Update(ctx context.Context, id uuid.UUID, weight float64, importance string, active bool) (BenchmarkEntry, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE role_benchmarks SET weight = $1, importance = $2, is_active = $3 WHERE id = $4`,
		weight, importance, active, id,
	)
	if err != nil {
		return BenchmarkEntry{}, err
	}
	if affected == 0 {
		return BenchmarkEntry{}, ErrBenchmarkNotFound
	}
	return r.GetByID(ctx, id)
}

func scanBenchmarkEntry(row database.Row) (BenchmarkEntry, error) {
	var e BenchmarkEntry
	err := row.Scan(&e.ID, &e.RoleID, &e.SkillID, &e.Importance, &e.Weight, &e.IsActive, &e.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return BenchmarkEntry{}, ErrBenchmarkNotFound
		}
		return BenchmarkEntry{}, err
	}
	return e, nil
}
