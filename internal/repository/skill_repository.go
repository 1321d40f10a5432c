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

var ErrSkillNotFound = errors.New("skill not found")

type Skill struct {
	ID             uuid.UUID
	Name           string
	NormalizedName string
	Domain         string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type SkillRepository interface {
	ListActive(ctx context.Context) ([]Skill, error)
	ListAll(ctx context.Context) ([]Skill, error)
	GetByID(ctx context.Context, id uuid.UUID) (Skill, error)
	Create(ctx context.Context, s Skill) (Skill, error)
	Rename(ctx context.Context, id uuid.UUID, name, normalizedName string) (Skill, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	CountActiveBenchmarkRefs(ctx context.Context, skillID uuid.UUID) (int64, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

const skillColumns = `id, name, normalized_name, domain, is_active, created_at, updated_at`

func (r *PostgresSkillRepository) ListActive(ctx context.Context) ([]Skill, error) {
	return r.list(ctx, `SELECT `+skillColumns+` FROM skills WHERE is_active = TRUE ORDER BY name ASC`)
}

func (r *PostgresSkillRepository) ListAll(ctx context.Context) ([]Skill, error) {
	return r.list(ctx, `SELECT `+skillColumns+` FROM skills ORDER BY name ASC`)
}

func (r *PostgresSkillRepository) list(ctx context.Context, query string) ([]Skill, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.NormalizedName, &s.Domain, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) GetByID(ctx context.Context, id uuid.UUID) (Skill, error) {
	row := r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id)

	var s Skill
	if err := row.Scan(&s.ID, &s.Name, &s.NormalizedName, &s.Domain, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Skill{}, ErrSkillNotFound
		}
		return Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) Create(ctx context.Context, s Skill) (Skill, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name, normalized_name, domain, is_active)
		 VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.Name, s.NormalizedName, s.Domain, s.IsActive,
	)
	if err != nil {
		return Skill{}, err
	}
	return r.GetByID(ctx, s.ID)
}

// Rename updates both display and normalized names together so they can never
// drift apart.
func (r *PostgresSkillRepository) Rename(ctx context.Context, id uuid.UUID, name, normalizedName string) (Skill, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE skills SET name = $1, normalized_name = $2, updated_at = now() WHERE id = $3`,
		name, normalizedName, id,
	)
	if err != nil {
		return Skill{}, err
	}
	if affected == 0 {
		return Skill{}, ErrSkillNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresSkillRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE skills SET is_active = $1, updated_at = now() WHERE id = $2`,
		active, id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *PostgresSkillRepository) CountActiveBenchmarkRefs(ctx context.Context, skillID uuid.UUID) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM role_benchmarks WHERE skill_id = $1 AND is_active = TRUE`,
		skillID,
	)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
