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

var ErrRoleNotFound = errors.New("role not found")

type Role struct {
	ID          uuid.UUID
	Title       string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}

type RoleRepository interface {
	List(ctx context.Context) ([]Role, error)
	GetByID(ctx context.Context, id uuid.UUID) (Role, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, r Role) (Role, error)
}

type PostgresRoleRepository struct {
	db database.DB
}

func NewPostgresRoleRepository(db database.DB) *PostgresRoleRepository {
	return &PostgresRoleRepository{db: db}
}

func (r *PostgresRoleRepository) List(ctx context.Context) ([]Role, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, description, is_active, created_at FROM roles WHERE is_active = TRUE ORDER BY title ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Role, 0)
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Title, &role.Description, &role.IsActive, &role.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (Role, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, title, description, is_active, created_at FROM roles WHERE id = $1`,
		id,
	)

	var role Role
	if err := row.Scan(&role.ID, &role.Title, &role.Description, &role.IsActive, &role.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Role{}, ErrRoleNotFound
		}
		return Role{}, err
	}
	return role, nil
}

func (r *PostgresRoleRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM roles WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresRoleRepository) Create(ctx context.Context, in Role) (Role, error) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO roles (id, title, description, is_active) VALUES ($1, $2, $3, $4)`,
		in.ID, in.Title, in.Description, in.IsActive,
	)
	if err != nil {
		return Role{}, err
	}
	return r.GetByID(ctx, in.ID)
}
