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

var ErrResumeNotFound = errors.New("resume not found")

type Resume struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	FileName   string
	RawText    string
	UploadedAt time.Time
}

type ResumeRepository interface {
	Create(ctx context.Context, r Resume) (Resume, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (Resume, error)
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

func (r *PostgresResumeRepository) Create(ctx context.Context, in Resume) (Resume, error) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO resumes (id, user_id, file_name, raw_text) VALUES ($1, $2, $3, $4)`,
		in.ID, in.UserID, in.FileName, in.RawText,
	)
	if err != nil {
		return Resume{}, err
	}
	return r.GetByIDForUser(ctx, in.ID, in.UserID)
}

func (r *PostgresResumeRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (Resume, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, file_name, raw_text, uploaded_at FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)

	var res Resume
	if err := row.Scan(&res.ID, &res.UserID, &res.FileName, &res.RawText, &res.UploadedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Resume{}, ErrResumeNotFound
		}
		return Resume{}, err
	}
	return res, nil
}
