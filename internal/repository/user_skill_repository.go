package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skill-ready/internal/database"
	"skill-ready/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrUserSkillNotFound = errors.New("user skill not found")

type UserSkill struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	SkillID          uuid.UUID
	SkillName        string
	Source           string
	ValidationStatus string
	CreatedAt        time.Time
}

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkill, error)
	FindSkillIDsByUserID(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	FindByUserAndSkill(ctx context.Context, userID, skillID uuid.UUID) (UserSkill, error)
	Create(ctx context.Context, us UserSkill) (UserSkill, error)
	Delete(ctx context.Context, userID, skillID uuid.UUID) error
	// BulkCreateIgnoreExisting inserts demo rows, skipping pairs that already
	// exist so an existing source is never overwritten. Returns rows inserted.
	BulkCreateIgnoreExisting(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID, source string) (int64, error)
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT us.id, us.user_id, us.skill_id, s.name, us.source, us.validation_status, us.created_at
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserSkill, 0)
	for rows.Next() {
		var us UserSkill
		if err := rows.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &us.Source, &us.ValidationStatus, &us.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) FindSkillIDsByUserID(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT skill_id FROM user_skills WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) FindByUserAndSkill(ctx context.Context, userID, skillID uuid.UUID) (UserSkill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT us.id, us.user_id, us.skill_id, s.name, us.source, us.validation_status, us.created_at
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1 AND us.skill_id = $2`,
		userID, skillID,
	)

	var us UserSkill
	if err := row.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &us.Source, &us.ValidationStatus, &us.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return UserSkill{}, ErrUserSkillNotFound
		}
		return UserSkill{}, err
	}
	return us, nil
}

func (r *PostgresUserSkillRepository) Create(ctx context.Context, us UserSkill) (UserSkill, error) {
	if us.ID == uuid.Nil {
		us.ID = uuid.New()
	}
	if us.ValidationStatus == "" {
		us.ValidationStatus = skill.ValidationNone
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, source, validation_status)
		 VALUES ($1, $2, $3, $4, $5)`,
		us.ID, us.UserID, us.SkillID, us.Source, us.ValidationStatus,
	)
	if err != nil {
		return UserSkill{}, err
	}
	return r.FindByUserAndSkill(ctx, us.UserID, us.SkillID)
}

func (r *PostgresUserSkillRepository) Delete(ctx context.Context, userID, skillID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserSkillNotFound
	}
	return nil
}

func (r *PostgresUserSkillRepository) BulkCreateIgnoreExisting(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID, source string) (int64, error) {
	if len(skillIDs) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	var inserted int64
	for _, skillID := range skillIDs {
		if skillID == uuid.Nil {
			continue
		}
		affected, err := tx.Exec(ctx,
			`INSERT INTO user_skills (id, user_id, skill_id, source, validation_status)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (user_id, skill_id) DO NOTHING`,
			uuid.New(), userID, skillID, source, skill.ValidationNone,
		)
		if err != nil {
			return 0, err
		}
		inserted += affected
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return inserted, nil
}
