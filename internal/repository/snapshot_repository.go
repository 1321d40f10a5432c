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

var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is immutable once written. A recalculation inserts a new row.
type Snapshot struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	RoleID           uuid.UUID
	TotalScore       float64
	MaxPossibleScore float64
	CalculatedAt     time.Time
	TriggerSource    string
}

// SnapshotBreakdownRow freezes the weights and met/missing status at
// calculation time.
type SnapshotBreakdownRow struct {
	ID             uuid.UUID
	SnapshotID     uuid.UUID
	SkillID        uuid.UUID
	RequiredWeight float64
	AchievedWeight float64
	Status         string
	SkillSource    string
}

// BreakdownView re-joins a frozen breakdown row with the skill's current
// display name, the benchmark's current importance, and the owned skill's
// current validation status. Those three are looked up live on purpose:
// current context wins over historical labels.
type BreakdownView struct {
	SkillID          uuid.UUID
	SkillName        string
	RequiredWeight   float64
	AchievedWeight   float64
	Status           string
	Importance       string
	SkillSource      string
	ValidationStatus string
}

type SnapshotRepository interface {
	// CreateWithBreakdown writes the snapshot and all its breakdown rows in a
	// single transaction. A snapshot without a breakdown (or the reverse) must
	// never become visible.
	CreateWithBreakdown(ctx context.Context, snap Snapshot, rows []SnapshotBreakdownRow) (Snapshot, error)
	GetByID(ctx context.Context, id uuid.UUID) (Snapshot, error)
	LatestByUserRole(ctx context.Context, userID, roleID uuid.UUID) (Snapshot, error)
	ListByUserRole(ctx context.Context, userID, roleID uuid.UUID, limit int) ([]Snapshot, error)
	BreakdownBySnapshotID(ctx context.Context, snapshotID uuid.UUID) ([]BreakdownView, error)
}

type PostgresSnapshotRepository struct {
	db database.DB
}

func NewPostgresSnapshotRepository(db database.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

func (r *PostgresSnapshotRepository) CreateWithBreakdown(ctx context.Context, snap Snapshot, rows []SnapshotBreakdownRow) (Snapshot, error) {
	if snap.ID == uuid.Nil {
		snap.ID = uuid.New()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO readiness_snapshots (id, user_id, role_id, total_score, max_possible_score, trigger_source)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		snap.ID, snap.UserID, snap.RoleID, snap.TotalScore, snap.MaxPossibleScore, snap.TriggerSource,
	)
	if err != nil {
		return Snapshot{}, err
	}

	for _, b := range rows {
		id := b.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO snapshot_skill_breakdown (id, snapshot_id, skill_id, required_weight, achieved_weight, status, skill_source)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, snap.ID, b.SkillID, b.RequiredWeight, b.AchievedWeight, b.Status, nullIfEmpty(b.SkillSource),
		)
		if err != nil {
			return Snapshot{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Snapshot{}, err
	}
	return r.GetByID(ctx, snap.ID)
}

const snapshotColumns = `id, user_id, role_id, total_score, max_possible_score, calculated_at, trigger_source`

func (r *PostgresSnapshotRepository) GetByID(ctx context.Context, id uuid.UUID) (Snapshot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+snapshotColumns+` FROM readiness_snapshots WHERE id = $1`, id)
	return scanSnapshot(row)
}

func (r *PostgresSnapshotRepository) LatestByUserRole(ctx context.Context, userID, roleID uuid.UUID) (Snapshot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+snapshotColumns+`
		 FROM readiness_snapshots
		 WHERE user_id = $1 AND role_id = $2
		 ORDER BY calculated_at DESC, id DESC
		 LIMIT 1`,
		userID, roleID,
	)
	return scanSnapshot(row)
}

func (r *PostgresSnapshotRepository) ListByUserRole(ctx context.Context, userID, roleID uuid.UUID, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+snapshotColumns+`
		 FROM readiness_snapshots
		 WHERE user_id = $1 AND role_id = $2
		 ORDER BY calculated_at DESC, id DESC
		 LIMIT $3`,
		userID, roleID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Snapshot, 0)
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.UserID, &s.RoleID, &s.TotalScore, &s.MaxPossibleScore, &s.CalculatedAt, &s.TriggerSource); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSnapshotRepository) BreakdownBySnapshotID(ctx context.Context, snapshotID uuid.UUID) ([]BreakdownView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.skill_id,
		        s.name,
		        b.required_weight,
		        b.achieved_weight,
		        b.status,
		        COALESCE(rb.importance, ''),
		        COALESCE(b.skill_source, ''),
		        COALESCE(us.validation_status, '')
		 FROM snapshot_skill_breakdown b
		 JOIN readiness_snapshots snap ON snap.id = b.snapshot_id
		 JOIN skills s ON s.id = b.skill_id
		 LEFT JOIN role_benchmarks rb ON rb.role_id = snap.role_id AND rb.skill_id = b.skill_id
		 LEFT JOIN user_skills us ON us.user_id = snap.user_id AND us.skill_id = b.skill_id
		 WHERE b.snapshot_id = $1
		 ORDER BY b.required_weight DESC, s.name ASC`,
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BreakdownView, 0)
	for rows.Next() {
		var v BreakdownView
		if err := rows.Scan(&v.SkillID, &v.SkillName, &v.RequiredWeight, &v.AchievedWeight, &v.Status, &v.Importance, &v.SkillSource, &v.ValidationStatus); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSnapshot(row database.Row) (Snapshot, error) {
	var s Snapshot
	err := row.Scan(&s.ID, &s.UserID, &s.RoleID, &s.TotalScore, &s.MaxPossibleScore, &s.CalculatedAt, &s.TriggerSource)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Snapshot{}, ErrSnapshotNotFound
		}
		return Snapshot{}, err
	}
	return s, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
