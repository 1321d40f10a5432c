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

const (
	SuggestionPending  = "pending"
	SuggestionAccepted = "accepted"
	SuggestionRejected = "rejected"
)

type Suggestion struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	ResumeID   uuid.UUID
	SkillID    uuid.UUID
	SkillName  string
	Status     string
	CreatedAt  time.Time
	ReviewedAt *time.Time
}

type ConfirmResult struct {
	AcceptedCount    int
	RejectedCount    int
	RemainingPending int
}

type SuggestionRepository interface {
	// ReplaceForResume swaps this resume's suggestions for the given matches,
	// atomically. The state machine allows pending→accepted, pending→rejected
	// and rejected→rejected on rescan; a rejected row is never resurrected and
	// any other existing row goes back to pending. Running it twice with the
	// same matches is a no-op the second time.
	ReplaceForResume(ctx context.Context, userID, resumeID uuid.UUID, skillIDs []uuid.UUID) (int, error)
	ListPendingByUser(ctx context.Context, userID uuid.UUID) ([]Suggestion, error)
	// Confirm transitions pending rows and writes the owned-skill side effects
	// in the same transaction. Non-pending and unknown ids are skipped, not
	// errors. Idempotent: a second identical call changes nothing.
	Confirm(ctx context.Context, userID uuid.UUID, acceptedIDs, rejectedIDs []uuid.UUID) (ConfirmResult, error)
	RejectAllPending(ctx context.Context, userID uuid.UUID) (int, error)
}

type PostgresSuggestionRepository struct {
	db database.DB
}

func NewPostgresSuggestionRepository(db database.DB) *PostgresSuggestionRepository {
	return &PostgresSuggestionRepository{db: db}
}

func (r *PostgresSuggestionRepository) ReplaceForResume(ctx context.Context, userID, resumeID uuid.UUID, skillIDs []uuid.UUID) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	// Current status per skill, for the transition guards below.
	rows, err := tx.Query(ctx,
		`SELECT skill_id, status FROM skill_suggestions WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return 0, err
	}
	existing := make(map[uuid.UUID]string)
	for rows.Next() {
		var id uuid.UUID
		var status string
		if err := rows.Scan(&id, &status); err != nil {
			rows.Close()
			return 0, err
		}
		existing[id] = status
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	// Replace semantics: this resume's non-rejected rows go away; rejected
	// rows stay untouched wherever they came from.
	_, err = tx.Exec(ctx,
		`DELETE FROM skill_suggestions WHERE user_id = $1 AND resume_id = $2 AND status <> $3`,
		userID, resumeID, SuggestionRejected,
	)
	if err != nil {
		return 0, err
	}

	persisted := 0
	for _, skillID := range skillIDs {
		if skillID == uuid.Nil {
			continue
		}
		switch existing[skillID] {
		case SuggestionRejected:
			// Sticky rejection: the rescan must not resurrect it.
			continue
		case "":
			_, err := tx.Exec(ctx,
				`INSERT INTO skill_suggestions (id, user_id, resume_id, skill_id, status)
				 VALUES ($1, $2, $3, $4, $5)`,
				uuid.New(), userID, resumeID, skillID, SuggestionPending,
			)
			if err != nil {
				return 0, err
			}
		default:
			// A row from another resume (pending or accepted) is re-pointed at
			// this resume and reopened for review.
			affected, err := tx.Exec(ctx,
				`UPDATE skill_suggestions
				 SET resume_id = $1, status = $2, reviewed_at = NULL
				 WHERE user_id = $3 AND skill_id = $4 AND status <> $5`,
				resumeID, SuggestionPending, userID, skillID, SuggestionRejected,
			)
			if err != nil {
				return 0, err
			}
			if affected == 0 {
				_, err := tx.Exec(ctx,
					`INSERT INTO skill_suggestions (id, user_id, resume_id, skill_id, status)
					 VALUES ($1, $2, $3, $4, $5)`,
					uuid.New(), userID, resumeID, skillID, SuggestionPending,
				)
				if err != nil {
					return 0, err
				}
			}
		}
		persisted++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return persisted, nil
}

func (r *PostgresSuggestionRepository) ListPendingByUser(ctx context.Context, userID uuid.UUID) ([]Suggestion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT sg.id, sg.user_id, sg.resume_id, sg.skill_id, s.name, sg.status, sg.created_at, sg.reviewed_at
		 FROM skill_suggestions sg
		 JOIN skills s ON s.id = sg.skill_id
		 WHERE sg.user_id = $1 AND sg.status = $2
		 ORDER BY s.name ASC`,
		userID, SuggestionPending,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Suggestion, 0)
	for rows.Next() {
		var sg Suggestion
		if err := rows.Scan(&sg.ID, &sg.UserID, &sg.ResumeID, &sg.SkillID, &sg.SkillName, &sg.Status, &sg.CreatedAt, &sg.ReviewedAt); err != nil {
			return nil, err
		}
		out = append(out, sg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSuggestionRepository) Confirm(ctx context.Context, userID uuid.UUID, acceptedIDs, rejectedIDs []uuid.UUID) (ConfirmResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return ConfirmResult{}, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	var res ConfirmResult

	for _, skillID := range acceptedIDs {
		if skillID == uuid.Nil {
			continue
		}
		affected, err := tx.Exec(ctx,
			`UPDATE skill_suggestions
			 SET status = $1, reviewed_at = now()
			 WHERE user_id = $2 AND skill_id = $3 AND status = $4`,
			SuggestionAccepted, userID, skillID, SuggestionPending,
		)
		if err != nil {
			return ConfirmResult{}, err
		}
		if affected == 0 {
			continue
		}
		res.AcceptedCount++

		if err := grantResumeSkill(ctx, tx, userID, skillID); err != nil {
			return ConfirmResult{}, err
		}
	}

	for _, skillID := range rejectedIDs {
		if skillID == uuid.Nil {
			continue
		}
		affected, err := tx.Exec(ctx,
			`UPDATE skill_suggestions
			 SET status = $1, reviewed_at = now()
			 WHERE user_id = $2 AND skill_id = $3 AND status = $4`,
			SuggestionRejected, userID, skillID, SuggestionPending,
		)
		if err != nil {
			return ConfirmResult{}, err
		}
		res.RejectedCount += int(affected)
	}

	row := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM skill_suggestions WHERE user_id = $1 AND status = $2`,
		userID, SuggestionPending,
	)
	if err := row.Scan(&res.RemainingPending); err != nil {
		return ConfirmResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return ConfirmResult{}, err
	}
	return res, nil
}

// grantResumeSkill creates the owned-skill row for an accepted suggestion, or
// upgrades an existing demo row to resume. Self and validated sources are
// never downgraded.
func grantResumeSkill(ctx context.Context, tx database.Tx, userID, skillID uuid.UUID) error {
	var source string
	found := true
	row := tx.QueryRow(ctx,
		`SELECT source FROM user_skills WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	if err := row.Scan(&source); err != nil {
		if err != sql.ErrNoRows && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		found = false
	}

	if !found {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_skills (id, user_id, skill_id, source, validation_status)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (user_id, skill_id) DO NOTHING`,
			uuid.New(), userID, skillID, skill.SourceResume, skill.ValidationNone,
		)
		return err
	}

	if source == skill.SourceDemo {
		_, err := tx.Exec(ctx,
			`UPDATE user_skills SET source = $1 WHERE user_id = $2 AND skill_id = $3 AND source = $4`,
			skill.SourceResume, userID, skillID, skill.SourceDemo,
		)
		return err
	}
	return nil
}

func (r *PostgresSuggestionRepository) RejectAllPending(ctx context.Context, userID uuid.UUID) (int, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE skill_suggestions
		 SET status = $1, reviewed_at = now()
		 WHERE user_id = $2 AND status = $3`,
		SuggestionRejected, userID, SuggestionPending,
	)
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
