package usecase

import (
	"context"
	"errors"

	"skill-ready/internal/domain/skill"
	"skill-ready/internal/pkg/apperr"
	"skill-ready/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type UserSkillItem struct {
	ID               uuid.UUID
	SkillID          uuid.UUID
	SkillName        string
	Source           string
	ValidationStatus string
}

type UserSkillUsecase interface {
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]UserSkillItem, error)
	// AddSelfSkill records an explicit self-entry claim. The engine never
	// infers ownership on its own; rows only appear through user action.
	AddSelfSkill(ctx context.Context, userID, skillID uuid.UUID) (UserSkillItem, error)
	// AddDemoSkills bulk-adds demo claims, skipping pairs that already exist.
	AddDemoSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) (int64, error)
	RemoveUserSkill(ctx context.Context, userID, skillID uuid.UUID) error
}

type UserSkill struct {
	repo   repository.UserSkillRepository
	skills repository.SkillRepository
}

func NewUserSkillUsecase(repo repository.UserSkillRepository, skills repository.SkillRepository) *UserSkill {
	return &UserSkill{repo: repo, skills: skills}
}

func (u *UserSkill) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]UserSkillItem, error) {
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Transient(err)
	}
	out := make([]UserSkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, UserSkillItem{
			ID:               it.ID,
			SkillID:          it.SkillID,
			SkillName:        it.SkillName,
			Source:           it.Source,
			ValidationStatus: it.ValidationStatus,
		})
	}
	return out, nil
}

func (u *UserSkill) AddSelfSkill(ctx context.Context, userID, skillID uuid.UUID) (UserSkillItem, error) {
	if skillID == uuid.Nil {
		return UserSkillItem{}, apperr.Validation("skill id is required")
	}

	if _, err := u.skills.GetByID(ctx, skillID); err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return UserSkillItem{}, apperr.NotFound("skill", skillID.String())
		}
		return UserSkillItem{}, apperr.Transient(err)
	}

	_, err := u.repo.FindByUserAndSkill(ctx, userID, skillID)
	if err == nil {
		return UserSkillItem{}, apperr.Conflict("user_skill", "skill is already on the profile")
	}
	if !errors.Is(err, repository.ErrUserSkillNotFound) {
		return UserSkillItem{}, apperr.Transient(err)
	}

	created, err := u.repo.Create(ctx, repository.UserSkill{
		ID:               uuid.New(),
		UserID:           userID,
		SkillID:          skillID,
		Source:           skill.SourceSelf,
		ValidationStatus: skill.ValidationNone,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return UserSkillItem{}, apperr.Conflict("user_skill", "skill is already on the profile")
		}
		if isForeignKeyViolation(err) {
			return UserSkillItem{}, apperr.NotFound("skill", skillID.String())
		}
		return UserSkillItem{}, apperr.Transient(err)
	}

	return UserSkillItem{
		ID:               created.ID,
		SkillID:          created.SkillID,
		SkillName:        created.SkillName,
		Source:           created.Source,
		ValidationStatus: created.ValidationStatus,
	}, nil
}

func (u *UserSkill) AddDemoSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) (int64, error) {
	if len(skillIDs) == 0 {
		return 0, apperr.Validation("at least one skill id is required")
	}
	added, err := u.repo.BulkCreateIgnoreExisting(ctx, userID, skillIDs, skill.SourceDemo)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, apperr.NotFound("skill", "one or more ids do not exist")
		}
		return 0, apperr.Transient(err)
	}
	return added, nil
}

func (u *UserSkill) RemoveUserSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	if skillID == uuid.Nil {
		return apperr.Validation("skill id is required")
	}
	if err := u.repo.Delete(ctx, userID, skillID); err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return apperr.NotFound("user_skill", skillID.String())
		}
		return apperr.Transient(err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
