package usecase

import (
	"context"
	"strings"

	"skill-ready/internal/domain/skill"
	"skill-ready/internal/pkg/apperr"
	"skill-ready/internal/repository"

	"github.com/google/uuid"
)

type SkillItem struct {
	ID             uuid.UUID
	Name           string
	NormalizedName string
	Domain         string
	IsActive       bool
}

type CreateSkillInput struct {
	Name   string
	Domain string
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]SkillItem, error)
	ListAllSkills(ctx context.Context) ([]SkillItem, error)
	AddSkill(ctx context.Context, in CreateSkillInput) (SkillItem, error)
	RenameSkill(ctx context.Context, id uuid.UUID, name string) (SkillItem, error)
	// DeactivateSkill fails with an in-use error while active benchmarks still
	// reference the skill, unless force is set.
	DeactivateSkill(ctx context.Context, id uuid.UUID, force bool) error
}

type Skill struct {
	repo  repository.SkillRepository
	cache Cache
}

func NewSkillUsecase(repo repository.SkillRepository, cache Cache) *Skill {
	return &Skill{repo: repo, cache: cache}
}

// Cached benchmark payloads embed skill names, so any catalog mutation that
// changes a name or availability drops every role's cached benchmark.
func (u *Skill) invalidateBenchmarkCaches(ctx context.Context) {
	if u.cache == nil {
		return
	}
	_ = u.cache.DeleteByPattern(ctx, "benchmark:role:*")
}

func (u *Skill) ListSkills(ctx context.Context) ([]SkillItem, error) {
	items, err := u.repo.ListActive(ctx)
	if err != nil {
		return nil, apperr.Transient(err)
	}
	return toSkillItems(items), nil
}

func (u *Skill) ListAllSkills(ctx context.Context) ([]SkillItem, error) {
	items, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, apperr.Transient(err)
	}
	return toSkillItems(items), nil
}

func (u *Skill) AddSkill(ctx context.Context, in CreateSkillInput) (SkillItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return SkillItem{}, apperr.Validation("skill name is required")
	}
	normalized := skill.Normalize(name)
	if len(normalized) < 2 {
		return SkillItem{}, apperr.Validation("skill name normalizes below the 2-character matching minimum")
	}

	created, err := u.repo.Create(ctx, repository.Skill{
		ID:             uuid.New(),
		Name:           name,
		NormalizedName: normalized,
		Domain:         strings.TrimSpace(in.Domain),
		IsActive:       true,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return SkillItem{}, apperr.Conflict("skill", "a skill with this name already exists")
		}
		return SkillItem{}, apperr.Transient(err)
	}
	return toSkillItem(created), nil
}

// RenameSkill recomputes the normalized name in the same write, keeping the
// pair in sync no matter how the display name changes.
func (u *Skill) RenameSkill(ctx context.Context, id uuid.UUID, name string) (SkillItem, error) {
	if id == uuid.Nil {
		return SkillItem{}, apperr.Validation("skill id is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return SkillItem{}, apperr.Validation("skill name is required")
	}
	normalized := skill.Normalize(name)
	if len(normalized) < 2 {
		return SkillItem{}, apperr.Validation("skill name normalizes below the 2-character matching minimum")
	}

	updated, err := u.repo.Rename(ctx, id, name, normalized)
	if err != nil {
		if err == repository.ErrSkillNotFound {
			return SkillItem{}, apperr.NotFound("skill", id.String())
		}
		if isUniqueViolation(err) {
			return SkillItem{}, apperr.Conflict("skill", "a skill with this name already exists")
		}
		return SkillItem{}, apperr.Transient(err)
	}
	u.invalidateBenchmarkCaches(ctx)
	return toSkillItem(updated), nil
}

func (u *Skill) DeactivateSkill(ctx context.Context, id uuid.UUID, force bool) error {
	if id == uuid.Nil {
		return apperr.Validation("skill id is required")
	}

	if !force {
		refs, err := u.repo.CountActiveBenchmarkRefs(ctx, id)
		if err != nil {
			return apperr.Transient(err)
		}
		if refs > 0 {
			return apperr.InUse("skill", id.String(), "skill is referenced by active benchmarks")
		}
	}

	if err := u.repo.SetActive(ctx, id, false); err != nil {
		if err == repository.ErrSkillNotFound {
			return apperr.NotFound("skill", id.String())
		}
		return apperr.Transient(err)
	}
	u.invalidateBenchmarkCaches(ctx)
	return nil
}

func toSkillItem(s repository.Skill) SkillItem {
	return SkillItem{
		ID:             s.ID,
		Name:           s.Name,
		NormalizedName: s.NormalizedName,
		Domain:         s.Domain,
		IsActive:       s.IsActive,
	}
}

func toSkillItems(items []repository.Skill) []SkillItem {
	out := make([]SkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, toSkillItem(it))
	}
	return out
}
