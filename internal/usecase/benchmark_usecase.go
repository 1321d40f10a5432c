package usecase

import (
	"context"
	"errors"
	"time"

	"skill-ready/internal/domain/readiness"
	"skill-ready/internal/pkg/apperr"
	"skill-ready/internal/repository"

	"github.com/google/uuid"
)

type BenchmarkEntryItem struct {
	EntryID     uuid.UUID
	SkillID     uuid.UUID
	SkillName   string
	Weight      float64
	Importance  string
	SkillActive bool
}

type AddBenchmarkEntryInput struct {
	SkillID    uuid.UUID
	Importance string
	// Weight nil means the 1.0 default; an explicit 0 is kept as 0.
	Weight *float64
}

const defaultBenchmarkWeight = 1.0

type UpdateBenchmarkEntryInput struct {
	Weight     float64
	Importance string
	IsActive   bool
}

type BenchmarkUsecase interface {
	// Resolve loads the active benchmark for a role. Inactive skills stay in
	// the result as a data-quality signal for the caller.
	Resolve(ctx context.Context, roleID uuid.UUID) ([]BenchmarkEntryItem, error)
	AddEntry(ctx context.Context, roleID uuid.UUID, in AddBenchmarkEntryInput) (BenchmarkEntryItem, error)
	UpdateEntry(ctx context.Context, entryID uuid.UUID, in UpdateBenchmarkEntryInput) (BenchmarkEntryItem, error)
}

type Benchmark struct {
	roles      repository.RoleRepository
	benchmarks repository.BenchmarkRepository
	skills     repository.SkillRepository
	cache      Cache
	cacheTTL   time.Duration
}

func NewBenchmarkUsecase(
	roles repository.RoleRepository,
	benchmarks repository.BenchmarkRepository,
	skills repository.SkillRepository,
	cache Cache,
	cacheTTL time.Duration,
) *Benchmark {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &Benchmark{roles: roles, benchmarks: benchmarks, skills: skills, cache: cache, cacheTTL: cacheTTL}
}

func benchmarkCacheKey(roleID uuid.UUID) string {
	return "benchmark:role:" + roleID.String()
}

func (u *Benchmark) Resolve(ctx context.Context, roleID uuid.UUID) ([]BenchmarkEntryItem, error) {
	if roleID == uuid.Nil {
		return nil, apperr.Validation("role id is required")
	}

	if u.cache != nil {
		var cached []BenchmarkEntryItem
		if ok, err := u.cache.GetJSON(ctx, benchmarkCacheKey(roleID), &cached); err == nil && ok {
			return cached, nil
		}
	}

	exists, err := u.roles.ExistsByID(ctx, roleID)
	if err != nil {
		return nil, apperr.Transient(err)
	}
	if !exists {
		return nil, apperr.NotFound("role", roleID.String())
	}

	rows, err := u.benchmarks.ResolveActiveByRole(ctx, roleID)
	if err != nil {
		return nil, apperr.Transient(err)
	}

	out := make([]BenchmarkEntryItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, BenchmarkEntryItem{
			EntryID:     r.EntryID,
			SkillID:     r.SkillID,
			SkillName:   r.SkillName,
			Weight:      r.Weight,
			Importance:  r.Importance,
			SkillActive: r.SkillActive,
		})
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, benchmarkCacheKey(roleID), out, u.cacheTTL)
	}
	return out, nil
}

func (u *Benchmark) AddEntry(ctx context.Context, roleID uuid.UUID, in AddBenchmarkEntryInput) (BenchmarkEntryItem, error) {
	if roleID == uuid.Nil || in.SkillID == uuid.Nil {
		return BenchmarkEntryItem{}, apperr.Validation("role id and skill id are required")
	}
	if !validImportance(in.Importance) {
		return BenchmarkEntryItem{}, apperr.Validation(`importance must be "required" or "optional"`)
	}
	weight := defaultBenchmarkWeight
	if in.Weight != nil {
		if *in.Weight < 0 {
			return BenchmarkEntryItem{}, apperr.Validation("weight must be >= 0")
		}
		weight = *in.Weight
	}

	exists, err := u.roles.ExistsByID(ctx, roleID)
	if err != nil {
		return BenchmarkEntryItem{}, apperr.Transient(err)
	}
	if !exists {
		return BenchmarkEntryItem{}, apperr.NotFound("role", roleID.String())
	}

	sk, err := u.skills.GetByID(ctx, in.SkillID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return BenchmarkEntryItem{}, apperr.NotFound("skill", in.SkillID.String())
		}
		return BenchmarkEntryItem{}, apperr.Transient(err)
	}

	created, err := u.benchmarks.Create(ctx, repository.BenchmarkEntry{
		ID:         uuid.New(),
		RoleID:     roleID,
		SkillID:    in.SkillID,
		Importance: in.Importance,
		Weight:     weight,
		IsActive:   true,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return BenchmarkEntryItem{}, apperr.Conflict("benchmark", "this role already benchmarks this skill")
		}
		return BenchmarkEntryItem{}, apperr.Transient(err)
	}

	u.invalidate(ctx, roleID)

	return BenchmarkEntryItem{
		EntryID:     created.ID,
		SkillID:     created.SkillID,
		SkillName:   sk.Name,
		Weight:      created.Weight,
		Importance:  created.Importance,
		SkillActive: sk.IsActive,
	}, nil
}

func (u *Benchmark) UpdateEntry(ctx context.Context, entryID uuid.UUID, in UpdateBenchmarkEntryInput) (BenchmarkEntryItem, error) {
	if entryID == uuid.Nil {
		return BenchmarkEntryItem{}, apperr.Validation("benchmark entry id is required")
	}
	if !validImportance(in.Importance) {
		return BenchmarkEntryItem{}, apperr.Validation(`importance must be "required" or "optional"`)
	}
	if in.Weight < 0 {
		return BenchmarkEntryItem{}, apperr.Validation("weight must be >= 0")
	}

	updated, err := u.benchmarks.Update(ctx, entryID, in.Weight, in.Importance, in.IsActive)
	if err != nil {
		if errors.Is(err, repository.ErrBenchmarkNotFound) {
			return BenchmarkEntryItem{}, apperr.NotFound("benchmark", entryID.String())
		}
		return BenchmarkEntryItem{}, apperr.Transient(err)
	}

	u.invalidate(ctx, updated.RoleID)

	sk, err := u.skills.GetByID(ctx, updated.SkillID)
	if err != nil {
		return BenchmarkEntryItem{}, apperr.Transient(err)
	}

	return BenchmarkEntryItem{
		EntryID:     updated.ID,
		SkillID:     updated.SkillID,
		SkillName:   sk.Name,
		Weight:      updated.Weight,
		Importance:  updated.Importance,
		SkillActive: sk.IsActive,
	}, nil
}

func (u *Benchmark) invalidate(ctx context.Context, roleID uuid.UUID) {
	if u.cache == nil {
		return
	}
	_ = u.cache.Delete(ctx, benchmarkCacheKey(roleID))
}

func validImportance(s string) bool {
	return s == readiness.ImportanceRequired || s == readiness.ImportanceOptional
}
