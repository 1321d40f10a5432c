package usecase

import (
	"context"
	"testing"
	"time"

	"skill-ready/internal/pkg/apperr"
	"skill-ready/internal/repository"

	"github.com/google/uuid"
)

func TestBenchmark_Resolve_RoleNotFound(t *testing.T) {
	uc := NewBenchmarkUsecase(mockRoleRepo{exists: false}, &mockBenchmarkRepo{}, &mockSkillRepo{}, nil, 0)

	_, err := uc.Resolve(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestBenchmark_Resolve_ServesSecondCallFromCache(t *testing.T) {
	rows := frontendBenchmark()
	repo := &mockBenchmarkRepo{rows: rows}
	cache := newFakeCache()
	uc := NewBenchmarkUsecase(mockRoleRepo{exists: true}, repo, &mockSkillRepo{}, cache, time.Minute)

	roleID := uuid.New()
	first, err := uc.Resolve(context.Background(), roleID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, err := uc.Resolve(context.Background(), roleID)
	if err != nil {
		t.Fatalf("Resolve (cached): %v", err)
	}

	if repo.calls != 1 {
		t.Fatalf("expected one repository hit, got %d", repo.calls)
	}
	if len(first) != len(rows) || len(second) != len(rows) {
		t.Fatalf("expected %d entries both times, got %d then %d", len(rows), len(first), len(second))
	}
	if second[0].EntryID != rows[0].EntryID || second[0].SkillName != rows[0].SkillName {
		t.Fatalf("cached entry diverged: %+v", second[0])
	}
}

func TestBenchmark_AddEntry_Validations(t *testing.T) {
	uc := NewBenchmarkUsecase(mockRoleRepo{exists: true}, &mockBenchmarkRepo{}, &mockSkillRepo{}, nil, 0)
	roleID := uuid.New()

	cases := []AddBenchmarkEntryInput{
		{SkillID: uuid.Nil, Importance: "required", Weight: weightOf(5)},
		{SkillID: uuid.New(), Importance: "critical", Weight: weightOf(5)},
		{SkillID: uuid.New(), Importance: "required", Weight: weightOf(-1)},
	}
	for _, in := range cases {
		if _, err := uc.AddEntry(context.Background(), roleID, in); !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("AddEntry(%+v): expected validation error, got %v", in, err)
		}
	}
}

func TestBenchmark_AddEntry_DefaultsWeight(t *testing.T) {
	skillID := uuid.New()
	skills := &mockSkillRepo{byID: map[uuid.UUID]repository.Skill{
		skillID: {ID: skillID, Name: "Kubernetes", IsActive: true},
	}}
	uc := NewBenchmarkUsecase(mockRoleRepo{exists: true}, &mockBenchmarkRepo{}, skills, nil, 0)

	item, err := uc.AddEntry(context.Background(), uuid.New(), AddBenchmarkEntryInput{
		SkillID:    skillID,
		Importance: "required",
	})
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if item.Weight != 1.0 {
		t.Fatalf("expected omitted weight to default to 1.0, got %v", item.Weight)
	}

	// An explicit zero is a deliberate choice and must not be replaced.
	item, err = uc.AddEntry(context.Background(), uuid.New(), AddBenchmarkEntryInput{
		SkillID:    skillID,
		Importance: "optional",
		Weight:     weightOf(0),
	})
	if err != nil {
		t.Fatalf("AddEntry (zero weight): %v", err)
	}
	if item.Weight != 0 {
		t.Fatalf("expected explicit zero weight to persist, got %v", item.Weight)
	}
}

func TestBenchmark_AddEntry_DropsCachedRole(t *testing.T) {
	skillID := uuid.New()
	roleID := uuid.New()
	skills := &mockSkillRepo{byID: map[uuid.UUID]repository.Skill{
		skillID: {ID: skillID, Name: "Docker", IsActive: true},
	}}
	cache := newFakeCache()
	cache.keys[benchmarkCacheKey(roleID)] = "[]"
	uc := NewBenchmarkUsecase(mockRoleRepo{exists: true}, &mockBenchmarkRepo{}, skills, cache, time.Minute)

	item, err := uc.AddEntry(context.Background(), roleID, AddBenchmarkEntryInput{
		SkillID:    skillID,
		Importance: "required",
		Weight:     weightOf(8),
	})
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if item.SkillName != "Docker" || item.Weight != 8 {
		t.Fatalf("unexpected entry %+v", item)
	}
	if _, ok := cache.keys[benchmarkCacheKey(roleID)]; ok {
		t.Fatalf("cached benchmark should be dropped after a new entry")
	}
}

func TestBenchmark_AddEntry_UnknownSkill(t *testing.T) {
	uc := NewBenchmarkUsecase(mockRoleRepo{exists: true}, &mockBenchmarkRepo{}, &mockSkillRepo{}, nil, 0)

	_, err := uc.AddEntry(context.Background(), uuid.New(), AddBenchmarkEntryInput{
		SkillID:    uuid.New(),
		Importance: "optional",
		Weight:     weightOf(3),
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not-found for unknown skill, got %v", err)
	}
}

func weightOf(v float64) *float64 {
	return &v
}
