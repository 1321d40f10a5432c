package usecase

import (
	"context"
	"testing"

	"skill-ready/internal/pkg/apperr"
	"skill-ready/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestSkill_AddSkill_NormalizesName(t *testing.T) {
	repo := &mockSkillRepo{}
	uc := NewSkillUsecase(repo, nil)

	item, err := uc.AddSkill(context.Background(), CreateSkillInput{Name: "  Node.JS  ", Domain: "backend"})
	if err != nil {
		t.Fatalf("AddSkill: %v", err)
	}
	if item.Name != "Node.JS" {
		t.Fatalf("display name should keep its casing, got %q", item.Name)
	}
	if item.NormalizedName != "node.js" {
		t.Fatalf("expected normalized node.js, got %q", item.NormalizedName)
	}
	if !repo.created.IsActive {
		t.Fatalf("new skills should start active")
	}
}

func TestSkill_AddSkill_RejectsNamesBelowMatchingMinimum(t *testing.T) {
	uc := NewSkillUsecase(&mockSkillRepo{}, nil)

	for _, name := range []string{"", "   ", "!!", "a"} {
		_, err := uc.AddSkill(context.Background(), CreateSkillInput{Name: name})
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("AddSkill(%q): expected validation error, got %v", name, err)
		}
	}
}

func TestSkill_AddSkill_DuplicateNameConflicts(t *testing.T) {
	repo := &mockSkillRepo{createErr: &pgconn.PgError{Code: "23505"}}
	uc := NewSkillUsecase(repo, nil)

	_, err := uc.AddSkill(context.Background(), CreateSkillInput{Name: "React"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSkill_RenameSkill_ResyncsNormalizedAndDropsCaches(t *testing.T) {
	id := uuid.New()
	repo := &mockSkillRepo{byID: map[uuid.UUID]repository.Skill{
		id: {ID: id, Name: "Javascript", NormalizedName: "javascript", IsActive: true},
	}}
	cache := newFakeCache()
	cache.keys["benchmark:role:"+uuid.NewString()] = "json"
	uc := NewSkillUsecase(repo, cache)

	item, err := uc.RenameSkill(context.Background(), id, "JavaScript (ES2023)")
	if err != nil {
		t.Fatalf("RenameSkill: %v", err)
	}
	if repo.renamed.id != id {
		t.Fatalf("rename hit wrong id %v", repo.renamed.id)
	}
	if item.NormalizedName != "javascript es2023" {
		t.Fatalf("expected normalized javascript es2023, got %q", item.NormalizedName)
	}
	if len(cache.keys) != 0 {
		t.Fatalf("cached benchmarks should be invalidated on rename, still have %v", cache.keys)
	}
}

func TestSkill_DeactivateSkill_InUseWithoutForce(t *testing.T) {
	id := uuid.New()
	repo := &mockSkillRepo{refs: 3}
	uc := NewSkillUsecase(repo, nil)

	err := uc.DeactivateSkill(context.Background(), id, false)
	if !apperr.Is(err, apperr.KindInUse) {
		t.Fatalf("expected in-use error, got %v", err)
	}
	if repo.deactivated != uuid.Nil {
		t.Fatalf("skill must not be deactivated while referenced")
	}

	if err := uc.DeactivateSkill(context.Background(), id, true); err != nil {
		t.Fatalf("force deactivate: %v", err)
	}
	if repo.deactivated != id {
		t.Fatalf("expected deactivation of %v, got %v", id, repo.deactivated)
	}
}
