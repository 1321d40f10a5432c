package usecase

import (
	"context"
	"testing"

	"skill-ready/internal/pkg/apperr"
	"skill-ready/internal/repository"

	"github.com/google/uuid"
)

func TestUserSkill_AddSelfSkill(t *testing.T) {
	skillID := uuid.New()
	skills := &mockSkillRepo{byID: map[uuid.UUID]repository.Skill{
		skillID: {ID: skillID, Name: "Go", IsActive: true},
	}}
	uc := NewUserSkillUsecase(mockUserSkillRepo{}, skills)

	item, err := uc.AddSelfSkill(context.Background(), uuid.New(), skillID)
	if err != nil {
		t.Fatalf("AddSelfSkill: %v", err)
	}
	if item.Source != "self" {
		t.Fatalf("expected source self, got %q", item.Source)
	}
	if item.ValidationStatus != "none" {
		t.Fatalf("expected validation status none, got %q", item.ValidationStatus)
	}
}

func TestUserSkill_AddSelfSkill_UnknownSkill(t *testing.T) {
	uc := NewUserSkillUsecase(mockUserSkillRepo{}, &mockSkillRepo{})

	_, err := uc.AddSelfSkill(context.Background(), uuid.New(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestUserSkill_AddSelfSkill_AlreadyOnProfile(t *testing.T) {
	skillID := uuid.New()
	skills := &mockSkillRepo{byID: map[uuid.UUID]repository.Skill{
		skillID: {ID: skillID, Name: "Go", IsActive: true},
	}}
	uc := NewUserSkillUsecase(mockUserSkillRepo{
		existing: &repository.UserSkill{SkillID: skillID, Source: "resume"},
	}, skills)

	_, err := uc.AddSelfSkill(context.Background(), uuid.New(), skillID)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUserSkill_AddDemoSkills_EmptyInput(t *testing.T) {
	uc := NewUserSkillUsecase(mockUserSkillRepo{}, &mockSkillRepo{})

	_, err := uc.AddDemoSkills(context.Background(), uuid.New(), nil)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserSkill_RemoveUserSkill_NotOnProfile(t *testing.T) {
	uc := NewUserSkillUsecase(mockUserSkillRepo{err: repository.ErrUserSkillNotFound}, &mockSkillRepo{})

	err := uc.RemoveUserSkill(context.Background(), uuid.New(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
