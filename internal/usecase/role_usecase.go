package usecase

import (
	"context"
	"strings"

	"skill-ready/internal/pkg/apperr"
	"skill-ready/internal/repository"

	"github.com/google/uuid"
)

type RoleItem struct {
	ID          uuid.UUID
	Title       string
	Description string
}

type CreateRoleInput struct {
	Title       string
	Description string
}

type RoleUsecase interface {
	ListRoles(ctx context.Context) ([]RoleItem, error)
	GetRole(ctx context.Context, id uuid.UUID) (RoleItem, error)
	AddRole(ctx context.Context, in CreateRoleInput) (RoleItem, error)
}

type Role struct {
	repo repository.RoleRepository
}

func NewRoleUsecase(repo repository.RoleRepository) *Role {
	return &Role{repo: repo}
}

func (u *Role) ListRoles(ctx context.Context) ([]RoleItem, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, apperr.Transient(err)
	}
	out := make([]RoleItem, 0, len(items))
	for _, it := range items {
		out = append(out, RoleItem{ID: it.ID, Title: it.Title, Description: it.Description})
	}
	return out, nil
}

func (u *Role) GetRole(ctx context.Context, id uuid.UUID) (RoleItem, error) {
	if id == uuid.Nil {
		return RoleItem{}, apperr.Validation("role id is required")
	}
	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRoleNotFound {
			return RoleItem{}, apperr.NotFound("role", id.String())
		}
		return RoleItem{}, apperr.Transient(err)
	}
	return RoleItem{ID: r.ID, Title: r.Title, Description: r.Description}, nil
}

func (u *Role) AddRole(ctx context.Context, in CreateRoleInput) (RoleItem, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return RoleItem{}, apperr.Validation("role title is required")
	}

	created, err := u.repo.Create(ctx, repository.Role{
		ID:          uuid.New(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		IsActive:    true,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return RoleItem{}, apperr.Conflict("role", "a role with this title already exists")
		}
		return RoleItem{}, apperr.Transient(err)
	}
	return RoleItem{ID: created.ID, Title: created.Title, Description: created.Description}, nil
}
