package usecase

import (
	"context"

	"skill-ready/internal/domain/user"
	ucuser "skill-ready/internal/usecase/user"

	"github.com/google/uuid"
)

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, in ucuser.UpdateMeInput) (user.User, error)
}

type User struct {
	svc *ucuser.Service
}

func NewUserUsecase(users user.Repository) *User {
	return &User{svc: ucuser.NewService(users)}
}

func (u *User) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return u.svc.GetMe(ctx, userID)
}

func (u *User) UpdateMe(ctx context.Context, userID uuid.UUID, in ucuser.UpdateMeInput) (user.User, error) {
	return u.svc.UpdateMe(ctx, userID, in)
}
