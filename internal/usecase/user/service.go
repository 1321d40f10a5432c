// Package user covers the self-service profile operations behind /api/v1/me.
package user

import (
	"context"
	"errors"
	"strings"

	"skill-ready/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// UpdateMeInput carries optional profile changes; a nil field is untouched.
type UpdateMeInput struct {
	Email    *string
	Password *string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.load(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	return withoutHash(usr), nil
}

// UpdateMe applies the provided fields and returns the stored profile. The
// password hash never leaves this package.
func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateMeInput) (user.User, error) {
	usr, err := s.load(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return user.User{}, ErrInvalidInput
		}
		usr.Email = email
	}

	if in.Password != nil {
		pw := strings.TrimSpace(*in.Password)
		if len(pw) < 8 {
			return user.User{}, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			return user.User{}, ErrInternal
		}
		usr.PasswordHash = string(hash)
	}

	if err := s.users.UpdateUser(ctx, usr); err != nil {
		return user.User{}, ErrInternal
	}

	updated, err := s.load(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	return withoutHash(updated), nil
}

// load fetches a user and keeps not-found distinguishable from storage
// failures so the handler can answer 404 instead of 500.
func (s *Service) load(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, err
		}
		return user.User{}, ErrInternal
	}
	return usr, nil
}

func withoutHash(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
