package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"skill-ready/internal/domain/user"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

const minPasswordLen = 8

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, error)
	Login(ctx context.Context, in LoginInput) (user.User, error)
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

// Register creates a member account. Admin accounts are never created through
// this path; they are promoted directly in the database.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email := canonicalEmail(in.Email)
	if email == "" || len(strings.TrimSpace(in.Password)) < minPasswordLen {
		return user.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleMember,
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		// A concurrent register may have won the unique-email race.
		if exists, exErr := s.users.ExistsByEmail(ctx, email); exErr == nil && exists {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return withoutHash(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := canonicalEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}
	return withoutHash(u), nil
}

func canonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func withoutHash(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
