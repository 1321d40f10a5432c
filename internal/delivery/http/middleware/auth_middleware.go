package middleware

import (
	"errors"
	"strings"

	"skill-ready/internal/domain/user"
	"skill-ready/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

// Locals keys populated by AuthMiddleware for downstream handlers.
const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
	CtxRoleKey   = "role"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware authenticates the request with a bearer access token. Refresh
// tokens are rejected here; they are only good for the refresh endpoint.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, err := m.authenticate(c.Get("Authorization"))
		if err != nil {
			return err
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxRoleKey, claims.Role)
		return c.Next()
	}
}

// RequireAdmin must run after Middleware; it reads the role local set there.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		role, ok := c.Locals(CtxRoleKey).(string)
		if !ok || role != user.RoleAdmin {
			return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
		}
		return c.Next()
	}
}

func (m *AuthMiddleware) authenticate(header string) (jwt.Claims, error) {
	token, ok := bearerToken(header)
	if !ok {
		return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	claims, err := m.jwt.ValidateToken(token)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
	case err != nil:
		return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
	case claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims):
		return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
	}
	return claims, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
