// Package jwt issues and validates the HS256 token pair used by the API.
// Access tokens carry the user's email and role; refresh tokens only the
// subject, signed with a separate secret.
package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	TokenType string    `json:"token_type"`

	IssuedAt  time.Time `json:"issued_at"`
	ExpiredAt time.Time `json:"expired_at"`

	jwtlib.RegisteredClaims
}

type Service interface {
	GenerateAccessToken(userID uuid.UUID, email, role string) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	ValidateToken(tokenString string) (Claims, error)
	IsRefreshToken(claims Claims) bool
}

// HMACService signs both token kinds with HS256. The clock is a field so
// tests can pin time.
type HMACService struct {
	access  tokenSpec
	refresh tokenSpec
	now     func() time.Time
}

type tokenSpec struct {
	secret    []byte
	expiresIn time.Duration
}

func (ts tokenSpec) usable() bool {
	return len(ts.secret) > 0 && ts.expiresIn > 0
}

func NewHMACService(accessSecret, refreshSecret string, accessExpiresIn, refreshExpiresIn time.Duration) *HMACService {
	return &HMACService{
		access:  tokenSpec{secret: []byte(accessSecret), expiresIn: accessExpiresIn},
		refresh: tokenSpec{secret: []byte(refreshSecret), expiresIn: refreshExpiresIn},
		now:     time.Now,
	}
}

func (s *HMACService) GenerateAccessToken(userID uuid.UUID, email, role string) (string, error) {
	return s.sign(s.access, Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: TokenTypeAccess,
	})
}

func (s *HMACService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return s.sign(s.refresh, Claims{
		UserID:    userID,
		TokenType: TokenTypeRefresh,
	})
}

// ValidateToken accepts tokens of either kind. It tries the access secret
// first, then the refresh secret, and reports expiry over invalidity when
// both apply.
func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	claims, accessErr := s.parse(tokenString, s.access.secret)
	if accessErr == nil {
		return claims, nil
	}

	claims, refreshErr := s.parse(tokenString, s.refresh.secret)
	if refreshErr == nil {
		return claims, nil
	}

	if errors.Is(accessErr, ErrTokenExpired) || errors.Is(refreshErr, ErrTokenExpired) {
		return Claims{}, ErrTokenExpired
	}
	return Claims{}, ErrTokenInvalid
}

func (s *HMACService) IsRefreshToken(claims Claims) bool {
	return claims.TokenType == TokenTypeRefresh
}

func (s *HMACService) sign(spec tokenSpec, c Claims) (string, error) {
	if !spec.usable() {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	exp := now.Add(spec.expiresIn)

	c.IssuedAt = now
	c.ExpiredAt = exp
	c.RegisteredClaims = jwtlib.RegisteredClaims{
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(exp),
		Subject:   c.UserID.String(),
	}

	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(spec.secret)
}

func (s *HMACService) parse(tokenString string, secret []byte) (Claims, error) {
	parser := jwtlib.NewParser(jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))

	var c Claims
	tok, err := parser.ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (any, error) {
		return secret, nil
	})
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	case err != nil, tok == nil, !tok.Valid:
		return Claims{}, ErrTokenInvalid
	}

	// The custom expiry claim is enforced alongside the registered one so a
	// token with only one of them set still expires.
	if !c.ExpiredAt.IsZero() && s.now().UTC().After(c.ExpiredAt.UTC()) {
		return Claims{}, ErrTokenExpired
	}
	if c.TokenType != TokenTypeAccess && c.TokenType != TokenTypeRefresh {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
