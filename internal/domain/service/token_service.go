package service

import (
	"time"

	"campuseats/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenClaims is the validated content of a token.
type TokenClaims struct {
	AccountID uuid.UUID
	Role      entity.Role
	TokenType string // "access" or "refresh"
}

// TokenService issues and validates the access/refresh token pair.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for an account.
	GenerateTokens(accountID uuid.UUID, role entity.Role) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken checks an access token and returns its claims.
	ValidateAccessToken(tokenString string) (*TokenClaims, error)

	// ValidateRefreshToken checks a refresh token and returns its claims.
	ValidateRefreshToken(tokenString string) (*TokenClaims, error)

	// HashToken returns the hash under which a refresh token is persisted.
	HashToken(tokenString string) string

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}
