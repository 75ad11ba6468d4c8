// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"campuseats/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for authentication persistence.
// This allows the application layer to handle specific outcomes without depending on database-specific errors.
var (
	// ErrAuthNotFound is returned when an authentication method is not found.
	ErrAuthNotFound = errors.New("authentication method not found")
	// ErrRefreshTokenNotFound is returned when a refresh token is not found.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	// ErrRefreshTokenExpired is returned when a refresh token has expired.
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// AuthRepository defines the standard operations for credential persistence.
type AuthRepository interface {
	// CreateAuthentication persists a new authentication method.
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// FindAuthentication retrieves an authentication method by provider and provider-specific ID.
	FindAuthentication(ctx context.Context, provider string, providerUserID string) (*entity.Authentication, error)

	// UpdatePasswordHash replaces the stored password hash for an account's email credential.
	UpdatePasswordHash(ctx context.Context, accountID uuid.UUID, passwordHash string) error

	// DeleteByAccountID removes all authentication methods for an account.
	DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error
}

// RefreshTokenRepository defines the standard operations for session persistence.
type RefreshTokenRepository interface {
	// Create persists a new refresh token, representing a session.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByHash retrieves a refresh token record by its securely stored hash.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteByHash deletes a refresh token by its hash, ending a single session.
	DeleteByHash(ctx context.Context, tokenHash string) error

	// DeleteByAccountID removes every session for an account. Used for the
	// forced sign-out of deactivated accounts.
	DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error

	// DeleteExpired removes all expired refresh tokens from the database.
	DeleteExpired(ctx context.Context) error
}
