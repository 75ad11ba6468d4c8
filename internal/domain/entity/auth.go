// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderTypeEmail is the only credential provider: email + password.
// Campus ID logins resolve to the same email credential before verification.
const ProviderTypeEmail = "email"

// Authentication represents a single method of logging in (a credential).
type Authentication struct {
	ID             uuid.UUID // The unique ID for this specific authentication record itself.
	AccountID      uuid.UUID // Links this authentication method to the Account it belongs to.
	Provider       string    // The authentication provider; currently always "email".
	ProviderUserID string    // The identifier at the provider; for "email" this is the email address.
	PasswordHash   string    // Stores the bcrypt-hashed password.
	CreatedAt      time.Time // Timestamp of when this authentication method was created.
}

// RefreshToken represents a long-lived, authorized session.
// It is used to obtain a new access token after the old one expires.
type RefreshToken struct {
	ID        uuid.UUID // The unique ID for this specific refresh token record.
	AccountID uuid.UUID // Links this session to the Account it belongs to.
	TokenHash string    // SHA-256 hash of the raw refresh token for secure comparison.
	ExpiresAt time.Time // The exact time when this refresh token becomes invalid.
	CreatedAt time.Time // Timestamp of when this session was created.
}
