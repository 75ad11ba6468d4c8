// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"campuseats/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountFilter narrows account listings.
type AccountFilter struct {
	Roles    []entity.Role
	Statuses []entity.AccountStatus

	// ExcludeAdministrative drops admin and sub-admin rows from the result.
	// Used to keep the administrative tier invisible to sub-admins at read
	// time, not just on mutation.
	ExcludeAdministrative bool
}

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByCampusID retrieves a single account by its campus ID.
	FindByCampusID(ctx context.Context, campusID string) (*entity.Account, error)

	// Create persists a new account entity, including its role profile.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account entity in the storage.
	Update(ctx context.Context, account *entity.Account) error

	// Delete hard-deletes an account and cascades to its dependent records.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves accounts matching the filter, newest first.
	List(ctx context.Context, filter AccountFilter) ([]*entity.Account, error)
}
