package repository

import (
	"context"
	"errors"

	"campuseats/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrMenuItemNotFound is returned when a menu item is not found.
var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuItemRepository defines the standard operations for menu persistence.
type MenuItemRepository interface {
	// FindByID retrieves a single menu item by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)

	// Create persists a new menu item.
	Create(ctx context.Context, item *entity.MenuItem) error

	// Update modifies an existing menu item.
	Update(ctx context.Context, item *entity.MenuItem) error

	// Delete removes a menu item.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByVendor retrieves every item of one vendor, including unavailable ones.
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.MenuItem, error)

	// ListPublic retrieves the client-facing catalog: available items whose
	// vendor is approved, active and has its images approved.
	ListPublic(ctx context.Context) ([]*entity.MenuItem, error)

	// ListPublicByVendor is ListPublic narrowed to one vendor.
	ListPublicByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.MenuItem, error)
}
