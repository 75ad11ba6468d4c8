package usecase

import (
	"context"

	"campuseats/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItemInput defines a vendor's menu item create/update payload.
type MenuItemInput struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	IsAvailable bool            `json:"isAvailable"`
}

// VendorListing is one entry of the public storefront catalog.
type VendorListing struct {
	Account *entity.Account
	Items   []*entity.MenuItem
}

// MenuUsecase covers vendor menu management and the public catalog.
// The catalog only surfaces approved, active vendors whose storefront
// images passed review.
type MenuUsecase interface {
	CreateMenuItem(ctx context.Context, vendorID uuid.UUID, input *MenuItemInput) (*entity.MenuItem, error)
	UpdateMenuItem(ctx context.Context, vendorID, itemID uuid.UUID, input *MenuItemInput) (*entity.MenuItem, error)
	DeleteMenuItem(ctx context.Context, vendorID, itemID uuid.UUID) error
	ListMenu(ctx context.Context, vendorID uuid.UUID) ([]*entity.MenuItem, error)

	// ListVendors returns the public catalog of approved vendors.
	ListVendors(ctx context.Context) ([]*entity.Account, error)

	// ListPublicItems returns every available item across approved vendors,
	// the cross-store browse view.
	ListPublicItems(ctx context.Context) ([]*entity.MenuItem, error)

	// GetVendorMenu returns one approved vendor's available items.
	GetVendorMenu(ctx context.Context, vendorID uuid.UUID) (*VendorListing, error)
}
