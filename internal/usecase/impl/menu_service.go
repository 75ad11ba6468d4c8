package impl

import (
	"context"
	"log/slog"

	deliverycontext "campuseats/internal/delivery/context"
	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/repository"
	"campuseats/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// menuService implements the MenuUsecase interface.
type menuService struct {
	accountRepo  repository.AccountRepository
	menuItemRepo repository.MenuItemRepository
	logger       *slog.Logger
}

// MenuServiceParams holds dependencies for menuService, injected by Fx.
type MenuServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	MenuItemRepo repository.MenuItemRepository
	Logger       *slog.Logger
}

// NewMenuService is the constructor for menuService.
func NewMenuService(params MenuServiceParams) usecase.MenuUsecase {
	return &menuService{
		accountRepo:  params.AccountRepo,
		menuItemRepo: params.MenuItemRepo,
		logger:       params.Logger,
	}
}

func (srv *menuService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateMenuItem adds an item to the caller's own menu.
func (srv *menuService) CreateMenuItem(ctx context.Context, vendorID uuid.UUID, input *usecase.MenuItemInput) (*entity.MenuItem, error) {
	if _, err := srv.requireVendor(ctx, vendorID); err != nil {
		return nil, err
	}

	item := &entity.MenuItem{
		VendorID:    vendorID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		IsAvailable: input.IsAvailable,
	}

	if err := srv.menuItemRepo.Create(ctx, item); err != nil {
		srv.log(ctx).Error("Failed to create menu item", slog.Any("vendorID", vendorID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create menu item")
	}

	return item, nil
}

// UpdateMenuItem replaces the fields of the vendor's own item.
func (srv *menuService) UpdateMenuItem(ctx context.Context, vendorID, itemID uuid.UUID, input *usecase.MenuItemInput) (*entity.MenuItem, error) {
	item, err := srv.findOwnedItem(ctx, vendorID, itemID)
	if err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Description = input.Description
	item.Price = input.Price
	item.Category = input.Category
	item.ImageURL = input.ImageURL
	item.IsAvailable = input.IsAvailable

	if err := srv.menuItemRepo.Update(ctx, item); err != nil {
		srv.log(ctx).Error("Failed to update menu item", slog.Any("itemID", itemID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update menu item")
	}

	return item, nil
}

// DeleteMenuItem removes the vendor's own item.
func (srv *menuService) DeleteMenuItem(ctx context.Context, vendorID, itemID uuid.UUID) error {
	if _, err := srv.findOwnedItem(ctx, vendorID, itemID); err != nil {
		return err
	}

	if err := srv.menuItemRepo.Delete(ctx, itemID); err != nil {
		srv.log(ctx).Error("Failed to delete menu item", slog.Any("itemID", itemID), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete menu item")
	}

	return nil
}

// ListMenu returns the vendor's own full menu, unavailable items included.
func (srv *menuService) ListMenu(ctx context.Context, vendorID uuid.UUID) ([]*entity.MenuItem, error) {
	items, err := srv.menuItemRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		srv.log(ctx).Error("Failed to list vendor menu", slog.Any("vendorID", vendorID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list vendor menu")
	}

	return items, nil
}

// ListVendors returns the public storefront catalog: approved, active
// vendors whose images passed review.
func (srv *menuService) ListVendors(ctx context.Context) ([]*entity.Account, error) {
	accounts, err := srv.accountRepo.List(ctx, repository.AccountFilter{
		Roles:    []entity.Role{entity.RoleVendor},
		Statuses: []entity.AccountStatus{entity.AccountStatusApproved},
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list vendors", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list vendors")
	}

	listable := make([]*entity.Account, 0, len(accounts))
	for _, account := range accounts {
		if publiclyListable(account) {
			listable = append(listable, account)
		}
	}

	return listable, nil
}

// ListPublicItems returns the available items of every publicly listable
// vendor. The listable-vendor filter runs in the store's query.
func (srv *menuService) ListPublicItems(ctx context.Context) ([]*entity.MenuItem, error) {
	items, err := srv.menuItemRepo.ListPublic(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list public menu items", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list public menu items")
	}

	return items, nil
}

// GetVendorMenu returns one public vendor with its available items. Vendors
// that are not publicly listable are indistinguishable from missing ones.
func (srv *menuService) GetVendorMenu(ctx context.Context, vendorID uuid.UUID) (*usecase.VendorListing, error) {
	account, err := srv.accountRepo.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "vendor not found")
		}

		return nil, errors.Wrap(err, "failed to find vendor")
	}
	if !publiclyListable(account) {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "vendor not publicly listed")
	}

	items, err := srv.menuItemRepo.ListPublicByVendor(ctx, vendorID)
	if err != nil {
		srv.log(ctx).Error("Failed to list public vendor menu", slog.Any("vendorID", vendorID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list public vendor menu")
	}

	return &usecase.VendorListing{Account: account, Items: items}, nil
}

// publiclyListable is the single gate clients see vendors through.
func publiclyListable(account *entity.Account) bool {
	return account.Role == entity.RoleVendor &&
		account.IsActive &&
		account.Status == entity.AccountStatusApproved &&
		account.VendorProfile != nil &&
		account.VendorProfile.ImagesApproved
}

func (srv *menuService) requireVendor(ctx context.Context, vendorID uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "vendor not found")
		}

		return nil, errors.Wrap(err, "failed to find vendor")
	}
	if account.VendorProfile == nil {
		return nil, errors.Wrap(domainerrors.ErrProfileMissing, "account has no vendor profile")
	}

	return account, nil
}

func (srv *menuService) findOwnedItem(ctx context.Context, vendorID, itemID uuid.UUID) (*entity.MenuItem, error) {
	item, err := srv.menuItemRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return nil, errors.Wrap(domainerrors.ErrMenuItemNotFound, "menu item not found")
		}

		return nil, errors.Wrap(err, "failed to find menu item")
	}
	if item.VendorID != vendorID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "menu item belongs to another vendor")
	}

	return item, nil
}
