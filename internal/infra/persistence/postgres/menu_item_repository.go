package postgres

import (
	"context"

	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/repository"
	"campuseats/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// publicVendorCondition restricts menu queries to vendors that clients are
// allowed to see: approved, active, with reviewed storefront images.
const publicVendorCondition = `
	menu_items.vendor_id IN (
		SELECT accounts.id FROM accounts
		JOIN vendor_profiles ON vendor_profiles.account_id = accounts.id
		WHERE accounts.role = 'vendor'
		  AND accounts.status = 'approved'
		  AND accounts.is_active = TRUE
		  AND vendor_profiles.images_approved = TRUE
	)`

// menuItemRepository implements the domain.MenuItemRepository interface.
type menuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository is the constructor for menuItemRepository.
func NewMenuItemRepository(db *gorm.DB) repository.MenuItemRepository {
	return &menuItemRepository{db: db}
}

// FindByID retrieves a single menu item by its unique ID.
func (repo *menuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	var itemM model.MenuItemModel
	err := repo.db.WithContext(ctx).First(&itemM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMenuItemNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toMenuItemDomain(&itemM), nil
}

// Create persists a new menu item.
func (repo *menuItemRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	itemM := fromMenuItemDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrMenuItemNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create menu item")
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

// Update modifies an existing menu item.
func (repo *menuItemRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	itemM := fromMenuItemDomain(item)

	if err := repo.db.WithContext(ctx).Save(itemM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update menu item")
	}

	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

// Delete removes a menu item.
func (repo *menuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.MenuItemModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete menu item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrMenuItemNotFound
	}

	return nil
}

// ListByVendor retrieves every item of one vendor, including unavailable ones.
func (repo *menuItemRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.MenuItem, error) {
	var itemModels []*model.MenuItemModel
	err := repo.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("category ASC, name ASC").
		Find(&itemModels).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return toMenuItemDomains(itemModels), nil
}

// ListPublic retrieves the client-facing catalog: available items whose
// vendor is approved, active and has its images approved.
func (repo *menuItemRepository) ListPublic(ctx context.Context) ([]*entity.MenuItem, error) {
	var itemModels []*model.MenuItemModel
	err := repo.db.WithContext(ctx).
		Where("is_available = TRUE").
		Where(publicVendorCondition).
		Order("vendor_id ASC, category ASC, name ASC").
		Find(&itemModels).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return toMenuItemDomains(itemModels), nil
}

// ListPublicByVendor is ListPublic narrowed to one vendor.
func (repo *menuItemRepository) ListPublicByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.MenuItem, error) {
	var itemModels []*model.MenuItemModel
	err := repo.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Where("is_available = TRUE").
		Where(publicVendorCondition).
		Order("category ASC, name ASC").
		Find(&itemModels).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return toMenuItemDomains(itemModels), nil
}

// --- Mapper Functions ---

func toMenuItemDomain(data *model.MenuItemModel) *entity.MenuItem {
	if data == nil {
		return nil
	}

	return &entity.MenuItem{
		ID:          data.ID,
		VendorID:    data.VendorID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Category:    data.Category,
		ImageURL:    data.ImageURL,
		IsAvailable: data.IsAvailable,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toMenuItemDomains(data []*model.MenuItemModel) []*entity.MenuItem {
	items := make([]*entity.MenuItem, 0, len(data))
	for _, itemM := range data {
		items = append(items, toMenuItemDomain(itemM))
	}

	return items
}

func fromMenuItemDomain(data *entity.MenuItem) *model.MenuItemModel {
	if data == nil {
		return nil
	}

	return &model.MenuItemModel{
		ID:          data.ID,
		VendorID:    data.VendorID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Category:    data.Category,
		ImageURL:    data.ImageURL,
		IsAvailable: data.IsAvailable,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
