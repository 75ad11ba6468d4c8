package postgres

import (
	"context"
	"strings"

	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/repository"
	"campuseats/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// accountRepository implements the domain.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves a single account with its role profile by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Preload("VendorProfile").
		Preload("DeliveryProfile").
		First(&accountM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves a single account by its email address.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Preload("VendorProfile").
		Preload("DeliveryProfile").
		First(&accountM, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toAccountDomain(&accountM), nil
}

// FindByCampusID retrieves a single account by its campus ID.
func (repo *accountRepository) FindByCampusID(ctx context.Context, campusID string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Preload("VendorProfile").
		Preload("DeliveryProfile").
		First(&accountM, "campus_id = ?", campusID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toAccountDomain(&accountM), nil
}

// Create persists a new account entity, including its role profile.
// Unique violations are mapped to distinct domain errors so the caller can
// tell an email clash from a campus ID collision and retry only the latter.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			name := strings.ToLower(constraintName(err))
			switch {
			case strings.Contains(name, "campus_id"):
				return domainerrors.ErrCampusIDTaken.WrapMessage("campus id already assigned")
			case strings.Contains(name, "email"):
				return domainerrors.ErrAccountAlreadyExists.WrapMessage("email already registered")
			default:
				return domainerrors.ErrAccountCreationFailed.WrapMessage("account conflicts with an existing row")
			}
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	// Update the entity with generated values
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt
	syncProfileIDs(account)

	return nil
}

// Update modifies an existing account entity, saving its role profile along
// with it.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	err := repo.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(accountM).Error
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrAccountUpdateFailed.WrapMessage("account conflicts with an existing row")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update account")
	}

	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// Delete hard-deletes an account; profile rows and application records go
// with it through ON DELETE CASCADE.
func (repo *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Select(clause.Associations).
		Delete(&model.AccountModel{ID: id})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// List retrieves accounts matching the filter, newest first.
func (repo *accountRepository) List(ctx context.Context, filter repository.AccountFilter) ([]*entity.Account, error) {
	query := repo.db.WithContext(ctx).
		Preload("VendorProfile").
		Preload("DeliveryProfile").
		Order("created_at DESC")

	if len(filter.Roles) > 0 {
		query = query.Where("role IN ?", rolesToStrings(filter.Roles))
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", statusesToStrings(filter.Statuses))
	}
	if filter.ExcludeAdministrative {
		query = query.Where("role NOT IN ?", []string{
			entity.RoleAdmin.String(),
			entity.RoleSubAdmin.String(),
		})
	}

	var accountModels []*model.AccountModel
	if err := query.Find(&accountModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	accounts := make([]*entity.Account, 0, len(accountModels))
	for _, accountM := range accountModels {
		accounts = append(accounts, toAccountDomain(accountM))
	}

	return accounts, nil
}

func rolesToStrings(roles []entity.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = r.String()
	}

	return out
}

func statusesToStrings(statuses []entity.AccountStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}

	return out
}

// syncProfileIDs stamps the generated account ID onto the role profile after insert.
func syncProfileIDs(account *entity.Account) {
	if account.VendorProfile != nil {
		account.VendorProfile.AccountID = account.ID
	}
	if account.DeliveryProfile != nil {
		account.DeliveryProfile.AccountID = account.ID
	}
}

// --- Mapper Functions ---

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	account := &entity.Account{
		ID:         data.ID,
		Email:      data.Email,
		CampusID:   data.CampusID,
		Role:       entity.Role(data.Role),
		FirstName:  data.FirstName,
		LastName:   data.LastName,
		Phone:      data.Phone,
		IsActive:   data.IsActive,
		Status:     entity.AccountStatus(data.Status),
		CreatedBy:  data.CreatedBy,
		ApprovedBy: data.ApprovedBy,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}

	if data.VendorProfile != nil {
		account.VendorProfile = &entity.VendorProfile{
			AccountID:        data.VendorProfile.AccountID,
			StoreName:        data.VendorProfile.StoreName,
			StoreDescription: data.VendorProfile.StoreDescription,
			CanteenImageURL:  data.VendorProfile.CanteenImageURL,
			LocationImageURL: data.VendorProfile.LocationImageURL,
			MenuImageURL:     data.VendorProfile.MenuImageURL,
			ImagesApproved:   data.VendorProfile.ImagesApproved,
			UpdatedAt:        data.VendorProfile.UpdatedAt,
		}
	}
	if data.DeliveryProfile != nil {
		account.DeliveryProfile = &entity.DeliveryProfile{
			AccountID:      data.DeliveryProfile.AccountID,
			VehicleType:    data.DeliveryProfile.VehicleType,
			IsAvailable:    data.DeliveryProfile.IsAvailable,
			LastLatitude:   data.DeliveryProfile.LastLatitude,
			LastLongitude:  data.DeliveryProfile.LastLongitude,
			LastLocationAt: data.DeliveryProfile.LastLocationAt,
			UpdatedAt:      data.DeliveryProfile.UpdatedAt,
		}
	}

	return account
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	accountM := &model.AccountModel{
		ID:         data.ID,
		Email:      data.Email,
		CampusID:   data.CampusID,
		Role:       data.Role.String(),
		FirstName:  data.FirstName,
		LastName:   data.LastName,
		Phone:      data.Phone,
		IsActive:   data.IsActive,
		Status:     string(data.Status),
		CreatedBy:  data.CreatedBy,
		ApprovedBy: data.ApprovedBy,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}

	if data.VendorProfile != nil {
		accountM.VendorProfile = &model.VendorProfileModel{
			AccountID:        data.ID,
			StoreName:        data.VendorProfile.StoreName,
			StoreDescription: data.VendorProfile.StoreDescription,
			CanteenImageURL:  data.VendorProfile.CanteenImageURL,
			LocationImageURL: data.VendorProfile.LocationImageURL,
			MenuImageURL:     data.VendorProfile.MenuImageURL,
			ImagesApproved:   data.VendorProfile.ImagesApproved,
		}
	}
	if data.DeliveryProfile != nil {
		accountM.DeliveryProfile = &model.DeliveryProfileModel{
			AccountID:      data.ID,
			VehicleType:    data.DeliveryProfile.VehicleType,
			IsAvailable:    data.DeliveryProfile.IsAvailable,
			LastLatitude:   data.DeliveryProfile.LastLatitude,
			LastLongitude:  data.DeliveryProfile.LastLongitude,
			LastLocationAt: data.DeliveryProfile.LastLocationAt,
		}
	}

	return accountM
}
