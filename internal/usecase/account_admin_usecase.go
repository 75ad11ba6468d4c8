package usecase

import (
	"context"
	"io"

	"campuseats/internal/domain/entity"

	"github.com/google/uuid"
)

// Actor identifies who is performing an administrative operation. The role
// decides which accounts are visible and which mutations are allowed.
type Actor struct {
	AccountID uuid.UUID
	Role      entity.Role
}

// CreateAccountInput defines an admin-created account of any role.
type CreateAccountInput struct {
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,min=8"`
	Role      entity.Role `json:"role" validate:"required"`
	FirstName string      `json:"firstName" validate:"required"`
	LastName  string      `json:"lastName" validate:"required"`
	Phone     string      `json:"phone"`

	// Vendor-only fields, ignored for other roles.
	StoreName        string `json:"storeName"`
	StoreDescription string `json:"storeDescription"`

	// Delivery-only field, ignored for other roles.
	VehicleType string `json:"vehicleType"`
}

// UpdateAccountInput defines the admin-editable fields of an account.
type UpdateAccountInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone"`
}

// ListAccountsInput filters the administrative account listing.
type ListAccountsInput struct {
	Roles    []entity.Role          `query:"roles"`
	Statuses []entity.AccountStatus `query:"statuses"`
}

// ReviewVendorImagesInput approves or rejects a vendor's pending images.
type ReviewVendorImagesInput struct {
	Approve bool `json:"approve"`
}

// AccountAdminUsecase defines the administrative account lifecycle operations.
// Every method takes the acting administrator; sub-admins never see or touch
// administrative accounts, and only full admins may manage sub-admins.
type AccountAdminUsecase interface {
	CreateAccount(ctx context.Context, actor Actor, input *CreateAccountInput) (*entity.Account, error)
	ListAccounts(ctx context.Context, actor Actor, input *ListAccountsInput) ([]*entity.Account, error)
	GetAccount(ctx context.Context, actor Actor, accountID uuid.UUID) (*entity.Account, error)
	UpdateAccount(ctx context.Context, actor Actor, accountID uuid.UUID, input *UpdateAccountInput) (*entity.Account, error)

	// ApproveAccount moves a pending account to approved. Approving a
	// non-pending account is rejected.
	ApproveAccount(ctx context.Context, actor Actor, accountID uuid.UUID) (*entity.Account, error)

	// RejectAccount moves a pending account to rejected.
	RejectAccount(ctx context.Context, actor Actor, accountID uuid.UUID) (*entity.Account, error)

	// SetAccountActive toggles the active flag. Deactivated accounts are
	// signed out on their next profile load.
	SetAccountActive(ctx context.Context, actor Actor, accountID uuid.UUID, active bool) (*entity.Account, error)

	DeleteAccount(ctx context.Context, actor Actor, accountID uuid.UUID) error

	// ReviewVendorImages approves or clears a vendor's uploaded storefront
	// images. Approval is what makes the vendor publicly listable.
	ReviewVendorImages(ctx context.Context, actor Actor, vendorID uuid.UUID, input *ReviewVendorImagesInput) (*entity.Account, error)
}

// UploadVendorImageInput carries one storefront image upload.
type UploadVendorImageInput struct {
	Kind        entity.VendorImageKind
	ContentType string
	Body        io.Reader
}

// VendorImageUsecase handles vendor storefront image uploads. Any upload
// resets the vendor's image approval until an administrator re-reviews.
type VendorImageUsecase interface {
	UploadImage(ctx context.Context, vendorID uuid.UUID, input *UploadVendorImageInput) (*entity.Account, error)
}
