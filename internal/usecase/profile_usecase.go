package usecase

import (
	"context"

	"campuseats/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput carries the self-service editable fields of a profile.
type UpdateProfileInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone"`
}

// UpdateVendorProfileInput carries the vendor-editable storefront fields.
type UpdateVendorProfileInput struct {
	StoreName        string `json:"storeName" validate:"required"`
	StoreDescription string `json:"storeDescription"`
}

// ProfileOutput is the post-login profile snapshot the dashboards render.
type ProfileOutput struct {
	Account        *entity.Account
	DashboardRoute string
}

// ProfileUsecase loads and updates the signed-in account's own profile.
//
// LoadProfile is the post-login gate: it re-checks that the account is still
// active and approved, so a deactivation takes effect on the next profile
// load rather than at token expiry. The load is bounded by the configured
// timeout; on expiry it fails with a gateway-timeout error instead of
// hanging the dashboard.
type ProfileUsecase interface {
	LoadProfile(ctx context.Context, accountID uuid.UUID) (*ProfileOutput, error)
	UpdateProfile(ctx context.Context, accountID uuid.UUID, input *UpdateProfileInput) (*entity.Account, error)
	UpdateVendorProfile(ctx context.Context, accountID uuid.UUID, input *UpdateVendorProfileInput) (*entity.Account, error)
}
