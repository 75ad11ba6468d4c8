package impl

import (
	"context"
	"log/slog"
	"time"

	"campuseats/config"
	deliverycontext "campuseats/internal/delivery/context"
	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/repository"
	"campuseats/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// defaultProfileLoadTimeout bounds the post-login profile fetch when config
// does not set one.
const defaultProfileLoadTimeout = 15 * time.Second

// profileService implements the ProfileUsecase interface.
type profileService struct {
	accountRepo        repository.AccountRepository
	refreshTokenRepo   repository.RefreshTokenRepository
	profileLoadTimeout time.Duration
	logger             *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	AccountRepo      repository.AccountRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Config           *config.Config
	Logger           *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	timeout := defaultProfileLoadTimeout
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.ProfileLoadTimeout > 0 {
		timeout = params.Config.Auth.ProfileLoadTimeout
	}

	return &profileService{
		accountRepo:        params.AccountRepo,
		refreshTokenRepo:   params.RefreshTokenRepo,
		profileLoadTimeout: timeout,
		logger:             params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// LoadProfile fetches the signed-in account for its dashboard. The fetch is
// bounded so a slow store degrades into a retryable timeout instead of a
// hung page, and the account's live state is re-checked so deactivation
// takes effect here, on the next load, rather than at token expiry.
func (srv *profileService) LoadProfile(ctx context.Context, accountID uuid.UUID) (*usecase.ProfileOutput, error) {
	loadCtx, cancel := context.WithTimeout(ctx, srv.profileLoadTimeout)
	defer cancel()

	account, err := srv.accountRepo.FindByID(loadCtx, accountID)
	if err != nil {
		// Only a spent deadline is the retryable timeout; a cancelled parent
		// context means the caller went away and gets the error as-is.
		if errors.Is(loadCtx.Err(), context.DeadlineExceeded) {
			srv.log(ctx).Warn("Profile load timed out", slog.Any("accountID", accountID), slog.Duration("timeout", srv.profileLoadTimeout))

			return nil, errors.Wrap(domainerrors.ErrProfileLoadTimeout, "profile load exceeded deadline")
		}
		if errors.Is(err, repository.ErrAccountNotFound) {
			// A valid token for a missing account is a provisioning bug,
			// not a user mistake.
			srv.log(ctx).Error("Authenticated account has no profile row", slog.Any("accountID", accountID))

			return nil, errors.Wrap(domainerrors.ErrProfileMissing, "no account row for authenticated id")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	if !account.IsActive {
		srv.log(ctx).Info("Deactivated account hit profile load, revoking sessions", slog.Any("accountID", accountID))

		if err := srv.refreshTokenRepo.DeleteByAccountID(ctx, accountID); err != nil {
			srv.log(ctx).Error("Failed to revoke sessions of deactivated account", slog.Any("accountID", accountID), slog.Any("error", err))
		}

		return nil, errors.Wrap(domainerrors.ErrAccountDisabled, "account deactivated")
	}

	return &usecase.ProfileOutput{
		Account:        account,
		DashboardRoute: account.Role.DashboardRoute(),
	}, nil
}

// UpdateProfile changes the self-service fields of the caller's own account.
func (srv *profileService) UpdateProfile(ctx context.Context, accountID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "account not found")
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	account.FirstName = input.FirstName
	account.LastName = input.LastName
	account.Phone = input.Phone

	if err := srv.accountRepo.Update(ctx, account); err != nil {
		srv.log(ctx).Error("Failed to update profile", slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update profile")
	}

	return account, nil
}

// UpdateVendorProfile changes the storefront text of the caller's vendor
// profile. Image changes go through the upload/review flow instead.
func (srv *profileService) UpdateVendorProfile(ctx context.Context, accountID uuid.UUID, input *usecase.UpdateVendorProfileInput) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "account not found")
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	if account.VendorProfile == nil {
		srv.log(ctx).Error("Vendor account without vendor profile", slog.Any("accountID", accountID))

		return nil, errors.Wrap(domainerrors.ErrProfileMissing, "vendor account has no vendor profile")
	}

	account.VendorProfile.StoreName = input.StoreName
	account.VendorProfile.StoreDescription = input.StoreDescription

	if err := srv.accountRepo.Update(ctx, account); err != nil {
		srv.log(ctx).Error("Failed to update vendor profile", slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update vendor profile")
	}

	return account, nil
}
