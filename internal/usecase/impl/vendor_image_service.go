package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "campuseats/internal/delivery/context"
	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/repository"
	"campuseats/internal/domain/service"
	"campuseats/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// vendorImageService implements the VendorImageUsecase interface.
type vendorImageService struct {
	accountRepo repository.AccountRepository
	imageStore  service.ImageStore
	logger      *slog.Logger
}

// VendorImageServiceParams holds dependencies for vendorImageService, injected by Fx.
type VendorImageServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	ImageStore  service.ImageStore
	Logger      *slog.Logger
}

// NewVendorImageService is the constructor for vendorImageService.
func NewVendorImageService(params VendorImageServiceParams) usecase.VendorImageUsecase {
	return &vendorImageService{
		accountRepo: params.AccountRepo,
		imageStore:  params.ImageStore,
		logger:      params.Logger,
	}
}

func (srv *vendorImageService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UploadImage stores a new storefront image and pulls the vendor back into
// review: whatever was approved before, a changed picture must be looked at
// again before the store shows up in the public catalog.
func (srv *vendorImageService) UploadImage(ctx context.Context, vendorID uuid.UUID, input *usecase.UploadVendorImageInput) (*entity.Account, error) {
	if !input.Kind.IsValid() {
		return nil, errors.Wrapf(domainerrors.ErrValidationFailed, "unknown image kind %q", input.Kind)
	}

	account, err := srv.accountRepo.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "vendor not found")
		}

		return nil, errors.Wrap(err, "failed to find vendor")
	}
	if account.VendorProfile == nil {
		srv.log(ctx).Error("Vendor account without vendor profile", slog.Any("vendorID", vendorID))

		return nil, errors.Wrap(domainerrors.ErrProfileMissing, "vendor account has no vendor profile")
	}

	key := fmt.Sprintf("vendors/%s/%s-%d", vendorID, input.Kind, time.Now().UnixNano())
	url, err := srv.imageStore.Upload(ctx, key, input.ContentType, input.Body)
	if err != nil {
		srv.log(ctx).Error("Failed to store vendor image", slog.Any("vendorID", vendorID), slog.Any("kind", input.Kind), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to store vendor image")
	}

	account.VendorProfile.ApplyImageUpload(input.Kind, url)

	if err := srv.accountRepo.Update(ctx, account); err != nil {
		srv.log(ctx).Error("Failed to persist vendor image", slog.Any("vendorID", vendorID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to persist vendor image")
	}

	srv.log(ctx).Info("Vendor image uploaded, approval reset", slog.Any("vendorID", vendorID), slog.Any("kind", input.Kind))

	return account, nil
}
