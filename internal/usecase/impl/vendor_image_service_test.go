package impl

import (
	"context"
	"strings"
	"testing"

	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	mockrepo "campuseats/internal/mocks/repository"
	mockservice "campuseats/internal/mocks/service"
	"campuseats/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newVendorImageService(t *testing.T) (usecase.VendorImageUsecase, *mockrepo.MockAccountRepository, *mockservice.MockImageStore) {
	t.Helper()

	accountRepo := mockrepo.NewMockAccountRepository(t)
	imageStore := mockservice.NewMockImageStore(t)

	svc := NewVendorImageService(VendorImageServiceParams{
		AccountRepo: accountRepo,
		ImageStore:  imageStore,
		Logger:      discardLogger(),
	})

	return svc, accountRepo, imageStore
}

func TestVendorImageService_UploadImage_ResetsApproval(t *testing.T) {
	svc, accountRepo, imageStore := newVendorImageService(t)

	vendor := listableVendor()
	require.True(t, vendor.VendorProfile.ImagesApproved)

	accountRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)
	imageStore.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "vendors/"+vendor.ID.String()+"/")
	}), "image/jpeg", mock.Anything).Return("https://cdn.example/canteen.jpg", nil)
	accountRepo.On("Update", mock.Anything, mock.MatchedBy(func(account *entity.Account) bool {
		profile := account.VendorProfile

		return !profile.ImagesApproved && profile.CanteenImageURL == "https://cdn.example/canteen.jpg"
	})).Return(nil)

	updated, err := svc.UploadImage(context.Background(), vendor.ID, &usecase.UploadVendorImageInput{
		Kind:        entity.VendorImageCanteen,
		ContentType: "image/jpeg",
		Body:        strings.NewReader("jpeg-bytes"),
	})
	require.NoError(t, err)
	assert.False(t, updated.VendorProfile.ImagesApproved, "a new image always goes back through review")
}

func TestVendorImageService_UploadImage_UnknownKind(t *testing.T) {
	svc, _, _ := newVendorImageService(t)

	_, err := svc.UploadImage(context.Background(), listableVendor().ID, &usecase.UploadVendorImageInput{
		Kind:        entity.VendorImageKind("selfie"),
		ContentType: "image/jpeg",
		Body:        strings.NewReader("jpeg-bytes"),
	})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestVendorImageService_UploadImage_NoVendorProfile(t *testing.T) {
	svc, accountRepo, _ := newVendorImageService(t)

	account := approvedAccount(entity.RoleClient)
	accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)

	_, err := svc.UploadImage(context.Background(), account.ID, &usecase.UploadVendorImageInput{
		Kind:        entity.VendorImageMenu,
		ContentType: "image/png",
		Body:        strings.NewReader("png-bytes"),
	})
	require.ErrorIs(t, err, domainerrors.ErrProfileMissing)
}
