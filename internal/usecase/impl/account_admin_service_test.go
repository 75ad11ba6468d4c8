package impl

import (
	"context"
	"testing"

	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/repository"
	mockrepo "campuseats/internal/mocks/repository"
	mockservice "campuseats/internal/mocks/service"
	"campuseats/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminServiceMocks struct {
	txManager        *mockrepo.MockTransactionManager
	factory          *mockrepo.MockRepositoryFactory
	accountRepo      *mockrepo.MockAccountRepository
	authRepo         *mockrepo.MockAuthRepository
	refreshTokenRepo *mockrepo.MockRefreshTokenRepository
	hasher           *mockservice.MockPasswordHasher
	mailer           *mockservice.MockMailer
}

func newAdminService(t *testing.T) (usecase.AccountAdminUsecase, *adminServiceMocks) {
	t.Helper()

	mocks := &adminServiceMocks{
		txManager:        mockrepo.NewMockTransactionManager(t),
		factory:          mockrepo.NewMockRepositoryFactory(t),
		accountRepo:      mockrepo.NewMockAccountRepository(t),
		authRepo:         mockrepo.NewMockAuthRepository(t),
		refreshTokenRepo: mockrepo.NewMockRefreshTokenRepository(t),
		hasher:           mockservice.NewMockPasswordHasher(t),
		mailer:           mockservice.NewMockMailer(t),
	}

	svc := NewAccountAdminService(AccountAdminServiceParams{
		TxManager:   mocks.txManager,
		AccountRepo: mocks.accountRepo,
		Hasher:      mocks.hasher,
		Mailer:      mocks.mailer,
		Logger:      discardLogger(),
	})

	return svc, mocks
}

func adminActor() usecase.Actor {
	return usecase.Actor{AccountID: uuid.New(), Role: entity.RoleAdmin}
}

func subAdminActor() usecase.Actor {
	return usecase.Actor{AccountID: uuid.New(), Role: entity.RoleSubAdmin}
}

func TestAccountAdminService_CreateAccount_ByAdmin(t *testing.T) {
	svc, mocks := newAdminService(t)
	actor := adminActor()

	mocks.hasher.On("Hash", "initial-pass").Return("hashed", nil)
	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.factory.On("AuthRepo").Return(mocks.authRepo)

	mocks.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "stall@campus.edu").
		Return(nil, repository.ErrAuthNotFound)
	mocks.accountRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Account")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(*entity.Account)
			account.ID = uuid.New()
		}).
		Return(nil)
	mocks.authRepo.On("CreateAuthentication", mock.Anything, mock.AnythingOfType("*entity.Authentication")).
		Return(nil)
	mocks.mailer.On("SendCredentials", mock.Anything, "stall@campus.edu", mock.Anything, mock.Anything, "initial-pass").
		Return(nil).Maybe()

	account, err := svc.CreateAccount(context.Background(), actor, &usecase.CreateAccountInput{
		Email:     "stall@campus.edu",
		Password:  "initial-pass",
		Role:      entity.RoleVendor,
		FirstName: "阿姨",
		LastName:  "陳",
		StoreName: "陳姨小吃",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.AccountStatusApproved, account.Status, "admin-created accounts are pre-approved")
	assert.Equal(t, &actor.AccountID, account.ApprovedBy)
	require.NotNil(t, account.VendorProfile)
	assert.Equal(t, "陳姨小吃", account.VendorProfile.StoreName)
	assert.False(t, account.VendorProfile.ImagesApproved, "storefront images still need their own review")
}

func TestAccountAdminService_CreateAccount_BySubAdminStartsPending(t *testing.T) {
	svc, mocks := newAdminService(t)

	mocks.hasher.On("Hash", "initial-pass").Return("hashed", nil)
	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.factory.On("AuthRepo").Return(mocks.authRepo)

	mocks.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "rider@campus.edu").
		Return(nil, repository.ErrAuthNotFound)
	mocks.accountRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Account")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(*entity.Account)
			account.ID = uuid.New()
		}).
		Return(nil)
	mocks.authRepo.On("CreateAuthentication", mock.Anything, mock.AnythingOfType("*entity.Authentication")).
		Return(nil)
	mocks.mailer.On("SendCredentials", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Maybe()

	account, err := svc.CreateAccount(context.Background(), subAdminActor(), &usecase.CreateAccountInput{
		Email:       "rider@campus.edu",
		Password:    "initial-pass",
		Role:        entity.RoleDelivery,
		FirstName:   "小李",
		LastName:    "李",
		VehicleType: "scooter",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.AccountStatusPending, account.Status, "sub-admin creations wait for the admin")
	assert.Nil(t, account.ApprovedBy)
	require.NotNil(t, account.DeliveryProfile)
	assert.Equal(t, "scooter", account.DeliveryProfile.VehicleType)
}

func TestAccountAdminService_CreateAccount_SubAdminCannotCreateAdministrative(t *testing.T) {
	svc, _ := newAdminService(t)

	for _, role := range []entity.Role{entity.RoleAdmin, entity.RoleSubAdmin} {
		_, err := svc.CreateAccount(context.Background(), subAdminActor(), &usecase.CreateAccountInput{
			Email:     "shadow@campus.edu",
			Password:  "initial-pass",
			Role:      role,
			FirstName: "影",
			LastName:  "王",
		})
		require.ErrorIs(t, err, domainerrors.ErrForbidden, "role %s", role)
	}
}

func TestAccountAdminService_CreateAccount_UnknownRole(t *testing.T) {
	svc, _ := newAdminService(t)

	_, err := svc.CreateAccount(context.Background(), adminActor(), &usecase.CreateAccountInput{
		Email:     "odd@campus.edu",
		Password:  "initial-pass",
		Role:      entity.Role("superuser"),
		FirstName: "奇",
		LastName:  "張",
	})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAccountAdminService_ListAccounts_SubAdminExcludesAdministrative(t *testing.T) {
	svc, mocks := newAdminService(t)
	actor := subAdminActor()

	mocks.accountRepo.On("List", mock.Anything, mock.MatchedBy(func(filter repository.AccountFilter) bool {
		return filter.ExcludeAdministrative
	})).Return([]*entity.Account{}, nil)

	_, err := svc.ListAccounts(context.Background(), actor, &usecase.ListAccountsInput{})
	require.NoError(t, err)
}

func TestAccountAdminService_GetAccount_SubAdminBlindToAdmins(t *testing.T) {
	svc, mocks := newAdminService(t)

	hidden := approvedAccount(entity.RoleAdmin)
	mocks.accountRepo.On("FindByID", mock.Anything, hidden.ID).Return(hidden, nil)

	// Not forbidden: the administrative tier must not leak its existence.
	_, err := svc.GetAccount(context.Background(), subAdminActor(), hidden.ID)
	require.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestAccountAdminService_ApproveAccount(t *testing.T) {
	svc, mocks := newAdminService(t)
	actor := adminActor()

	pending := approvedAccount(entity.RoleVendor)
	pending.Status = entity.AccountStatusPending

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.accountRepo.On("FindByID", mock.Anything, pending.ID).Return(pending, nil)
	mocks.accountRepo.On("Update", mock.Anything, mock.MatchedBy(func(account *entity.Account) bool {
		return account.Status == entity.AccountStatusApproved && account.ApprovedBy != nil && *account.ApprovedBy == actor.AccountID
	})).Return(nil)

	reviewed, err := svc.ApproveAccount(context.Background(), actor, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AccountStatusApproved, reviewed.Status)
}

func TestAccountAdminService_ApproveAccount_NotPending(t *testing.T) {
	svc, mocks := newAdminService(t)

	already := approvedAccount(entity.RoleVendor)

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.accountRepo.On("FindByID", mock.Anything, already.ID).Return(already, nil)

	_, err := svc.ApproveAccount(context.Background(), adminActor(), already.ID)
	require.ErrorIs(t, err, domainerrors.ErrInvalidStatusTransition)
}

func TestAccountAdminService_ReviewAccount_SubAdminForbidden(t *testing.T) {
	svc, _ := newAdminService(t)

	_, err := svc.ApproveAccount(context.Background(), subAdminActor(), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = svc.RejectAccount(context.Background(), subAdminActor(), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestAccountAdminService_SetAccountActive_DeactivationRevokesSessions(t *testing.T) {
	svc, mocks := newAdminService(t)

	account := approvedAccount(entity.RoleClient)

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.factory.On("RefreshTokenRepo").Return(mocks.refreshTokenRepo)
	mocks.accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	mocks.accountRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *entity.Account) bool {
		return !updated.IsActive
	})).Return(nil)
	mocks.refreshTokenRepo.On("DeleteByAccountID", mock.Anything, account.ID).Return(nil)

	updated, err := svc.SetAccountActive(context.Background(), adminActor(), account.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestAccountAdminService_SetAccountActive_ReactivationKeepsSessionsAlone(t *testing.T) {
	svc, mocks := newAdminService(t)

	account := approvedAccount(entity.RoleClient)
	account.IsActive = false

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	mocks.accountRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Account")).Return(nil)

	updated, err := svc.SetAccountActive(context.Background(), adminActor(), account.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsActive)
}

func TestAccountAdminService_DeleteAccount(t *testing.T) {
	svc, mocks := newAdminService(t)

	account := approvedAccount(entity.RoleVendor)

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.factory.On("RefreshTokenRepo").Return(mocks.refreshTokenRepo)
	mocks.factory.On("AuthRepo").Return(mocks.authRepo)
	mocks.accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	mocks.refreshTokenRepo.On("DeleteByAccountID", mock.Anything, account.ID).Return(nil)
	mocks.authRepo.On("DeleteByAccountID", mock.Anything, account.ID).Return(nil)
	mocks.accountRepo.On("Delete", mock.Anything, account.ID).Return(nil)

	require.NoError(t, svc.DeleteAccount(context.Background(), adminActor(), account.ID))
}

func TestAccountAdminService_DeleteAccount_SubAdminForbidden(t *testing.T) {
	svc, _ := newAdminService(t)

	err := svc.DeleteAccount(context.Background(), subAdminActor(), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestAccountAdminService_ReviewVendorImages(t *testing.T) {
	svc, mocks := newAdminService(t)

	vendor := approvedAccount(entity.RoleVendor)
	vendor.VendorProfile = &entity.VendorProfile{AccountID: vendor.ID, StoreName: "陳姨小吃"}

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.accountRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)
	mocks.accountRepo.On("Update", mock.Anything, mock.MatchedBy(func(account *entity.Account) bool {
		return account.VendorProfile != nil && account.VendorProfile.ImagesApproved
	})).Return(nil)

	reviewed, err := svc.ReviewVendorImages(context.Background(), subAdminActor(), vendor.ID, &usecase.ReviewVendorImagesInput{Approve: true})
	require.NoError(t, err)
	assert.True(t, reviewed.VendorProfile.ImagesApproved)
}

func TestAccountAdminService_ReviewVendorImages_NoVendorProfile(t *testing.T) {
	svc, mocks := newAdminService(t)

	notAVendor := approvedAccount(entity.RoleClient)

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.accountRepo.On("FindByID", mock.Anything, notAVendor.ID).Return(notAVendor, nil)

	_, err := svc.ReviewVendorImages(context.Background(), adminActor(), notAVendor.ID, &usecase.ReviewVendorImagesInput{Approve: true})
	require.ErrorIs(t, err, domainerrors.ErrProfileMissing)
}
