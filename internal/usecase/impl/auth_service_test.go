package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/repository"
	"campuseats/internal/domain/service"
	mockrepo "campuseats/internal/mocks/repository"
	mockservice "campuseats/internal/mocks/service"
	"campuseats/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type authServiceMocks struct {
	txManager        *mockrepo.MockTransactionManager
	factory          *mockrepo.MockRepositoryFactory
	accountRepo      *mockrepo.MockAccountRepository
	authRepo         *mockrepo.MockAuthRepository
	refreshTokenRepo *mockrepo.MockRefreshTokenRepository
	hasher           *mockservice.MockPasswordHasher
	tokenService     *mockservice.MockTokenService
	mailer           *mockservice.MockMailer
}

func newAuthService(t *testing.T) (usecase.AuthUsecase, *authServiceMocks) {
	t.Helper()

	mocks := &authServiceMocks{
		txManager:        mockrepo.NewMockTransactionManager(t),
		factory:          mockrepo.NewMockRepositoryFactory(t),
		accountRepo:      mockrepo.NewMockAccountRepository(t),
		authRepo:         mockrepo.NewMockAuthRepository(t),
		refreshTokenRepo: mockrepo.NewMockRefreshTokenRepository(t),
		hasher:           mockservice.NewMockPasswordHasher(t),
		tokenService:     mockservice.NewMockTokenService(t),
		mailer:           mockservice.NewMockMailer(t),
	}

	svc := NewAuthService(AuthServiceParams{
		TxManager:        mocks.txManager,
		AccountRepo:      mocks.accountRepo,
		AuthRepo:         mocks.authRepo,
		RefreshTokenRepo: mocks.refreshTokenRepo,
		Hasher:           mocks.hasher,
		TokenService:     mocks.tokenService,
		Mailer:           mocks.mailer,
		Logger:           discardLogger(),
	})

	return svc, mocks
}

func approvedAccount(role entity.Role) *entity.Account {
	return &entity.Account{
		ID:       uuid.New(),
		CampusID: "CLI-123456789",
		Email:    "ming.wang@campus.edu",
		Role:     role,
		IsActive: true,
		Status:   entity.AccountStatusApproved,
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, mocks := newAuthService(t)

	mocks.hasher.On("Hash", "s3cret-pass").Return("hashed", nil)
	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.factory.On("AuthRepo").Return(mocks.authRepo)

	mocks.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "ming.wang@campus.edu").
		Return(nil, repository.ErrAuthNotFound)
	mocks.accountRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Account")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(*entity.Account)
			account.ID = uuid.New()
		}).
		Return(nil)
	mocks.authRepo.On("CreateAuthentication", mock.Anything, mock.AnythingOfType("*entity.Authentication")).
		Return(nil)
	// The welcome mail is fired on a detached goroutine, so it may or may
	// not land before the test finishes.
	mocks.mailer.On("SendWelcome", mock.Anything, "ming.wang@campus.edu", mock.Anything, mock.Anything).
		Return(nil).Maybe()

	output, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Email:     "ming.wang@campus.edu",
		Password:  "s3cret-pass",
		FirstName: "小明",
		LastName:  "王",
	})
	require.NoError(t, err)

	account := output.Account
	assert.Equal(t, entity.RoleClient, account.Role)
	assert.Equal(t, entity.AccountStatusApproved, account.Status, "self-registered clients skip the approval queue")
	assert.True(t, account.IsActive)
	assert.True(t, entity.IsCampusID(account.CampusID), "got %q", account.CampusID)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	svc, mocks := newAuthService(t)

	mocks.hasher.On("Hash", "s3cret-pass").Return("hashed", nil)
	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.factory.On("AuthRepo").Return(mocks.authRepo)

	mocks.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "taken@campus.edu").
		Return(&entity.Authentication{}, nil)

	_, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Email:     "taken@campus.edu",
		Password:  "s3cret-pass",
		FirstName: "小明",
		LastName:  "王",
	})
	require.ErrorIs(t, err, domainerrors.ErrAccountAlreadyExists)
}

func TestAuthService_Register_CampusIDCollisionRetries(t *testing.T) {
	svc, mocks := newAuthService(t)

	mocks.hasher.On("Hash", "s3cret-pass").Return("hashed", nil)
	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.factory.On("AuthRepo").Return(mocks.authRepo)

	mocks.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "ming.wang@campus.edu").
		Return(nil, repository.ErrAuthNotFound)
	// First insert collides on the campus id, the regenerated one lands.
	mocks.accountRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Account")).
		Return(domainerrors.ErrCampusIDTaken).Once()
	mocks.accountRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Account")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(*entity.Account)
			account.ID = uuid.New()
		}).
		Return(nil).Once()
	mocks.authRepo.On("CreateAuthentication", mock.Anything, mock.AnythingOfType("*entity.Authentication")).
		Return(nil)
	mocks.mailer.On("SendWelcome", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Maybe()

	output, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Email:     "ming.wang@campus.edu",
		Password:  "s3cret-pass",
		FirstName: "小明",
		LastName:  "王",
	})
	require.NoError(t, err)
	assert.True(t, entity.IsCampusID(output.Account.CampusID))
}

func TestAuthService_Login_WithEmail(t *testing.T) {
	svc, mocks := newAuthService(t)

	account := approvedAccount(entity.RoleClient)
	mocks.accountRepo.On("FindByEmail", mock.Anything, account.Email).Return(account, nil)
	mocks.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, account.Email).
		Return(&entity.Authentication{AccountID: account.ID, PasswordHash: "stored-hash"}, nil)
	mocks.hasher.On("Check", "s3cret-pass", "stored-hash").Return(true)
	mocks.tokenService.On("GenerateTokens", account.ID, account.Role).Return("access-token", "refresh-token", nil)
	mocks.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	mocks.tokenService.On("RefreshTokenDuration").Return(7 * 24 * time.Hour)
	mocks.refreshTokenRepo.On("Create", mock.Anything, mock.MatchedBy(func(token *entity.RefreshToken) bool {
		return token.AccountID == account.ID && token.TokenHash == "refresh-hash"
	})).Return(nil)

	output, err := svc.Login(context.Background(), &usecase.LoginInput{
		Identifier: account.Email,
		Password:   "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
	assert.Equal(t, account.ID, output.Account.ID)
}

func TestAuthService_Login_WithCampusID(t *testing.T) {
	svc, mocks := newAuthService(t)

	account := approvedAccount(entity.RoleClient)
	mocks.accountRepo.On("FindByCampusID", mock.Anything, account.CampusID).Return(account, nil)
	mocks.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, account.Email).
		Return(&entity.Authentication{AccountID: account.ID, PasswordHash: "stored-hash"}, nil)
	mocks.hasher.On("Check", "s3cret-pass", "stored-hash").Return(true)
	mocks.tokenService.On("GenerateTokens", account.ID, account.Role).Return("access-token", "refresh-token", nil)
	mocks.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	mocks.tokenService.On("RefreshTokenDuration").Return(7 * 24 * time.Hour)
	mocks.refreshTokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.RefreshToken")).Return(nil)

	output, err := svc.Login(context.Background(), &usecase.LoginInput{
		Identifier: account.CampusID,
		Password:   "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, account.ID, output.Account.ID)
}

func TestAuthService_Login_UnknownCampusID(t *testing.T) {
	svc, mocks := newAuthService(t)

	mocks.accountRepo.On("FindByCampusID", mock.Anything, "CLI-999999999").
		Return(nil, repository.ErrAccountNotFound)

	_, err := svc.Login(context.Background(), &usecase.LoginInput{
		Identifier: "CLI-999999999",
		Password:   "whatever",
	})
	require.ErrorIs(t, err, domainerrors.ErrUnknownIdentifier)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, mocks := newAuthService(t)

	// Unknown emails must be indistinguishable from a wrong password.
	mocks.accountRepo.On("FindByEmail", mock.Anything, "ghost@campus.edu").
		Return(nil, repository.ErrAccountNotFound)

	_, err := svc.Login(context.Background(), &usecase.LoginInput{
		Identifier: "ghost@campus.edu",
		Password:   "whatever",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, mocks := newAuthService(t)

	account := approvedAccount(entity.RoleClient)
	mocks.accountRepo.On("FindByEmail", mock.Anything, account.Email).Return(account, nil)
	mocks.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, account.Email).
		Return(&entity.Authentication{AccountID: account.ID, PasswordHash: "stored-hash"}, nil)
	mocks.hasher.On("Check", "wrong-pass", "stored-hash").Return(false)

	_, err := svc.Login(context.Background(), &usecase.LoginInput{
		Identifier: account.Email,
		Password:   "wrong-pass",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_BlockedStates(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(account *entity.Account)
		wantErr error
	}{
		{
			name:    "deactivated",
			mutate:  func(account *entity.Account) { account.IsActive = false },
			wantErr: domainerrors.ErrAccountDisabled,
		},
		{
			name:    "pending approval",
			mutate:  func(account *entity.Account) { account.Status = entity.AccountStatusPending },
			wantErr: domainerrors.ErrAccountPending,
		},
		{
			name:    "rejected",
			mutate:  func(account *entity.Account) { account.Status = entity.AccountStatusRejected },
			wantErr: domainerrors.ErrAccountRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mocks := newAuthService(t)

			account := approvedAccount(entity.RoleVendor)
			tt.mutate(account)

			mocks.accountRepo.On("FindByEmail", mock.Anything, account.Email).Return(account, nil)
			mocks.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, account.Email).
				Return(&entity.Authentication{AccountID: account.ID, PasswordHash: "stored-hash"}, nil)
			mocks.hasher.On("Check", "s3cret-pass", "stored-hash").Return(true)

			_, err := svc.Login(context.Background(), &usecase.LoginInput{
				Identifier: account.Email,
				Password:   "s3cret-pass",
			})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc, mocks := newAuthService(t)

	account := approvedAccount(entity.RoleClient)
	mocks.tokenService.On("ValidateRefreshToken", "refresh-token").
		Return(&service.TokenClaims{AccountID: account.ID, Role: account.Role, TokenType: "refresh"}, nil)

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.factory.On("RefreshTokenRepo").Return(mocks.refreshTokenRepo)

	mocks.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	mocks.refreshTokenRepo.On("FindByHash", mock.Anything, "refresh-hash").
		Return(&entity.RefreshToken{AccountID: account.ID, TokenHash: "refresh-hash"}, nil)
	mocks.accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	mocks.tokenService.On("GenerateTokens", account.ID, account.Role).Return("new-access", "unused-refresh", nil)

	output, err := svc.RefreshToken(context.Background(), &usecase.RefreshTokenInput{RefreshToken: "refresh-token"})
	require.NoError(t, err)

	assert.Equal(t, "new-access", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken, "the refresh token itself is not rotated")
}

func TestAuthService_RefreshToken_RevokedSession(t *testing.T) {
	svc, mocks := newAuthService(t)

	account := approvedAccount(entity.RoleClient)
	mocks.tokenService.On("ValidateRefreshToken", "refresh-token").
		Return(&service.TokenClaims{AccountID: account.ID, Role: account.Role, TokenType: "refresh"}, nil)

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.factory.On("RefreshTokenRepo").Return(mocks.refreshTokenRepo)

	mocks.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	mocks.refreshTokenRepo.On("FindByHash", mock.Anything, "refresh-hash").
		Return(nil, repository.ErrRefreshTokenNotFound)

	_, err := svc.RefreshToken(context.Background(), &usecase.RefreshTokenInput{RefreshToken: "refresh-token"})
	require.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Logout_InvalidTokenStillDeletes(t *testing.T) {
	svc, mocks := newAuthService(t)

	mocks.tokenService.On("ValidateRefreshToken", "garbage").
		Return(nil, assert.AnError)
	mocks.tokenService.On("HashToken", "garbage").Return("garbage-hash")
	mocks.refreshTokenRepo.On("DeleteByHash", mock.Anything, "garbage-hash").Return(nil)

	err := svc.Logout(context.Background(), &usecase.LogoutInput{RefreshToken: "garbage"})
	require.NoError(t, err)
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, mocks := newAuthService(t)

	account := approvedAccount(entity.RoleClient)
	mocks.hasher.On("Hash", "new-password1").Return("new-hash", nil)

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.factory.On("AuthRepo").Return(mocks.authRepo)
	mocks.factory.On("RefreshTokenRepo").Return(mocks.refreshTokenRepo)

	mocks.accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	mocks.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, account.Email).
		Return(&entity.Authentication{AccountID: account.ID, PasswordHash: "old-hash"}, nil)
	mocks.hasher.On("Check", "old-password", "old-hash").Return(true)
	mocks.authRepo.On("UpdatePasswordHash", mock.Anything, account.ID, "new-hash").Return(nil)
	// Every session dies with the old password.
	mocks.refreshTokenRepo.On("DeleteByAccountID", mock.Anything, account.ID).Return(nil)

	err := svc.ChangePassword(context.Background(), account.ID, &usecase.ChangePasswordInput{
		CurrentPassword: "old-password",
		NewPassword:     "new-password1",
	})
	require.NoError(t, err)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	svc, mocks := newAuthService(t)

	account := approvedAccount(entity.RoleClient)
	mocks.hasher.On("Hash", "new-password1").Return("new-hash", nil)

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.factory.On("AuthRepo").Return(mocks.authRepo)
	mocks.factory.On("RefreshTokenRepo").Return(mocks.refreshTokenRepo)

	mocks.accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	mocks.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, account.Email).
		Return(&entity.Authentication{AccountID: account.ID, PasswordHash: "old-hash"}, nil)
	mocks.hasher.On("Check", "not-the-password", "old-hash").Return(false)

	err := svc.ChangePassword(context.Background(), account.ID, &usecase.ChangePasswordInput{
		CurrentPassword: "not-the-password",
		NewPassword:     "new-password1",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}
