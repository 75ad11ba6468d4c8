// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"campuseats/config"
	deliverycontext "campuseats/internal/delivery/context"
	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/lifecycle"
	"campuseats/internal/domain/repository"
	"campuseats/internal/domain/service"
	"campuseats/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// campusIDAttempts bounds the regenerate-on-collision loop. The nine-digit
// space makes more than one retry already unlikely.
const campusIDAttempts = 5

// authService implements the AuthUsecase interface.
type authService struct {
	txManager        repository.TransactionManager
	accountRepo      repository.AccountRepository
	authRepo         repository.AuthRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	mailer           service.Mailer
	logger           *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	AccountRepo      repository.AccountRepository
	AuthRepo         repository.AuthRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Mailer           service.Mailer
	Config           *config.Config
	Logger           *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:        params.TxManager,
		accountRepo:      params.AccountRepo,
		authRepo:         params.AuthRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		mailer:           params.Mailer,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register handles client self-registration. Self-registered clients are
// approved and active immediately; vendors, delivery people and
// administrators are only ever created through the admin usecase.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting client registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	var registered *entity.Account
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		authRepo := repoFactory.AuthRepo()

		if _, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email); err == nil {
			return errors.Wrap(domainerrors.ErrAccountAlreadyExists, "email already registered")
		} else if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to find authentication")
		}

		newAccount := &entity.Account{
			Email:     input.Email,
			Role:      entity.RoleClient,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Phone:     input.Phone,
			IsActive:  true,
			Status:    entity.AccountStatusApproved,
		}

		if err := createAccountWithCampusID(ctx, accountRepo, newAccount); err != nil {
			return err
		}

		newAuth := &entity.Authentication{
			AccountID:      newAccount.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: input.Email,
			PasswordHash:   hashedPassword,
		}
		if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
			return errors.Wrap(err, "failed to create authentication during registration")
		}

		registered = newAccount

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute client registration transaction")
	}

	srv.sendWelcomeMail(ctx, registered)

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", registered.ID), slog.String("campusID", registered.CampusID))

	return &usecase.RegisterOutput{Account: registered}, nil
}

// createAccountWithCampusID assigns a fresh campus ID and persists the
// account, regenerating on the rare unique-constraint collision.
func createAccountWithCampusID(ctx context.Context, accountRepo repository.AccountRepository, account *entity.Account) error {
	for attempt := 0; attempt < campusIDAttempts; attempt++ {
		campusID, err := entity.NewCampusID(account.Role, time.Now())
		if err != nil {
			return errors.Wrap(err, "failed to generate campus id")
		}
		account.CampusID = campusID

		err = accountRepo.Create(ctx, account)
		if err == nil {
			return nil
		}
		if errors.Is(err, domainerrors.ErrCampusIDTaken) {
			continue
		}

		return errors.Wrap(err, "failed to create account")
	}

	return errors.Wrap(domainerrors.ErrAccountCreationFailed, "exhausted campus id generation attempts")
}

// sendWelcomeMail fires the welcome email without blocking or failing the
// registration. Mail problems are an operator concern, not the client's.
func (srv *authService) sendWelcomeMail(ctx context.Context, account *entity.Account) {
	logger := srv.log(ctx)

	go func() {
		mailCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		if err := srv.mailer.SendWelcome(mailCtx, account.Email, account.FullName(), account.CampusID); err != nil {
			logger.Warn("Failed to send welcome email", slog.Any("accountID", account.ID), slog.Any("error", err))
		}
	}()
}

// Login resolves the identifier, checks the credential and the account
// state, and issues a token pair. A campus ID identifier is resolved to the
// account's email before the credential check; an unknown campus ID fails
// with a distinct error so support can tell a typo from a bad password.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("identifier", input.Identifier))

	account, err := srv.resolveLoginAccount(ctx, input.Identifier)
	if err != nil {
		srv.log(ctx).Warn("Login identifier resolution failed", slog.String("identifier", input.Identifier), slog.Any("error", err))

		return nil, err
	}

	authRecord, err := srv.loadLoginAuth(ctx, account.Email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("identifier", input.Identifier), slog.Any("error", err))

		return nil, err
	}

	// Check password outside transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, authRecord.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("identifier", input.Identifier), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	if err := loginableState(account); err != nil {
		srv.log(ctx).Warn("Login rejected by account state", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, err
	}

	accessToken, refreshTokenString, err := srv.tokenService.GenerateTokens(account.ID, account.Role)
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	if err := srv.storeRefreshToken(ctx, account.ID, refreshTokenString); err != nil {
		srv.log(ctx).Error("Failed to store refresh token", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create refresh token during login")
	}

	srv.log(ctx).Debug("Logged in successfully", slog.Any("accountID", account.ID), slog.Any("role", account.Role))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		Account:      account,
	}, nil
}

// resolveLoginAccount maps the submitted identifier to an account. Campus
// IDs get a dedicated unknown-identifier error; emails fall through to the
// credential check so address probing learns nothing.
func (srv *authService) resolveLoginAccount(ctx context.Context, identifier string) (*entity.Account, error) {
	if entity.IsCampusID(identifier) {
		account, err := srv.accountRepo.FindByCampusID(ctx, identifier)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return nil, errors.Wrap(domainerrors.ErrUnknownIdentifier, "campus id not registered")
			}

			return nil, errors.Wrap(err, "failed to find account by campus id")
		}

		return account, nil
	}

	account, err := srv.accountRepo.FindByEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return account, nil
}

func (srv *authService) loadLoginAuth(ctx context.Context, email string) (*entity.Authentication, error) {
	authRecord, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	return authRecord, nil
}

// loginableState rejects sign-in for disabled, pending or rejected accounts,
// each with its own error so the UI can explain what to do next.
func loginableState(account *entity.Account) error {
	if !account.IsActive {
		return errors.Wrap(domainerrors.ErrAccountDisabled, "account deactivated")
	}

	switch account.Status {
	case entity.AccountStatusPending:
		return errors.Wrap(domainerrors.ErrAccountPending, "account awaiting approval")
	case entity.AccountStatusRejected:
		return errors.Wrap(domainerrors.ErrAccountRejected, "account rejected")
	case entity.AccountStatusApproved:
		return nil
	default:
		return errors.Wrapf(domainerrors.ErrInternalError, "account in unknown status %q", account.Status)
	}
}

func (srv *authService) storeRefreshToken(ctx context.Context, accountID uuid.UUID, refreshTokenString string) error {
	newRefreshToken := &entity.RefreshToken{
		AccountID: accountID,
		TokenHash: srv.tokenService.HashToken(refreshTokenString),
		ExpiresAt: time.Now().Add(srv.tokenService.RefreshTokenDuration()),
	}

	if err := srv.refreshTokenRepo.Create(ctx, newRefreshToken); err != nil {
		return errors.Wrap(err, "failed to store refresh token")
	}

	return nil
}

// RefreshToken issues a new access token against a valid, stored refresh
// token. The refresh token itself is left unchanged.
func (srv *authService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	srv.log(ctx).Info("Attempting to refresh access token")

	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "invalid refresh token")
	}

	var newAccessToken string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		refreshRepo := repoFactory.RefreshTokenRepo()

		tokenHash := srv.tokenService.HashToken(input.RefreshToken)
		if _, err := refreshRepo.FindByHash(ctx, tokenHash); err != nil {
			return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token not found or expired")
		}

		account, err := accountRepo.FindByID(ctx, claims.AccountID)
		if err != nil {
			return errors.Wrap(err, "failed to find account")
		}
		if err := loginableState(account); err != nil {
			return err
		}

		newAccessToken, _, err = srv.tokenService.GenerateTokens(account.ID, account.Role)
		if err != nil {
			return errors.Wrap(err, "failed to generate new access token")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute refresh token transaction", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute refresh token transaction")
	}

	return &usecase.RefreshTokenOutput{
		AccessToken:  newAccessToken,
		RefreshToken: input.RefreshToken,
	}, nil
}

// Logout ends a single session by deleting its refresh token.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	srv.log(ctx).Info("Attempting to log out")

	if _, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken); err != nil {
		// Even if the token is invalid, we can proceed to delete it from the database.
		srv.log(ctx).Warn("Logout with invalid token", slog.Any("error", err))
	}

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)
	if err := srv.refreshTokenRepo.DeleteByHash(ctx, tokenHash); err != nil {
		srv.log(ctx).Error("Failed to delete refresh token", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete refresh token")
	}
	srv.log(ctx).Info("Successfully logged out")

	return nil
}

// ChangePassword verifies the current password, stores the new hash and
// revokes every other session of the account.
func (srv *authService) ChangePassword(ctx context.Context, accountID uuid.UUID, input *usecase.ChangePasswordInput) error {
	srv.log(ctx).Info("Attempting password change", slog.Any("accountID", accountID))

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash new password", slog.Any("accountID", accountID), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash new password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		authRepo := repoFactory.AuthRepo()
		refreshRepo := repoFactory.RefreshTokenRepo()

		account, err := accountRepo.FindByID(ctx, accountID)
		if err != nil {
			return errors.Wrap(err, "failed to find account")
		}

		authRecord, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, account.Email)
		if err != nil {
			return errors.Wrap(err, "failed to find authentication")
		}

		if !srv.hasher.Check(input.CurrentPassword, authRecord.PasswordHash) {
			return errors.Wrap(domainerrors.ErrInvalidCredentials, "current password mismatch")
		}

		if err := authRepo.UpdatePasswordHash(ctx, accountID, newHash); err != nil {
			return errors.Wrap(err, "failed to update password hash")
		}

		// Existing sessions die with the old password.
		if err := refreshRepo.DeleteByAccountID(ctx, accountID); err != nil {
			return errors.Wrap(err, "failed to revoke sessions after password change")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute password change transaction", slog.Any("accountID", accountID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute password change transaction")
	}

	srv.log(ctx).Info("Password changed", slog.Any("accountID", accountID))

	return nil
}
