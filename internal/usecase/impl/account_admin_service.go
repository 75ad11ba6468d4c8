package impl

import (
	"context"
	"log/slog"

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

// accountAdminService implements the AccountAdminUsecase interface.
type accountAdminService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	mailer      service.Mailer
	logger      *slog.Logger
}

// AccountAdminServiceParams holds dependencies for accountAdminService, injected by Fx.
type AccountAdminServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Mailer      service.Mailer
	Logger      *slog.Logger
}

// NewAccountAdminService is the constructor for accountAdminService.
func NewAccountAdminService(params AccountAdminServiceParams) usecase.AccountAdminUsecase {
	return &accountAdminService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		mailer:      params.Mailer,
		logger:      params.Logger,
	}
}

func (srv *accountAdminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateAccount provisions an account of any role on behalf of an
// administrator. Sub-admins may only create vendor, delivery and client
// accounts, and those start pending until the top-level admin reviews them.
func (srv *accountAdminService) CreateAccount(ctx context.Context, actor usecase.Actor, input *usecase.CreateAccountInput) (*entity.Account, error) {
	srv.log(ctx).Info("Creating account", slog.Any("actorID", actor.AccountID), slog.Any("role", input.Role), slog.String("email", input.Email))

	if !input.Role.IsValid() {
		return nil, errors.Wrapf(domainerrors.ErrValidationFailed, "unknown role %q", input.Role)
	}
	if actor.Role == entity.RoleSubAdmin && input.Role.IsAdministrative() {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "sub-admin may not create administrative accounts")
	}
	if actor.Role != entity.RoleAdmin && actor.Role != entity.RoleSubAdmin {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only administrators create accounts")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password for new account", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password")
	}

	status := entity.AccountStatusApproved
	var approvedBy *uuid.UUID
	if actor.Role == entity.RoleSubAdmin {
		status = entity.AccountStatusPending
	} else {
		approvedBy = &actor.AccountID
	}

	newAccount := &entity.Account{
		Email:      input.Email,
		Role:       input.Role,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Phone:      input.Phone,
		IsActive:   true,
		Status:     status,
		CreatedBy:  &actor.AccountID,
		ApprovedBy: approvedBy,
	}
	attachRoleProfile(newAccount, input)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		authRepo := repoFactory.AuthRepo()

		if _, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email); err == nil {
			return errors.Wrap(domainerrors.ErrAccountAlreadyExists, "email already registered")
		} else if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to find authentication")
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

		return errors.Wrap(authRepo.CreateAuthentication(ctx, newAuth), "failed to create authentication")
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute account creation transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute account creation transaction")
	}

	srv.sendCredentialsMail(ctx, newAccount, input.Password)

	srv.log(ctx).Info("Account created", slog.Any("accountID", newAccount.ID), slog.String("campusID", newAccount.CampusID), slog.Any("status", newAccount.Status))

	return newAccount, nil
}

// attachRoleProfile hangs the role-specific profile off the account.
func attachRoleProfile(account *entity.Account, input *usecase.CreateAccountInput) {
	switch input.Role {
	case entity.RoleVendor:
		account.VendorProfile = &entity.VendorProfile{
			StoreName:        input.StoreName,
			StoreDescription: input.StoreDescription,
		}
	case entity.RoleDelivery:
		account.DeliveryProfile = &entity.DeliveryProfile{
			VehicleType: input.VehicleType,
		}
	}
}

// sendCredentialsMail mails the new account its campus ID and initial
// password, without blocking or failing the creation.
func (srv *accountAdminService) sendCredentialsMail(ctx context.Context, account *entity.Account, password string) {
	logger := srv.log(ctx)

	go func() {
		mailCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		if err := srv.mailer.SendCredentials(mailCtx, account.Email, account.FullName(), account.CampusID, password); err != nil {
			logger.Warn("Failed to send credentials email", slog.Any("accountID", account.ID), slog.Any("error", err))
		}
	}()
}

// ListAccounts returns the accounts the actor may see. Sub-admins get the
// administrative tier filtered out at query time.
func (srv *accountAdminService) ListAccounts(ctx context.Context, actor usecase.Actor, input *usecase.ListAccountsInput) ([]*entity.Account, error) {
	filter := repository.AccountFilter{
		Roles:                 input.Roles,
		Statuses:              input.Statuses,
		ExcludeAdministrative: actor.Role == entity.RoleSubAdmin,
	}

	accounts, err := srv.accountRepo.List(ctx, filter)
	if err != nil {
		srv.log(ctx).Error("Failed to list accounts", slog.Any("actorID", actor.AccountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list accounts")
	}

	return accounts, nil
}

// GetAccount returns one account if the actor may see it. A sub-admin asking
// for an administrative account gets not-found, not forbidden, so the tier's
// existence leaks nothing.
func (srv *accountAdminService) GetAccount(ctx context.Context, actor usecase.Actor, accountID uuid.UUID) (*entity.Account, error) {
	account, err := srv.findVisible(ctx, srv.accountRepo, actor, accountID)
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (srv *accountAdminService) findVisible(ctx context.Context, accountRepo repository.AccountRepository, actor usecase.Actor, accountID uuid.UUID) (*entity.Account, error) {
	account, err := accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "account not found")
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	if !account.VisibleTo(actor.Role) {
		return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "account not visible to actor")
	}

	return account, nil
}

// UpdateAccount changes the admin-editable fields of a visible account.
func (srv *accountAdminService) UpdateAccount(ctx context.Context, actor usecase.Actor, accountID uuid.UUID, input *usecase.UpdateAccountInput) (*entity.Account, error) {
	var updated *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := srv.findVisible(ctx, accountRepo, actor, accountID)
		if err != nil {
			return err
		}

		account.FirstName = input.FirstName
		account.LastName = input.LastName
		account.Phone = input.Phone

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to update account")
		}
		updated = account

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute account update transaction", slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute account update transaction")
	}

	return updated, nil
}

// ApproveAccount moves a pending account to approved. Only the top-level
// admin reviews, and only pending accounts are reviewable; approving an
// already-approved or rejected account is an explicit error, not a no-op.
func (srv *accountAdminService) ApproveAccount(ctx context.Context, actor usecase.Actor, accountID uuid.UUID) (*entity.Account, error) {
	return srv.reviewAccount(ctx, actor, accountID, entity.AccountStatusApproved)
}

// RejectAccount moves a pending account to rejected.
func (srv *accountAdminService) RejectAccount(ctx context.Context, actor usecase.Actor, accountID uuid.UUID) (*entity.Account, error) {
	return srv.reviewAccount(ctx, actor, accountID, entity.AccountStatusRejected)
}

func (srv *accountAdminService) reviewAccount(ctx context.Context, actor usecase.Actor, accountID uuid.UUID, decision entity.AccountStatus) (*entity.Account, error) {
	srv.log(ctx).Info("Reviewing account", slog.Any("actorID", actor.AccountID), slog.Any("accountID", accountID), slog.Any("decision", decision))

	if actor.Role != entity.RoleAdmin {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only the top-level admin reviews accounts")
	}

	var reviewed *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := srv.findVisible(ctx, accountRepo, actor, accountID)
		if err != nil {
			return err
		}

		if !account.Status.CanTransitionTo(decision) {
			return errors.Wrapf(domainerrors.ErrInvalidStatusTransition, "cannot move account from %s to %s", account.Status, decision)
		}

		account.Status = decision
		account.ApprovedBy = &actor.AccountID

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to persist review decision")
		}
		reviewed = account

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Account review failed", slog.Any("accountID", accountID), slog.Any("decision", decision), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute account review transaction")
	}

	return reviewed, nil
}

// SetAccountActive toggles the activation flag. Deactivation also revokes
// every session, so the account is out immediately, not just on the next
// profile load.
func (srv *accountAdminService) SetAccountActive(ctx context.Context, actor usecase.Actor, accountID uuid.UUID, active bool) (*entity.Account, error) {
	srv.log(ctx).Info("Setting account active flag", slog.Any("actorID", actor.AccountID), slog.Any("accountID", accountID), slog.Bool("active", active))

	if actor.Role != entity.RoleAdmin {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only the top-level admin toggles activation")
	}

	var updated *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := srv.findVisible(ctx, accountRepo, actor, accountID)
		if err != nil {
			return err
		}

		account.IsActive = active
		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to update account active flag")
		}

		if !active {
			if err := repoFactory.RefreshTokenRepo().DeleteByAccountID(ctx, accountID); err != nil {
				return errors.Wrap(err, "failed to revoke sessions of deactivated account")
			}
		}
		updated = account

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute activation transaction", slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute activation transaction")
	}

	return updated, nil
}

// DeleteAccount removes an account, its credentials and its sessions. The
// store cascades dependent application records.
func (srv *accountAdminService) DeleteAccount(ctx context.Context, actor usecase.Actor, accountID uuid.UUID) error {
	srv.log(ctx).Info("Deleting account", slog.Any("actorID", actor.AccountID), slog.Any("accountID", accountID))

	if actor.Role != entity.RoleAdmin {
		return errors.Wrap(domainerrors.ErrForbidden, "only the top-level admin deletes accounts")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		if _, err := srv.findVisible(ctx, accountRepo, actor, accountID); err != nil {
			return err
		}

		if err := repoFactory.RefreshTokenRepo().DeleteByAccountID(ctx, accountID); err != nil {
			return errors.Wrap(err, "failed to delete account sessions")
		}
		if err := repoFactory.AuthRepo().DeleteByAccountID(ctx, accountID); err != nil {
			return errors.Wrap(err, "failed to delete account credentials")
		}

		return errors.Wrap(accountRepo.Delete(ctx, accountID), "failed to delete account")
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute account deletion transaction", slog.Any("accountID", accountID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute account deletion transaction")
	}

	srv.log(ctx).Info("Account deleted", slog.Any("accountID", accountID))

	return nil
}

// ReviewVendorImages records the admin decision on a vendor's uploaded
// storefront images. Approval is what makes the vendor publicly listable.
func (srv *accountAdminService) ReviewVendorImages(ctx context.Context, actor usecase.Actor, vendorID uuid.UUID, input *usecase.ReviewVendorImagesInput) (*entity.Account, error) {
	srv.log(ctx).Info("Reviewing vendor images", slog.Any("actorID", actor.AccountID), slog.Any("vendorID", vendorID), slog.Bool("approve", input.Approve))

	if !actor.Role.IsAdministrative() {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only administrators review vendor images")
	}

	var reviewed *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := srv.findVisible(ctx, accountRepo, actor, vendorID)
		if err != nil {
			return err
		}
		if account.VendorProfile == nil {
			return errors.Wrap(domainerrors.ErrProfileMissing, "account has no vendor profile")
		}

		account.VendorProfile.ImagesApproved = input.Approve
		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to persist image review")
		}
		reviewed = account

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute image review transaction", slog.Any("vendorID", vendorID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute image review transaction")
	}

	return reviewed, nil
}
