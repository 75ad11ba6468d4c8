// Command seed creates the root administrator account when it does not
// exist yet. It is safe to run repeatedly; an existing admin email is left
// untouched.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"campuseats/config"
	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/repository"
	"campuseats/internal/domain/service"
	"campuseats/internal/infra/auth"
	logs "campuseats/internal/infra/log"
	"campuseats/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const campusIDAttempts = 5

func main() {
	app := fx.New(
		fx.Provide(
			config.New,
			logs.New,
			postgres.New,
			postgres.NewTransactionManager,
			auth.NewBcryptHasher,
		),
		fx.Invoke(runSeed),
		fx.NopLogger,
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(startCtx); err != nil {
		slog.Error("Seed failed to start", slog.Any("error", err))
		os.Exit(1)
	}

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStop()

	if err := app.Stop(stopCtx); err != nil {
		slog.Error("Seed failed to stop cleanly", slog.Any("error", err))
		os.Exit(1)
	}
}

type seedParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
}

func runSeed(params seedParams) error {
	if params.Config.Seed == nil || params.Config.Seed.AdminEmail == "" {
		return errors.New("seed.adminEmail must be configured")
	}
	if params.Config.Seed.AdminPassword == "" {
		return errors.New("seed.adminPassword must be configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seedCfg := params.Config.Seed

	return params.TxManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		existing, err := accountRepo.FindByEmail(ctx, seedCfg.AdminEmail)
		if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to look up admin account")
		}
		if existing != nil {
			params.Logger.Info("Root admin already present, nothing to do",
				slog.String("email", seedCfg.AdminEmail))

			return nil
		}

		passwordHash, err := params.Hasher.Hash(seedCfg.AdminPassword)
		if err != nil {
			return errors.Wrap(err, "failed to hash admin password")
		}

		account := &entity.Account{
			Email:     seedCfg.AdminEmail,
			Role:      entity.RoleAdmin,
			FirstName: seedCfg.AdminName,
			IsActive:  true,
			Status:    entity.AccountStatusApproved,
		}

		if err := createWithCampusID(ctx, accountRepo, account); err != nil {
			return err
		}

		if err := repoFactory.AuthRepo().CreateAuthentication(ctx, &entity.Authentication{
			AccountID:      account.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: account.Email,
			PasswordHash:   passwordHash,
		}); err != nil {
			return errors.Wrap(err, "failed to create admin credential")
		}

		params.Logger.Info("Root admin created",
			slog.String("email", account.Email),
			slog.String("campusID", account.CampusID))

		return nil
	})
}

func createWithCampusID(ctx context.Context, accountRepo repository.AccountRepository, account *entity.Account) error {
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

		return errors.Wrap(err, "failed to create admin account")
	}

	return errors.New("exhausted campus id generation attempts")
}
