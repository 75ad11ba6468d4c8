package impl

import (
	"context"
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

// courierService implements the CourierUsecase interface.
type courierService struct {
	txManager      repository.TransactionManager
	accountRepo    repository.AccountRepository
	orderRepo      repository.OrderRepository
	eventPublisher service.EventPublisher
	logger         *slog.Logger
}

// CourierServiceParams holds dependencies for courierService, injected by Fx.
type CourierServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	AccountRepo    repository.AccountRepository
	OrderRepo      repository.OrderRepository
	EventPublisher service.EventPublisher
	Logger         *slog.Logger
}

// NewCourierService is the constructor for courierService.
func NewCourierService(params CourierServiceParams) usecase.CourierUsecase {
	return &courierService{
		txManager:      params.TxManager,
		accountRepo:    params.AccountRepo,
		orderRepo:      params.OrderRepo,
		eventPublisher: params.EventPublisher,
		logger:         params.Logger,
	}
}

func (srv *courierService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListReadyOrders returns the orders currently up for grabs. Only couriers
// who are on shift see the board.
func (srv *courierService) ListReadyOrders(ctx context.Context, deliveryID uuid.UUID) ([]*entity.Order, error) {
	if _, err := srv.requireAvailableCourier(ctx, deliveryID); err != nil {
		return nil, err
	}

	orders, err := srv.orderRepo.ListUnclaimedReady(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list ready orders", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list ready orders")
	}

	return orders, nil
}

// ClaimOrder races for a ready order. The assignment is a single conditional
// update in the store, so when several couriers tap the same order at once,
// exactly one gets it; everyone else receives a conflict to pick another.
func (srv *courierService) ClaimOrder(ctx context.Context, deliveryID, orderID uuid.UUID) (*entity.Order, error) {
	srv.log(ctx).Info("Claiming order", slog.Any("deliveryID", deliveryID), slog.Any("orderID", orderID))

	if _, err := srv.requireAvailableCourier(ctx, deliveryID); err != nil {
		return nil, err
	}

	claimed, err := srv.orderRepo.Claim(ctx, orderID, deliveryID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
		}
		srv.log(ctx).Error("Failed to claim order", slog.Any("orderID", orderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to claim order")
	}
	if !claimed {
		srv.log(ctx).Info("Lost claim race", slog.Any("deliveryID", deliveryID), slog.Any("orderID", orderID))

		return nil, errors.Wrap(domainerrors.ErrOrderAlreadyClaimed, "order no longer claimable")
	}

	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload claimed order")
	}

	publishOrderStatus(ctx, srv.log(ctx), srv.eventPublisher, order, entity.OrderStatusReady, entity.OrderStatusDelivering)

	srv.log(ctx).Info("Order claimed", slog.Any("deliveryID", deliveryID), slog.Any("orderID", orderID))

	return order, nil
}

// CompleteOrder marks the courier's own delivering order as delivered.
func (srv *courierService) CompleteOrder(ctx context.Context, deliveryID, orderID uuid.UUID) (*entity.Order, error) {
	srv.log(ctx).Info("Completing order", slog.Any("deliveryID", deliveryID), slog.Any("orderID", orderID))

	var completed *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
			}

			return errors.Wrap(err, "failed to find order")
		}
		if !order.AssignedTo(deliveryID) {
			return errors.Wrap(domainerrors.ErrForbidden, "order assigned to another delivery person")
		}
		if !order.Status.CanTransitionTo(entity.OrderStatusDelivered) {
			return errors.Wrapf(domainerrors.ErrInvalidOrderTransition, "cannot deliver order in %s", order.Status)
		}

		changed, err := orderRepo.UpdateStatus(ctx, orderID, order.Status, entity.OrderStatusDelivered)
		if err != nil {
			return errors.Wrap(err, "failed to update order status")
		}
		if !changed {
			return errors.Wrapf(domainerrors.ErrInvalidOrderTransition, "order no longer in %s", order.Status)
		}

		order.Status = entity.OrderStatusDelivered
		completed = order

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Order completion failed", slog.Any("orderID", orderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute order completion transaction")
	}

	publishOrderStatus(ctx, srv.log(ctx), srv.eventPublisher, completed, entity.OrderStatusDelivering, entity.OrderStatusDelivered)

	return completed, nil
}

// ListMyDeliveries returns the courier's own claimed orders, past and present.
func (srv *courierService) ListMyDeliveries(ctx context.Context, deliveryID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByDelivery(ctx, deliveryID)
	if err != nil {
		srv.log(ctx).Error("Failed to list deliveries", slog.Any("deliveryID", deliveryID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list deliveries")
	}

	return orders, nil
}

// SetAvailability toggles the courier's availability. Going unavailable also
// drops the shared coordinates; an off-shift courier should not stay on the
// dispatch map.
func (srv *courierService) SetAvailability(ctx context.Context, deliveryID uuid.UUID, input *usecase.SetAvailabilityInput) error {
	account, err := srv.requireCourier(ctx, deliveryID)
	if err != nil {
		return err
	}

	account.DeliveryProfile.IsAvailable = input.Available
	if !input.Available {
		account.DeliveryProfile.ClearLocation()
	}

	if err := srv.accountRepo.Update(ctx, account); err != nil {
		srv.log(ctx).Error("Failed to update availability", slog.Any("deliveryID", deliveryID), slog.Any("error", err))

		return errors.Wrap(err, "failed to update availability")
	}

	srv.log(ctx).Info("Availability updated", slog.Any("deliveryID", deliveryID), slog.Bool("available", input.Available))

	return nil
}

// ShareLocation records the courier's position and fans it out to dispatch
// views. The fan-out is best-effort; the stored coordinates are the source
// of truth.
func (srv *courierService) ShareLocation(ctx context.Context, deliveryID uuid.UUID, input *usecase.ShareLocationInput) error {
	account, err := srv.requireCourier(ctx, deliveryID)
	if err != nil {
		return err
	}

	now := time.Now()
	account.DeliveryProfile.SetLocation(input.Latitude, input.Longitude, now)

	if err := srv.accountRepo.Update(ctx, account); err != nil {
		srv.log(ctx).Error("Failed to store courier location", slog.Any("deliveryID", deliveryID), slog.Any("error", err))

		return errors.Wrap(err, "failed to store courier location")
	}

	publishCourierLocation(ctx, srv.log(ctx), srv.eventPublisher, deliveryID.String(), input.Latitude, input.Longitude, now)

	return nil
}

// requireAvailableCourier additionally demands the courier is on shift.
// SetAvailability stays on requireCourier so an off-shift courier can still
// come back online.
func (srv *courierService) requireAvailableCourier(ctx context.Context, deliveryID uuid.UUID) (*entity.Account, error) {
	account, err := srv.requireCourier(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if !account.DeliveryProfile.IsAvailable {
		return nil, errors.Wrap(domainerrors.ErrCourierUnavailable, "courier is off shift")
	}

	return account, nil
}

func (srv *courierService) requireCourier(ctx context.Context, deliveryID uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, deliveryID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "delivery account not found")
		}

		return nil, errors.Wrap(err, "failed to find delivery account")
	}
	if account.DeliveryProfile == nil {
		return nil, errors.Wrap(domainerrors.ErrProfileMissing, "account has no delivery profile")
	}

	return account, nil
}
