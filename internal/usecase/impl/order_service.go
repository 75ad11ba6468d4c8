package impl

import (
	"context"
	"log/slog"

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

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager      repository.TransactionManager
	orderRepo      repository.OrderRepository
	eventPublisher service.EventPublisher
	logger         *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	OrderRepo      repository.OrderRepository
	EventPublisher service.EventPublisher
	Logger         *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:      params.TxManager,
		orderRepo:      params.OrderRepo,
		eventPublisher: params.EventPublisher,
		logger:         params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PlaceOrder creates a pending order against one vendor. Line items snapshot
// the menu's current name and price, so the total is fixed at placement and
// later menu edits never touch historical orders. A cart spanning multiple
// vendors is placed as one call per vendor.
func (srv *orderService) PlaceOrder(ctx context.Context, clientID uuid.UUID, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	srv.log(ctx).Info("Placing order", slog.Any("clientID", clientID), slog.Any("vendorID", input.VendorID))

	if len(input.Items) == 0 {
		return nil, errors.Wrap(domainerrors.ErrEmptyOrder, "order has no items")
	}

	var placed *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		menuItemRepo := repoFactory.MenuItemRepo()
		orderRepo := repoFactory.OrderRepo()

		vendor, err := accountRepo.FindByID(ctx, input.VendorID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "vendor not found")
			}

			return errors.Wrap(err, "failed to find vendor")
		}
		if !publiclyListable(vendor) {
			return errors.Wrap(domainerrors.ErrVendorNotApproved, "vendor not open for orders")
		}

		items, err := snapshotOrderItems(ctx, menuItemRepo, input)
		if err != nil {
			return err
		}

		newOrder := &entity.Order{
			ClientID:        clientID,
			VendorID:        input.VendorID,
			Items:           items,
			TotalAmount:     entity.OrderTotal(items),
			DeliveryAddress: input.DeliveryAddress,
			Notes:           input.Notes,
			Status:          entity.OrderStatusPending,
		}

		if err := orderRepo.Create(ctx, newOrder); err != nil {
			return errors.Wrap(err, "failed to create order")
		}
		placed = newOrder

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute order placement transaction", slog.Any("clientID", clientID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute order placement transaction")
	}

	publishOrderStatus(ctx, srv.log(ctx), srv.eventPublisher, placed, "", entity.OrderStatusPending)

	srv.log(ctx).Info("Order placed", slog.Any("orderID", placed.ID), slog.String("total", placed.TotalAmount.String()))

	return placed, nil
}

// snapshotOrderItems resolves each requested menu item against the vendor's
// live menu and copies name and price into the order.
func snapshotOrderItems(ctx context.Context, menuItemRepo repository.MenuItemRepository, input *usecase.PlaceOrderInput) ([]entity.OrderItem, error) {
	items := make([]entity.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		menuItem, err := menuItemRepo.FindByID(ctx, line.MenuItemID)
		if err != nil {
			if errors.Is(err, repository.ErrMenuItemNotFound) {
				return nil, errors.Wrapf(domainerrors.ErrMenuItemNotFound, "menu item %s not found", line.MenuItemID)
			}

			return nil, errors.Wrap(err, "failed to find menu item")
		}
		if menuItem.VendorID != input.VendorID || !menuItem.IsAvailable {
			return nil, errors.Wrapf(domainerrors.ErrMenuItemNotFound, "menu item %s not orderable from this vendor", line.MenuItemID)
		}

		items = append(items, entity.OrderItem{
			Name:      menuItem.Name,
			UnitPrice: menuItem.Price,
			Quantity:  line.Quantity,
		})
	}

	return items, nil
}

// GetOrder returns one order to a participant: its client, its vendor or the
// delivery person who claimed it. Administrators see everything.
func (srv *orderService) GetOrder(ctx context.Context, actor usecase.Actor, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.findOrder(ctx, srv.orderRepo, orderID)
	if err != nil {
		return nil, err
	}

	if !actor.Role.IsAdministrative() && !order.PartyTo(actor.AccountID) {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "not a party to this order")
	}

	return order, nil
}

// ListClientOrders returns the client's own order history.
func (srv *orderService) ListClientOrders(ctx context.Context, clientID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByClient(ctx, clientID)
	if err != nil {
		srv.log(ctx).Error("Failed to list client orders", slog.Any("clientID", clientID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list client orders")
	}

	return orders, nil
}

// ListVendorOrders returns the vendor's incoming orders.
func (srv *orderService) ListVendorOrders(ctx context.Context, vendorID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		srv.log(ctx).Error("Failed to list vendor orders", slog.Any("vendorID", vendorID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list vendor orders")
	}

	return orders, nil
}

// AdvanceOrder performs one vendor-owned forward step. The actual status
// flip is a guarded update keyed on the current status, so two racing
// requests resolve in the store and the loser gets an invalid-transition
// error instead of double-applying.
func (srv *orderService) AdvanceOrder(ctx context.Context, vendorID, orderID uuid.UUID, input *usecase.VendorOrderTransitionInput) (*entity.Order, error) {
	if !input.Status.IsValid() {
		return nil, errors.Wrapf(domainerrors.ErrValidationFailed, "unknown order status %q", input.Status)
	}

	return srv.vendorTransition(ctx, vendorID, orderID, input.Status)
}

// CancelOrder cancels the vendor's order while it has not yet left for
// delivery.
func (srv *orderService) CancelOrder(ctx context.Context, vendorID, orderID uuid.UUID) (*entity.Order, error) {
	return srv.vendorTransition(ctx, vendorID, orderID, entity.OrderStatusCancelled)
}

func (srv *orderService) vendorTransition(ctx context.Context, vendorID, orderID uuid.UUID, target entity.OrderStatus) (*entity.Order, error) {
	srv.log(ctx).Info("Vendor order transition", slog.Any("vendorID", vendorID), slog.Any("orderID", orderID), slog.Any("target", target))

	var transitioned *entity.Order
	var from entity.OrderStatus
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := srv.findOrder(ctx, orderRepo, orderID)
		if err != nil {
			return err
		}
		if !order.BelongsToVendor(vendorID) {
			return errors.Wrap(domainerrors.ErrForbidden, "order belongs to another vendor")
		}
		if !entity.VendorMayAdvance(order.Status, target) {
			return errors.Wrapf(domainerrors.ErrInvalidOrderTransition, "vendor may not move order from %s to %s", order.Status, target)
		}

		changed, err := orderRepo.UpdateStatus(ctx, orderID, order.Status, target)
		if err != nil {
			return errors.Wrap(err, "failed to update order status")
		}
		if !changed {
			// Someone moved the order between our read and the update.
			return errors.Wrapf(domainerrors.ErrInvalidOrderTransition, "order no longer in %s", order.Status)
		}

		from = order.Status
		order.Status = target
		transitioned = order

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Vendor order transition failed", slog.Any("orderID", orderID), slog.Any("target", target), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute order transition transaction")
	}

	publishOrderStatus(ctx, srv.log(ctx), srv.eventPublisher, transitioned, from, target)

	return transitioned, nil
}

func (srv *orderService) findOrder(ctx context.Context, orderRepo repository.OrderRepository, orderID uuid.UUID) (*entity.Order, error) {
	order, err := orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}
