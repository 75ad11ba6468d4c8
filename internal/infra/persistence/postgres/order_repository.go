package postgres

import (
	"context"

	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/repository"
	"campuseats/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the domain.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// FindByID retrieves a single order with its line-item snapshots.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		First(&orderM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toOrderDomain(&orderM), nil
}

// Create persists a new order together with its line items.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrOrderNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// ListByClient retrieves a client's orders, newest first.
func (repo *orderRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entity.Order, error) {
	return repo.list(ctx, "client_id = ?", clientID)
}

// ListByVendor retrieves a vendor's orders, newest first.
func (repo *orderRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.Order, error) {
	return repo.list(ctx, "vendor_id = ?", vendorID)
}

// ListByDelivery retrieves orders assigned to a delivery person, newest first.
func (repo *orderRepository) ListByDelivery(ctx context.Context, deliveryID uuid.UUID) ([]*entity.Order, error) {
	return repo.list(ctx, "delivery_id = ?", deliveryID)
}

// ListUnclaimedReady retrieves ready orders with no delivery person assigned.
func (repo *orderRepository) ListUnclaimedReady(ctx context.Context) ([]*entity.Order, error) {
	return repo.list(ctx, "status = ? AND delivery_id IS NULL", entity.OrderStatusReady.String())
}

func (repo *orderRepository) list(ctx context.Context, condition string, args ...any) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Where(condition, args...).
		Order("created_at DESC").
		Find(&orderModels).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// UpdateStatus transitions the order from one exact status to another.
// The WHERE clause carries the expected current status, so two racing
// transitions on the same order resolve to a single winner inside Postgres.
func (repo *orderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to entity.OrderStatus) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", orderID, from.String()).
		Update("status", to.String())
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}

	if result.RowsAffected == 0 {
		// Distinguish a lost race from a missing order.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.OrderModel{}).
			Where("id = ?", orderID).
			Count(&count).Error; err != nil {
			return false, errors.WithStack(err)
		}
		if count == 0 {
			return false, repository.ErrOrderNotFound
		}

		return false, nil
	}

	return true, nil
}

// Claim atomically assigns a ready, unassigned order to a delivery person
// and moves it to delivering. The delivery_id IS NULL guard makes concurrent
// claims resolve to exactly one winner.
func (repo *orderRepository) Claim(ctx context.Context, orderID, deliveryID uuid.UUID) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND status = ? AND delivery_id IS NULL", orderID, entity.OrderStatusReady.String()).
		Updates(map[string]any{
			"status":      entity.OrderStatusDelivering.String(),
			"delivery_id": deliveryID,
		})
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to claim order")
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.OrderModel{}).
			Where("id = ?", orderID).
			Count(&count).Error; err != nil {
			return false, errors.WithStack(err)
		}
		if count == 0 {
			return false, repository.ErrOrderNotFound
		}

		return false, nil
	}

	return true, nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, entity.OrderItem{
			Name:      itemM.Name,
			UnitPrice: itemM.UnitPrice,
			Quantity:  itemM.Quantity,
		})
	}

	return &entity.Order{
		ID:              data.ID,
		ClientID:        data.ClientID,
		VendorID:        data.VendorID,
		DeliveryID:      data.DeliveryID,
		Items:           items,
		TotalAmount:     data.TotalAmount,
		DeliveryAddress: data.DeliveryAddress,
		Notes:           data.Notes,
		Status:          entity.OrderStatus(data.Status),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	itemModels := make([]model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		itemModels = append(itemModels, model.OrderItemModel{
			OrderID:   data.ID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	return &model.OrderModel{
		ID:              data.ID,
		ClientID:        data.ClientID,
		VendorID:        data.VendorID,
		DeliveryID:      data.DeliveryID,
		TotalAmount:     data.TotalAmount,
		DeliveryAddress: data.DeliveryAddress,
		Notes:           data.Notes,
		Status:          data.Status.String(),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
		Items:           itemModels,
	}
}
