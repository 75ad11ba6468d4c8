package usecase

import (
	"context"

	"campuseats/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemInput is one line of a new order.
type OrderItemInput struct {
	MenuItemID uuid.UUID `json:"menuItemId" validate:"required"`
	Quantity   int       `json:"quantity" validate:"required,min=1"`
}

// PlaceOrderInput defines a client's new order. Prices are resolved from the
// vendor's current menu server-side; the client never supplies amounts.
type PlaceOrderInput struct {
	VendorID        uuid.UUID        `json:"vendorId" validate:"required"`
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress string           `json:"deliveryAddress" validate:"required"`
	Notes           string           `json:"notes"`
}

// VendorOrderTransitionInput names the status a vendor moves an order to.
type VendorOrderTransitionInput struct {
	Status entity.OrderStatus `json:"status" validate:"required"`
}

// OrderOutput pairs an order with its recomputed total for responses.
type OrderOutput struct {
	Order *entity.Order
	Total decimal.Decimal
}

// OrderUsecase covers order placement and the per-role order views plus the
// vendor-owned status transitions. Delivery-side transitions live on
// CourierUsecase.
type OrderUsecase interface {
	// PlaceOrder creates a pending order against an approved vendor.
	PlaceOrder(ctx context.Context, clientID uuid.UUID, input *PlaceOrderInput) (*entity.Order, error)

	GetOrder(ctx context.Context, actor Actor, orderID uuid.UUID) (*entity.Order, error)
	ListClientOrders(ctx context.Context, clientID uuid.UUID) ([]*entity.Order, error)
	ListVendorOrders(ctx context.Context, vendorID uuid.UUID) ([]*entity.Order, error)

	// AdvanceOrder performs one vendor-owned transition
	// (confirm, start preparing, mark ready).
	AdvanceOrder(ctx context.Context, vendorID, orderID uuid.UUID, input *VendorOrderTransitionInput) (*entity.Order, error)

	// CancelOrder cancels an order while it is still cancellable.
	// Only the vendor may cancel.
	CancelOrder(ctx context.Context, vendorID, orderID uuid.UUID) (*entity.Order, error)
}
