package repository

import (
	"context"
	"errors"

	"campuseats/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the standard operations for order persistence.
//
// Status changes go through guarded single-row updates rather than
// read-modify-write from the application layer, so concurrent transitions on
// the same order resolve inside the store.
type OrderRepository interface {
	// FindByID retrieves a single order with its line-item snapshots.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// Create persists a new order together with its line items.
	Create(ctx context.Context, order *entity.Order) error

	// ListByClient retrieves a client's orders, newest first.
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entity.Order, error)

	// ListByVendor retrieves a vendor's orders, newest first.
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.Order, error)

	// ListByDelivery retrieves orders assigned to a delivery person, newest first.
	ListByDelivery(ctx context.Context, deliveryID uuid.UUID) ([]*entity.Order, error)

	// ListUnclaimedReady retrieves ready orders with no delivery person assigned.
	ListUnclaimedReady(ctx context.Context) ([]*entity.Order, error)

	// UpdateStatus transitions the order from one exact status to another.
	// The update is guarded by the current status; it reports whether a row
	// was actually changed, making duplicate requests safe no-ops.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to entity.OrderStatus) (bool, error)

	// Claim atomically assigns a ready, unassigned order to a delivery
	// person and moves it to delivering. Expressed as a conditional update
	// (status = ready AND delivery_id IS NULL) so racing claimants resolve
	// to exactly one winner. Returns false when someone else got there first.
	Claim(ctx context.Context, orderID, deliveryID uuid.UUID) (bool, error)
}
