package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivering, OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// orderTransitions is the closed transition table for the order lifecycle.
// cancelled is reachable from every non-terminal state except delivering,
// where the delivery person is already on the road.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:  {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:      {OrderStatusDelivering, OrderStatusCancelled},
	OrderStatusDelivering: {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// CanTransitionTo reports whether the transition is allowed at all,
// independent of who requests it.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// IsTerminal reports whether the status accepts no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// vendorOwnedTransitions are the forward steps the order's own vendor drives.
var vendorOwnedTransitions = map[OrderStatus]OrderStatus{
	OrderStatusPending:   OrderStatusConfirmed,
	OrderStatusConfirmed: OrderStatusPreparing,
	OrderStatusPreparing: OrderStatusReady,
}

// VendorMayAdvance reports whether the vendor owns the from->to step.
// The vendor also owns cancellation while the order is not yet delivering.
func VendorMayAdvance(from, to OrderStatus) bool {
	if to == OrderStatusCancelled {
		return from.CanTransitionTo(OrderStatusCancelled)
	}

	return vendorOwnedTransitions[from] == to
}

// OrderItem is a line-item snapshot taken at placement time. It deliberately
// does not reference the live MenuItem so historical orders keep the price
// the client actually paid.
type OrderItem struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Subtotal returns price x quantity for the line.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is created by a client against a single vendor. A cart spanning
// multiple vendors produces one Order per vendor.
type Order struct {
	ID         uuid.UUID
	ClientID   uuid.UUID
	VendorID   uuid.UUID
	DeliveryID *uuid.UUID // Assigned when a delivery person claims the ready order.

	Items           []OrderItem
	TotalAmount     decimal.Decimal // Fixed at placement; never recomputed afterwards.
	DeliveryAddress string
	Notes           string

	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderTotal sums the line-item subtotals. Used once, at placement.
func OrderTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	return total
}

// BelongsToVendor reports whether the vendor owns this order.
func (o *Order) BelongsToVendor(vendorID uuid.UUID) bool {
	return o.VendorID == vendorID
}

// AssignedTo reports whether the delivery person is the one who claimed it.
func (o *Order) AssignedTo(deliveryID uuid.UUID) bool {
	return o.DeliveryID != nil && *o.DeliveryID == deliveryID
}

// PartyTo reports whether the account participates in this order.
func (o *Order) PartyTo(accountID uuid.UUID) bool {
	return o.ClientID == accountID || o.VendorID == accountID || o.AssignedTo(accountID)
}
