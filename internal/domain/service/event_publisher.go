package service

import (
	"context"
)

// OrderStatusEvent announces an order transition to subscribed views.
type OrderStatusEvent struct {
	RequestID  string `json:"request_id,omitempty"` // For distributed tracing
	OrderID    string `json:"order_id"`
	VendorID   string `json:"vendor_id"`
	ClientID   string `json:"client_id"`
	DeliveryID string `json:"delivery_id,omitempty"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
}

// DeliveryLocationEvent carries a delivery person's shared coordinates to
// subscribed admin/dispatch views.
type DeliveryLocationEvent struct {
	RequestID  string  `json:"request_id,omitempty"`
	DeliveryID string  `json:"delivery_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	SharedAt   string  `json:"shared_at"`
}

// EventPublisher defines the interface for publishing events to a message queue.
// Publishing is best-effort fan-out: callers log failures and move on.
type EventPublisher interface {
	// PublishOrderStatus publishes an order status transition.
	PublishOrderStatus(ctx context.Context, event *OrderStatusEvent) error

	// PublishDeliveryLocation publishes a delivery location update.
	PublishDeliveryLocation(ctx context.Context, event *DeliveryLocationEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
