// Package constants defines domain-wide constant values.
package constants

// Pub/Sub provider types.
const (
	// PubSubProviderLocal posts events to a local HTTP endpoint for development.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle publishes events to Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)

// Event types carried in message attributes for subscriber-side filtering.
const (
	// EventTypeOrderStatus marks an order status transition event.
	EventTypeOrderStatus = "order.status_changed"
	// EventTypeCourierLocation marks a courier location update event.
	EventTypeCourierLocation = "courier.location"
)
