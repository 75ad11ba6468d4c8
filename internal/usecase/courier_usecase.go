package usecase

import (
	"context"

	"campuseats/internal/domain/entity"

	"github.com/google/uuid"
)

// SetAvailabilityInput toggles a delivery person's availability.
type SetAvailabilityInput struct {
	Available bool `json:"available"`
}

// ShareLocationInput carries a delivery person's current coordinates.
type ShareLocationInput struct {
	Latitude  float64 `json:"latitude" validate:"required,latitude"`
	Longitude float64 `json:"longitude" validate:"required,longitude"`
}

// CourierUsecase covers the delivery side of the order flow: browsing ready
// orders, claiming one, completing it, and sharing availability/location.
type CourierUsecase interface {
	// ListReadyOrders returns unclaimed orders in ready status.
	ListReadyOrders(ctx context.Context, deliveryID uuid.UUID) ([]*entity.Order, error)

	// ClaimOrder atomically assigns a ready order to the caller and moves it
	// to delivering. Exactly one of several concurrent claimants wins; the
	// rest get a conflict error.
	ClaimOrder(ctx context.Context, deliveryID, orderID uuid.UUID) (*entity.Order, error)

	// CompleteOrder moves the caller's delivering order to delivered.
	CompleteOrder(ctx context.Context, deliveryID, orderID uuid.UUID) (*entity.Order, error)

	ListMyDeliveries(ctx context.Context, deliveryID uuid.UUID) ([]*entity.Order, error)

	SetAvailability(ctx context.Context, deliveryID uuid.UUID, input *SetAvailabilityInput) error

	// ShareLocation records the courier's position and fans it out to
	// dispatch views.
	ShareLocation(ctx context.Context, deliveryID uuid.UUID, input *ShareLocationInput) error
}
