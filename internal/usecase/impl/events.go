package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "campuseats/internal/delivery/context"
	"campuseats/internal/domain/entity"
	"campuseats/internal/domain/service"
)

// publishOrderStatus fans an order transition out to subscribed views.
// Best-effort after commit: a broker hiccup is logged, never surfaced.
func publishOrderStatus(ctx context.Context, logger *slog.Logger, publisher service.EventPublisher, order *entity.Order, from, to entity.OrderStatus) {
	event := &service.OrderStatusEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:    order.ID.String(),
		VendorID:   order.VendorID.String(),
		ClientID:   order.ClientID.String(),
		FromStatus: string(from),
		ToStatus:   string(to),
	}
	if order.DeliveryID != nil {
		event.DeliveryID = order.DeliveryID.String()
	}

	if err := publisher.PublishOrderStatus(ctx, event); err != nil {
		logger.Warn("Failed to publish order status event",
			slog.Any("orderID", order.ID),
			slog.String("to", string(to)),
			slog.Any("error", err))
	}
}

// publishCourierLocation fans a courier position out to dispatch views.
func publishCourierLocation(ctx context.Context, logger *slog.Logger, publisher service.EventPublisher, deliveryID string, lat, lng float64, at time.Time) {
	event := &service.DeliveryLocationEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		DeliveryID: deliveryID,
		Latitude:   lat,
		Longitude:  lng,
		SharedAt:   at.UTC().Format(time.RFC3339),
	}

	if err := publisher.PublishDeliveryLocation(ctx, event); err != nil {
		logger.Warn("Failed to publish courier location event",
			slog.String("deliveryID", deliveryID),
			slog.Any("error", err))
	}
}
