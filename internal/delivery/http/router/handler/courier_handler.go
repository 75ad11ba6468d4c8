package handler

import (
	"net/http"

	"campuseats/internal/delivery/http/middleware"
	"campuseats/internal/delivery/http/response"
	"campuseats/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CourierHandler holds the delivery-side handlers: browsing and claiming
// ready orders, completing deliveries, availability and location sharing.
type CourierHandler struct {
	uc usecase.CourierUsecase
}

// NewCourierHandler is the constructor for CourierHandler, injected by Fx.
func NewCourierHandler(uc usecase.CourierUsecase) *CourierHandler {
	return &CourierHandler{uc: uc}
}

// ListReadyOrders returns unclaimed orders waiting for pickup.
func (h *CourierHandler) ListReadyOrders(c echo.Context) error {
	deliveryID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	orders, err := h.uc.ListReadyOrders(c.Request().Context(), deliveryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderViews(orders), "Ready orders retrieved successfully")
}

// ClaimOrder claims a ready order for the caller. Exactly one of several
// concurrent claimants wins; the rest get a conflict error.
func (h *CourierHandler) ClaimOrder(c echo.Context) error {
	deliveryID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ORDER_ID", "Invalid order ID")
	}

	order, err := h.uc.ClaimOrder(c.Request().Context(), deliveryID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderView(order), "Order claimed successfully")
}

// CompleteOrder marks the caller's delivering order as delivered.
func (h *CourierHandler) CompleteOrder(c echo.Context) error {
	deliveryID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ORDER_ID", "Invalid order ID")
	}

	order, err := h.uc.CompleteOrder(c.Request().Context(), deliveryID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderView(order), "Order delivered")
}

// ListMyDeliveries returns the caller's assigned orders, newest first.
func (h *CourierHandler) ListMyDeliveries(c echo.Context) error {
	deliveryID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	orders, err := h.uc.ListMyDeliveries(c.Request().Context(), deliveryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderViews(orders), "Deliveries retrieved successfully")
}

// SetAvailability toggles whether the caller accepts new deliveries.
func (h *CourierHandler) SetAvailability(c echo.Context) error {
	deliveryID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	var input *usecase.SetAvailabilityInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid availability input")
	}

	if err := h.uc.SetAvailability(c.Request().Context(), deliveryID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Availability updated successfully")
}

// ShareLocation records the caller's current coordinates.
func (h *CourierHandler) ShareLocation(c echo.Context) error {
	deliveryID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	var input *usecase.ShareLocationInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid location input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ShareLocation(c.Request().Context(), deliveryID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Location shared successfully")
}
