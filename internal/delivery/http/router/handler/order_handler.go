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

// OrderHandler holds the client-facing order and review handlers.
type OrderHandler struct {
	orderUC  usecase.OrderUsecase
	reviewUC usecase.ReviewUsecase
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(orderUC usecase.OrderUsecase, reviewUC usecase.ReviewUsecase) *OrderHandler {
	return &OrderHandler{orderUC: orderUC, reviewUC: reviewUC}
}

// actorFromContext rebuilds the acting identity from the authenticated context.
func actorFromContext(c echo.Context) (usecase.Actor, bool) {
	accountID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return usecase.Actor{}, false
	}
	role, ok := middleware.RoleFromContext(c)
	if !ok {
		return usecase.Actor{}, false
	}

	return usecase.Actor{AccountID: accountID, Role: role}, true
}

// PlaceOrder creates a new order against an approved vendor.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	clientID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	var input *usecase.PlaceOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.orderUC.PlaceOrder(c.Request().Context(), clientID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newOrderView(order), "Order placed successfully")
}

// ListMyOrders returns the caller's order history, newest first.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	clientID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	orders, err := h.orderUC.ListClientOrders(c.Request().Context(), clientID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderViews(orders), "Orders retrieved successfully")
}

// GetOrder returns one order if the caller is a party to it.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ORDER_ID", "Invalid order ID")
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), actor, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderView(order), "Order retrieved successfully")
}

// CreateReview reviews a delivered order. One review per order.
func (h *OrderHandler) CreateReview(c echo.Context) error {
	clientID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	var input *usecase.CreateReviewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	review, err := h.reviewUC.CreateReview(c.Request().Context(), clientID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newReviewView(review), "Review created successfully")
}
