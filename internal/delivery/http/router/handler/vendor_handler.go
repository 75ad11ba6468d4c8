package handler

import (
	"net/http"

	"campuseats/internal/delivery/http/middleware"
	"campuseats/internal/delivery/http/response"
	"campuseats/internal/domain/entity"
	"campuseats/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// VendorHandler holds the vendor-facing handlers: menu management, storefront
// images, order processing, and review responses.
type VendorHandler struct {
	menuUC   usecase.MenuUsecase
	imageUC  usecase.VendorImageUsecase
	orderUC  usecase.OrderUsecase
	reviewUC usecase.ReviewUsecase
}

// NewVendorHandler is the constructor for VendorHandler, injected by Fx.
func NewVendorHandler(
	menuUC usecase.MenuUsecase,
	imageUC usecase.VendorImageUsecase,
	orderUC usecase.OrderUsecase,
	reviewUC usecase.ReviewUsecase,
) *VendorHandler {
	return &VendorHandler{
		menuUC:   menuUC,
		imageUC:  imageUC,
		orderUC:  orderUC,
		reviewUC: reviewUC,
	}
}

// ListMenu returns the caller's full menu, including unavailable items.
func (h *VendorHandler) ListMenu(c echo.Context) error {
	vendorID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	items, err := h.menuUC.ListMenu(c.Request().Context(), vendorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newMenuItemViews(items), "Menu retrieved successfully")
}

// CreateMenuItem adds an item to the caller's menu.
func (h *VendorHandler) CreateMenuItem(c echo.Context) error {
	vendorID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	var input *usecase.MenuItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid menu item input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	item, err := h.menuUC.CreateMenuItem(c.Request().Context(), vendorID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newMenuItemView(item), "Menu item created successfully")
}

// UpdateMenuItem updates one of the caller's menu items.
func (h *VendorHandler) UpdateMenuItem(c echo.Context) error {
	vendorID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ITEM_ID", "Invalid menu item ID")
	}

	var input *usecase.MenuItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid menu item input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	item, err := h.menuUC.UpdateMenuItem(c.Request().Context(), vendorID, itemID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newMenuItemView(item), "Menu item updated successfully")
}

// DeleteMenuItem removes one of the caller's menu items.
func (h *VendorHandler) DeleteMenuItem(c echo.Context) error {
	vendorID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ITEM_ID", "Invalid menu item ID")
	}

	if err := h.menuUC.DeleteMenuItem(c.Request().Context(), vendorID, itemID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Menu item deleted successfully")
}

// UploadImage receives one storefront image as multipart form data. The
// "kind" field names the slot (canteen, location, menu). Any upload resets
// the vendor's image approval until an administrator re-reviews.
func (h *VendorHandler) UploadImage(c echo.Context) error {
	vendorID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	kind := entity.VendorImageKind(c.FormValue("kind"))
	if !kind.IsValid() {
		return response.BadRequest(c, "INVALID_IMAGE_KIND", "Image kind must be one of: canteen, location, menu")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "MISSING_IMAGE", "Image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded image")
	}
	defer file.Close()

	account, err := h.imageUC.UploadImage(c.Request().Context(), vendorID, &usecase.UploadVendorImageInput{
		Kind:        kind,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountView(account), "Image uploaded, pending review")
}

// ListOrders returns the caller's incoming orders, newest first.
func (h *VendorHandler) ListOrders(c echo.Context) error {
	vendorID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	orders, err := h.orderUC.ListVendorOrders(c.Request().Context(), vendorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderViews(orders), "Orders retrieved successfully")
}

// AdvanceOrder performs one vendor-owned status transition
// (confirm, start preparing, mark ready).
func (h *VendorHandler) AdvanceOrder(c echo.Context) error {
	vendorID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ORDER_ID", "Invalid order ID")
	}

	var input *usecase.VendorOrderTransitionInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid transition input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.orderUC.AdvanceOrder(c.Request().Context(), vendorID, orderID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderView(order), "Order status updated successfully")
}

// CancelOrder cancels one of the caller's still-cancellable orders.
func (h *VendorHandler) CancelOrder(c echo.Context) error {
	vendorID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ORDER_ID", "Invalid order ID")
	}

	order, err := h.orderUC.CancelOrder(c.Request().Context(), vendorID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderView(order), "Order cancelled")
}

// ListReviews returns every review of the caller's store, including ones
// moderation has hidden from the public listing.
func (h *VendorHandler) ListReviews(c echo.Context) error {
	vendorID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	reviews, err := h.reviewUC.ListVendorReviews(c.Request().Context(), vendorID, true)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newReviewViews(reviews), "Reviews retrieved successfully")
}

// RespondToReview records the caller's public reply to one of their reviews.
func (h *VendorHandler) RespondToReview(c echo.Context) error {
	vendorID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	reviewID, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_REVIEW_ID", "Invalid review ID")
	}

	var input *usecase.RespondReviewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid response input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	review, err := h.reviewUC.RespondToReview(c.Request().Context(), vendorID, reviewID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newReviewView(review), "Response recorded successfully")
}
