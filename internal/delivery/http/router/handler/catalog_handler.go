package handler

import (
	"net/http"

	"campuseats/internal/delivery/http/response"
	"campuseats/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler serves the public storefront: approved vendors and their menus.
type CatalogHandler struct {
	menuUC   usecase.MenuUsecase
	reviewUC usecase.ReviewUsecase
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(menuUC usecase.MenuUsecase, reviewUC usecase.ReviewUsecase) *CatalogHandler {
	return &CatalogHandler{menuUC: menuUC, reviewUC: reviewUC}
}

// ListVendors returns the public catalog of approved vendors.
func (h *CatalogHandler) ListVendors(c echo.Context) error {
	vendors, err := h.menuUC.ListVendors(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountViews(vendors), "Vendors retrieved successfully")
}

// ListItems returns every available item across approved vendors.
func (h *CatalogHandler) ListItems(c echo.Context) error {
	items, err := h.menuUC.ListPublicItems(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newMenuItemViews(items), "Menu items retrieved successfully")
}

// GetVendorMenu returns one approved vendor's available items.
func (h *CatalogHandler) GetVendorMenu(c echo.Context) error {
	vendorID, err := uuid.Parse(c.Param("vendorId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_VENDOR_ID", "Invalid vendor ID")
	}

	listing, err := h.menuUC.GetVendorMenu(c.Request().Context(), vendorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, vendorListingView{
		Vendor: newAccountView(listing.Account),
		Items:  newMenuItemViews(listing.Items),
	}, "Vendor menu retrieved successfully")
}

// ListVendorReviews returns the approved reviews of one vendor.
func (h *CatalogHandler) ListVendorReviews(c echo.Context) error {
	vendorID, err := uuid.Parse(c.Param("vendorId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_VENDOR_ID", "Invalid vendor ID")
	}

	reviews, err := h.reviewUC.ListVendorReviews(c.Request().Context(), vendorID, false)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newReviewViews(reviews), "Reviews retrieved successfully")
}
