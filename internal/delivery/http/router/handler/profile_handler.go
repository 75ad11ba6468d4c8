package handler

import (
	"net/http"

	"campuseats/internal/delivery/http/middleware"
	"campuseats/internal/delivery/http/response"
	"campuseats/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for the signed-in account's profile handlers.
type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// GetProfile loads the caller's profile. This is the post-login gate: a
// deactivated account is signed out here rather than at token expiry.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	accountID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	output, err := h.uc.LoadProfile(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"account":        newAccountView(output.Account),
		"dashboardRoute": output.DashboardRoute,
	}, "Profile retrieved successfully")
}

// UpdateProfile updates the caller's own contact fields.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	accountID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	var input *usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	account, err := h.uc.UpdateProfile(c.Request().Context(), accountID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountView(account), "Profile updated successfully")
}

// UpdateVendorProfile updates the caller's storefront fields.
func (h *ProfileHandler) UpdateVendorProfile(c echo.Context) error {
	accountID, ok := middleware.AccountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	var input *usecase.UpdateVendorProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vendor profile input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	account, err := h.uc.UpdateVendorProfile(c.Request().Context(), accountID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountView(account), "Store profile updated successfully")
}
