package handler

import (
	"net/http"

	"campuseats/internal/delivery/http/response"
	"campuseats/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds the administrative handlers: the account lifecycle,
// vendor image review, and review moderation.
type AdminHandler struct {
	accountUC usecase.AccountAdminUsecase
	reviewUC  usecase.ReviewUsecase
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(accountUC usecase.AccountAdminUsecase, reviewUC usecase.ReviewUsecase) *AdminHandler {
	return &AdminHandler{accountUC: accountUC, reviewUC: reviewUC}
}

// CreateAccount provisions an account of any role. Sub-admin creations land
// in pending status for a full admin to review.
func (h *AdminHandler) CreateAccount(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	var input *usecase.CreateAccountInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	account, err := h.accountUC.CreateAccount(c.Request().Context(), actor, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newAccountView(account), "Account created successfully")
}

// ListAccounts returns the accounts visible to the caller, optionally
// filtered by role and status.
func (h *AdminHandler) ListAccounts(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	var input *usecase.ListAccountsInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid listing filter")
	}

	accounts, err := h.accountUC.ListAccounts(c.Request().Context(), actor, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountViews(accounts), "Accounts retrieved successfully")
}

// GetAccount returns one account if it is visible to the caller.
func (h *AdminHandler) GetAccount(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ACCOUNT_ID", "Invalid account ID")
	}

	account, err := h.accountUC.GetAccount(c.Request().Context(), actor, accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountView(account), "Account retrieved successfully")
}

// UpdateAccount edits an account's contact fields.
func (h *AdminHandler) UpdateAccount(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ACCOUNT_ID", "Invalid account ID")
	}

	var input *usecase.UpdateAccountInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	account, err := h.accountUC.UpdateAccount(c.Request().Context(), actor, accountID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountView(account), "Account updated successfully")
}

// ApproveAccount moves a pending account to approved.
func (h *AdminHandler) ApproveAccount(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ACCOUNT_ID", "Invalid account ID")
	}

	account, err := h.accountUC.ApproveAccount(c.Request().Context(), actor, accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountView(account), "Account approved")
}

// RejectAccount moves a pending account to rejected.
func (h *AdminHandler) RejectAccount(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ACCOUNT_ID", "Invalid account ID")
	}

	account, err := h.accountUC.RejectAccount(c.Request().Context(), actor, accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountView(account), "Account rejected")
}

// setActiveInput toggles the orthogonal active flag of an account.
type setActiveInput struct {
	Active bool `json:"active"`
}

// SetAccountActive activates or deactivates an account. Deactivation also
// revokes the account's sessions.
func (h *AdminHandler) SetAccountActive(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ACCOUNT_ID", "Invalid account ID")
	}

	var input setActiveInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid activation input")
	}

	account, err := h.accountUC.SetAccountActive(c.Request().Context(), actor, accountID, input.Active)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountView(account), "Account activation updated")
}

// DeleteAccount removes an account and its dependent records.
func (h *AdminHandler) DeleteAccount(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ACCOUNT_ID", "Invalid account ID")
	}

	if err := h.accountUC.DeleteAccount(c.Request().Context(), actor, accountID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Account deleted")
}

// ReviewVendorImages approves or clears a vendor's uploaded storefront
// images. Approval is what makes the vendor publicly listable.
func (h *AdminHandler) ReviewVendorImages(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	vendorID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ACCOUNT_ID", "Invalid vendor ID")
	}

	var input *usecase.ReviewVendorImagesInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid image review input")
	}

	account, err := h.accountUC.ReviewVendorImages(c.Request().Context(), actor, vendorID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountView(account), "Vendor images reviewed")
}

// ListVendorReviews returns every review of a vendor for moderation,
// including unapproved ones.
func (h *AdminHandler) ListVendorReviews(c echo.Context) error {
	vendorID, err := uuid.Parse(c.Param("vendorId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_VENDOR_ID", "Invalid vendor ID")
	}

	reviews, err := h.reviewUC.ListVendorReviews(c.Request().Context(), vendorID, true)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newReviewViews(reviews), "Reviews retrieved successfully")
}

// ModerateReview flags or clears one review.
func (h *AdminHandler) ModerateReview(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	reviewID, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_REVIEW_ID", "Invalid review ID")
	}

	var input *usecase.ModerateReviewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid moderation input")
	}

	review, err := h.reviewUC.ModerateReview(c.Request().Context(), actor, reviewID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newReviewView(review), "Review moderated")
}
