package usecase

import (
	"context"

	"campuseats/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateReviewInput defines a client's review of a delivered order.
type CreateReviewInput struct {
	OrderID        uuid.UUID `json:"orderId" validate:"required"`
	OverallRating  int       `json:"overallRating" validate:"required,min=1,max=5"`
	FoodRating     int       `json:"foodRating" validate:"required,min=1,max=5"`
	DeliveryRating int       `json:"deliveryRating" validate:"required,min=1,max=5"`
	Comment        string    `json:"comment"`
}

// RespondReviewInput carries a vendor's public reply to a review.
type RespondReviewInput struct {
	Response string `json:"response" validate:"required"`
}

// ModerateReviewInput flags or clears a review.
type ModerateReviewInput struct {
	Approve    bool   `json:"approve"`
	FlagReason string `json:"flagReason"`
}

// ReviewUsecase covers review creation, vendor responses, and moderation.
// A review requires a delivered order and each order takes at most one.
type ReviewUsecase interface {
	CreateReview(ctx context.Context, clientID uuid.UUID, input *CreateReviewInput) (*entity.Review, error)
	ListVendorReviews(ctx context.Context, vendorID uuid.UUID, includeUnapproved bool) ([]*entity.Review, error)
	RespondToReview(ctx context.Context, vendorID, reviewID uuid.UUID, input *RespondReviewInput) (*entity.Review, error)
	ModerateReview(ctx context.Context, actor Actor, reviewID uuid.UUID, input *ModerateReviewInput) (*entity.Review, error)
}
