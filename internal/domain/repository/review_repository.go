package repository

import (
	"context"
	"errors"

	"campuseats/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for review persistence.
var (
	// ErrReviewNotFound is returned when a review is not found.
	ErrReviewNotFound = errors.New("review not found")
	// ErrReviewExists is returned when the order already has a review.
	ErrReviewExists = errors.New("review already exists for order")
)

// ReviewRepository defines the standard operations for review persistence.
type ReviewRepository interface {
	// FindByID retrieves a single review by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// FindByOrderID retrieves the review of an order, if any.
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Review, error)

	// Create persists a new review. The orders-reviews relation is 1:1,
	// backed by a unique index; a second review for the same order returns
	// ErrReviewExists.
	Create(ctx context.Context, review *entity.Review) error

	// Update modifies an existing review (vendor response, moderation flags).
	Update(ctx context.Context, review *entity.Review) error

	// ListByVendor retrieves a vendor's reviews, newest first.
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.Review, error)
}
