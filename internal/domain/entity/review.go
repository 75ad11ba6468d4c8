package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrInvalidRating is returned when a rating falls outside 1..5.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// Review is created by a client against a vendor for a delivered order.
// One review per order.
type Review struct {
	ID       uuid.UUID
	OrderID  uuid.UUID
	ClientID uuid.UUID
	VendorID uuid.UUID

	OverallRating  int // 1-5
	FoodRating     int // 1-5
	DeliveryRating int // 1-5
	Comment        string

	VendorResponse *string

	// Moderation flags, set by admins.
	IsFlagged  bool
	IsApproved bool
	FlagReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateRatings checks that all three ratings are inside 1..5.
func (r *Review) ValidateRatings() error {
	for _, rating := range []int{r.OverallRating, r.FoodRating, r.DeliveryRating} {
		if rating < 1 || rating > 5 {
			return errors.Wrapf(ErrInvalidRating, "got %d", rating)
		}
	}

	return nil
}
