package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItem belongs to exactly one vendor. Availability is toggled
// independently of deletion so a vendor can pull an item without losing it.
type MenuItem struct {
	ID          uuid.UUID
	VendorID    uuid.UUID // The owning vendor account.
	Name        string
	Description string
	Price       decimal.Decimal // Non-negative.
	Category    string          // Free-form tag, e.g. "rice", "noodles", "drinks".
	ImageURL    string
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
