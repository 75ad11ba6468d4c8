package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel mirrors the 'reviews' table. The unique index on OrderID backs
// the one-review-per-order rule.
type ReviewModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index"`
	VendorID uuid.UUID `gorm:"type:uuid;not null;index"`

	OverallRating  int    `gorm:"not null"`
	FoodRating     int    `gorm:"not null"`
	DeliveryRating int    `gorm:"not null"`
	Comment        string `gorm:"type:text"`

	VendorResponse *string `gorm:"type:text"`
	IsFlagged      bool    `gorm:"not null;default:false"`
	IsApproved     bool    `gorm:"not null;default:true"`
	FlagReason     string  `gorm:"type:varchar(255)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
