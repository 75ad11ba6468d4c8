package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table. DeliveryID stays NULL until a
// delivery person claims the order; the claim statement's WHERE clause
// depends on that.
type OrderModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ClientID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	VendorID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	DeliveryID *uuid.UUID `gorm:"type:uuid;index"`

	TotalAmount     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	DeliveryAddress string          `gorm:"type:varchar(255);not null"`
	Notes           string          `gorm:"type:text"`
	Status          string          `gorm:"type:varchar(20);not null;index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table: immutable line-item
// snapshots taken at placement.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(100);not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Quantity  int             `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
