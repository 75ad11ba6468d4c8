// Package model defines the GORM table mappings for the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type AccountModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email     string    `gorm:"type:varchar(255);unique;not null"`
	CampusID  string    `gorm:"type:varchar(13);unique;not null;column:campus_id"`
	Role      string    `gorm:"type:varchar(20);not null;index"`
	FirstName string    `gorm:"type:varchar(100)"`
	LastName  string    `gorm:"type:varchar(100)"`
	Phone     string    `gorm:"type:varchar(30)"`
	IsActive  bool      `gorm:"not null;default:true"`
	Status    string    `gorm:"type:varchar(20);not null;index"`

	CreatedBy  *uuid.UUID `gorm:"type:uuid"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time

	VendorProfile   *VendorProfileModel   `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	DeliveryProfile *DeliveryProfileModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// VendorProfileModel mirrors the 'vendor_profiles' table. AccountID references accounts.id (UUID).
type VendorProfileModel struct {
	AccountID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	StoreName        string    `gorm:"type:varchar(100);not null"`
	StoreDescription string    `gorm:"type:text"`
	CanteenImageURL  string    `gorm:"type:varchar(500)"`
	LocationImageURL string    `gorm:"type:varchar(500)"`
	MenuImageURL     string    `gorm:"type:varchar(500)"`
	ImagesApproved   bool      `gorm:"not null;default:false"`
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (VendorProfileModel) TableName() string {
	return "vendor_profiles"
}

// DeliveryProfileModel mirrors the 'delivery_profiles' table. AccountID references accounts.id (UUID).
type DeliveryProfileModel struct {
	AccountID      uuid.UUID `gorm:"primaryKey;type:uuid"`
	VehicleType    string    `gorm:"type:varchar(50)"`
	IsAvailable    bool      `gorm:"not null;default:false"`
	LastLatitude   *float64
	LastLongitude  *float64
	LastLocationAt *time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (DeliveryProfileModel) TableName() string {
	return "delivery_profiles"
}
