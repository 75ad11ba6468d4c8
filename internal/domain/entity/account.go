// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AccountStatus is the lifecycle state of an account.
// Accounts created by a sub-admin start pending and wait for top-level admin
// review; everything else is approved on creation.
type AccountStatus string

const (
	// AccountStatusPending awaits top-level admin review.
	AccountStatusPending AccountStatus = "pending"
	// AccountStatusApproved may sign in and act.
	AccountStatusApproved AccountStatus = "approved"
	// AccountStatusRejected was declined by the top-level admin.
	AccountStatusRejected AccountStatus = "rejected"
)

// IsValid checks if the AccountStatus is a valid value.
func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusPending, AccountStatusApproved, AccountStatusRejected:
		return true
	default:
		return false
	}
}

// accountStatusTransitions is the closed transition table for the account
// lifecycle. Review decisions only ever move out of pending; approved and
// rejected accounts can only leave via deletion.
var accountStatusTransitions = map[AccountStatus][]AccountStatus{
	AccountStatusPending:  {AccountStatusApproved, AccountStatusRejected},
	AccountStatusApproved: {},
	AccountStatusRejected: {},
}

// CanTransitionTo reports whether the lifecycle transition is allowed.
func (s AccountStatus) CanTransitionTo(next AccountStatus) bool {
	for _, allowed := range accountStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Account is the core entity in the system, representing a unique person.
// Role-specific data hangs off the pointers below; exactly the profile
// matching the role is non-nil.
type Account struct {
	ID        uuid.UUID // The Global Unique Identifier for the account.
	Email     string    // The account's primary contact email, usable as a login identifier.
	CampusID  string    // Human-memorable secondary login identifier; prefix encodes the role.
	Role      Role      // The single role this account holds.
	FirstName string
	LastName  string
	Phone     string
	IsActive  bool          // Orthogonal activation flag; inactive accounts must not keep a live session.
	Status    AccountStatus // Lifecycle state: pending, approved or rejected.

	CreatedBy  *uuid.UUID // The admin/sub-admin who created this account; nil for self-registration.
	ApprovedBy *uuid.UUID // The top-level admin who approved it; nil while pending or for auto-approval.

	VendorProfile   *VendorProfile   // Non-nil only when Role is vendor.
	DeliveryProfile *DeliveryProfile // Non-nil only when Role is delivery.

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins the name parts for display and mail templates.
func (a *Account) FullName() string {
	if a.FirstName == "" {
		return a.LastName
	}
	if a.LastName == "" {
		return a.FirstName
	}

	return a.FirstName + " " + a.LastName
}

// VisibleTo reports whether an actor with the given role may read this
// account. Sub-admins are blind to the whole administrative tier; this is
// enforced at read time, not just on mutation.
func (a *Account) VisibleTo(actor Role) bool {
	if actor == RoleSubAdmin && a.Role.IsAdministrative() {
		return false
	}

	return true
}

// VendorProfile is the 1:1 extension of a vendor account.
type VendorProfile struct {
	AccountID        uuid.UUID // Foreign key linking this profile to its Account.
	StoreName        string
	StoreDescription string

	CanteenImageURL  string
	LocationImageURL string
	MenuImageURL     string

	// ImagesApproved gates menu visibility: menu items are only shown to
	// clients while this is true. Any new image upload resets it to false.
	ImagesApproved bool

	UpdatedAt time.Time
}

// ApplyImageUpload records a fresh image URL for the given kind and pulls the
// profile back into re-review.
func (p *VendorProfile) ApplyImageUpload(kind VendorImageKind, url string) {
	switch kind {
	case VendorImageCanteen:
		p.CanteenImageURL = url
	case VendorImageLocation:
		p.LocationImageURL = url
	case VendorImageMenu:
		p.MenuImageURL = url
	}

	p.ImagesApproved = false
}

// VendorImageKind enumerates the reviewable vendor image slots.
type VendorImageKind string

const (
	VendorImageCanteen  VendorImageKind = "canteen"
	VendorImageLocation VendorImageKind = "location"
	VendorImageMenu     VendorImageKind = "menu"
)

// IsValid checks if the VendorImageKind is a valid value.
func (k VendorImageKind) IsValid() bool {
	switch k {
	case VendorImageCanteen, VendorImageLocation, VendorImageMenu:
		return true
	default:
		return false
	}
}

// DeliveryProfile is the 1:1 extension of a delivery account.
// Coordinates are present only while the delivery person is actively sharing
// their location and are cleared when sharing stops or they go unavailable.
type DeliveryProfile struct {
	AccountID   uuid.UUID
	VehicleType string
	IsAvailable bool

	LastLatitude   *float64
	LastLongitude  *float64
	LastLocationAt *time.Time

	UpdatedAt time.Time
}

// SetLocation records the latest shared coordinates.
func (p *DeliveryProfile) SetLocation(lat, lng float64, at time.Time) {
	p.LastLatitude = &lat
	p.LastLongitude = &lng
	p.LastLocationAt = &at
}

// ClearLocation drops the shared coordinates.
func (p *DeliveryProfile) ClearLocation() {
	p.LastLatitude = nil
	p.LastLongitude = nil
	p.LastLocationAt = nil
}
