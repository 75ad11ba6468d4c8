// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role an account can have in the system.
type Role string

const (
	// RoleAdmin indicates the top-level administrator.
	RoleAdmin Role = "admin"
	// RoleSubAdmin indicates a restricted administrator who may create
	// accounts but may neither approve, reject nor delete them.
	RoleSubAdmin Role = "subadmin"
	// RoleVendor indicates a campus canteen vendor.
	RoleVendor Role = "vendor"
	// RoleDelivery indicates a delivery person.
	RoleDelivery Role = "delivery"
	// RoleClient indicates an ordering client.
	RoleClient Role = "client"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSubAdmin, RoleVendor, RoleDelivery, RoleClient:
		return true
	default:
		return false
	}
}

// IsAdministrative reports whether the role belongs to the admin tier.
// Sub-admins may neither view nor act on accounts in this tier.
func (r Role) IsAdministrative() bool {
	return r == RoleAdmin || r == RoleSubAdmin
}

// DashboardRoute returns the canonical dashboard path for the role.
// The mapping is total: every valid role maps to exactly one dashboard,
// and anything else falls back to the login page.
func (r Role) DashboardRoute() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleSubAdmin:
		return "/admin/dashboard"
	case RoleVendor:
		return "/vendor/dashboard"
	case RoleDelivery:
		return "/delivery/dashboard"
	case RoleClient:
		return "/client/dashboard"
	default:
		return "/login"
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}
