package entity

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/pkg/errors"
)

// CampusID is a human-memorable secondary identifier for an account,
// usable instead of email at login. The prefix encodes the role.
// Format: PREFIX-NNNNNNNNN, where PREFIX is one of CLI, VEN, DEL, ADM and
// the nine digits are a six-digit random value followed by a three-digit
// time-derived suffix.

var campusIDPattern = regexp.MustCompile(`^(CLI|VEN|DEL|ADM)-\d{9}$`)

// ErrInvalidCampusID is returned when a string is not a well-formed campus ID.
var ErrInvalidCampusID = errors.New("invalid campus id")

const (
	campusPrefixClient   = "CLI"
	campusPrefixVendor   = "VEN"
	campusPrefixDelivery = "DEL"
	campusPrefixAdmin    = "ADM"
)

// IsCampusID reports whether the identifier matches the campus ID pattern.
func IsCampusID(identifier string) bool {
	return campusIDPattern.MatchString(identifier)
}

// CampusIDPrefix returns the ID prefix for the role.
// Sub-admins share the ADM prefix with the top-level admin; the role column
// on the account row carries the distinction.
func CampusIDPrefix(role Role) string {
	switch role {
	case RoleVendor:
		return campusPrefixVendor
	case RoleDelivery:
		return campusPrefixDelivery
	case RoleAdmin, RoleSubAdmin:
		return campusPrefixAdmin
	default:
		return campusPrefixClient
	}
}

// RoleFromCampusID returns the role encoded in the campus ID prefix.
// ADM resolves to RoleAdmin; whether the holder is a sub-admin is decided by
// the account row, not the identifier.
func RoleFromCampusID(campusID string) (Role, error) {
	if !IsCampusID(campusID) {
		return "", errors.Wrapf(ErrInvalidCampusID, "malformed campus id %q", campusID)
	}

	switch campusID[:3] {
	case campusPrefixVendor:
		return RoleVendor, nil
	case campusPrefixDelivery:
		return RoleDelivery, nil
	case campusPrefixAdmin:
		return RoleAdmin, nil
	default:
		return RoleClient, nil
	}
}

// NewCampusID generates a fresh campus ID for the role: six random digits
// followed by the low three digits of the current unix-millisecond clock.
// Uniqueness is not guaranteed here; callers must rely on the store's unique
// constraint and regenerate on conflict.
func NewCampusID(role Role, now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", errors.Wrap(err, "failed to draw random campus id digits")
	}

	suffix := now.UnixMilli() % 1000

	return fmt.Sprintf("%s-%06d%03d", CampusIDPrefix(role), n.Int64(), suffix), nil
}
