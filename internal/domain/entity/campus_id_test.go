package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCampusID_FormatAndPrefix(t *testing.T) {
	tests := []struct {
		role   Role
		prefix string
	}{
		{role: RoleClient, prefix: "CLI"},
		{role: RoleVendor, prefix: "VEN"},
		{role: RoleDelivery, prefix: "DEL"},
		{role: RoleAdmin, prefix: "ADM"},
		{role: RoleSubAdmin, prefix: "ADM"},
	}

	now := time.Now()
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			campusID, err := NewCampusID(tt.role, now)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(campusID, tt.prefix+"-"))
			assert.True(t, IsCampusID(campusID), "generated id %q must match its own pattern", campusID)
			assert.Len(t, campusID, len(tt.prefix)+1+9)
		})
	}
}

func TestNewCampusID_TimeSuffix(t *testing.T) {
	now := time.UnixMilli(1234567)

	campusID, err := NewCampusID(RoleClient, now)
	require.NoError(t, err)

	// The last three digits come from the millisecond clock.
	assert.True(t, strings.HasSuffix(campusID, "567"), "got %q", campusID)
}

func TestIsCampusID(t *testing.T) {
	tests := []struct {
		identifier string
		want       bool
	}{
		{identifier: "CLI-123456789", want: true},
		{identifier: "VEN-000000000", want: true},
		{identifier: "DEL-987654321", want: true},
		{identifier: "ADM-123456789", want: true},
		{identifier: "cli-123456789", want: false},
		{identifier: "CLI-12345678", want: false},
		{identifier: "CLI-1234567890", want: false},
		{identifier: "XXX-123456789", want: false},
		{identifier: "someone@example.edu", want: false},
		{identifier: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCampusID(tt.identifier))
		})
	}
}

func TestRoleFromCampusID(t *testing.T) {
	tests := []struct {
		campusID string
		want     Role
	}{
		{campusID: "CLI-123456789", want: RoleClient},
		{campusID: "VEN-123456789", want: RoleVendor},
		{campusID: "DEL-123456789", want: RoleDelivery},
		{campusID: "ADM-123456789", want: RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.campusID, func(t *testing.T) {
			role, err := RoleFromCampusID(tt.campusID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}
}

func TestRoleFromCampusID_Malformed(t *testing.T) {
	_, err := RoleFromCampusID("not-an-id")
	require.ErrorIs(t, err, ErrInvalidCampusID)
}

func TestCampusIDPrefix_RoundTripsThroughRole(t *testing.T) {
	// Every role's prefix must resolve back to a role that shares the
	// prefix, so identifier-based routing never contradicts the prefix.
	for _, role := range []Role{RoleClient, RoleVendor, RoleDelivery, RoleAdmin, RoleSubAdmin} {
		campusID, err := NewCampusID(role, time.Now())
		require.NoError(t, err)

		resolved, err := RoleFromCampusID(campusID)
		require.NoError(t, err)
		assert.Equal(t, CampusIDPrefix(role), CampusIDPrefix(resolved))
	}
}
