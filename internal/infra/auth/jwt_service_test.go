package auth

import (
	"testing"

	"campuseats/config"
	"campuseats/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	return cfg
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	accountID := uuid.New()
	accessToken, refreshToken, err := svc.GenerateTokens(accountID, entity.RoleVendor)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)

	accessClaims, err := svc.ValidateAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, accountID, accessClaims.AccountID)
	assert.Equal(t, entity.RoleVendor, accessClaims.Role)
	assert.Equal(t, "access", accessClaims.TokenType)

	refreshClaims, err := svc.ValidateRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, accountID, refreshClaims.AccountID)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
}

func TestJWTService_RejectsCrossedTokenTypes(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	accessToken, refreshToken, err := svc.GenerateTokens(uuid.New(), entity.RoleClient)
	require.NoError(t, err)

	// A refresh token must never pass as an access token, and vice versa.
	_, err = svc.ValidateAccessToken(refreshToken)
	require.Error(t, err)

	_, err = svc.ValidateRefreshToken(accessToken)
	require.Error(t, err)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	otherCfg := &config.Config{}
	otherCfg.SecretKey.Access = "someone-elses-access"
	otherCfg.SecretKey.Refresh = "someone-elses-refresh"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	accessToken, _, err := other.GenerateTokens(uuid.New(), entity.RoleClient)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(accessToken)
	require.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken("not.a.jwt")
	require.Error(t, err)
}

func TestJWTService_HashToken(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	first := svc.HashToken("some-refresh-token")
	second := svc.HashToken("some-refresh-token")

	assert.Equal(t, first, second, "the stored hash must be deterministic")
	assert.Len(t, first, 64, "hex sha-256")
	assert.NotEqual(t, first, svc.HashToken("another-token"))
}

func TestNewJWTService_MissingSecrets(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	require.Error(t, err)
}
