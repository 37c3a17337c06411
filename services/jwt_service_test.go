package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminJWTRoundTrip(t *testing.T) {
	s, err := NewJWTService("test-secret")
	require.NoError(t, err)

	token, err := s.GenerateAdminJWT("a-1", "ops@rimsurge.test", "")
	require.NoError(t, err)

	claims, err := s.VerifyAdminJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "a-1", claims.AdminID)
	assert.Equal(t, "ops@rimsurge.test", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestAdminJWTRejects(t *testing.T) {
	s, err := NewJWTService("test-secret")
	require.NoError(t, err)
	other, err := NewJWTService("other-secret")
	require.NoError(t, err)

	token, err := other.GenerateAdminJWT("a-1", "ops@rimsurge.test", RoleSuperAdmin)
	require.NoError(t, err)
	_, err = s.VerifyAdminJWT(token)
	assert.Error(t, err, "wrong secret")

	s.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	expired, err := s.GenerateAdminJWT("a-1", "ops@rimsurge.test", RoleAdmin)
	require.NoError(t, err)
	s.now = time.Now
	_, err = s.VerifyAdminJWT(expired)
	assert.Error(t, err, "expired")

	_, err = s.VerifyAdminJWT("not-a-token")
	assert.Error(t, err)
}

func TestGenerateAdminJWTRequiresIdentity(t *testing.T) {
	s, err := NewJWTService("test-secret")
	require.NoError(t, err)
	_, err = s.GenerateAdminJWT("", "ops@rimsurge.test", RoleAdmin)
	assert.Error(t, err)

	_, err = NewJWTService("")
	assert.Error(t, err)
}
