package service

import (
	"testing"
	"time"

	"banking-ledger/config"
	"banking-ledger/internal/core/domain"
	"banking-ledger/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret-key-for-unit-tests"

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:        testJWTSecret,
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 168 * time.Hour,
		Issuer:        "test-issuer",
	}
}

func TestJWTTokenService_IssueAndValidateAccess(t *testing.T) {
	svc := NewJWTTokenService(testJWTConfig())
	user := &domain.User{ID: 42, Username: "alice", Role: domain.RoleAdmin}

	tokenStr, expiresAt, err := svc.IssueAccess(user)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenStr)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.Validate(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, ports.TokenKindAccess, claims.Kind)
}

func TestJWTTokenService_IssueAndValidateRefresh(t *testing.T) {
	svc := NewJWTTokenService(testJWTConfig())
	user := &domain.User{ID: 7, Username: "bob", Role: domain.RoleUser}

	tokenStr, expiresAt, err := svc.IssueRefresh(user)
	require.NoError(t, err)

	claims, err := svc.Validate(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, ports.TokenKindRefresh, claims.Kind)
	assert.True(t, expiresAt.After(time.Now().Add(167*time.Hour)), "refresh token should outlive access token")
}

func TestJWTTokenService_TokensAreUnique(t *testing.T) {
	svc := NewJWTTokenService(testJWTConfig())
	user := &domain.User{ID: 7, Username: "bob", Role: domain.RoleUser}

	// Two tokens minted back to back (same second, same claims) must still
	// differ, otherwise revoking one session would revoke the other.
	first, _, err := svc.IssueRefresh(user)
	require.NoError(t, err)
	second, _, err := svc.IssueRefresh(user)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	access1, _, err := svc.IssueAccess(user)
	require.NoError(t, err)
	access2, _, err := svc.IssueAccess(user)
	require.NoError(t, err)
	assert.NotEqual(t, access1, access2)
}

func TestJWTTokenService_ExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessExpiry = -1 * time.Hour // already expired
	svc := NewJWTTokenService(cfg)

	tokenStr, _, err := svc.IssueAccess(&domain.User{ID: 1, Username: "alice", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = svc.Validate(tokenStr)
	assert.Error(t, err, "expired token should fail validation")
}

func TestJWTTokenService_InvalidSignature(t *testing.T) {
	cfg1 := testJWTConfig()
	cfg2 := testJWTConfig()
	cfg2.Secret = "a-different-secret"
	svc1 := NewJWTTokenService(cfg1)
	svc2 := NewJWTTokenService(cfg2)

	tokenStr, _, err := svc1.IssueAccess(&domain.User{ID: 1, Username: "alice", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = svc2.Validate(tokenStr)
	assert.Error(t, err, "token signed with different secret should fail")
}

func TestJWTTokenService_InvalidTokenString(t *testing.T) {
	svc := NewJWTTokenService(testJWTConfig())

	_, err := svc.Validate("not.a.valid.jwt")
	assert.Error(t, err)
}

func TestJWTTokenService_EmptyToken(t *testing.T) {
	svc := NewJWTTokenService(testJWTConfig())

	_, err := svc.Validate("")
	assert.Error(t, err)
}
