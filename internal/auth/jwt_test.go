package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahulelano/events-backend/internal/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testAdmin() *model.AdminUser {
	return &model.AdminUser{
		ID:    "8f7d2c3a-1b4e-4a5f-9c6d-0e1f2a3b4c5d",
		Email: "admin@example.com",
		Role:  "admin",
	}
}

func TestNewTokenManagerRejectsWeakConfig(t *testing.T) {
	_, err := NewTokenManager("short", time.Hour)
	assert.Error(t, err, "short secrets must be rejected")

	_, err = NewTokenManager(testSecret, 0)
	assert.Error(t, err, "non-positive ttl must be rejected")
}

func TestTokenRoundTrip(t *testing.T) {
	m, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	admin := testAdmin()
	token, err := m.Generate(admin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.AdminID)
	assert.Equal(t, admin.Email, claims.Email)
	assert.Equal(t, admin.Role, claims.Role)
	assert.Equal(t, admin.ID, claims.Subject)
}

func TestTokenExpiry(t *testing.T) {
	m, err := NewTokenManager(testSecret, time.Nanosecond)
	require.NoError(t, err)

	token, err := m.Generate(testAdmin())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenManager("ffffffffffffffffffffffffffffffff", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Generate(testAdmin())
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbage(t *testing.T) {
	m, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
