package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() Config {
	return Config{
		AdminUsername: "admin",
		AdminPassword: "correcthorse",
		JWT:           JWTConfig{Secret: "test-secret"},
	}
}

func TestLogin(t *testing.T) {
	s := NewService(testConfig())

	token, err := s.Login("admin", "correcthorse")
	require.NoError(t, err)

	claims, err := ValidateToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	s := NewService(testConfig())

	_, err := s.Login("admin", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongUsername(t *testing.T) {
	s := NewService(testConfig())

	_, err := s.Login("root", "correcthorse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginHashedPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashedsecret"), bcrypt.MinCost)
	require.NoError(t, err)

	config := testConfig()
	config.AdminPasswordHash = string(hash)
	s := NewService(config)

	_, err = s.Login("admin", "hashedsecret")
	assert.NoError(t, err)

	// The hash takes precedence over the plaintext password.
	_, err = s.Login("admin", "correcthorse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
