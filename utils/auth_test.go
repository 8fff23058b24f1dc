package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	JwtKey = []byte("test-secret")

	token, err := GenerateJWT("64f1a2b3c4d5e6f7a8b9c0d1", "priya@example.com", "user", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "64f1a2b3c4d5e6f7a8b9c0d1", claims.UserID)
	assert.Equal(t, "priya@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestParseJWTRejectsBadToken(t *testing.T) {
	JwtKey = []byte("test-secret")

	_, err := ParseJWT("not.a.token")
	assert.Error(t, err)
}

func TestParseJWTRejectsWrongKey(t *testing.T) {
	JwtKey = []byte("test-secret")
	token, err := GenerateJWT("id", "a@b.com", "admin", time.Hour)
	require.NoError(t, err)

	JwtKey = []byte("different-secret")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTRejectsExpired(t *testing.T) {
	JwtKey = []byte("test-secret")
	token, err := GenerateJWT("id", "a@b.com", "user", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token)
	assert.Error(t, err)
}
