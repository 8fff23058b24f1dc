package controllers

import (
	"net/http/httptest"
	"testing"
	"time"

	"brelis-api/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRequest(t *testing.T) {
	utils.JwtKey = []byte("test-secret")

	adminToken, err := utils.GenerateJWT("64f1a2b3c4d5e6f7a8b9c0d1", "ops@brelis.in", "admin", time.Hour)
	require.NoError(t, err)
	userToken, err := utils.GenerateJWT("64f1a2b3c4d5e6f7a8b9c0d2", "priya@example.com", "user", time.Hour)
	require.NoError(t, err)

	t.Run("Admin Token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/products?all=true", nil)
		r.Header.Set("Authorization", "Bearer "+adminToken)
		assert.True(t, adminRequest(r))
	})

	t.Run("Non Admin Token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/products?all=true", nil)
		r.Header.Set("Authorization", "Bearer "+userToken)
		assert.False(t, adminRequest(r))
	})

	t.Run("No Header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/products?all=true", nil)
		assert.False(t, adminRequest(r))
	})

	t.Run("Malformed Header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/products?all=true", nil)
		r.Header.Set("Authorization", adminToken)
		assert.False(t, adminRequest(r))
	})

	t.Run("Garbage Token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/products?all=true", nil)
		r.Header.Set("Authorization", "Bearer not.a.token")
		assert.False(t, adminRequest(r))
	})

	t.Run("Forged Signature", func(t *testing.T) {
		utils.JwtKey = []byte("other-secret")
		forged, err := utils.GenerateJWT("id", "x@y.com", "admin", time.Hour)
		require.NoError(t, err)
		utils.JwtKey = []byte("test-secret")

		r := httptest.NewRequest("GET", "/api/products?all=true", nil)
		r.Header.Set("Authorization", "Bearer "+forged)
		assert.False(t, adminRequest(r))
	})
}
