package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	t.Run("Middle Page", func(t *testing.T) {
		p := NewPagination(2, 20, 45)

		assert.Equal(t, 3, p.TotalPages)
		assert.True(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})

	t.Run("First Page", func(t *testing.T) {
		p := NewPagination(1, 20, 45)

		assert.True(t, p.HasNext)
		assert.False(t, p.HasPrev)
	})

	t.Run("Last Page", func(t *testing.T) {
		p := NewPagination(3, 20, 45)

		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})

	t.Run("Exact Multiple", func(t *testing.T) {
		p := NewPagination(1, 20, 40)
		assert.Equal(t, 2, p.TotalPages)
	})

	t.Run("Empty", func(t *testing.T) {
		p := NewPagination(1, 20, 0)

		assert.Equal(t, 0, p.TotalPages)
		assert.False(t, p.HasNext)
		assert.False(t, p.HasPrev)
	})
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"Defaults", "", 1, 20},
		{"Explicit", "?page=3&limit=50", 3, 50},
		{"Negative Page", "?page=-1", 1, 20},
		{"Zero Limit", "?limit=0", 1, 20},
		{"Limit Clamped", "?limit=500", 1, 100},
		{"Garbage", "?page=abc&limit=xyz", 1, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/products"+tc.query, nil)
			page, limit := ParsePagination(r)

			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantLimit, limit)
		})
	}
}

func TestRespondEnvelopes(t *testing.T) {
	t.Run("Data", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RespondData(rec, 200, map[string]string{"name": "BRELIS"})

		assert.Equal(t, 200, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var env Envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.True(t, env.Success)
		assert.Empty(t, env.Message)
		assert.NotNil(t, env.Data)
	})

	t.Run("Error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RespondError(rec, 404, "Order not found")

		assert.Equal(t, 404, rec.Code)

		var env Envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.False(t, env.Success)
		assert.Equal(t, "Order not found", env.Message)
		assert.Nil(t, env.Data)
	})

	t.Run("Message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RespondMessage(rec, 201, "Review created")

		var env Envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.True(t, env.Success)
		assert.Equal(t, "Review created", env.Message)
	})
}
