package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, "BRELIS Streetwear", settings.Store.Name)
	assert.Equal(t, float64(150), settings.Shipping.FlatRate)
	assert.Equal(t, float64(2000), settings.Shipping.FreeAbove)
	assert.True(t, settings.Coins.Enabled)
	assert.Equal(t, float64(1), settings.Coins.EarnRatePercent)
}

func TestApplySection(t *testing.T) {
	t.Run("Shipping", func(t *testing.T) {
		settings := DefaultSettings()
		raw := json.RawMessage(`{"flat_rate": 99, "free_above": 1500}`)

		require.NoError(t, settings.ApplySection(SectionShipping, raw))
		assert.Equal(t, float64(99), settings.Shipping.FlatRate)
		assert.Equal(t, float64(1500), settings.Shipping.FreeAbove)
	})

	t.Run("Store", func(t *testing.T) {
		settings := DefaultSettings()
		raw := json.RawMessage(`{"name": "BRELIS", "email": "shop@brelis.in", "announcement": "Drop 04 live"}`)

		require.NoError(t, settings.ApplySection(SectionStore, raw))
		assert.Equal(t, "Drop 04 live", settings.Store.Announcement)
	})

	t.Run("Coins", func(t *testing.T) {
		settings := DefaultSettings()
		raw := json.RawMessage(`{"enabled": false, "earn_rate_percent": 2}`)

		require.NoError(t, settings.ApplySection(SectionCoins, raw))
		assert.False(t, settings.Coins.Enabled)
		assert.Equal(t, float64(2), settings.Coins.EarnRatePercent)
	})

	t.Run("Rejects Negative Shipping", func(t *testing.T) {
		settings := DefaultSettings()
		raw := json.RawMessage(`{"flat_rate": -10, "free_above": 1500}`)

		err := settings.ApplySection(SectionShipping, raw)
		assert.Error(t, err)
		assert.Equal(t, float64(150), settings.Shipping.FlatRate)
	})

	t.Run("Rejects Missing Store Email", func(t *testing.T) {
		settings := DefaultSettings()
		raw := json.RawMessage(`{"name": "BRELIS"}`)

		assert.Error(t, settings.ApplySection(SectionStore, raw))
	})

	t.Run("Rejects Out Of Range Earn Rate", func(t *testing.T) {
		settings := DefaultSettings()
		raw := json.RawMessage(`{"enabled": true, "earn_rate_percent": 150}`)

		assert.Error(t, settings.ApplySection(SectionCoins, raw))
	})

	t.Run("Rejects Unknown Section", func(t *testing.T) {
		settings := DefaultSettings()
		raw := json.RawMessage(`{"anything": true}`)

		assert.Error(t, settings.ApplySection("payments", raw))
	})

	t.Run("Rejects Malformed JSON", func(t *testing.T) {
		settings := DefaultSettings()
		raw := json.RawMessage(`{"flat_rate": `)

		assert.Error(t, settings.ApplySection(SectionShipping, raw))
	})
}
