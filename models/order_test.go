package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingCostFor(t *testing.T) {
	t.Run("Free Above Threshold", func(t *testing.T) {
		assert.Equal(t, float64(0), ShippingCostFor(2500, 150, 2000))
		assert.Equal(t, float64(0), ShippingCostFor(2000.01, 150, 2000))
	})

	t.Run("Flat Below Threshold", func(t *testing.T) {
		assert.Equal(t, float64(150), ShippingCostFor(1200, 150, 2000))
		// exactly at the threshold still pays shipping
		assert.Equal(t, float64(150), ShippingCostFor(2000, 150, 2000))
	})
}

func TestCoinsEarnedFor(t *testing.T) {
	assert.Equal(t, 20, CoinsEarnedFor(2000, 1))
	assert.Equal(t, 13, CoinsEarnedFor(1350, 1))
	assert.Equal(t, 0, CoinsEarnedFor(99, 1))
	assert.Equal(t, 0, CoinsEarnedFor(0, 1))
	assert.Equal(t, 40, CoinsEarnedFor(2000, 2))
}

func TestProductPricing(t *testing.T) {
	product := Product{
		Name:      "Oversized Hoodie",
		BasePrice: 2499,
		Sizes: []ProductSize{
			{Size: "M", Stock: 5},
			{Size: "XL", Stock: 2, Price: 2699},
		},
	}

	t.Run("Base Price", func(t *testing.T) {
		assert.Equal(t, float64(2499), product.CurrentPrice())
		assert.Equal(t, float64(2499), product.PriceFor("M"))
	})

	t.Run("Per Size Override", func(t *testing.T) {
		assert.Equal(t, float64(2699), product.PriceFor("XL"))
	})

	t.Run("Sale Price Wins When Lower", func(t *testing.T) {
		onSale := product
		onSale.SalePrice = 1999
		assert.Equal(t, float64(1999), onSale.CurrentPrice())
		assert.Equal(t, float64(1999), onSale.PriceFor("M"))
	})

	t.Run("Sale Price Above Base Is Ignored", func(t *testing.T) {
		weird := product
		weird.SalePrice = 2999
		assert.Equal(t, float64(2499), weird.CurrentPrice())
	})

	t.Run("Unknown Size Falls Back To Current Price", func(t *testing.T) {
		assert.Equal(t, float64(2499), product.PriceFor("XXL"))
		_, ok := product.SizeVariant("XXL")
		assert.False(t, ok)
	})
}
