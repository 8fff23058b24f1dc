package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupCoupon(t *testing.T) {
	for _, code := range []string{"WELCOME10", "SAVE20", "FREESHIP"} {
		coupon, ok := LookupCoupon(code)
		assert.True(t, ok, code)
		assert.Equal(t, code, coupon.Code)
	}

	_, ok := LookupCoupon("NOPE50")
	assert.False(t, ok)
}

func TestCouponEligible(t *testing.T) {
	save20, _ := LookupCoupon("SAVE20")

	assert.False(t, save20.Eligible(1999))
	assert.True(t, save20.Eligible(2000))
	assert.True(t, save20.Eligible(2500))
}

func TestCouponDiscount(t *testing.T) {
	t.Run("Percent", func(t *testing.T) {
		save20, _ := LookupCoupon("SAVE20")
		assert.Equal(t, float64(500), save20.Discount(2500))

		welcome10, _ := LookupCoupon("WELCOME10")
		assert.Equal(t, float64(120), welcome10.Discount(1200))
	})

	t.Run("Flat", func(t *testing.T) {
		freeship, _ := LookupCoupon("FREESHIP")
		assert.Equal(t, float64(150), freeship.Discount(1000))
	})

	t.Run("Flat Capped At Subtotal", func(t *testing.T) {
		freeship, _ := LookupCoupon("FREESHIP")
		assert.Equal(t, float64(100), freeship.Discount(100))
	})
}
