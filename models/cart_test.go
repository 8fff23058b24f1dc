package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func cartWith(items ...CartItem) *Cart {
	return &Cart{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		Items:  items,
	}
}

func TestCartTotals(t *testing.T) {
	pid := primitive.NewObjectID()

	t.Run("Subtotal And ItemCount", func(t *testing.T) {
		cart := cartWith(
			CartItem{ProductID: pid, Size: "M", Quantity: 2, Price: 999},
			CartItem{ProductID: pid, Size: "L", Quantity: 1, Price: 1499},
		)

		assert.Equal(t, float64(3497), cart.Subtotal())
		assert.Equal(t, 3, cart.ItemCount())
		assert.Equal(t, float64(3497), cart.Total())
	})

	t.Run("Total Subtracts Discounts", func(t *testing.T) {
		cart := cartWith(CartItem{ProductID: pid, Size: "M", Quantity: 2, Price: 1000})
		cart.DiscountAmount = 300
		cart.CoinsDiscount = 200

		assert.Equal(t, float64(1500), cart.Total())
	})

	t.Run("Total Floors At Zero", func(t *testing.T) {
		cart := cartWith(CartItem{ProductID: pid, Size: "S", Quantity: 1, Price: 100})
		cart.DiscountAmount = 80
		cart.CoinsDiscount = 80

		assert.Equal(t, float64(0), cart.Total())
	})

	t.Run("Empty Cart", func(t *testing.T) {
		cart := cartWith()
		assert.Equal(t, float64(0), cart.Subtotal())
		assert.Equal(t, 0, cart.ItemCount())
		assert.Equal(t, float64(0), cart.Total())
	})
}

func TestCartAddItem(t *testing.T) {
	pid := primitive.NewObjectID()

	t.Run("Appends New Line", func(t *testing.T) {
		cart := cartWith()
		cart.AddItem(CartItem{ProductID: pid, Size: "M", Quantity: 2, Price: 999})

		assert.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity)
	})

	t.Run("Merges Same Product And Size", func(t *testing.T) {
		cart := cartWith()
		cart.AddItem(CartItem{ProductID: pid, Size: "M", Quantity: 2, Price: 999})
		cart.AddItem(CartItem{ProductID: pid, Size: "M", Quantity: 3, Price: 999})

		assert.Len(t, cart.Items, 1)
		assert.Equal(t, 5, cart.Items[0].Quantity)
	})

	t.Run("Merge Caps At Ten", func(t *testing.T) {
		cart := cartWith()
		cart.AddItem(CartItem{ProductID: pid, Size: "M", Quantity: 7, Price: 999})
		cart.AddItem(CartItem{ProductID: pid, Size: "M", Quantity: 7, Price: 999})

		assert.Len(t, cart.Items, 1)
		assert.Equal(t, MaxLineQuantity, cart.Items[0].Quantity)
	})

	t.Run("Different Sizes Are Separate Lines", func(t *testing.T) {
		cart := cartWith()
		cart.AddItem(CartItem{ProductID: pid, Size: "M", Quantity: 1, Price: 999})
		cart.AddItem(CartItem{ProductID: pid, Size: "L", Quantity: 1, Price: 999})

		assert.Len(t, cart.Items, 2)
	})
}

func TestCartUpdateItemQuantity(t *testing.T) {
	pid := primitive.NewObjectID()

	t.Run("Sets Quantity", func(t *testing.T) {
		cart := cartWith(CartItem{ProductID: pid, Size: "M", Quantity: 2, Price: 999})

		assert.True(t, cart.UpdateItemQuantity(pid, "M", 5))
		assert.Equal(t, 5, cart.Items[0].Quantity)
	})

	t.Run("Zero Removes Line", func(t *testing.T) {
		cart := cartWith(CartItem{ProductID: pid, Size: "M", Quantity: 2, Price: 999})

		assert.True(t, cart.UpdateItemQuantity(pid, "M", 0))
		assert.Empty(t, cart.Items)
	})

	t.Run("Caps At Ten", func(t *testing.T) {
		cart := cartWith(CartItem{ProductID: pid, Size: "M", Quantity: 2, Price: 999})

		assert.True(t, cart.UpdateItemQuantity(pid, "M", 25))
		assert.Equal(t, MaxLineQuantity, cart.Items[0].Quantity)
	})

	t.Run("Unknown Line", func(t *testing.T) {
		cart := cartWith(CartItem{ProductID: pid, Size: "M", Quantity: 2, Price: 999})

		assert.False(t, cart.UpdateItemQuantity(pid, "XL", 1))
		assert.False(t, cart.UpdateItemQuantity(primitive.NewObjectID(), "M", 1))
	})
}

func TestCartRemoveItem(t *testing.T) {
	pid := primitive.NewObjectID()
	cart := cartWith(
		CartItem{ProductID: pid, Size: "M", Quantity: 2, Price: 999},
		CartItem{ProductID: pid, Size: "L", Quantity: 1, Price: 999},
	)

	assert.True(t, cart.RemoveItem(pid, "M"))
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "L", cart.Items[0].Size)

	assert.False(t, cart.RemoveItem(pid, "M"))
}

func TestCartApplyCoins(t *testing.T) {
	pid := primitive.NewObjectID()

	t.Run("Discount Capped At Subtotal", func(t *testing.T) {
		cart := cartWith(CartItem{ProductID: pid, Size: "M", Quantity: 1, Price: 300})
		cart.ApplyCoins(500)

		assert.Equal(t, 500, cart.CoinsUsed)
		assert.Equal(t, float64(300), cart.CoinsDiscount)
		assert.Equal(t, float64(0), cart.Total())
	})

	t.Run("Full Discount Below Subtotal", func(t *testing.T) {
		cart := cartWith(CartItem{ProductID: pid, Size: "M", Quantity: 2, Price: 500})
		cart.ApplyCoins(200)

		assert.Equal(t, float64(200), cart.CoinsDiscount)
		assert.Equal(t, float64(800), cart.Total())
	})

	t.Run("RemoveCoins Resets", func(t *testing.T) {
		cart := cartWith(CartItem{ProductID: pid, Size: "M", Quantity: 1, Price: 500})
		cart.ApplyCoins(100)
		cart.RemoveCoins()

		assert.Equal(t, 0, cart.CoinsUsed)
		assert.Equal(t, float64(0), cart.CoinsDiscount)
	})
}

func TestCartClear(t *testing.T) {
	pid := primitive.NewObjectID()
	cart := cartWith(CartItem{ProductID: pid, Size: "M", Quantity: 2, Price: 999})
	cart.CouponCode = "SAVE20"
	cart.DiscountAmount = 399
	cart.ApplyCoins(100)

	cart.Clear()

	assert.Empty(t, cart.Items)
	assert.Empty(t, cart.CouponCode)
	assert.Equal(t, float64(0), cart.DiscountAmount)
	assert.Equal(t, 0, cart.CoinsUsed)
	assert.Equal(t, float64(0), cart.CoinsDiscount)
}
