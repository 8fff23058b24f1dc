package controllers

import (
	"testing"

	"brelis-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	testShipping = models.ShippingSection{FlatRate: 150, FreeAbove: 2000}
	testCoins    = models.CoinsSection{Enabled: true, EarnRatePercent: 1}
	testAddress  = models.Address{
		Name:    "Aditi Rao",
		Phone:   "9820012345",
		Street:  "14 Linking Road",
		City:    "Mumbai",
		State:   "MH",
		ZipCode: "400050",
	}
)

func testProduct(name string, stock int) *models.Product {
	return &models.Product{
		ID:        primitive.NewObjectID(),
		Name:      name,
		BasePrice: 999,
		IsActive:  true,
		Sizes: []models.ProductSize{
			{Size: "M", Stock: stock},
			{Size: "L", Stock: stock},
		},
	}
}

func productMap(products ...*models.Product) map[primitive.ObjectID]*models.Product {
	m := make(map[primitive.ObjectID]*models.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}

func TestBuildOrderEmptyCart(t *testing.T) {
	cart := &models.Cart{UserID: primitive.NewObjectID()}

	_, err := buildOrder(cart, nil, testAddress, "cod", testShipping, testCoins)
	assert.ErrorIs(t, err, errEmptyCart)
}

func TestBuildOrderValidation(t *testing.T) {
	product := testProduct("Cargo Pants", 5)

	t.Run("Unknown Product", func(t *testing.T) {
		cart := &models.Cart{
			UserID: primitive.NewObjectID(),
			Items:  []models.CartItem{{ProductID: primitive.NewObjectID(), Size: "M", Quantity: 1, Price: 999}},
		}

		_, err := buildOrder(cart, productMap(product), testAddress, "cod", testShipping, testCoins)
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("Inactive Product", func(t *testing.T) {
		inactive := testProduct("Archive Tee", 5)
		inactive.IsActive = false
		cart := &models.Cart{
			UserID: primitive.NewObjectID(),
			Items:  []models.CartItem{{ProductID: inactive.ID, Size: "M", Quantity: 1, Price: 999}},
		}

		_, err := buildOrder(cart, productMap(inactive), testAddress, "cod", testShipping, testCoins)
		assert.ErrorContains(t, err, "no longer available")
	})

	t.Run("Missing Size", func(t *testing.T) {
		cart := &models.Cart{
			UserID: primitive.NewObjectID(),
			Items:  []models.CartItem{{ProductID: product.ID, Size: "XXL", Quantity: 1, Price: 999}},
		}

		_, err := buildOrder(cart, productMap(product), testAddress, "cod", testShipping, testCoins)
		assert.ErrorContains(t, err, "size XXL")
	})

	t.Run("Insufficient Stock", func(t *testing.T) {
		low := testProduct("Limited Jacket", 2)
		cart := &models.Cart{
			UserID: primitive.NewObjectID(),
			Items:  []models.CartItem{{ProductID: low.ID, Size: "M", Quantity: 3, Price: 4999}},
		}

		_, err := buildOrder(cart, productMap(low), testAddress, "cod", testShipping, testCoins)
		assert.ErrorIs(t, err, errInsufficientStock)
	})
}

func TestBuildOrderPricing(t *testing.T) {
	t.Run("Coupon And Free Shipping", func(t *testing.T) {
		// 2500 subtotal with SAVE20 applied: 500 off, free shipping,
		// 20 coins earned on the 2000 total.
		product := testProduct("Oversized Hoodie", 10)
		cart := &models.Cart{
			ID:     primitive.NewObjectID(),
			UserID: primitive.NewObjectID(),
			Items: []models.CartItem{
				{ProductID: product.ID, Name: product.Name, Size: "M", Quantity: 2, Price: 1250},
			},
			CouponCode:     "SAVE20",
			DiscountAmount: 500,
		}

		order, err := buildOrder(cart, productMap(product), testAddress, "card", testShipping, testCoins)
		require.NoError(t, err)

		assert.Equal(t, float64(2500), order.Subtotal)
		assert.Equal(t, "SAVE20", order.CouponCode)
		assert.Equal(t, float64(500), order.DiscountAmount)
		assert.Equal(t, float64(0), order.ShippingCost)
		assert.Equal(t, float64(2000), order.Total)
		assert.Equal(t, 20, order.CoinsEarned)
	})

	t.Run("Flat Shipping Below Threshold", func(t *testing.T) {
		// 1200 subtotal, no coupon: 150 shipping, 1350 total,
		// floor(13.5) = 13 coins.
		product := testProduct("Graphic Tee", 10)
		cart := &models.Cart{
			ID:     primitive.NewObjectID(),
			UserID: primitive.NewObjectID(),
			Items: []models.CartItem{
				{ProductID: product.ID, Name: product.Name, Size: "L", Quantity: 2, Price: 600},
			},
		}

		order, err := buildOrder(cart, productMap(product), testAddress, "cod", testShipping, testCoins)
		require.NoError(t, err)

		assert.Equal(t, float64(1200), order.Subtotal)
		assert.Equal(t, float64(150), order.ShippingCost)
		assert.Equal(t, float64(1350), order.Total)
		assert.Equal(t, 13, order.CoinsEarned)
	})

	t.Run("Coins Redeemed", func(t *testing.T) {
		product := testProduct("Beanie", 10)
		cart := &models.Cart{
			ID:     primitive.NewObjectID(),
			UserID: primitive.NewObjectID(),
			Items: []models.CartItem{
				{ProductID: product.ID, Name: product.Name, Size: "M", Quantity: 1, Price: 2500},
			},
		}
		cart.ApplyCoins(300)

		order, err := buildOrder(cart, productMap(product), testAddress, "upi", testShipping, testCoins)
		require.NoError(t, err)

		assert.Equal(t, 300, order.CoinsUsed)
		assert.Equal(t, float64(300), order.CoinsDiscount)
		assert.Equal(t, float64(0), order.ShippingCost)
		assert.Equal(t, float64(2200), order.Total)
		assert.Equal(t, 22, order.CoinsEarned)
	})

	t.Run("Coins Program Disabled", func(t *testing.T) {
		product := testProduct("Socks", 10)
		cart := &models.Cart{
			ID:     primitive.NewObjectID(),
			UserID: primitive.NewObjectID(),
			Items: []models.CartItem{
				{ProductID: product.ID, Name: product.Name, Size: "M", Quantity: 3, Price: 1000},
			},
		}

		disabled := models.CoinsSection{Enabled: false, EarnRatePercent: 1}
		order, err := buildOrder(cart, productMap(product), testAddress, "cod", testShipping, disabled)
		require.NoError(t, err)

		assert.Equal(t, 0, order.CoinsEarned)
	})
}

func TestStockGuard(t *testing.T) {
	item := models.OrderItem{
		ProductID: primitive.NewObjectID(),
		Size:      "M",
		Quantity:  3,
	}

	t.Run("Filter Pins Size And Remaining Stock", func(t *testing.T) {
		filter := stockGuardFilter(item)
		assert.Equal(t, item.ProductID, filter["_id"])

		elem := filter["sizes"].(bson.M)["$elemMatch"].(bson.M)
		assert.Equal(t, "M", elem["size"])
		assert.Equal(t, bson.M{"$gte": 3}, elem["stock"])
	})

	t.Run("Decrement Matches Ordered Quantity", func(t *testing.T) {
		assert.Equal(t, bson.M{"$inc": bson.M{"sizes.$.stock": -3}}, stockDecrement(item))
	})
}

func TestTransitionFilterPinsSourceStatus(t *testing.T) {
	orderID := primitive.NewObjectID()
	filter := transitionFilter(orderID, models.OrderStatusPending)

	assert.Equal(t, orderID, filter["_id"])
	assert.Equal(t, models.OrderStatusPending, filter["status"])
}

func TestBuildOrderSnapshot(t *testing.T) {
	product := testProduct("Track Jacket", 10)
	userID := primitive.NewObjectID()
	cart := &models.Cart{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Items: []models.CartItem{
			{ProductID: product.ID, Name: product.Name, Image: "track.webp", Size: "M", Quantity: 2, Price: 1800},
		},
	}

	order, err := buildOrder(cart, productMap(product), testAddress, "card", testShipping, testCoins)
	require.NoError(t, err)

	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "card", order.Payment.Method)
	assert.Equal(t, "pending", order.Payment.Status)
	assert.Equal(t, testAddress, order.Address)

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, product.ID, item.ProductID)
	assert.Equal(t, "Track Jacket", item.Name)
	assert.Equal(t, "track.webp", item.Image)
	assert.Equal(t, "M", item.Size)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, float64(1800), item.Price)
}
