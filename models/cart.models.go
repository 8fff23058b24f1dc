package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxLineQuantity caps the quantity of a single (product, size) cart line.
const MaxLineQuantity = 10

// CartItem is a (product, size) line with the unit price frozen at the time
// the line was added.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Size      string             `bson:"size" json:"size"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

// Cart represents a user's shopping cart. There is exactly one per user,
// created lazily on first access and reused across orders.
type Cart struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items          []CartItem         `bson:"items" json:"items"`
	CouponCode     string             `bson:"coupon_code,omitempty" json:"coupon_code,omitempty"`
	DiscountAmount float64            `bson:"discount_amount" json:"discount_amount"`
	CoinsUsed      int                `bson:"coins_used" json:"coins_used"`
	CoinsDiscount  float64            `bson:"coins_discount" json:"coins_discount"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// Subtotal is the sum of price*quantity over all lines.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount is the total number of units across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Total is subtotal minus coupon and coins discounts, floored at zero.
// The coupon discount is the amount computed when the coupon was applied; it
// is deliberately not recomputed when the cart changes afterwards.
func (c *Cart) Total() float64 {
	total := c.Subtotal() - c.DiscountAmount - c.CoinsDiscount
	if total < 0 {
		return 0
	}
	return total
}

// AddItem merges the quantity into an existing (product, size) line, capped
// at MaxLineQuantity, or appends a new line.
func (c *Cart) AddItem(item CartItem) {
	for i, existing := range c.Items {
		if existing.ProductID == item.ProductID && existing.Size == item.Size {
			qty := existing.Quantity + item.Quantity
			if qty > MaxLineQuantity {
				qty = MaxLineQuantity
			}
			c.Items[i].Quantity = qty
			return
		}
	}
	if item.Quantity > MaxLineQuantity {
		item.Quantity = MaxLineQuantity
	}
	c.Items = append(c.Items, item)
}

// UpdateItemQuantity sets the quantity of a line. A quantity of zero or less
// removes the line. Returns false if no such line exists.
func (c *Cart) UpdateItemQuantity(productID primitive.ObjectID, size string, quantity int) bool {
	for i, item := range c.Items {
		if item.ProductID == productID && item.Size == size {
			if quantity <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				return true
			}
			if quantity > MaxLineQuantity {
				quantity = MaxLineQuantity
			}
			c.Items[i].Quantity = quantity
			return true
		}
	}
	return false
}

// RemoveItem deletes the exact (product, size) line. Returns false if no
// such line exists.
func (c *Cart) RemoveItem(productID primitive.ObjectID, size string) bool {
	for i, item := range c.Items {
		if item.ProductID == productID && item.Size == size {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart and drops any applied coupon or coins discount.
// The cart document itself survives for reuse.
func (c *Cart) Clear() {
	c.Items = nil
	c.CouponCode = ""
	c.DiscountAmount = 0
	c.CoinsUsed = 0
	c.CoinsDiscount = 0
}

// ApplyCoins records a coins discount of min(coins, subtotal). The caller is
// responsible for checking the user's balance.
func (c *Cart) ApplyCoins(coins int) {
	discount := float64(coins)
	if subtotal := c.Subtotal(); discount > subtotal {
		discount = subtotal
	}
	c.CoinsUsed = coins
	c.CoinsDiscount = discount
}

// RemoveCoins drops the coins discount.
func (c *Cart) RemoveCoins() {
	c.CoinsUsed = 0
	c.CoinsDiscount = 0
}

// AddCartItemRequest is the payload for adding a line to the cart.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=10"`
}

// UpdateCartItemRequest is the payload for changing a line's quantity.
type UpdateCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=0,max=10"`
}

// ApplyCouponRequest carries a coupon code.
type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// ApplyCoinsRequest carries the number of coins to put toward the cart.
type ApplyCoinsRequest struct {
	Coins int `json:"coins" validate:"required,min=1"`
}
