package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is an immutable snapshot of a cart line taken at checkout.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Size      string             `bson:"size" json:"size"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

// Payment is the payment sub-document of an order.
type Payment struct {
	Method        string `bson:"method" json:"method"` // "cod", "card", "upi"
	Status        string `bson:"status" json:"status"` // "pending", "completed", "failed", "refunded"
	TransactionID string `bson:"transaction_id,omitempty" json:"transaction_id,omitempty"`
}

// Order is the snapshot of a cart at checkout time. Items, prices and
// discounts are frozen; only status and payment are mutated afterwards.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items          []OrderItem        `bson:"items" json:"items"`
	Subtotal       float64            `bson:"subtotal" json:"subtotal"`
	CouponCode     string             `bson:"coupon_code,omitempty" json:"coupon_code,omitempty"`
	DiscountAmount float64            `bson:"discount_amount" json:"discount_amount"`
	CoinsUsed      int                `bson:"coins_used" json:"coins_used"`
	CoinsDiscount  float64            `bson:"coins_discount" json:"coins_discount"`
	ShippingCost   float64            `bson:"shipping_cost" json:"shipping_cost"`
	Total          float64            `bson:"total" json:"total"`
	CoinsEarned    int                `bson:"coins_earned" json:"coins_earned"`
	Address        Address            `bson:"address" json:"address"`
	Payment        Payment            `bson:"payment" json:"payment"`
	Status         OrderStatus        `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// ShippingCostFor is the shipping fee for a cart subtotal: free above the
// threshold, a flat fee below it.
func ShippingCostFor(subtotal, flatRate, freeAbove float64) float64 {
	if subtotal > freeAbove {
		return 0
	}
	return flatRate
}

// CoinsEarnedFor computes the loyalty coins credited on delivery:
// floor(total * rate / 100). The default rate is 1%.
func CoinsEarnedFor(total, ratePercent float64) int {
	return int(math.Floor(total * ratePercent / 100))
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	Address       Address `json:"address" validate:"required"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cod card upi"`
}

// UpdateOrderStatusRequest is the admin payload for driving an order through
// its lifecycle.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
