package models

// CouponType distinguishes percentage coupons from flat-amount ones.
type CouponType string

const (
	CouponPercent CouponType = "percent"
	CouponFlat    CouponType = "flat"
)

// Coupon is a fixed-table promotional code.
type Coupon struct {
	Code      string     `json:"code"`
	Type      CouponType `json:"type"`
	Value     float64    `json:"value"`
	MinAmount float64    `json:"min_amount"`
}

// coupons is the promotional table. Codes are managed here, not in the
// database.
var coupons = map[string]Coupon{
	"WELCOME10": {Code: "WELCOME10", Type: CouponPercent, Value: 10, MinAmount: 500},
	"SAVE20":    {Code: "SAVE20", Type: CouponPercent, Value: 20, MinAmount: 2000},
	"FREESHIP":  {Code: "FREESHIP", Type: CouponFlat, Value: 150, MinAmount: 999},
}

// LookupCoupon resolves a code against the coupon table.
func LookupCoupon(code string) (Coupon, bool) {
	c, ok := coupons[code]
	return c, ok
}

// Eligible reports whether the cart subtotal meets the coupon's minimum.
func (c Coupon) Eligible(subtotal float64) bool {
	return subtotal >= c.MinAmount
}

// Discount computes the discount amount for a subtotal. For percentage
// coupons this is a share of the subtotal; flat coupons are capped at the
// subtotal.
func (c Coupon) Discount(subtotal float64) float64 {
	var d float64
	switch c.Type {
	case CouponPercent:
		d = subtotal * c.Value / 100
	case CouponFlat:
		d = c.Value
	}
	if d > subtotal {
		d = subtotal
	}
	return d
}
